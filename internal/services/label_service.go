package services

import (
	"dealcanvas/internal/labeledit"
	"dealcanvas/internal/models"
)

// labelEditService drives the inline label editors of a workspace.
type labelEditService struct {
	workspaces *Workspaces
}

// NewLabelEditService creates a new LabelEditServicer.
func NewLabelEditService(workspaces *Workspaces) LabelEditServicer {
	return &labelEditService{workspaces: workspaces}
}

func (s *labelEditService) Begin(workspaceID string, ref models.EntityRef) (draft string, applied bool, err error) {
	err = s.workspaces.do(workspaceID, func(ws *workspace) error {
		draft, applied = ws.labels.Begin(ref)
		return nil
	})
	return draft, applied, err
}

func (s *labelEditService) Commit(workspaceID string, ref models.EntityRef, text string) (label string, applied bool, err error) {
	err = s.workspaces.do(workspaceID, func(ws *workspace) error {
		label, applied = ws.labels.Commit(ref, text)
		return nil
	})
	return label, applied, err
}

func (s *labelEditService) Cancel(workspaceID string, ref models.EntityRef) (label string, applied bool, err error) {
	err = s.workspaces.do(workspaceID, func(ws *workspace) error {
		label, applied = ws.labels.Cancel(ref)
		return nil
	})
	return label, applied, err
}

func (s *labelEditService) State(workspaceID string, ref models.EntityRef) (labeledit.State, error) {
	var state labeledit.State
	err := s.workspaces.do(workspaceID, func(ws *workspace) error {
		state = ws.labels.State(ref)
		return nil
	})
	return state, err
}
