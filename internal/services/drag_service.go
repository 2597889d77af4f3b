package services

import (
	"dealcanvas/internal/drag"
	"dealcanvas/internal/models"
)

// dragService forwards pointer notifications to a workspace's drag controller.
type dragService struct {
	workspaces *Workspaces
}

// NewDragService creates a new DragServicer.
func NewDragService(workspaces *Workspaces) DragServicer {
	return &dragService{workspaces: workspaces}
}

func (s *dragService) BeginDealDrag(workspaceID string, dealID uint, grabOffset models.Position) error {
	return s.workspaces.do(workspaceID, func(ws *workspace) error {
		return ws.drag.BeginDealDrag(dealID, grabOffset)
	})
}

func (s *dragService) BeginCashflowDrag(workspaceID string, cashflowID uint) error {
	return s.workspaces.do(workspaceID, func(ws *workspace) error {
		return ws.drag.BeginCashflowDrag(cashflowID)
	})
}

func (s *dragService) Move(workspaceID string, pointer models.Position) (pos models.Position, applied bool, err error) {
	err = s.workspaces.do(workspaceID, func(ws *workspace) error {
		pos, applied = ws.drag.Move(pointer)
		return nil
	})
	return pos, applied, err
}

func (s *dragService) Hover(workspaceID string, dealID uint) (bool, error) {
	var accepts bool
	err := s.workspaces.do(workspaceID, func(ws *workspace) error {
		accepts = ws.drag.Hover(dealID)
		return nil
	})
	return accepts, err
}

func (s *dragService) Drop(workspaceID string, dealID uint) (bool, error) {
	var applied bool
	err := s.workspaces.do(workspaceID, func(ws *workspace) error {
		var err error
		applied, err = ws.drag.Drop(dealID)
		return err
	})
	return applied, err
}

func (s *dragService) End(workspaceID string) (*drag.EndResult, error) {
	var res drag.EndResult
	err := s.workspaces.do(workspaceID, func(ws *workspace) error {
		res = ws.drag.End()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Active returns the drag in progress, or nil when the slot is empty.
func (s *dragService) Active(workspaceID string) (*drag.Drag, error) {
	var (
		d  drag.Drag
		ok bool
	)
	err := s.workspaces.do(workspaceID, func(ws *workspace) error {
		d, ok = ws.drag.Active()
		return nil
	})
	if err != nil || !ok {
		return nil, err
	}
	return &d, nil
}

func (s *dragService) ClickHeader(workspaceID string, dealID uint) (collapsed, toggled bool, err error) {
	err = s.workspaces.do(workspaceID, func(ws *workspace) error {
		collapsed, toggled = ws.drag.ClickHeader(dealID)
		return nil
	})
	return collapsed, toggled, err
}
