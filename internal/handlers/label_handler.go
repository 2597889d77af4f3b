package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "dealcanvas/internal/errors"
	"dealcanvas/internal/models"
	"dealcanvas/internal/services"
)

// LabelHandler handles inline label editing requests.
type LabelHandler struct {
	labelService services.LabelEditServicer
	auditService services.AuditServicer
}

// NewLabelHandler creates a new LabelHandler.
func NewLabelHandler(labelService services.LabelEditServicer, auditService services.AuditServicer) *LabelHandler {
	return &LabelHandler{labelService: labelService, auditService: auditService}
}

// labelTarget is the :kind/:id pair of a label route.
type labelTarget struct {
	Kind string `uri:"kind" binding:"required,entity_kind"`
	ID   uint   `uri:"id" binding:"required,min=1"`
}

// CommitLabelRequest carries the editor text.
type CommitLabelRequest struct {
	Text string `json:"text" binding:"max=200"`
}

// BeginEdit handles opening the label editor
// @Summary     Begin editing a label
// @Tags        labels
// @Produce     json
// @Security    BearerAuth
// @Param       kind path string true "Entity kind" Enums(deal, cashflow)
// @Param       id   path int    true "Entity ID"
// @Success     200 {object} map[string]interface{} "Outcome and draft text"
// @Router      /labels/{kind}/{id}/edit [post]
func (h *LabelHandler) BeginEdit(c *gin.Context) {
	workspaceID, ref, ok := h.target(c)
	if !ok {
		return
	}

	draft, applied, err := h.labelService.Begin(workspaceID, ref)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondApplied(c, applied, gin.H{"draft": draft})
}

// CommitEdit handles confirming the label editor
// @Summary     Commit a label edit
// @Description Blank text reverts to the label shown before editing
// @Tags        labels
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       kind    path string             true "Entity kind" Enums(deal, cashflow)
// @Param       id      path int                true "Entity ID"
// @Param       request body CommitLabelRequest true "Editor text"
// @Success     200 {object} map[string]interface{} "Outcome and resulting label"
// @Router      /labels/{kind}/{id}/commit [post]
func (h *LabelHandler) CommitEdit(c *gin.Context) {
	workspaceID, ref, ok := h.target(c)
	if !ok {
		return
	}

	var req CommitLabelRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	label, applied, err := h.labelService.Commit(workspaceID, ref, req.Text)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if applied {
		h.auditService.Log(workspaceID, "COMMIT_LABEL", string(ref.Kind), ref.ID, c.ClientIP(),
			map[string]interface{}{"label": label})
	}

	respondApplied(c, applied, gin.H{"label": label})
}

// CancelEdit handles abandoning the label editor
// @Summary     Cancel a label edit
// @Tags        labels
// @Produce     json
// @Security    BearerAuth
// @Param       kind path string true "Entity kind" Enums(deal, cashflow)
// @Param       id   path int    true "Entity ID"
// @Success     200 {object} map[string]interface{} "Outcome and restored label"
// @Router      /labels/{kind}/{id}/cancel [post]
func (h *LabelHandler) CancelEdit(c *gin.Context) {
	workspaceID, ref, ok := h.target(c)
	if !ok {
		return
	}

	label, applied, err := h.labelService.Cancel(workspaceID, ref)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondApplied(c, applied, gin.H{"label": label})
}

// GetEditState handles reading the editor state of an entity
// @Summary     Get label edit state
// @Tags        labels
// @Produce     json
// @Security    BearerAuth
// @Param       kind path string true "Entity kind" Enums(deal, cashflow)
// @Param       id   path int    true "Entity ID"
// @Success     200 {object} map[string]string "Editing state"
// @Router      /labels/{kind}/{id}/state [get]
func (h *LabelHandler) GetEditState(c *gin.Context) {
	workspaceID, ref, ok := h.target(c)
	if !ok {
		return
	}

	state, err := h.labelService.State(workspaceID, ref)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"state": state})
}

func (h *LabelHandler) target(c *gin.Context) (string, models.EntityRef, bool) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return "", models.EntityRef{}, false
	}

	var t labelTarget
	if err := c.ShouldBindUri(&t); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid label target"))
		return "", models.EntityRef{}, false
	}
	return workspaceID, models.EntityRef{Kind: models.EntityKind(t.Kind), ID: t.ID}, true
}
