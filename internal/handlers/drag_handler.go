package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dealcanvas/internal/drag"
	"dealcanvas/internal/models"
	"dealcanvas/internal/services"
)

// DragHandler handles pointer-driven drag requests.
type DragHandler struct {
	dragService  services.DragServicer
	auditService services.AuditServicer
}

// NewDragHandler creates a new DragHandler.
func NewDragHandler(dragService services.DragServicer, auditService services.AuditServicer) *DragHandler {
	return &DragHandler{dragService: dragService, auditService: auditService}
}

// BeginDealDragRequest starts moving a deal card. GrabOffset is the pointer
// position relative to the card's corner.
type BeginDealDragRequest struct {
	DealID     uint            `json:"deal_id" binding:"required,min=1"`
	GrabOffset models.Position `json:"grab_offset"`
}

// BeginCashflowDragRequest picks up a cashflow.
type BeginCashflowDragRequest struct {
	CashflowID uint `json:"cashflow_id" binding:"required,min=1"`
}

// PointerRequest is a pointer position in canvas coordinates.
type PointerRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DealTargetRequest names the deal under the pointer. Zero means none.
type DealTargetRequest struct {
	DealID uint `json:"deal_id"`
}

// BeginDealDrag handles pressing on a deal header
// @Summary     Start dragging a deal
// @Tags        drag
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body BeginDealDragRequest true "Deal and grab offset"
// @Success     200 {object} map[string]interface{} "Active drag"
// @Failure     404 {object} ErrorResponse "Deal not found"
// @Failure     409 {object} ErrorResponse "Another drag is in progress"
// @Router      /drag/deal [post]
func (h *DragHandler) BeginDealDrag(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BeginDealDragRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.dragService.BeginDealDrag(workspaceID, req.DealID, req.GrabOffset); err != nil {
		respondWithError(c, err)
		return
	}

	h.respondActive(c, workspaceID)
}

// BeginCashflowDrag handles picking up a cashflow
// @Summary     Start dragging a cashflow
// @Tags        drag
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body BeginCashflowDragRequest true "Cashflow"
// @Success     200 {object} map[string]interface{} "Active drag"
// @Failure     404 {object} ErrorResponse "Cashflow not found"
// @Failure     409 {object} ErrorResponse "Another drag is in progress"
// @Router      /drag/cashflow [post]
func (h *DragHandler) BeginCashflowDrag(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BeginCashflowDragRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.dragService.BeginCashflowDrag(workspaceID, req.CashflowID); err != nil {
		respondWithError(c, err)
		return
	}

	h.respondActive(c, workspaceID)
}

// Move handles pointer movement during a deal drag
// @Summary     Move the pointer
// @Tags        drag
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body PointerRequest true "Pointer position"
// @Success     200 {object} map[string]interface{} "Outcome and clamped card position"
// @Router      /drag/move [post]
func (h *DragHandler) Move(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PointerRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	pos, applied, err := h.dragService.Move(workspaceID, models.Position{X: req.X, Y: req.Y})
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondApplied(c, applied, gin.H{"position": pos})
}

// Hover handles the pointer entering or leaving a deal during a cashflow drag
// @Summary     Hover over a deal
// @Tags        drag
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body DealTargetRequest true "Deal under the pointer"
// @Success     200 {object} map[string]bool "Whether the deal is a valid drop target"
// @Router      /drag/hover [post]
func (h *DragHandler) Hover(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DealTargetRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	highlighted, err := h.dragService.Hover(workspaceID, req.DealID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"highlighted": highlighted})
}

// Drop handles releasing a cashflow over a deal
// @Summary     Drop the dragged cashflow
// @Tags        drag
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body DealTargetRequest true "Deal under the pointer"
// @Success     200 {object} AppliedResponse "Whether the cashflow moved"
// @Failure     409 {object} ErrorResponse "No drag is in progress"
// @Router      /drag/drop [post]
func (h *DragHandler) Drop(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DealTargetRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	applied, err := h.dragService.Drop(workspaceID, req.DealID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if applied {
		h.auditService.Log(workspaceID, "DROP_CASHFLOW", "deal", req.DealID, c.ClientIP(), nil)
	}

	respondApplied(c, applied, nil)
}

// End handles releasing the pointer
// @Summary     End the drag
// @Tags        drag
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} drag.EndResult "Drag that was cleared"
// @Router      /drag/end [post]
func (h *DragHandler) End(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	res, err := h.dragService.End(workspaceID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if res.Ended && res.Drag.Moved && res.Drag.Mode == drag.ModeDeal {
		h.auditService.Log(workspaceID, "MOVE_DEAL", "deal", res.Drag.Entity.ID, c.ClientIP(), nil)
	}

	c.JSON(http.StatusOK, res)
}

// GetActive handles reading the drag in progress
// @Summary     Get the active drag
// @Tags        drag
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Active drag or null"
// @Router      /drag [get]
func (h *DragHandler) GetActive(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.respondActive(c, workspaceID)
}

func (h *DragHandler) respondActive(c *gin.Context, workspaceID string) {
	active, err := h.dragService.Active(workspaceID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drag": active})
}
