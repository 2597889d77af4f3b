package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dealcanvas/internal/services"
)

// CashflowHandler handles cashflow-related requests.
type CashflowHandler struct {
	canvasService services.CanvasServicer
	auditService  services.AuditServicer
}

// NewCashflowHandler creates a new CashflowHandler.
func NewCashflowHandler(canvasService services.CanvasServicer, auditService services.AuditServicer) *CashflowHandler {
	return &CashflowHandler{canvasService: canvasService, auditService: auditService}
}

// RelocateCashflowRequest moves a cashflow to another deal.
type RelocateCashflowRequest struct {
	TargetDealID uint `json:"target_deal_id" binding:"required,min=1"`
}

// GetCashflow handles the retrieval of one cashflow
// @Summary     Get a cashflow
// @Tags        cashflows
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Cashflow ID"
// @Success     200 {object} models.Cashflow "Cashflow details"
// @Failure     404 {object} ErrorResponse "Cashflow not found"
// @Router      /cashflows/{id} [get]
func (h *CashflowHandler) GetCashflow(c *gin.Context) {
	workspaceID, cashflowID, ok := h.target(c)
	if !ok {
		return
	}

	cf, err := h.canvasService.GetCashflow(workspaceID, cashflowID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cashflow": cf})
}

// DeleteCashflow handles removing a cashflow
// @Summary     Delete a cashflow
// @Description Remove a cashflow and renumber its siblings
// @Tags        cashflows
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Cashflow ID"
// @Success     200 {object} AppliedResponse "Outcome"
// @Router      /cashflows/{id} [delete]
func (h *CashflowHandler) DeleteCashflow(c *gin.Context) {
	workspaceID, cashflowID, ok := h.target(c)
	if !ok {
		return
	}

	applied, err := h.canvasService.RemoveCashflow(workspaceID, cashflowID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if applied {
		h.auditService.Log(workspaceID, "DELETE_CASHFLOW", "cashflow", cashflowID, c.ClientIP(), nil)
	}

	respondApplied(c, applied, nil)
}

// UpdateCashflowLabel handles renaming a cashflow
// @Summary     Rename a cashflow
// @Tags        cashflows
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                true "Cashflow ID"
// @Param       request body UpdateLabelRequest true "New label"
// @Success     200 {object} AppliedResponse "Outcome"
// @Router      /cashflows/{id}/label [put]
func (h *CashflowHandler) UpdateCashflowLabel(c *gin.Context) {
	workspaceID, cashflowID, ok := h.target(c)
	if !ok {
		return
	}

	var req UpdateLabelRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	applied, err := h.canvasService.SetCashflowLabel(workspaceID, cashflowID, req.Label)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if applied {
		h.auditService.Log(workspaceID, "RENAME_CASHFLOW", "cashflow", cashflowID, c.ClientIP(),
			map[string]interface{}{"label": req.Label})
	}

	respondApplied(c, applied, nil)
}

// UpdateCashflowField handles editing one field of a cashflow
// @Summary     Edit a cashflow field
// @Tags        cashflows
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                true "Cashflow ID"
// @Param       index   path int                true "Zero-based field index"
// @Param       request body UpdateFieldRequest true "New value"
// @Success     200 {object} AppliedResponse "Outcome"
// @Failure     400 {object} ErrorResponse "Invalid value or index"
// @Router      /cashflows/{id}/fields/{index} [put]
func (h *CashflowHandler) UpdateCashflowField(c *gin.Context) {
	workspaceID, cashflowID, ok := h.target(c)
	if !ok {
		return
	}
	index, err := parseFieldIndex(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateFieldRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	applied, err := h.canvasService.SetCashflowField(workspaceID, cashflowID, index, *req.Value)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if applied {
		h.auditService.Log(workspaceID, "UPDATE_CASHFLOW_FIELD", "cashflow", cashflowID, c.ClientIP(),
			map[string]interface{}{"index": index, "value": *req.Value})
	}

	respondApplied(c, applied, nil)
}

// ToggleCashflow handles collapsing or expanding a cashflow
// @Summary     Toggle a cashflow
// @Tags        cashflows
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Cashflow ID"
// @Success     200 {object} map[string]bool "Outcome and new collapsed state"
// @Router      /cashflows/{id}/toggle [post]
func (h *CashflowHandler) ToggleCashflow(c *gin.Context) {
	workspaceID, cashflowID, ok := h.target(c)
	if !ok {
		return
	}

	collapsed, applied, err := h.canvasService.ToggleCashflow(workspaceID, cashflowID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondApplied(c, applied, gin.H{"collapsed": collapsed})
}

// DuplicateCashflow handles copying a cashflow onto the end of its deal
// @Summary     Duplicate a cashflow
// @Tags        cashflows
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Cashflow ID"
// @Success     201 {object} models.Cashflow "Copy created"
// @Success     200 {object} AppliedResponse "Source no longer exists"
// @Router      /cashflows/{id}/duplicate [post]
func (h *CashflowHandler) DuplicateCashflow(c *gin.Context) {
	workspaceID, cashflowID, ok := h.target(c)
	if !ok {
		return
	}

	cf, err := h.canvasService.DuplicateCashflow(workspaceID, cashflowID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if cf == nil {
		respondApplied(c, false, nil)
		return
	}

	h.auditService.Log(workspaceID, "DUPLICATE_CASHFLOW", "cashflow", cf.ID, c.ClientIP(),
		map[string]interface{}{"source_id": cashflowID})

	c.JSON(http.StatusCreated, gin.H{"applied": true, "cashflow": cf})
}

// RelocateCashflow handles moving a cashflow to another deal
// @Summary     Relocate a cashflow
// @Tags        cashflows
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                     true "Cashflow ID"
// @Param       request body RelocateCashflowRequest true "Target deal"
// @Success     200 {object} AppliedResponse "Outcome"
// @Failure     400 {object} ErrorResponse "Target does not accept cashflows"
// @Router      /cashflows/{id}/relocate [post]
func (h *CashflowHandler) RelocateCashflow(c *gin.Context) {
	workspaceID, cashflowID, ok := h.target(c)
	if !ok {
		return
	}

	var req RelocateCashflowRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	applied, err := h.canvasService.RelocateCashflow(workspaceID, cashflowID, req.TargetDealID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if applied {
		h.auditService.Log(workspaceID, "RELOCATE_CASHFLOW", "cashflow", cashflowID, c.ClientIP(),
			map[string]interface{}{"target_deal_id": req.TargetDealID})
	}

	respondApplied(c, applied, nil)
}

func (h *CashflowHandler) target(c *gin.Context) (string, uint, bool) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return "", 0, false
	}
	cashflowID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return "", 0, false
	}
	return workspaceID, cashflowID, true
}
