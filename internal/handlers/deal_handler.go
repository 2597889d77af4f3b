package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "dealcanvas/internal/errors"
	"dealcanvas/internal/models"
	"dealcanvas/internal/pagination"
	"dealcanvas/internal/services"
)

// DealHandler handles deal-related requests.
type DealHandler struct {
	canvasService services.CanvasServicer
	dragService   services.DragServicer
	auditService  services.AuditServicer
}

// NewDealHandler creates a new DealHandler.
func NewDealHandler(canvasService services.CanvasServicer, dragService services.DragServicer, auditService services.AuditServicer) *DealHandler {
	return &DealHandler{canvasService: canvasService, dragService: dragService, auditService: auditService}
}

// CreateDealRequest represents the request payload for creating a deal.
// Omitted field values take the template defaults; an omitted position puts
// the card on the default cascade.
type CreateDealRequest struct {
	Kind        models.DealKind  `json:"kind" binding:"required"`
	Position    *models.Position `json:"position"`
	FieldValues []string         `json:"field_values" binding:"omitempty,max=32"`
	Label       string           `json:"label" binding:"max=200"`
}

// UpdateLabelRequest represents a label change. A blank label keeps the
// current one.
type UpdateLabelRequest struct {
	Label string `json:"label" binding:"max=200"`
}

// UpdateFieldRequest represents a single field edit.
type UpdateFieldRequest struct {
	Value *string `json:"value" binding:"required"`
}

// CreateCashflowRequest represents the request payload for adding a cashflow.
type CreateCashflowRequest struct {
	FieldValues []string `json:"field_values" binding:"omitempty,max=32"`
	Label       string   `json:"label" binding:"max=200"`
}

// CreateDeal handles the creation of a new deal
// @Summary     Create a deal
// @Description Create a deal card from a template
// @Tags        deals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateDealRequest true "Deal details"
// @Success     201 {object} models.Deal "Deal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /deals [post]
func (h *DealHandler) CreateDeal(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateDealRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	deal, err := h.canvasService.CreateDeal(workspaceID, services.CreateDealInput{
		Kind:     req.Kind,
		Position: req.Position,
		Values:   req.FieldValues,
		Label:    req.Label,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(workspaceID, "CREATE_DEAL", "deal", deal.ID, c.ClientIP(),
		map[string]interface{}{"kind": deal.Kind, "label": deal.Label})

	c.JSON(http.StatusCreated, gin.H{"deal": deal})
}

// ListDeals handles listing the deals of the workspace
// @Summary     List deals
// @Tags        deals
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Deal] "Paginated deals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /deals [get]
func (h *DealHandler) ListDeals(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.canvasService.ListDeals(workspaceID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDeal handles the retrieval of one deal
// @Summary     Get a deal
// @Tags        deals
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Deal ID"
// @Success     200 {object} models.Deal "Deal details"
// @Failure     404 {object} ErrorResponse "Deal not found"
// @Router      /deals/{id} [get]
func (h *DealHandler) GetDeal(c *gin.Context) {
	workspaceID, dealID, ok := h.target(c)
	if !ok {
		return
	}

	deal, err := h.canvasService.GetDeal(workspaceID, dealID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deal": deal})
}

// DeleteDeal handles removing a deal and its cashflows
// @Summary     Delete a deal
// @Tags        deals
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Deal ID"
// @Success     200 {object} AppliedResponse "Outcome"
// @Router      /deals/{id} [delete]
func (h *DealHandler) DeleteDeal(c *gin.Context) {
	workspaceID, dealID, ok := h.target(c)
	if !ok {
		return
	}

	applied, err := h.canvasService.RemoveDeal(workspaceID, dealID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if applied {
		h.auditService.Log(workspaceID, "DELETE_DEAL", "deal", dealID, c.ClientIP(), nil)
	}

	respondApplied(c, applied, nil)
}

// UpdateDealLabel handles renaming a deal
// @Summary     Rename a deal
// @Tags        deals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                true "Deal ID"
// @Param       request body UpdateLabelRequest true "New label"
// @Success     200 {object} AppliedResponse "Outcome"
// @Router      /deals/{id}/label [put]
func (h *DealHandler) UpdateDealLabel(c *gin.Context) {
	workspaceID, dealID, ok := h.target(c)
	if !ok {
		return
	}

	var req UpdateLabelRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	applied, err := h.canvasService.SetDealLabel(workspaceID, dealID, req.Label)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if applied {
		h.auditService.Log(workspaceID, "RENAME_DEAL", "deal", dealID, c.ClientIP(),
			map[string]interface{}{"label": req.Label})
	}

	respondApplied(c, applied, nil)
}

// UpdateDealField handles editing one field of a deal
// @Summary     Edit a deal field
// @Tags        deals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                true "Deal ID"
// @Param       index   path int                true "Zero-based field index"
// @Param       request body UpdateFieldRequest true "New value"
// @Success     200 {object} AppliedResponse "Outcome"
// @Failure     400 {object} ErrorResponse "Invalid value or index"
// @Router      /deals/{id}/fields/{index} [put]
func (h *DealHandler) UpdateDealField(c *gin.Context) {
	workspaceID, dealID, ok := h.target(c)
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

	applied, err := h.canvasService.SetDealField(workspaceID, dealID, index, *req.Value)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if applied {
		h.auditService.Log(workspaceID, "UPDATE_DEAL_FIELD", "deal", dealID, c.ClientIP(),
			map[string]interface{}{"index": index, "value": *req.Value})
	}

	respondApplied(c, applied, nil)
}

// ToggleDeal handles collapsing or expanding a deal
// @Summary     Toggle a deal
// @Tags        deals
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Deal ID"
// @Success     200 {object} map[string]bool "Outcome and new collapsed state"
// @Router      /deals/{id}/toggle [post]
func (h *DealHandler) ToggleDeal(c *gin.Context) {
	workspaceID, dealID, ok := h.target(c)
	if !ok {
		return
	}

	collapsed, applied, err := h.canvasService.ToggleDeal(workspaceID, dealID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondApplied(c, applied, gin.H{"collapsed": collapsed})
}

// ClickDealHeader handles a click on a deal header. The click that ends a
// drag which moved the card does not toggle it.
// @Summary     Click a deal header
// @Tags        deals
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Deal ID"
// @Success     200 {object} map[string]bool "Outcome and new collapsed state"
// @Router      /deals/{id}/click [post]
func (h *DealHandler) ClickDealHeader(c *gin.Context) {
	workspaceID, dealID, ok := h.target(c)
	if !ok {
		return
	}

	collapsed, toggled, err := h.dragService.ClickHeader(workspaceID, dealID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondApplied(c, toggled, gin.H{"collapsed": collapsed})
}

// DuplicateDeal handles copying a deal with its cashflows
// @Summary     Duplicate a deal
// @Tags        deals
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Deal ID"
// @Success     201 {object} models.Deal "Copy created"
// @Success     200 {object} AppliedResponse "Source no longer exists"
// @Router      /deals/{id}/duplicate [post]
func (h *DealHandler) DuplicateDeal(c *gin.Context) {
	workspaceID, dealID, ok := h.target(c)
	if !ok {
		return
	}

	deal, err := h.canvasService.DuplicateDeal(workspaceID, dealID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if deal == nil {
		respondApplied(c, false, nil)
		return
	}

	h.auditService.Log(workspaceID, "DUPLICATE_DEAL", "deal", deal.ID, c.ClientIP(),
		map[string]interface{}{"source_id": dealID})

	c.JSON(http.StatusCreated, gin.H{"applied": true, "deal": deal})
}

// ListCashflows handles listing a deal's cashflows in order
// @Summary     List a deal's cashflows
// @Tags        cashflows
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Deal ID"
// @Success     200 {object} map[string][]models.Cashflow "Cashflows"
// @Failure     404 {object} ErrorResponse "Deal not found"
// @Router      /deals/{id}/cashflows [get]
func (h *DealHandler) ListCashflows(c *gin.Context) {
	workspaceID, dealID, ok := h.target(c)
	if !ok {
		return
	}

	flows, err := h.canvasService.ListCashflows(workspaceID, dealID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cashflows": flows})
}

// CreateCashflow handles adding a cashflow to a deal
// @Summary     Add a cashflow
// @Tags        cashflows
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                   true "Deal ID"
// @Param       request body CreateCashflowRequest false "Cashflow details"
// @Success     201 {object} models.Cashflow "Cashflow created"
// @Success     200 {object} AppliedResponse "Deal gone or without cashflow support"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /deals/{id}/cashflows [post]
func (h *DealHandler) CreateCashflow(c *gin.Context) {
	workspaceID, dealID, ok := h.target(c)
	if !ok {
		return
	}

	var req CreateCashflowRequest
	if c.Request.ContentLength != 0 {
		if err := bindJSON(c, &req); err != nil {
			respondWithError(c, err)
			return
		}
	}

	cf, err := h.canvasService.CreateCashflow(workspaceID, dealID, req.FieldValues, req.Label)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if cf == nil {
		respondApplied(c, false, nil)
		return
	}

	h.auditService.Log(workspaceID, "CREATE_CASHFLOW", "cashflow", cf.ID, c.ClientIP(),
		map[string]interface{}{"deal_id": dealID})

	c.JSON(http.StatusCreated, gin.H{"applied": true, "cashflow": cf})
}

// ToggleAllCashflows handles the show/hide-all control of a deal
// @Summary     Show or hide all cashflows
// @Tags        cashflows
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Deal ID"
// @Success     200 {object} map[string]interface{} "Outcome and new caption"
// @Router      /deals/{id}/cashflows/toggle-all [post]
func (h *DealHandler) ToggleAllCashflows(c *gin.Context) {
	workspaceID, dealID, ok := h.target(c)
	if !ok {
		return
	}

	label, applied, err := h.canvasService.ToggleAllCashflows(workspaceID, dealID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondApplied(c, applied, gin.H{"bulk_toggle_label": label})
}

// target resolves the workspace and :id of a deal route, writing the error
// response itself on failure.
func (h *DealHandler) target(c *gin.Context) (string, uint, bool) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return "", 0, false
	}
	dealID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return "", 0, false
	}
	return workspaceID, dealID, true
}
