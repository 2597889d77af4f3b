package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dealcanvas/internal/models"
	"dealcanvas/internal/services"
)

// TemplateHandler serves the template catalog.
type TemplateHandler struct {
	templateService services.TemplateServicer
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService services.TemplateServicer) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// ListTemplates returns every deal template and the cashflow template
// @Summary     List templates
// @Tags        templates
// @Produce     json
// @Success     200 {object} map[string]interface{} "Deal templates and the cashflow template"
// @Router      /templates [get]
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"deals":    h.templateService.ListDealTemplates(),
		"cashflow": h.templateService.CashflowTemplate(),
	})
}

// GetTemplate returns one deal template
// @Summary     Get a deal template
// @Tags        templates
// @Produce     json
// @Param       kind path string true "Deal kind"
// @Success     200 {object} templates.DealTemplate "Template"
// @Failure     400 {object} ErrorResponse "Unknown kind"
// @Router      /templates/{kind} [get]
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	tmpl, err := h.templateService.GetDealTemplate(models.DealKind(c.Param("kind")))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"template": tmpl})
}
