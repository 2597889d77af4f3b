package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dealcanvas/internal/models"
	"dealcanvas/internal/services"
)

// TokenGenerator issues workspace access tokens.
type TokenGenerator interface {
	Generate(workspaceID string) (string, time.Time, error)
}

// WorkspaceHandler handles workspace lifecycle requests.
type WorkspaceHandler struct {
	workspaceService services.WorkspaceServicer
	tokens           TokenGenerator
	auditService     services.AuditServicer
}

// NewWorkspaceHandler creates a new WorkspaceHandler.
func NewWorkspaceHandler(workspaceService services.WorkspaceServicer, tokens TokenGenerator, auditService services.AuditServicer) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService, tokens: tokens, auditService: auditService}
}

// CreateWorkspaceResponse carries a new workspace and its access token.
type CreateWorkspaceResponse struct {
	Workspace models.WorkspaceInfo `json:"workspace"`
	Token     string               `json:"token"`
	ExpiresAt time.Time            `json:"expires_at"`
}

// CreateWorkspace opens a new empty canvas
// @Summary     Create a workspace
// @Description Open a new empty canvas and return a bearer token for it
// @Tags        workspaces
// @Produce     json
// @Success     201 {object} CreateWorkspaceResponse "Workspace created"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /workspaces [post]
func (h *WorkspaceHandler) CreateWorkspace(c *gin.Context) {
	ws, err := h.workspaceService.Create()
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, expiresAt, err := h.tokens.Generate(ws.ID)
	if err != nil {
		_ = h.workspaceService.Delete(ws.ID)
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ws.ID, "CREATE_WORKSPACE", "workspace", 0, c.ClientIP(), nil)

	c.JSON(http.StatusCreated, CreateWorkspaceResponse{Workspace: *ws, Token: token, ExpiresAt: expiresAt})
}

// GetWorkspace describes the current workspace
// @Summary     Get the current workspace
// @Tags        workspaces
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.WorkspaceInfo "Workspace details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Workspace not found"
// @Router      /workspace [get]
func (h *WorkspaceHandler) GetWorkspace(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	ws, err := h.workspaceService.Get(workspaceID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"workspace": ws})
}

// DeleteWorkspace discards the current workspace
// @Summary     Delete the current workspace
// @Tags        workspaces
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]string "Workspace deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Workspace not found"
// @Router      /workspace [delete]
func (h *WorkspaceHandler) DeleteWorkspace(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.workspaceService.Delete(workspaceID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(workspaceID, "DELETE_WORKSPACE", "workspace", 0, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Workspace deleted successfully"})
}

// ListWorkspaces lists every live workspace
// @Summary     List workspaces
// @Description Operator view of live canvases
// @Tags        admin
// @Produce     json
// @Param       X-API-Key header string true "Admin API key"
// @Success     200 {object} map[string][]models.WorkspaceInfo "Workspaces"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Router      /admin/workspaces [get]
func (h *WorkspaceHandler) ListWorkspaces(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"workspaces": h.workspaceService.List()})
}
