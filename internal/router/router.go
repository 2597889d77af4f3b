// Package router wires handlers and middleware into the HTTP API.
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"dealcanvas/internal/handlers"
	"dealcanvas/internal/middleware"
	"dealcanvas/internal/services"
)

// Deps carries everything the routes need.
type Deps struct {
	Workspaces services.WorkspaceServicer
	Templates  services.TemplateServicer
	Canvas     services.CanvasServicer
	Labels     services.LabelEditServicer
	Drag       services.DragServicer
	Audit      services.AuditServicer
	Tokens     *middleware.TokenIssuer

	AdminAPIKey string
	// Heartbeat is the idle keep-alive interval of the event stream.
	Heartbeat time.Duration
}

// New builds the gin engine with every route registered.
func New(d Deps) *gin.Engine {
	workspaceHandler := handlers.NewWorkspaceHandler(d.Workspaces, d.Tokens, d.Audit)
	templateHandler := handlers.NewTemplateHandler(d.Templates)
	dealHandler := handlers.NewDealHandler(d.Canvas, d.Drag, d.Audit)
	cashflowHandler := handlers.NewCashflowHandler(d.Canvas, d.Audit)
	labelHandler := handlers.NewLabelHandler(d.Labels, d.Audit)
	dragHandler := handlers.NewDragHandler(d.Drag, d.Audit)
	eventsHandler := handlers.NewEventsHandler(d.Workspaces, d.Heartbeat)
	auditHandler := handlers.NewAuditHandler(d.Audit)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogging("/api/health"))
	r.Use(middleware.ErrorHandler())
	r.Use(cors())

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	// Public routes
	v1.POST("/workspaces", workspaceHandler.CreateWorkspace)

	// Operator routes
	admin := v1.Group("/admin")
	admin.Use(middleware.AdminAuthMiddleware(d.AdminAPIKey))
	admin.GET("/workspaces", workspaceHandler.ListWorkspaces)

	// Workspace routes
	protected := v1.Group("/")
	protected.Use(middleware.WorkspaceAuth(d.Tokens))

	protected.GET("/workspace", workspaceHandler.GetWorkspace)
	protected.DELETE("/workspace", workspaceHandler.DeleteWorkspace)
	protected.GET("/events", eventsHandler.Stream)
	protected.GET("/audit", auditHandler.ListAuditLogs)

	templates := protected.Group("/templates")
	templates.GET("", templateHandler.ListTemplates)
	templates.GET("/:kind", templateHandler.GetTemplate)

	deals := protected.Group("/deals")
	deals.GET("", dealHandler.ListDeals)
	deals.POST("", dealHandler.CreateDeal)
	deals.GET("/:id", dealHandler.GetDeal)
	deals.DELETE("/:id", dealHandler.DeleteDeal)
	deals.PUT("/:id/label", dealHandler.UpdateDealLabel)
	deals.PUT("/:id/fields/:index", dealHandler.UpdateDealField)
	deals.POST("/:id/toggle", dealHandler.ToggleDeal)
	deals.POST("/:id/click", dealHandler.ClickDealHeader)
	deals.POST("/:id/duplicate", dealHandler.DuplicateDeal)
	deals.GET("/:id/cashflows", dealHandler.ListCashflows)
	deals.POST("/:id/cashflows", dealHandler.CreateCashflow)
	deals.POST("/:id/cashflows/toggle-all", dealHandler.ToggleAllCashflows)

	cashflows := protected.Group("/cashflows")
	cashflows.GET("/:id", cashflowHandler.GetCashflow)
	cashflows.DELETE("/:id", cashflowHandler.DeleteCashflow)
	cashflows.PUT("/:id/label", cashflowHandler.UpdateCashflowLabel)
	cashflows.PUT("/:id/fields/:index", cashflowHandler.UpdateCashflowField)
	cashflows.POST("/:id/toggle", cashflowHandler.ToggleCashflow)
	cashflows.POST("/:id/duplicate", cashflowHandler.DuplicateCashflow)
	cashflows.POST("/:id/relocate", cashflowHandler.RelocateCashflow)

	labels := protected.Group("/labels/:kind/:id")
	labels.POST("/edit", labelHandler.BeginEdit)
	labels.POST("/commit", labelHandler.CommitEdit)
	labels.POST("/cancel", labelHandler.CancelEdit)
	labels.GET("/state", labelHandler.GetEditState)

	drag := protected.Group("/drag")
	drag.GET("", dragHandler.GetActive)
	drag.POST("/deal", dragHandler.BeginDealDrag)
	drag.POST("/cashflow", dragHandler.BeginCashflowDrag)
	drag.POST("/move", dragHandler.Move)
	drag.POST("/hover", dragHandler.Hover)
	drag.POST("/drop", dragHandler.Drop)
	drag.POST("/end", dragHandler.End)

	return r
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
