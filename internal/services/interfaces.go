package services

import (
	"context"
	"time"

	"dealcanvas/internal/drag"
	"dealcanvas/internal/events"
	"dealcanvas/internal/labeledit"
	"dealcanvas/internal/models"
	"dealcanvas/internal/pagination"
	"dealcanvas/internal/templates"
)

// WorkspaceServicer defines the contract for canvas workspace lifecycle.
type WorkspaceServicer interface {
	Create() (*models.WorkspaceInfo, error)
	Get(workspaceID string) (*models.WorkspaceInfo, error)
	Delete(workspaceID string) error
	List() []models.WorkspaceInfo
	Subscribe(workspaceID string) (<-chan events.Event, func(), error)
	EvictIdle() int
	RunJanitor(ctx context.Context, interval time.Duration)
}

// TemplateServicer defines the contract for reading the template catalog.
type TemplateServicer interface {
	ListDealTemplates() []templates.DealTemplate
	GetDealTemplate(kind models.DealKind) (*templates.DealTemplate, error)
	CashflowTemplate() templates.CashflowTemplate
}

// CreateDealInput carries the optional parts of a new deal.
type CreateDealInput struct {
	Kind     models.DealKind
	Position *models.Position
	Values   []string
	Label    string
}

// CanvasServicer defines the contract for deal and cashflow operations.
// Mutations report applied=false when their target no longer exists.
type CanvasServicer interface {
	CreateDeal(workspaceID string, in CreateDealInput) (*models.Deal, error)
	ListDeals(workspaceID string, page pagination.PageRequest) (*pagination.PageResponse[models.Deal], error)
	GetDeal(workspaceID string, dealID uint) (*models.Deal, error)
	RemoveDeal(workspaceID string, dealID uint) (bool, error)
	SetDealLabel(workspaceID string, dealID uint, label string) (bool, error)
	SetDealField(workspaceID string, dealID uint, index int, value string) (bool, error)
	ToggleDeal(workspaceID string, dealID uint) (collapsed, applied bool, err error)
	DuplicateDeal(workspaceID string, dealID uint) (*models.Deal, error)

	ListCashflows(workspaceID string, dealID uint) ([]models.Cashflow, error)
	CreateCashflow(workspaceID string, dealID uint, values []string, label string) (*models.Cashflow, error)
	ToggleAllCashflows(workspaceID string, dealID uint) (label string, applied bool, err error)
	GetCashflow(workspaceID string, cashflowID uint) (*models.Cashflow, error)
	RemoveCashflow(workspaceID string, cashflowID uint) (bool, error)
	SetCashflowLabel(workspaceID string, cashflowID uint, label string) (bool, error)
	SetCashflowField(workspaceID string, cashflowID uint, index int, value string) (bool, error)
	ToggleCashflow(workspaceID string, cashflowID uint) (collapsed, applied bool, err error)
	DuplicateCashflow(workspaceID string, cashflowID uint) (*models.Cashflow, error)
	RelocateCashflow(workspaceID string, cashflowID, targetDealID uint) (bool, error)
}

// LabelEditServicer defines the contract for inline label editing.
type LabelEditServicer interface {
	Begin(workspaceID string, ref models.EntityRef) (draft string, applied bool, err error)
	Commit(workspaceID string, ref models.EntityRef, text string) (label string, applied bool, err error)
	Cancel(workspaceID string, ref models.EntityRef) (label string, applied bool, err error)
	State(workspaceID string, ref models.EntityRef) (labeledit.State, error)
}

// DragServicer defines the contract for pointer-driven moves and transfers.
type DragServicer interface {
	BeginDealDrag(workspaceID string, dealID uint, grabOffset models.Position) error
	BeginCashflowDrag(workspaceID string, cashflowID uint) error
	Move(workspaceID string, pointer models.Position) (pos models.Position, applied bool, err error)
	Hover(workspaceID string, dealID uint) (bool, error)
	Drop(workspaceID string, dealID uint) (bool, error)
	End(workspaceID string) (*drag.EndResult, error)
	Active(workspaceID string) (*drag.Drag, error)
	ClickHeader(workspaceID string, dealID uint) (collapsed, toggled bool, err error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(workspaceID, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
	List(workspaceID string, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error)
}
