package handlers

import (
	"context"
	"sync"
	"time"

	"dealcanvas/internal/drag"
	apperrors "dealcanvas/internal/errors"
	"dealcanvas/internal/events"
	"dealcanvas/internal/labeledit"
	"dealcanvas/internal/models"
	"dealcanvas/internal/pagination"
	"dealcanvas/internal/services"
)

// --- mock audit service ---

type auditEntry struct {
	workspaceID  string
	action       string
	resourceType string
	resourceID   uint
}

type mockAuditService struct {
	mu      sync.Mutex
	entries []auditEntry
	listFn  func(workspaceID string, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error)
}

func (m *mockAuditService) Log(workspaceID, action, resourceType string, resourceID uint, _ string, _ map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, auditEntry{workspaceID, action, resourceType, resourceID})
}

func (m *mockAuditService) List(workspaceID string, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error) {
	if m.listFn != nil {
		return m.listFn(workspaceID, page)
	}
	resp := pagination.NewPageResponse([]models.AuditLog{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockAuditService) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.action
	}
	return out
}

var _ services.AuditServicer = (*mockAuditService)(nil)

// --- mock workspace service ---

type mockWorkspaceService struct {
	createFn    func() (*models.WorkspaceInfo, error)
	getFn       func(workspaceID string) (*models.WorkspaceInfo, error)
	deleteFn    func(workspaceID string) error
	listFn      func() []models.WorkspaceInfo
	subscribeFn func(workspaceID string) (<-chan events.Event, func(), error)
}

func (m *mockWorkspaceService) Create() (*models.WorkspaceInfo, error) {
	if m.createFn != nil {
		return m.createFn()
	}
	return &models.WorkspaceInfo{ID: testWorkspaceID}, nil
}

func (m *mockWorkspaceService) Get(workspaceID string) (*models.WorkspaceInfo, error) {
	if m.getFn != nil {
		return m.getFn(workspaceID)
	}
	return &models.WorkspaceInfo{ID: workspaceID}, nil
}

func (m *mockWorkspaceService) Delete(workspaceID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(workspaceID)
	}
	return nil
}

func (m *mockWorkspaceService) List() []models.WorkspaceInfo {
	if m.listFn != nil {
		return m.listFn()
	}
	return []models.WorkspaceInfo{}
}

func (m *mockWorkspaceService) Subscribe(workspaceID string) (<-chan events.Event, func(), error) {
	if m.subscribeFn != nil {
		return m.subscribeFn(workspaceID)
	}
	ch := make(chan events.Event)
	close(ch)
	return ch, func() {}, nil
}

func (m *mockWorkspaceService) EvictIdle() int { return 0 }

func (m *mockWorkspaceService) RunJanitor(context.Context, time.Duration) {}

var _ services.WorkspaceServicer = (*mockWorkspaceService)(nil)

// --- mock token generator ---

type mockTokens struct {
	err error
}

func (m *mockTokens) Generate(workspaceID string) (string, time.Time, error) {
	if m.err != nil {
		return "", time.Time{}, m.err
	}
	return "token-" + workspaceID, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

// --- mock canvas service ---

type mockCanvasService struct {
	createDealFn         func(workspaceID string, in services.CreateDealInput) (*models.Deal, error)
	listDealsFn          func(workspaceID string, page pagination.PageRequest) (*pagination.PageResponse[models.Deal], error)
	getDealFn            func(workspaceID string, dealID uint) (*models.Deal, error)
	removeDealFn         func(workspaceID string, dealID uint) (bool, error)
	setDealLabelFn       func(workspaceID string, dealID uint, label string) (bool, error)
	setDealFieldFn       func(workspaceID string, dealID uint, index int, value string) (bool, error)
	toggleDealFn         func(workspaceID string, dealID uint) (bool, bool, error)
	duplicateDealFn      func(workspaceID string, dealID uint) (*models.Deal, error)
	listCashflowsFn      func(workspaceID string, dealID uint) ([]models.Cashflow, error)
	createCashflowFn     func(workspaceID string, dealID uint, values []string, label string) (*models.Cashflow, error)
	toggleAllFn          func(workspaceID string, dealID uint) (string, bool, error)
	getCashflowFn        func(workspaceID string, cashflowID uint) (*models.Cashflow, error)
	removeCashflowFn     func(workspaceID string, cashflowID uint) (bool, error)
	setCashflowLabelFn   func(workspaceID string, cashflowID uint, label string) (bool, error)
	setCashflowFieldFn   func(workspaceID string, cashflowID uint, index int, value string) (bool, error)
	toggleCashflowFn     func(workspaceID string, cashflowID uint) (bool, bool, error)
	duplicateCashflowFn  func(workspaceID string, cashflowID uint) (*models.Cashflow, error)
	relocateCashflowFn   func(workspaceID string, cashflowID, targetDealID uint) (bool, error)
}

func (m *mockCanvasService) CreateDeal(workspaceID string, in services.CreateDealInput) (*models.Deal, error) {
	if m.createDealFn != nil {
		return m.createDealFn(workspaceID, in)
	}
	return &models.Deal{ID: 1, Kind: in.Kind}, nil
}

func (m *mockCanvasService) ListDeals(workspaceID string, page pagination.PageRequest) (*pagination.PageResponse[models.Deal], error) {
	if m.listDealsFn != nil {
		return m.listDealsFn(workspaceID, page)
	}
	resp := pagination.NewPageResponse([]models.Deal{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockCanvasService) GetDeal(workspaceID string, dealID uint) (*models.Deal, error) {
	if m.getDealFn != nil {
		return m.getDealFn(workspaceID, dealID)
	}
	return &models.Deal{ID: dealID}, nil
}

func (m *mockCanvasService) RemoveDeal(workspaceID string, dealID uint) (bool, error) {
	if m.removeDealFn != nil {
		return m.removeDealFn(workspaceID, dealID)
	}
	return true, nil
}

func (m *mockCanvasService) SetDealLabel(workspaceID string, dealID uint, label string) (bool, error) {
	if m.setDealLabelFn != nil {
		return m.setDealLabelFn(workspaceID, dealID, label)
	}
	return true, nil
}

func (m *mockCanvasService) SetDealField(workspaceID string, dealID uint, index int, value string) (bool, error) {
	if m.setDealFieldFn != nil {
		return m.setDealFieldFn(workspaceID, dealID, index, value)
	}
	return true, nil
}

func (m *mockCanvasService) ToggleDeal(workspaceID string, dealID uint) (bool, bool, error) {
	if m.toggleDealFn != nil {
		return m.toggleDealFn(workspaceID, dealID)
	}
	return true, true, nil
}

func (m *mockCanvasService) DuplicateDeal(workspaceID string, dealID uint) (*models.Deal, error) {
	if m.duplicateDealFn != nil {
		return m.duplicateDealFn(workspaceID, dealID)
	}
	return &models.Deal{ID: dealID + 1}, nil
}

func (m *mockCanvasService) ListCashflows(workspaceID string, dealID uint) ([]models.Cashflow, error) {
	if m.listCashflowsFn != nil {
		return m.listCashflowsFn(workspaceID, dealID)
	}
	return []models.Cashflow{}, nil
}

func (m *mockCanvasService) CreateCashflow(workspaceID string, dealID uint, values []string, label string) (*models.Cashflow, error) {
	if m.createCashflowFn != nil {
		return m.createCashflowFn(workspaceID, dealID, values, label)
	}
	return &models.Cashflow{ID: 10, DealID: dealID, Ordinal: 1}, nil
}

func (m *mockCanvasService) ToggleAllCashflows(workspaceID string, dealID uint) (string, bool, error) {
	if m.toggleAllFn != nil {
		return m.toggleAllFn(workspaceID, dealID)
	}
	return models.BulkToggleShowAll, true, nil
}

func (m *mockCanvasService) GetCashflow(workspaceID string, cashflowID uint) (*models.Cashflow, error) {
	if m.getCashflowFn != nil {
		return m.getCashflowFn(workspaceID, cashflowID)
	}
	return &models.Cashflow{ID: cashflowID}, nil
}

func (m *mockCanvasService) RemoveCashflow(workspaceID string, cashflowID uint) (bool, error) {
	if m.removeCashflowFn != nil {
		return m.removeCashflowFn(workspaceID, cashflowID)
	}
	return true, nil
}

func (m *mockCanvasService) SetCashflowLabel(workspaceID string, cashflowID uint, label string) (bool, error) {
	if m.setCashflowLabelFn != nil {
		return m.setCashflowLabelFn(workspaceID, cashflowID, label)
	}
	return true, nil
}

func (m *mockCanvasService) SetCashflowField(workspaceID string, cashflowID uint, index int, value string) (bool, error) {
	if m.setCashflowFieldFn != nil {
		return m.setCashflowFieldFn(workspaceID, cashflowID, index, value)
	}
	return true, nil
}

func (m *mockCanvasService) ToggleCashflow(workspaceID string, cashflowID uint) (bool, bool, error) {
	if m.toggleCashflowFn != nil {
		return m.toggleCashflowFn(workspaceID, cashflowID)
	}
	return true, true, nil
}

func (m *mockCanvasService) DuplicateCashflow(workspaceID string, cashflowID uint) (*models.Cashflow, error) {
	if m.duplicateCashflowFn != nil {
		return m.duplicateCashflowFn(workspaceID, cashflowID)
	}
	return &models.Cashflow{ID: cashflowID + 1}, nil
}

func (m *mockCanvasService) RelocateCashflow(workspaceID string, cashflowID, targetDealID uint) (bool, error) {
	if m.relocateCashflowFn != nil {
		return m.relocateCashflowFn(workspaceID, cashflowID, targetDealID)
	}
	return true, nil
}

var _ services.CanvasServicer = (*mockCanvasService)(nil)

// --- mock label edit service ---

type mockLabelService struct {
	beginFn  func(workspaceID string, ref models.EntityRef) (string, bool, error)
	commitFn func(workspaceID string, ref models.EntityRef, text string) (string, bool, error)
	cancelFn func(workspaceID string, ref models.EntityRef) (string, bool, error)
	stateFn  func(workspaceID string, ref models.EntityRef) (labeledit.State, error)
}

func (m *mockLabelService) Begin(workspaceID string, ref models.EntityRef) (string, bool, error) {
	if m.beginFn != nil {
		return m.beginFn(workspaceID, ref)
	}
	return "", true, nil
}

func (m *mockLabelService) Commit(workspaceID string, ref models.EntityRef, text string) (string, bool, error) {
	if m.commitFn != nil {
		return m.commitFn(workspaceID, ref, text)
	}
	return text, true, nil
}

func (m *mockLabelService) Cancel(workspaceID string, ref models.EntityRef) (string, bool, error) {
	if m.cancelFn != nil {
		return m.cancelFn(workspaceID, ref)
	}
	return "", true, nil
}

func (m *mockLabelService) State(workspaceID string, ref models.EntityRef) (labeledit.State, error) {
	if m.stateFn != nil {
		return m.stateFn(workspaceID, ref)
	}
	return labeledit.StateDisplay, nil
}

var _ services.LabelEditServicer = (*mockLabelService)(nil)

// --- mock drag service ---

type mockDragService struct {
	beginDealFn     func(workspaceID string, dealID uint, grab models.Position) error
	beginCashflowFn func(workspaceID string, cashflowID uint) error
	moveFn          func(workspaceID string, pointer models.Position) (models.Position, bool, error)
	hoverFn         func(workspaceID string, dealID uint) (bool, error)
	dropFn          func(workspaceID string, dealID uint) (bool, error)
	endFn           func(workspaceID string) (*drag.EndResult, error)
	activeFn        func(workspaceID string) (*drag.Drag, error)
	clickHeaderFn   func(workspaceID string, dealID uint) (bool, bool, error)
}

func (m *mockDragService) BeginDealDrag(workspaceID string, dealID uint, grab models.Position) error {
	if m.beginDealFn != nil {
		return m.beginDealFn(workspaceID, dealID, grab)
	}
	return nil
}

func (m *mockDragService) BeginCashflowDrag(workspaceID string, cashflowID uint) error {
	if m.beginCashflowFn != nil {
		return m.beginCashflowFn(workspaceID, cashflowID)
	}
	return nil
}

func (m *mockDragService) Move(workspaceID string, pointer models.Position) (models.Position, bool, error) {
	if m.moveFn != nil {
		return m.moveFn(workspaceID, pointer)
	}
	return pointer, true, nil
}

func (m *mockDragService) Hover(workspaceID string, dealID uint) (bool, error) {
	if m.hoverFn != nil {
		return m.hoverFn(workspaceID, dealID)
	}
	return false, nil
}

func (m *mockDragService) Drop(workspaceID string, dealID uint) (bool, error) {
	if m.dropFn != nil {
		return m.dropFn(workspaceID, dealID)
	}
	return false, apperrors.ErrNoActiveDrag
}

func (m *mockDragService) End(workspaceID string) (*drag.EndResult, error) {
	if m.endFn != nil {
		return m.endFn(workspaceID)
	}
	return &drag.EndResult{}, nil
}

func (m *mockDragService) Active(workspaceID string) (*drag.Drag, error) {
	if m.activeFn != nil {
		return m.activeFn(workspaceID)
	}
	return nil, nil
}

func (m *mockDragService) ClickHeader(workspaceID string, dealID uint) (bool, bool, error) {
	if m.clickHeaderFn != nil {
		return m.clickHeaderFn(workspaceID, dealID)
	}
	return true, true, nil
}

var _ services.DragServicer = (*mockDragService)(nil)
