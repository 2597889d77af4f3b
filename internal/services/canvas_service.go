package services

import (
	"strconv"

	apperrors "dealcanvas/internal/errors"
	"dealcanvas/internal/models"
	"dealcanvas/internal/pagination"
)

// canvasService runs deal and cashflow operations against a workspace.
type canvasService struct {
	workspaces *Workspaces
}

// NewCanvasService creates a new CanvasServicer.
func NewCanvasService(workspaces *Workspaces) CanvasServicer {
	return &canvasService{workspaces: workspaces}
}

func dealNotFound(id uint) error {
	return apperrors.WithMessage(apperrors.ErrDealNotFound, "deal "+strconv.FormatUint(uint64(id), 10)+" not found")
}

func cashflowNotFound(id uint) error {
	return apperrors.WithMessage(apperrors.ErrCashflowNotFound, "cashflow "+strconv.FormatUint(uint64(id), 10)+" not found")
}

// CreateDeal adds a deal. Without a position it lands on the default cascade.
func (s *canvasService) CreateDeal(workspaceID string, in CreateDealInput) (*models.Deal, error) {
	var deal models.Deal
	err := s.workspaces.do(workspaceID, func(ws *workspace) error {
		pos := ws.store.DefaultPosition()
		if in.Position != nil {
			pos = *in.Position
		}
		var err error
		deal, err = ws.store.CreateDeal(in.Kind, pos, in.Values, in.Label)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

// ListDeals returns one page of deals ordered by id.
func (s *canvasService) ListDeals(workspaceID string, page pagination.PageRequest) (*pagination.PageResponse[models.Deal], error) {
	var resp pagination.PageResponse[models.Deal]
	err := s.workspaces.do(workspaceID, func(ws *workspace) error {
		resp = pagination.Window(ws.store.Deals(), page)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *canvasService) GetDeal(workspaceID string, dealID uint) (*models.Deal, error) {
	var deal models.Deal
	err := s.workspaces.do(workspaceID, func(ws *workspace) error {
		var ok bool
		if deal, ok = ws.store.Deal(dealID); !ok {
			return dealNotFound(dealID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

// RemoveDeal deletes a deal and its cashflows, closing any editor or drag
// that referred to them.
func (s *canvasService) RemoveDeal(workspaceID string, dealID uint) (bool, error) {
	var applied bool
	err := s.workspaces.do(workspaceID, func(ws *workspace) error {
		if applied = ws.store.RemoveDeal(dealID); applied {
			ws.reconcile()
		}
		return nil
	})
	return applied, err
}

func (s *canvasService) SetDealLabel(workspaceID string, dealID uint, label string) (bool, error) {
	var applied bool
	err := s.workspaces.do(workspaceID, func(ws *workspace) error {
		applied = ws.store.SetDealLabel(dealID, label)
		return nil
	})
	return applied, err
}

func (s *canvasService) SetDealField(workspaceID string, dealID uint, index int, value string) (bool, error) {
	var applied bool
	err := s.workspaces.do(workspaceID, func(ws *workspace) error {
		var err error
		applied, err = ws.store.SetDealFieldValue(dealID, index, value)
		return err
	})
	return applied, err
}

func (s *canvasService) ToggleDeal(workspaceID string, dealID uint) (collapsed, applied bool, err error) {
	err = s.workspaces.do(workspaceID, func(ws *workspace) error {
		collapsed, applied = ws.store.ToggleDealCollapsed(dealID)
		return nil
	})
	return collapsed, applied, err
}

// DuplicateDeal copies a deal. A nil deal with a nil error means the source
// no longer exists.
func (s *canvasService) DuplicateDeal(workspaceID string, dealID uint) (*models.Deal, error) {
	var (
		deal models.Deal
		ok   bool
	)
	err := s.workspaces.do(workspaceID, func(ws *workspace) error {
		deal, ok = ws.store.DuplicateDeal(dealID)
		return nil
	})
	if err != nil || !ok {
		return nil, err
	}
	return &deal, nil
}

func (s *canvasService) ListCashflows(workspaceID string, dealID uint) ([]models.Cashflow, error) {
	var flows []models.Cashflow
	err := s.workspaces.do(workspaceID, func(ws *workspace) error {
		var ok bool
		if flows, ok = ws.store.Cashflows(dealID); !ok {
			return dealNotFound(dealID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return flows, nil
}

// CreateCashflow appends a cashflow. A nil cashflow with a nil error means
// the deal is gone or does not take cashflows.
func (s *canvasService) CreateCashflow(workspaceID string, dealID uint, values []string, label string) (*models.Cashflow, error) {
	var (
		cf models.Cashflow
		ok bool
	)
	err := s.workspaces.do(workspaceID, func(ws *workspace) error {
		var err error
		cf, ok, err = ws.store.CreateCashflow(dealID, values, label)
		return err
	})
	if err != nil || !ok {
		return nil, err
	}
	return &cf, nil
}

func (s *canvasService) ToggleAllCashflows(workspaceID string, dealID uint) (label string, applied bool, err error) {
	err = s.workspaces.do(workspaceID, func(ws *workspace) error {
		label, applied = ws.store.ToggleAllCashflows(dealID)
		return nil
	})
	return label, applied, err
}

func (s *canvasService) GetCashflow(workspaceID string, cashflowID uint) (*models.Cashflow, error) {
	var cf models.Cashflow
	err := s.workspaces.do(workspaceID, func(ws *workspace) error {
		var ok bool
		if cf, ok = ws.store.Cashflow(cashflowID); !ok {
			return cashflowNotFound(cashflowID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &cf, nil
}

func (s *canvasService) RemoveCashflow(workspaceID string, cashflowID uint) (bool, error) {
	var applied bool
	err := s.workspaces.do(workspaceID, func(ws *workspace) error {
		if applied = ws.store.RemoveCashflow(cashflowID); applied {
			ws.reconcile()
		}
		return nil
	})
	return applied, err
}

func (s *canvasService) SetCashflowLabel(workspaceID string, cashflowID uint, label string) (bool, error) {
	var applied bool
	err := s.workspaces.do(workspaceID, func(ws *workspace) error {
		applied = ws.store.SetCashflowLabel(cashflowID, label)
		return nil
	})
	return applied, err
}

func (s *canvasService) SetCashflowField(workspaceID string, cashflowID uint, index int, value string) (bool, error) {
	var applied bool
	err := s.workspaces.do(workspaceID, func(ws *workspace) error {
		var err error
		applied, err = ws.store.SetCashflowFieldValue(cashflowID, index, value)
		return err
	})
	return applied, err
}

func (s *canvasService) ToggleCashflow(workspaceID string, cashflowID uint) (collapsed, applied bool, err error) {
	err = s.workspaces.do(workspaceID, func(ws *workspace) error {
		collapsed, applied = ws.store.ToggleCashflowCollapsed(cashflowID)
		return nil
	})
	return collapsed, applied, err
}

// DuplicateCashflow copies a cashflow onto the same deal. A nil cashflow with
// a nil error means the source no longer exists.
func (s *canvasService) DuplicateCashflow(workspaceID string, cashflowID uint) (*models.Cashflow, error) {
	var (
		cf models.Cashflow
		ok bool
	)
	err := s.workspaces.do(workspaceID, func(ws *workspace) error {
		cf, ok = ws.store.DuplicateCashflow(cashflowID)
		return nil
	})
	if err != nil || !ok {
		return nil, err
	}
	return &cf, nil
}

func (s *canvasService) RelocateCashflow(workspaceID string, cashflowID, targetDealID uint) (bool, error) {
	var applied bool
	err := s.workspaces.do(workspaceID, func(ws *workspace) error {
		var err error
		applied, err = ws.store.RelocateCashflow(cashflowID, targetDealID)
		return err
	})
	return applied, err
}
