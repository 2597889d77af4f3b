package canvas

import (
	"slices"
	"strconv"

	apperrors "dealcanvas/internal/errors"
	"dealcanvas/internal/events"
)

// RelocateCashflow moves a cashflow to the end of another deal's sequence.
// An unknown cashflow or target is a no-op. A target whose kind does not take
// cashflows is rejected with ErrRelocationTargetUnsupported.
//
// Relocating onto the current owner moves the cashflow to the end of that
// owner's sequence.
func (s *Store) RelocateCashflow(cashflowID, targetDealID uint) (bool, error) {
	c, ok := s.cashflows[cashflowID]
	if !ok {
		return false, nil
	}
	target, ok := s.deals[targetDealID]
	if !ok {
		return false, nil
	}
	if !s.acceptsCashflows(target) {
		return false, apperrors.WithMessage(apperrors.ErrRelocationTargetUnsupported,
			"deal "+strconv.FormatUint(uint64(targetDealID), 10)+" does not accept cashflows")
	}

	source := s.deals[c.dealID]
	source.cashflows = slices.DeleteFunc(source.cashflows, func(x *cashflow) bool { return x.id == c.id })
	target.cashflows = append(target.cashflows, c)
	c.dealID = target.id

	s.sink.Emit(&events.CashflowRelocatedData{CashflowID: c.id, FromDealID: source.id, ToDealID: target.id})
	s.renumber(target)
	s.emitBulkToggle(target)
	if source != target {
		s.renumber(source)
		s.emitBulkToggle(source)
	}
	return true, nil
}
