package canvas

import (
	"slices"

	"dealcanvas/internal/events"
	"dealcanvas/internal/models"
)

// DuplicateDeal copies a deal and its cashflows into new entities. The copy
// keeps kind, label and field values, gets a fresh id and reference name,
// and is placed DuplicateOffset units down and right of the original.
// Cashflows are copied in order so ordinals line up. Copies start expanded.
func (s *Store) DuplicateDeal(id uint) (models.Deal, bool) {
	src, ok := s.deals[id]
	if !ok {
		return models.Deal{}, false
	}

	d := &deal{
		id:     s.ids.NextDealID(),
		kind:   src.kind,
		label:  src.label,
		values: slices.Clone(src.values),
		pos:    src.pos.Offset(DuplicateOffset, DuplicateOffset),
	}
	s.deals[d.id] = d
	for _, c := range src.cashflows {
		s.appendCashflow(d, slices.Clone(c.values), c.label)
	}

	snap := s.snapshotDeal(d)
	s.sink.Emit(&events.DealCreatedData{Deal: snap})
	return snap, true
}

// DuplicateCashflow appends a copy of a cashflow to the same owner.
func (s *Store) DuplicateCashflow(id uint) (models.Cashflow, bool) {
	src, ok := s.cashflows[id]
	if !ok {
		return models.Cashflow{}, false
	}
	d := s.deals[src.dealID]
	c := s.appendCashflow(d, slices.Clone(src.values), src.label)

	snap := s.snapshotCashflow(c)
	s.sink.Emit(&events.CashflowCreatedData{Cashflow: snap})
	s.emitBulkToggle(d)
	return snap, true
}
