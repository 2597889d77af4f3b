package canvas

import (
	"dealcanvas/internal/events"
	"dealcanvas/internal/models"
)

// renumber assigns ordinals 1..N in sequence order. Labels are untouched; the
// derived reference names follow the new ordinals.
func (s *Store) renumber(d *deal) {
	ordinals := make([]events.Ordinal, 0, len(d.cashflows))
	for i, c := range d.cashflows {
		c.ordinal = i + 1
		ordinals = append(ordinals, events.Ordinal{
			CashflowID:    c.id,
			Ordinal:       c.ordinal,
			ReferenceName: cashflowReferenceName(c.ordinal),
		})
	}
	s.sink.Emit(&events.CashflowsRenumberedData{DealID: d.id, Ordinals: ordinals})
}

// BulkToggleLabel returns the caption of a deal's show/hide-all control.
func (s *Store) BulkToggleLabel(dealID uint) (string, bool) {
	d, ok := s.deals[dealID]
	if !ok {
		return "", false
	}
	return bulkToggleLabel(d), true
}

// ToggleAllCashflows collapses every cashflow of a deal when any of them is
// expanded, and expands them all otherwise. It returns the new caption.
// Deals whose template has no cashflows are left alone.
func (s *Store) ToggleAllCashflows(dealID uint) (string, bool) {
	d, ok := s.deals[dealID]
	if !ok || !s.acceptsCashflows(d) {
		return "", false
	}
	anyExpanded := false
	for _, c := range d.cashflows {
		if !c.collapsed {
			anyExpanded = true
			break
		}
	}
	for _, c := range d.cashflows {
		c.collapsed = anyExpanded
		s.emitCashflowUpdated(c)
	}
	s.emitBulkToggle(d)
	return bulkToggleLabel(d), true
}

// bulkToggleLabel reads "Show All" only when there are cashflows and all of
// them are collapsed.
func bulkToggleLabel(d *deal) string {
	if len(d.cashflows) == 0 {
		return models.BulkToggleHideAll
	}
	for _, c := range d.cashflows {
		if !c.collapsed {
			return models.BulkToggleHideAll
		}
	}
	return models.BulkToggleShowAll
}

func (s *Store) emitBulkToggle(d *deal) {
	if !s.acceptsCashflows(d) {
		return
	}
	s.sink.Emit(&events.BulkToggleChangedData{DealID: d.id, Label: bulkToggleLabel(d)})
}
