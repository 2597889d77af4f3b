// Package canvas is the authoritative in-memory model of deals and cashflows:
// creation, removal, labels, collapse state, field values, relocation,
// renumbering and duplication.
//
// A Store is not safe for concurrent use. Callers serialize access, one user
// input at a time.
package canvas

import (
	"fmt"
	"slices"
	"strings"

	apperrors "dealcanvas/internal/errors"
	"dealcanvas/internal/events"
	"dealcanvas/internal/identity"
	"dealcanvas/internal/models"
	"dealcanvas/internal/templates"
)

// DuplicateOffset is how far a duplicated deal is shifted from its original.
const DuplicateOffset = 20

type deal struct {
	id        uint
	kind      models.DealKind
	label     string
	values    []string
	collapsed bool
	editing   bool
	pos       models.Position
	cashflows []*cashflow
}

type cashflow struct {
	id        uint
	dealID    uint
	ordinal   int
	label     string
	values    []string
	collapsed bool
	editing   bool
}

// Store owns every deal and cashflow of one canvas.
type Store struct {
	catalog   *templates.Catalog
	ids       *identity.Allocator
	deals     map[uint]*deal
	cashflows map[uint]*cashflow
	sink      events.Sink
}

// Option configures a Store.
type Option func(*Store)

// WithSink sends change events to sink.
func WithSink(sink events.Sink) Option {
	return func(s *Store) { s.sink = sink }
}

// WithAllocator uses ids instead of a fresh allocator.
func WithAllocator(ids *identity.Allocator) Option {
	return func(s *Store) { s.ids = ids }
}

// NewStore creates an empty store backed by catalog.
func NewStore(catalog *templates.Catalog, opts ...Option) *Store {
	s := &Store{
		catalog:   catalog,
		ids:       identity.NewAllocator(),
		deals:     make(map[uint]*deal),
		cashflows: make(map[uint]*cashflow),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the template catalog the store was built with.
func (s *Store) Catalog() *templates.Catalog {
	return s.catalog
}

// DefaultPosition is where a new deal lands when the caller gives none: each
// deal cascades 20 units below and right of the previous one.
func (s *Store) DefaultPosition() models.Position {
	step := float64(s.ids.LastDealID()) * DuplicateOffset
	return models.Position{X: 50 + step, Y: 50 + step}
}

// CreateDeal adds a deal of the given kind. values, when non-nil, must match
// the template's field list. A blank label selects the default
// "<Title> #<id>".
func (s *Store) CreateDeal(kind models.DealKind, pos models.Position, values []string, label string) (models.Deal, error) {
	tmpl, err := s.catalog.Lookup(kind)
	if err != nil {
		return models.Deal{}, err
	}
	resolved, err := templates.ResolveValues(tmpl.Fields, values)
	if err != nil {
		return models.Deal{}, err
	}

	d := &deal{
		id:     s.ids.NextDealID(),
		kind:   kind,
		values: resolved,
		pos:    pos,
	}
	d.label = strings.TrimSpace(label)
	if d.label == "" {
		d.label = referenceName(tmpl.Title, d.id)
	}
	s.deals[d.id] = d

	snap := s.snapshotDeal(d)
	s.sink.Emit(&events.DealCreatedData{Deal: snap})
	return snap, nil
}

// RemoveDeal deletes a deal and every cashflow it owns. It reports whether
// the deal existed.
func (s *Store) RemoveDeal(id uint) bool {
	d, ok := s.deals[id]
	if !ok {
		return false
	}
	removed := make([]uint, 0, len(d.cashflows))
	for _, cf := range d.cashflows {
		delete(s.cashflows, cf.id)
		removed = append(removed, cf.id)
	}
	delete(s.deals, id)

	s.sink.Emit(&events.DealRemovedData{DealID: id, CashflowIDs: removed})
	return true
}

// SetDealLabel renames a deal. A label that is blank after trimming leaves
// the current label in place and reports false.
func (s *Store) SetDealLabel(id uint, label string) bool {
	d, ok := s.deals[id]
	if !ok {
		return false
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return false
	}
	d.label = label
	s.emitDealUpdated(d)
	return true
}

// ToggleDealCollapsed flips a deal's collapsed flag and returns the new value.
func (s *Store) ToggleDealCollapsed(id uint) (collapsed, ok bool) {
	d, ok := s.deals[id]
	if !ok {
		return false, false
	}
	d.collapsed = !d.collapsed
	s.emitDealUpdated(d)
	return d.collapsed, true
}

// SetDealPosition moves a deal card.
func (s *Store) SetDealPosition(id uint, pos models.Position) bool {
	d, ok := s.deals[id]
	if !ok {
		return false
	}
	d.pos = pos
	s.emitDealUpdated(d)
	return true
}

// SetDealFieldValue edits one field of a deal. Values are kept whether or
// not the deal is collapsed.
func (s *Store) SetDealFieldValue(id uint, index int, value string) (bool, error) {
	d, ok := s.deals[id]
	if !ok {
		return false, nil
	}
	tmpl, err := s.catalog.Lookup(d.kind)
	if err != nil {
		return false, err
	}
	value, err = checkField(tmpl.Fields, index, value)
	if err != nil {
		return false, err
	}
	d.values[index] = value
	s.emitDealUpdated(d)
	return true, nil
}

// CreateCashflow appends a cashflow to a deal. It is a no-op (ok=false) when
// the deal is absent or its kind does not take cashflows. The default label
// uses the ordinal the cashflow receives at creation.
func (s *Store) CreateCashflow(dealID uint, values []string, label string) (cf models.Cashflow, ok bool, err error) {
	d, exists := s.deals[dealID]
	if !exists {
		return models.Cashflow{}, false, nil
	}
	if !s.acceptsCashflows(d) {
		return models.Cashflow{}, false, nil
	}
	resolved, err := templates.ResolveValues(s.catalog.Cashflow().Fields, values)
	if err != nil {
		return models.Cashflow{}, false, err
	}

	c := s.appendCashflow(d, resolved, label)
	snap := s.snapshotCashflow(c)
	s.sink.Emit(&events.CashflowCreatedData{Cashflow: snap})
	s.emitBulkToggle(d)
	return snap, true, nil
}

// RemoveCashflow deletes a cashflow and renumbers its former owner.
func (s *Store) RemoveCashflow(id uint) bool {
	c, ok := s.cashflows[id]
	if !ok {
		return false
	}
	d := s.deals[c.dealID]
	d.cashflows = slices.DeleteFunc(d.cashflows, func(x *cashflow) bool { return x.id == id })
	delete(s.cashflows, id)

	s.sink.Emit(&events.CashflowRemovedData{CashflowID: id, DealID: d.id})
	s.renumber(d)
	s.emitBulkToggle(d)
	return true
}

// SetCashflowLabel renames a cashflow with the same blank-label rule as deals.
func (s *Store) SetCashflowLabel(id uint, label string) bool {
	c, ok := s.cashflows[id]
	if !ok {
		return false
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return false
	}
	c.label = label
	s.emitCashflowUpdated(c)
	return true
}

// ToggleCashflowCollapsed flips a cashflow's collapsed flag and refreshes
// the owner's bulk toggle caption.
func (s *Store) ToggleCashflowCollapsed(id uint) (collapsed, ok bool) {
	c, ok := s.cashflows[id]
	if !ok {
		return false, false
	}
	c.collapsed = !c.collapsed
	s.emitCashflowUpdated(c)
	s.emitBulkToggle(s.deals[c.dealID])
	return c.collapsed, true
}

// SetCashflowFieldValue edits one field of a cashflow.
func (s *Store) SetCashflowFieldValue(id uint, index int, value string) (bool, error) {
	c, ok := s.cashflows[id]
	if !ok {
		return false, nil
	}
	value, err := checkField(s.catalog.Cashflow().Fields, index, value)
	if err != nil {
		return false, err
	}
	c.values[index] = value
	s.emitCashflowUpdated(c)
	return true, nil
}

// Deal returns a snapshot of one deal.
func (s *Store) Deal(id uint) (models.Deal, bool) {
	d, ok := s.deals[id]
	if !ok {
		return models.Deal{}, false
	}
	return s.snapshotDeal(d), true
}

// Deals returns every deal ordered by id.
func (s *Store) Deals() []models.Deal {
	ids := make([]uint, 0, len(s.deals))
	for id := range s.deals {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]models.Deal, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.snapshotDeal(s.deals[id]))
	}
	return out
}

// Cashflow returns a snapshot of one cashflow.
func (s *Store) Cashflow(id uint) (models.Cashflow, bool) {
	c, ok := s.cashflows[id]
	if !ok {
		return models.Cashflow{}, false
	}
	return s.snapshotCashflow(c), true
}

// Cashflows returns a deal's cashflows in presentation order.
func (s *Store) Cashflows(dealID uint) ([]models.Cashflow, bool) {
	d, ok := s.deals[dealID]
	if !ok {
		return nil, false
	}
	return s.snapshotCashflows(d), true
}

// Ordinal returns a cashflow's 1-based position within its owner.
func (s *Store) Ordinal(cashflowID uint) (int, bool) {
	c, ok := s.cashflows[cashflowID]
	if !ok {
		return 0, false
	}
	return c.ordinal, true
}

// AcceptsCashflows reports whether dealID exists and its kind takes cashflows.
func (s *Store) AcceptsCashflows(dealID uint) bool {
	d, ok := s.deals[dealID]
	return ok && s.acceptsCashflows(d)
}

// Counts returns the number of deals and cashflows.
func (s *Store) Counts() (deals, cashflows int) {
	return len(s.deals), len(s.cashflows)
}

// EntityLabel returns the current label of a deal or cashflow.
func (s *Store) EntityLabel(ref models.EntityRef) (string, bool) {
	switch ref.Kind {
	case models.EntityKindDeal:
		if d, ok := s.deals[ref.ID]; ok {
			return d.label, true
		}
	case models.EntityKindCashflow:
		if c, ok := s.cashflows[ref.ID]; ok {
			return c.label, true
		}
	}
	return "", false
}

// SetEntityLabel renames a deal or cashflow.
func (s *Store) SetEntityLabel(ref models.EntityRef, label string) bool {
	switch ref.Kind {
	case models.EntityKindDeal:
		return s.SetDealLabel(ref.ID, label)
	case models.EntityKindCashflow:
		return s.SetCashflowLabel(ref.ID, label)
	}
	return false
}

// ReferenceVisible reports whether the reference name of a deal or cashflow
// is currently shown.
func (s *Store) ReferenceVisible(ref models.EntityRef) (visible, ok bool) {
	switch ref.Kind {
	case models.EntityKindDeal:
		if d, ok := s.deals[ref.ID]; ok {
			return !d.collapsed && !d.editing, true
		}
	case models.EntityKindCashflow:
		if c, ok := s.cashflows[ref.ID]; ok {
			return !c.collapsed && !c.editing, true
		}
	}
	return false, false
}

// SetEntityEditing marks a deal or cashflow as having its label editor
// open. The reference name is hidden while editing.
func (s *Store) SetEntityEditing(ref models.EntityRef, editing bool) bool {
	switch ref.Kind {
	case models.EntityKindDeal:
		if d, ok := s.deals[ref.ID]; ok {
			d.editing = editing
			return true
		}
	case models.EntityKindCashflow:
		if c, ok := s.cashflows[ref.ID]; ok {
			c.editing = editing
			return true
		}
	}
	return false
}

func (s *Store) acceptsCashflows(d *deal) bool {
	tmpl, err := s.catalog.Lookup(d.kind)
	return err == nil && tmpl.HasCashflows
}

// appendCashflow allocates a cashflow at the end of d. A blank label
// selects "Cashflow #<ordinal>".
func (s *Store) appendCashflow(d *deal, values []string, label string) *cashflow {
	c := &cashflow{
		id:      s.ids.NextCashflowID(),
		dealID:  d.id,
		ordinal: len(d.cashflows) + 1,
		values:  values,
	}
	c.label = strings.TrimSpace(label)
	if c.label == "" {
		c.label = cashflowReferenceName(c.ordinal)
	}
	d.cashflows = append(d.cashflows, c)
	s.cashflows[c.id] = c
	return c
}

// checkField validates an edit of fields[index] and returns the value to
// store. An empty select value falls back to the field default.
func checkField(fields []templates.Field, index int, value string) (string, error) {
	if index < 0 || index >= len(fields) {
		return "", apperrors.WithMessage(apperrors.ErrFieldIndexOutOfRange,
			fmt.Sprintf("field index %d out of range [0,%d)", index, len(fields)))
	}
	f := fields[index]
	if f.Kind == templates.FieldKindSelect && value == "" {
		return f.Default, nil
	}
	if !f.Accepts(value) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidFieldValue,
			"invalid value for "+f.Label+": "+value)
	}
	return value, nil
}

func referenceName(title string, id uint) string {
	return fmt.Sprintf("%s #%d", title, id)
}

func cashflowReferenceName(ordinal int) string {
	return fmt.Sprintf("Cashflow #%d", ordinal)
}

func (s *Store) snapshotDeal(d *deal) models.Deal {
	tmpl, _ := s.catalog.Lookup(d.kind)
	out := models.Deal{
		ID:               d.id,
		Kind:             d.kind,
		Label:            d.label,
		ReferenceName:    referenceName(tmpl.Title, d.id),
		ReferenceVisible: !d.collapsed && !d.editing,
		FieldValues:      slices.Clone(d.values),
		Collapsed:        d.collapsed,
		Position:         d.pos,
		HasCashflows:     tmpl.HasCashflows,
		Cashflows:        s.snapshotCashflows(d),
	}
	if tmpl.HasCashflows {
		out.BulkToggleLabel = bulkToggleLabel(d)
	}
	return out
}

func (s *Store) snapshotCashflows(d *deal) []models.Cashflow {
	out := make([]models.Cashflow, 0, len(d.cashflows))
	for _, c := range d.cashflows {
		out = append(out, s.snapshotCashflow(c))
	}
	return out
}

func (s *Store) snapshotCashflow(c *cashflow) models.Cashflow {
	return models.Cashflow{
		ID:               c.id,
		DealID:           c.dealID,
		Ordinal:          c.ordinal,
		Label:            c.label,
		ReferenceName:    cashflowReferenceName(c.ordinal),
		ReferenceVisible: !c.collapsed && !c.editing,
		FieldValues:      slices.Clone(c.values),
		Collapsed:        c.collapsed,
	}
}

func (s *Store) emitDealUpdated(d *deal) {
	if s.sink == nil {
		return
	}
	s.sink.Emit(&events.DealUpdatedData{Deal: s.snapshotDeal(d)})
}

func (s *Store) emitCashflowUpdated(c *cashflow) {
	if s.sink == nil {
		return
	}
	s.sink.Emit(&events.CashflowUpdatedData{Cashflow: s.snapshotCashflow(c)})
}
