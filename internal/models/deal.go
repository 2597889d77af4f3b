package models

// DealKind identifies a deal template.
type DealKind string

const (
	DealKindSwap    DealKind = "swap"
	DealKindForward DealKind = "forward"
	DealKindOption  DealKind = "option"
	DealKindBond    DealKind = "bond"
)

// Bulk toggle captions shown on a deal's cashflow section.
const (
	BulkToggleShowAll = "Show All"
	BulkToggleHideAll = "Hide All"
)

// Position is a card's top-left corner on the canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Offset returns p moved by dx, dy.
func (p Position) Offset(dx, dy float64) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Deal is a read-only snapshot of a deal card and its cashflows.
type Deal struct {
	ID               uint       `json:"id"`
	Kind             DealKind   `json:"kind"`
	Label            string     `json:"label"`
	ReferenceName    string     `json:"reference_name"`
	ReferenceVisible bool       `json:"reference_visible"`
	FieldValues      []string   `json:"field_values"`
	Collapsed        bool       `json:"collapsed"`
	Position         Position   `json:"position"`
	HasCashflows     bool       `json:"has_cashflows"`
	BulkToggleLabel  string     `json:"bulk_toggle_label,omitempty"`
	Cashflows        []Cashflow `json:"cashflows"`
}

// Cashflow is a read-only snapshot of a cashflow card.
type Cashflow struct {
	ID               uint     `json:"id"`
	DealID           uint     `json:"deal_id"`
	Ordinal          int      `json:"ordinal"`
	Label            string   `json:"label"`
	ReferenceName    string   `json:"reference_name"`
	ReferenceVisible bool     `json:"reference_visible"`
	FieldValues      []string `json:"field_values"`
	Collapsed        bool     `json:"collapsed"`
}

// EntityKind distinguishes the two labelled entity types.
type EntityKind string

const (
	EntityKindDeal     EntityKind = "deal"
	EntityKindCashflow EntityKind = "cashflow"
)

// EntityRef addresses a deal or a cashflow.
type EntityRef struct {
	Kind EntityKind `json:"kind"`
	ID   uint       `json:"id"`
}

// DealRef returns a reference to the deal with the given id.
func DealRef(id uint) EntityRef { return EntityRef{Kind: EntityKindDeal, ID: id} }

// CashflowRef returns a reference to the cashflow with the given id.
func CashflowRef(id uint) EntityRef { return EntityRef{Kind: EntityKindCashflow, ID: id} }
