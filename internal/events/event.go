// Package events carries canvas change notifications to the rendering surface.
package events

import (
	"time"

	"dealcanvas/internal/models"
)

// Type names a change notification.
type Type string

const (
	DealCreated           Type = "deal_created"
	DealUpdated           Type = "deal_updated"
	DealRemoved           Type = "deal_removed"
	CashflowCreated       Type = "cashflow_created"
	CashflowUpdated       Type = "cashflow_updated"
	CashflowRemoved       Type = "cashflow_removed"
	CashflowRelocated     Type = "cashflow_relocated"
	CashflowsRenumbered   Type = "cashflows_renumbered"
	BulkToggleChanged     Type = "bulk_toggle_changed"
	LabelEditChanged      Type = "label_edit_changed"
	DragStarted           Type = "drag_started"
	DragEnded             Type = "drag_ended"
	DropTargetHighlighted Type = "drop_target_highlighted"
	DropTargetCleared     Type = "drop_target_cleared"
)

// Event is one change notification.
type Event struct {
	Type        Type      `json:"type"`
	WorkspaceID string    `json:"workspace_id,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Data        EventData `json:"data"`
}

// EventData is implemented by every payload type.
type EventData interface {
	EventType() Type
}

// New wraps data in an Event stamped with the current time.
func New(data EventData) Event {
	return Event{Type: data.EventType(), Timestamp: time.Now().UTC(), Data: data}
}

// Sink receives events as they happen. A nil Sink discards them.
type Sink func(Event)

// Emit sends data to s if s is set.
func (s Sink) Emit(data EventData) {
	if s != nil {
		s(New(data))
	}
}

// DealCreatedData carries a new deal.
type DealCreatedData struct {
	Deal models.Deal `json:"deal"`
}

// EventType returns the event type for DealCreatedData
func (d *DealCreatedData) EventType() Type { return DealCreated }

// DealUpdatedData carries the deal after a label, field, position or collapse change.
type DealUpdatedData struct {
	Deal models.Deal `json:"deal"`
}

// EventType returns the event type for DealUpdatedData
func (d *DealUpdatedData) EventType() Type { return DealUpdated }

// DealRemovedData lists the deal and the cashflows removed with it.
type DealRemovedData struct {
	DealID      uint   `json:"deal_id"`
	CashflowIDs []uint `json:"cashflow_ids"`
}

// EventType returns the event type for DealRemovedData
func (d *DealRemovedData) EventType() Type { return DealRemoved }

// CashflowCreatedData carries a new cashflow.
type CashflowCreatedData struct {
	Cashflow models.Cashflow `json:"cashflow"`
}

// EventType returns the event type for CashflowCreatedData
func (d *CashflowCreatedData) EventType() Type { return CashflowCreated }

// CashflowUpdatedData carries the cashflow after a label, field or collapse change.
type CashflowUpdatedData struct {
	Cashflow models.Cashflow `json:"cashflow"`
}

// EventType returns the event type for CashflowUpdatedData
func (d *CashflowUpdatedData) EventType() Type { return CashflowUpdated }

// CashflowRemovedData identifies a removed cashflow.
type CashflowRemovedData struct {
	CashflowID uint `json:"cashflow_id"`
	DealID     uint `json:"deal_id"`
}

// EventType returns the event type for CashflowRemovedData
func (d *CashflowRemovedData) EventType() Type { return CashflowRemoved }

// CashflowRelocatedData records a move between deals.
type CashflowRelocatedData struct {
	CashflowID uint `json:"cashflow_id"`
	FromDealID uint `json:"from_deal_id"`
	ToDealID   uint `json:"to_deal_id"`
}

// EventType returns the event type for CashflowRelocatedData
func (d *CashflowRelocatedData) EventType() Type { return CashflowRelocated }

// Ordinal pairs a cashflow with its current position.
type Ordinal struct {
	CashflowID    uint   `json:"cashflow_id"`
	Ordinal       int    `json:"ordinal"`
	ReferenceName string `json:"reference_name"`
}

// CashflowsRenumberedData lists every cashflow of a deal in order.
type CashflowsRenumberedData struct {
	DealID   uint      `json:"deal_id"`
	Ordinals []Ordinal `json:"ordinals"`
}

// EventType returns the event type for CashflowsRenumberedData
func (d *CashflowsRenumberedData) EventType() Type { return CashflowsRenumbered }

// BulkToggleChangedData carries the caption of a deal's show/hide-all control.
type BulkToggleChangedData struct {
	DealID uint   `json:"deal_id"`
	Label  string `json:"label"`
}

// EventType returns the event type for BulkToggleChangedData
func (d *BulkToggleChangedData) EventType() Type { return BulkToggleChanged }

// LabelEditChangedData reports a label editor opening or closing.
type LabelEditChangedData struct {
	Entity           models.EntityRef `json:"entity"`
	Editing          bool             `json:"editing"`
	Label            string           `json:"label"`
	ReferenceVisible bool             `json:"reference_visible"`
}

// EventType returns the event type for LabelEditChangedData
func (d *LabelEditChangedData) EventType() Type { return LabelEditChanged }

// DragData identifies the dragged entity.
type DragData struct {
	Entity models.EntityRef `json:"entity"`
	Moved  bool             `json:"moved,omitempty"`
}

// DragStartedData marks the start of a drag.
type DragStartedData struct{ DragData }

// EventType returns the event type for DragStartedData
func (d *DragStartedData) EventType() Type { return DragStarted }

// DragEndedData marks the end of a drag, whatever the reason.
type DragEndedData struct{ DragData }

// EventType returns the event type for DragEndedData
func (d *DragEndedData) EventType() Type { return DragEnded }

// DropTargetData identifies the deal under a cashflow being dragged.
type DropTargetData struct {
	DealID uint `json:"deal_id"`
}

// DropTargetHighlightedData asks the surface to highlight a candidate target.
type DropTargetHighlightedData struct{ DropTargetData }

// EventType returns the event type for DropTargetHighlightedData
func (d *DropTargetHighlightedData) EventType() Type { return DropTargetHighlighted }

// DropTargetClearedData asks the surface to remove the highlight.
type DropTargetClearedData struct{ DropTargetData }

// EventType returns the event type for DropTargetClearedData
func (d *DropTargetClearedData) EventType() Type { return DropTargetCleared }
