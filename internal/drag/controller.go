// Package drag turns pointer notifications into deal moves and cashflow
// transfers. The canvas has a single drag slot: a deal being moved or a
// cashflow in flight, never both.
package drag

import (
	"strconv"

	apperrors "dealcanvas/internal/errors"
	"dealcanvas/internal/events"
	"dealcanvas/internal/models"
)

// Mode says what is being dragged.
type Mode string

const (
	ModeDeal     Mode = "deal"
	ModeCashflow Mode = "cashflow"
)

// Canvas is the subset of the entity store the controller drives.
type Canvas interface {
	Deal(id uint) (models.Deal, bool)
	Cashflow(id uint) (models.Cashflow, bool)
	SetDealPosition(id uint, pos models.Position) bool
	ToggleDealCollapsed(id uint) (bool, bool)
	AcceptsCashflows(dealID uint) bool
	RelocateCashflow(cashflowID, targetDealID uint) (bool, error)
}

// Bounds limits where a deal card may be dragged.
type Bounds struct {
	CanvasWidth float64
	CardWidth   float64
}

// Clamp keeps pos inside the canvas: 0 <= x <= CanvasWidth-CardWidth and
// y >= 0. A zero CanvasWidth leaves x unbounded above.
func (b Bounds) Clamp(pos models.Position) models.Position {
	if b.CanvasWidth > 0 {
		maxX := max(b.CanvasWidth-b.CardWidth, 0)
		pos.X = min(pos.X, maxX)
	}
	pos.X = max(pos.X, 0)
	pos.Y = max(pos.Y, 0)
	return pos
}

// Drag describes the active drag.
type Drag struct {
	Mode       Mode             `json:"mode"`
	Entity     models.EntityRef `json:"entity"`
	GrabOffset models.Position  `json:"grab_offset"`
	Moved      bool             `json:"moved"`
	HoverDeal  uint             `json:"hover_deal_id,omitempty"`
}

// EndResult reports the drag that End cleared, if any.
type EndResult struct {
	Ended bool `json:"ended"`
	Drag  Drag `json:"drag"`
}

// Controller owns the drag slot. It is not safe for concurrent use.
type Controller struct {
	canvas Canvas
	bounds Bounds
	sink   events.Sink

	active *Drag
	// suppress is the deal whose next header click follows a moving drag.
	suppress uint
}

// New creates a controller over canvas. sink may be nil.
func New(canvas Canvas, bounds Bounds, sink events.Sink) *Controller {
	return &Controller{canvas: canvas, bounds: bounds, sink: sink}
}

// Active returns the drag in progress.
func (c *Controller) Active() (Drag, bool) {
	if c.active == nil {
		return Drag{}, false
	}
	return *c.active, true
}

// BeginDealDrag starts moving a deal card. grabOffset is the pointer position
// relative to the card's corner.
func (c *Controller) BeginDealDrag(dealID uint, grabOffset models.Position) error {
	if c.active != nil {
		return apperrors.ErrDragInProgress
	}
	if _, ok := c.canvas.Deal(dealID); !ok {
		return apperrors.WithMessage(apperrors.ErrDealNotFound, "deal "+itoa(dealID)+" not found")
	}
	c.start(&Drag{Mode: ModeDeal, Entity: models.DealRef(dealID), GrabOffset: grabOffset})
	return nil
}

// BeginCashflowDrag puts a cashflow in flight.
func (c *Controller) BeginCashflowDrag(cashflowID uint) error {
	if c.active != nil {
		return apperrors.ErrDragInProgress
	}
	if _, ok := c.canvas.Cashflow(cashflowID); !ok {
		return apperrors.WithMessage(apperrors.ErrCashflowNotFound, "cashflow "+itoa(cashflowID)+" not found")
	}
	c.start(&Drag{Mode: ModeCashflow, Entity: models.CashflowRef(cashflowID)})
	return nil
}

// Move follows the pointer during a deal drag. The card lands at
// pointer - grabOffset, clamped to the canvas, and the new position is
// written back to the store.
func (c *Controller) Move(pointer models.Position) (models.Position, bool) {
	if c.active == nil || c.active.Mode != ModeDeal {
		return models.Position{}, false
	}
	pos := c.bounds.Clamp(pointer.Offset(-c.active.GrabOffset.X, -c.active.GrabOffset.Y))
	if !c.canvas.SetDealPosition(c.active.Entity.ID, pos) {
		return models.Position{}, false
	}
	c.active.Moved = true
	return pos, true
}

// Hover signals that the in-flight cashflow is over dealID. It reports
// whether the deal would accept the drop. Passing 0 clears the highlight.
func (c *Controller) Hover(dealID uint) bool {
	if c.active == nil || c.active.Mode != ModeCashflow {
		return false
	}
	accepts := dealID != 0 && c.canvas.AcceptsCashflows(dealID)
	if !accepts {
		c.clearHover()
		return false
	}
	if c.active.HoverDeal != dealID {
		c.clearHover()
		c.active.HoverDeal = dealID
		c.sink.Emit(&events.DropTargetHighlightedData{DropTargetData: events.DropTargetData{DealID: dealID}})
	}
	return true
}

// Drop relocates the in-flight cashflow to dealID and ends the drag whatever
// the outcome.
func (c *Controller) Drop(dealID uint) (bool, error) {
	if c.active == nil || c.active.Mode != ModeCashflow {
		return false, apperrors.ErrNoActiveDrag
	}
	cashflowID := c.active.Entity.ID
	defer c.End()
	return c.canvas.RelocateCashflow(cashflowID, dealID)
}

// End clears the drag slot. It is safe to call with no drag active.
func (c *Controller) End() EndResult {
	if c.active == nil {
		return EndResult{}
	}
	d := *c.active
	c.clearHover()
	c.active = nil
	if d.Mode == ModeDeal && d.Moved {
		c.suppress = d.Entity.ID
	}
	c.sink.Emit(&events.DragEndedData{DragData: events.DragData{Entity: d.Entity, Moved: d.Moved}})
	return EndResult{Ended: true, Drag: d}
}

// ClickHeader handles a click on a deal header. The click that immediately
// follows a drag which moved that deal is swallowed; any other click toggles
// the deal's collapsed state.
func (c *Controller) ClickHeader(dealID uint) (collapsed, toggled bool) {
	suppressed := c.suppress == dealID
	c.suppress = 0
	if suppressed || c.active != nil {
		return false, false
	}
	return c.canvas.ToggleDealCollapsed(dealID)
}

func (c *Controller) start(d *Drag) {
	c.active = d
	c.suppress = 0
	c.sink.Emit(&events.DragStartedData{DragData: events.DragData{Entity: d.Entity}})
}

func (c *Controller) clearHover() {
	if c.active == nil || c.active.HoverDeal == 0 {
		return
	}
	prev := c.active.HoverDeal
	c.active.HoverDeal = 0
	c.sink.Emit(&events.DropTargetClearedData{DropTargetData: events.DropTargetData{DealID: prev}})
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
