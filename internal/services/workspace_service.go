package services

import (
	"context"
	"sync"
	"time"

	"dealcanvas/internal/canvas"
	"dealcanvas/internal/drag"
	apperrors "dealcanvas/internal/errors"
	"dealcanvas/internal/events"
	"dealcanvas/internal/labeledit"
	"dealcanvas/internal/logger"
	"dealcanvas/internal/models"
	"dealcanvas/internal/templates"
	"dealcanvas/internal/uuid"
)

// WorkspaceOptions configures every workspace created by a Workspaces registry.
type WorkspaceOptions struct {
	Catalog     *templates.Catalog
	Bounds      drag.Bounds
	IdleTTL     time.Duration
	EventBuffer int
	// Now defaults to time.Now.
	Now func() time.Time
}

// workspace is one canvas with its own store, editors, drag slot and event bus.
// Every operation on it runs under mu.
type workspace struct {
	id        string
	createdAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
	store    *canvas.Store
	labels   *labeledit.Machine
	drag     *drag.Controller
	bus      *events.Bus
}

// Workspaces is the registry of live canvases.
type Workspaces struct {
	opts WorkspaceOptions

	mu         sync.RWMutex
	workspaces map[string]*workspace
}

// NewWorkspaces creates an empty registry.
func NewWorkspaces(opts WorkspaceOptions) *Workspaces {
	if opts.Catalog == nil {
		opts.Catalog = templates.Builtin()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Workspaces{opts: opts, workspaces: make(map[string]*workspace)}
}

var _ WorkspaceServicer = (*Workspaces)(nil)

// Catalog returns the template catalog shared by all workspaces.
func (r *Workspaces) Catalog() *templates.Catalog {
	return r.opts.Catalog
}

// Create opens a new empty canvas.
func (r *Workspaces) Create() (*models.WorkspaceInfo, error) {
	now := r.opts.Now()
	ws := &workspace{
		id:        uuid.New(),
		createdAt: now,
		lastSeen:  now,
		bus:       events.NewBus(r.opts.EventBuffer),
	}
	id := ws.id
	sink := events.Sink(func(e events.Event) {
		e.WorkspaceID = id
		ws.bus.Publish(e)
	})
	ws.store = canvas.NewStore(r.opts.Catalog, canvas.WithSink(sink))
	ws.labels = labeledit.New(ws.store, sink)
	ws.drag = drag.New(ws.store, r.opts.Bounds, sink)

	r.mu.Lock()
	r.workspaces[ws.id] = ws
	r.mu.Unlock()

	logger.Get().Infow("workspace created", "workspace_id", ws.id)
	info := ws.info()
	return &info, nil
}

// Get describes a workspace.
func (r *Workspaces) Get(workspaceID string) (*models.WorkspaceInfo, error) {
	var info models.WorkspaceInfo
	err := r.do(workspaceID, func(ws *workspace) error {
		info = ws.info()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// Delete closes a workspace and disconnects its subscribers.
func (r *Workspaces) Delete(workspaceID string) error {
	r.mu.Lock()
	ws, ok := r.workspaces[workspaceID]
	delete(r.workspaces, workspaceID)
	r.mu.Unlock()
	if !ok {
		return apperrors.ErrWorkspaceNotFound
	}
	ws.bus.Close()
	logger.Get().Infow("workspace deleted", "workspace_id", workspaceID)
	return nil
}

// List describes every live workspace.
func (r *Workspaces) List() []models.WorkspaceInfo {
	r.mu.RLock()
	all := make([]*workspace, 0, len(r.workspaces))
	for _, ws := range r.workspaces {
		all = append(all, ws)
	}
	r.mu.RUnlock()

	out := make([]models.WorkspaceInfo, 0, len(all))
	for _, ws := range all {
		ws.mu.Lock()
		out = append(out, ws.info())
		ws.mu.Unlock()
	}
	return out
}

// Subscribe returns the change stream of a workspace. The channel is closed
// when the workspace goes away or the returned cancel func is called.
func (r *Workspaces) Subscribe(workspaceID string) (<-chan events.Event, func(), error) {
	ws, err := r.lookup(workspaceID)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := ws.bus.Subscribe()
	return ch, cancel, nil
}

// EvictIdle removes workspaces that have not been used for longer than the
// configured idle TTL and returns how many were removed. A zero TTL disables
// eviction.
func (r *Workspaces) EvictIdle() int {
	if r.opts.IdleTTL <= 0 {
		return 0
	}
	cutoff := r.opts.Now().Add(-r.opts.IdleTTL)

	r.mu.Lock()
	var evicted []*workspace
	for id, ws := range r.workspaces {
		ws.mu.Lock()
		idle := ws.lastSeen.Before(cutoff)
		ws.mu.Unlock()
		if idle {
			delete(r.workspaces, id)
			evicted = append(evicted, ws)
		}
	}
	r.mu.Unlock()

	for _, ws := range evicted {
		ws.bus.Close()
		logger.Get().Infow("workspace evicted", "workspace_id", ws.id, "idle_ttl", r.opts.IdleTTL.String())
	}
	return len(evicted)
}

// RunJanitor evicts idle workspaces every interval until ctx is done.
func (r *Workspaces) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.EvictIdle(); n > 0 {
				logger.Get().Infow("janitor evicted idle workspaces", "count", n)
			}
		}
	}
}

func (r *Workspaces) lookup(workspaceID string) (*workspace, error) {
	r.mu.RLock()
	ws, ok := r.workspaces[workspaceID]
	r.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrWorkspaceNotFound
	}
	return ws, nil
}

// do runs fn with exclusive access to a workspace and marks it as used.
func (r *Workspaces) do(workspaceID string, fn func(ws *workspace) error) error {
	ws, err := r.lookup(workspaceID)
	if err != nil {
		return err
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.lastSeen = r.opts.Now()
	return fn(ws)
}

func (ws *workspace) info() models.WorkspaceInfo {
	deals, cashflows := ws.store.Counts()
	return models.WorkspaceInfo{
		ID:            ws.id,
		CreatedAt:     ws.createdAt,
		LastSeenAt:    ws.lastSeen,
		DealCount:     deals,
		CashflowCount: cashflows,
	}
}

// reconcile drops editors and drags whose entity was removed.
func (ws *workspace) reconcile() {
	ws.labels.Prune()
	active, ok := ws.drag.Active()
	if !ok {
		return
	}
	var exists bool
	switch active.Entity.Kind {
	case models.EntityKindDeal:
		_, exists = ws.store.Deal(active.Entity.ID)
	case models.EntityKindCashflow:
		_, exists = ws.store.Cashflow(active.Entity.ID)
	}
	if !exists {
		ws.drag.End()
	}
}
