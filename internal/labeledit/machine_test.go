package labeledit_test

import (
	"testing"

	"dealcanvas/internal/canvas"
	"dealcanvas/internal/events"
	"dealcanvas/internal/labeledit"
	"dealcanvas/internal/models"
	"dealcanvas/internal/templates"
	"dealcanvas/internal/testutil"
)

func setup(t *testing.T) (*canvas.Store, *labeledit.Machine, *[]events.Event) {
	t.Helper()
	var got []events.Event
	sink := events.Sink(func(e events.Event) {
		if e.Type == events.LabelEditChanged {
			got = append(got, e)
		}
	})
	store := canvas.NewStore(templates.Builtin())
	return store, labeledit.New(store, sink), &got
}

func TestBeginCommit(t *testing.T) {
	store, m, got := setup(t)
	d, err := store.CreateDeal(models.DealKindBond, models.Position{}, nil, "")
	testutil.AssertNoError(t, err)
	ref := models.DealRef(d.ID)

	draft, ok := m.Begin(ref)
	if !ok || draft != "Bond #1" {
		t.Fatalf("expected draft Bond #1, got %q/%v", draft, ok)
	}
	if m.State(ref) != labeledit.StateEditing {
		t.Errorf("expected editing, got %s", m.State(ref))
	}
	snap, _ := store.Deal(d.ID)
	if snap.ReferenceVisible {
		t.Error("reference name should be hidden while editing")
	}

	label, ok := m.Commit(ref, "  Treasury 2035 ")
	if !ok || label != "Treasury 2035" {
		t.Fatalf("unexpected commit result %q/%v", label, ok)
	}
	snap, _ = store.Deal(d.ID)
	if snap.Label != "Treasury 2035" || !snap.ReferenceVisible {
		t.Errorf("unexpected deal after commit %+v", snap)
	}
	if m.State(ref) != labeledit.StateDisplay {
		t.Errorf("expected display, got %s", m.State(ref))
	}

	if len(*got) != 2 {
		t.Fatalf("expected 2 label events, got %d", len(*got))
	}
	opened := (*got)[0].Data.(*events.LabelEditChangedData)
	closed := (*got)[1].Data.(*events.LabelEditChangedData)
	if !opened.Editing || opened.ReferenceVisible {
		t.Errorf("unexpected open event %+v", opened)
	}
	if closed.Editing || !closed.ReferenceVisible || closed.Label != "Treasury 2035" {
		t.Errorf("unexpected close event %+v", closed)
	}
}

func TestCommitBlankReverts(t *testing.T) {
	store, m, _ := setup(t)
	d, _ := store.CreateDeal(models.DealKindSwap, models.Position{}, nil, "Desk swap")
	ref := models.DealRef(d.ID)

	m.Begin(ref)
	label, ok := m.Commit(ref, "   ")
	if !ok || label != "Desk swap" {
		t.Errorf("blank commit should revert, got %q/%v", label, ok)
	}
	snap, _ := store.Deal(d.ID)
	if snap.Label != "Desk swap" {
		t.Errorf("expected Desk swap, got %q", snap.Label)
	}
}

func TestCancel(t *testing.T) {
	store, m, _ := setup(t)
	d, _ := store.CreateDeal(models.DealKindBond, models.Position{}, nil, "")
	cf, _, _ := store.CreateCashflow(d.ID, nil, "")
	ref := models.CashflowRef(cf.ID)

	if draft, _ := m.Begin(ref); draft != "Cashflow #1" {
		t.Fatalf("expected Cashflow #1, got %q", draft)
	}
	label, ok := m.Cancel(ref)
	if !ok || label != "Cashflow #1" {
		t.Errorf("unexpected cancel result %q/%v", label, ok)
	}
	snap, _ := store.Cashflow(cf.ID)
	if !snap.ReferenceVisible {
		t.Error("cancel should restore the reference name")
	}
}

func TestBeginTwiceKeepsDraft(t *testing.T) {
	store, m, got := setup(t)
	d, _ := store.CreateDeal(models.DealKindOption, models.Position{}, nil, "")
	ref := models.DealRef(d.ID)

	m.Begin(ref)
	draft, ok := m.Begin(ref)
	if !ok || draft != "Option #1" {
		t.Errorf("unexpected draft %q/%v", draft, ok)
	}
	if len(*got) != 1 {
		t.Errorf("second begin should not emit, got %d events", len(*got))
	}
}

func TestExitsWithoutSession(t *testing.T) {
	store, m, got := setup(t)
	d, _ := store.CreateDeal(models.DealKindOption, models.Position{}, nil, "")
	ref := models.DealRef(d.ID)

	if _, ok := m.Commit(ref, "x"); ok {
		t.Error("commit without begin should be a no-op")
	}
	if _, ok := m.Cancel(ref); ok {
		t.Error("cancel without begin should be a no-op")
	}
	snap, _ := store.Deal(d.ID)
	if snap.Label != "Option #1" {
		t.Errorf("label changed without an editor: %q", snap.Label)
	}
	if _, ok := m.Begin(models.DealRef(99)); ok {
		t.Error("begin on unknown entity should fail")
	}
	if len(*got) != 0 {
		t.Errorf("expected no events, got %d", len(*got))
	}
}

func TestEntityRemovedWhileEditing(t *testing.T) {
	store, m, _ := setup(t)
	d, _ := store.CreateDeal(models.DealKindBond, models.Position{}, nil, "")
	other, _ := store.CreateDeal(models.DealKindBond, models.Position{}, nil, "")
	ref := models.DealRef(d.ID)

	m.Begin(ref)
	m.Begin(models.DealRef(other.ID))
	store.RemoveDeal(d.ID)

	if _, ok := m.Commit(ref, "ghost"); ok {
		t.Error("commit on a removed entity should be a no-op")
	}
	if m.Editing(ref) {
		t.Error("session should be discarded")
	}

	store.RemoveDeal(other.ID)
	if n := m.Prune(); n != 1 {
		t.Errorf("expected 1 pruned session, got %d", n)
	}
}
