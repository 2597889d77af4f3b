package services

import (
	"testing"

	"dealcanvas/internal/labeledit"
	"dealcanvas/internal/models"
	"dealcanvas/internal/testutil"
)

func TestLabelEditService(t *testing.T) {
	r := newTestWorkspaces(t, nil)
	canvasSvc := NewCanvasService(r)
	svc := NewLabelEditService(r)
	ws := mustCreateWorkspace(t, r)
	deal, _ := canvasSvc.CreateDeal(ws, CreateDealInput{Kind: models.DealKindSwap})
	ref := models.DealRef(deal.ID)

	draft, applied, err := svc.Begin(ws, ref)
	testutil.AssertNoError(t, err)
	if !applied || draft != "Interest Rate Swap #1" {
		t.Fatalf("unexpected begin %q/%v", draft, applied)
	}
	state, _ := svc.State(ws, ref)
	if state != labeledit.StateEditing {
		t.Errorf("expected editing, got %s", state)
	}
	got, _ := canvasSvc.GetDeal(ws, deal.ID)
	if got.ReferenceVisible {
		t.Error("reference name should be hidden while editing")
	}

	label, applied, err := svc.Commit(ws, ref, "Payer swap")
	testutil.AssertNoError(t, err)
	if !applied || label != "Payer swap" {
		t.Errorf("unexpected commit %q/%v", label, applied)
	}

	_, applied, _ = svc.Cancel(ws, ref)
	if applied {
		t.Error("cancel without an editor should not apply")
	}
}

func TestLabelEditService_RemovedEntity(t *testing.T) {
	r := newTestWorkspaces(t, nil)
	canvasSvc := NewCanvasService(r)
	svc := NewLabelEditService(r)
	ws := mustCreateWorkspace(t, r)
	deal, _ := canvasSvc.CreateDeal(ws, CreateDealInput{Kind: models.DealKindBond})
	ref := models.DealRef(deal.ID)

	_, _, err := svc.Begin(ws, ref)
	testutil.AssertNoError(t, err)
	_, err = canvasSvc.RemoveDeal(ws, deal.ID)
	testutil.AssertNoError(t, err)

	state, _ := svc.State(ws, ref)
	if state != labeledit.StateDisplay {
		t.Errorf("session of a removed deal should be dropped, got %s", state)
	}
}
