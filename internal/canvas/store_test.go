package canvas

import (
	"slices"
	"testing"

	"dealcanvas/internal/events"
	"dealcanvas/internal/models"
	"dealcanvas/internal/templates"
	"dealcanvas/internal/testutil"
)

// recorder collects emitted events.
type recorder struct {
	events []events.Event
}

func (r *recorder) sink() events.Sink {
	return func(e events.Event) { r.events = append(r.events, e) }
}

func (r *recorder) types() []events.Type {
	out := make([]events.Type, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func (r *recorder) reset() { r.events = nil }

func newTestStore(t *testing.T) (*Store, *recorder) {
	t.Helper()
	rec := &recorder{}
	return NewStore(templates.Builtin(), WithSink(rec.sink())), rec
}

func mustCreateDeal(t *testing.T, s *Store, kind models.DealKind) models.Deal {
	t.Helper()
	d, err := s.CreateDeal(kind, s.DefaultPosition(), nil, "")
	testutil.AssertNoError(t, err)
	return d
}

func mustCreateCashflow(t *testing.T, s *Store, dealID uint) models.Cashflow {
	t.Helper()
	cf, ok, err := s.CreateCashflow(dealID, nil, "")
	testutil.AssertNoError(t, err)
	if !ok {
		t.Fatalf("expected cashflow to be created on deal %d", dealID)
	}
	return cf
}

func TestCreateDeal(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		s, rec := newTestStore(t)

		d := mustCreateDeal(t, s, models.DealKindSwap)
		if d.ID != 1 {
			t.Errorf("expected id 1, got %d", d.ID)
		}
		if d.Label != "Interest Rate Swap #1" || d.ReferenceName != "Interest Rate Swap #1" {
			t.Errorf("unexpected label/reference %q/%q", d.Label, d.ReferenceName)
		}
		want := []string{"1,000,000", "3.5%", "5Y", "USD"}
		if !slices.Equal(d.FieldValues, want) {
			t.Errorf("expected %v, got %v", want, d.FieldValues)
		}
		if d.Collapsed || !d.ReferenceVisible || !d.HasCashflows {
			t.Errorf("unexpected flags: %+v", d)
		}
		if d.BulkToggleLabel != models.BulkToggleHideAll {
			t.Errorf("expected %q, got %q", models.BulkToggleHideAll, d.BulkToggleLabel)
		}
		if d.Position != (models.Position{X: 50, Y: 50}) {
			t.Errorf("expected first deal at 50,50, got %+v", d.Position)
		}
		if got := rec.types(); !slices.Equal(got, []events.Type{events.DealCreated}) {
			t.Errorf("unexpected events %v", got)
		}
	})

	t.Run("cascading default position", func(t *testing.T) {
		s, _ := newTestStore(t)
		mustCreateDeal(t, s, models.DealKindForward)
		second := mustCreateDeal(t, s, models.DealKindForward)
		if second.Position != (models.Position{X: 70, Y: 70}) {
			t.Errorf("expected 70,70, got %+v", second.Position)
		}
	})

	t.Run("custom label and values", func(t *testing.T) {
		s, _ := newTestStore(t)
		d, err := s.CreateDeal(models.DealKindOption, models.Position{X: 5, Y: 6}, []string{"90", "Put", "6M", "1.00"}, "  My option ")
		testutil.AssertNoError(t, err)
		if d.Label != "My option" {
			t.Errorf("expected trimmed label, got %q", d.Label)
		}
		if d.ReferenceName != "Option #1" {
			t.Errorf("expected reference name Option #1, got %q", d.ReferenceName)
		}
		if d.FieldValues[1] != "Put" {
			t.Errorf("expected Put, got %q", d.FieldValues[1])
		}
		if d.HasCashflows || d.BulkToggleLabel != "" {
			t.Errorf("option deals take no cashflows: %+v", d)
		}
	})

	t.Run("empty select uses default", func(t *testing.T) {
		s, _ := newTestStore(t)
		d, err := s.CreateDeal(models.DealKindBond, models.Position{}, []string{"2,000", "5%", "7Y", ""}, "")
		testutil.AssertNoError(t, err)
		if d.FieldValues[3] != "AA" {
			t.Errorf("expected default AA, got %q", d.FieldValues[3])
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		s, rec := newTestStore(t)
		_, err := s.CreateDeal("cds", models.Position{}, nil, "")
		testutil.AssertAppError(t, err, "UNKNOWN_TEMPLATE_KIND")
		if len(rec.events) != 0 {
			t.Errorf("expected no events, got %v", rec.types())
		}
	})

	t.Run("field count mismatch", func(t *testing.T) {
		s, _ := newTestStore(t)
		_, err := s.CreateDeal(models.DealKindSwap, models.Position{}, []string{"1"}, "")
		testutil.AssertAppError(t, err, "FIELD_COUNT_MISMATCH")
	})

	t.Run("invalid select value", func(t *testing.T) {
		s, _ := newTestStore(t)
		_, err := s.CreateDeal(models.DealKindSwap, models.Position{}, []string{"1", "2", "3", "JPY"}, "")
		testutil.AssertAppError(t, err, "INVALID_FIELD_VALUE")
		if n, _ := s.Counts(); n != 0 {
			t.Errorf("expected no deals, got %d", n)
		}
	})
}

func TestIdentityUniqueness(t *testing.T) {
	s, _ := newTestStore(t)
	seen := map[uint]bool{}
	for range 5 {
		d := mustCreateDeal(t, s, models.DealKindBond)
		if seen[d.ID] {
			t.Fatalf("deal id %d reused", d.ID)
		}
		seen[d.ID] = true
	}
	s.RemoveDeal(5)
	d := mustCreateDeal(t, s, models.DealKindBond)
	if d.ID != 6 {
		t.Errorf("expected id 6 after removal, got %d", d.ID)
	}

	first := mustCreateCashflow(t, s, 1)
	second := mustCreateCashflow(t, s, 2)
	if first.ID != 1 || second.ID != 2 {
		t.Errorf("cashflow ids should use their own counter, got %d and %d", first.ID, second.ID)
	}
}

func TestRemoveDeal(t *testing.T) {
	t.Run("cascades to cashflows", func(t *testing.T) {
		s, rec := newTestStore(t)
		d := mustCreateDeal(t, s, models.DealKindSwap)
		cf1 := mustCreateCashflow(t, s, d.ID)
		cf2 := mustCreateCashflow(t, s, d.ID)
		rec.reset()

		if !s.RemoveDeal(d.ID) {
			t.Fatal("expected removal")
		}
		if _, ok := s.Deal(d.ID); ok {
			t.Error("deal should be gone")
		}
		for _, id := range []uint{cf1.ID, cf2.ID} {
			if _, ok := s.Cashflow(id); ok {
				t.Errorf("cashflow %d should be gone", id)
			}
		}
		if len(rec.events) != 1 {
			t.Fatalf("expected one event, got %v", rec.types())
		}
		data := rec.events[0].Data.(*events.DealRemovedData)
		if !slices.Equal(data.CashflowIDs, []uint{cf1.ID, cf2.ID}) {
			t.Errorf("unexpected removed cashflows %v", data.CashflowIDs)
		}
	})

	t.Run("absent is a no-op", func(t *testing.T) {
		s, rec := newTestStore(t)
		if s.RemoveDeal(42) {
			t.Error("expected no-op")
		}
		if len(rec.events) != 0 {
			t.Errorf("expected no events, got %v", rec.types())
		}
	})
}

func TestSetDealLabel(t *testing.T) {
	s, _ := newTestStore(t)
	d := mustCreateDeal(t, s, models.DealKindForward)

	if !s.SetDealLabel(d.ID, "  EUR hedge  ") {
		t.Fatal("expected label change")
	}
	got, _ := s.Deal(d.ID)
	if got.Label != "EUR hedge" {
		t.Errorf("expected EUR hedge, got %q", got.Label)
	}
	if got.ReferenceName != "FX Forward #1" {
		t.Errorf("reference name must not follow label, got %q", got.ReferenceName)
	}

	if s.SetDealLabel(d.ID, "   ") {
		t.Error("blank label should be ignored")
	}
	got, _ = s.Deal(d.ID)
	if got.Label != "EUR hedge" {
		t.Errorf("blank label should keep prior label, got %q", got.Label)
	}

	if s.SetDealLabel(99, "x") {
		t.Error("unknown deal should be a no-op")
	}
}

func TestToggleDealCollapsed(t *testing.T) {
	s, _ := newTestStore(t)
	d := mustCreateDeal(t, s, models.DealKindOption)
	_, err := s.SetDealFieldValue(d.ID, 0, "120")
	testutil.AssertNoError(t, err)

	collapsed, ok := s.ToggleDealCollapsed(d.ID)
	if !ok || !collapsed {
		t.Fatalf("expected collapsed, got %v/%v", collapsed, ok)
	}
	got, _ := s.Deal(d.ID)
	if got.ReferenceVisible {
		t.Error("reference name should be hidden while collapsed")
	}
	if got.FieldValues[0] != "120" {
		t.Errorf("values must survive collapse, got %q", got.FieldValues[0])
	}

	collapsed, _ = s.ToggleDealCollapsed(d.ID)
	if collapsed {
		t.Error("expected expanded after second toggle")
	}
	if _, ok := s.ToggleDealCollapsed(7); ok {
		t.Error("unknown deal should be a no-op")
	}
}

func TestSetFieldValue(t *testing.T) {
	s, _ := newTestStore(t)
	d := mustCreateDeal(t, s, models.DealKindBond)
	cf := mustCreateCashflow(t, s, d.ID)

	t.Run("deal text field", func(t *testing.T) {
		ok, err := s.SetDealFieldValue(d.ID, 1, "5.0%")
		testutil.AssertNoError(t, err)
		if !ok {
			t.Fatal("expected change")
		}
		got, _ := s.Deal(d.ID)
		if got.FieldValues[1] != "5.0%" {
			t.Errorf("expected 5.0%%, got %q", got.FieldValues[1])
		}
	})

	t.Run("deal select field", func(t *testing.T) {
		_, err := s.SetDealFieldValue(d.ID, 3, "CCC")
		testutil.AssertAppError(t, err, "INVALID_FIELD_VALUE")
		_, err = s.SetDealFieldValue(d.ID, 3, "AAA")
		testutil.AssertNoError(t, err)
		_, err = s.SetDealFieldValue(d.ID, 3, "")
		testutil.AssertNoError(t, err)
		got, _ := s.Deal(d.ID)
		if got.FieldValues[3] != "AA" {
			t.Errorf("empty select should reset to default, got %q", got.FieldValues[3])
		}
	})

	t.Run("index out of range", func(t *testing.T) {
		_, err := s.SetDealFieldValue(d.ID, 4, "x")
		testutil.AssertAppError(t, err, "FIELD_INDEX_OUT_OF_RANGE")
		_, err = s.SetCashflowFieldValue(cf.ID, -1, "x")
		testutil.AssertAppError(t, err, "FIELD_INDEX_OUT_OF_RANGE")
	})

	t.Run("cashflow field", func(t *testing.T) {
		ok, err := s.SetCashflowFieldValue(cf.ID, 2, "Receipt")
		testutil.AssertNoError(t, err)
		if !ok {
			t.Fatal("expected change")
		}
		got, _ := s.Cashflow(cf.ID)
		if got.FieldValues[2] != "Receipt" {
			t.Errorf("expected Receipt, got %q", got.FieldValues[2])
		}
	})

	t.Run("absent entities", func(t *testing.T) {
		ok, err := s.SetDealFieldValue(99, 0, "x")
		if ok || err != nil {
			t.Errorf("expected silent no-op, got %v/%v", ok, err)
		}
		ok, err = s.SetCashflowFieldValue(99, 0, "x")
		if ok || err != nil {
			t.Errorf("expected silent no-op, got %v/%v", ok, err)
		}
	})
}

func TestCreateCashflow(t *testing.T) {
	t.Run("appends with ordinal labels", func(t *testing.T) {
		s, _ := newTestStore(t)
		d := mustCreateDeal(t, s, models.DealKindSwap)
		for i := 1; i <= 3; i++ {
			cf := mustCreateCashflow(t, s, d.ID)
			if cf.Ordinal != i {
				t.Errorf("expected ordinal %d, got %d", i, cf.Ordinal)
			}
			if want := "Cashflow #" + string(rune('0'+i)); cf.Label != want || cf.ReferenceName != want {
				t.Errorf("expected %q, got %q/%q", want, cf.Label, cf.ReferenceName)
			}
			if !slices.Equal(cf.FieldValues, []string{"2025-01-01", "10,000", "Payment"}) {
				t.Errorf("unexpected defaults %v", cf.FieldValues)
			}
		}
	})

	t.Run("unsupported deal kind is a no-op", func(t *testing.T) {
		s, rec := newTestStore(t)
		d := mustCreateDeal(t, s, models.DealKindForward)
		rec.reset()
		_, ok, err := s.CreateCashflow(d.ID, nil, "")
		if ok || err != nil {
			t.Errorf("expected silent no-op, got %v/%v", ok, err)
		}
		if len(rec.events) != 0 {
			t.Errorf("expected no events, got %v", rec.types())
		}
	})

	t.Run("unknown deal is a no-op", func(t *testing.T) {
		s, _ := newTestStore(t)
		_, ok, err := s.CreateCashflow(3, nil, "")
		if ok || err != nil {
			t.Errorf("expected silent no-op, got %v/%v", ok, err)
		}
	})

	t.Run("value count mismatch", func(t *testing.T) {
		s, _ := newTestStore(t)
		d := mustCreateDeal(t, s, models.DealKindBond)
		_, _, err := s.CreateCashflow(d.ID, []string{"2025-06-01"}, "")
		testutil.AssertAppError(t, err, "FIELD_COUNT_MISMATCH")
	})
}

func TestRemoveCashflowRenumbers(t *testing.T) {
	s, rec := newTestStore(t)
	d := mustCreateDeal(t, s, models.DealKindSwap)
	cf1 := mustCreateCashflow(t, s, d.ID)
	cf2 := mustCreateCashflow(t, s, d.ID)
	cf3 := mustCreateCashflow(t, s, d.ID)
	rec.reset()

	if !s.RemoveCashflow(cf1.ID) {
		t.Fatal("expected removal")
	}
	flows, _ := s.Cashflows(d.ID)
	if len(flows) != 2 {
		t.Fatalf("expected 2 cashflows, got %d", len(flows))
	}
	if flows[0].ID != cf2.ID || flows[0].Ordinal != 1 || flows[0].ReferenceName != "Cashflow #1" {
		t.Errorf("unexpected first cashflow %+v", flows[0])
	}
	if flows[0].Label != "Cashflow #2" {
		t.Errorf("renumbering must not touch labels, got %q", flows[0].Label)
	}
	if flows[1].ID != cf3.ID || flows[1].Ordinal != 2 {
		t.Errorf("unexpected second cashflow %+v", flows[1])
	}
	want := []events.Type{events.CashflowRemoved, events.CashflowsRenumbered, events.BulkToggleChanged}
	if got := rec.types(); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	if s.RemoveCashflow(cf1.ID) {
		t.Error("second removal should be a no-op")
	}
}

func TestSetCashflowLabel(t *testing.T) {
	s, _ := newTestStore(t)
	d := mustCreateDeal(t, s, models.DealKindBond)
	cf := mustCreateCashflow(t, s, d.ID)

	if !s.SetCashflowLabel(cf.ID, "Coupon 1") {
		t.Fatal("expected label change")
	}
	if s.SetCashflowLabel(cf.ID, "") {
		t.Error("blank label should be ignored")
	}
	got, _ := s.Cashflow(cf.ID)
	if got.Label != "Coupon 1" || got.ReferenceName != "Cashflow #1" {
		t.Errorf("unexpected label/reference %q/%q", got.Label, got.ReferenceName)
	}
}

func TestEntityLabel(t *testing.T) {
	s, _ := newTestStore(t)
	d := mustCreateDeal(t, s, models.DealKindBond)
	cf := mustCreateCashflow(t, s, d.ID)

	if label, ok := s.EntityLabel(models.DealRef(d.ID)); !ok || label != "Bond #1" {
		t.Errorf("unexpected deal label %q/%v", label, ok)
	}
	if !s.SetEntityLabel(models.CashflowRef(cf.ID), "Final") {
		t.Fatal("expected cashflow label change")
	}
	if label, _ := s.EntityLabel(models.CashflowRef(cf.ID)); label != "Final" {
		t.Errorf("expected Final, got %q", label)
	}
	if _, ok := s.EntityLabel(models.EntityRef{Kind: "widget", ID: 1}); ok {
		t.Error("unknown kind should not resolve")
	}
}

func TestSnapshotsAreCopies(t *testing.T) {
	s, _ := newTestStore(t)
	d := mustCreateDeal(t, s, models.DealKindSwap)
	d.FieldValues[0] = "mutated"

	got, _ := s.Deal(d.ID)
	if got.FieldValues[0] == "mutated" {
		t.Error("snapshot mutation leaked into the store")
	}
}

func TestDealsOrderedByID(t *testing.T) {
	s, _ := newTestStore(t)
	for _, k := range []models.DealKind{models.DealKindBond, models.DealKindSwap, models.DealKindOption} {
		mustCreateDeal(t, s, k)
	}
	s.RemoveDeal(2)
	mustCreateDeal(t, s, models.DealKindForward)

	var ids []uint
	for _, d := range s.Deals() {
		ids = append(ids, d.ID)
	}
	if !slices.Equal(ids, []uint{1, 3, 4}) {
		t.Errorf("expected [1 3 4], got %v", ids)
	}
}
