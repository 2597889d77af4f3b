package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"dealcanvas/internal/labeledit"
	"dealcanvas/internal/models"
)

func setupLabelRouter(handler *LabelHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectWorkspaceID(testWorkspaceID))
	auth.POST("/labels/:kind/:id/edit", handler.BeginEdit)
	auth.POST("/labels/:kind/:id/commit", handler.CommitEdit)
	auth.POST("/labels/:kind/:id/cancel", handler.CancelEdit)
	auth.GET("/labels/:kind/:id/state", handler.GetEditState)
	return r
}

func TestLabelHandler_BeginEdit(t *testing.T) {
	t.Run("returns draft", func(t *testing.T) {
		labelSvc := &mockLabelService{
			beginFn: func(_ string, ref models.EntityRef) (string, bool, error) {
				if ref != models.CashflowRef(3) {
					t.Errorf("unexpected ref %+v", ref)
				}
				return "Coupon", true, nil
			},
		}
		r := setupLabelRouter(NewLabelHandler(labelSvc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/labels/cashflow/3/edit", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		assertApplied(t, result, true)
		if result["draft"] != "Coupon" {
			t.Errorf("unexpected draft %v", result["draft"])
		}
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		r := setupLabelRouter(NewLabelHandler(&mockLabelService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/labels/portfolio/3/edit", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("rejects zero id", func(t *testing.T) {
		r := setupLabelRouter(NewLabelHandler(&mockLabelService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/labels/deal/0/edit", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestLabelHandler_CommitEdit(t *testing.T) {
	t.Run("audits applied commit", func(t *testing.T) {
		labelSvc := &mockLabelService{
			commitFn: func(_ string, ref models.EntityRef, text string) (string, bool, error) {
				if ref != models.DealRef(1) || text != "  Hedge  " {
					t.Errorf("unexpected args %+v %q", ref, text)
				}
				return "Hedge", true, nil
			},
		}
		audit := &mockAuditService{}
		r := setupLabelRouter(NewLabelHandler(labelSvc, audit))

		rec := doRequest(r, "POST", "/labels/deal/1/commit", `{"text":"  Hedge  "}`)

		result := parseJSON(t, rec)
		assertApplied(t, result, true)
		if result["label"] != "Hedge" {
			t.Errorf("unexpected label %v", result["label"])
		}
		if a := audit.actions(); len(a) != 1 || a[0] != "COMMIT_LABEL" {
			t.Errorf("unexpected audit actions %v", a)
		}
	})

	t.Run("commit without session is not applied", func(t *testing.T) {
		labelSvc := &mockLabelService{
			commitFn: func(string, models.EntityRef, string) (string, bool, error) { return "", false, nil },
		}
		audit := &mockAuditService{}
		r := setupLabelRouter(NewLabelHandler(labelSvc, audit))

		rec := doRequest(r, "POST", "/labels/deal/1/commit", `{"text":"x"}`)

		assertApplied(t, parseJSON(t, rec), false)
		if a := audit.actions(); len(a) != 0 {
			t.Errorf("expected no audit entries, got %v", a)
		}
	})
}

func TestLabelHandler_CancelAndState(t *testing.T) {
	labelSvc := &mockLabelService{
		cancelFn: func(string, models.EntityRef) (string, bool, error) { return "Swap", true, nil },
		stateFn: func(string, models.EntityRef) (labeledit.State, error) {
			return labeledit.StateEditing, nil
		},
	}
	r := setupLabelRouter(NewLabelHandler(labelSvc, &mockAuditService{}))

	rec := doRequest(r, "POST", "/labels/deal/1/cancel", "")
	if parseJSON(t, rec)["label"] != "Swap" {
		t.Errorf("unexpected cancel response %s", rec.Body.String())
	}

	rec = doRequest(r, "GET", "/labels/deal/1/state", "")
	if parseJSON(t, rec)["state"] != "editing" {
		t.Errorf("unexpected state response %s", rec.Body.String())
	}
}
