package status_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dalemusser/enrollhub/internal/app/features/status"
	"github.com/dalemusser/enrollhub/internal/domain/models"
	"github.com/dalemusser/enrollhub/internal/testutil"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*status.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return status.NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestHandleCheck_ByEmail(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	inst := fx.CreateInstitution(ctx, "Status School", models.InstitutionSchool)
	fx.CreateApplication(ctx, "curious@example.com", inst.ID)
	fx.CreateApplication(ctx, "curious@example.com", inst.ID)

	req := testutil.NewJSONRequest(http.MethodPost, "/status", `{"email":"Curious@Example.com"}`)
	rec := testutil.NewRecorder()
	h.HandleCheck(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	var resp struct {
		Applications []map[string]any `json:"applications"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Applications) != 2 {
		t.Fatalf("expected 2 applications, got %d", len(resp.Applications))
	}
	if resp.Applications[0]["institution"] != "Status School" {
		t.Errorf("expected joined institution name, got %v", resp.Applications[0]["institution"])
	}
	if _, ok := resp.Applications[0]["notes"]; ok {
		t.Error("status response must not expose admin notes")
	}
	if _, ok := resp.Applications[0]["email"]; ok {
		t.Error("status response must not echo the email")
	}
}

func TestHandleCheck_ByApplicationID(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	inst := fx.CreateInstitution(ctx, "Lookup School", models.InstitutionSchool)
	app := fx.CreateApplication(ctx, "by-id@example.com", inst.ID)

	req := testutil.NewJSONRequest(http.MethodPost, "/status",
		`{"applicationId":"`+app.ApplicationID+`"}`)
	rec := testutil.NewRecorder()
	h.HandleCheck(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, app.ApplicationID)
}

func TestHandleCheck_NoMatch(t *testing.T) {
	h, _ := newHandler(t)

	req := testutil.NewJSONRequest(http.MethodPost, "/status", `{"email":"ghost@example.com"}`)
	rec := testutil.NewRecorder()
	h.HandleCheck(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestHandleCheck_RequiresCriteria(t *testing.T) {
	h, _ := newHandler(t)

	req := testutil.NewJSONRequest(http.MethodPost, "/status", `{}`)
	rec := testutil.NewRecorder()
	h.HandleCheck(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}
