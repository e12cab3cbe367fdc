package stats_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dalemusser/enrollhub/internal/app/features/stats"
	applicationstore "github.com/dalemusser/enrollhub/internal/app/store/applications"
	"github.com/dalemusser/enrollhub/internal/domain/models"
	"github.com/dalemusser/enrollhub/internal/testutil"
	"go.uber.org/zap"
)

func TestServe(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := stats.NewHandler(db, zap.NewNop())
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	kg := fx.CreateInstitution(ctx, "Stat Kindergarten", models.InstitutionKindergarten)
	college := fx.CreateInstitution(ctx, "Stat College", models.InstitutionCollege)
	closed := fx.CreateInstitution(ctx, "Closed School", models.InstitutionSchool)
	fx.DeactivateInstitution(ctx, closed.ID)
	fx.CreateUser(ctx, "Stat User", "stat@example.com", models.RoleUser)
	fx.CreateApplication(ctx, "a@example.com", kg.ID)
	fx.CreateApplication(ctx, "b@example.com", kg.ID)
	app := fx.CreateApplication(ctx, "c@example.com", college.ID)
	if err := applicationstore.New(db).UpdateStatusNotes(ctx, app.ID, models.StatusApproved, nil); err != nil {
		t.Fatalf("UpdateStatusNotes failed: %v", err)
	}

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/admin/stats", testutil.AdminUser())
	rec := testutil.NewRecorder()
	h.Serve(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	var resp struct {
		Totals struct {
			Applications int64            `json:"applications"`
			Institutions int64            `json:"institutions"`
			Users        int64            `json:"users"`
			ByStatus     map[string]int64 `json:"byStatus"`
		} `json:"totals"`
		ByInstitutionType []struct {
			Type  string `json:"type"`
			Count int64  `json:"count"`
		} `json:"byInstitutionType"`
		Last30Days []struct {
			Date   string `json:"date"`
			Status string `json:"status"`
			Count  int64  `json:"count"`
		} `json:"last30Days"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Totals.Applications != 3 {
		t.Errorf("expected 3 applications, got %d", resp.Totals.Applications)
	}
	// The deactivated institution must not count toward the total.
	if resp.Totals.Institutions != 2 {
		t.Errorf("expected 2 active institutions, got %d", resp.Totals.Institutions)
	}
	if resp.Totals.Users != 1 {
		t.Errorf("expected 1 user, got %d", resp.Totals.Users)
	}
	if resp.Totals.ByStatus["pending"] != 2 || resp.Totals.ByStatus["approved"] != 1 {
		t.Errorf("unexpected status totals: %v", resp.Totals.ByStatus)
	}
	if len(resp.ByInstitutionType) != 2 {
		t.Errorf("expected 2 type rows, got %d", len(resp.ByInstitutionType))
	}
	var dayTotal int64
	for _, row := range resp.Last30Days {
		dayTotal += row.Count
	}
	if dayTotal != 3 {
		t.Errorf("expected 3 applications in daily breakdown, got %d", dayTotal)
	}
}

func TestServe_EmptyDatabase(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := stats.NewHandler(db, zap.NewNop())

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/admin/stats", testutil.AdminUser())
	rec := testutil.NewRecorder()
	h.Serve(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	// Aggregation slices serialize as arrays even when empty
	rec.AssertContains(t, `"byInstitutionType":[]`)
	rec.AssertContains(t, `"last30Days":[]`)
}
