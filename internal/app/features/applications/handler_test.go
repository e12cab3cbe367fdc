package applications_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/dalemusser/enrollhub/internal/app/features/applications"
	"github.com/dalemusser/enrollhub/internal/app/system/indexes"
	"github.com/dalemusser/enrollhub/internal/domain/models"
	"github.com/dalemusser/enrollhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*applications.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := applications.NewHandler(db, zap.NewNop(), nil, nil, "EnrollHub", "http://localhost:8080")
	return h, testutil.NewFixtures(t, db)
}

func TestHandleSubmit_Success(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, fx.DB()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	inst := fx.CreateInstitution(ctx, "Target School", models.InstitutionSchool)

	body := `{
		"applicantName":"Young Applicant",
		"birthDate":"2016-02-29",
		"email":"Family@Example.com",
		"phone":"+1 555 0142",
		"institutionId":"` + inst.ID.Hex() + `",
		"documents":[{"name":"birth-certificate.pdf","url":"/uploads/abc.pdf","type":"application/pdf"}]
	}`
	rec := testutil.NewRecorder()
	h.HandleSubmit(rec.ResponseRecorder, testutil.NewJSONRequest(http.MethodPost, "/applications", body))

	rec.AssertStatus(t, http.StatusCreated)
	var resp struct {
		Success       bool   `json:"success"`
		ApplicationID string `json:"applicationId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success true")
	}
	if !strings.HasPrefix(resp.ApplicationID, "APP-") {
		t.Errorf("unexpected application id %q", resp.ApplicationID)
	}
}

func TestHandleSubmit_UnknownInstitution(t *testing.T) {
	h, _ := newHandler(t)

	body := `{
		"applicantName":"Hopeful Applicant",
		"birthDate":"2015-01-15",
		"email":"nobody@example.com",
		"phone":"+1 555 0000",
		"institutionId":"` + primitive.NewObjectID().Hex() + `"
	}`
	rec := testutil.NewRecorder()
	h.HandleSubmit(rec.ResponseRecorder, testutil.NewJSONRequest(http.MethodPost, "/applications", body))
	rec.AssertStatus(t, http.StatusNotFound)

	// Malformed ids read as not-found, not as validation noise
	body = strings.Replace(body, primitive.NewObjectID().Hex(), "not-hex", 1)
	rec = testutil.NewRecorder()
	h.HandleSubmit(rec.ResponseRecorder, testutil.NewJSONRequest(http.MethodPost, "/applications",
		`{"applicantName":"Hopeful Applicant","birthDate":"2015-01-15","email":"nobody@example.com","phone":"+1 555 0000","institutionId":"not-hex"}`))
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestHandleSubmit_Validation(t *testing.T) {
	h, _ := newHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"short name", `{"applicantName":"ab","birthDate":"2015-01-15","email":"a@b.co","phone":"12345","institutionId":"x"}`},
		{"bad date", `{"applicantName":"Valid Name","birthDate":"15/01/2015","email":"a@b.co","phone":"12345","institutionId":"x"}`},
		{"short phone", `{"applicantName":"Valid Name","birthDate":"2015-01-15","email":"a@b.co","phone":"123","institutionId":"x"}`},
		{"missing institution", `{"applicantName":"Valid Name","birthDate":"2015-01-15","email":"a@b.co","phone":"12345"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			h.HandleSubmit(rec.ResponseRecorder, testutil.NewJSONRequest(http.MethodPost, "/applications", tt.body))
			rec.AssertStatus(t, http.StatusBadRequest)
		})
	}
}

func TestServeList_NonAdminScopedToOwnEmail(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	inst := fx.CreateInstitution(ctx, "Shared School", models.InstitutionSchool)
	fx.CreateApplication(ctx, "mine@example.com", inst.ID)
	fx.CreateApplication(ctx, "theirs@example.com", inst.ID)

	user := testutil.RegularUser()
	user.Email = "mine@example.com"

	// The email filter is ignored for non-admins
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/applications?email=theirs@example.com", user)
	rec := testutil.NewRecorder()
	h.ServeList(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	var list []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 application, got %d", len(list))
	}
	if list[0]["email"] != "mine@example.com" {
		t.Errorf("expected own application only, got %v", list[0]["email"])
	}
}

func TestServeList_AdminFilters(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	inst := fx.CreateInstitution(ctx, "Filter School", models.InstitutionSchool)
	other := fx.CreateInstitution(ctx, "Other School", models.InstitutionSchool)
	fx.CreateApplication(ctx, "a@example.com", inst.ID)
	fx.CreateApplication(ctx, "b@example.com", other.ID)

	req := testutil.NewAuthenticatedRequest(
		http.MethodGet, "/applications?institutionId="+inst.ID.Hex(), testutil.AdminUser())
	rec := testutil.NewRecorder()
	h.ServeList(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	var list []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(list) != 1 || list[0]["email"] != "a@example.com" {
		t.Errorf("expected only the filtered application, got %v", list)
	}

	req = testutil.NewAuthenticatedRequest(http.MethodGet, "/applications?status=archived", testutil.AdminUser())
	rec = testutil.NewRecorder()
	h.ServeList(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestServeView_OwnerOrAdmin(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	inst := fx.CreateInstitution(ctx, "Joined School", models.InstitutionSchool)
	app := fx.CreateApplication(ctx, "owner@example.com", inst.ID)

	owner := testutil.RegularUser()
	owner.Email = "owner@example.com"

	req := testutil.WithChiURLParam(testutil.NewAuthenticatedRequest(
		http.MethodGet, "/applications/"+app.ID.Hex(), owner), "id", app.ID.Hex())
	rec := testutil.NewRecorder()
	h.ServeView(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"name":"Joined School"`)

	stranger := testutil.RegularUser()
	stranger.Email = "stranger@example.com"
	req = testutil.WithChiURLParam(testutil.NewAuthenticatedRequest(
		http.MethodGet, "/applications/"+app.ID.Hex(), stranger), "id", app.ID.Hex())
	rec = testutil.NewRecorder()
	h.ServeView(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusForbidden)

	req = testutil.WithChiURLParam(testutil.NewAuthenticatedRequest(
		http.MethodGet, "/applications/"+app.ID.Hex(), testutil.AdminUser()), "id", app.ID.Hex())
	rec = testutil.NewRecorder()
	h.ServeView(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)
}

func TestHandleReview(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	inst := fx.CreateInstitution(ctx, "Review School", models.InstitutionSchool)
	app := fx.CreateApplication(ctx, "review@example.com", inst.ID)

	req := testutil.WithChiURLParam(testutil.NewAuthenticatedJSONRequest(
		http.MethodPut, "/applications/"+app.ID.Hex(),
		`{"status":"approved","notes":"Welcome aboard."}`, testutil.AdminUser()),
		"id", app.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleReview(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != "approved" {
		t.Errorf("expected approved, got %v", resp["status"])
	}
	if resp["notes"] != "Welcome aboard." {
		t.Errorf("expected notes, got %v", resp["notes"])
	}

	// Unrestricted transitions: approved back to rejected is allowed
	req = testutil.WithChiURLParam(testutil.NewAuthenticatedJSONRequest(
		http.MethodPut, "/applications/"+app.ID.Hex(),
		`{"status":"rejected"}`, testutil.AdminUser()), "id", app.ID.Hex())
	rec = testutil.NewRecorder()
	h.HandleReview(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	// Empty body is rejected
	req = testutil.WithChiURLParam(testutil.NewAuthenticatedJSONRequest(
		http.MethodPut, "/applications/"+app.ID.Hex(), `{}`, testutil.AdminUser()), "id", app.ID.Hex())
	rec = testutil.NewRecorder()
	h.HandleReview(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusBadRequest)

	// Unknown application
	missing := primitive.NewObjectID().Hex()
	req = testutil.WithChiURLParam(testutil.NewAuthenticatedJSONRequest(
		http.MethodPut, "/applications/"+missing, `{"status":"approved"}`, testutil.AdminUser()), "id", missing)
	rec = testutil.NewRecorder()
	h.HandleReview(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestHandleExport_CSV(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	inst := fx.CreateInstitution(ctx, "Export School", models.InstitutionSchool)
	app := fx.CreateApplication(ctx, "export@example.com", inst.ID)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/applications/export", testutil.AdminUser())
	rec := testutil.NewRecorder()
	h.HandleExport(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("expected CSV content type, got %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "application_id,applicant_name") {
		t.Error("expected a CSV header row")
	}
	if !strings.Contains(body, app.ApplicationID) {
		t.Error("expected the application row in the export")
	}
}
