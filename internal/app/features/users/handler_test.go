package users_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dalemusser/enrollhub/internal/app/features/users"
	"github.com/dalemusser/enrollhub/internal/domain/models"
	"github.com/dalemusser/enrollhub/internal/testutil"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*users.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return users.NewHandler(db, zap.NewNop(), nil), testutil.NewFixtures(t, db)
}

func TestServeList(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateUser(ctx, "Plain User", "plain@example.com", models.RoleUser)
	fx.CreateAdmin(ctx, "Boss Admin", "boss@example.com")

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/admin/users", testutil.AdminUser())
	rec := testutil.NewRecorder()
	h.ServeList(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	var list []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 users, got %d", len(list))
	}
	for _, u := range list {
		if _, ok := u["passwordHash"]; ok {
			t.Error("listing must not expose password hashes")
		}
	}
}

func TestHandleUpdateRole(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	target := fx.CreateUser(ctx, "Promotee", "promotee@example.com", models.RoleUser)

	req := testutil.WithChiURLParam(testutil.NewAuthenticatedJSONRequest(
		http.MethodPut, "/admin/users/"+target.ID.Hex(),
		`{"role":"admin"}`, testutil.AdminUser()), "id", target.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleUpdateRole(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"role":"admin"`)
}

func TestHandleUpdateRole_RejectsSelfDemotion(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	self := fx.CreateAdmin(ctx, "Self Admin", "self@example.com")
	actor := testutil.TestUser{
		ID:    self.ID.Hex(),
		Name:  self.Name,
		Email: self.Email,
		Role:  models.RoleAdmin,
	}

	req := testutil.WithChiURLParam(testutil.NewAuthenticatedJSONRequest(
		http.MethodPut, "/admin/users/"+self.ID.Hex(), `{"role":"user"}`, actor),
		"id", self.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleUpdateRole(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "own role")
}

func TestHandleUpdateRole_BadInput(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	target := fx.CreateUser(ctx, "Target", "target@example.com", models.RoleUser)

	req := testutil.WithChiURLParam(testutil.NewAuthenticatedJSONRequest(
		http.MethodPut, "/admin/users/"+target.ID.Hex(),
		`{"role":"emperor"}`, testutil.AdminUser()), "id", target.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleUpdateRole(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusBadRequest)

	req = testutil.WithChiURLParam(testutil.NewAuthenticatedJSONRequest(
		http.MethodPut, "/admin/users/not-hex", `{"role":"admin"}`, testutil.AdminUser()),
		"id", "not-hex")
	rec = testutil.NewRecorder()
	h.HandleUpdateRole(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}
