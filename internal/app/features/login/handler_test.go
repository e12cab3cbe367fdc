package login_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/dalemusser/enrollhub/internal/app/features/login"
	"github.com/dalemusser/enrollhub/internal/app/system/auth"
	"github.com/dalemusser/enrollhub/internal/domain/models"
	"github.com/dalemusser/enrollhub/internal/testutil"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*login.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	sm, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "test-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return login.NewHandler(db, sm, zap.NewNop(), nil), testutil.NewFixtures(t, db)
}

func TestHandleLogin_Success(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx.CreateUser(ctx, "Signe Inn", "signe@example.com", models.RoleUser)

	req := testutil.NewJSONRequest(http.MethodPost, "/auth/login",
		`{"email":"SIGNE@example.com","password":"`+testutil.TestPassword+`"}`)
	rec := testutil.NewRecorder()
	h.HandleLogin(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"email":"signe@example.com"`)

	// A session cookie must be set
	found := false
	for _, c := range rec.Header().Values("Set-Cookie") {
		if strings.HasPrefix(c, "test-session=") {
			found = true
		}
	}
	if !found {
		t.Error("expected a session cookie on successful login")
	}
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx.CreateUser(ctx, "Victim", "victim@example.com", models.RoleUser)

	req := testutil.NewJSONRequest(http.MethodPost, "/auth/login",
		`{"email":"victim@example.com","password":"not-the-password"}`)
	rec := testutil.NewRecorder()
	h.HandleLogin(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusUnauthorized)
	rec.AssertContains(t, "invalid email or password")
}

func TestHandleLogin_UnknownEmail(t *testing.T) {
	h, _ := newHandler(t)

	req := testutil.NewJSONRequest(http.MethodPost, "/auth/login",
		`{"email":"ghost@example.com","password":"whatever-works"}`)
	rec := testutil.NewRecorder()
	h.HandleLogin(rec.ResponseRecorder, req)

	// Same message as a wrong password, so account existence is not leaked
	rec.AssertStatus(t, http.StatusUnauthorized)
	rec.AssertContains(t, "invalid email or password")
}

func TestHandleLogin_Validation(t *testing.T) {
	h, _ := newHandler(t)

	req := testutil.NewJSONRequest(http.MethodPost, "/auth/login", `{"email":"not-an-email","password":""}`)
	rec := testutil.NewRecorder()
	h.HandleLogin(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}
