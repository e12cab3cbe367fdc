package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func newTestManager(t *testing.T) *SessionManager {
	t.Helper()
	sm, err := NewSessionManager("test-session-key-for-testing-only", "test-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return sm
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	if _, err := NewSessionManager("", "s", "", false, zap.NewNop()); err == nil {
		t.Fatal("expected error for empty session key")
	}
}

type staticFetcher struct{ u *SessionUser }

func (f staticFetcher) FetchSessionUser(ctx context.Context, userID string) (*SessionUser, error) {
	return f.u, nil
}

func TestLoadSessionUser_RoundTrip(t *testing.T) {
	sm := newTestManager(t)
	sm.SetUserFetcher(staticFetcher{u: &SessionUser{
		ID: "abc123", Name: "Ana", Email: "ana@example.com", Role: "user",
	}})

	// Establish a session and capture the cookie.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	if err := sm.Establish(rec, req, "abc123"); err != nil {
		t.Fatalf("Establish failed: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}

	// Replay the cookie through the middleware.
	var got *SessionUser
	handler := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = CurrentUser(r)
	}))

	req2 := httptest.NewRequest(http.MethodGet, "/applications", nil)
	for _, c := range cookies {
		req2.AddCookie(c)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req2)

	if got == nil {
		t.Fatal("expected user in context after login")
	}
	if got.Email != "ana@example.com" || got.Role != "user" {
		t.Errorf("unexpected session user: %+v", got)
	}
}

func TestRequireSignedIn_Unauthorized(t *testing.T) {
	sm := newTestManager(t)
	called := false
	h := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/applications", nil))

	if called {
		t.Error("next handler must not run without a session")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireRole(t *testing.T) {
	sm := newTestManager(t)

	run := func(u *SessionUser) int {
		h := sm.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
		if u != nil {
			req = WithTestUser(req, u)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := run(nil); code != http.StatusUnauthorized {
		t.Errorf("anonymous: status = %d, want 401", code)
	}
	if code := run(&SessionUser{ID: "x", Role: "user"}); code != http.StatusForbidden {
		t.Errorf("user role: status = %d, want 403", code)
	}
	if code := run(&SessionUser{ID: "x", Role: "admin"}); code != http.StatusOK {
		t.Errorf("admin role: status = %d, want 200", code)
	}
	if code := run(&SessionUser{ID: "x", Role: "ADMIN"}); code != http.StatusOK {
		t.Errorf("role comparison must be case-insensitive, got %d", code)
	}
}

func TestClear_DeletesCookie(t *testing.T) {
	sm := newTestManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	if err := sm.Clear(rec, req); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a deletion cookie")
	}
	if cookies[0].MaxAge != -1 {
		t.Errorf("MaxAge = %d, want -1", cookies[0].MaxAge)
	}
}
