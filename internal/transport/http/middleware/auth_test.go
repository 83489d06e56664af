package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hrledger/internal/domain/auth"
	"hrledger/internal/domain/records"
	"hrledger/internal/platform/kv"
)

const testSecret = "test-secret"

func newAuthenticator() *auth.Service {
	return auth.NewService(records.NewStore(kv.NewMemory()), testSecret)
}

func TestAuthMiddlewareSetsUser(t *testing.T) {
	token, err := auth.GenerateToken(testSecret, auth.Claims{UserID: 1, Username: "admin"}, time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	called := false
	handler := Auth(newAuthenticator())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		user, ok := GetUser(r.Context())
		if !ok {
			t.Fatal("expected user in context")
		}
		if user.UserID != 1 || user.Username != "admin" {
			t.Fatalf("unexpected user: %+v", user)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if !called {
		t.Fatal("expected next handler to run")
	}
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	handler := Auth(newAuthenticator())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); ok {
			t.Fatal("did not expect user in context")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
}

func TestAuthMiddlewareRejectsForeignSignature(t *testing.T) {
	token, err := auth.GenerateToken("other-secret", auth.Claims{UserID: 1, Username: "admin"}, time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	handler := Auth(newAuthenticator())(RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for a forged token")
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireUserRejectsAnonymous(t *testing.T) {
	handler := RequireUser(noContent())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
