package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func generateTestKeys(t *testing.T) (*rsa.PrivateKey, *rsa.PublicKey) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	return privateKey, &privateKey.PublicKey
}

func createTestToken(privateKey *rsa.PrivateKey, claims jwt.MapClaims, expired bool) string {
	exp := time.Now().Add(time.Hour)
	if expired {
		exp = time.Now().Add(-time.Hour)
	}
	claims["exp"] = exp.Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tokenString, _ := token.SignedString(privateKey)
	return tokenString
}

func TestAuthenticate_NoAuthHeader(t *testing.T) {
	_, publicKey := generateTestKeys(t)
	m := NewAuthMiddleware(publicKey)

	handler := m.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("POST", "/queues/q1/join", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticate_InvalidHeaderFormat(t *testing.T) {
	_, publicKey := generateTestKeys(t)
	m := NewAuthMiddleware(publicKey)

	handler := m.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("POST", "/queues/q1/join", nil)
	req.Header.Set("Authorization", "InvalidFormat")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	_, publicKey := generateTestKeys(t)
	m := NewAuthMiddleware(publicKey)

	handler := m.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("POST", "/queues/q1/join", nil)
	req.Header.Set("Authorization", "Bearer invalid.token.here")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	privateKey, publicKey := generateTestKeys(t)
	m := NewAuthMiddleware(publicKey)

	token := createTestToken(privateKey, jwt.MapClaims{"sub": "user-123"}, true)

	handler := m.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("POST", "/queues/q1/join", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticate_MissingSubject(t *testing.T) {
	privateKey, publicKey := generateTestKeys(t)
	m := NewAuthMiddleware(publicKey)

	token := createTestToken(privateKey, jwt.MapClaims{"role": "customer"}, false)

	handler := m.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("POST", "/queues/q1/join", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticate_ValidToken(t *testing.T) {
	privateKey, publicKey := generateTestKeys(t)
	m := NewAuthMiddleware(publicKey)

	token := createTestToken(privateKey, jwt.MapClaims{
		"sub":  "user-123",
		"role": "customer",
	}, false)

	handlerCalled := false
	handler := m.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		if got := Principal(r); got != "user-123" {
			t.Errorf("expected principal user-123, got %s", got)
		}
		if role, _ := r.Context().Value(RoleKey).(string); role != "customer" {
			t.Errorf("expected role customer, got %s", role)
		}
		// no admin_role claim defaults to guest
		if adminRole, _ := r.Context().Value(AdminRoleKey).(string); adminRole != "guest" {
			t.Errorf("expected admin role guest, got %s", adminRole)
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("POST", "/queues/q1/join", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !handlerCalled {
		t.Error("handler was not called")
	}
}

func TestRequireAdminRole(t *testing.T) {
	privateKey, publicKey := generateTestKeys(t)
	m := NewAuthMiddleware(publicKey)

	handler := m.RequireAdminRole(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// guest claim is refused
	token := createTestToken(privateKey, jwt.MapClaims{"sub": "user-123"}, false)
	req := httptest.NewRequest("PUT", "/admin/users/u1/admin-role", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}

	// admin claim passes
	token = createTestToken(privateKey, jwt.MapClaims{"sub": "user-123", "admin_role": "admin"}, false)
	req = httptest.NewRequest("PUT", "/admin/users/u1/admin-role", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
