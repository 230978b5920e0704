package middleware

import (
	"context"
	"crypto/rsa"
	"log"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware authenticates bearer tokens. It only establishes who the
// caller is; authorization against stored state (ownership, profile role,
// admin grants) happens in the core services.
type AuthMiddleware struct {
	publicKey *rsa.PublicKey
}

func NewAuthMiddleware(publicKey *rsa.PublicKey) *AuthMiddleware {
	return &AuthMiddleware{
		publicKey: publicKey,
	}
}

type contextKey string

const (
	PrincipalKey contextKey = "principal"
	RoleKey      contextKey = "role"
	AdminRoleKey contextKey = "adminRole"
)

// Authenticate validates the bearer token and injects the caller's
// principal and role claims into the request context.
func (m *AuthMiddleware) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "invalid authorization header", http.StatusUnauthorized)
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.publicKey, nil
		})
		if err != nil {
			log.Printf("Token parse error: %v", err)
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		if !token.Valid {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			http.Error(w, "invalid token claims", http.StatusUnauthorized)
			return
		}

		principal, ok := claims["sub"].(string)
		if !ok || principal == "" {
			http.Error(w, "invalid token: missing subject", http.StatusUnauthorized)
			return
		}

		role, _ := claims["role"].(string)
		adminRole, _ := claims["admin_role"].(string)
		if adminRole == "" {
			adminRole = "guest"
		}

		ctx := context.WithValue(r.Context(), PrincipalKey, principal)
		ctx = context.WithValue(ctx, RoleKey, role)
		ctx = context.WithValue(ctx, AdminRoleKey, adminRole)

		next(w, r.WithContext(ctx))
	}
}

// RequireAdminRole is a coarse transport-level gate for admin endpoints.
// The services verify the stored admin grant again.
func (m *AuthMiddleware) RequireAdminRole(next http.HandlerFunc) http.HandlerFunc {
	return m.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		if adminRole, _ := r.Context().Value(AdminRoleKey).(string); adminRole != "admin" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next(w, r)
	})
}

// Principal returns the authenticated caller, empty for anonymous requests.
func Principal(r *http.Request) string {
	principal, _ := r.Context().Value(PrincipalKey).(string)
	return principal
}
