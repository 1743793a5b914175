package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wordingo/backend/models"
	"github.com/wordingo/backend/store"
)

type contextKey string

const (
	UserIDKey contextKey = "userID"
	RoleKey   contextKey = "role"
)

type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

func parseToken(r *http.Request, jwtSecret string) (primitive.ObjectID, error) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return primitive.NilObjectID, http.ErrNoCookie
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return primitive.NilObjectID, http.ErrNoCookie
	}
	token, err := jwt.ParseWithClaims(parts[1], &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return primitive.NilObjectID, http.ErrNoCookie
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return primitive.NilObjectID, http.ErrNoCookie
	}
	return primitive.ObjectIDFromHex(claims.UserID)
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"success":false,"message":"` + message + `"}`))
}

func forbidden(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	w.Write([]byte(`{"success":false,"message":"` + message + `"}`))
}

// Auth rejects requests without a valid bearer token and stores the
// user ID in the request context.
func Auth(jwtSecret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := parseToken(r, jwtSecret)
			if err != nil {
				unauthorized(w, "Access denied. No token provided.")
				return
			}
			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth stores the user ID when a valid token is present and
// passes the request through either way. Public reads use it to
// personalize responses (isLiked, isSaved).
func OptionalAuth(jwtSecret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, err := parseToken(r, jwtSecret); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), UserIDKey, userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin loads the authenticated user and rejects anyone without
// an admin or superadmin role. The role lands in the context for the
// handful of superadmin-only checks.
func RequireAdmin(jwtSecret string, db *store.DB) func(next http.Handler) http.Handler {
	return requireRole(jwtSecret, db, func(u *models.User) bool { return u.IsAdmin() },
		"Access denied. Admin privileges required.")
}

// RequireSuperAdmin is RequireAdmin restricted to the superadmin role.
func RequireSuperAdmin(jwtSecret string, db *store.DB) func(next http.Handler) http.Handler {
	return requireRole(jwtSecret, db, func(u *models.User) bool { return u.IsSuperAdmin() },
		"Access denied. Super admin privileges required.")
}

func requireRole(jwtSecret string, db *store.DB, allowed func(*models.User) bool, denied string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := parseToken(r, jwtSecret)
			if err != nil {
				unauthorized(w, "Access denied. No token provided.")
				return
			}
			user, err := db.UserByID(r.Context(), userID)
			if err != nil {
				unauthorized(w, "Invalid token.")
				return
			}
			if !allowed(user) {
				forbidden(w, denied)
				return
			}
			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			ctx = context.WithValue(ctx, RoleKey, user.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func UserIDFromContext(ctx context.Context) (primitive.ObjectID, bool) {
	id, ok := ctx.Value(UserIDKey).(primitive.ObjectID)
	return id, ok
}

func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(RoleKey).(string)
	return role
}
