package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/msomdec/product-catalog/internal/auth"
	"github.com/msomdec/product-catalog/internal/handler"
	"github.com/msomdec/product-catalog/internal/repository/sqlite"
	"github.com/msomdec/product-catalog/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-for-handler-tests"

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))
	t.Cleanup(func() { db.Close(context.Background()) })
	return db
}

func newTestServices(t *testing.T) (*service.AuthService, *service.ProductService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	return service.NewAuthService(db.Users(), testJWTSecret, 4),
		service.NewProductService(db.Products()),
		db
}

func registerAndLogin(t *testing.T, auth *service.AuthService, name, email, password string) string {
	t.Helper()
	ctx := context.Background()
	_, err := auth.Register(ctx, name, email, password)
	require.NoError(t, err)
	token, _, err := auth.Login(ctx, email, password)
	require.NoError(t, err)
	return token
}

func TestRequireAuth_ValidJWT(t *testing.T) {
	auth, _, _ := newTestServices(t)
	token := registerAndLogin(t, auth, "Valid User", "valid@example.com", "password123")

	var gotUser string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := handler.UserFromContext(r.Context()); user != nil {
			gotUser = user.Name
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.RequireAuth(auth, inner).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Valid User", gotUser)
}

func TestRequireAuth_Rejects(t *testing.T) {
	authService, _, _ := newTestServices(t)
	token := registerAndLogin(t, authService, "Tamper", "tamper@example.com", "password123")

	unknownUser, err := auth.GenerateToken(uuid.NewString(), []byte(testJWTSecret), time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic " + token},
		{"empty bearer", "Bearer "},
		{"invalid token", "Bearer invalid.jwt.token"},
		{"tampered token", "Bearer " + token[:len(token)-1] + "X"},
		{"unknown user", "Bearer " + unknownUser},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("inner handler should not be called")
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()

			handler.RequireAuth(authService, inner).ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
		})
	}
}

func TestRequireAuth_UserLookupFailureIs500(t *testing.T) {
	authService := service.NewAuthService(brokenUsers{}, testJWTSecret, 4)
	token, err := auth.GenerateToken(uuid.NewString(), []byte(testJWTSecret), time.Hour)
	require.NoError(t, err)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.RequireAuth(authService, inner).ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Error authenticating request"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), errDatabaseDown.Error())
}

func TestSecurityHeaders(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	handler.SecurityHeaders(inner).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}
