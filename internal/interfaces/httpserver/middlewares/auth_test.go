package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swipehub/session-api/internal/domain/session"
	"swipehub/session-api/internal/infrastructure/auth"
)

type memPrincipals struct {
	live map[string]bool
}

func newMemPrincipals() *memPrincipals {
	return &memPrincipals{live: map[string]bool{}}
}

func (m *memPrincipals) Put(_ context.Context, subject string) error {
	m.live[subject] = true
	return nil
}

func (m *memPrincipals) Exists(_ context.Context, subject string) (bool, error) {
	return m.live[subject], nil
}

func (m *memPrincipals) Delete(_ context.Context, subject string) error {
	delete(m.live, subject)
	return nil
}

func newAuthRouter(t *testing.T, issuer *auth.Issuer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(issuer, zerolog.Nop()), func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"userId": claims.UserID, "isCreator": claims.IsCreator})
	})
	return router
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour, newMemPrincipals(), zerolog.Nop())
	router := newAuthRouter(t, issuer)

	token, err := issuer.Issue(context.Background(), session.Claims{SessionID: "AB23CD", UserID: "alice", IsCreator: true})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"userId":"alice"`)
	assert.Contains(t, rec.Body.String(), `"isCreator":true`)
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour, newMemPrincipals(), zerolog.Nop())
	router := newAuthRouter(t, issuer)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic abc123"},
		{"empty bearer", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthMiddlewareRejectsRevokedToken(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour, newMemPrincipals(), zerolog.Nop())
	router := newAuthRouter(t, issuer)

	claims := session.Claims{SessionID: "AB23CD", UserID: "bob"}
	token, err := issuer.Issue(context.Background(), claims)
	require.NoError(t, err)
	require.NoError(t, issuer.Revoke(context.Background(), claims))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour, newMemPrincipals(), zerolog.Nop())
	router := newAuthRouter(t, issuer)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
