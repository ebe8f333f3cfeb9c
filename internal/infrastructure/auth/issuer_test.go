package auth

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swipehub/session-api/internal/domain/session"
	"swipehub/session-api/internal/utils/platformerrors"
)

type memPrincipals struct {
	live map[string]bool
}

func newMemPrincipals() *memPrincipals {
	return &memPrincipals{live: map[string]bool{}}
}

func (m *memPrincipals) Put(ctx context.Context, subject string) error {
	m.live[subject] = true
	return nil
}

func (m *memPrincipals) Exists(ctx context.Context, subject string) (bool, error) {
	return m.live[subject], nil
}

func (m *memPrincipals) Delete(ctx context.Context, subject string) error {
	delete(m.live, subject)
	return nil
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	ctx := context.Background()
	issuer := NewIssuer("test-secret", time.Hour, newMemPrincipals(), zerolog.Nop())

	claims := session.Claims{SessionID: "AB23CD", UserID: "alice", IsCreator: true}
	token, err := issuer.Issue(ctx, claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := issuer.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, claims, got)
	assert.Equal(t, "AB23CD|alice|true", got.Subject())
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	ctx := context.Background()
	issuer := NewIssuer("test-secret", time.Hour, newMemPrincipals(), zerolog.Nop())

	token, err := issuer.Issue(ctx, session.Claims{SessionID: "AB23CD", UserID: "alice"})
	require.NoError(t, err)

	_, err = issuer.Verify(ctx, token+"x")
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized))
}

func TestVerifyRejectsWrongSigner(t *testing.T) {
	ctx := context.Background()
	principals := newMemPrincipals()
	issuer := NewIssuer("test-secret", time.Hour, principals, zerolog.Nop())
	other := NewIssuer("other-secret", time.Hour, principals, zerolog.Nop())

	token, err := other.Issue(ctx, session.Claims{SessionID: "AB23CD", UserID: "alice"})
	require.NoError(t, err)

	_, err = issuer.Verify(ctx, token)
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized))
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	ctx := context.Background()
	issuer := NewIssuer("test-secret", -time.Minute, newMemPrincipals(), zerolog.Nop())

	token, err := issuer.Issue(ctx, session.Claims{SessionID: "AB23CD", UserID: "alice"})
	require.NoError(t, err)

	_, err = issuer.Verify(ctx, token)
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized))
}

func TestVerifyRejectsRevokedPrincipal(t *testing.T) {
	ctx := context.Background()
	issuer := NewIssuer("test-secret", time.Hour, newMemPrincipals(), zerolog.Nop())

	claims := session.Claims{SessionID: "AB23CD", UserID: "bob"}
	token, err := issuer.Issue(ctx, claims)
	require.NoError(t, err)

	require.NoError(t, issuer.Revoke(ctx, claims))

	_, err = issuer.Verify(ctx, token)
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized))
}
