package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"swipehub/session-api/internal/domain/session"
	"swipehub/session-api/internal/utils/platformerrors"
)

// PrincipalStore keeps the set of live principals. Tokens stop verifying
// once their principal is deleted.
type PrincipalStore interface {
	Put(ctx context.Context, subject string) error
	Exists(ctx context.Context, subject string) (bool, error)
	Delete(ctx context.Context, subject string) error
}

// tokenClaims is the signed payload. Every claim field is encoded in the
// token itself, so downstream operations never consult request-body copies
// of the same names.
type tokenClaims struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
	IsCreator bool   `json:"isCreator"`
	jwt.RegisteredClaims
}

// Issuer mints and verifies HS256 session tokens.
type Issuer struct {
	secret     []byte
	ttl        time.Duration
	principals PrincipalStore
	log        zerolog.Logger
}

func NewIssuer(secret string, ttl time.Duration, principals PrincipalStore, log zerolog.Logger) *Issuer {
	return &Issuer{
		secret:     []byte(secret),
		ttl:        ttl,
		principals: principals,
		log:        log.With().Str("component", "token-issuer").Logger(),
	}
}

// Issue signs a token for the claims and registers the backing principal.
func (i *Issuer) Issue(ctx context.Context, claims session.Claims) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		SessionID: claims.SessionID,
		UserID:    claims.UserID,
		IsCreator: claims.IsCreator,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeInternal, "failed to sign token", err)
	}

	if err := i.principals.Put(ctx, claims.Subject()); err != nil {
		return "", platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "register principal")
	}
	return signed, nil
}

// Verify checks the signature and expiry of a token and that its principal
// is still live, returning the embedded claims.
func (i *Issuer) Verify(ctx context.Context, raw string) (session.Claims, error) {
	parsed := &tokenClaims{}
	_, err := jwt.ParseWithClaims(raw, parsed, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return session.Claims{}, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeUnauthorized, "token is not valid", err)
	}

	claims := session.Claims{
		SessionID: parsed.SessionID,
		UserID:    parsed.UserID,
		IsCreator: parsed.IsCreator,
	}

	live, err := i.principals.Exists(ctx, claims.Subject())
	if err != nil {
		return session.Claims{}, platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "check principal")
	}
	if !live {
		return session.Claims{}, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeUnauthorized, "principal has been revoked", nil)
	}
	return claims, nil
}

// Revoke deletes the principal backing the claims so its tokens stop
// verifying.
func (i *Issuer) Revoke(ctx context.Context, claims session.Claims) error {
	return i.principals.Delete(ctx, claims.Subject())
}
