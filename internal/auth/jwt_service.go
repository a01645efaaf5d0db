package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	apperrors "shoplist/internal/errors"
)

// RevocationLedger records tokens that must no longer authenticate. The
// ledger stores exact signed token strings: revoking one token for a subject
// leaves every other token for the same subject untouched.
type RevocationLedger interface {
	// Revoke marks a token as permanently unusable. Revoking a token that
	// is already listed returns errors.ErrAlreadyRevoked; callers decide
	// whether that is a soft no-op.
	Revoke(ctx context.Context, token string) error
	// IsRevoked is an exact-string membership test.
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Claims represents the JWT claims carried by every issued token.
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// Session identifies an authenticated caller: the subject resolved from a
// verified token plus the exact token string that was presented. Handlers
// that need to revoke the presented token (logout) read it from here.
type Session struct {
	UserID uint
	Token  string
}

// TokenService issues and verifies signed bearer tokens.
type TokenService struct {
	secret   []byte
	ttl      time.Duration
	resetTTL time.Duration
	ledger   RevocationLedger
}

// NewTokenService creates a token service with the given HMAC secret. ttl
// governs login tokens, resetTTL governs password-reset tokens.
func NewTokenService(secret string, ttl, resetTTL time.Duration, ledger RevocationLedger) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		ttl:      ttl,
		resetTTL: resetTTL,
		ledger:   ledger,
	}
}

// Issue produces a signed token for the given user. The token is fully
// self-contained; nothing is persisted.
func (s *TokenService) Issue(userID uint) (string, error) {
	return s.issue(userID, s.ttl)
}

// IssueReset produces a short-lived token for the password-reset flow.
func (s *TokenService) IssueReset(userID uint) (string, error) {
	return s.issue(userID, s.resetTTL)
}

// issue stamps a uuid jti into every token so that two tokens for the same
// user are always distinct strings, even when minted within the same second.
// The ledger revokes exact strings; identical tokens would make revoking one
// session revoke them all.
func (s *TokenService) issue(userID uint, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates the signature and expiry of a token and then consults the
// revocation ledger: a structurally valid token that has been revoked never
// authenticates again. On success the embedded subject is returned; on
// failure exactly one of errors.ErrTokenInvalid, errors.ErrTokenExpired or
// errors.ErrTokenRevoked.
func (s *TokenService) Verify(ctx context.Context, tokenString string) (uint, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, apperrors.ErrTokenExpired
		}
		return 0, apperrors.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return 0, apperrors.ErrTokenInvalid
	}

	revoked, err := s.ledger.IsRevoked(ctx, tokenString)
	if err != nil {
		return 0, err
	}
	if revoked {
		return 0, apperrors.ErrTokenRevoked
	}

	return claims.UserID, nil
}
