package security

import (
	"errors"
	"fmt"
	"time"

	"faculty_api/internal/common"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

const (
	signingAlg    = "HS256"
	usernameClaim = "username"
)

// Claims is the identity carried inside a session token.
type Claims struct {
	Username string
}

// TokenManager issues and verifies HS256 session tokens. It holds no mutable
// state and is safe for concurrent use.
type TokenManager struct {
	auth *jwtauth.JWTAuth
	ttl  time.Duration
	now  func() time.Time
}

// NewTokenManager builds a manager for secret. A zero ttl issues tokens
// without an exp claim, so they stay valid until the secret is rotated.
func NewTokenManager(secret []byte, ttl time.Duration) (*TokenManager, error) {
	if len(secret) == 0 {
		return nil, errors.New("security: signing secret must not be empty")
	}
	return &TokenManager{
		auth: jwtauth.New(signingAlg, secret, nil),
		ttl:  ttl,
		now:  time.Now,
	}, nil
}

func (m *TokenManager) Issue(claims Claims) (string, error) {
	if claims.Username == "" {
		return "", fmt.Errorf("security: username claim is required: %w", common.ErrValidation)
	}
	now := m.now()
	mc := jwt.MapClaims{
		usernameClaim: claims.Username,
		"iat":         now.Unix(),
	}
	if m.ttl > 0 {
		mc["exp"] = now.Add(m.ttl).Unix()
	}
	_, tokenString, err := m.auth.Encode(mc)
	if err != nil {
		return "", fmt.Errorf("security: failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify checks the signature (and exp, when present) and extracts the claims.
// Every failure is reported as common.ErrInvalidToken.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, common.ErrMissingToken
	}
	token, err := jwtauth.VerifyToken(m.auth, tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	raw, ok := token.Get(usernameClaim)
	if !ok {
		return nil, fmt.Errorf("%w: username claim is missing", common.ErrInvalidToken)
	}
	username, ok := raw.(string)
	if !ok || username == "" {
		return nil, fmt.Errorf("%w: username claim is not a string", common.ErrInvalidToken)
	}
	return &Claims{Username: username}, nil
}
