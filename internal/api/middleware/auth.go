package middleware

import (
	"context"
	"errors"
	"net/http"

	"faculty_api/internal/common"
	"faculty_api/internal/common/security"
	"faculty_api/internal/platform/logging"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const identityCtxKey contextKey = "identity"

// Identity is the authenticated caller, as proven by a session token.
type Identity struct {
	Username string
}

// TokenVerifier is the part of security.TokenManager the gate needs.
type TokenVerifier interface {
	Verify(token string) (*security.Claims, error)
}

// Authenticator rejects requests without a valid bearer token and passes the
// verified Identity to next through the request context.
func Authenticator(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logging.FromContext(r.Context())

			tokenString := jwtauth.TokenFromHeader(r) // "Authorization: Bearer T"
			if tokenString == "" {
				log.Debug().Msg("auth: bearer token missing")
				common.RespondWithDomainError(w, r, common.ErrMissingToken)
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				if !errors.Is(err, common.ErrInvalidToken) && !errors.Is(err, common.ErrMissingToken) {
					err = errors.Join(common.ErrInvalidToken, err)
				}
				log.Debug().Err(err).Msg("auth: bearer token rejected")
				common.RespondWithDomainError(w, r, err)
				return
			}

			ctx := WithIdentity(r.Context(), Identity{Username: claims.Username})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey, id)
}

// IdentityFromContext returns the Identity stored by Authenticator.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityCtxKey).(Identity)
	return id, ok
}
