package v1handler

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"
	"strings"

	"qrvalidator/internal/config"
	"qrvalidator/pkg/logger"
	"qrvalidator/pkg/serrors"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// CtxKey is a string-based type used for storing values in request contexts.
type CtxKey string

// SubjectKey is the context key under which the authenticated token subject
// is stored.
const SubjectKey CtxKey = "Subject"

// Subject returns the authenticated API client, or "" when authentication
// is disabled.
func Subject(ctx context.Context) string {
	s, _ := ctx.Value(SubjectKey).(string)

	return s
}

// SecHandlerOptions configure bearer authentication. An empty PublicKey
// disables it.
type SecHandlerOptions struct {
	// PublicKey is the PEM encoded RSA key verifying RS256 tokens.
	PublicKey string
}

// NewSecHandlerOptions constructs SecHandlerOptions from the application config.
func NewSecHandlerOptions(cfg *config.Config) *SecHandlerOptions {
	return &SecHandlerOptions{PublicKey: cfg.JWT.PublicKey}
}

// SecHandler validates RS256 bearer tokens.
type SecHandler struct {
	key *rsa.PublicKey
}

func NewSecHandler(opts *SecHandlerOptions) (*SecHandler, error) {
	if opts == nil || strings.TrimSpace(opts.PublicKey) == "" {
		return &SecHandler{}, nil
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(opts.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA public key: %w", err)
	}

	return &SecHandler{key: key}, nil
}

// Enabled reports whether tokens are checked at all.
func (s *SecHandler) Enabled() bool {
	return s.key != nil
}

// HandleBearerAuth verifies token and stores its subject in the returned
// context.
func (s *SecHandler) HandleBearerAuth(ctx context.Context, token string) (context.Context, error) {
	if !s.Enabled() {
		return ctx, nil
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token")
	}
	if claims.Subject == "" {
		return ctx, serrors.With(serrors.ErrUnauthorized, "token has no subject")
	}

	ctx = context.WithValue(ctx, SubjectKey, claims.Subject)
	ctx = logger.WithFields(ctx, zap.String(string(SubjectKey), claims.Subject))

	return ctx, nil
}

// Middleware rejects requests without a valid "Authorization: Bearer" header
// when authentication is enabled.
func (s *SecHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.Enabled() {
			next.ServeHTTP(w, r)

			return
		}

		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			WriteError(w, r, serrors.With(serrors.ErrUnauthorized, "missing bearer token"))

			return
		}

		ctx, err := s.HandleBearerAuth(r.Context(), token)
		if err != nil {
			WriteError(w, r, err)

			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
