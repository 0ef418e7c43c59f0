package v1handler

import (
	"crypto/rsa"
	"fmt"
	"net/http"
	"strings"

	"svgvolume/internal/config"
	"svgvolume/pkg/serrors"

	"github.com/golang-jwt/jwt/v5"
)

// SecHandlerOptions configures bearer authentication for the history
// endpoints.
type SecHandlerOptions struct {
	// PublicKey is the PEM-encoded RSA public key used to verify tokens.
	// Authentication is disabled when empty.
	PublicKey string
}

// NewSecHandlerOptions constructs SecHandlerOptions from the application
// configuration.
func NewSecHandlerOptions(cfg *config.Config) *SecHandlerOptions {
	return &SecHandlerOptions{
		PublicKey: cfg.JWT.PublicKey,
	}
}

// SecHandler verifies RS256 bearer tokens. A nil key disables verification.
type SecHandler struct {
	key *rsa.PublicKey
}

// NewSecHandler parses the configured public key. An empty key yields a
// handler that lets every request through.
func NewSecHandler(options *SecHandlerOptions) (*SecHandler, error) {
	if options == nil || options.PublicKey == "" {
		return &SecHandler{}, nil
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(options.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA public key: %w", err)
	}

	return &SecHandler{key: key}, nil
}

// Require wraps next with bearer-token verification.
func (s *SecHandler) Require(next http.Handler) http.Handler {
	if s.key == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		auth := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || raw == "" {
			writeError(ctx, w, serrors.With(serrors.ErrUnauthorized, "missing bearer token"))

			return
		}

		token, err := jwt.Parse(raw, func(*jwt.Token) (any, error) {
			return s.key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
		if err != nil || !token.Valid {
			writeError(ctx, w, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid bearer token"))

			return
		}

		next.ServeHTTP(w, r)
	})
}
