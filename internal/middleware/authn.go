package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MetadataKey marks operations that must be called with a valid bearer
// token. The value is a Config.
const MetadataKey = "authn"

// Config controls authentication for one operation.
type Config struct {
	Required bool
}

// Verifier checks a session token and returns the principal id.
type Verifier interface {
	Verify(token string) (uuid.UUID, error)
}

type principalKey struct{}

// ContextWithPrincipal adds the authenticated principal id to the context.
func ContextWithPrincipal(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, principalKey{}, id)
}

// PrincipalFromContext extracts the authenticated principal id, if any.
func PrincipalFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(principalKey{}).(uuid.UUID)

	return id, ok
}

// Authenticator returns a Huma middleware that resolves the Authorization
// bearer token into a principal id on the request context. Operations
// marked via MetadataKey are rejected with 401 before the handler runs
// when the token is absent or invalid; everything else passes through.
func Authenticator(api huma.API, verifier Verifier, logger *zap.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		cfg := endpointConfig(ctx)
		token := bearerToken(ctx.Header("Authorization"))

		if token == "" {
			if cfg.Required {
				_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "Authentication required")

				return
			}

			next(ctx)

			return
		}

		principal, err := verifier.Verify(token)
		if err != nil {
			if cfg.Required {
				logger.Debug("rejected bearer token",
					zap.String("path", operationPath(ctx)),
					zap.Error(err),
				)
				_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "Invalid or expired token")

				return
			}

			next(ctx)

			return
		}

		ctx = huma.WithContext(ctx, ContextWithPrincipal(ctx.Context(), principal))

		next(ctx)
	}
}

func endpointConfig(ctx huma.Context) Config {
	if op := ctx.Operation(); op != nil {
		if cfg, ok := op.Metadata[MetadataKey].(Config); ok {
			return cfg
		}
	}

	return Config{}
}

func operationPath(ctx huma.Context) string {
	if op := ctx.Operation(); op != nil {
		return op.Path
	}

	return ""
}

// bearerToken extracts the token from an Authorization header value.
// Returns the empty string when the header is absent or not bearer-shaped.
func bearerToken(header string) string {
	const prefix = "Bearer "

	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}

	return strings.TrimSpace(header[len(prefix):])
}
