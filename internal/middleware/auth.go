package middleware

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/jobflow/jobflow/internal/auth"
)

// Authenticate returns a Huma middleware that validates bearer tokens and
// puts the caller's user ID into the request context. Paths in the public
// list are passed through without a token check.
func Authenticate(api huma.API, tokens *auth.TokenManager, public ...string) func(ctx huma.Context, next func(huma.Context)) {
	open := make(map[string]struct{}, len(public))
	for _, path := range public {
		open[path] = struct{}{}
	}

	return func(ctx huma.Context, next func(huma.Context)) {
		if _, ok := open[operationPath(ctx)]; ok {
			next(ctx)

			return
		}

		header := ctx.Header("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			ctx.SetHeader("WWW-Authenticate", "Bearer")
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "missing bearer token")

			return
		}

		userID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			ctx.SetHeader("WWW-Authenticate", "Bearer")
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "invalid or expired token")

			return
		}

		next(huma.WithContext(ctx, auth.ContextWithUserID(ctx.Context(), userID)))
	}
}

// operationPath returns the route template when available, falling back to
// the raw URL path.
func operationPath(ctx huma.Context) string {
	if op := ctx.Operation(); op != nil && op.Path != "" {
		return op.Path
	}

	url := ctx.URL()

	return url.Path
}
