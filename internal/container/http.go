package container

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jobflow/jobflow/internal/application"
	"github.com/jobflow/jobflow/internal/auth"
	"github.com/jobflow/jobflow/internal/handlers"
	"github.com/jobflow/jobflow/internal/health"
	"github.com/jobflow/jobflow/internal/job"
	"github.com/jobflow/jobflow/internal/middleware"
	"github.com/jobflow/jobflow/internal/notification"
	"github.com/jobflow/jobflow/internal/ratelimit"
	"github.com/jobflow/jobflow/internal/resume"
	"github.com/jobflow/jobflow/internal/user"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
)

// publicPaths are reachable without a bearer token.
var publicPaths = []string{
	"/",
	"/health",
	"/api/v1/users/register",
	"/api/v1/users/login",
}

// HTTPPackage provides the router and the fully wired huma API.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		options := do.MustInvoke[*Options](i)
		router := do.MustInvoke[*chi.Mux](i)
		logger := do.MustInvoke[*zap.Logger](i)
		limiter := do.MustInvoke[*ratelimit.Limiter](i)
		tokens := do.MustInvoke[*auth.TokenManager](i)

		// The janitor has no other consumer; invoking it here starts the
		// sweep loop and ties it to the injector lifecycle.
		_ = do.MustInvoke[*ratelimit.Janitor](i)

		api := humachi.New(router, huma.DefaultConfig("JobFlow", "1.0.0"))
		api.UseMiddleware(middleware.RateLimit(limiter, logger, "/health"))
		api.UseMiddleware(middleware.Authenticate(api, tokens, publicPaths...))

		handlers.RegisterRoutes(api,
			handlers.NewUserHandler(do.MustInvoke[*user.Service](i), logger),
			handlers.NewResumeHandler(do.MustInvoke[*resume.Service](i), options.MaxUploadBytes, logger),
			handlers.NewJobHandler(do.MustInvoke[*job.Service](i), logger),
			handlers.NewApplicationHandler(do.MustInvoke[*application.Service](i), logger),
			handlers.NewNotificationHandler(do.MustInvoke[*notification.Service](i), logger),
		)

		health.RegisterRoutes(api, health.NewHandler(
			health.NewPostgresChecker(do.MustInvoke[*pgxpool.Pool](i)),
			health.NewRedisChecker(do.MustInvoke[*redis.Client](i)),
		))

		return api, nil
	})
}
