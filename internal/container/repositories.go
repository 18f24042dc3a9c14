package container

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jobflow/jobflow/internal/application"
	"github.com/jobflow/jobflow/internal/job"
	"github.com/jobflow/jobflow/internal/notification"
	"github.com/jobflow/jobflow/internal/resume"
	"github.com/jobflow/jobflow/internal/store"
	"github.com/jobflow/jobflow/internal/user"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
)

// RepositoryPackage provides the PostgreSQL-backed repositories. Job search
// reads go through a Redis cache.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (user.Repository, error) {
		return store.NewPostgresUserStore(do.MustInvoke[*pgxpool.Pool](i)), nil
	})

	do.Provide(injector, func(i *do.Injector) (resume.Repository, error) {
		return store.NewPostgresResumeStore(do.MustInvoke[*pgxpool.Pool](i)), nil
	})

	do.Provide(injector, func(i *do.Injector) (job.Repository, error) {
		options := do.MustInvoke[*Options](i)
		pool := do.MustInvoke[*pgxpool.Pool](i)
		client := do.MustInvoke[*redis.Client](i)

		return store.NewRedisJobCache(
			store.NewPostgresJobStore(pool),
			client,
			time.Duration(options.CacheTTLSeconds)*time.Second,
		), nil
	})

	do.Provide(injector, func(i *do.Injector) (application.Repository, error) {
		return store.NewPostgresApplicationStore(do.MustInvoke[*pgxpool.Pool](i)), nil
	})

	do.Provide(injector, func(i *do.Injector) (notification.Repository, error) {
		return store.NewPostgresNotificationStore(do.MustInvoke[*pgxpool.Pool](i)), nil
	})
}
