// Package container wires the application together with samber/do. Each
// concern is registered by its own Package function so binaries can compose
// only what they need.
package container

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jobflow/jobflow/internal/store"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
)

// Options holds the runtime configuration for all binaries.
type Options struct {
	Port            int    `default:"8080"                                         help:"Port to listen on"                     short:"p"`
	PostgresURL     string `default:"postgres://localhost:5432/jobflow"            help:"PostgreSQL connection string"`
	RedisAddr       string `default:"localhost:6379"                               help:"Redis server address"                  short:"r"`
	JWTSecret       string `default:"dev-secret-change-me"                         help:"HMAC secret for access tokens"`
	TokenTTLMinutes int    `default:"60"                                           help:"Access token lifetime in minutes"`
	OpenAIKey       string `default:""                                             help:"OpenAI API key"`
	OpenAIModel     string `default:"gpt-4o-mini"                                  help:"Model used for resume and match calls"`
	OpenAIBaseURL   string `default:"https://api.openai.com/v1"                    help:"OpenAI-compatible API base URL"`
	LogFormat       string `default:"console"                                      help:"Log format: console or json"`
	MaxUploadBytes  int64  `default:"10485760"                                     help:"Maximum resume upload size in bytes"`
	CacheTTLSeconds int    `default:"60"                                           help:"Job search cache TTL in seconds"`
}

// LoggerPackage provides the zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		options := do.MustInvoke[*Options](i)

		if options.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// PostgresPackage provides the connection pool and runs migrations.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*pgxpool.Pool, error) {
		options := do.MustInvoke[*Options](i)

		pool, err := pgxpool.New(context.Background(), options.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}

		if err := store.Migrate(context.Background(), pool); err != nil {
			pool.Close()

			return nil, err
		}

		return pool, nil
	})
}

// RedisPackage provides the Redis client used for caching and messaging.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		options := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{
			Addr: options.RedisAddr,
		}), nil
	})
}
