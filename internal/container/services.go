package container

import (
	"fmt"
	"time"

	"github.com/jaevor/go-nanoid"
	"github.com/jobflow/jobflow/internal/ai"
	"github.com/jobflow/jobflow/internal/application"
	"github.com/jobflow/jobflow/internal/auth"
	"github.com/jobflow/jobflow/internal/events"
	"github.com/jobflow/jobflow/internal/job"
	"github.com/jobflow/jobflow/internal/messaging"
	"github.com/jobflow/jobflow/internal/notification"
	"github.com/jobflow/jobflow/internal/pdf"
	"github.com/jobflow/jobflow/internal/ratelimit"
	"github.com/jobflow/jobflow/internal/resume"
	"github.com/jobflow/jobflow/internal/user"
	"github.com/samber/do"
	"go.uber.org/zap"
)

// Alphabet and length for human-readable application references.
const (
	referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	referenceLength   = 10
)

// RateLimitPackage provides the request limiter and its sweep janitor.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*ratelimit.Limiter, error) {
		return ratelimit.NewLimiter(ratelimit.DefaultLimits()), nil
	})

	do.Provide(injector, func(i *do.Injector) (*ratelimit.Janitor, error) {
		limiter := do.MustInvoke[*ratelimit.Limiter](i)
		logger := do.MustInvoke[*zap.Logger](i)

		janitor := ratelimit.NewJanitor(limiter, 5*time.Minute, 10*time.Minute, logger)
		janitor.Start()

		return janitor, nil
	})
}

// AIPackage provides the language model client.
func AIPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (ai.Client, error) {
		options := do.MustInvoke[*Options](i)

		return ai.NewOpenAIClient(options.OpenAIBaseURL, options.OpenAIKey), nil
	})
}

// ServicePackage provides the domain services.
func ServicePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*auth.TokenManager, error) {
		options := do.MustInvoke[*Options](i)
		ttl := time.Duration(options.TokenTTLMinutes) * time.Minute

		return auth.NewTokenManager(options.JWTSecret, ttl), nil
	})

	do.Provide(injector, func(i *do.Injector) (*user.Service, error) {
		return user.NewService(
			do.MustInvoke[user.Repository](i),
			do.MustInvoke[*auth.TokenManager](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	do.Provide(injector, func(i *do.Injector) (*resume.Service, error) {
		options := do.MustInvoke[*Options](i)

		return resume.NewService(
			do.MustInvoke[resume.Repository](i),
			pdf.NewTextExtractor(),
			do.MustInvoke[ai.Client](i),
			options.OpenAIModel,
			do.MustInvoke[messaging.Publish[events.ResumeParsedEvent]](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	do.Provide(injector, func(i *do.Injector) (*job.Service, error) {
		options := do.MustInvoke[*Options](i)

		return job.NewService(
			do.MustInvoke[job.Repository](i),
			do.MustInvoke[resume.Repository](i),
			do.MustInvoke[ai.Client](i),
			options.OpenAIModel,
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	do.Provide(injector, func(i *do.Injector) (*application.Service, error) {
		newReference, err := nanoid.CustomASCII(referenceAlphabet, referenceLength)
		if err != nil {
			return nil, fmt.Errorf("reference generator: %w", err)
		}

		return application.NewService(
			do.MustInvoke[application.Repository](i),
			do.MustInvoke[job.Repository](i),
			do.MustInvoke[resume.Repository](i),
			newReference,
			do.MustInvoke[messaging.Publish[events.ApplicationSubmittedEvent]](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	do.Provide(injector, func(i *do.Injector) (*notification.Service, error) {
		return notification.NewService(
			do.MustInvoke[notification.Repository](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
}
