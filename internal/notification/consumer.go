package notification

import (
	"context"
	"fmt"

	"github.com/jobflow/jobflow/internal/events"
	"go.uber.org/zap"
)

// ApplicationSubmittedHandler creates an inbox notification for each
// submitted application event.
func ApplicationSubmittedHandler(svc *Service, logger *zap.Logger) func(ctx context.Context, event *events.ApplicationSubmittedEvent) error {
	return func(ctx context.Context, event *events.ApplicationSubmittedEvent) error {
		title := fmt.Sprintf("Application %s submitted", event.Reference)
		body := fmt.Sprintf("Your application for %s at %s was submitted.", event.JobTitle, event.Company)

		n, err := svc.Notify(ctx, event.UserID, TypeApplicationUpdate, title, body)
		if err != nil {
			return err
		}

		if n == nil {
			logger.Debug("application notification suppressed by preferences",
				zap.String("user_id", event.UserID),
			)
		}

		return nil
	}
}

// ResumeParsedHandler creates an inbox notification when a resume upload
// finishes parsing.
func ResumeParsedHandler(svc *Service, logger *zap.Logger) func(ctx context.Context, event *events.ResumeParsedEvent) error {
	return func(ctx context.Context, event *events.ResumeParsedEvent) error {
		title := "Resume processed"
		body := fmt.Sprintf("Your resume %q was parsed and is ready for enhancement.", event.FileName)

		if _, err := svc.Notify(ctx, event.UserID, TypeResumeParsed, title, body); err != nil {
			return err
		}

		logger.Debug("resume parsed notification created",
			zap.String("user_id", event.UserID),
			zap.String("resume_id", event.ResumeID),
		)

		return nil
	}
}
