package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/jobflow/jobflow/internal/auth"
	"github.com/jobflow/jobflow/internal/notification"
	"go.uber.org/zap"
)

// NotificationHandler handles inbox and preference operations.
type NotificationHandler struct {
	notifications *notification.Service
	logger        *zap.Logger
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(notifications *notification.Service, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, logger: logger}
}

func (h *NotificationHandler) ListMine(ctx context.Context, req *ListNotificationsRequest) (*ListNotificationsResponse, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	items, err := h.notifications.ListByUser(ctx, userID, notification.ListQuery{
		UnreadOnly: req.UnreadOnly,
		Offset:     req.Offset,
		Limit:      req.Limit,
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to list notifications")
	}

	// The unread count covers the whole inbox, not just this page.
	unread, err := h.notifications.CountUnread(ctx, userID)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to count notifications")
	}

	resp := &ListNotificationsResponse{}
	resp.Body.Notifications = items
	resp.Body.Unread = unread

	return resp, nil
}

func (h *NotificationHandler) MarkRead(ctx context.Context, req *MarkNotificationReadRequest) (*NotificationResponse, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	n, err := h.notifications.MarkRead(ctx, req.ID, userID)
	if err != nil {
		switch {
		case errors.Is(err, notification.ErrNotFound):
			return nil, huma.Error404NotFound("notification not found")
		case errors.Is(err, notification.ErrForbidden):
			return nil, huma.Error403Forbidden("not your notification")
		}

		return nil, huma.Error500InternalServerError("failed to mark notification read")
	}

	return &NotificationResponse{Body: n}, nil
}

func (h *NotificationHandler) MarkAllRead(ctx context.Context, _ *MarkAllReadRequest) (*MarkAllReadResponse, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	count, err := h.notifications.MarkAllRead(ctx, userID)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to mark notifications read")
	}

	resp := &MarkAllReadResponse{}
	resp.Body.MarkedRead = count

	return resp, nil
}

func (h *NotificationHandler) GetPreferences(ctx context.Context, _ *GetPreferencesRequest) (*PreferencesResponse, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	prefs, err := h.notifications.GetPreferences(ctx, userID)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to load preferences")
	}

	return &PreferencesResponse{Body: prefs}, nil
}

func (h *NotificationHandler) UpdatePreferences(ctx context.Context, req *UpdatePreferencesRequest) (*PreferencesResponse, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	prefs, err := h.notifications.UpdatePreferences(ctx, userID, req.Body)
	if err != nil {
		h.logger.Error("preference update failed", zap.String("user_id", userID), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to save preferences")
	}

	return &PreferencesResponse{Body: prefs}, nil
}
