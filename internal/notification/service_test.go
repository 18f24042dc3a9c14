package notification_test

import (
	"context"
	"testing"
	"time"

	"github.com/jobflow/jobflow/internal/events"
	"github.com/jobflow/jobflow/internal/notification"
	"github.com/jobflow/jobflow/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService() (*notification.Service, *store.MemoryNotificationStore) {
	repo := store.NewMemoryNotificationStore()

	return notification.NewService(repo, zap.NewNop()), repo
}

func TestNotify(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a notification", func(t *testing.T) {
		svc, _ := newTestService()

		n, err := svc.Notify(ctx, "user-1", notification.TypeJobMatch, "New match", "A job matches your resume.")
		require.NoError(t, err)
		require.NotNil(t, n)

		assert.False(t, n.Read)
		assert.Equal(t, notification.TypeJobMatch, n.Type)
	})

	t.Run("suppressed by preferences", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.UpdatePreferences(ctx, "user-1", notification.Preferences{
			EmailEnabled:       true,
			ApplicationUpdates: false,
			JobMatches:         true,
		})
		require.NoError(t, err)

		n, err := svc.Notify(ctx, "user-1", notification.TypeApplicationUpdate, "Update", "Status changed.")
		require.NoError(t, err)
		assert.Nil(t, n, "suppressed notifications are dropped silently")

		items, err := svc.ListByUser(ctx, "user-1", notification.ListQuery{})
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestMarkRead(t *testing.T) {
	ctx := context.Background()

	t.Run("marks and is idempotent", func(t *testing.T) {
		svc, _ := newTestService()

		n, err := svc.Notify(ctx, "user-1", notification.TypeJobMatch, "New match", "")
		require.NoError(t, err)

		read, err := svc.MarkRead(ctx, n.ID, "user-1")
		require.NoError(t, err)
		assert.True(t, read.Read)

		again, err := svc.MarkRead(ctx, n.ID, "user-1")
		require.NoError(t, err)
		assert.True(t, again.Read)
	})

	t.Run("other users are forbidden", func(t *testing.T) {
		svc, _ := newTestService()

		n, err := svc.Notify(ctx, "user-1", notification.TypeJobMatch, "New match", "")
		require.NoError(t, err)

		_, err = svc.MarkRead(ctx, n.ID, "user-2")
		assert.ErrorIs(t, err, notification.ErrForbidden)
	})
}

func TestMarkAllRead(t *testing.T) {
	ctx := context.Background()

	svc, _ := newTestService()

	for i := 0; i < 3; i++ {
		_, err := svc.Notify(ctx, "user-1", notification.TypeJobMatch, "New match", "")
		require.NoError(t, err)
	}

	count, err := svc.MarkAllRead(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = svc.MarkAllRead(ctx, "user-1")
	require.NoError(t, err)
	assert.Zero(t, count, "already-read notifications are not counted again")
}

func TestListByUser(t *testing.T) {
	ctx := context.Background()

	svc, _ := newTestService()

	created := make([]*notification.Notification, 0, 5)

	for i := 0; i < 5; i++ {
		n, err := svc.Notify(ctx, "user-1", notification.TypeJobMatch, "New match", "")
		require.NoError(t, err)

		created = append(created, n)
	}

	for _, n := range created[:2] {
		_, err := svc.MarkRead(ctx, n.ID, "user-1")
		require.NoError(t, err)
	}

	t.Run("unread only", func(t *testing.T) {
		items, err := svc.ListByUser(ctx, "user-1", notification.ListQuery{UnreadOnly: true})
		require.NoError(t, err)
		assert.Len(t, items, 3)

		for _, n := range items {
			assert.False(t, n.Read)
		}
	})

	t.Run("offset and limit page the inbox", func(t *testing.T) {
		items, err := svc.ListByUser(ctx, "user-1", notification.ListQuery{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, items, 2)

		items, err = svc.ListByUser(ctx, "user-1", notification.ListQuery{Offset: 4, Limit: 2})
		require.NoError(t, err)
		assert.Len(t, items, 1)

		items, err = svc.ListByUser(ctx, "user-1", notification.ListQuery{Offset: 10, Limit: 2})
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("unread count spans the whole inbox", func(t *testing.T) {
		unread, err := svc.CountUnread(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 3, unread)
	})
}

func TestGetPreferences(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults when never saved", func(t *testing.T) {
		svc, _ := newTestService()

		prefs, err := svc.GetPreferences(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, notification.DefaultPreferences(), prefs)
	})

	t.Run("returns saved preferences", func(t *testing.T) {
		svc, _ := newTestService()

		saved := notification.Preferences{EmailEnabled: false, ApplicationUpdates: true, JobMatches: false}

		_, err := svc.UpdatePreferences(ctx, "user-1", saved)
		require.NoError(t, err)

		prefs, err := svc.GetPreferences(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, saved, prefs)
	})
}

func TestEventHandlers(t *testing.T) {
	ctx := context.Background()

	t.Run("application submitted creates an inbox entry", func(t *testing.T) {
		svc, _ := newTestService()
		handler := notification.ApplicationSubmittedHandler(svc, zap.NewNop())

		err := handler(ctx, &events.ApplicationSubmittedEvent{
			ApplicationID: "app-1",
			Reference:     "REF0000001",
			UserID:        "user-1",
			JobTitle:      "Go Developer",
			Company:       "Acme",
			SubmittedAt:   time.Now(),
		})
		require.NoError(t, err)

		items, err := svc.ListByUser(ctx, "user-1", notification.ListQuery{})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, notification.TypeApplicationUpdate, items[0].Type)
		assert.Contains(t, items[0].Title, "REF0000001")
		assert.Contains(t, items[0].Body, "Acme")
	})

	t.Run("resume parsed creates an inbox entry", func(t *testing.T) {
		svc, _ := newTestService()
		handler := notification.ResumeParsedHandler(svc, zap.NewNop())

		err := handler(ctx, &events.ResumeParsedEvent{
			ResumeID: "resume-1",
			UserID:   "user-1",
			FileName: "cv.pdf",
			ParsedAt: time.Now(),
		})
		require.NoError(t, err)

		items, err := svc.ListByUser(ctx, "user-1", notification.ListQuery{})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, notification.TypeResumeParsed, items[0].Type)
		assert.Contains(t, items[0].Body, "cv.pdf")
	})

	t.Run("suppressed application updates do not error", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.UpdatePreferences(ctx, "user-1", notification.Preferences{JobMatches: true})
		require.NoError(t, err)

		handler := notification.ApplicationSubmittedHandler(svc, zap.NewNop())

		err = handler(ctx, &events.ApplicationSubmittedEvent{UserID: "user-1", Reference: "REF0000002"})
		require.NoError(t, err)

		items, err := svc.ListByUser(ctx, "user-1", notification.ListQuery{})
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}
