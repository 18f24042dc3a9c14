package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jobflow/jobflow/internal/application"
	"github.com/jobflow/jobflow/internal/job"
	"github.com/jobflow/jobflow/internal/notification"
	"github.com/jobflow/jobflow/internal/resume"
	"github.com/jobflow/jobflow/internal/user"
)

// MemoryUserStore is an in-memory implementation of user.Repository.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]user.User
}

// NewMemoryUserStore creates an in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]user.User)}
}

func (m *MemoryUserStore) Create(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users[u.ID] = *u

	return nil
}

func (m *MemoryUserStore) GetByID(_ context.Context, id string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}

	return &u, nil
}

func (m *MemoryUserStore) GetByEmail(_ context.Context, email string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}

	return nil, user.ErrNotFound
}

func (m *MemoryUserStore) Update(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[u.ID]; !ok {
		return user.ErrNotFound
	}

	m.users[u.ID] = *u

	return nil
}

// MemoryResumeStore is an in-memory implementation of resume.Repository.
type MemoryResumeStore struct {
	mu      sync.RWMutex
	resumes map[string]resume.Resume
}

// NewMemoryResumeStore creates an in-memory resume store.
func NewMemoryResumeStore() *MemoryResumeStore {
	return &MemoryResumeStore{resumes: make(map[string]resume.Resume)}
}

func (m *MemoryResumeStore) Create(_ context.Context, r *resume.Resume) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.resumes[r.ID] = *r

	return nil
}

func (m *MemoryResumeStore) GetByID(_ context.Context, id string) (*resume.Resume, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.resumes[id]
	if !ok {
		return nil, resume.ErrNotFound
	}

	return &r, nil
}

func (m *MemoryResumeStore) ListByUser(_ context.Context, userID string) ([]*resume.Resume, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*resume.Resume, 0)

	for _, r := range m.resumes {
		if r.UserID == userID {
			r := r
			out = append(out, &r)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return out, nil
}

func (m *MemoryResumeStore) Update(_ context.Context, r *resume.Resume) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.resumes[r.ID]; !ok {
		return resume.ErrNotFound
	}

	m.resumes[r.ID] = *r

	return nil
}

// MemoryJobStore is an in-memory implementation of job.Repository.
type MemoryJobStore struct {
	mu   sync.RWMutex
	jobs map[string]job.Job
}

// NewMemoryJobStore creates an in-memory job store.
func NewMemoryJobStore() *MemoryJobStore {
	return &MemoryJobStore{jobs: make(map[string]job.Job)}
}

func (m *MemoryJobStore) Create(_ context.Context, j *job.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.jobs[j.ID] = *j

	return nil
}

func (m *MemoryJobStore) GetByID(_ context.Context, id string) (*job.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	j, ok := m.jobs[id]
	if !ok {
		return nil, job.ErrNotFound
	}

	return &j, nil
}

func (m *MemoryJobStore) Search(_ context.Context, params job.Search) ([]*job.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*job.Job, 0)

	for _, j := range m.jobs {
		if !j.IsActive {
			continue
		}

		if params.Keyword != "" && !strings.Contains(strings.ToLower(j.Title), strings.ToLower(params.Keyword)) {
			continue
		}

		if params.Location != "" && j.Location != params.Location {
			continue
		}

		if params.JobType != "" && j.JobType != params.JobType {
			continue
		}

		if params.Remote != nil && j.Remote != *params.Remote {
			continue
		}

		if !params.MatchesSalary(j.SalaryRange) {
			continue
		}

		j := j
		out = append(out, &j)
	}

	sort.Slice(out, func(i, k int) bool { return out[i].PostedDate.After(out[k].PostedDate) })

	return paginate(out, params.Offset, params.Limit), nil
}

// paginate slices a result set by offset and limit. A limit of zero or less
// means no limit.
func paginate[T any](items []T, offset, limit int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return items[:0]
		}

		items = items[offset:]
	}

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	return items
}

// MemoryApplicationStore is an in-memory implementation of
// application.Repository.
type MemoryApplicationStore struct {
	mu   sync.RWMutex
	apps map[string]application.Application
}

// NewMemoryApplicationStore creates an in-memory application store.
func NewMemoryApplicationStore() *MemoryApplicationStore {
	return &MemoryApplicationStore{apps: make(map[string]application.Application)}
}

func (m *MemoryApplicationStore) Create(_ context.Context, a *application.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.apps[a.ID] = *a

	return nil
}

func (m *MemoryApplicationStore) GetByID(_ context.Context, id string) (*application.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.apps[id]
	if !ok {
		return nil, application.ErrNotFound
	}

	return &a, nil
}

func (m *MemoryApplicationStore) ListByUser(_ context.Context, userID string) ([]*application.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*application.Application, 0)

	for _, a := range m.apps {
		if a.UserID == userID {
			a := a
			out = append(out, &a)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return out, nil
}

func (m *MemoryApplicationStore) GetByUserAndJob(_ context.Context, userID, jobID string) (*application.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, a := range m.apps {
		if a.UserID == userID && a.JobID == jobID {
			a := a

			return &a, nil
		}
	}

	return nil, application.ErrNotFound
}

func (m *MemoryApplicationStore) Update(_ context.Context, a *application.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.apps[a.ID]; !ok {
		return application.ErrNotFound
	}

	m.apps[a.ID] = *a

	return nil
}

// MemoryNotificationStore is an in-memory implementation of
// notification.Repository.
type MemoryNotificationStore struct {
	mu            sync.RWMutex
	notifications map[string]notification.Notification
	preferences   map[string]notification.Preferences
}

// NewMemoryNotificationStore creates an in-memory notification store.
func NewMemoryNotificationStore() *MemoryNotificationStore {
	return &MemoryNotificationStore{
		notifications: make(map[string]notification.Notification),
		preferences:   make(map[string]notification.Preferences),
	}
}

func (m *MemoryNotificationStore) Create(_ context.Context, n *notification.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.notifications[n.ID] = *n

	return nil
}

func (m *MemoryNotificationStore) GetByID(_ context.Context, id string) (*notification.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n, ok := m.notifications[id]
	if !ok {
		return nil, notification.ErrNotFound
	}

	return &n, nil
}

func (m *MemoryNotificationStore) ListByUser(_ context.Context, userID string, q notification.ListQuery) ([]*notification.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*notification.Notification, 0)

	for _, n := range m.notifications {
		if n.UserID != userID {
			continue
		}

		if q.UnreadOnly && n.Read {
			continue
		}

		n := n
		out = append(out, &n)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return paginate(out, q.Offset, q.Limit), nil
}

func (m *MemoryNotificationStore) CountUnread(_ context.Context, userID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0

	for _, n := range m.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}

	return count, nil
}

func (m *MemoryNotificationStore) Update(_ context.Context, n *notification.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.notifications[n.ID]; !ok {
		return notification.ErrNotFound
	}

	m.notifications[n.ID] = *n

	return nil
}

func (m *MemoryNotificationStore) MarkAllRead(_ context.Context, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	updated := 0

	for id, n := range m.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			m.notifications[id] = n
			updated++
		}
	}

	return updated, nil
}

func (m *MemoryNotificationStore) GetPreferences(_ context.Context, userID string) (*notification.Preferences, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.preferences[userID]
	if !ok {
		return nil, notification.ErrNotFound
	}

	return &p, nil
}

func (m *MemoryNotificationStore) SavePreferences(_ context.Context, userID string, p notification.Preferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.preferences[userID] = p

	return nil
}
