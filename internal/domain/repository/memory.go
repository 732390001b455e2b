package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"faculty_api/internal/common"
	"faculty_api/internal/domain/model"
)

// In-memory implementations for tests and local runs without PostgreSQL.
// They enforce the same uniqueness and not-found rules as the pg versions.

type memoryUserRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]model.User
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]model.User)}
}

func (r *memoryUserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return common.ErrUserAlreadyExists
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now().UTC()
	r.users[user.Username] = *user
	return nil
}

func (r *memoryUserRepository) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &u, nil
}

type memoryTeacherRepository struct {
	mu       sync.Mutex
	nextID   int64
	teachers map[int64]model.Teacher
}

func NewMemoryTeacherRepository() TeacherRepository {
	return &memoryTeacherRepository{teachers: make(map[int64]model.Teacher)}
}

func (r *memoryTeacherRepository) Create(_ context.Context, t *model.Teacher) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := time.Now().UTC()
	t.ID, t.CreatedAt, t.UpdatedAt = r.nextID, now, now
	r.teachers[t.ID] = *t
	return nil
}

func (r *memoryTeacherRepository) FindByID(_ context.Context, id int64) (*model.Teacher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teachers[id]
	if !ok {
		return nil, common.ErrTeacherNotFound
	}
	return &t, nil
}

func (r *memoryTeacherRepository) List(_ context.Context, subjectSlug string) ([]model.Teacher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Teacher{}
	for _, t := range r.teachers {
		if subjectSlug == "" || t.SubjectSlug == subjectSlug {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryTeacherRepository) Update(_ context.Context, t *model.Teacher) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.teachers[t.ID]
	if !ok {
		return common.ErrTeacherNotFound
	}
	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = time.Now().UTC()
	r.teachers[t.ID] = *t
	return nil
}

func (r *memoryTeacherRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teachers[id]; !ok {
		return common.ErrTeacherNotFound
	}
	delete(r.teachers, id)
	return nil
}

type memoryAuthEventRepository struct {
	mu     sync.Mutex
	events map[string]model.AuthEvent
}

func NewMemoryAuthEventRepository() AuthEventRepository {
	return &memoryAuthEventRepository{events: make(map[string]model.AuthEvent)}
}

func (r *memoryAuthEventRepository) Create(_ context.Context, e *model.AuthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[e.ID]; !ok {
		r.events[e.ID] = *e
	}
	return nil
}

func (r *memoryAuthEventRepository) ListByUsername(_ context.Context, username string, limit int) ([]model.AuthEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.AuthEvent{}
	for _, e := range r.events {
		if e.Username == username {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
