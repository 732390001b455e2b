package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"faculty_api/internal/app/service"
	"faculty_api/internal/domain/model"
	"faculty_api/internal/domain/repository"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditWorker_PersistsPublishedEvents(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	events := repository.NewMemoryAuthEventRepository()
	w := NewAuditWorker(rdb, events, "audit", zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Start(ctx)
	}()

	pub := service.NewRedisAuditPublisher(rdb, "audit")
	now := time.Now().UTC()
	require.NoError(t, pub.Publish(ctx, model.AuthEvent{ID: "e1", Username: "bob", Kind: model.EventRegister, CreatedAt: now}))
	require.NoError(t, pub.Publish(ctx, model.AuthEvent{ID: "e2", Username: "bob", Kind: model.EventLoginSuccess, CreatedAt: now.Add(time.Second)}))
	// Redelivery of the same event is stored once.
	require.NoError(t, pub.Publish(ctx, model.AuthEvent{ID: "e2", Username: "bob", Kind: model.EventLoginSuccess, CreatedAt: now.Add(time.Second)}))

	assert.Eventually(t, func() bool {
		got, _ := events.ListByUsername(context.Background(), "bob", 10)
		return len(got) == 2
	}, 3*time.Second, 20*time.Millisecond)

	got, err := events.ListByUsername(context.Background(), "bob", 10)
	require.NoError(t, err)
	assert.Equal(t, "e2", got[0].ID)

	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("worker did not stop after cancellation")
	}
}

func TestAuditWorker_DropsMalformedPayloads(t *testing.T) {
	events := repository.NewMemoryAuthEventRepository()
	w := NewAuditWorker(nil, events, "audit", zerolog.Nop())

	w.process(context.Background(), "{not json")
	noID, _ := json.Marshal(model.AuthEvent{Username: "bob"})
	w.process(context.Background(), string(noID))

	got, err := events.ListByUsername(context.Background(), "bob", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// flakyEventRepo fails Create for its first `failures` calls.
type flakyEventRepo struct {
	repository.AuthEventRepository
	failures int32
	calls    int32
}

func (r *flakyEventRepo) Create(ctx context.Context, e *model.AuthEvent) error {
	if atomic.AddInt32(&r.calls, 1) <= r.failures {
		return errors.New("connection reset by peer")
	}
	return r.AuthEventRepository.Create(ctx, e)
}

func TestAuditWorker_RequeuesWhenStoreFails(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	repo := &flakyEventRepo{AuthEventRepository: repository.NewMemoryAuthEventRepository(), failures: 1}
	w := NewAuditWorker(rdb, repo, "audit", zerolog.Nop())
	w.retryBackoff = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	pub := service.NewRedisAuditPublisher(rdb, "audit")
	require.NoError(t, pub.Publish(ctx, model.AuthEvent{ID: "e1", Username: "bob", Kind: model.EventRegister, CreatedAt: time.Now().UTC()}))

	assert.Eventually(t, func() bool {
		got, _ := repo.ListByUsername(context.Background(), "bob", 10)
		return len(got) == 1
	}, 3*time.Second, 20*time.Millisecond)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&repo.calls), int32(2))

	n, err := rdb.LLen(context.Background(), "audit").Result()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAuditWorker_ProcessRequeuesOnFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	repo := &flakyEventRepo{AuthEventRepository: repository.NewMemoryAuthEventRepository(), failures: 1}
	w := NewAuditWorker(rdb, repo, "audit", zerolog.Nop())

	payload, _ := json.Marshal(model.AuthEvent{ID: "e1", Username: "bob", Kind: model.EventLoginFailure})
	assert.False(t, w.process(context.Background(), string(payload)))

	queued, err := rdb.LRange(context.Background(), "audit", 0, -1).Result()
	require.NoError(t, err)
	assert.Equal(t, []string{string(payload)}, queued)
}

func TestAuditWorker_ProcessFinishesAfterCancel(t *testing.T) {
	events := repository.NewMemoryAuthEventRepository()
	ctxAware := &ctxCheckingRepo{AuthEventRepository: events}
	w := NewAuditWorker(nil, ctxAware, "audit", zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	payload, _ := json.Marshal(model.AuthEvent{ID: "e1", Username: "bob", Kind: model.EventRegister})
	assert.True(t, w.process(ctx, string(payload)))

	got, err := events.ListByUsername(context.Background(), "bob", 10)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

// ctxCheckingRepo fails like a database driver would on a dead context.
type ctxCheckingRepo struct {
	repository.AuthEventRepository
}

func (r *ctxCheckingRepo) Create(ctx context.Context, e *model.AuthEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.AuthEventRepository.Create(ctx, e)
}
