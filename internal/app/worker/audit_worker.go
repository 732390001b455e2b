package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"faculty_api/internal/domain/model"
	"faculty_api/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const storeTimeout = 5 * time.Second

// AuditWorker drains the auth event queue into the auth_events table.
type AuditWorker struct {
	rdb          *redis.Client
	eventRepo    repository.AuthEventRepository
	queueName    string
	log          zerolog.Logger
	popTimeout   time.Duration
	retryBackoff time.Duration
}

func NewAuditWorker(rdb *redis.Client, eventRepo repository.AuthEventRepository, queueName string, log zerolog.Logger) *AuditWorker {
	return &AuditWorker{
		rdb:          rdb,
		eventRepo:    eventRepo,
		queueName:    queueName,
		log:          log.With().Str("component", "audit_worker").Str("queue", queueName).Logger(),
		popTimeout:   time.Second,
		retryBackoff: 5 * time.Second,
	}
}

// Start blocks until ctx is cancelled. BRPOP uses a short timeout so
// cancellation is noticed even when the queue stays empty.
func (w *AuditWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Audit worker started")
	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Audit worker stopping")
			return
		default:
		}

		result, err := w.rdb.BRPop(ctx, w.popTimeout, w.queueName).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				continue
			}
			w.log.Error().Err(err).Msg("Failed to BRPOP from audit queue")
			w.sleep(ctx, w.retryBackoff)
			continue
		}
		// result is [queueName, payload]
		if len(result) != 2 {
			w.log.Warn().Strs("result", result).Msg("Unexpected BRPOP reply")
			continue
		}
		if !w.process(ctx, result[1]) {
			w.sleep(ctx, w.retryBackoff)
		}
	}
}

// process stores one payload. It returns false when the store failed and the
// payload went back onto the queue.
func (w *AuditWorker) process(ctx context.Context, payload string) bool {
	var event model.AuthEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		w.log.Warn().Err(err).Str("payload", payload).Msg("Dropping malformed auth event")
		return true
	}
	if event.ID == "" || event.Username == "" {
		w.log.Warn().Str("payload", payload).Msg("Dropping auth event without id or username")
		return true
	}

	// The payload is already off the queue, so finish the insert even when
	// the worker is shutting down.
	storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storeTimeout)
	defer cancel()
	if err := w.eventRepo.Create(storeCtx, &event); err != nil {
		w.log.Error().Err(err).Str("event_id", event.ID).Msg("Failed to persist auth event, re-queueing")
		w.requeue(storeCtx, event.ID, payload)
		return false
	}
	w.log.Debug().Str("event_id", event.ID).Str("kind", string(event.Kind)).Msg("Auth event stored")
	return true
}

// requeue pushes payload back onto the consuming end of the queue so it is
// the next one popped.
func (w *AuditWorker) requeue(ctx context.Context, eventID, payload string) {
	if err := w.rdb.RPush(ctx, w.queueName, payload).Err(); err != nil {
		w.log.Error().Err(err).Str("event_id", eventID).Str("payload", payload).Msg("Failed to re-queue auth event, event lost")
		return
	}
	w.log.Info().Str("event_id", eventID).Msg("Auth event re-queued")
}

func (w *AuditWorker) sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
