package service

import (
	"context"
	"encoding/json"

	"faculty_api/internal/common"
	"faculty_api/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

// AuditPublisher hands auth events to the audit worker.
type AuditPublisher interface {
	Publish(ctx context.Context, event model.AuthEvent) error
}

type RedisAuditPublisher struct {
	rdb       *redis.Client
	queueName string
}

func NewRedisAuditPublisher(rdb *redis.Client, queueName string) *RedisAuditPublisher {
	return &RedisAuditPublisher{rdb: rdb, queueName: queueName}
}

// Publish pushes the JSON-encoded event onto the head of the queue; the
// worker pops from the tail, so events are consumed in publish order.
func (p *RedisAuditPublisher) Publish(ctx context.Context, event model.AuthEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return common.Errorf("failed to marshal auth event: %w", err)
	}
	if err := p.rdb.LPush(ctx, p.queueName, payload).Err(); err != nil {
		return common.Errorf("failed to push auth event to redis queue %s: %w", p.queueName, err)
	}
	return nil
}

// NoopAuditPublisher drops every event. Used when auditing is disabled.
type NoopAuditPublisher struct{}

func (NoopAuditPublisher) Publish(context.Context, model.AuthEvent) error { return nil }
