package notify

import (
	"context"
	"encoding/json"
	"errors"

	"isml_backend/internal/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Queue holds messages waiting for delivery. A popped message stays in flight
// until it is acknowledged, so a crash between Pop and Ack loses nothing.
type Queue interface {
	Push(ctx context.Context, msg Message) error
	// Pop returns ok=false when the queue is empty.
	Pop(ctx context.Context) (msg Message, ok bool, err error)
	// Ack drops a popped message from the in-flight list.
	Ack(ctx context.Context, msg Message) error
	// Dead parks a message that ran out of attempts.
	Dead(ctx context.Context, msg Message) error
}

const (
	OutboxKey     = "notifications:outbox"
	ProcessingKey = "notifications:processing"
	DeadKey       = "notifications:dead"
)

// RedisQueue is a FIFO of JSON messages in a Redis list. Pop moves the
// payload to a processing list with RPOPLPUSH; Ack removes it from there.
type RedisQueue struct {
	client *redis.Client
}

func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{client: client}
}

func (q *RedisQueue) Push(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, OutboxKey, payload).Err()
}

// Pop skips payloads that do not decode; they go to the dead-letter list as is.
func (q *RedisQueue) Pop(ctx context.Context) (Message, bool, error) {
	for {
		payload, err := q.client.RPopLPush(ctx, OutboxKey, ProcessingKey).Result()
		if errors.Is(err, redis.Nil) {
			return Message{}, false, nil
		}
		if err != nil {
			return Message{}, false, err
		}

		var msg Message
		if err := json.Unmarshal([]byte(payload), &msg); err != nil {
			logger.Error("undecodable outbox message moved to dead letters", err,
				zap.Int("bytes", len(payload)))
			if err := q.bury(ctx, payload); err != nil {
				return Message{}, false, err
			}
			continue
		}
		msg.raw = payload
		return msg, true, nil
	}
}

func (q *RedisQueue) bury(ctx context.Context, payload string) error {
	_, err := q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, DeadKey, payload)
		pipe.LRem(ctx, ProcessingKey, 1, payload)
		return nil
	})
	return err
}

func (q *RedisQueue) Ack(ctx context.Context, msg Message) error {
	if msg.raw == "" {
		return nil
	}
	return q.client.LRem(ctx, ProcessingKey, 1, msg.raw).Err()
}

func (q *RedisQueue) Dead(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, DeadKey, payload).Err()
}

// Restore puts messages left in flight by a stopped worker back on the
// outbox. Run it before the first drain.
func (q *RedisQueue) Restore(ctx context.Context) (int, error) {
	n := 0
	for {
		err := q.client.RPopLPush(ctx, ProcessingKey, OutboxKey).Err()
		if errors.Is(err, redis.Nil) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		n++
	}
}

// Len reports how many messages wait in the outbox.
func (q *RedisQueue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, OutboxKey).Result()
}
