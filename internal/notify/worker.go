package notify

import (
	"context"

	"isml_backend/internal/logger"

	"go.uber.org/zap"
)

// Worker moves messages from the outbox to the Sender.
type Worker struct {
	queue       Queue
	sender      Sender
	batch       int
	maxAttempts int
}

func NewWorker(queue Queue, sender Sender, batch, maxAttempts int) *Worker {
	if batch < 1 {
		batch = 1
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Worker{queue: queue, sender: sender, batch: batch, maxAttempts: maxAttempts}
}

type DrainResult struct {
	Sent    int
	Retried int
	Dead    int
}

// Drain sends up to one batch of messages. A failed message goes back to the
// outbox, after the batch, until it has used maxAttempts; then it goes to the
// dead-letter list. Every popped message is acknowledged once it has been
// sent, requeued or buried.
func (w *Worker) Drain(ctx context.Context) (DrainResult, error) {
	var (
		res   DrainResult
		retry []Message
	)
	defer func() {
		for _, msg := range retry {
			if err := w.queue.Push(ctx, msg); err != nil {
				// left in flight; Restore brings it back
				logger.Error("notification requeue failed", err, zap.String("message_id", msg.ID))
				continue
			}
			w.ack(ctx, msg)
		}
	}()

	for i := 0; i < w.batch; i++ {
		msg, ok, err := w.queue.Pop(ctx)
		if err != nil {
			return res, err
		}
		if !ok {
			break
		}

		sendErr := w.sender.Send(ctx, msg)
		if sendErr == nil {
			res.Sent++
			w.ack(ctx, msg)
			logger.Info("notification sent",
				zap.String("message_id", msg.ID),
				zap.String("to", msg.To))
			continue
		}

		msg.Attempts++
		msg.LastError = sendErr.Error()
		if msg.Attempts >= w.maxAttempts {
			res.Dead++
			logger.Error("notification dropped to dead letters", sendErr,
				zap.String("message_id", msg.ID),
				zap.Int("attempts", msg.Attempts))
			if err := w.queue.Dead(ctx, msg); err != nil {
				return res, err
			}
			w.ack(ctx, msg)
			continue
		}

		res.Retried++
		logger.Warn("notification failed, will retry",
			zap.String("message_id", msg.ID),
			zap.Int("attempts", msg.Attempts),
			zap.Error(sendErr))
		retry = append(retry, msg)
	}
	return res, nil
}

func (w *Worker) ack(ctx context.Context, msg Message) {
	if err := w.queue.Ack(ctx, msg); err != nil {
		logger.Error("notification ack failed", err, zap.String("message_id", msg.ID))
	}
}
