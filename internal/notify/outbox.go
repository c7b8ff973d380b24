package notify

import (
	"context"
	"errors"

	"isml_backend/internal/logger"
	"isml_backend/internal/models"

	"go.uber.org/zap"
)

var ErrNoRecipient = errors.New("student has no email address")

// Outbox enqueues approval emails. It satisfies registry.Notifier.
type Outbox struct {
	queue Queue
}

func NewOutbox(queue Queue) *Outbox {
	return &Outbox{queue: queue}
}

func (o *Outbox) NotifyApproval(ctx context.Context, student *models.Student, registrationNumber string) error {
	if student.Email == "" {
		return ErrNoRecipient
	}
	msg := NewApprovalMessage(student.Email, student.Name, registrationNumber)
	if err := o.queue.Push(ctx, msg); err != nil {
		return err
	}
	logger.Info("approval email queued",
		zap.String("message_id", msg.ID),
		zap.Int64("student_id", student.StudentID))
	return nil
}
