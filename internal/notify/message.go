// Package notify delivers student emails through an outbox: requests enqueue
// messages and a worker sends them, so delivery failures never reach the
// request that caused them.
package notify

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID                 string    `json:"id"`
	To                 string    `json:"to"`
	Name               string    `json:"name"`
	RegistrationNumber string    `json:"registration_number"`
	Attempts           int       `json:"attempts"`
	EnqueuedAt         time.Time `json:"enqueued_at"`
	LastError          string    `json:"last_error,omitempty"`

	raw string // payload as popped, for Ack
}

func NewApprovalMessage(to, name, registrationNumber string) Message {
	return Message{
		ID:                 uuid.NewString(),
		To:                 to,
		Name:               name,
		RegistrationNumber: registrationNumber,
		EnqueuedAt:         time.Now().UTC(),
	}
}
