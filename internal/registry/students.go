package registry

import (
	"context"
	"errors"
	"math/rand/v2"

	"isml_backend/internal/apperr"
	"isml_backend/internal/logger"
	"isml_backend/internal/models"
	"isml_backend/internal/naming"

	"go.uber.org/zap"
)

var (
	ErrStudentNotFound = apperr.New(apperr.NotFound, "STUDENT_NOT_FOUND", "Student not found")
	ErrAlreadyApproved = apperr.New(apperr.AlreadyApproved, "ALREADY_APPROVED", "Student is already approved")
)

// maxNumberAttempts bounds redraws when a registration number is taken.
const maxNumberAttempts = 5

// StudentStore is the persistence the issuer needs.
type StudentStore interface {
	// FindStudent loads a student with its state and center.
	FindStudent(ctx context.Context, id int64) (*models.Student, error)
	// MarkApproved sets status and registration number only if the student is
	// still pending, reporting whether it did. A taken number is reported as
	// apperr.ErrDuplicate.
	MarkApproved(ctx context.Context, id int64, registrationNumber string) (bool, error)
}

// Notifier hands the approval email off for asynchronous delivery.
type Notifier interface {
	NotifyApproval(ctx context.Context, student *models.Student, registrationNumber string) error
}

type Approval struct {
	Student            *models.Student
	RegistrationNumber string
}

// Students issues registration numbers on approval.
type Students struct {
	store    StudentStore
	notifier Notifier
	rand4    func() int
}

func NewStudents(store StudentStore, notifier Notifier) *Students {
	return &Students{
		store:    store,
		notifier: notifier,
		rand4:    func() int { return 1000 + rand.IntN(9000) },
	}
}

// WithRand replaces the 4-digit draw.
func (s *Students) WithRand(fn func() int) *Students {
	s.rand4 = fn
	return s
}

// Approve flips a pending student to approved with a fresh registration
// number and queues the notification email. Of two concurrent approvals of
// one student exactly one succeeds; the other gets ErrAlreadyApproved.
func (s *Students) Approve(ctx context.Context, studentID int64) (*Approval, error) {
	student, err := s.store.FindStudent(ctx, studentID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	if student.Status {
		return nil, ErrAlreadyApproved
	}

	stateCode := naming.RegionCode(student.StateName(), naming.FallbackStateCode)
	centerCode := naming.RegionCode(student.CenterName(), naming.FallbackCenterCode)

	var number string
	for attempt := 1; ; attempt++ {
		number = naming.RegistrationNumber(stateCode, centerCode, s.rand4())
		updated, err := s.store.MarkApproved(ctx, studentID, number)
		if errors.Is(err, apperr.ErrDuplicate) && attempt < maxNumberAttempts {
			continue
		}
		if err != nil {
			return nil, err
		}
		if !updated {
			return nil, ErrAlreadyApproved
		}
		break
	}

	student.Status = true
	student.RegistrationNumber = &number

	if err := s.notifier.NotifyApproval(ctx, student, number); err != nil {
		logger.Error("approval notification not queued", apperr.Wrap(apperr.ErrNotify, err),
			zap.Int64("student_id", studentID),
			zap.String("registration_number", number))
	}

	return &Approval{Student: student, RegistrationNumber: number}, nil
}
