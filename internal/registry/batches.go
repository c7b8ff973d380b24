// Package registry issues the identifiers of the back office: batch names
// with their sequence numbers, and student registration numbers.
package registry

import (
	"context"
	"errors"
	"strconv"

	"isml_backend/internal/apperr"
	"isml_backend/internal/models"
	"isml_backend/internal/naming"

	"gorm.io/datatypes"
)

var (
	ErrInvalidCourse = apperr.New(apperr.Validation, "INVALID_COURSE", "Invalid course ID")
	ErrBatchNotFound = apperr.New(apperr.NotFound, "BATCH_NOT_FOUND", "Batch not found")
	ErrInvalidTime   = naming.ErrInvalidTime
	ErrMissingFields = apperr.New(apperr.Validation, "MISSING_FIELDS",
		"All fields are required: duration, center, teacher, course_id, time_from, time_to")
)

// BatchStore is the persistence the allocator needs. Implementations report
// missing rows as apperr.ErrNotFound and other failures as apperr.ErrPersistence.
type BatchStore interface {
	FindCourse(ctx context.Context, id int64) (*models.Course, error)
	FindBatch(ctx context.Context, id int64) (*models.Batch, error)
	// CreateWithSequence takes the next free batch sequence number and inserts
	// the batch built from it in one atomic step.
	CreateWithSequence(ctx context.Context, build func(seq int64) *models.Batch) (*models.Batch, error)
	UpdateBatch(ctx context.Context, batch *models.Batch) error
	// ReconcileSequence raises the counter to the highest sequence in use and
	// returns the counter's value.
	ReconcileSequence(ctx context.Context) (int64, error)
}

type BatchInput struct {
	Duration  string
	CenterID  int64
	TeacherID int64
	CourseID  int64
	TimeFrom  string
	TimeTo    string
}

// Batches allocates batch names.
type Batches struct {
	store BatchStore
}

func NewBatches(store BatchStore) *Batches {
	return &Batches{store: store}
}

// slot is a validated BatchInput with its course resolved.
type slot struct {
	in        BatchInput
	course    *models.Course
	from, to  datatypes.Time
	fromLabel string
	toLabel   string
}

func (s slot) apply(batch *models.Batch, seq string) {
	batch.BatchName = naming.BatchName(seq, s.course.CourseName, s.fromLabel, s.toLabel)
	batch.Duration = s.in.Duration
	batch.CenterID = s.in.CenterID
	batch.TeacherID = s.in.TeacherID
	batch.CourseID = s.course.ID
	batch.TimeFrom = s.from
	batch.TimeTo = s.to
	batch.Course = s.course
}

func (b *Batches) resolve(ctx context.Context, in BatchInput) (slot, error) {
	if in.Duration == "" || in.CenterID == 0 || in.TeacherID == 0 || in.CourseID == 0 ||
		in.TimeFrom == "" || in.TimeTo == "" {
		return slot{}, ErrMissingFields
	}

	s := slot{in: in}
	var err error
	if s.fromLabel, err = naming.FormatClock(in.TimeFrom); err != nil {
		return slot{}, err
	}
	if s.toLabel, err = naming.FormatClock(in.TimeTo); err != nil {
		return slot{}, err
	}
	// FormatClock accepted both, so these cannot fail.
	s.from, _ = naming.ParseClock(in.TimeFrom)
	s.to, _ = naming.ParseClock(in.TimeTo)

	s.course, err = b.store.FindCourse(ctx, in.CourseID)
	if errors.Is(err, apperr.ErrNotFound) {
		return slot{}, ErrInvalidCourse
	}
	if err != nil {
		return slot{}, err
	}
	return s, nil
}

// Allocate creates a batch named B<seq>-<COURSE>-<from>-<to>, where seq is one
// past the highest sequence allocated so far. Nothing is written when the
// times or the course are invalid.
func (b *Batches) Allocate(ctx context.Context, in BatchInput) (*models.Batch, error) {
	s, err := b.resolve(ctx, in)
	if err != nil {
		return nil, err
	}

	batch, err := b.store.CreateWithSequence(ctx, func(seq int64) *models.Batch {
		batch := &models.Batch{}
		s.apply(batch, strconv.FormatInt(seq, 10))
		return batch
	})
	if err != nil {
		return nil, err
	}
	batch.Course = s.course
	return batch, nil
}

// Reassign rewrites a batch from in while keeping its sequence number.
func (b *Batches) Reassign(ctx context.Context, batchID int64, in BatchInput) (*models.Batch, error) {
	batch, err := b.store.FindBatch(ctx, batchID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, ErrBatchNotFound
	}
	if err != nil {
		return nil, err
	}

	s, err := b.resolve(ctx, in)
	if err != nil {
		return nil, err
	}
	s.apply(batch, naming.SequencePart(batch.BatchName))

	if err := b.store.UpdateBatch(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// Reconcile repairs the batch counter after names were written outside the
// allocator.
func (b *Batches) Reconcile(ctx context.Context) (int64, error) {
	return b.store.ReconcileSequence(ctx)
}
