package registry

import (
	"context"
	"errors"
	"sync"

	"isml_backend/internal/apperr"
	"isml_backend/internal/models"
	"isml_backend/internal/naming"
)

// memoryBatchStore serializes sequence allocation with a mutex the way the
// gorm store does with a row lock.
type memoryBatchStore struct {
	mu      sync.Mutex
	courses map[int64]*models.Course
	batches []*models.Batch
	counter *int64
	writes  int
	failErr error
}

func newMemoryBatchStore(courses ...*models.Course) *memoryBatchStore {
	s := &memoryBatchStore{courses: make(map[int64]*models.Course)}
	for _, c := range courses {
		s.courses[c.ID] = c
	}
	return s
}

func (s *memoryBatchStore) FindCourse(_ context.Context, id int64) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.courses[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return c, nil
}

func (s *memoryBatchStore) FindBatch(_ context.Context, id int64) (*models.Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.batches {
		if b.BatchID == id {
			copied := *b
			return &copied, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (s *memoryBatchStore) maxSequence() (int64, bool) {
	var (
		max   int64
		found bool
	)
	for _, b := range s.batches {
		if n, ok := naming.BatchSequence(b.BatchName); ok && (!found || n > max) {
			max, found = n, true
		}
	}
	return max, found
}

func (s *memoryBatchStore) used(seq int64) bool {
	for _, b := range s.batches {
		if n, ok := naming.BatchSequence(b.BatchName); ok && n == seq {
			return true
		}
	}
	return false
}

func (s *memoryBatchStore) CreateWithSequence(_ context.Context, build func(seq int64) *models.Batch) (*models.Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	if s.counter == nil {
		seed := naming.DefaultBatchSequence - 1
		if max, ok := s.maxSequence(); ok {
			seed = max
		}
		s.counter = &seed
	}
	next := *s.counter + 1
	for s.used(next) {
		next++
	}
	*s.counter = next

	batch := build(next)
	batch.BatchID = int64(len(s.batches) + 1)
	s.batches = append(s.batches, batch)
	s.writes++
	return batch, nil
}

func (s *memoryBatchStore) UpdateBatch(_ context.Context, batch *models.Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.batches {
		if b.BatchID == batch.BatchID {
			copied := *batch
			s.batches[i] = &copied
			s.writes++
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (s *memoryBatchStore) ReconcileSequence(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	max, _ := s.maxSequence()
	if s.counter == nil || *s.counter < max {
		s.counter = &max
	}
	return *s.counter, nil
}

type memoryStudentStore struct {
	mu       sync.Mutex
	students map[int64]*models.Student
	taken    map[string]bool
	writes   int
	// gate, when set, is waited on between the read and the conditional write
	// so concurrent approvals all pass the pending check before any write.
	gate *sync.WaitGroup
}

func newMemoryStudentStore(students ...*models.Student) *memoryStudentStore {
	s := &memoryStudentStore{students: make(map[int64]*models.Student), taken: make(map[string]bool)}
	for _, st := range students {
		s.students[st.StudentID] = st
	}
	return s
}

func (s *memoryStudentStore) FindStudent(_ context.Context, id int64) (*models.Student, error) {
	s.mu.Lock()
	st, ok := s.students[id]
	var copied models.Student
	if ok {
		copied = *st
	}
	s.mu.Unlock()
	if !ok {
		return nil, apperr.ErrNotFound
	}
	if s.gate != nil {
		s.gate.Done()
		s.gate.Wait()
	}
	return &copied, nil
}

func (s *memoryStudentStore) MarkApproved(_ context.Context, id int64, number string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.taken[number] {
		return false, apperr.ErrDuplicate
	}
	st, ok := s.students[id]
	if !ok || st.Status {
		return false, nil
	}
	st.Status = true
	st.RegistrationNumber = &number
	s.taken[number] = true
	s.writes++
	return true, nil
}

type recordingNotifier struct {
	mu      sync.Mutex
	sent    []string
	failErr error
}

func (n *recordingNotifier) NotifyApproval(_ context.Context, student *models.Student, number string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failErr != nil {
		return n.failErr
	}
	n.sent = append(n.sent, student.Email+" "+number)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

var errStoreDown = errors.New("store down")
