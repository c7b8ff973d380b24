package registry

import (
	"context"
	"errors"
	"sync"
	"testing"

	"isml_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingStudent() *models.Student {
	return &models.Student{
		StudentID: 11,
		Name:      "Anjali",
		Email:     "anjali@example.com",
		State:     &models.State{StateName: "Kerala"},
		Center:    &models.Center{CenterName: "Kochi"},
	}
}

func TestApprovePendingStudent(t *testing.T) {
	store := newMemoryStudentStore(pendingStudent())
	notifier := &recordingNotifier{}

	approval, err := NewStudents(store, notifier).Approve(context.Background(), 11)
	require.NoError(t, err)

	assert.Regexp(t, `^ISML[A-Z]{2}[A-Z]{2}\d{4}$`, approval.RegistrationNumber)
	assert.Equal(t, "ISMLKEKO", approval.RegistrationNumber[:8])
	assert.True(t, approval.Student.Status)
	require.NotNil(t, approval.Student.RegistrationNumber)
	assert.Equal(t, approval.RegistrationNumber, *approval.Student.RegistrationNumber)

	stored := store.students[11]
	assert.True(t, stored.Status)
	assert.Equal(t, approval.RegistrationNumber, *stored.RegistrationNumber)
	assert.Equal(t, 1, store.writes)
	assert.Equal(t, []string{"anjali@example.com " + approval.RegistrationNumber}, notifier.sent)
}

func TestApproveRandomSuffixRange(t *testing.T) {
	s := NewStudents(newMemoryStudentStore(), &recordingNotifier{})
	for i := 0; i < 5000; i++ {
		n := s.rand4()
		require.GreaterOrEqual(t, n, 1000)
		require.LessOrEqual(t, n, 9999)
	}
}

func TestApproveFallbackCodes(t *testing.T) {
	st := pendingStudent()
	st.State = nil
	st.Center = &models.Center{CenterName: ""}
	store := newMemoryStudentStore(st)

	approval, err := NewStudents(store, &recordingNotifier{}).
		WithRand(func() int { return 1234 }).
		Approve(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, "ISMLXXYY1234", approval.RegistrationNumber)
}

func TestApproveAlreadyApproved(t *testing.T) {
	st := pendingStudent()
	st.Status = true
	number := "ISMLKEKO1111"
	st.RegistrationNumber = &number
	store := newMemoryStudentStore(st)
	notifier := &recordingNotifier{}

	_, err := NewStudents(store, notifier).Approve(context.Background(), 11)
	assert.ErrorIs(t, err, ErrAlreadyApproved)
	assert.Equal(t, 0, store.writes)
	assert.Equal(t, 0, notifier.count())
	assert.Equal(t, "ISMLKEKO1111", *store.students[11].RegistrationNumber)
}

func TestApproveMissingStudent(t *testing.T) {
	notifier := &recordingNotifier{}
	_, err := NewStudents(newMemoryStudentStore(), notifier).Approve(context.Background(), 404)
	assert.ErrorIs(t, err, ErrStudentNotFound)
	assert.Equal(t, 0, notifier.count())
}

func TestApproveSurvivesNotificationFailure(t *testing.T) {
	store := newMemoryStudentStore(pendingStudent())
	notifier := &recordingNotifier{failErr: errors.New("redis unavailable")}

	approval, err := NewStudents(store, notifier).Approve(context.Background(), 11)
	require.NoError(t, err)
	assert.True(t, store.students[11].Status)
	assert.NotEmpty(t, approval.RegistrationNumber)
}

func TestApproveRedrawsTakenNumber(t *testing.T) {
	store := newMemoryStudentStore(pendingStudent())
	store.taken["ISMLKEKO1000"] = true

	draws := []int{1000, 1000, 2000}
	s := NewStudents(store, &recordingNotifier{}).WithRand(func() int {
		n := draws[0]
		draws = draws[1:]
		return n
	})

	approval, err := s.Approve(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, "ISMLKEKO2000", approval.RegistrationNumber)
}

func TestApproveConcurrentSingleWinner(t *testing.T) {
	const n = 8
	store := newMemoryStudentStore(pendingStudent())
	store.gate = &sync.WaitGroup{}
	store.gate.Add(n)
	notifier := &recordingNotifier{}
	students := NewStudents(store, notifier)

	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = students.Approve(context.Background(), 11)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.ErrorIs(t, err, ErrAlreadyApproved)
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, store.writes)
	assert.Equal(t, 1, notifier.count())
}
