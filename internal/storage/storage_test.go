package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"isml_backend/internal/apperr"
	"isml_backend/internal/models"
	"isml_backend/internal/registry"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, Translate(nil))
	assert.ErrorIs(t, Translate(gorm.ErrRecordNotFound), apperr.ErrNotFound)
	assert.ErrorIs(t, Translate(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})), apperr.ErrDuplicate)
	assert.ErrorIs(t, Translate(&pgconn.PgError{Code: "23503"}), apperr.ErrReference)
	assert.ErrorIs(t, Translate(errors.New("conn reset")), apperr.ErrPersistence)

	already := apperr.Wrap(apperr.ErrValidation, errors.New("x"))
	assert.Same(t, already, Translate(already))
}

// openTestDB returns a migrated, emptied database, or skips the test when no
// test database is configured.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := ConnectTestingDatabase()
	require.NoError(t, err)
	if db == nil {
		t.Skip("TEST_DB_HOST not set")
	}
	require.NoError(t, Migrate(db))
	require.NoError(t, db.Exec("TRUNCATE TABLE batches, courses, students, states, centers, sequences RESTART IDENTITY CASCADE").Error)
	return db
}

func TestBatchRepositoryAllocatesSequentially(t *testing.T) {
	db := openTestDB(t)
	course := models.Course{CourseName: "Abacus", Program: "P", Type: "T", Language: "en", Level: "1", Mode: "online", Duration: 6}
	require.NoError(t, db.Create(&course).Error)
	require.NoError(t, db.Exec("INSERT INTO batches (batch_name, duration, center, teacher, course_id, time_from, time_to) VALUES ('B9-OLD-9:00AM-10:00AM', '1', 1, 1, ?, '09:00', '10:00'), ('B130-OLD-9:00AM-10:00AM', '1', 1, 1, ?, '09:00', '10:00')", course.ID, course.ID).Error)

	batches := registry.NewBatches(NewBatchRepository(db))
	in := registry.BatchInput{Duration: "6 months", CenterID: 1, TeacherID: 1, CourseID: course.ID, TimeFrom: "09:00", TimeTo: "10:30"}

	const n = 10
	names := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			batch, err := batches.Allocate(context.Background(), in)
			if assert.NoError(t, err) {
				names <- batch.BatchName
			}
		}()
	}
	wg.Wait()
	close(names)

	seen := map[string]bool{}
	for name := range names {
		seen[name] = true
	}
	for seq := 131; seq < 131+n; seq++ {
		assert.True(t, seen[fmt.Sprintf("B%d-ABACUS-9:00AM-10:30AM", seq)], "missing B%d", seq)
	}

	summaries, err := NewBatchRepository(db).Summaries(context.Background())
	require.NoError(t, err)
	assert.Len(t, summaries, n+2)
}

func TestBatchRepositorySkipsZeroPaddedSequence(t *testing.T) {
	db := openTestDB(t)
	course := models.Course{CourseName: "Abacus", Program: "P", Type: "T", Language: "en", Level: "1", Mode: "online", Duration: 6}
	require.NoError(t, db.Create(&course).Error)
	require.NoError(t, db.Create(&models.Sequence{Name: models.BatchSequence, Value: 119}).Error)
	require.NoError(t, db.Exec("INSERT INTO batches (batch_name, duration, center, teacher, course_id, time_from, time_to) VALUES ('B0120-OLD-9:00AM-10:00AM', '1', 1, 1, ?, '09:00', '10:00')", course.ID).Error)

	batches := registry.NewBatches(NewBatchRepository(db))
	batch, err := batches.Allocate(context.Background(), registry.BatchInput{
		Duration: "6 months", CenterID: 1, TeacherID: 1, CourseID: course.ID, TimeFrom: "09:00", TimeTo: "10:30",
	})
	require.NoError(t, err)
	assert.Equal(t, "B121-ABACUS-9:00AM-10:30AM", batch.BatchName)
}

func TestStudentRepositoryMarkApprovedOnce(t *testing.T) {
	db := openTestDB(t)
	state := models.State{StateName: "Kerala"}
	require.NoError(t, db.Create(&state).Error)
	student := models.Student{Name: "Anjali", Email: "a@example.com", StateID: &state.StateID}
	require.NoError(t, db.Create(&student).Error)

	repo := NewStudentRepository(db)
	loaded, err := repo.FindStudent(context.Background(), student.StudentID)
	require.NoError(t, err)
	assert.Equal(t, "Kerala", loaded.StateName())

	ok, err := repo.MarkApproved(context.Background(), student.StudentID, "ISMLKEYY1234")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.MarkApproved(context.Background(), student.StudentID, "ISMLKEYY5678")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.FindStudent(context.Background(), 999999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
