package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"isml_backend/internal/models"
	"isml_backend/internal/naming"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BatchRepository struct {
	db *gorm.DB
}

func NewBatchRepository(db *gorm.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

func (r *BatchRepository) FindCourse(ctx context.Context, id int64) (*models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error; err != nil {
		return nil, Translate(err)
	}
	return &course, nil
}

func (r *BatchRepository) FindBatch(ctx context.Context, id int64) (*models.Batch, error) {
	var batch models.Batch
	if err := r.db.WithContext(ctx).Preload("Course").First(&batch, "batch_id = ?", id).Error; err != nil {
		return nil, Translate(err)
	}
	return &batch, nil
}

func (r *BatchRepository) CreateWithSequence(ctx context.Context, build func(seq int64) *models.Batch) (*models.Batch, error) {
	var batch *models.Batch
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		counter, err := lockSequence(tx, models.BatchSequence)
		if err != nil {
			return err
		}

		next := counter.Value + 1
		for {
			taken, err := sequenceTaken(tx, next)
			if err != nil {
				return err
			}
			if !taken {
				break
			}
			next++
		}

		if err := tx.Model(counter).Update("value", next).Error; err != nil {
			return err
		}

		batch = build(next)
		return tx.Omit(clause.Associations).Create(batch).Error
	})
	if err != nil {
		return nil, Translate(err)
	}
	return batch, nil
}

func (r *BatchRepository) UpdateBatch(ctx context.Context, batch *models.Batch) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(batch).Error
	return Translate(err)
}

func (r *BatchRepository) ReconcileSequence(ctx context.Context) (int64, error) {
	var value int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		counter, err := lockSequence(tx, models.BatchSequence)
		if err != nil {
			return err
		}
		max, ok, err := maxBatchSequence(tx)
		if err != nil {
			return err
		}
		value = counter.Value
		if ok && max > counter.Value {
			value = max
			return tx.Model(counter).Update("value", max).Error
		}
		return nil
	})
	if err != nil {
		return 0, Translate(err)
	}
	return value, nil
}

// lockSequence selects the named counter FOR UPDATE, creating it first when
// it does not exist yet. A new batch counter starts at the highest sequence
// already present in batches, compared numerically.
func lockSequence(tx *gorm.DB, name string) (*models.Sequence, error) {
	var seq models.Sequence
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("name = ?", name).First(&seq).Error
	if err == nil {
		return &seq, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	seed := naming.DefaultBatchSequence - 1
	if max, ok, err := maxBatchSequence(tx); err != nil {
		return nil, err
	} else if ok {
		seed = max
	}

	// Two first allocations may race here; DO NOTHING lets the loser fall
	// through to the lock below.
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Sequence{Name: name, Value: seed}).Error; err != nil {
		return nil, err
	}
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("name = ?", name).First(&seq).Error; err != nil {
		return nil, err
	}
	return &seq, nil
}

// sequenceExpr is the numeric sequence of a batch name, so B0120 and B120
// are the same number.
const sequenceExpr = "CAST(substring(batch_name from '^B([0-9]+)') AS BIGINT)"

func maxBatchSequence(tx *gorm.DB) (int64, bool, error) {
	var max sql.NullInt64
	row := tx.Model(&models.Batch{}).
		Select("MAX("+sequenceExpr+")").
		Where("batch_name ~ ?", "^B[0-9]+").
		Row()
	if err := row.Scan(&max); err != nil {
		return 0, false, err
	}
	return max.Int64, max.Valid, nil
}

func sequenceTaken(tx *gorm.DB, seq int64) (bool, error) {
	var n int64
	err := tx.Model(&models.Batch{}).
		Where("batch_name ~ ?", "^B[0-9]+").
		Where(sequenceExpr+" = ?", seq).
		Count(&n).Error
	return n > 0, err
}

// BatchSummary is a batch row flattened with its center, teacher, course and
// enrolled student count.
type BatchSummary struct {
	BatchID      int64          `json:"batch_id"`
	BatchName    string         `json:"batch_name"`
	Duration     string         `json:"duration"`
	CreatedAt    time.Time      `json:"created_at"`
	TimeFrom     datatypes.Time `json:"time_from"`
	TimeTo       datatypes.Time `json:"time_to"`
	CenterName   string         `json:"center_name"`
	TeacherName  string         `json:"teacher_name"`
	CourseName   string         `json:"course_name"`
	CourseType   string         `json:"course_type"`
	StudentCount int64          `json:"student_count"`
}

func (r *BatchRepository) Summaries(ctx context.Context) ([]BatchSummary, error) {
	rows := make([]BatchSummary, 0)
	err := r.db.WithContext(ctx).
		Table("batches AS b").
		Select(`b.batch_id, b.batch_name, b.duration, b.created_at, b.time_from, b.time_to,
			COALESCE(c.center_name, '') AS center_name,
			COALESCE(u.name, '') AS teacher_name,
			COALESCE(co.course_name, '') AS course_name,
			COALESCE(co.type, '') AS course_type,
			(SELECT COUNT(*) FROM enrollment e WHERE e.batch = b.batch_id) AS student_count`).
		Joins("LEFT JOIN centers c ON c.center_id = b.center").
		Joins("LEFT JOIN teachers t ON t.teacher_id = b.teacher").
		Joins("LEFT JOIN users u ON u.id = t.user_id").
		Joins("LEFT JOIN courses co ON co.id = b.course_id").
		Order("b.batch_id").
		Scan(&rows).Error
	if err != nil {
		return nil, Translate(err)
	}
	return rows, nil
}

func (r *BatchRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Batch{}, "batch_id = ?", id)
	if res.Error != nil {
		return Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return Translate(gorm.ErrRecordNotFound)
	}
	return nil
}
