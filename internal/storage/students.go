package storage

import (
	"context"

	"isml_backend/internal/models"

	"gorm.io/gorm"
)

type StudentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func (r *StudentRepository) FindStudent(ctx context.Context, id int64) (*models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).
		Preload("State").
		Preload("Center").
		First(&student, "student_id = ?", id).Error
	if err != nil {
		return nil, Translate(err)
	}
	return &student, nil
}

// MarkApproved is a compare-and-set on status: only a pending row is updated.
func (r *StudentRepository) MarkApproved(ctx context.Context, id int64, registrationNumber string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("student_id = ? AND status = ?", id, false).
		Updates(map[string]interface{}{
			"status":              true,
			"registration_number": registrationNumber,
		})
	if res.Error != nil {
		return false, Translate(res.Error)
	}
	return res.RowsAffected == 1, nil
}
