package models

import (
	"time"

	"gorm.io/datatypes"
)

type Batch struct {
	BatchID   int64          `gorm:"column:batch_id;primaryKey" json:"batch_id"`
	BatchName string         `gorm:"column:batch_name;uniqueIndex;not null" json:"batch_name"` // B<seq>-<COURSE>-<from>-<to>
	Duration  string         `gorm:"column:duration;not null" json:"duration"`
	CenterID  int64          `gorm:"column:center;index;not null" json:"center"`
	TeacherID int64          `gorm:"column:teacher;index;not null" json:"teacher"`
	CourseID  int64          `gorm:"column:course_id;index;not null" json:"course_id"`
	TimeFrom  datatypes.Time `gorm:"column:time_from;not null" json:"time_from"`
	TimeTo    datatypes.Time `gorm:"column:time_to;not null" json:"time_to"`
	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`

	Course      *Course      `gorm:"foreignKey:CourseID;references:ID" json:"course,omitempty"`
	Center      *Center      `gorm:"foreignKey:CenterID;references:CenterID" json:"-"`
	Teacher     *Teacher     `gorm:"foreignKey:TeacherID;references:TeacherID" json:"-"`
	Enrollments []Enrollment `gorm:"foreignKey:BatchID;references:BatchID" json:"-"`
}
