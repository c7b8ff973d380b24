package models

type Course struct {
	ID         int64   `gorm:"column:id;primaryKey" json:"id"`
	CourseName string  `gorm:"column:course_name;not null" json:"course_name"`
	Program    string  `gorm:"column:program;not null" json:"program"`
	Type       string  `gorm:"column:type;not null" json:"type"`
	Language   string  `gorm:"column:language;not null" json:"language"`
	Level      string  `gorm:"column:level;not null" json:"level"`
	Mode       string  `gorm:"column:mode;not null" json:"mode"`
	Duration   float64 `gorm:"column:duration;not null" json:"duration"`
}
