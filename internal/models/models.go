package models

import "time"

// Models below are referenced by batches and students but owned by other
// services; this API only reads them.

type User struct {
	ID   int64  `gorm:"column:id;primaryKey" json:"id"`
	Name string `gorm:"column:name;not null" json:"name"`
}

type Teacher struct {
	TeacherID int64 `gorm:"column:teacher_id;primaryKey" json:"teacher_id"`
	UserID    int64 `gorm:"column:user_id;index;not null" json:"user_id"`
	User      *User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

type Center struct {
	CenterID   int64  `gorm:"column:center_id;primaryKey" json:"center_id"`
	CenterName string `gorm:"column:center_name;not null" json:"center_name"`
}

type State struct {
	StateID   int64  `gorm:"column:state_id;primaryKey" json:"state_id"`
	StateName string `gorm:"column:state_name;not null" json:"state_name"`
}

type Enrollment struct {
	ID        int64 `gorm:"column:id;primaryKey" json:"id"`
	StudentID int64 `gorm:"column:student_id;index;not null" json:"student_id"`
	BatchID   int64 `gorm:"column:batch;index;not null" json:"batch"`
}

func (Enrollment) TableName() string { return "enrollment" }

// Sequence is a named counter. Rows are locked for update while a value is
// taken, so every allocation in a namespace is serialized by the database.
type Sequence struct {
	Name      string    `gorm:"column:name;primaryKey"`
	Value     int64     `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// BatchSequence names the sequence behind batch names.
const BatchSequence = "batch"

// All lists every model for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{}, &Teacher{}, &Center{}, &State{},
		&Course{}, &Batch{}, &Enrollment{}, &Student{},
		&GMeet{}, &Note{}, &Sequence{},
	}
}
