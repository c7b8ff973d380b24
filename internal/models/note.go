package models

import "time"

type Note struct {
	NotesID   int64     `gorm:"column:notes_id;primaryKey" json:"notes_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	Link      string    `gorm:"column:link" json:"link"`
	BatchID   int64     `gorm:"column:batch_id;index;not null" json:"batch_id"`
	Title     string    `gorm:"column:title" json:"title"`
	Note      string    `gorm:"column:note" json:"note"`
}
