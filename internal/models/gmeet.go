package models

import (
	"time"

	"gorm.io/datatypes"
)

type GMeet struct {
	MeetID    int64          `gorm:"column:meet_id;primaryKey" json:"meet_id"`
	BatchID   int64          `gorm:"column:batch_id;index;not null" json:"batch_id"`
	MeetLink  string         `gorm:"column:meet_link;not null" json:"meet_link"`
	Date      datatypes.Date `gorm:"column:date;not null" json:"date"`
	Time      datatypes.Time `gorm:"column:time;not null" json:"time"`
	Current   bool           `gorm:"column:current;not null" json:"current"` // the meet currently linked on the batch page
	Note      string         `gorm:"column:note" json:"note"`
	Title     string         `gorm:"column:title;not null" json:"title"`
	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
}

func (GMeet) TableName() string { return "gmeets" }
