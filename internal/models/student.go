package models

type Student struct {
	StudentID          int64   `gorm:"column:student_id;primaryKey" json:"student_id"`
	Name               string  `gorm:"column:name;not null" json:"name"`
	Email              string  `gorm:"column:email;not null" json:"email"`
	StateID            *int64  `gorm:"column:state;index" json:"state"`
	CenterID           *int64  `gorm:"column:center;index" json:"center"`
	Status             bool    `gorm:"column:status;not null;default:false" json:"status"` // false = pending, true = approved
	RegistrationNumber *string `gorm:"column:registration_number;uniqueIndex" json:"registration_number"`

	State  *State  `gorm:"foreignKey:StateID;references:StateID" json:"state_ref,omitempty"`
	Center *Center `gorm:"foreignKey:CenterID;references:CenterID" json:"center_ref,omitempty"`
}

// StateName returns the joined state's name, or "" when it was not loaded.
func (s *Student) StateName() string {
	if s.State == nil {
		return ""
	}
	return s.State.StateName
}

func (s *Student) CenterName() string {
	if s.Center == nil {
		return ""
	}
	return s.Center.CenterName
}
