package models

import "time"

// Location is a physical place an incident can be reported for. Names are
// unique, matched case-insensitively on creation.
type Location struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"nombre" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Location) TableName() string {
	return "ubicaciones"
}
