package models

import "time"

type UserRole string

const (
	RoleTeacher UserRole = "PROFESOR"
	RoleAdmin   UserRole = "ADMINISTRADOR"
)

// User is a teacher account. Incidents reference users by email only; the
// account exists to authenticate and to carry the role claim.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Name      string    `json:"nombre" gorm:"not null"`
	Surname   string    `json:"apellidos"`
	Role      UserRole  `json:"rol" gorm:"not null;default:'PROFESOR'"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string {
	return "profesores"
}
