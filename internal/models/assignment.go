package models

import "time"

// ResponsibleAssignment links a category to a person accountable for its
// incidents. The default responsible for a category is the assignment with
// the lowest priority (id breaks ties); priorities are assigned sequentially
// per category on insert.
type ResponsibleAssignment struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	CategoryName     string    `json:"nombreCategoria" gorm:"uniqueIndex:idx_usuario_categoria;not null"`
	ResponsibleName  string    `json:"nombreResponsable" gorm:"uniqueIndex:idx_usuario_categoria;not null"`
	ResponsibleEmail string    `json:"correoResponsable" gorm:"uniqueIndex:idx_usuario_categoria;not null"`
	Priority         int       `json:"prioridad" gorm:"not null"`
	CreatedAt        time.Time `json:"-"`
}

func (ResponsibleAssignment) TableName() string {
	return "usuarios_categoria"
}
