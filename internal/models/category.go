package models

import "time"

// Category classifies incidents and determines the default responsible
// party. PrintReport marks categories whose incidents get a printable
// damage report.
type Category struct {
	Name        string    `json:"nombre" gorm:"primaryKey"`
	PrintReport bool      `json:"imprimirInforme"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

func (Category) TableName() string {
	return "categorias"
}
