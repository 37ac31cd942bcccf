package models

import "time"

type IncidentState string

const (
	StatePending    IncidentState = "PENDIENTE"
	StateInProgress IncidentState = "EN PROGRESO"
	StateResolved   IncidentState = "RESUELTA"
	StateCancelled  IncidentState = "CANCELADA"
	StateDuplicate  IncidentState = "DUPLICADA"
)

// States returns every valid incident state, in the order the listing
// endpoint has always exposed them.
func States() []IncidentState {
	return []IncidentState{
		StatePending,
		StateResolved,
		StateCancelled,
		StateDuplicate,
		StateInProgress,
	}
}

// ValidState reports whether s is one of the five known states. There is no
// transition graph: any valid state may be set at any time.
func ValidState(s string) bool {
	switch IncidentState(s) {
	case StatePending, StateInProgress, StateResolved, StateCancelled, StateDuplicate:
		return true
	}
	return false
}

// Incident is a reported facility problem. Identity is the surrogate ID; the
// old natural key (location, reporter, timestamp) survives as a non-unique
// index for lookups from legacy clients.
type Incident struct {
	ID               uint          `json:"id" gorm:"primaryKey"`
	Location         string        `json:"ubicacion" gorm:"index:idx_incidencia_natural;not null"`
	ReporterEmail    string        `json:"correoDocente" gorm:"index:idx_incidencia_natural;not null"`
	ReporterName     string        `json:"nombreDocente"`
	ReporterSurname  string        `json:"apellidosDocente"`
	ReportedAt       time.Time     `json:"fechaIncidencia" gorm:"index:idx_incidencia_natural;not null"`
	Description      string        `json:"descripcionIncidencia" gorm:"type:text;not null"`
	State            IncidentState `json:"estadoIncidencia" gorm:"not null;default:'PENDIENTE'"`
	Solution         *string       `json:"comentario" gorm:"type:text"`
	ResponsibleEmail *string       `json:"correoResponsable"`
	CategoryName     string        `json:"nombreCategoria" gorm:"not null"`
	Category         Category      `json:"-" gorm:"foreignKey:CategoryName;references:Name"`
}

func (Incident) TableName() string {
	return "incidencias"
}
