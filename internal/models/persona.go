package models

import "time"

// Persona is the root staff/employee record managed by the application.
type Persona struct {
	ID              string    `db:"id" json:"id"`
	Nombre          string    `db:"nombre" json:"nombre"`
	Apellido        string    `db:"apellido" json:"apellido"`
	FechaNacimiento time.Time `db:"fecha_nacimiento" json:"fecha_nacimiento"`
	Sexo            string    `db:"sexo" json:"sexo"`
	Telefono        string    `db:"telefono" json:"telefono,omitempty"`
	Activo          bool      `db:"activo" json:"activo"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// PersonaFilter encapsulates allowed search parameters for listing personas.
type PersonaFilter struct {
	Search    string
	Activo    *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
