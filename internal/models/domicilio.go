package models

import "time"

// DomDepartamento is the top level of the address geography hierarchy.
type DomDepartamento struct {
	ID     string `db:"id" json:"id"`
	Nombre string `db:"nombre" json:"nombre"`
}

// DomLocalidad belongs to one departamento.
type DomLocalidad struct {
	ID             string `db:"id" json:"id"`
	IDDepartamento string `db:"id_departamento" json:"id_departamento"`
	Nombre         string `db:"nombre" json:"nombre"`
}

// DomBarrio is a neighborhood with optional block/house/unit/floor detail.
type DomBarrio struct {
	ID           string    `db:"id" json:"id"`
	IDLocalidad  string    `db:"id_localidad" json:"id_localidad"`
	Nombre       string    `db:"nombre" json:"nombre"`
	Manzana      *string   `db:"manzana" json:"manzana,omitempty"`
	Casa         *string   `db:"casa" json:"casa,omitempty"`
	Departamento *string   `db:"departamento" json:"departamento,omitempty"`
	Piso         *string   `db:"piso" json:"piso,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Domicilio is a postal address linked to a Persona through a barrio.
type Domicilio struct {
	ID          string    `db:"id" json:"id"`
	PersonaID   string    `db:"persona_id" json:"persona_id"`
	IDDomBarrio string    `db:"id_dom_barrio" json:"id_dom_barrio"`
	Calle       string    `db:"calle" json:"calle"`
	Altura      int       `db:"altura" json:"altura"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// DomicilioDetail joins the full geography chain for display.
type DomicilioDetail struct {
	Domicilio
	BarrioNombre       string  `db:"barrio_nombre" json:"barrio_nombre"`
	LocalidadNombre    string  `db:"localidad_nombre" json:"localidad_nombre"`
	DepartamentoNombre string  `db:"departamento_nombre" json:"departamento_nombre"`
	Manzana            *string `db:"manzana" json:"manzana,omitempty"`
	Casa               *string `db:"casa" json:"casa,omitempty"`
	UnidadDepto        *string `db:"unidad_depto" json:"unidad_depto,omitempty"`
	Piso               *string `db:"piso" json:"piso,omitempty"`
}
