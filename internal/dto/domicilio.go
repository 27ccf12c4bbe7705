package dto

// CreateBarrioRequest creates a barrio under a localidad.
type CreateBarrioRequest struct {
	Nombre       string  `json:"nombre" validate:"required"`
	Manzana      *string `json:"manzana,omitempty"`
	Casa         *string `json:"casa,omitempty"`
	Departamento *string `json:"departamento,omitempty"`
	Piso         *string `json:"piso,omitempty"`
}

// CreateDomicilioRequest registers an address for a persona referencing an
// existing barrio.
type CreateDomicilioRequest struct {
	IDDomBarrio string `json:"id_dom_barrio" validate:"required"`
	Calle       string `json:"calle" validate:"required"`
	Altura      int    `json:"altura" validate:"required"`
}
