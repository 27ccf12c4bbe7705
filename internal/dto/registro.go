package dto

import "github.com/rrhh-digital/legajo-api/internal/models"

// BarrioNuevo carries the full creation payload for a barrio selected during
// the registration wizard. Departamento and localidad anchor the geography
// chain; manzana/casa/departamento/piso remain optional.
type BarrioNuevo struct {
	IDDepartamento string  `json:"id_departamento"`
	IDLocalidad    string  `json:"id_localidad"`
	Nombre         string  `json:"nombre"`
	Manzana        *string `json:"manzana,omitempty"`
	Casa           *string `json:"casa,omitempty"`
	Departamento   *string `json:"departamento,omitempty"`
	Piso           *string `json:"piso,omitempty"`
}

// DomicilioDraft is the wizard's address draft: either an existing barrio id
// or a BarrioNuevo payload, plus street and number.
type DomicilioDraft struct {
	IDDomBarrio *string      `json:"id_dom_barrio,omitempty"`
	BarrioNuevo *BarrioNuevo `json:"barrio_nuevo,omitempty"`
	Calle       string       `json:"calle"`
	Altura      int          `json:"altura"`
}

// TituloDraft is the wizard's optional title draft. It is only submitted when
// both IDTipoTitulo and NombreTitulo are present.
type TituloDraft struct {
	IDTipoTitulo  string  `json:"id_tipo_titulo"`
	NombreTitulo  string  `json:"nombre_titulo"`
	Institucion   string  `json:"institucion,omitempty"`
	FechaEmision  string  `json:"fecha_emision,omitempty"`
	MatriculaProf string  `json:"matricula_prof,omitempty"`
	IDArchivo     *string `json:"id_archivo,omitempty"`
}

// RegistroRequest is the wizard's final submission for a persona.
type RegistroRequest struct {
	Domicilio DomicilioDraft `json:"domicilio"`
	Titulo    *TituloDraft   `json:"titulo,omitempty"`
}

// RegistroResult reports what the submission created. Partial results are
// possible: steps completed before a failure are not rolled back.
type RegistroResult struct {
	BarrioID      string             `json:"barrio_id,omitempty"`
	Domicilio     *models.Domicilio  `json:"domicilio,omitempty"`
	Titulo        *models.Titulo     `json:"titulo,omitempty"`
	TituloOmitido bool               `json:"titulo_omitido,omitempty"`
}
