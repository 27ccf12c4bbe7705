package dto

// CreateTituloRequest registers an academic/professional title for a persona.
type CreateTituloRequest struct {
	PersonaID     string  `json:"persona_id" validate:"required"`
	IDTipoTitulo  string  `json:"id_tipo_titulo" validate:"required"`
	NombreTitulo  string  `json:"nombre_titulo" validate:"required"`
	Institucion   string  `json:"institucion,omitempty"`
	FechaEmision  string  `json:"fecha_emision,omitempty"`
	MatriculaProf string  `json:"matricula_prof,omitempty"`
	IDArchivo     *string `json:"id_archivo,omitempty"`
	Estado        string  `json:"estado_verificacion,omitempty"`
	Observacion   string  `json:"observacion,omitempty"`
}
