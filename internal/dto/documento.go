package dto

// CreateDocumentoRequest is the payload for registering a persona document.
// Estado is only honored for actors allowed to set verification state at
// creation time; everyone else starts at PENDIENTE.
type CreateDocumentoRequest struct {
	TipoDoc     string  `json:"tipo_doc" validate:"required"`
	IDArchivo   *string `json:"id_archivo,omitempty"`
	Vigente     *bool   `json:"vigente,omitempty"`
	Estado      string  `json:"estado_verificacion,omitempty"`
	Observacion string  `json:"observacion,omitempty"`
}

// ChangeEstadoRequest transitions the verification state of a documento or titulo.
type ChangeEstadoRequest struct {
	Estado      string `json:"estado" validate:"required"`
	Observacion string `json:"observacion"`
}
