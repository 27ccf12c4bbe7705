package dto

// ConsultaRequest is an HR chat question, optionally scoped to one persona.
type ConsultaRequest struct {
	PersonaID *string `json:"persona_id,omitempty"`
	Pregunta  string  `json:"pregunta" validate:"required"`
}

// ConsultaResponse carries the generated answer.
type ConsultaResponse struct {
	ID        string `json:"id"`
	Pregunta  string `json:"pregunta"`
	Respuesta string `json:"respuesta"`
}
