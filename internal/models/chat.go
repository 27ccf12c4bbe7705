package models

import "time"

// ChatConsulta is a persisted AI chat exchange.
type ChatConsulta struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	PersonaID *string   `db:"persona_id" json:"persona_id,omitempty"`
	Pregunta  string    `db:"pregunta" json:"pregunta"`
	Respuesta string    `db:"respuesta" json:"respuesta"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
