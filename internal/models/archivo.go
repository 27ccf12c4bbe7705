package models

import "time"

// Archivo is an uploaded file record linked into documentos and titulos.
type Archivo struct {
	ID             string    `db:"id" json:"id_archivo"`
	PersonaID      string    `db:"persona_id" json:"persona_id"`
	NombreOriginal string    `db:"nombre_original" json:"nombre_original"`
	Ruta           string    `db:"ruta" json:"-"`
	MimeType       string    `db:"mime_type" json:"mime_type"`
	TamanioBytes   int64     `db:"tamanio_bytes" json:"tamanio_bytes"`
	SubidoPor      string    `db:"subido_por" json:"subido_por"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
