package models

import "time"

// TipoTitulo enumerates academic/professional qualification categories.
type TipoTitulo string

const (
	TituloSecundario    TipoTitulo = "SECUNDARIO"
	TituloTerciario     TipoTitulo = "TERCIARIO"
	TituloUniversitario TipoTitulo = "UNIVERSITARIO"
	TituloPosgrado      TipoTitulo = "POSGRADO"
	TituloCurso         TipoTitulo = "CURSO"
)

// Valid reports whether the code is a known title type.
func (t TipoTitulo) Valid() bool {
	switch t {
	case TituloSecundario, TituloTerciario, TituloUniversitario, TituloPosgrado, TituloCurso:
		return true
	}
	return false
}

// Titulo is an academic or professional qualification belonging to one Persona.
type Titulo struct {
	ID            string             `db:"id" json:"id"`
	PersonaID     string             `db:"persona_id" json:"persona_id"`
	IDTipoTitulo  TipoTitulo         `db:"id_tipo_titulo" json:"id_tipo_titulo"`
	NombreTitulo  string             `db:"nombre_titulo" json:"nombre_titulo"`
	Institucion   string             `db:"institucion" json:"institucion,omitempty"`
	FechaEmision  *time.Time         `db:"fecha_emision" json:"fecha_emision,omitempty"`
	MatriculaProf string             `db:"matricula_prof" json:"matricula_prof,omitempty"`
	IDArchivo     *string            `db:"id_archivo" json:"id_archivo,omitempty"`
	Estado        EstadoVerificacion `db:"estado_verificacion" json:"estado_verificacion"`
	Observacion   string             `db:"observacion" json:"observacion,omitempty"`
	CreadoEn      time.Time          `db:"creado_en" json:"creado_en"`
	UpdatedAt     time.Time          `db:"updated_at" json:"updated_at"`
}

// TituloFilter restricts titulo listings.
type TituloFilter struct {
	PersonaID string
	Estado    string
}
