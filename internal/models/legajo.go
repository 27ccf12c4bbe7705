package models

import (
	"math"
	"time"
)

// LegajoCodigo is the aggregate dossier status for a Persona.
type LegajoCodigo string

const (
	LegajoIncompleto LegajoCodigo = "INCOMPLETO"
	LegajoPendiente  LegajoCodigo = "PENDIENTE"
	LegajoRevision   LegajoCodigo = "REVISION"
	LegajoValidado   LegajoCodigo = "VALIDADO"
	LegajoBloqueado  LegajoCodigo = "BLOQUEADO"
)

var legajoNombres = map[LegajoCodigo]string{
	LegajoIncompleto: "Incompleto",
	LegajoPendiente:  "Pendiente de revisión",
	LegajoRevision:   "En revisión",
	LegajoValidado:   "Validado",
	LegajoBloqueado:  "Bloqueado",
}

// Valid reports whether the code is a known legajo status.
func (c LegajoCodigo) Valid() bool {
	_, ok := legajoNombres[c]
	return ok
}

// Nombre returns the display name for the code.
func (c LegajoCodigo) Nombre() string {
	return legajoNombres[c]
}

// LegajoChecklist carries the per-area completeness flags. Nil flags are
// "not yet computed" and are excluded from the completeness ratio rather
// than treated as false.
type LegajoChecklist struct {
	OkPersona   *bool `json:"okPersona,omitempty"`
	OkIdent     *bool `json:"okIdent,omitempty"`
	OkDocs      *bool `json:"okDocs,omitempty"`
	OkDomicilio *bool `json:"okDomicilio,omitempty"`
	OkTitulos   *bool `json:"okTitulos,omitempty"`
}

// Completitud returns the rounded completeness percentage over the defined flags.
func (c LegajoChecklist) Completitud() int {
	flags := []*bool{c.OkPersona, c.OkIdent, c.OkDocs, c.OkDomicilio, c.OkTitulos}
	defined := 0
	trueCount := 0
	for _, f := range flags {
		if f == nil {
			continue
		}
		defined++
		if *f {
			trueCount++
		}
	}
	if defined == 0 {
		return 0
	}
	return int(math.Round(100 * float64(trueCount) / float64(defined)))
}

// LegajoEstado is the persisted aggregate state row for a Persona.
type LegajoEstado struct {
	PersonaID     string       `db:"persona_id" json:"persona_id"`
	Codigo        LegajoCodigo `db:"codigo" json:"codigo"`
	OkPersona     *bool        `db:"ok_persona" json:"-"`
	OkIdent       *bool        `db:"ok_ident" json:"-"`
	OkDocs        *bool        `db:"ok_docs" json:"-"`
	OkDomicilio   *bool        `db:"ok_domicilio" json:"-"`
	OkTitulos     *bool        `db:"ok_titulos" json:"-"`
	Observacion   string       `db:"observacion" json:"observacion,omitempty"`
	ActualizadoEn time.Time    `db:"actualizado_en" json:"actualizado_en"`
}

// Checklist assembles the flag view from the persisted row.
func (e LegajoEstado) Checklist() LegajoChecklist {
	return LegajoChecklist{
		OkPersona:   e.OkPersona,
		OkIdent:     e.OkIdent,
		OkDocs:      e.OkDocs,
		OkDomicilio: e.OkDomicilio,
		OkTitulos:   e.OkTitulos,
	}
}

// LegajoEstadoView is the API projection of the aggregate state.
type LegajoEstadoView struct {
	Codigo      LegajoCodigo    `json:"codigo"`
	Nombre      string          `json:"nombre"`
	Checklist   LegajoChecklist `json:"checklist"`
	Completitud int             `json:"completitud"`
}
