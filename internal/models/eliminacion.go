package models

import "time"

// EliminacionTipo identifies the kind of record a deletion request targets.
type EliminacionTipo string

const (
	EliminacionDocumento EliminacionTipo = "documento"
	EliminacionDomicilio EliminacionTipo = "domicilio"
	EliminacionTitulo    EliminacionTipo = "titulo"
)

// Valid reports whether the kind is supported.
func (t EliminacionTipo) Valid() bool {
	switch t {
	case EliminacionDocumento, EliminacionDomicilio, EliminacionTitulo:
		return true
	}
	return false
}

// EliminacionEstado is the review status of a deletion request.
type EliminacionEstado string

const (
	EliminacionPendiente EliminacionEstado = "PENDIENTE"
	EliminacionAprobada  EliminacionEstado = "APROBADA"
	EliminacionRechazada EliminacionEstado = "RECHAZADA"
)

// EliminacionSolicitud is a deletion request raised by an actor lacking
// direct-delete permission, consumed by a reviewer workflow.
type EliminacionSolicitud struct {
	ID            string            `db:"id" json:"id"`
	Tipo          EliminacionTipo   `db:"tipo" json:"tipo"`
	ObjetivoID    string            `db:"objetivo_id" json:"objetivo_id"`
	PersonaID     string            `db:"persona_id" json:"persona_id"`
	Motivo        *string           `db:"motivo" json:"motivo,omitempty"`
	Estado        EliminacionEstado `db:"estado" json:"estado"`
	SolicitadoPor string            `db:"solicitado_por" json:"solicitado_por"`
	RevisadoPor   *string           `db:"revisado_por" json:"revisado_por,omitempty"`
	RevisadoEn    *time.Time        `db:"revisado_en" json:"revisado_en,omitempty"`
	Nota          *string           `db:"nota" json:"nota,omitempty"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
}

// EliminacionFilter restricts deletion-request listings.
type EliminacionFilter struct {
	Estado        string
	Tipo          string
	SolicitadoPor string
}
