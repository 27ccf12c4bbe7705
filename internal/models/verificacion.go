package models

// EstadoVerificacion is the review status of a document or title.
type EstadoVerificacion string

const (
	VerificacionPendiente EstadoVerificacion = "PENDIENTE"
	VerificacionAprobado  EstadoVerificacion = "APROBADO"
	VerificacionRechazado EstadoVerificacion = "RECHAZADO"
	VerificacionObservado EstadoVerificacion = "OBSERVADO"
)

// Numeric ids kept for wire compatibility with the legacy frontend,
// where PENDIENTE is the fixed initial id 1.
var estadoVerificacionIDs = map[EstadoVerificacion]int{
	VerificacionPendiente: 1,
	VerificacionAprobado:  2,
	VerificacionRechazado: 3,
	VerificacionObservado: 4,
}

// Valid reports whether the code is a known verification state.
func (e EstadoVerificacion) Valid() bool {
	_, ok := estadoVerificacionIDs[e]
	return ok
}

// ID returns the legacy numeric identifier (0 for unknown codes).
func (e EstadoVerificacion) ID() int {
	return estadoVerificacionIDs[e]
}

// RequiresObservacion reports whether a transition into this state demands
// a non-empty observacion on the owning record.
func (e EstadoVerificacion) RequiresObservacion() bool {
	return e == VerificacionRechazado || e == VerificacionObservado
}
