package models

import "time"

// TipoDocumento enumerates the personnel document categories.
type TipoDocumento string

const (
	DocDNI                  TipoDocumento = "DNI"
	DocCUIL                 TipoDocumento = "CUIL"
	DocConstanciaDomicilio  TipoDocumento = "CONSTANCIA_DOMICILIO"
	DocTituloHabilitante    TipoDocumento = "TITULO_HABILITANTE"
	DocCV                   TipoDocumento = "CV"
	DocCertificadoServicios TipoDocumento = "CERTIFICADO_SERVICIOS"
)

// TiposDocumentoRequeridos lists the document types a complete legajo must carry.
var TiposDocumentoRequeridos = []TipoDocumento{
	DocDNI,
	DocCUIL,
	DocConstanciaDomicilio,
	DocTituloHabilitante,
	DocCV,
}

// Valid reports whether the code is a known document type.
func (t TipoDocumento) Valid() bool {
	switch t {
	case DocDNI, DocCUIL, DocConstanciaDomicilio, DocTituloHabilitante, DocCV, DocCertificadoServicios:
		return true
	}
	return false
}

// PersonaDocumento is a personnel document belonging to one Persona.
type PersonaDocumento struct {
	ID          string             `db:"id" json:"id"`
	PersonaID   string             `db:"persona_id" json:"persona_id"`
	TipoDoc     TipoDocumento      `db:"tipo_doc" json:"tipo_doc"`
	IDArchivo   *string            `db:"id_archivo" json:"id_archivo,omitempty"`
	Estado      EstadoVerificacion `db:"estado_verificacion" json:"estado_verificacion"`
	Vigente     bool               `db:"vigente" json:"vigente"`
	Observacion string             `db:"observacion" json:"observacion,omitempty"`
	CreadoEn    time.Time          `db:"creado_en" json:"creado_en"`
	UpdatedAt   time.Time          `db:"updated_at" json:"updated_at"`
}

// DocumentoFilter restricts documento listings.
type DocumentoFilter struct {
	PersonaID string
	TipoDoc   string
	Estado    string
	Vigente   *bool
}
