package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rrhh-digital/legajo-api/internal/models"
	appErrors "github.com/rrhh-digital/legajo-api/pkg/errors"
	"github.com/rrhh-digital/legajo-api/pkg/export"
)

type legajoViewReader interface {
	GetEstado(ctx context.Context, personaID string) (*models.LegajoEstadoView, error)
}

type exportDomicilioReader interface {
	ListByPersona(ctx context.Context, personaID string) ([]models.DomicilioDetail, error)
}

// ExportFormat selects the rendered representation of the ficha.
type ExportFormat string

const (
	FormatPDF ExportFormat = "pdf"
	FormatCSV ExportFormat = "csv"
)

// FichaExport is a rendered legajo summary document.
type FichaExport struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportService renders the "ficha de legajo" dossier summary.
type ExportService struct {
	personas   legajoPersonaReader
	legajos    legajoViewReader
	documentos legajoDocumentoReader
	domicilios exportDomicilioReader
	titulos    legajoTituloReader
	pdf        *export.PDFExporter
	csv        *export.CSVExporter
	logger     *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(personas legajoPersonaReader, legajos legajoViewReader, documentos legajoDocumentoReader, domicilios exportDomicilioReader, titulos legajoTituloReader, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		personas:   personas,
		legajos:    legajos,
		documentos: documentos,
		domicilios: domicilios,
		titulos:    titulos,
		pdf:        export.NewPDFExporter(),
		csv:        export.NewCSVExporter(),
		logger:     logger,
	}
}

// Ficha renders the legajo summary for a persona in the requested format.
func (s *ExportService) Ficha(ctx context.Context, personaID string, format ExportFormat) (*FichaExport, error) {
	persona, err := s.personas.FindByID(ctx, personaID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "persona not found")
	}
	estado, err := s.legajos.GetEstado(ctx, personaID)
	if err != nil {
		return nil, err
	}
	documentos, err := s.documentos.ListByPersona(ctx, models.DocumentoFilter{PersonaID: personaID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load documentos")
	}
	domicilios, err := s.domicilios.ListByPersona(ctx, personaID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load domicilios")
	}
	titulos, err := s.titulos.List(ctx, models.TituloFilter{PersonaID: personaID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load titulos")
	}

	switch format {
	case FormatCSV:
		return s.renderCSV(persona, estado, documentos, titulos)
	case FormatPDF, "":
		return s.renderPDF(persona, estado, documentos, domicilios, titulos)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}

func (s *ExportService) renderPDF(persona *models.Persona, estado *models.LegajoEstadoView, documentos []models.PersonaDocumento, domicilios []models.DomicilioDetail, titulos []models.Titulo) (*FichaExport, error) {
	sections := []export.Section{
		{
			Title: "Datos personales",
			Data: export.Dataset{
				Headers: []string{"Campo", "Valor"},
				Rows: []map[string]string{
					{"Campo": "Nombre", "Valor": persona.Nombre + " " + persona.Apellido},
					{"Campo": "Fecha de nacimiento", "Valor": persona.FechaNacimiento.Format("2006-01-02")},
					{"Campo": "Sexo", "Valor": persona.Sexo},
					{"Campo": "Telefono", "Valor": persona.Telefono},
					{"Campo": "Estado del legajo", "Valor": fmt.Sprintf("%s (%d%%)", estado.Nombre, estado.Completitud)},
				},
			},
		},
		{
			Title: "Documentos",
			Data: export.Dataset{
				Headers: []string{"Tipo", "Estado", "Vigente", "Observacion"},
				Rows:    documentoRowsFor(documentos),
			},
		},
		{
			Title: "Domicilios",
			Data: export.Dataset{
				Headers: []string{"Calle", "Altura", "Barrio", "Localidad", "Departamento"},
				Rows:    domicilioRowsFor(domicilios),
			},
		},
		{
			Title: "Titulos",
			Data: export.Dataset{
				Headers: []string{"Tipo", "Titulo", "Institucion", "Estado"},
				Rows:    tituloRowsFor(titulos),
			},
		},
	}

	content, err := s.pdf.RenderSections(fmt.Sprintf("Ficha de legajo - %s %s", persona.Apellido, persona.Nombre), sections)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return &FichaExport{
		Filename:    fmt.Sprintf("legajo_%s.pdf", persona.ID),
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}

func (s *ExportService) renderCSV(persona *models.Persona, estado *models.LegajoEstadoView, documentos []models.PersonaDocumento, titulos []models.Titulo) (*FichaExport, error) {
	rows := []map[string]string{
		{"Seccion": "persona", "Item": persona.Nombre + " " + persona.Apellido, "Estado": string(estado.Codigo), "Detalle": fmt.Sprintf("%d%%", estado.Completitud)},
	}
	for _, d := range documentos {
		rows = append(rows, map[string]string{"Seccion": "documento", "Item": string(d.TipoDoc), "Estado": string(d.Estado), "Detalle": d.Observacion})
	}
	for _, t := range titulos {
		rows = append(rows, map[string]string{"Seccion": "titulo", "Item": t.NombreTitulo, "Estado": string(t.Estado), "Detalle": t.Institucion})
	}

	content, err := s.csv.Render(export.Dataset{
		Headers: []string{"Seccion", "Item", "Estado", "Detalle"},
		Rows:    rows,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return &FichaExport{
		Filename:    fmt.Sprintf("legajo_%s.csv", persona.ID),
		ContentType: "text/csv",
		Content:     content,
	}, nil
}

func documentoRowsFor(documentos []models.PersonaDocumento) []map[string]string {
	rows := make([]map[string]string, 0, len(documentos))
	for _, d := range documentos {
		vigente := "no"
		if d.Vigente {
			vigente = "si"
		}
		rows = append(rows, map[string]string{
			"Tipo":        string(d.TipoDoc),
			"Estado":      string(d.Estado),
			"Vigente":     vigente,
			"Observacion": d.Observacion,
		})
	}
	return rows
}

func domicilioRowsFor(domicilios []models.DomicilioDetail) []map[string]string {
	rows := make([]map[string]string, 0, len(domicilios))
	for _, d := range domicilios {
		rows = append(rows, map[string]string{
			"Calle":        d.Calle,
			"Altura":       fmt.Sprintf("%d", d.Altura),
			"Barrio":       d.BarrioNombre,
			"Localidad":    d.LocalidadNombre,
			"Departamento": d.DepartamentoNombre,
		})
	}
	return rows
}

func tituloRowsFor(titulos []models.Titulo) []map[string]string {
	rows := make([]map[string]string, 0, len(titulos))
	for _, t := range titulos {
		rows = append(rows, map[string]string{
			"Tipo":        string(t.IDTipoTitulo),
			"Titulo":      t.NombreTitulo,
			"Institucion": t.Institucion,
			"Estado":      string(t.Estado),
		})
	}
	return rows
}
