package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rrhh-digital/legajo-api/internal/dto"
	"github.com/rrhh-digital/legajo-api/internal/models"
	"github.com/rrhh-digital/legajo-api/internal/providers/llm"
	appErrors "github.com/rrhh-digital/legajo-api/pkg/errors"
)

type chatRepository interface {
	Create(ctx context.Context, consulta *models.ChatConsulta) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.ChatConsulta, error)
}

// ChatService answers HR questions through the configured LLM provider,
// optionally grounded in one persona's legajo.
type ChatService struct {
	repo       chatRepository
	provider   llm.Provider
	personas   legajoPersonaReader
	legajos    legajoViewReader
	documentos legajoDocumentoReader
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewChatService constructs the chat service. A nil provider disables the
// feature; Consultar then fails with a provider error.
func NewChatService(repo chatRepository, provider llm.Provider, personas legajoPersonaReader, legajos legajoViewReader, documentos legajoDocumentoReader, validate *validator.Validate, logger *zap.Logger) *ChatService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{
		repo:       repo,
		provider:   provider,
		personas:   personas,
		legajos:    legajos,
		documentos: documentos,
		validator:  validate,
		logger:     logger,
	}
}

// Enabled reports whether a provider is configured.
func (s *ChatService) Enabled() bool {
	return s.provider != nil
}

// Consultar answers one question. When persona_id is present the prompt is
// grounded with a compact legajo summary. The full exchange is persisted.
func (s *ChatService) Consultar(ctx context.Context, req dto.ConsultaRequest, actor *models.JWTClaims) (*dto.ConsultaResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid consulta payload")
	}
	if s.provider == nil {
		return nil, appErrors.Clone(appErrors.ErrProveedorChat, "chat is not configured")
	}
	if actor == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "")
	}

	prompt, err := s.buildPrompt(ctx, req)
	if err != nil {
		return nil, err
	}

	respuesta, err := s.collectAnswer(ctx, prompt)
	if err != nil {
		s.logger.Error("chat provider failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrProveedorChat.Code, appErrors.ErrProveedorChat.Status, "chat provider unavailable")
	}

	consulta := &models.ChatConsulta{
		UserID:    actor.UserID,
		PersonaID: req.PersonaID,
		Pregunta:  req.Pregunta,
		Respuesta: respuesta,
	}
	if err := s.repo.Create(ctx, consulta); err != nil {
		s.logger.Warn("failed to persist chat consulta", zap.Error(err))
	}

	return &dto.ConsultaResponse{
		ID:        consulta.ID,
		Pregunta:  consulta.Pregunta,
		Respuesta: consulta.Respuesta,
	}, nil
}

// Historial returns the actor's recent exchanges.
func (s *ChatService) Historial(ctx context.Context, actor *models.JWTClaims, limit int) ([]models.ChatConsulta, error) {
	if actor == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "")
	}
	consultas, err := s.repo.ListByUser(ctx, actor.UserID, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list consultas")
	}
	return consultas, nil
}

func (s *ChatService) buildPrompt(ctx context.Context, req dto.ConsultaRequest) (string, error) {
	var b strings.Builder
	b.WriteString("Sos un asistente de RRHH. Respondé en español, de forma breve y precisa, ")
	b.WriteString("usando solo la información provista sobre el legajo del empleado.\n\n")

	if req.PersonaID != nil && *req.PersonaID != "" {
		persona, err := s.personas.FindByID(ctx, *req.PersonaID)
		if err != nil {
			return "", appErrors.Clone(appErrors.ErrNotFound, "persona not found")
		}
		estado, err := s.legajos.GetEstado(ctx, persona.ID)
		if err != nil {
			return "", err
		}
		documentos, err := s.documentos.ListByPersona(ctx, models.DocumentoFilter{PersonaID: persona.ID})
		if err != nil {
			return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load documentos")
		}

		fmt.Fprintf(&b, "Empleado: %s %s\n", persona.Nombre, persona.Apellido)
		fmt.Fprintf(&b, "Estado del legajo: %s (completitud %d%%)\n", estado.Nombre, estado.Completitud)
		if len(documentos) > 0 {
			b.WriteString("Documentos:\n")
			for _, d := range documentos {
				fmt.Fprintf(&b, "- %s: %s", d.TipoDoc, d.Estado)
				if d.Observacion != "" {
					fmt.Fprintf(&b, " (%s)", d.Observacion)
				}
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Pregunta: %s\n", req.Pregunta)
	return b.String(), nil
}

func (s *ChatService) collectAnswer(ctx context.Context, prompt string) (string, error) {
	chunks, errs := s.provider.StreamAnswer(ctx, prompt)

	var b strings.Builder
	for chunk := range chunks {
		b.WriteString(chunk)
	}
	if err := <-errs; err != nil {
		return "", err
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("empty answer from provider")
	}
	return b.String(), nil
}
