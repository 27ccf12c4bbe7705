package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rrhh-digital/legajo-api/internal/models"
)

// ChatRepository persists AI assistant exchanges for audit.
type ChatRepository struct {
	db *sqlx.DB
}

// NewChatRepository constructs a ChatRepository.
func NewChatRepository(db *sqlx.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// Create stores one question/answer pair.
func (r *ChatRepository) Create(ctx context.Context, consulta *models.ChatConsulta) error {
	if consulta.ID == "" {
		consulta.ID = uuid.NewString()
	}
	if consulta.CreatedAt.IsZero() {
		consulta.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO chat_consultas (id, user_id, persona_id, pregunta, respuesta, created_at)
        VALUES (:id, :user_id, :persona_id, :pregunta, :respuesta, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, consulta); err != nil {
		return fmt.Errorf("create chat consulta: %w", err)
	}
	return nil
}

// ListByUser returns the most recent exchanges for a user.
func (r *ChatRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.ChatConsulta, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	const query = `SELECT id, user_id, persona_id, pregunta, respuesta, created_at
        FROM chat_consultas WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
	var consultas []models.ChatConsulta
	if err := r.db.SelectContext(ctx, &consultas, query, userID, limit); err != nil {
		return nil, fmt.Errorf("list chat consultas: %w", err)
	}
	return consultas, nil
}
