package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rrhh-digital/legajo-api/internal/models"
)

// EliminacionRepository manages deletion requests awaiting review.
type EliminacionRepository struct {
	db *sqlx.DB
}

// NewEliminacionRepository constructs an EliminacionRepository.
func NewEliminacionRepository(db *sqlx.DB) *EliminacionRepository {
	return &EliminacionRepository{db: db}
}

// Create inserts a new deletion request in PENDIENTE state.
func (r *EliminacionRepository) Create(ctx context.Context, solicitud *models.EliminacionSolicitud) error {
	if solicitud.ID == "" {
		solicitud.ID = uuid.NewString()
	}
	if solicitud.Estado == "" {
		solicitud.Estado = models.EliminacionPendiente
	}
	if solicitud.CreatedAt.IsZero() {
		solicitud.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO eliminacion_solicitudes (id, tipo, objetivo_id, persona_id, motivo, estado, solicitado_por, created_at)
        VALUES (:id, :tipo, :objetivo_id, :persona_id, :motivo, :estado, :solicitado_por, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, solicitud); err != nil {
		return fmt.Errorf("create eliminacion solicitud: %w", err)
	}
	return nil
}

// FindByID fetches a deletion request by ID.
func (r *EliminacionRepository) FindByID(ctx context.Context, id string) (*models.EliminacionSolicitud, error) {
	const query = `SELECT id, tipo, objetivo_id, persona_id, motivo, estado, solicitado_por, revisado_por, revisado_en, nota, created_at
        FROM eliminacion_solicitudes WHERE id = $1`
	var solicitud models.EliminacionSolicitud
	if err := r.db.GetContext(ctx, &solicitud, query, id); err != nil {
		return nil, err
	}
	return &solicitud, nil
}

// FindPendingByObjetivo looks up an open request for the same target, used to
// avoid duplicate requests over one record.
func (r *EliminacionRepository) FindPendingByObjetivo(ctx context.Context, tipo models.EliminacionTipo, objetivoID string) (*models.EliminacionSolicitud, error) {
	const query = `SELECT id, tipo, objetivo_id, persona_id, motivo, estado, solicitado_por, revisado_por, revisado_en, nota, created_at
        FROM eliminacion_solicitudes WHERE tipo = $1 AND objetivo_id = $2 AND estado = $3`
	var solicitud models.EliminacionSolicitud
	if err := r.db.GetContext(ctx, &solicitud, query, tipo, objetivoID, models.EliminacionPendiente); err != nil {
		return nil, err
	}
	return &solicitud, nil
}

// List returns deletion requests matching the filter, newest first.
func (r *EliminacionRepository) List(ctx context.Context, filter models.EliminacionFilter) ([]models.EliminacionSolicitud, error) {
	base := "FROM eliminacion_solicitudes e"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.Estado != "" {
		conditions = append(conditions, fmt.Sprintf("e.estado = $%d", len(args)+1))
		args = append(args, filter.Estado)
	}
	if filter.Tipo != "" {
		conditions = append(conditions, fmt.Sprintf("e.tipo = $%d", len(args)+1))
		args = append(args, filter.Tipo)
	}
	if filter.SolicitadoPor != "" {
		conditions = append(conditions, fmt.Sprintf("e.solicitado_por = $%d", len(args)+1))
		args = append(args, filter.SolicitadoPor)
	}

	query := fmt.Sprintf(`SELECT e.id, e.tipo, e.objetivo_id, e.persona_id, e.motivo, e.estado, e.solicitado_por, e.revisado_por, e.revisado_en, e.nota, e.created_at
        %s WHERE %s ORDER BY e.created_at DESC`, base, strings.Join(conditions, " AND "))

	var solicitudes []models.EliminacionSolicitud
	if err := r.db.SelectContext(ctx, &solicitudes, query, args...); err != nil {
		return nil, fmt.Errorf("list eliminacion solicitudes: %w", err)
	}
	return solicitudes, nil
}

// Review settles a pending request. Only rows still in PENDIENTE are updated
// so a second review of the same request reports sql.ErrNoRows.
func (r *EliminacionRepository) Review(ctx context.Context, id string, estado models.EliminacionEstado, revisadoPor string, nota *string) error {
	const query = `UPDATE eliminacion_solicitudes
        SET estado = $1, revisado_por = $2, revisado_en = $3, nota = $4
        WHERE id = $5 AND estado = $6`
	result, err := r.db.ExecContext(ctx, query, estado, revisadoPor, time.Now().UTC(), nota, id, models.EliminacionPendiente)
	if err != nil {
		return fmt.Errorf("review eliminacion solicitud: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
