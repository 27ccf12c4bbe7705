package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rrhh-digital/legajo-api/internal/models"
)

// LegajoRepository persists the aggregate dossier state per persona.
type LegajoRepository struct {
	db *sqlx.DB
}

// NewLegajoRepository constructs a LegajoRepository.
func NewLegajoRepository(db *sqlx.DB) *LegajoRepository {
	return &LegajoRepository{db: db}
}

// FindByPersona fetches the persisted state row. sql.ErrNoRows when the
// persona has never been evaluated.
func (r *LegajoRepository) FindByPersona(ctx context.Context, personaID string) (*models.LegajoEstado, error) {
	const query = `SELECT persona_id, codigo, ok_persona, ok_ident, ok_docs, ok_domicilio, ok_titulos, observacion, actualizado_en
        FROM legajo_estados WHERE persona_id = $1`
	var estado models.LegajoEstado
	if err := r.db.GetContext(ctx, &estado, query, personaID); err != nil {
		return nil, err
	}
	return &estado, nil
}

// Upsert writes the state row, replacing any previous evaluation.
func (r *LegajoRepository) Upsert(ctx context.Context, estado *models.LegajoEstado) error {
	if estado.ActualizadoEn.IsZero() {
		estado.ActualizadoEn = time.Now().UTC()
	}
	const query = `INSERT INTO legajo_estados (persona_id, codigo, ok_persona, ok_ident, ok_docs, ok_domicilio, ok_titulos, observacion, actualizado_en)
        VALUES (:persona_id, :codigo, :ok_persona, :ok_ident, :ok_docs, :ok_domicilio, :ok_titulos, :observacion, :actualizado_en)
        ON CONFLICT (persona_id) DO UPDATE SET
            codigo = EXCLUDED.codigo,
            ok_persona = EXCLUDED.ok_persona,
            ok_ident = EXCLUDED.ok_ident,
            ok_docs = EXCLUDED.ok_docs,
            ok_domicilio = EXCLUDED.ok_domicilio,
            ok_titulos = EXCLUDED.ok_titulos,
            observacion = EXCLUDED.observacion,
            actualizado_en = EXCLUDED.actualizado_en`
	if _, err := r.db.NamedExecContext(ctx, query, estado); err != nil {
		return fmt.Errorf("upsert legajo estado: %w", err)
	}
	return nil
}

// UpdateCodigo overrides just the status code and note, keeping the checklist
// from the last recalculation.
func (r *LegajoRepository) UpdateCodigo(ctx context.Context, personaID string, codigo models.LegajoCodigo, observacion string) error {
	const query = `UPDATE legajo_estados SET codigo = $1, observacion = $2, actualizado_en = $3 WHERE persona_id = $4`
	res, err := r.db.ExecContext(ctx, query, codigo, observacion, time.Now().UTC(), personaID)
	if err != nil {
		return fmt.Errorf("update legajo codigo: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
