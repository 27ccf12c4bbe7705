package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rrhh-digital/legajo-api/internal/models"
)

// DomicilioRepository manages addresses and the geography hierarchy.
type DomicilioRepository struct {
	db *sqlx.DB
}

// NewDomicilioRepository constructs a DomicilioRepository.
func NewDomicilioRepository(db *sqlx.DB) *DomicilioRepository {
	return &DomicilioRepository{db: db}
}

// ListDepartamentos returns the full departamento catalogue.
func (r *DomicilioRepository) ListDepartamentos(ctx context.Context) ([]models.DomDepartamento, error) {
	var departamentos []models.DomDepartamento
	if err := r.db.SelectContext(ctx, &departamentos, `SELECT id, nombre FROM dom_departamentos ORDER BY nombre ASC`); err != nil {
		return nil, fmt.Errorf("list departamentos: %w", err)
	}
	return departamentos, nil
}

// ListLocalidades returns localidades, optionally filtered by departamento.
func (r *DomicilioRepository) ListLocalidades(ctx context.Context, departamentoID string) ([]models.DomLocalidad, error) {
	query := `SELECT id, id_departamento, nombre FROM dom_localidades`
	args := []interface{}{}
	if departamentoID != "" {
		query += ` WHERE id_departamento = $1`
		args = append(args, departamentoID)
	}
	query += ` ORDER BY nombre ASC`

	var localidades []models.DomLocalidad
	if err := r.db.SelectContext(ctx, &localidades, query, args...); err != nil {
		return nil, fmt.Errorf("list localidades: %w", err)
	}
	return localidades, nil
}

// FindLocalidadByID fetches a localidad by ID.
func (r *DomicilioRepository) FindLocalidadByID(ctx context.Context, id string) (*models.DomLocalidad, error) {
	var localidad models.DomLocalidad
	if err := r.db.GetContext(ctx, &localidad, `SELECT id, id_departamento, nombre FROM dom_localidades WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &localidad, nil
}

// FindBarrioByID fetches a barrio by ID.
func (r *DomicilioRepository) FindBarrioByID(ctx context.Context, id string) (*models.DomBarrio, error) {
	const query = `SELECT id, id_localidad, nombre, manzana, casa, departamento, piso, created_at FROM dom_barrios WHERE id = $1`
	var barrio models.DomBarrio
	if err := r.db.GetContext(ctx, &barrio, query, id); err != nil {
		return nil, err
	}
	return &barrio, nil
}

// CreateBarrio inserts a new barrio under its localidad.
func (r *DomicilioRepository) CreateBarrio(ctx context.Context, barrio *models.DomBarrio) error {
	if barrio.ID == "" {
		barrio.ID = uuid.NewString()
	}
	if barrio.CreatedAt.IsZero() {
		barrio.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO dom_barrios (id, id_localidad, nombre, manzana, casa, departamento, piso, created_at)
        VALUES (:id, :id_localidad, :nombre, :manzana, :casa, :departamento, :piso, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, barrio); err != nil {
		return fmt.Errorf("create barrio: %w", err)
	}
	return nil
}

// ListByPersona returns a persona's addresses joined with the geography chain.
func (r *DomicilioRepository) ListByPersona(ctx context.Context, personaID string) ([]models.DomicilioDetail, error) {
	const query = `SELECT d.id, d.persona_id, d.id_dom_barrio, d.calle, d.altura, d.created_at,
        b.nombre AS barrio_nombre, l.nombre AS localidad_nombre, dep.nombre AS departamento_nombre,
        b.manzana, b.casa, b.departamento AS unidad_depto, b.piso
        FROM domicilios d
        JOIN dom_barrios b ON b.id = d.id_dom_barrio
        JOIN dom_localidades l ON l.id = b.id_localidad
        JOIN dom_departamentos dep ON dep.id = l.id_departamento
        WHERE d.persona_id = $1 ORDER BY d.created_at DESC`
	var domicilios []models.DomicilioDetail
	if err := r.db.SelectContext(ctx, &domicilios, query, personaID); err != nil {
		return nil, fmt.Errorf("list domicilios: %w", err)
	}
	return domicilios, nil
}

// FindByID fetches a domicilio by ID.
func (r *DomicilioRepository) FindByID(ctx context.Context, id string) (*models.Domicilio, error) {
	const query = `SELECT id, persona_id, id_dom_barrio, calle, altura, created_at FROM domicilios WHERE id = $1`
	var domicilio models.Domicilio
	if err := r.db.GetContext(ctx, &domicilio, query, id); err != nil {
		return nil, err
	}
	return &domicilio, nil
}

// CountByPersona returns how many addresses a persona has registered.
func (r *DomicilioRepository) CountByPersona(ctx context.Context, personaID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(id) FROM domicilios WHERE persona_id = $1`, personaID); err != nil {
		return 0, fmt.Errorf("count domicilios: %w", err)
	}
	return count, nil
}

// Create inserts a new domicilio record.
func (r *DomicilioRepository) Create(ctx context.Context, domicilio *models.Domicilio) error {
	if domicilio.ID == "" {
		domicilio.ID = uuid.NewString()
	}
	if domicilio.CreatedAt.IsZero() {
		domicilio.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO domicilios (id, persona_id, id_dom_barrio, calle, altura, created_at)
        VALUES (:id, :persona_id, :id_dom_barrio, :calle, :altura, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, domicilio); err != nil {
		return fmt.Errorf("create domicilio: %w", err)
	}
	return nil
}

// Delete removes a domicilio record.
func (r *DomicilioRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM domicilios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete domicilio: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
