package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rrhh-digital/legajo-api/internal/models"
)

// PersonaRepository manages persistence for persona records.
type PersonaRepository struct {
	db *sqlx.DB
}

// NewPersonaRepository constructs a PersonaRepository.
func NewPersonaRepository(db *sqlx.DB) *PersonaRepository {
	return &PersonaRepository{db: db}
}

// List returns personas matching the provided filters.
func (r *PersonaRepository) List(ctx context.Context, filter models.PersonaFilter) ([]models.Persona, int, error) {
	base := "FROM personas p"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.Activo != nil {
		conditions = append(conditions, fmt.Sprintf("p.activo = $%d", len(args)+1))
		args = append(args, *filter.Activo)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(p.nombre) LIKE $%d OR LOWER(p.apellido) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	sortBy := filter.SortBy
	allowedSorts := map[string]string{
		"apellido":   "p.apellido",
		"nombre":     "p.nombre",
		"created_at": "p.created_at",
	}
	if sortBy == "" {
		sortBy = "created_at"
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "p.created_at"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT p.id, p.nombre, p.apellido, p.fecha_nacimiento, p.sexo, p.telefono, p.activo, p.created_at, p.updated_at
        %s ORDER BY %s %s LIMIT %d OFFSET %d`, base, column, order, size, offset)

	var personas []models.Persona
	if err := r.db.SelectContext(ctx, &personas, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list personas: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(p.id) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count personas: %w", err)
	}
	return personas, total, nil
}

// FindByID fetches a persona by ID.
func (r *PersonaRepository) FindByID(ctx context.Context, id string) (*models.Persona, error) {
	const query = `SELECT id, nombre, apellido, fecha_nacimiento, sexo, telefono, activo, created_at, updated_at
        FROM personas WHERE id = $1`
	var persona models.Persona
	if err := r.db.GetContext(ctx, &persona, query, id); err != nil {
		return nil, err
	}
	return &persona, nil
}

// Create inserts a new persona record.
func (r *PersonaRepository) Create(ctx context.Context, persona *models.Persona) error {
	if persona.ID == "" {
		persona.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if persona.CreatedAt.IsZero() {
		persona.CreatedAt = now
	}
	persona.UpdatedAt = now
	const query = `INSERT INTO personas (id, nombre, apellido, fecha_nacimiento, sexo, telefono, activo, created_at, updated_at)
        VALUES (:id, :nombre, :apellido, :fecha_nacimiento, :sexo, :telefono, :activo, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, persona); err != nil {
		return fmt.Errorf("create persona: %w", err)
	}
	return nil
}

// Update modifies an existing persona.
func (r *PersonaRepository) Update(ctx context.Context, persona *models.Persona) error {
	persona.UpdatedAt = time.Now().UTC()
	const query = `UPDATE personas SET nombre = :nombre, apellido = :apellido, fecha_nacimiento = :fecha_nacimiento,
        sexo = :sexo, telefono = :telefono, activo = :activo, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, persona); err != nil {
		return fmt.Errorf("update persona: %w", err)
	}
	return nil
}

// Deactivate marks a persona as inactive. Personas are never hard-deleted.
func (r *PersonaRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE personas SET activo = false, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate persona: %w", err)
	}
	return nil
}
