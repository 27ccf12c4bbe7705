package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleRRHH     UserRole = "RRHH"
	RoleEmpleado UserRole = "EMPLEADO"
)

// CanDeleteDirect reports whether the role may remove sub-entity records
// without raising a deletion request.
func (r UserRole) CanDeleteDirect() bool {
	return r == RoleAdmin || r == RoleRRHH
}

// CanReviewVerification reports whether the role may change verification states.
func (r UserRole) CanReviewVerification() bool {
	return r == RoleAdmin || r == RoleRRHH
}

// User represents an application user stored in the usuarios table.
// Users holding the EMPLEADO role are linked to their Persona record.
type User struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"full_name"`
	Role         UserRole   `db:"role" json:"role"`
	PersonaID    *string    `db:"persona_id" json:"persona_id,omitempty"`
	Active       bool       `db:"active" json:"active"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
