// Command seed creates an application user directly in the database.
// It exists to bootstrap the first ADMIN account on a fresh deployment,
// before any authenticated endpoint is usable.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rrhh-digital/legajo-api/internal/models"
	"github.com/rrhh-digital/legajo-api/internal/repository"
	"github.com/rrhh-digital/legajo-api/pkg/config"
	"github.com/rrhh-digital/legajo-api/pkg/database"
)

func main() {
	var (
		email     string
		password  string
		fullName  string
		role      string
		personaID string
		timeout   time.Duration
	)

	flag.StringVar(&email, "email", "", "email of the account to create (required)")
	flag.StringVar(&password, "password", "", "initial password (required)")
	flag.StringVar(&fullName, "name", "Administrador", "full name")
	flag.StringVar(&role, "role", string(models.RoleAdmin), "role: ADMIN, RRHH or EMPLEADO")
	flag.StringVar(&personaID, "persona", "", "persona linked to the account, required for EMPLEADO")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "database timeout")
	flag.Parse()

	if email == "" || password == "" {
		log.Fatal("both -email and -password are required")
	}
	userRole := models.UserRole(role)
	switch userRole {
	case models.RoleAdmin, models.RoleRRHH, models.RoleEmpleado:
	default:
		log.Fatalf("unknown role %q", role)
	}
	if userRole == models.RoleEmpleado && personaID == "" {
		log.Fatal("-persona is required for EMPLEADO accounts")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	users := repository.NewUserRepository(db)
	if existing, err := users.FindByEmail(ctx, email); err == nil && existing != nil {
		log.Fatalf("a user with email %s already exists (id %s)", email, existing.ID)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         userRole,
		Active:       true,
	}
	if personaID != "" {
		user.PersonaID = &personaID
	}

	if err := users.Create(ctx, user); err != nil {
		log.Fatalf("failed to create user: %v", err)
	}
	log.Printf("created %s user %s (%s)", user.Role, user.Email, user.ID)
}
