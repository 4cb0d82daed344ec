package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/eventora/marketplace-api/config"
	"github.com/eventora/marketplace-api/internal/application"
	"github.com/eventora/marketplace-api/internal/domain/entity"
	"github.com/eventora/marketplace-api/pkg/helpers"
)

// seed creates the super admin account. Admin roles are never open for
// registration, so this is the only way one comes into existence.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.SeedAdminPassword == "" {
		log.Fatal("SEED_ADMIN_PASSWORD is required")
	}

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	hash, err := helpers.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	email := application.NormalizeEmail(cfg.SeedAdminEmail)

	var id string
	err = db.QueryRow(`
		INSERT INTO users (id, full_name, email, password_hash, role, service_categories, is_email_verified)
		VALUES ($1, $2, $3, $4, $5, '{}', TRUE)
		ON CONFLICT (email) DO UPDATE SET full_name = EXCLUDED.full_name, password_hash = EXCLUDED.password_hash
		RETURNING id
	`, helpers.NewID(), cfg.SeedAdminName, email, hash, entity.RoleSuperAdmin).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed super admin: %v", err)
	}
	fmt.Printf("seeded super admin: id=%s email=%s\n", id, email)
}
