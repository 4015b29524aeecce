package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/vendor-vault/config"
	"github.com/oksasatya/vendor-vault/internal/application"
	pginfra "github.com/oksasatya/vendor-vault/internal/infrastructure/postgres"
	"github.com/oksasatya/vendor-vault/pkg/apperror"
	"github.com/oksasatya/vendor-vault/pkg/helpers"
	"github.com/oksasatya/vendor-vault/pkg/validation"
)

// seed creates the first admin account. Running it twice is harmless.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	validation.Init()

	if cfg.SeedAdminPassword == "" {
		log.Fatal("SEED_ADMIN_PASSWORD is required")
	}

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	accounts := application.NewAccountService(pginfra.NewAccountRepository(pool), nil, nil, logger, cfg.BcryptCost)
	a, err := accounts.CreateAccount(ctx, application.NewAccountInput{
		Email:    cfg.SeedAdminEmail,
		Password: cfg.SeedAdminPassword,
		Roles:    []string{"admin"},
		Name:     "Administrator",
	})
	switch {
	case apperror.Is(err, apperror.Conflict):
		logger.WithField("email", cfg.SeedAdminEmail).Info("admin already seeded")
	case err != nil:
		log.Fatalf("failed to seed admin: %v", err)
	default:
		logger.WithFields(logrus.Fields{"id": a.ID, "email": a.Email}).Info("seeded admin account")
	}
}
