package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/selimc/akademi/internal/app/models"
	appRepos "github.com/selimc/akademi/internal/app/repositories"
	"github.com/selimc/akademi/internal/config"
	"github.com/selimc/akademi/internal/pkg/auth"
)

// CreateDefaultData creates the default admin account if it does not exist.
// Without it a fresh deployment has no way to log in and create anything.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default admin account...")

	exists, err := userRepo.EmailExists(ctx, cfg.Admin.Email)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin account exists")
		return err
	}
	if exists {
		lgr.Info().Msg("Admin account already exists, skipping creation")
		return nil
	}

	if cfg.Admin.Password == "" {
		lgr.Warn().Msg("No admin password configured, skipping admin account creation")
		return errors.New("admin password not configured")
	}

	hashedPassword, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	admin := &appModels.User{
		Email:    cfg.Admin.Email,
		Password: hashedPassword,
	}
	adminID, err := userRepo.CreateUser(ctx, admin)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating admin account")
		return err
	}

	profile := &appModels.Profile{
		ID:    adminID,
		Name:  cfg.Admin.Name,
		Email: cfg.Admin.Email,
		Role:  appModels.RoleAdmin,
	}
	if err := userRepo.CreateProfile(ctx, profile); err != nil {
		lgr.Error().Err(err).Int64("adminID", adminID).Msg("Error creating admin profile")
		// Drop the identity again so the next start can retry cleanly
		if delErr := userRepo.DeleteUser(ctx, adminID); delErr != nil {
			lgr.Error().Err(delErr).Int64("adminID", adminID).Msg("Error cleaning up admin identity")
		}
		return err
	}

	lgr.Info().Int64("adminID", adminID).Msg("Default admin account created successfully")
	return nil
}
