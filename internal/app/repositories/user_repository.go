package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selimc/akademi/internal/app/models"
	"github.com/selimc/akademi/internal/pkg/apperrors"
	"github.com/selimc/akademi/internal/pkg/dberrors"
	"github.com/selimc/akademi/internal/pkg/logger"
)

// UserRepository handles identity and profile database operations.
// The identity row (users) carries credentials; the profile row (profiles)
// carries the application-level record and shares the identity's id.
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateUser inserts a new identity record
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	sql, args, err := r.sb.Insert("users").
		Columns("email", "password").
		Values(user.Email, user.Password).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt); err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error executing create user query")
		return 0, apperrors.NewRemoteOperationError(err, "error creating user")
	}

	return user.ID, nil
}

// DeleteUser deletes an identity record. The profile and its enrollments are
// removed by the cascade constraints.
func (r *UserRepository) DeleteUser(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete user SQL")
		return fmt.Errorf("failed to build delete user query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", id).Msg("Error executing delete user query")
		return apperrors.NewRemoteOperationError(err, "error deleting user")
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// GetUserByEmail retrieves an identity record by email, including the
// password hash, for credential checks
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	sql, args, err := r.sb.Select("id", "email", "password", "created_at", "updated_at").
		From("users").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by email SQL")
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user := &models.User{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.Email, &user.Password, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning user row")
		return nil, apperrors.NewRemoteOperationError(err, "error getting user by email")
	}

	return user, nil
}

// EmailExists reports whether an identity record with the email exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Error checking email existence")
		return false, apperrors.NewRemoteOperationError(err, "error checking email existence")
	}
	return exists, nil
}

// CreateProfile inserts the application-level record for an identity
func (r *UserRepository) CreateProfile(ctx context.Context, profile *models.Profile) error {
	sql, args, err := r.sb.Insert("profiles").
		Columns("id", "name", "email", "role").
		Values(profile.ID, profile.Name, profile.Email, string(profile.Role)).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create profile SQL")
		return fmt.Errorf("failed to build create profile query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&profile.CreatedAt); err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Int64("profileID", profile.ID).Msg("Error executing create profile query")
		return apperrors.NewRemoteOperationError(err, "error creating profile")
	}

	return nil
}

// GetProfileByID retrieves a profile by ID
func (r *UserRepository) GetProfileByID(ctx context.Context, id int64) (*models.Profile, error) {
	sql, args, err := r.sb.Select("id", "name", "email", "role", "created_at").
		From("profiles").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get profile by ID SQL")
		return nil, fmt.Errorf("failed to build get profile query: %w", err)
	}

	return r.scanProfileRow(r.db.QueryRow(ctx, sql, args...), id)
}

// scanProfileRow scans a single profile row, normalizing the stored role
func (r *UserRepository) scanProfileRow(row pgx.Row, id int64) (*models.Profile, error) {
	profile := &models.Profile{}
	var roleStr string
	err := row.Scan(&profile.ID, &profile.Name, &profile.Email, &roleStr, &profile.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		logger.Error().Err(err).Int64("profileID", id).Msg("Error scanning profile row")
		return nil, apperrors.NewRemoteOperationError(err, "error getting profile")
	}

	role, err := models.ParseRole(roleStr)
	if err != nil {
		return nil, apperrors.ErrUnknownRole
	}
	profile.Role = role

	return profile, nil
}

// RoleOf resolves the role of a profile. Missing profile or unknown stored
// role both surface as errors so callers fail closed.
func (r *UserRepository) RoleOf(ctx context.Context, id int64) (models.Role, error) {
	var roleStr string
	err := r.db.QueryRow(ctx, `SELECT role FROM profiles WHERE id = $1`, id).Scan(&roleStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrProfileNotFound
		}
		logger.Error().Err(err).Int64("profileID", id).Msg("Error resolving profile role")
		return "", apperrors.NewRemoteOperationError(err, "error resolving role")
	}

	role, err := models.ParseRole(roleStr)
	if err != nil {
		return "", apperrors.ErrUnknownRole
	}

	return role, nil
}

// ListStudents retrieves all student profiles in creation order
func (r *UserRepository) ListStudents(ctx context.Context) ([]*models.Profile, error) {
	sql, args, err := r.sb.Select("id", "name", "email", "role", "created_at").
		From("profiles").
		Where(squirrel.Eq{"role": string(models.RoleStudent)}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building list students SQL")
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, apperrors.NewRemoteOperationError(err, "error querying students")
	}
	defer rows.Close()

	profiles := []*models.Profile{}
	for rows.Next() {
		profile := &models.Profile{}
		var roleStr string
		if err := rows.Scan(&profile.ID, &profile.Name, &profile.Email, &roleStr, &profile.CreatedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning profile row during list")
			return nil, fmt.Errorf("error scanning profile row: %w", err)
		}
		role, err := models.ParseRole(roleStr)
		if err != nil {
			return nil, apperrors.ErrUnknownRole
		}
		profile.Role = role
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating profile rows")
		return nil, fmt.Errorf("error iterating profile rows: %w", err)
	}

	return profiles, nil
}

// UpdateProfile updates a profile's name and email, keeping the identity
// email in sync so the login address follows the profile. Role is never
// touched here.
func (r *UserRepository) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	sql, args, err := r.sb.Update("profiles").
		SetMap(map[string]interface{}{
			"name":  profile.Name,
			"email": profile.Email,
		}).
		Where(squirrel.Eq{"id": profile.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update profile SQL")
		return fmt.Errorf("failed to build update profile query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Int64("profileID", profile.ID).Msg("Error executing update profile query")
		return apperrors.NewRemoteOperationError(err, "error updating profile")
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}

	_, err = r.db.Exec(ctx, `UPDATE users SET email = $1, updated_at = NOW() WHERE id = $2`, profile.Email, profile.ID)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Int64("userID", profile.ID).Msg("Error syncing identity email")
		return apperrors.NewRemoteOperationError(err, "error updating login email")
	}

	return nil
}
