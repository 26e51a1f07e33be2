package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selimc/akademi/internal/app/models"
	"github.com/selimc/akademi/internal/pkg/apperrors"
	"github.com/selimc/akademi/internal/pkg/dberrors"
	"github.com/selimc/akademi/internal/pkg/logger"
)

// EnrollmentRepository handles enrollment database operations
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create enrolls a profile in a course
func (r *EnrollmentRepository) Create(ctx context.Context, profileID, courseID int64) error {
	sql, args, err := r.sb.Insert("enrollments").
		Columns("profile_id", "course_id").
		Values(profileID, courseID).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create enrollment SQL")
		return fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrEnrollmentAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("profileID", profileID).Int64("courseID", courseID).Msg("Error executing create enrollment query")
		return apperrors.NewRemoteOperationError(err, "error creating enrollment")
	}

	return nil
}

// Delete removes an enrollment
func (r *EnrollmentRepository) Delete(ctx context.Context, profileID, courseID int64) error {
	sql, args, err := r.sb.Delete("enrollments").
		Where(squirrel.Eq{"profile_id": profileID, "course_id": courseID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete enrollment SQL")
		return fmt.Errorf("failed to build delete enrollment query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("profileID", profileID).Int64("courseID", courseID).Msg("Error executing delete enrollment query")
		return apperrors.NewRemoteOperationError(err, "error deleting enrollment")
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

// IsEnrolled reports whether the profile is enrolled in the course
func (r *EnrollmentRepository) IsEnrolled(ctx context.Context, profileID, courseID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM enrollments WHERE profile_id = $1 AND course_id = $2)`,
		profileID, courseID).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Int64("profileID", profileID).Int64("courseID", courseID).Msg("Error checking enrollment")
		return false, apperrors.NewRemoteOperationError(err, "error checking enrollment")
	}
	return exists, nil
}

// ListCoursesByProfile retrieves the courses a profile is enrolled in,
// in enrollment order
func (r *EnrollmentRepository) ListCoursesByProfile(ctx context.Context, profileID int64) ([]*models.Course, error) {
	sql, args, err := r.sb.Select("c.id", "c.title", "c.description", "c.created_at").
		From("enrollments e").
		Join("courses c ON c.id = e.course_id").
		Where(squirrel.Eq{"e.profile_id": profileID}).
		OrderBy("e.created_at ASC", "c.id ASC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building list enrolled courses SQL")
		return nil, fmt.Errorf("failed to build list enrolled courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("profileID", profileID).Msg("Error executing list enrolled courses query")
		return nil, apperrors.NewRemoteOperationError(err, "error querying enrolled courses")
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course := &models.Course{}
		if err := rows.Scan(&course.ID, &course.Title, &course.Description, &course.CreatedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning enrolled course row")
			return nil, fmt.Errorf("error scanning enrolled course row: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating enrolled course rows")
		return nil, fmt.Errorf("error iterating enrolled course rows: %w", err)
	}

	return courses, nil
}

// ListProfilesByCourse retrieves the student profiles enrolled in a course
func (r *EnrollmentRepository) ListProfilesByCourse(ctx context.Context, courseID int64) ([]*models.Profile, error) {
	sql, args, err := r.sb.Select("p.id", "p.name", "p.email", "p.role", "p.created_at").
		From("enrollments e").
		Join("profiles p ON p.id = e.profile_id").
		Where(squirrel.Eq{"e.course_id": courseID}).
		OrderBy("e.created_at ASC", "p.id ASC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building list enrolled profiles SQL")
		return nil, fmt.Errorf("failed to build list enrolled profiles query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error executing list enrolled profiles query")
		return nil, apperrors.NewRemoteOperationError(err, "error querying enrolled profiles")
	}
	defer rows.Close()

	profiles := []*models.Profile{}
	for rows.Next() {
		profile := &models.Profile{}
		var roleStr string
		if err := rows.Scan(&profile.ID, &profile.Name, &profile.Email, &roleStr, &profile.CreatedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning enrolled profile row")
			return nil, fmt.Errorf("error scanning enrolled profile row: %w", err)
		}
		role, err := models.ParseRole(roleStr)
		if err != nil {
			return nil, apperrors.ErrUnknownRole
		}
		profile.Role = role
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating enrolled profile rows")
		return nil, fmt.Errorf("error iterating enrolled profile rows: %w", err)
	}

	return profiles, nil
}
