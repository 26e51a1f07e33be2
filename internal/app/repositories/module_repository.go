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

// ModuleRepository handles module database operations
type ModuleRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewModuleRepository creates a new ModuleRepository
func NewModuleRepository(db *pgxpool.Pool) *ModuleRepository {
	return &ModuleRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// createModuleSQL assigns position inside the insert so concurrent creates
// cannot both read the same max and collide.
const createModuleSQL = `
INSERT INTO modules (course_id, title, position)
SELECT $1, $2, COALESCE(MAX(position), 0) + 1
FROM modules
WHERE course_id = $1
RETURNING id, position, created_at`

// Create inserts a new module; position is assigned by the database as
// max(position)+1 within the course.
func (r *ModuleRepository) Create(ctx context.Context, module *models.Module) error {
	err := r.db.QueryRow(ctx, createModuleSQL, module.CourseID, module.Title).
		Scan(&module.ID, &module.Position, &module.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", module.CourseID).Msg("Error executing create module query")
		return apperrors.NewRemoteOperationError(err, "error creating module")
	}

	return nil
}

// GetByID retrieves a module by ID
func (r *ModuleRepository) GetByID(ctx context.Context, id int64) (*models.Module, error) {
	sql, args, err := r.sb.Select("id", "course_id", "title", "position", "created_at").
		From("modules").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get module by ID SQL")
		return nil, fmt.Errorf("failed to build get module query: %w", err)
	}

	module := &models.Module{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&module.ID, &module.CourseID, &module.Title, &module.Position, &module.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrModuleNotFound
		}
		logger.Error().Err(err).Int64("moduleID", id).Msg("Error scanning module row")
		return nil, apperrors.NewRemoteOperationError(err, "error getting module by ID")
	}

	return module, nil
}

// ListByCourse retrieves a course's modules in position order
func (r *ModuleRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.Module, error) {
	sql, args, err := r.sb.Select("id", "course_id", "title", "position", "created_at").
		From("modules").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("position ASC", "id ASC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building list modules SQL")
		return nil, fmt.Errorf("failed to build list modules query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error executing list modules query")
		return nil, apperrors.NewRemoteOperationError(err, "error querying modules")
	}
	defer rows.Close()

	modules := []*models.Module{}
	for rows.Next() {
		module := &models.Module{}
		if err := rows.Scan(&module.ID, &module.CourseID, &module.Title, &module.Position, &module.CreatedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning module row during list")
			return nil, fmt.Errorf("error scanning module row: %w", err)
		}
		modules = append(modules, module)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating module rows")
		return nil, fmt.Errorf("error iterating module rows: %w", err)
	}

	return modules, nil
}

// Update updates a module's title and, when supplied, its position
func (r *ModuleRepository) Update(ctx context.Context, module *models.Module) error {
	setMap := map[string]interface{}{
		"title": module.Title,
	}
	if module.Position > 0 {
		setMap["position"] = module.Position
	}

	sql, args, err := r.sb.Update("modules").
		SetMap(setMap).
		Where(squirrel.Eq{"id": module.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update module SQL")
		return fmt.Errorf("failed to build update module query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("moduleID", module.ID).Msg("Error executing update module query")
		return apperrors.NewRemoteOperationError(err, "error updating module")
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrModuleNotFound
	}

	return nil
}

// Delete deletes a module by ID; its videos go with it via cascade
func (r *ModuleRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("modules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete module SQL")
		return fmt.Errorf("failed to build delete module query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("moduleID", id).Msg("Error executing delete module query")
		return apperrors.NewRemoteOperationError(err, "error deleting module")
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrModuleNotFound
	}

	return nil
}
