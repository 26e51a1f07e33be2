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

// VideoRepository handles video database operations
type VideoRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewVideoRepository creates a new VideoRepository
func NewVideoRepository(db *pgxpool.Pool) *VideoRepository {
	return &VideoRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const createVideoSQL = `
INSERT INTO videos (module_id, title, bunny_video_id, position)
SELECT $1, $2, $3, COALESCE(MAX(position), 0) + 1
FROM videos
WHERE module_id = $4
RETURNING id, position, created_at`

// Create inserts a new video; position is assigned by the database as
// max(position)+1 within the module.
func (r *VideoRepository) Create(ctx context.Context, video *models.Video) error {
	err := r.db.QueryRow(ctx, createVideoSQL, video.ModuleID, video.Title, video.BunnyVideoID, video.ModuleID).
		Scan(&video.ID, &video.Position, &video.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrModuleNotFound
		}
		logger.Error().Err(err).Int64("moduleID", video.ModuleID).Msg("Error executing create video query")
		return apperrors.NewRemoteOperationError(err, "error creating video")
	}

	return nil
}

// GetByID retrieves a video by ID
func (r *VideoRepository) GetByID(ctx context.Context, id int64) (*models.Video, error) {
	sql, args, err := r.sb.Select("id", "module_id", "title", "bunny_video_id", "position", "created_at").
		From("videos").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get video by ID SQL")
		return nil, fmt.Errorf("failed to build get video query: %w", err)
	}

	video := &models.Video{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&video.ID, &video.ModuleID, &video.Title, &video.BunnyVideoID, &video.Position, &video.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrVideoNotFound
		}
		logger.Error().Err(err).Int64("videoID", id).Msg("Error scanning video row")
		return nil, apperrors.NewRemoteOperationError(err, "error getting video by ID")
	}

	return video, nil
}

// ListByModule retrieves a module's videos in position order
func (r *VideoRepository) ListByModule(ctx context.Context, moduleID int64) ([]*models.Video, error) {
	sql, args, err := r.sb.Select("id", "module_id", "title", "bunny_video_id", "position", "created_at").
		From("videos").
		Where(squirrel.Eq{"module_id": moduleID}).
		OrderBy("position ASC", "id ASC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building list videos SQL")
		return nil, fmt.Errorf("failed to build list videos query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("moduleID", moduleID).Msg("Error executing list videos query")
		return nil, apperrors.NewRemoteOperationError(err, "error querying videos")
	}
	defer rows.Close()

	videos := []*models.Video{}
	for rows.Next() {
		video := &models.Video{}
		if err := rows.Scan(&video.ID, &video.ModuleID, &video.Title, &video.BunnyVideoID, &video.Position, &video.CreatedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning video row during list")
			return nil, fmt.Errorf("error scanning video row: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating video rows")
		return nil, fmt.Errorf("error iterating video rows: %w", err)
	}

	return videos, nil
}

// Update updates a video's title, stream reference and, when supplied, position
func (r *VideoRepository) Update(ctx context.Context, video *models.Video) error {
	setMap := map[string]interface{}{
		"title":          video.Title,
		"bunny_video_id": video.BunnyVideoID,
	}
	if video.Position > 0 {
		setMap["position"] = video.Position
	}

	sql, args, err := r.sb.Update("videos").
		SetMap(setMap).
		Where(squirrel.Eq{"id": video.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update video SQL")
		return fmt.Errorf("failed to build update video query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("videoID", video.ID).Msg("Error executing update video query")
		return apperrors.NewRemoteOperationError(err, "error updating video")
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrVideoNotFound
	}

	return nil
}

// Delete deletes a video by ID
func (r *VideoRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("videos").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete video SQL")
		return fmt.Errorf("failed to build delete video query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("videoID", id).Msg("Error executing delete video query")
		return apperrors.NewRemoteOperationError(err, "error deleting video")
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrVideoNotFound
	}

	return nil
}
