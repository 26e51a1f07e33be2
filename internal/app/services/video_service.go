package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/selimc/akademi/internal/app/models"
	"github.com/selimc/akademi/internal/app/models/dto"
	"github.com/selimc/akademi/internal/app/repositories"
	"github.com/selimc/akademi/internal/pkg/apperrors"
	"github.com/selimc/akademi/internal/pkg/querycache"
)

// VideoService defines the interface for video-related operations
type VideoService interface {
	CreateVideo(ctx context.Context, moduleID int64, req *dto.CreateVideoRequest) (*models.Video, error)
	GetVideoByID(ctx context.Context, id int64) (*models.Video, error)
	ListVideosByModule(ctx context.Context, moduleID int64) ([]*models.Video, error)
	UpdateVideo(ctx context.Context, id int64, req *dto.UpdateVideoRequest) (*models.Video, error)
	DeleteVideo(ctx context.Context, id int64) error
}

// videoServiceImpl implements the VideoService interface
type videoServiceImpl struct {
	videoRepo  *repositories.VideoRepository
	moduleRepo *repositories.ModuleRepository
	cache      *querycache.Cache
}

// NewVideoService creates a new video service instance
func NewVideoService(
	videoRepo *repositories.VideoRepository,
	moduleRepo *repositories.ModuleRepository,
	cache *querycache.Cache,
) VideoService {
	return &videoServiceImpl{
		videoRepo:  videoRepo,
		moduleRepo: moduleRepo,
		cache:      cache,
	}
}

// CreateVideo creates a new video under a module. The stream reference is
// stored untouched; historic data mixes bare IDs and full URLs.
func (s *videoServiceImpl) CreateVideo(ctx context.Context, moduleID int64, req *dto.CreateVideoRequest) (*models.Video, error) {
	if moduleID <= 0 {
		return nil, fmt.Errorf("%w: invalid module ID", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(req.BunnyVideoID) == "" {
		return nil, fmt.Errorf("%w: stream reference cannot be empty", apperrors.ErrValidationFailed)
	}

	video := &models.Video{
		ModuleID:     moduleID,
		Title:        strings.TrimSpace(req.Title),
		BunnyVideoID: strings.TrimSpace(req.BunnyVideoID),
	}

	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, querycache.Videos(moduleID))
	return video, nil
}

// GetVideoByID retrieves a video by ID
func (s *videoServiceImpl) GetVideoByID(ctx context.Context, id int64) (*models.Video, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid video ID", apperrors.ErrValidationFailed)
	}

	return s.videoRepo.GetByID(ctx, id)
}

// ListVideosByModule retrieves a module's videos through the query cache
func (s *videoServiceImpl) ListVideosByModule(ctx context.Context, moduleID int64) ([]*models.Video, error) {
	if moduleID <= 0 {
		return nil, fmt.Errorf("%w: invalid module ID", apperrors.ErrValidationFailed)
	}

	if _, err := s.moduleRepo.GetByID(ctx, moduleID); err != nil {
		return nil, err
	}

	return querycache.Fetch(ctx, s.cache, querycache.Videos(moduleID), func(ctx context.Context) ([]*models.Video, error) {
		return s.videoRepo.ListByModule(ctx, moduleID)
	})
}

// UpdateVideo updates an existing video
func (s *videoServiceImpl) UpdateVideo(ctx context.Context, id int64, req *dto.UpdateVideoRequest) (*models.Video, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid video ID", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(req.BunnyVideoID) == "" {
		return nil, fmt.Errorf("%w: stream reference cannot be empty", apperrors.ErrValidationFailed)
	}

	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	video.Title = strings.TrimSpace(req.Title)
	video.BunnyVideoID = strings.TrimSpace(req.BunnyVideoID)
	if req.Position != nil {
		video.Position = *req.Position
	}

	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, querycache.Videos(video.ModuleID))
	return video, nil
}

// DeleteVideo deletes a video and invalidates the owning module's video list
func (s *videoServiceImpl) DeleteVideo(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid video ID", apperrors.ErrValidationFailed)
	}

	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.videoRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, querycache.Videos(video.ModuleID))
	return nil
}
