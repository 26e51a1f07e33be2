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

// ModuleService defines the interface for module-related operations
type ModuleService interface {
	CreateModule(ctx context.Context, courseID int64, req *dto.CreateModuleRequest) (*models.Module, error)
	GetModuleByID(ctx context.Context, id int64) (*models.Module, error)
	ListModulesByCourse(ctx context.Context, courseID int64) ([]*models.Module, error)
	UpdateModule(ctx context.Context, id int64, req *dto.UpdateModuleRequest) (*models.Module, error)
	DeleteModule(ctx context.Context, id int64) error
}

// moduleServiceImpl implements the ModuleService interface
type moduleServiceImpl struct {
	moduleRepo *repositories.ModuleRepository
	courseRepo *repositories.CourseRepository
	cache      *querycache.Cache
}

// NewModuleService creates a new module service instance
func NewModuleService(
	moduleRepo *repositories.ModuleRepository,
	courseRepo *repositories.CourseRepository,
	cache *querycache.Cache,
) ModuleService {
	return &moduleServiceImpl{
		moduleRepo: moduleRepo,
		courseRepo: courseRepo,
		cache:      cache,
	}
}

// CreateModule creates a new module under a course. The position is assigned
// by the database, not computed here.
func (s *moduleServiceImpl) CreateModule(ctx context.Context, courseID int64, req *dto.CreateModuleRequest) (*models.Module, error) {
	if courseID <= 0 {
		return nil, fmt.Errorf("%w: invalid course ID", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
	}

	module := &models.Module{
		CourseID: courseID,
		Title:    strings.TrimSpace(req.Title),
	}

	if err := s.moduleRepo.Create(ctx, module); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, querycache.Modules(courseID))
	return module, nil
}

// GetModuleByID retrieves a module by ID
func (s *moduleServiceImpl) GetModuleByID(ctx context.Context, id int64) (*models.Module, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid module ID", apperrors.ErrValidationFailed)
	}

	return s.moduleRepo.GetByID(ctx, id)
}

// ListModulesByCourse retrieves a course's modules through the query cache
func (s *moduleServiceImpl) ListModulesByCourse(ctx context.Context, courseID int64) ([]*models.Module, error) {
	if courseID <= 0 {
		return nil, fmt.Errorf("%w: invalid course ID", apperrors.ErrValidationFailed)
	}

	// A missing course surfaces as not-found rather than an empty list
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	return querycache.Fetch(ctx, s.cache, querycache.Modules(courseID), func(ctx context.Context) ([]*models.Module, error) {
		return s.moduleRepo.ListByCourse(ctx, courseID)
	})
}

// UpdateModule updates an existing module
func (s *moduleServiceImpl) UpdateModule(ctx context.Context, id int64, req *dto.UpdateModuleRequest) (*models.Module, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid module ID", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
	}

	module, err := s.moduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	module.Title = strings.TrimSpace(req.Title)
	if req.Position != nil {
		module.Position = *req.Position
	}

	if err := s.moduleRepo.Update(ctx, module); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, querycache.Modules(module.CourseID))
	return module, nil
}

// DeleteModule deletes a module and invalidates the owning course's module
// list and the module's video list.
func (s *moduleServiceImpl) DeleteModule(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid module ID", apperrors.ErrValidationFailed)
	}

	module, err := s.moduleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.moduleRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, querycache.Modules(module.CourseID), querycache.Videos(id))
	return nil
}
