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

// CourseService defines the interface for course-related operations
type CourseService interface {
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	ListCourses(ctx context.Context) ([]*models.Course, error)
	UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, id int64) error
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseRepo     *repositories.CourseRepository
	enrollmentRepo *repositories.EnrollmentRepository
	cache          *querycache.Cache
}

// NewCourseService creates a new course service instance
func NewCourseService(
	courseRepo *repositories.CourseRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
	cache *querycache.Cache,
) CourseService {
	return &courseServiceImpl{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		cache:          cache,
	}
}

// CreateCourse creates a new course
func (s *courseServiceImpl) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
	}

	course := &models.Course{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	s.cache.Invalidate(ctx, querycache.Courses())
	return course, nil
}

// GetCourseByID retrieves a course by ID
func (s *courseServiceImpl) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid course ID", apperrors.ErrValidationFailed)
	}

	return s.courseRepo.GetByID(ctx, id)
}

// ListCourses retrieves all courses through the query cache
func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]*models.Course, error) {
	return querycache.Fetch(ctx, s.cache, querycache.Courses(), func(ctx context.Context) ([]*models.Course, error) {
		return s.courseRepo.List(ctx)
	})
}

// UpdateCourse updates an existing course
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid course ID", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
	}

	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	course.Title = strings.TrimSpace(req.Title)
	course.Description = req.Description

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("error updating course: %w", err)
	}

	s.cache.Invalidate(ctx, querycache.Courses())
	return course, nil
}

// DeleteCourse deletes a course and invalidates every collection that could
// still reference it.
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid course ID", apperrors.ErrValidationFailed)
	}

	// Resolve enrolled profiles before deleting so their course lists can be
	// invalidated afterwards.
	profiles, err := s.enrollmentRepo.ListProfilesByCourse(ctx, id)
	if err != nil {
		return err
	}

	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return err
	}

	keys := []querycache.Key{
		querycache.Courses(),
		querycache.Modules(id),
		querycache.CourseStudents(id),
	}
	for _, profile := range profiles {
		keys = append(keys, querycache.StudentCourses(profile.ID))
	}
	s.cache.Invalidate(ctx, keys...)

	return nil
}
