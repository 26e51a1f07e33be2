package services

import (
	"context"
	"fmt"

	"github.com/selimc/akademi/internal/app/models"
	"github.com/selimc/akademi/internal/app/repositories"
	"github.com/selimc/akademi/internal/pkg/apperrors"
	"github.com/selimc/akademi/internal/pkg/querycache"
)

// DashboardService serves the student-facing read side: a student's own
// course list and the full content tree of a course they are enrolled in.
type DashboardService interface {
	MyCourses(ctx context.Context, profileID int64) ([]*models.Course, error)
	CourseDetail(ctx context.Context, profileID, courseID int64) (*models.Course, error)
}

// dashboardServiceImpl implements the DashboardService interface
type dashboardServiceImpl struct {
	courseRepo     *repositories.CourseRepository
	moduleRepo     *repositories.ModuleRepository
	videoRepo      *repositories.VideoRepository
	enrollmentRepo *repositories.EnrollmentRepository
	cache          *querycache.Cache
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(
	courseRepo *repositories.CourseRepository,
	moduleRepo *repositories.ModuleRepository,
	videoRepo *repositories.VideoRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
	cache *querycache.Cache,
) DashboardService {
	return &dashboardServiceImpl{
		courseRepo:     courseRepo,
		moduleRepo:     moduleRepo,
		videoRepo:      videoRepo,
		enrollmentRepo: enrollmentRepo,
		cache:          cache,
	}
}

// MyCourses retrieves the courses the student is enrolled in, in enrollment
// order, through the query cache
func (s *dashboardServiceImpl) MyCourses(ctx context.Context, profileID int64) ([]*models.Course, error) {
	if profileID <= 0 {
		return nil, fmt.Errorf("%w: invalid profile ID", apperrors.ErrValidationFailed)
	}

	return querycache.Fetch(ctx, s.cache, querycache.StudentCourses(profileID), func(ctx context.Context) ([]*models.Course, error) {
		return s.enrollmentRepo.ListCoursesByProfile(ctx, profileID)
	})
}

// CourseDetail retrieves a course with its modules and videos nested in
// position order. Students only see courses they are enrolled in; anything
// else is denied, not hidden behind a not-found.
func (s *dashboardServiceImpl) CourseDetail(ctx context.Context, profileID, courseID int64) (*models.Course, error) {
	if profileID <= 0 || courseID <= 0 {
		return nil, fmt.Errorf("%w: invalid identifiers", apperrors.ErrValidationFailed)
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.enrollmentRepo.IsEnrolled(ctx, profileID, courseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, apperrors.ErrPermissionDenied
	}

	modules, err := querycache.Fetch(ctx, s.cache, querycache.Modules(courseID), func(ctx context.Context) ([]*models.Module, error) {
		return s.moduleRepo.ListByCourse(ctx, courseID)
	})
	if err != nil {
		return nil, err
	}

	for _, module := range modules {
		videos, err := querycache.Fetch(ctx, s.cache, querycache.Videos(module.ID), func(ctx context.Context) ([]*models.Video, error) {
			return s.videoRepo.ListByModule(ctx, module.ID)
		})
		if err != nil {
			return nil, err
		}
		module.Videos = videos
	}

	course.Modules = modules
	return course, nil
}
