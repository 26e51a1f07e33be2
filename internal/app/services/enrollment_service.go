package services

import (
	"context"
	"fmt"

	"github.com/selimc/akademi/internal/app/models"
	"github.com/selimc/akademi/internal/app/repositories"
	"github.com/selimc/akademi/internal/pkg/apperrors"
	"github.com/selimc/akademi/internal/pkg/querycache"
)

// EnrollmentService defines the interface for enrollment operations
type EnrollmentService interface {
	Enroll(ctx context.Context, profileID, courseID int64) error
	Unenroll(ctx context.Context, profileID, courseID int64) error
	ListCourseStudents(ctx context.Context, courseID int64) ([]*models.Profile, error)
}

// enrollmentServiceImpl implements the EnrollmentService interface
type enrollmentServiceImpl struct {
	enrollmentRepo *repositories.EnrollmentRepository
	userRepo       *repositories.UserRepository
	courseRepo     *repositories.CourseRepository
	cache          *querycache.Cache
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(
	enrollmentRepo *repositories.EnrollmentRepository,
	userRepo *repositories.UserRepository,
	courseRepo *repositories.CourseRepository,
	cache *querycache.Cache,
) EnrollmentService {
	return &enrollmentServiceImpl{
		enrollmentRepo: enrollmentRepo,
		userRepo:       userRepo,
		courseRepo:     courseRepo,
		cache:          cache,
	}
}

// Enroll adds a student to a course. Only student profiles can be enrolled.
func (s *enrollmentServiceImpl) Enroll(ctx context.Context, profileID, courseID int64) error {
	if profileID <= 0 || courseID <= 0 {
		return fmt.Errorf("%w: invalid enrollment identifiers", apperrors.ErrValidationFailed)
	}

	profile, err := s.userRepo.GetProfileByID(ctx, profileID)
	if err != nil {
		return err
	}
	if profile.Role != models.RoleStudent {
		return fmt.Errorf("%w: only students can be enrolled", apperrors.ErrValidationFailed)
	}

	if err := s.enrollmentRepo.Create(ctx, profileID, courseID); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, querycache.CourseStudents(courseID), querycache.StudentCourses(profileID))
	return nil
}

// Unenroll removes a student from a course
func (s *enrollmentServiceImpl) Unenroll(ctx context.Context, profileID, courseID int64) error {
	if profileID <= 0 || courseID <= 0 {
		return fmt.Errorf("%w: invalid enrollment identifiers", apperrors.ErrValidationFailed)
	}

	if err := s.enrollmentRepo.Delete(ctx, profileID, courseID); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, querycache.CourseStudents(courseID), querycache.StudentCourses(profileID))
	return nil
}

// ListCourseStudents retrieves a course's roster through the query cache
func (s *enrollmentServiceImpl) ListCourseStudents(ctx context.Context, courseID int64) ([]*models.Profile, error) {
	if courseID <= 0 {
		return nil, fmt.Errorf("%w: invalid course ID", apperrors.ErrValidationFailed)
	}

	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	return querycache.Fetch(ctx, s.cache, querycache.CourseStudents(courseID), func(ctx context.Context) ([]*models.Profile, error) {
		return s.enrollmentRepo.ListProfilesByCourse(ctx, courseID)
	})
}
