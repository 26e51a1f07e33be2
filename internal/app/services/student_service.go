package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/selimc/akademi/internal/app/models"
	"github.com/selimc/akademi/internal/app/models/dto"
	"github.com/selimc/akademi/internal/app/repositories"
	"github.com/selimc/akademi/internal/pkg/apperrors"
	"github.com/selimc/akademi/internal/pkg/auth"
	"github.com/selimc/akademi/internal/pkg/logger"
	"github.com/selimc/akademi/internal/pkg/querycache"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// StudentService defines the interface for student account operations
type StudentService interface {
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Profile, error)
	ListStudents(ctx context.Context) ([]*models.Profile, error)
	UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Profile, error)
	DeleteStudent(ctx context.Context, id int64) error
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	userRepo       *repositories.UserRepository
	enrollmentRepo *repositories.EnrollmentRepository
	cache          *querycache.Cache
}

// NewStudentService creates a new student service instance
func NewStudentService(
	userRepo *repositories.UserRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
	cache *querycache.Cache,
) StudentService {
	return &studentServiceImpl{
		userRepo:       userRepo,
		enrollmentRepo: enrollmentRepo,
		cache:          cache,
	}
}

// CreateStudent creates a student account in three steps: identity, profile,
// then optional enrollments. All validation happens before the first write.
// If the profile step fails the identity is deleted again so no orphaned
// login remains. Enrollment failures are collected and reported but never
// fail the creation.
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email address", apperrors.ErrValidationFailed)
	}
	if len(req.Password) < auth.MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidationFailed, auth.MinPasswordLength)
	}

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error().Err(err).Msg("Error hashing student password")
		return nil, err
	}

	user := &models.User{Email: email, Password: hashed}
	userID, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{
		ID:    userID,
		Name:  name,
		Email: email,
		Role:  models.RoleStudent,
	}
	if err := s.userRepo.CreateProfile(ctx, profile); err != nil {
		// Roll the identity back so a half-created account cannot log in
		if delErr := s.userRepo.DeleteUser(ctx, userID); delErr != nil {
			logger.Error().Err(delErr).Int64("userID", userID).Msg("Error compensating failed profile creation")
		}
		return nil, err
	}

	resp := &dto.StudentResponse{Profile: profile}
	invalidate := []querycache.Key{querycache.Students()}

	for _, courseID := range req.CourseIDs {
		if err := s.enrollmentRepo.Create(ctx, profile.ID, courseID); err != nil {
			logger.Warn().Err(err).Int64("profileID", profile.ID).Int64("courseID", courseID).Msg("Initial enrollment failed")
			resp.FailedEnrollments = append(resp.FailedEnrollments, dto.EnrollmentFailure{
				CourseID: courseID,
				Message:  err.Error(),
			})
			continue
		}
		resp.EnrolledCourseIDs = append(resp.EnrolledCourseIDs, courseID)
		invalidate = append(invalidate, querycache.CourseStudents(courseID))
	}
	if len(resp.EnrolledCourseIDs) > 0 {
		invalidate = append(invalidate, querycache.StudentCourses(profile.ID))
	}

	s.cache.Invalidate(ctx, invalidate...)
	return resp, nil
}

// GetStudentByID retrieves a student profile by ID
func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id int64) (*models.Profile, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid student ID", apperrors.ErrValidationFailed)
	}

	profile, err := s.userRepo.GetProfileByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile.Role != models.RoleStudent {
		return nil, apperrors.ErrProfileNotFound
	}

	return profile, nil
}

// ListStudents retrieves all student profiles through the query cache
func (s *studentServiceImpl) ListStudents(ctx context.Context) ([]*models.Profile, error) {
	return querycache.Fetch(ctx, s.cache, querycache.Students(), func(ctx context.Context) ([]*models.Profile, error) {
		return s.userRepo.ListStudents(ctx)
	})
}

// UpdateStudent updates a student's name and email. The role cannot change.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Profile, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email address", apperrors.ErrValidationFailed)
	}

	profile, err := s.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	profile.Name = name
	profile.Email = email

	if err := s.userRepo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, querycache.Students())
	return profile, nil
}

// DeleteStudent removes a student account. Enrollments go with it via the
// cascade, so the course rosters the student appeared on are invalidated too.
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) error {
	if _, err := s.GetStudentByID(ctx, id); err != nil {
		return err
	}

	courses, err := s.enrollmentRepo.ListCoursesByProfile(ctx, id)
	if err != nil {
		return err
	}

	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		return err
	}

	keys := []querycache.Key{querycache.Students(), querycache.StudentCourses(id)}
	for _, course := range courses {
		keys = append(keys, querycache.CourseStudents(course.ID))
	}
	s.cache.Invalidate(ctx, keys...)

	return nil
}
