package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/selimc/akademi/internal/app/models/dto"
	"github.com/selimc/akademi/internal/pkg/apperrors"
)

// All validation runs before the first repository call, so invalid input must
// fail identically with no backing store at all.
func newValidationOnlyStudentService() StudentService {
	return NewStudentService(nil, nil, nil)
}

func TestCreateStudentRejectsInvalidInputBeforeAnyWrite(t *testing.T) {
	svc := newValidationOnlyStudentService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  dto.CreateStudentRequest
	}{
		{name: "empty name", req: dto.CreateStudentRequest{Name: "  ", Email: "a@x.com", Password: "longenough"}},
		{name: "invalid email", req: dto.CreateStudentRequest{Name: "A", Email: "not-an-email", Password: "longenough"}},
		{name: "email with spaces", req: dto.CreateStudentRequest{Name: "A", Email: "a b@x.com", Password: "longenough"}},
		{name: "short password", req: dto.CreateStudentRequest{Name: "A", Email: "a@x.com", Password: "12345"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateStudent(ctx, &tt.req)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}

func TestUpdateStudentRejectsInvalidInput(t *testing.T) {
	svc := newValidationOnlyStudentService()
	ctx := context.Background()

	_, err := svc.UpdateStudent(ctx, 1, &dto.UpdateStudentRequest{Name: "", Email: "a@x.com"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.UpdateStudent(ctx, 1, &dto.UpdateStudentRequest{Name: "A", Email: "bad"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestGetStudentByIDRejectsNonPositiveID(t *testing.T) {
	svc := newValidationOnlyStudentService()

	for _, id := range []int64{0, -1} {
		_, err := svc.GetStudentByID(context.Background(), id)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "id %d", id)
	}
}
