package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selimc/akademi/internal/app/models"
	"github.com/selimc/akademi/internal/app/models/dto"
)

// fakeStudentCreator records creation calls and can fail specific emails
type fakeStudentCreator struct {
	created []dto.CreateStudentRequest
	failOn  map[string]error
}

func (f *fakeStudentCreator) CreateStudent(_ context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	if err, ok := f.failOn[req.Email]; ok {
		return nil, err
	}
	f.created = append(f.created, *req)
	return &dto.StudentResponse{
		Profile: &models.Profile{Name: req.Name, Email: req.Email, Role: models.RoleStudent},
	}, nil
}

func newTestImportService(creator StudentCreator) ImportService {
	return NewImportService(creator, 0, "student123")
}

func TestPreviewValidatesRows(t *testing.T) {
	csv := strings.Join([]string{
		"name,email",
		"A,a@x.com",
		",not-an-email",
		"B,b@x.com",
	}, "\n")

	svc := newTestImportService(&fakeStudentCreator{})
	preview, err := svc.Preview(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 2, preview.ValidCount)
	assert.Equal(t, 1, preview.InvalidCount)
	require.Len(t, preview.Rows, 3)

	assert.Equal(t, dto.ImportRowPending, preview.Rows[0].Status)
	assert.Equal(t, 2, preview.Rows[0].Line)
	assert.Equal(t, "a@x.com", preview.Rows[0].Email)

	// Both problems of the bad row are reported, name first
	assert.Equal(t, dto.ImportRowInvalid, preview.Rows[1].Status)
	require.Len(t, preview.Rows[1].Errors, 2)
	assert.Equal(t, "name is required", preview.Rows[1].Errors[0])
	assert.Equal(t, "invalid email address", preview.Rows[1].Errors[1])

	assert.Equal(t, dto.ImportRowPending, preview.Rows[2].Status)
}

func TestPreviewAcceptsHeaderAliases(t *testing.T) {
	cases := []string{
		"name,email",
		"student_name,email",
		"studentName,EMAIL",
		"Name,Email",
	}

	svc := newTestImportService(&fakeStudentCreator{})
	for _, header := range cases {
		preview, err := svc.Preview(context.Background(), strings.NewReader(header+"\nA,a@x.com\n"))
		require.NoError(t, err, "header %q", header)
		assert.Equal(t, 1, preview.ValidCount, "header %q", header)
	}
}

func TestPreviewNormalizesEmail(t *testing.T) {
	svc := newTestImportService(&fakeStudentCreator{})
	preview, err := svc.Preview(context.Background(), strings.NewReader("name,email\nA,  MiXeD@X.Com \n"))
	require.NoError(t, err)
	require.Len(t, preview.Rows, 1)
	assert.Equal(t, "mixed@x.com", preview.Rows[0].Email)
}

func TestPreviewEmptyFile(t *testing.T) {
	svc := newTestImportService(&fakeStudentCreator{})

	preview, err := svc.Preview(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, preview.Rows)
	assert.Equal(t, 0, preview.ValidCount)
	assert.Equal(t, 0, preview.InvalidCount)
}

func TestPreviewRejectsMissingColumns(t *testing.T) {
	svc := newTestImportService(&fakeStudentCreator{})

	_, err := svc.Preview(context.Background(), strings.NewReader("foo,bar\n1,2\n"))
	assert.Error(t, err)
}

func TestPreviewRejectsShortPasswordColumn(t *testing.T) {
	svc := newTestImportService(&fakeStudentCreator{})

	preview, err := svc.Preview(context.Background(), strings.NewReader("name,email,password\nA,a@x.com,123\n"))
	require.NoError(t, err)
	require.Len(t, preview.Rows, 1)

	assert.Equal(t, dto.ImportRowInvalid, preview.Rows[0].Status)
	require.Len(t, preview.Rows[0].Errors, 1)
	assert.Contains(t, preview.Rows[0].Errors[0], "password must be at least")
}

func TestPreviewAbortsOnMalformedFile(t *testing.T) {
	svc := newTestImportService(&fakeStudentCreator{})

	// Unterminated quote mid-file fails the whole parse, not just the row
	_, err := svc.Preview(context.Background(), strings.NewReader("name,email\nA,a@x.com\n\"unterminated,b@x.com\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse CSV")
}

func TestRunUsesPasswordColumnWhenPresent(t *testing.T) {
	csv := strings.Join([]string{
		"name,email,password",
		"A,a@x.com,chosen-secret",
		"B,b@x.com,",
	}, "\n")

	creator := &fakeStudentCreator{}
	svc := newTestImportService(creator)

	report, err := svc.Run(context.Background(), strings.NewReader(csv), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Succeeded)

	require.Len(t, creator.created, 2)
	assert.Equal(t, "chosen-secret", creator.created[0].Password)
	// Rows without a password fall back to the configured default
	assert.Equal(t, "student123", creator.created[1].Password)
}

func TestRunCreatesValidRowsInOrder(t *testing.T) {
	csv := strings.Join([]string{
		"name,email",
		"A,a@x.com",
		",bad",
		"B,b@x.com",
	}, "\n")

	creator := &fakeStudentCreator{}
	svc := newTestImportService(creator)

	report, err := svc.Run(context.Background(), strings.NewReader(csv), []int64{5})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, float64(100), report.Progress)

	require.Len(t, creator.created, 2)
	assert.Equal(t, "a@x.com", creator.created[0].Email)
	assert.Equal(t, "b@x.com", creator.created[1].Email)
	assert.Equal(t, "student123", creator.created[0].Password)
	assert.Equal(t, []int64{5}, creator.created[0].CourseIDs)
}

func TestRunFailedRowDoesNotStopImport(t *testing.T) {
	csv := strings.Join([]string{
		"name,email",
		"A,a@x.com",
		"B,b@x.com",
		"C,c@x.com",
	}, "\n")

	creator := &fakeStudentCreator{
		failOn: map[string]error{"b@x.com": errors.New("email already registered")},
	}
	svc := newTestImportService(creator)

	report, err := svc.Run(context.Background(), strings.NewReader(csv), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Results, 3)

	assert.Equal(t, dto.ImportRowSuccess, report.Results[0].Status)
	assert.Equal(t, dto.ImportRowError, report.Results[1].Status)
	assert.Equal(t, "email already registered", report.Results[1].Message)
	assert.Equal(t, dto.ImportRowSuccess, report.Results[2].Status)

	// Earlier successes are kept, later rows still attempted
	require.Len(t, creator.created, 2)
	assert.Equal(t, "a@x.com", creator.created[0].Email)
	assert.Equal(t, "c@x.com", creator.created[1].Email)
}

func TestRunEmptyFile(t *testing.T) {
	creator := &fakeStudentCreator{}
	svc := newTestImportService(creator)

	report, err := svc.Run(context.Background(), strings.NewReader(""), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Total)
	assert.Empty(t, report.Results)
	assert.Empty(t, creator.created)
}
