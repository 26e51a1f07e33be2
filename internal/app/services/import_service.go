package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/selimc/akademi/internal/app/models/dto"
	"github.com/selimc/akademi/internal/pkg/auth"
	"github.com/selimc/akademi/internal/pkg/logger"
)

// StudentCreator is the slice of StudentService the importer needs
type StudentCreator interface {
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
}

// ImportService handles bulk student creation from uploaded CSV files
type ImportService interface {
	Preview(ctx context.Context, file io.Reader) (*dto.ImportPreview, error)
	Run(ctx context.Context, file io.Reader, courseIDs []int64) (*dto.ImportReport, error)
}

// importServiceImpl implements the ImportService interface
type importServiceImpl struct {
	students        StudentCreator
	rowDelay        time.Duration
	defaultPassword string
}

// NewImportService creates a new import service instance. rowDelay is the
// pause between consecutive account creations; it is not applied after the
// last row.
func NewImportService(students StudentCreator, rowDelay time.Duration, defaultPassword string) ImportService {
	return &importServiceImpl{
		students:        students,
		rowDelay:        rowDelay,
		defaultPassword: defaultPassword,
	}
}

// Accepted header spellings for the two required columns and the optional
// password column, matched case-insensitively.
var (
	nameHeaders     = map[string]bool{"name": true, "student_name": true, "studentname": true}
	emailHeaders    = map[string]bool{"email": true, "student_email": true, "studentemail": true}
	passwordHeaders = map[string]bool{"password": true, "student_password": true, "studentpassword": true}
)

// Preview parses and validates the file without creating anything
func (s *importServiceImpl) Preview(ctx context.Context, file io.Reader) (*dto.ImportPreview, error) {
	rows, err := s.parse(file)
	if err != nil {
		return nil, err
	}

	preview := &dto.ImportPreview{Rows: rows}
	for _, row := range rows {
		if row.Status == dto.ImportRowInvalid {
			preview.InvalidCount++
		} else {
			preview.ValidCount++
		}
	}

	return preview, nil
}

// Run parses the file and creates an account for every valid row,
// sequentially and in file order. Invalid rows are skipped and counted;
// a failed row never rolls back the rows created before it.
func (s *importServiceImpl) Run(ctx context.Context, file io.Reader, courseIDs []int64) (*dto.ImportReport, error) {
	rows, err := s.parse(file)
	if err != nil {
		return nil, err
	}

	report := &dto.ImportReport{Results: []dto.ImportResult{}}

	valid := []dto.ImportRow{}
	for _, row := range rows {
		if row.Status == dto.ImportRowInvalid {
			report.Skipped++
			continue
		}
		valid = append(valid, row)
	}
	report.Total = len(valid)

	for i, row := range valid {
		if i > 0 && s.rowDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.rowDelay):
			}
		}

		result := dto.ImportResult{Line: row.Line, Name: row.Name, Email: row.Email}

		password := row.Password
		if password == "" {
			password = s.defaultPassword
		}

		_, err := s.students.CreateStudent(ctx, &dto.CreateStudentRequest{
			Name:      row.Name,
			Email:     row.Email,
			Password:  password,
			CourseIDs: courseIDs,
		})
		if err != nil {
			logger.Warn().Err(err).Int("line", row.Line).Str("email", row.Email).Msg("Import row failed")
			result.Status = dto.ImportRowError
			result.Message = err.Error()
			report.Failed++
		} else {
			result.Status = dto.ImportRowSuccess
			report.Succeeded++
		}

		report.Results = append(report.Results, result)
	}

	report.Progress = 100
	return report, nil
}

// parse reads the CSV and validates each data row. An empty file yields zero
// rows, not an error, while any reader failure aborts the whole parse. Line
// numbers are 1-based file positions, so the first data row is line 2.
func (s *importServiceImpl) parse(file io.Reader) ([]dto.ImportRow, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []dto.ImportRow{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	nameIdx, emailIdx, passwordIdx := -1, -1, -1
	for i, col := range header {
		switch {
		case nameHeaders[strings.ToLower(strings.TrimSpace(col))]:
			if nameIdx < 0 {
				nameIdx = i
			}
		case emailHeaders[strings.ToLower(strings.TrimSpace(col))]:
			if emailIdx < 0 {
				emailIdx = i
			}
		case passwordHeaders[strings.ToLower(strings.TrimSpace(col))]:
			if passwordIdx < 0 {
				passwordIdx = i
			}
		}
	}
	if nameIdx < 0 || emailIdx < 0 {
		return nil, fmt.Errorf("CSV header must contain name and email columns")
	}

	rows := []dto.ImportRow{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			// A malformed file aborts as a whole, before anything is created
			return nil, fmt.Errorf("failed to parse CSV at line %d: %w", line, err)
		}

		row := dto.ImportRow{Line: line, Status: dto.ImportRowPending}
		if nameIdx < len(record) {
			row.Name = strings.TrimSpace(record[nameIdx])
		}
		if emailIdx < len(record) {
			row.Email = strings.ToLower(strings.TrimSpace(record[emailIdx]))
		}
		if passwordIdx >= 0 && passwordIdx < len(record) {
			row.Password = strings.TrimSpace(record[passwordIdx])
		}

		if row.Name == "" {
			row.Errors = append(row.Errors, "name is required")
		}
		if !emailPattern.MatchString(row.Email) {
			row.Errors = append(row.Errors, "invalid email address")
		}
		if row.Password != "" && len(row.Password) < auth.MinPasswordLength {
			row.Errors = append(row.Errors, fmt.Sprintf("password must be at least %d characters", auth.MinPasswordLength))
		}
		if len(row.Errors) > 0 {
			row.Status = dto.ImportRowInvalid
		}

		rows = append(rows, row)
	}

	return rows, nil
}
