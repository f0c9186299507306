package attendance

import (
	"context"
	"database/sql"
	"strings"
	"time"

	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Import(ctx context.Context, organizationID, adminID string, month, year int, entries []EntryInput) (ImportResponse, error)
	GetSheet(ctx context.Context, organizationID, adminID string, month, year int) (SheetResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// Import replaces the admin's sheet for the period. Payable days are stored
// as submitted and validated when payroll is generated.
func (s *service) Import(
	ctx context.Context,
	organizationID, adminID string,
	month, year int,
	entries []EntryInput,
) (ImportResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if !ValidPeriod(month, year) {
		return ImportResponse{}, attendanceerrors.ErrInvalidPeriod
	}
	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return ImportResponse{}, apperror.InvalidField("organization_id")
	}
	adminUUID, err := uuid.Parse(adminID)
	if err != nil {
		return ImportResponse{}, apperror.InvalidField("admin_id")
	}
	if len(entries) == 0 {
		return ImportResponse{}, attendanceerrors.ErrEmptySheet
	}

	now := time.Now()
	seen := make(map[string]bool, len(entries))
	rows := make([]AttendanceEntry, 0, len(entries))
	for _, e := range entries {
		key := strings.TrimSpace(e.EmployeeKey)
		if key == "" {
			return ImportResponse{}, apperror.RequiredField("employee")
		}
		norm := strings.ToUpper(key)
		if seen[norm] {
			return ImportResponse{}, attendanceerrors.ErrDuplicateEmployee.WithDetails(map[string]string{"employee": key})
		}
		seen[norm] = true

		rows = append(rows, AttendanceEntry{
			ID:             uuid.New(),
			OrganizationID: orgUUID,
			AdminID:        adminUUID,
			EmployeeKey:    key,
			Month:          month,
			Year:           year,
			PayableDays:    strings.TrimSpace(e.PayableDays),
			CreatedAt:      now,
		})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.DeleteSheet(ctx, organizationID, adminID, month, year); err != nil {
		return ImportResponse{}, err
	}
	if err := qtx.CreateEntries(ctx, rows); err != nil {
		return ImportResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ImportResponse{}, err
	}

	log.Info("attendance sheet imported",
		zap.String("organization_id", organizationID),
		zap.String("admin_id", adminID),
		zap.Int("month", month),
		zap.Int("year", year),
		zap.Int("entries", len(rows)),
	)

	return ImportResponse{
		Month:     month,
		Year:      year,
		TotalDays: DaysInMonth(year, month),
		Imported:  len(rows),
	}, nil
}

func (s *service) GetSheet(ctx context.Context, organizationID, adminID string, month, year int) (SheetResponse, error) {
	if !ValidPeriod(month, year) {
		return SheetResponse{}, attendanceerrors.ErrInvalidPeriod
	}

	rows, err := s.repo.FindSheet(ctx, organizationID, adminID, month, year)
	if err != nil {
		return SheetResponse{}, err
	}
	if len(rows) == 0 {
		return SheetResponse{}, attendanceerrors.ErrSheetNotFound
	}

	return SheetResponse{
		Month:     month,
		Year:      year,
		TotalDays: DaysInMonth(year, month),
		Entries:   ToInputs(rows),
	}, nil
}

func ToInputs(rows []AttendanceEntry) []EntryInput {
	entries := make([]EntryInput, len(rows))
	for i, r := range rows {
		entries[i] = EntryInput{EmployeeKey: r.EmployeeKey, PayableDays: r.PayableDays}
	}
	return entries
}
