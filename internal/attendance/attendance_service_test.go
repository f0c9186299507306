package attendance_test

import (
	"context"
	"database/sql"
	"testing"

	"go-hrms/internal/attendance"
	attendanceerrors "go-hrms/internal/attendance/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRepository struct {
	deleted []int
	created []attendance.AttendanceEntry
	sheet   []attendance.AttendanceEntry
}

func (f *fakeRepository) WithTx(tx *sql.Tx) attendance.Repository { return f }

func (f *fakeRepository) DeleteSheet(ctx context.Context, organizationID, adminID string, month, year int) error {
	f.deleted = append(f.deleted, month)
	return nil
}

func (f *fakeRepository) CreateEntries(ctx context.Context, entries []attendance.AttendanceEntry) error {
	f.created = append(f.created, entries...)
	return nil
}

func (f *fakeRepository) FindSheet(ctx context.Context, organizationID, adminID string, month, year int) ([]attendance.AttendanceEntry, error) {
	return f.sheet, nil
}

func setupService(t *testing.T, repo *fakeRepository) (attendance.Service, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	return attendance.NewService(db, repo), mock, db
}

func TestAttendanceService_Import(t *testing.T) {
	ctx := context.Background()
	organizationID := uuid.NewString()
	adminID := uuid.NewString()

	t.Run("replaces the period sheet", func(t *testing.T) {
		repo := &fakeRepository{}
		svc, mock, db := setupService(t, repo)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.Import(ctx, organizationID, adminID, 2, 2026, []attendance.EntryInput{
			{EmployeeKey: " EMP-1 ", PayableDays: "28"},
			{EmployeeKey: "EMP-2", PayableDays: "abc"},
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
		assert.Equal(t, 28, resp.TotalDays)
		assert.Equal(t, 2, resp.Imported)
		assert.Equal(t, []int{2}, repo.deleted)
		assert.Equal(t, "EMP-1", repo.created[0].EmployeeKey)
		assert.Equal(t, "abc", repo.created[1].PayableDays)
		assert.Equal(t, adminID, repo.created[0].AdminID.String())
	})

	t.Run("duplicate employee key", func(t *testing.T) {
		repo := &fakeRepository{}
		svc, _, db := setupService(t, repo)
		defer db.Close()

		_, err := svc.Import(ctx, organizationID, adminID, 2, 2026, []attendance.EntryInput{
			{EmployeeKey: "emp-1", PayableDays: "28"},
			{EmployeeKey: "EMP-1", PayableDays: "20"},
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrDuplicateEmployee)
		assert.Empty(t, repo.created)
	})

	t.Run("invalid period", func(t *testing.T) {
		svc, _, db := setupService(t, &fakeRepository{})
		defer db.Close()

		_, err := svc.Import(ctx, organizationID, adminID, 13, 2026, []attendance.EntryInput{{EmployeeKey: "EMP-1"}})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidPeriod)
	})

	t.Run("empty sheet", func(t *testing.T) {
		svc, _, db := setupService(t, &fakeRepository{})
		defer db.Close()

		_, err := svc.Import(ctx, organizationID, adminID, 1, 2026, nil)

		assert.ErrorIs(t, err, attendanceerrors.ErrEmptySheet)
	})
}

func TestAttendanceService_GetSheet(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		repo := &fakeRepository{sheet: []attendance.AttendanceEntry{
			{EmployeeKey: "EMP-1", PayableDays: "30"},
		}}
		svc, _, db := setupService(t, repo)
		defer db.Close()

		resp, err := svc.GetSheet(ctx, uuid.NewString(), uuid.NewString(), 4, 2026)

		assert.NoError(t, err)
		assert.Equal(t, 30, resp.TotalDays)
		assert.Equal(t, []attendance.EntryInput{{EmployeeKey: "EMP-1", PayableDays: "30"}}, resp.Entries)
	})

	t.Run("missing", func(t *testing.T) {
		svc, _, db := setupService(t, &fakeRepository{})
		defer db.Close()

		_, err := svc.GetSheet(ctx, uuid.NewString(), uuid.NewString(), 4, 2026)

		assert.ErrorIs(t, err, attendanceerrors.ErrSheetNotFound)
	})
}
