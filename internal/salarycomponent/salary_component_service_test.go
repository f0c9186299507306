package salarycomponent_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-hrms/internal/salarycomponent"
	salarycomponenterrors "go-hrms/internal/salarycomponent/errors"
	componentMock "go-hrms/internal/salarycomponent/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service salarycomponent.Service
	repo    *componentMock.MockRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := componentMock.NewMockRepository(ctrl)
	repo.EXPECT().WithTx(gomock.Any()).Return(repo).AnyTimes()

	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: salarycomponent.NewService(db, repo),
		repo:    repo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestSalaryComponentService_Create(t *testing.T) {
	ctx := context.Background()
	organizationID := uuid.New().String()

	t.Run("success uppercases code", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, c *salarycomponent.SalaryComponent) error {
				assert.Equal(t, "HRA", c.Code)
				assert.Equal(t, salarycomponent.TypeEarning, c.ComponentType)
				assert.True(t, c.IsActive)
				assert.Nil(t, c.StatutoryType)
				return nil
			})

		resp, err := deps.service.Create(ctx, organizationID, salarycomponent.CreateSalaryComponentRequest{
			Code:          "hra",
			Name:          "House Rent Allowance",
			ComponentType: salarycomponent.TypeEarning,
		})

		assert.NoError(t, err)
		assert.Equal(t, "HRA", resp.Code)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("reserved statutory code", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, organizationID, salarycomponent.CreateSalaryComponentRequest{
			Code:          "PF_EMP",
			Name:          "Provident Fund",
			ComponentType: salarycomponent.TypeDeduction,
		})

		assert.ErrorIs(t, err, salarycomponenterrors.ErrReservedComponentCode)
	})

	t.Run("duplicate code maps to conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_salary_component_code"})

		_, err := deps.service.Create(ctx, organizationID, salarycomponent.CreateSalaryComponentRequest{
			Code:          "HRA",
			Name:          "House Rent Allowance",
			ComponentType: salarycomponent.TypeEarning,
		})

		assert.ErrorIs(t, err, salarycomponenterrors.ErrComponentCodeExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestSalaryComponentService_Update(t *testing.T) {
	ctx := context.Background()
	organizationID := uuid.New()
	pf := salarycomponent.StatutoryPF

	t.Run("statutory component is read only", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		id := uuid.New()
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().
			FindByID(gomock.Any(), organizationID.String(), id.String()).
			Return(&salarycomponent.SalaryComponent{ID: id, OrganizationID: organizationID, Code: "PF_EMP", StatutoryType: &pf}, nil)

		_, err := deps.service.Update(ctx, organizationID.String(), id.String(), salarycomponent.UpdateSalaryComponentRequest{Name: "Renamed"})

		assert.ErrorIs(t, err, salarycomponenterrors.ErrStatutoryComponentReadOnly)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().
			FindByID(gomock.Any(), organizationID.String(), gomock.Any()).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, organizationID.String(), uuid.NewString(), salarycomponent.UpdateSalaryComponentRequest{Name: "x"})

		assert.ErrorIs(t, err, salarycomponenterrors.ErrComponentNotFound)
	})
}

func TestSalaryComponentService_Deactivate(t *testing.T) {
	ctx := context.Background()
	organizationID := uuid.New()
	id := uuid.New()

	deps := setupServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)
	deps.repo.EXPECT().
		FindByID(gomock.Any(), organizationID.String(), id.String()).
		Return(&salarycomponent.SalaryComponent{ID: id, OrganizationID: organizationID, Code: "HRA", IsActive: true}, nil)
	deps.repo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, c *salarycomponent.SalaryComponent) error {
			assert.False(t, c.IsActive)
			return nil
		})

	err := deps.service.Deactivate(ctx, organizationID.String(), id.String())

	assert.NoError(t, err)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestGetOrCreate(t *testing.T) {
	ctx := context.Background()
	organizationID := uuid.New()

	t.Run("reactivates inactive component", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := componentMock.NewMockRepository(ctrl)

		repo.EXPECT().
			FirstOrCreate(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, c *salarycomponent.SalaryComponent) error {
				assert.Equal(t, "PT_EMP", c.Code)
				c.IsActive = false
				return nil
			})
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		component, err := salarycomponent.GetOrCreate(ctx, repo, organizationID, salarycomponent.StatutorySpec(salarycomponent.StatutoryPT))

		assert.NoError(t, err)
		assert.True(t, component.IsActive)
		assert.Equal(t, salarycomponent.StatutoryPT, component.Statutory())
	})

	t.Run("repository error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := componentMock.NewMockRepository(ctrl)
		repo.EXPECT().FirstOrCreate(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		_, err := salarycomponent.GetOrCreate(ctx, repo, organizationID, salarycomponent.BasicSpec())

		assert.Error(t, err)
	})
}
