package app

import (
	"database/sql"
	"fmt"

	"go-hrms/internal/attendance"
	"go-hrms/internal/config"
	"go-hrms/internal/employee"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/payroll"
	"go-hrms/internal/payrollconfig"
	"go-hrms/internal/salarycomponent"
	"go-hrms/internal/salarystructure"
	"go-hrms/internal/shared/connection"
	"go-hrms/internal/statutory"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Infrastructure holds the shared connections of one process.
type Infrastructure struct {
	GormDB *gorm.DB
	DB     *sql.DB
	Redis  *redis.Client
}

// Connect opens the database and, when REDIS_ADDR is set, redis. Without
// redis the generation lock falls back to an in-process lock and PT rules
// are read straight from the database.
func Connect(cfg config.Config) (*Infrastructure, error) {
	logger := zap.L().Named("app.infrastructure")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, cfg.ConnectRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := Migrate(gormDB); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		logger.Info("database schema migrated")
	}

	infra := &Infrastructure{GormDB: gormDB, DB: sqlDB}
	if cfg.RedisAddr == "" {
		logger.Warn("REDIS_ADDR not set, running without redis")
		return infra, nil
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.ConnectRetries)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	infra.Redis = rdb
	return infra, nil
}

func (i *Infrastructure) Close() {
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.DB != nil {
		_ = i.DB.Close()
	}
}

// Models lists every table this service owns, in dependency order.
func Models() []any {
	return []any{
		&employee.Employee{},
		&statutory.OrganizationPayrollSettings{},
		&statutory.ProfessionalTaxRule{},
		&salarycomponent.SalaryComponent{},
		&salarystructure.SalaryStructure{},
		&salarystructure.SalaryStructureItem{},
		&payrollconfig.EmployeePayrollConfig{},
		&attendance.AttendanceEntry{},
		&payroll.GeneratedPayrollRecord{},
		&payroll.PayrollAdjustment{},
		&kafka.OutboxEvent{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
