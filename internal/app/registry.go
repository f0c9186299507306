package app

import (
	"go-hrms/internal/attendance"
	"go-hrms/internal/breakdown"
	"go-hrms/internal/config"
	"go-hrms/internal/employee"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/payroll"
	"go-hrms/internal/payrollconfig"
	"go-hrms/internal/rbac"
	"go-hrms/internal/salarycomponent"
	"go-hrms/internal/salarystructure"
	"go-hrms/internal/statutory"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type repositories struct {
	employees  employee.Repository
	statutory  statutory.Repository
	components salarycomponent.Repository
	structures salarystructure.Repository
	configs    payrollconfig.Repository
	attendance attendance.Repository
	payroll    payroll.Repository
	outbox     kafka.OutboxRepository
}

type services struct {
	employees  employee.Service
	statutory  statutory.Service
	components salarycomponent.Service
	structures salarystructure.Service
	configs    payrollconfig.Service
	attendance attendance.Service
	payroll    payroll.Service
}

func newRepositories(infra *Infrastructure) repositories {
	return repositories{
		employees:  employee.NewRepository(infra.GormDB),
		statutory:  statutory.NewRepository(infra.GormDB),
		components: salarycomponent.NewRepository(infra.GormDB),
		structures: salarystructure.NewRepository(infra.GormDB),
		configs:    payrollconfig.NewRepository(infra.GormDB),
		attendance: attendance.NewRepository(infra.GormDB),
		payroll:    payroll.NewRepository(infra.GormDB),
		outbox:     kafka.NewOutboxRepository(infra.GormDB),
	}
}

func newServices(infra *Infrastructure, cfg config.Config, logger *zap.Logger) services {
	repos := newRepositories(infra)
	calculator := breakdown.NewCalculator(statutory.Policy{
		DefaultProfessionalTax: cfg.DefaultProfessionalTax,
		DefaultDaysInMonth:     cfg.DefaultDaysInMonth,
	})

	statutoryService := statutory.NewService(infra.DB, repos.statutory, repos.components, infra.Redis, logger)

	return services{
		employees:  employee.NewService(repos.employees, logger),
		statutory:  statutoryService,
		components: salarycomponent.NewService(infra.DB, repos.components, logger),
		structures: salarystructure.NewService(infra.DB, repos.structures, repos.components, statutoryService, logger),
		configs: payrollconfig.NewService(
			infra.DB,
			repos.configs,
			repos.employees,
			repos.structures,
			statutoryService,
			calculator,
			logger,
		),
		attendance: attendance.NewService(infra.DB, repos.attendance, logger),
		payroll: payroll.NewService(infra.DB, repos.payroll, payroll.Dependencies{
			Employees:  repos.employees,
			Configs:    repos.configs,
			Structures: repos.structures,
			Statutory:  statutoryService,
			Attendance: repos.attendance,
			Outbox:     repos.outbox,
			Locker:     payroll.NewLocker(infra.Redis),
			Calculator: calculator,
			LockTTL:    cfg.PayrollLockTTL,
			PayslipDir: cfg.PayslipDir,
		}, logger),
	}
}

func registerModules(router *gin.Engine, infra *Infrastructure, cfg config.Config, logger *zap.Logger) error {
	authz, err := rbac.NewDefaultService(logger)
	if err != nil {
		return err
	}
	svc := newServices(infra, cfg, logger)

	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employee.NewHandler(svc.employees, logger), authz)
		statutory.RegisterRoutes(api, statutory.NewHandler(svc.statutory), authz)
		salarycomponent.RegisterRoutes(api, salarycomponent.NewHandler(svc.components), authz)
		salarystructure.RegisterRoutes(api, salarystructure.NewHandler(svc.structures), authz)
		payrollconfig.RegisterRoutes(api, payrollconfig.NewHandler(svc.configs), authz)
		attendance.RegisterRoutes(api, attendance.NewHandler(svc.attendance), authz)
		if infra.Redis != nil {
			payroll.RegisterRoutes(api, payroll.NewHandlerWithRedis(svc.payroll, infra.Redis), authz, infra.Redis)
		} else {
			payroll.RegisterRoutes(api, payroll.NewHandler(svc.payroll), authz)
		}
	}

	return nil
}
