package main

import (
	"github.com/gin-gonic/gin"
	"github.com/teabook/teabook-api/internal/application/service"
	"github.com/teabook/teabook-api/internal/config"
	"github.com/teabook/teabook-api/internal/domain/repository"
	"github.com/teabook/teabook-api/internal/infrastructure/database"
	gormrepo "github.com/teabook/teabook-api/internal/infrastructure/repository"
	"github.com/teabook/teabook-api/internal/infrastructure/redisrepo"
	"github.com/teabook/teabook-api/internal/presentation/http/handler"
	"github.com/teabook/teabook-api/internal/presentation/http/routes"
)

// repositories groups one backend's implementations of the domain
// repositories.
type repositories struct {
	CashFlow    repository.CashFlowRepository
	Expense     repository.ExpenseRepository
	Employee    repository.EmployeeRepository
	Salary      repository.SalaryPaymentRepository
	Stock       repository.StockRepository
	Supplier    repository.SupplierRepository
	Bill        repository.PendingBillRepository
	Milk        repository.MilkUsageRepository
	Idempotency repository.IdempotencyRepository
}

func main() {
	// Load configuration
	cfg := config.Load()
	log := config.NewLogger(&cfg.App)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect the configured storage backend
	var repos repositories
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgresDB(&cfg.Database, log)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := database.AutoMigrate(db, log); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		repos = repositories{
			CashFlow:    gormrepo.NewCashFlowRepository(db),
			Expense:     gormrepo.NewExpenseRepository(db),
			Employee:    gormrepo.NewEmployeeRepository(db),
			Salary:      gormrepo.NewSalaryPaymentRepository(db),
			Stock:       gormrepo.NewStockRepository(db),
			Supplier:    gormrepo.NewSupplierRepository(db),
			Bill:        gormrepo.NewPendingBillRepository(db),
			Milk:        gormrepo.NewMilkUsageRepository(db),
			Idempotency: gormrepo.NewIdempotencyRepository(db),
		}
	case config.DriverRedis:
		rdb, err := database.NewRedisClient(&cfg.Redis, log)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		repos = repositories{
			CashFlow:    redisrepo.NewCashFlowRepository(rdb),
			Expense:     redisrepo.NewExpenseRepository(rdb),
			Employee:    redisrepo.NewEmployeeRepository(rdb),
			Salary:      redisrepo.NewSalaryPaymentRepository(rdb),
			Stock:       redisrepo.NewStockRepository(rdb),
			Supplier:    redisrepo.NewSupplierRepository(rdb),
			Bill:        redisrepo.NewPendingBillRepository(rdb),
			Milk:        redisrepo.NewMilkUsageRepository(rdb),
			Idempotency: redisrepo.NewIdempotencyRepository(rdb),
		}
	default:
		log.Fatalf("Unknown storage driver %q (want %s or %s)", cfg.Storage.Driver, config.DriverPostgres, config.DriverRedis)
	}

	// Initialize services
	expenseService := service.NewExpenseService(repos.Expense, repos.CashFlow, repos.Salary, repos.Employee, log)
	cashFlowService := service.NewCashFlowService(repos.CashFlow, repos.Expense, log)
	payrollService := service.NewPayrollService(repos.Employee, repos.Salary, expenseService, log)
	stockService := service.NewStockService(repos.Stock, repos.Supplier, log)
	supplierService := service.NewSupplierService(repos.Supplier)
	billingService := service.NewBillingService(repos.Bill)
	milkService := service.NewMilkService(repos.Milk)
	reportService := service.NewReportService(repos.CashFlow)

	// Initialize handlers
	handlers := &routes.Handlers{
		Expense:  handler.NewExpenseHandler(expenseService),
		CashFlow: handler.NewCashFlowHandler(cashFlowService),
		Payroll:  handler.NewPayrollHandler(payrollService),
		Stock:    handler.NewStockHandler(stockService),
		Supplier: handler.NewSupplierHandler(supplierService),
		Billing:  handler.NewBillingHandler(billingService),
		Milk:     handler.NewMilkHandler(milkService),
		Report:   handler.NewReportHandler(reportService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		Log:             log,
		IdempotencyRepo: repos.Idempotency,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Infof("Starting %s on port %s (storage: %s, env: %s)", cfg.App.Name, port, cfg.Storage.Driver, cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
