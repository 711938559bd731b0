package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/teabook/teabook-api/internal/config"
	domainRepo "github.com/teabook/teabook-api/internal/domain/repository"
	"github.com/teabook/teabook-api/internal/presentation/http/handler"
	"github.com/teabook/teabook-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Expense  *handler.ExpenseHandler
	CashFlow *handler.CashFlowHandler
	Payroll  *handler.PayrollHandler
	Stock    *handler.StockHandler
	Supplier *handler.SupplierHandler
	Billing  *handler.BillingHandler
	Milk     *handler.MilkHandler
	Report   *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Log             *logrus.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		rateLimiter := middleware.NewIPRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())
		v1.Use(middleware.Idempotency(deps.IdempotencyRepo))

		registerLedgerRoutes(v1, h)
		registerPayrollRoutes(v1, h)
		registerStockRoutes(v1, h)
		registerTrackingRoutes(v1, h)
	}

	return router
}

func registerLedgerRoutes(v1 *gin.RouterGroup, h *Handlers) {
	expenses := v1.Group("/expenses")
	{
		expenses.POST("", h.Expense.Add)
		expenses.GET("", h.Expense.List)
		expenses.GET("/stats", h.Expense.Stats)
		expenses.GET("/:id", h.Expense.Get)
		expenses.DELETE("/:id", h.Expense.Delete)
	}

	cashFlow := v1.Group("/cash-flow")
	{
		cashFlow.POST("", h.CashFlow.Save)
		cashFlow.GET("", h.CashFlow.List)
		cashFlow.GET("/:date", h.CashFlow.Get)
		cashFlow.DELETE("/:date", h.CashFlow.Delete)
	}

	v1.GET("/dashboard", h.CashFlow.Dashboard)

	reports := v1.Group("/reports")
	{
		reports.GET("/cash-flow", h.Report.CashFlow)
		reports.GET("/cash-flow/xlsx", h.Report.CashFlowXLSX)
	}
}

func registerPayrollRoutes(v1 *gin.RouterGroup, h *Handlers) {
	employees := v1.Group("/employees")
	{
		employees.POST("", h.Payroll.CreateEmployee)
		employees.GET("", h.Payroll.ListEmployees)
		employees.GET("/:id", h.Payroll.GetEmployee)
		employees.PUT("/:id", h.Payroll.UpdateEmployee)
		employees.DELETE("/:id", h.Payroll.DeactivateEmployee)
		employees.POST("/:id/reactivate", h.Payroll.ReactivateEmployee)
	}

	salaries := v1.Group("/salaries")
	{
		salaries.POST("", h.Payroll.PaySalary)
		salaries.GET("", h.Payroll.ListPayments)
	}
}

func registerStockRoutes(v1 *gin.RouterGroup, h *Handlers) {
	stock := v1.Group("/stock")
	{
		stock.POST("", h.Stock.Add)
		stock.GET("", h.Stock.List)
		stock.GET("/alerts", h.Stock.Alerts)
		stock.GET("/usage", h.Stock.UsageStats)
		stock.GET("/valuation", h.Stock.Valuation)
		stock.POST("/expiry-check", h.Stock.ExpiryCheck)
		stock.GET("/:id", h.Stock.Get)
		stock.PUT("/:id", h.Stock.Update)
		stock.POST("/:id/transactions", h.Stock.Move)
		stock.GET("/:id/transactions", h.Stock.Transactions)
		stock.DELETE("/:id", h.Stock.Delete)
	}

	suppliers := v1.Group("/suppliers")
	{
		suppliers.POST("", h.Supplier.Create)
		suppliers.GET("", h.Supplier.List)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.PUT("/:id", h.Supplier.Update)
		suppliers.DELETE("/:id", h.Supplier.Delete)
	}
}

func registerTrackingRoutes(v1 *gin.RouterGroup, h *Handlers) {
	bills := v1.Group("/bills")
	{
		bills.POST("", h.Billing.Create)
		bills.GET("", h.Billing.List)
		bills.GET("/summary", h.Billing.Summary)
		bills.GET("/:id", h.Billing.Get)
		bills.PUT("/:id", h.Billing.Update)
		bills.POST("/:id/pay", h.Billing.MarkPaid)
		bills.DELETE("/:id", h.Billing.Delete)
	}

	milk := v1.Group("/milk")
	{
		milk.POST("", h.Milk.Record)
		milk.GET("", h.Milk.List)
		milk.GET("/:date", h.Milk.Get)
	}
}
