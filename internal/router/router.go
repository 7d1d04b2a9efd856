package router

import (
	"time"

	"dukaledger/internal/config"
	"dukaledger/internal/handler"
	"dukaledger/internal/middleware"
	"dukaledger/internal/repository"
	"dukaledger/internal/service"
	"dukaledger/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/bsm/redislock"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, locker *redislock.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	itemRepo := repository.NewItemRepository(db)
	batchRepo := repository.NewBatchRepository(db)
	movementRepo := repository.NewMovementRepository(db)
	lossRepo := repository.NewLossRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	companyRepo := repository.NewCompanyRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	itemSvc := service.NewItemService(itemRepo)
	batchSvc := service.NewBatchService(batchRepo, itemRepo, movementRepo)
	ledgerSvc := service.NewLedgerService(movementRepo, itemRepo)
	lossSvc := service.NewLossService(lossRepo, batchRepo, movementRepo)
	shiftSvc := service.NewShiftService(shiftRepo, service.NewCloseLocker(locker), dispatcher)
	reportSvc := service.NewReportService(itemRepo, batchRepo, lossRepo, shiftRepo)
	companySvc := service.NewCompanyService(companyRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	itemsH := handler.NewItemsHandler(itemSvc)
	batchesH := handler.NewBatchesHandler(batchSvc)
	ledgerH := handler.NewLedgerHandler(ledgerSvc)
	lossesH := handler.NewLossesHandler(lossSvc)
	shiftsH := handler.NewShiftsHandler(shiftSvc)
	reportsH := handler.NewReportsHandler(reportSvc)
	companyH := handler.NewCompanyHandler(companySvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: cashier, clerk, supervisor, admin — declared per-group
		staff := middleware.RequireRole("cashier", "clerk", "supervisor", "admin")
		stockWriters := middleware.RequireRole("clerk", "supervisor", "admin")
		managers := middleware.RequireRole("supervisor", "admin")

		items := v1.Group("/items")
		{
			items.GET("", staff, itemsH.List)
			items.GET("/:id", staff, itemsH.Get)
			items.POST("", managers, itemsH.Create)
			items.GET("/:id/batches", staff, batchesH.ListAvailable)
			items.GET("/:id/balance", staff, ledgerH.Balance)
			items.GET("/:id/ledger", staff, ledgerH.Aggregate)
		}

		batches := v1.Group("/batches", stockWriters)
		{
			batches.POST("", batchesH.Create)
			batches.GET("/:id", batchesH.Get)
			batches.POST("/:id/deplete", batchesH.Deplete)
			batches.POST("/deplete", batchesH.DepleteFIFO)
			batches.PATCH("/:id/adjust", batchesH.Adjust)
		}

		ledger := v1.Group("/ledger")
		{
			ledger.POST("/movements", managers, ledgerH.Append)
			ledger.GET("/movements", staff, ledgerH.List)
		}

		losses := v1.Group("/losses", stockWriters)
		{
			losses.POST("", lossesH.Record)
			losses.GET("/categories", lossesH.CategoryTotals)
		}

		shifts := v1.Group("/shifts")
		{
			shifts.POST("", staff, shiftsH.Open)
			shifts.GET("", managers, shiftsH.List)
			shifts.GET("/:id", staff, shiftsH.Get)
			shifts.POST("/:id/sales", staff, shiftsH.RecordSale)
			shifts.POST("/:id/expenses", staff, shiftsH.RecordExpense)
			shifts.POST("/:id/vouchers", staff, shiftsH.RecordVoucher)
			shifts.POST("/:id/close", staff, shiftsH.Close)
		}

		reports := v1.Group("/reports", managers)
		{
			reports.GET("/stock", reportsH.Stock)
			reports.GET("/losses", reportsH.Losses)
			reports.GET("/shifts", reportsH.Shifts)
		}

		company := v1.Group("/company")
		{
			company.GET("", staff, companyH.Get)
			company.PUT("", middleware.RequireRole("admin"), companyH.Update)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
