package main

import (
	"fmt"
	"net/http"

	"github.com/worklens/worklens-backend-go/internal/config"
	appHTTP "github.com/worklens/worklens-backend-go/internal/handler/http"
	"github.com/worklens/worklens-backend-go/internal/pkg/cron"
	"github.com/worklens/worklens-backend-go/internal/pkg/database"
	"github.com/worklens/worklens-backend-go/internal/pkg/jwt"
	"github.com/worklens/worklens-backend-go/internal/repository/postgresql"
	accessService "github.com/worklens/worklens-backend-go/internal/service/access"
	attendanceService "github.com/worklens/worklens-backend-go/internal/service/attendance"
	dashboardService "github.com/worklens/worklens-backend-go/internal/service/dashboard"
	directoryService "github.com/worklens/worklens-backend-go/internal/service/directory"
	productivityService "github.com/worklens/worklens-backend-go/internal/service/productivity"
	syncService "github.com/worklens/worklens-backend-go/internal/service/sync"
	"github.com/worklens/worklens-backend-go/internal/source/hris"
	"github.com/worklens/worklens-backend-go/internal/source/warehouse"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeCacheRepo := postgresql.NewEmployeeCacheRepository(db.Pool)
	productivityCacheRepo := postgresql.NewProductivityCacheRepository(db.Pool)

	directorySource := hris.NewClient(cfg.Directory)
	warehouseSource := warehouse.NewClient(cfg.Warehouse)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	dirService := directoryService.NewDirectoryService(directorySource, employeeCacheRepo)
	resolver := accessService.NewResolver(dirService, cfg.Access.HRAdminEmails)
	calculator := attendanceService.NewCalculator(cfg.Compliance)
	complianceService := attendanceService.NewAttendanceService(resolver, dirService, warehouseSource, calculator)
	summaryService := productivityService.NewProductivityService(resolver, dirService, warehouseSource, productivityCacheRepo)
	overviewService := dashboardService.NewDashboardService(resolver, complianceService, summaryService)

	accessHandler := appHTTP.NewAccessHandler(resolver)
	reportHandler := appHTTP.NewReportHandler(complianceService, summaryService)
	dashboardHandler := appHTTP.NewDashboardHandler(overviewService)

	if cfg.Sync.Enabled {
		syncSvc := syncService.NewSyncService(directorySource, employeeCacheRepo, warehouseSource, productivityCacheRepo)
		scheduler := cron.NewScheduler()
		syncSvc.RegisterJobs(scheduler, cfg.Sync.Interval)
		scheduler.Start()
		defer scheduler.Stop()
	}

	router := appHTTP.NewRouter(
		JWTService,
		cfg.App.FrontendURL,
		cfg.App.Env,
		accessHandler,
		reportHandler,
		dashboardHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
