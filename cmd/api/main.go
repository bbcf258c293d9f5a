package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/teamtrack-hq/timetrack-backend-go/internal/config"
	appHTTP "github.com/teamtrack-hq/timetrack-backend-go/internal/handler/http"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/pkg/cron"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/pkg/database"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/pkg/jwt"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/pkg/sse"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/repository/postgresql"
	trackingService "github.com/teamtrack-hq/timetrack-backend-go/internal/service/tracking"
	timesheetService "github.com/teamtrack-hq/timetrack-backend-go/internal/service/timesheet"
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

	employeeRepo := postgresql.NewEmployeeRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	timeEntryRepo := postgresql.NewTimeEntryRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	activityEventRepo := postgresql.NewActivityEventRepository(db)
	auditLogRepo := postgresql.NewAuditLogRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	hub := sse.NewHub()

	trackingSvc := trackingService.NewTrackingService(
		timeEntryRepo,
		activityEventRepo,
		taskRepo,
		employeeRepo,
		hub,
		trackingService.Config{
			IdleStopThreshold:     cfg.Tracking.IdleStopThreshold,
			AbandonAfter:          cfg.Tracking.AbandonAfter,
			ActivityRecencyWindow: cfg.Tracking.ActivityRecencyWindow,
			LongRunningCeiling:    cfg.Tracking.LongRunningCeiling,
		},
	)
	timesheetSvc := timesheetService.NewTimesheetService(timesheetRepo, employeeRepo, hub)

	trackingHandler := appHTTP.NewTrackingHandler(trackingSvc, auditLogRepo)
	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc, auditLogRepo)
	activityHandler := appHTTP.NewActivityHandler(trackingSvc)
	auditLogHandler := appHTTP.NewAuditLogHandler(auditLogRepo)
	eventsHandler := appHTTP.NewEventsHandler(hub, jwtService)

	scheduler := cron.NewScheduler()
	cron.NewTrackingJobs(trackingSvc, cfg.Tracking).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		jwtService,
		trackingHandler,
		timesheetHandler,
		activityHandler,
		auditLogHandler,
		eventsHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down...")
	if err := server.Close(); err != nil {
		fmt.Println("Shutdown error:", err)
	}
}
