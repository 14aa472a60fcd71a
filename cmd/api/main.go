package main

import (
	"fmt"
	"net/http"

	"github.com/arventa/attendance-backend-go/internal/config"
	appHTTP "github.com/arventa/attendance-backend-go/internal/handler/http"
	"github.com/arventa/attendance-backend-go/internal/pkg/cron"
	"github.com/arventa/attendance-backend-go/internal/pkg/database"
	"github.com/arventa/attendance-backend-go/internal/pkg/jwt"
	"github.com/arventa/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/arventa/attendance-backend-go/internal/service/attendance"
	reportService "github.com/arventa/attendance-backend-go/internal/service/report"
	"github.com/arventa/attendance-backend-go/internal/service/status"
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

	workScheduleRepo := postgresql.NewWorkScheduleRepository(db)
	attendanceEventRepo := postgresql.NewAttendanceEventRepository(db)
	exceptionRequestRepo := postgresql.NewExceptionRequestRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	resolver := status.NewResolver(cfg.Attendance.ToleranceMinutes)
	recorderSvc := attendanceService.NewRecorderService(
		workScheduleRepo,
		attendanceEventRepo,
		resolver,
		cfg.Attendance.Worksites,
	)
	reportSvc := reportService.NewReportService(
		workScheduleRepo,
		attendanceEventRepo,
		exceptionRequestRepo,
		resolver,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(recorderSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		JWTService,
		attendanceHandler,
		reportHandler,
	)

	scheduler := cron.NewScheduler()
	cacheJobs := cron.NewStatusCacheJobs(workScheduleRepo, attendanceEventRepo, exceptionRequestRepo, resolver)
	cacheJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
