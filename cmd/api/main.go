package main

import (
	"fmt"
	"net/http"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/config"
	appHTTP "github.com/fieldtrack/fieldtrack-backend-go/internal/handler/http"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/database"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/jwt"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/repository/postgresql"
	authService "github.com/fieldtrack/fieldtrack-backend-go/internal/service/auth"
	checkinService "github.com/fieldtrack/fieldtrack-backend-go/internal/service/checkin"
	reportService "github.com/fieldtrack/fieldtrack-backend-go/internal/service/report"
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

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	clientRepo := postgresql.NewClientRepository(db)
	assignmentRepo := postgresql.NewAssignmentRepository(db)
	checkinRepo := postgresql.NewCheckinRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	authSvc := authService.NewAuthService(userRepo, JWTService)
	checkinSvc := checkinService.NewCheckinService(
		checkinRepo,
		clientRepo,
		assignmentRepo,
		cfg.Database.QueryTimeout,
	)
	reportSvc := reportService.NewReportService(
		reportRepo,
		employeeRepo,
		cfg.Database.QueryTimeout,
	)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	checkinHandler := appHTTP.NewCheckinHandler(checkinSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		checkinHandler,
		reportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
