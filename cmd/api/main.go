package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gama-center/ponto-backend-go/internal/config"
	appHTTP "github.com/gama-center/ponto-backend-go/internal/handler/http"
	"github.com/gama-center/ponto-backend-go/internal/pkg/database"
	"github.com/gama-center/ponto-backend-go/internal/pkg/geo"
	"github.com/gama-center/ponto-backend-go/internal/pkg/jwt"
	"github.com/gama-center/ponto-backend-go/internal/pkg/sse"
	"github.com/gama-center/ponto-backend-go/internal/pkg/storage"
	"github.com/gama-center/ponto-backend-go/internal/pkg/token"
	"github.com/gama-center/ponto-backend-go/internal/repository/postgresql"
	auditService "github.com/gama-center/ponto-backend-go/internal/service/audit"
	"github.com/gama-center/ponto-backend-go/internal/service/file"
	holidayService "github.com/gama-center/ponto-backend-go/internal/service/holiday"
	justificationService "github.com/gama-center/ponto-backend-go/internal/service/justification"
	punchService "github.com/gama-center/ponto-backend-go/internal/service/punch"
	reportService "github.com/gama-center/ponto-backend-go/internal/service/report"
	settingService "github.com/gama-center/ponto-backend-go/internal/service/setting"
	userService "github.com/gama-center/ponto-backend-go/internal/service/user"
)

const appName = "ponto-gama"

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

	punchRepo := postgresql.NewPunchRepository(db)
	userRepo := postgresql.NewUserRepository(db)
	justificationRepo := postgresql.NewJustificationRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	settingRepo := postgresql.NewSettingRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileService := file.NewFileService(fileStorage)
	hub := sse.NewHub()

	tokens := token.NewManager(cfg.Challenge.Lifetime, cfg.Challenge.MaxAttempts, time.Now)
	tokens.Start()
	defer tokens.Stop()

	auditSvc := auditService.NewAuditService(auditRepo, userRepo, appName)
	justificationSvc := justificationService.NewJustificationService(justificationRepo, fileService, hub, auditSvc)

	watcher := justificationService.NewWatcher(justificationRepo, hub, justificationService.DefaultPollInterval)
	defer watcher.Stop()

	geofence := punchService.Geofence{
		Target: geo.Location{
			Latitude:  cfg.Geofence.Latitude,
			Longitude: cfg.Geofence.Longitude,
		},
		DefaultRadiusKm: cfg.Geofence.DefaultRadiusKm,
	}
	punchSvc := punchService.NewPunchService(
		punchRepo,
		userRepo,
		settingRepo,
		justificationSvc,
		tokens,
		auditSvc,
		geofence,
	)
	reportSvc := reportService.NewReportService(punchRepo, holidayRepo)
	settingSvc := settingService.NewSettingService(settingRepo, auditSvc, cfg.Geofence.DefaultRadiusKm)
	userSvc := userService.NewUserService(userRepo, fileService, auditSvc)
	holidaySvc := holidayService.NewHolidayService(holidayRepo, auditSvc)

	handlers := appHTTP.Handlers{
		Punch:         appHTTP.NewPunchHandler(punchSvc),
		Token:         appHTTP.NewTokenHandler(tokens),
		Justification: appHTTP.NewJustificationHandler(justificationSvc),
		Report:        appHTTP.NewReportHandler(reportSvc),
		Holiday:       appHTTP.NewHolidayHandler(holidaySvc),
		User:          appHTTP.NewUserHandler(userSvc),
		Setting:       appHTTP.NewSettingHandler(settingSvc),
		Stream:        appHTTP.NewStreamHandler(hub, watcher),
		File:          appHTTP.NewFileHandler(fileService),
	}

	router := appHTTP.NewRouter(JWTService, cfg.App.AllowedOrigins, handlers)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	srv := &http.Server{Addr: addr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Println("Server starting on", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed:", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("Server shutdown:", err)
	}
	auditSvc.ClearCache()
}
