package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/momentumhq/momentum/internal/config"
	"github.com/momentumhq/momentum/internal/db"
	"github.com/momentumhq/momentum/internal/repository"
	"github.com/momentumhq/momentum/internal/service"
	"github.com/momentumhq/momentum/internal/storage"
)

type App struct {
	Cfg             *config.Config
	DB              *sqlx.DB
	AuthService     *service.AuthService
	UserService     *service.UserService
	EmailService    *service.EmailService
	HabitService    *service.HabitService
	GoalService     *service.GoalService
	TaskService     *service.TaskService
	ActivityService *service.ActivityService
	RelationService *service.RelationService
	PomodoroService *service.PomodoroService
	FitnessService  *service.FitnessService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	accountRepository := repository.NewAccountRepository(database)
	sessionRepository := repository.NewSessionRepository(database)
	verificationRepository := repository.NewVerificationRepository(database)
	habitRepository := repository.NewHabitRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	taskRepository := repository.NewTaskRepository(database)
	activityRepository := repository.NewActivityRepository(database)
	relationRepository := repository.NewRelationRepository(database)
	pomodoroRepository := repository.NewPomodoroRepository(database)
	fitnessRepository := repository.NewFitnessRepository(database)

	// Storage
	avatarStorage, err := storage.NewS3Storage(storage.S3Config{
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Endpoint:  cfg.S3Endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	authService := service.NewAuthService(
		userRepository,
		accountRepository,
		sessionRepository,
		verificationRepository,
		emailService,
		cfg.IsProduction(),
		cfg.SessionExpiry,
		cfg.SessionUpdateAge,
		cfg.VerificationExpiry,
	)
	userService := service.NewUserService(userRepository, avatarStorage)
	habitService := service.NewHabitService(habitRepository, activityRepository)
	goalService := service.NewGoalService(goalRepository, activityRepository)
	taskService := service.NewTaskService(taskRepository)
	activityService := service.NewActivityService(activityRepository)
	relationService := service.NewRelationService(relationRepository, userRepository)
	pomodoroService := service.NewPomodoroService(pomodoroRepository)
	fitnessService := service.NewFitnessService(fitnessRepository)

	// Expired sessions and verification codes are rejected on lookup; this
	// sweep keeps the tables from growing forever.
	go cleanupExpired(sessionRepository, verificationRepository)

	return &App{
		Cfg:             cfg,
		DB:              database,
		AuthService:     authService,
		UserService:     userService,
		EmailService:    emailService,
		HabitService:    habitService,
		GoalService:     goalService,
		TaskService:     taskService,
		ActivityService: activityService,
		RelationService: relationService,
		PomodoroService: pomodoroService,
		FitnessService:  fitnessService,
	}, nil
}

func cleanupExpired(sessions repository.SessionRepository, verifications repository.VerificationRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()

		n, err := sessions.DeleteExpired(now)
		if err != nil {
			slog.Error("failed to delete expired sessions", "error", err)
		} else if n > 0 {
			slog.Info("deleted expired sessions", "count", n)
		}

		n, err = verifications.DeleteExpired(now)
		if err != nil {
			slog.Error("failed to delete expired verifications", "error", err)
		} else if n > 0 {
			slog.Info("deleted expired verifications", "count", n)
		}
	}
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
