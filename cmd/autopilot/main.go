package main

import (
	"log"
	"os"

	"github.com/guilhermetechmakers/autopilot-studio/db"
	"github.com/guilhermetechmakers/autopilot-studio/internal/auth"
	"github.com/guilhermetechmakers/autopilot-studio/internal/logger"
	"github.com/guilhermetechmakers/autopilot-studio/internal/monitoring"
	"github.com/guilhermetechmakers/autopilot-studio/internal/router"
	"github.com/guilhermetechmakers/autopilot-studio/internal/scheduler"
	"github.com/guilhermetechmakers/autopilot-studio/internal/services"
	"github.com/guilhermetechmakers/autopilot-studio/internal/ws"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	zlog, err := logger.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	if err := auth.InitJWTSecret(); err != nil {
		zlog.Fatal("Failed to initialize JWT secret", zap.Error(err))
	}

	database, err := db.ConnectDatabase(os.Getenv("DATABASE_URL"))

	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.MigrateDatabase(database); err != nil {
		zlog.Fatal("Failed to migrate database", zap.Error(err))
	}

	store := monitoring.NewStore(database, zlog)
	hub := ws.NewHub(zlog)
	notifier := services.NewNotifier(zlog)

	sched := scheduler.NewScheduler(database, store, hub, zlog)

	if err := sched.Start(); err != nil {
		zlog.Fatal("Failed to start probe scheduler", zap.Error(err))
	}
	defer sched.Stop()

	r := router.NewRouter(router.Deps{
		DB:        database,
		Store:     store,
		Hub:       hub,
		Scheduler: sched,
		Notifier:  notifier,
		Logger:    zlog,
	})

	port := os.Getenv("PORT")

	if port == "" {
		port = "3000"
		zlog.Info("PORT not set, defaulting to 3000")
	}

	if err := r.Run(":" + port); err != nil {
		zlog.Fatal("Failed to start server", zap.Error(err))
	}
}
