package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Xfhreall/armaso-pos/config"
	"github.com/Xfhreall/armaso-pos/database"
	"github.com/Xfhreall/armaso-pos/kds"
	"github.com/Xfhreall/armaso-pos/router"
	"github.com/Xfhreall/armaso-pos/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	utils.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Invalid configuration: %v", err)
	}
	if err := utils.SetLogLevel(cfg.LogLevel); err != nil {
		utils.ErrorLogger.Fatalf("Invalid LOG_LEVEL: %v", err)
	}
	if cfg.Release() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to get database handle: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	if err := database.SeedAdmin(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed admin user: %v", err)
	}
	if cfg.SeedMenu {
		if err := database.SeedMenu(db); err != nil {
			utils.ErrorLogger.Fatalf("Failed to seed menu: %v", err)
		}
	}

	r := router.SetupRouter(db, cfg, kds.NewHub())
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	stop()
	utils.InfoLogger.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.Errorf("Forced shutdown: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		utils.ErrorLogger.Errorf("Error closing database: %v", err)
	}
	utils.InfoLogger.Println("Server stopped")
}
