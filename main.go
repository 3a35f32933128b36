// @title Portfolio Backend API
// @version 1.0
// @description Backend server for the portfolio site: curriculum, learning progress, newsletter and coding playground.

// @license.name MIT

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"github.com/riaz37/portfolio-backend/internal/app"
	"github.com/riaz37/portfolio-backend/internal/config"
	"github.com/riaz37/portfolio-backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	migrate := flag.Bool("migrate", false, "force database migrations on startup (even in release mode)")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration finished, exiting")
		return
	}

	application.Run()
}
