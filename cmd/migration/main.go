package main

import (
	"context"
	"flag"
	"log"
	"theracare-service/internal/app/config"
	"theracare-service/internal/app/drivers/database"
	"theracare-service/internal/app/drivers/logger"
	"theracare-service/internal/migration"
)

func main() {
	direction := flag.String("direction", "up", "migration direction, up or down")
	steps := flag.Int("steps", 0, "number of migrations to roll back, 0 rolls back all of them")
	flag.Parse()

	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLogger.Sync()

	db := database.NewPostgresDB(context.Background(), driverConfig)
	defer db.Close()

	var err error
	switch *direction {
	case "up":
		_, err = migration.Up(db, zapLogger)
	case "down":
		_, err = migration.Down(db, zapLogger, *steps)
	default:
		log.Fatalf("Unknown migration direction %q", *direction)
	}
	if err != nil {
		log.Fatalf("Error executing migration: %v", err)
	}
}
