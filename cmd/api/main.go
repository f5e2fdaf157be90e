package main

import (
	"context"
	"fmt"
	"time"

	"isoko-backend/internal/application/lifecycle"
	"isoko-backend/internal/config"
	"isoko-backend/internal/infrastructure/database"
	"isoko-backend/internal/interfaces/router"
	"isoko-backend/internal/jobs"

	listsvc "isoko-backend/internal/application/listings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("config load: " + err.Error())
	}

	app, db, rdb, err := router.CreateApp(cfg)
	if err != nil {
		panic("app create: " + err.Error())
	}

	// Verify connections before printing startup logs.
	sqlDB, err := db.DB()
	if err != nil {
		panic("Postgres: get DB: " + err.Error())
	}
	if err := sqlDB.Ping(); err != nil {
		panic("Postgres connection failed: " + err.Error())
	}
	fmt.Println("Postgres connected")

	if err := database.AutoMigrate(db); err != nil {
		panic("migrate: " + err.Error())
	}

	if rdb != nil {
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			panic("Redis connection failed: " + err.Error())
		}
		fmt.Println("Redis connected")
	}

	cacheTTL := time.Duration(cfg.ListingCacheTTLSec) * time.Second
	lifecycleService := &lifecycle.Service{DB: db, Cache: listsvc.NewCache(rdb, cacheTTL)}
	expiryJob := jobs.NewExpiryJob(lifecycleService, cfg.ExpiryJobSchedule)
	if err := expiryJob.SetupAndStart(); err != nil {
		panic("expiry job: " + err.Error())
	}
	defer expiryJob.Stop()

	fmt.Printf("Server running at http://localhost:%s\n", cfg.Port)
	fmt.Printf("Health check: http://localhost:%s/health/json\n", cfg.Port)
	fmt.Println("---")

	if err := app.Listen(":" + cfg.Port); err != nil {
		panic(err)
	}
}
