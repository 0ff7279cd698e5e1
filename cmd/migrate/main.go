package main

import (
	"context"
	"fmt"
	"time"

	"hotelbooking/internal/store/factory"
	"hotelbooking/pkg/config"
)

const JobName = "store-migration"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()
	cfg := config.Load(JobName)
	cfg.Log.Info("Starting store migration job", "store", cfg.StoreDriver)
	defer cfg.GracefulShutdown()
	if err := factory.Migrate(ctx, cfg); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}
	fmt.Println("Migration completed successfully.")
}
