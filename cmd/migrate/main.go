package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"collections-backend/internal/config"
	"collections-backend/internal/infrastructure/migration"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Println("[ERROR]", err)
		os.Exit(1)
	}
	if err := migration.MigrateCommand(cfg.MigrateDSN()).Execute(); err != nil {
		fmt.Println("[ERROR]", err)
		os.Exit(1)
	}
}
