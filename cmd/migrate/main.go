package main

import (
	"context"
	"os"

	"checkout-service/config"
	"checkout-service/internal/migrate"
	"checkout-service/internal/platform/database"
	"checkout-service/internal/platform/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := config.IsDevEnv(os.Getenv("ENV"))
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)

	db := database.ConnectDBForMigration(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	if err := migrate.MigrateCheckoutDB(context.Background(), db, log, migrate.DefaultMigrateOptions()); err != nil {
		log.Fatal("Ошибка при выполнении миграции", zap.Error(err))
	}

	log.Info("Миграция успешно завершена")
}
