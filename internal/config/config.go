package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken  string `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN          string `mapstructure:"DB_DSN"`
	GoogleMapsKey  string `mapstructure:"GOOGLE_MAPS_API_KEY"`
	PhoneRegion    string `mapstructure:"PHONE_REGION"`
	MigrationsPath string `mapstructure:"MIGRATIONS_PATH"`
	Environment    string `mapstructure:"ENV"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	// Читаем напрямую из переменных окружения (после godotenv.Load они там)
	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		DBDSN:          os.Getenv("DB_DSN"),
		GoogleMapsKey:  os.Getenv("GOOGLE_MAPS_API_KEY"),
		PhoneRegion:    os.Getenv("PHONE_REGION"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		Environment:    os.Getenv("ENV"),
	}

	// Устанавливаем дефолтные значения
	if cfg.PhoneRegion == "" {
		cfg.PhoneRegion = "IN"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	// Проверяем обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.GoogleMapsKey == "" {
		return nil, fmt.Errorf("GOOGLE_MAPS_API_KEY is required but not set")
	}

	return cfg, nil
}
