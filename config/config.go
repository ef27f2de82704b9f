package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	InferenceURL  string
	OCRURL        string
	ModelPath     string
	ConfThreshold float64
	IoUThreshold  float64
	InputSize     int
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		InferenceURL:  os.Getenv("INFERENCE_URL"),
		OCRURL:        os.Getenv("OCR_URL"),
		ModelPath:     os.Getenv("MODEL_PATH"),
		ConfThreshold: envFloat("CONF_THRESHOLD", 0.25),
		IoUThreshold:  envFloat("IOU_THRESHOLD", 0.45),
		InputSize:     envInt("INPUT_SIZE", 640),
	}

	return cfg, nil
}

func envFloat(key string, def float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}

func envInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
