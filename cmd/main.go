package main

import (
	"log"

	"gear-scan-bot/config"
	telegram "gear-scan-bot/internal/api"
	"gear-scan-bot/internal/container"
	"gear-scan-bot/internal/domain/port"
	"gear-scan-bot/internal/infrastructure/ocr"
	"gear-scan-bot/internal/infrastructure/remote"
	"gear-scan-bot/internal/infrastructure/storage"
	"gear-scan-bot/internal/infrastructure/vision"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}

	// Создаём хранилище сессий
	sessionRepo := storage.NewMemorySessionRepository()

	// Выбираем детектор: локальная модель или удалённый сервис
	var detector port.Detector
	if cfg.InferenceURL != "" {
		pipeline := vision.NewPipeline(vision.DecoderConfig{
			Layout:     vision.LayoutSplit,
			NumClasses: len(vision.DefaultLabels),
		}, cfg.ConfThreshold, cfg.IoUThreshold, vision.DefaultLabels)
		detector = remote.NewDetector(cfg.InferenceURL, pipeline)
	} else {
		pipeline := vision.NewPipeline(vision.DecoderConfig{
			Layout:     vision.LayoutFused,
			NumClasses: len(vision.DefaultLabels),
			InputSize:  cfg.InputSize,
		}, cfg.ConfThreshold, cfg.IoUThreshold, vision.DefaultLabels)
		yolo, err := vision.NewYOLODetector(cfg.ModelPath, pipeline, cfg.InputSize)
		if err != nil {
			log.Fatalf("Failed to load model: %v", err)
		}
		detector = yolo
	}

	recognizer := ocr.NewClient(cfg.OCRURL)

	// Собираем сервисы приложения
	appContainer := container.New(sessionRepo, detector, recognizer)

	// Создаём бота
	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	log.Println("Bot is running...")
	if err := bot.Run(); err != nil {
		log.Fatalf("Bot error: %v", err)
	}
}
