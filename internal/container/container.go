package container

import (
	app "gear-scan-bot/internal/application"
	"gear-scan-bot/internal/domain/port"
)

type Container struct {
	ScanService *app.ScanService
	Sessions    port.SessionRepository
}

func New(sessions port.SessionRepository, detector port.Detector, recognizer port.TextRecognizer) *Container {
	scanService := app.NewScanService(sessions, detector, recognizer, app.NewFieldExtractor())

	return &Container{
		ScanService: scanService,
		Sessions:    sessions,
	}
}
