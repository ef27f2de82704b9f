package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "gear-scan-bot/internal/application"
	"gear-scan-bot/internal/container"
	"gear-scan-bot/internal/domain/entity"
	"gear-scan-bot/internal/infrastructure/render"
)

const (
	msgStart = `👋 Привет! Я бот для осмотра экипировки и считывания паспортов оборудования.

📋 Команды:
/check — проверка экипировки (два снимка: спереди и сзади)
/info — считать паспортную табличку оборудования
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

🦺 /check — проверка экипировки:
1️⃣ Отправьте фото с фронтальной камеры (каска, перчатки)
2️⃣ Подтвердите результат командой /ok или переснимите /retake
3️⃣ Повторите то же для тыловой камеры (обувь)

🏷 /info — паспорт оборудования:
1️⃣ Отправьте фото таблички
2️⃣ Подтвердите снимок — я распознаю текст и заполню поля
3️⃣ Недостающие поля назначьте вручную: номер строки, свой текст или /skip

💡 Снимайте при хорошем освещении, фото должно быть чётким.

📋 Команды: /check /info /ok /retake /skip /cancel`

	msgFrontPhoto     = "📸 Отправьте фото с фронтальной камеры: должны быть видны каска и перчатки."
	msgRearPhoto      = "📸 Теперь фото с тыловой камеры: должна быть видна обувь."
	msgPlatePhoto     = "📸 Отправьте фото паспортной таблички оборудования."
	msgCancelled      = "❌ Операция отменена. /check или /info — начать заново."
	msgUnknownCommand = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing     = "⏳ Обрабатываю изображение..."
	msgNoScenario     = "ℹ️ Сначала выберите сценарий: /check или /info."
	msgNothingToOk    = "ℹ️ Сейчас нечего подтверждать."
	msgNothingToSkip  = "ℹ️ Сейчас нет поля для пропуска."
	msgDownloadError  = "⚠️ Не удалось скачать фото. Попробуйте ещё раз."
)

// Bot представляет Telegram-бота
type Bot struct {
	api     *tgbotapi.BotAPI
	scans   *app.ScanService
	overlay *render.Overlay
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:     api,
		scans:   c.ScanService,
		overlay: render.NewOverlay(),
	}, nil
}

// Run запускает основной цикл обработки сообщений
func (b *Bot) Run() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	ctx := context.Background()

	for update := range updates {
		if update.Message == nil {
			continue
		}

		b.handleMessage(ctx, update.Message)
	}

	return nil
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg)
		return
	}

	b.handleText(ctx, msg)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID

	switch msg.Command() {
	case "start":
		if _, err := b.scans.Cancel(ctx, userID, chatID); err != nil {
			log.Printf("Error resetting session: %v", err)
		}
		b.sendMessage(chatID, msgStart)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "check":
		if _, err := b.scans.BeginGearCheck(ctx, userID, chatID); err != nil {
			log.Printf("Error starting gear check: %v", err)
			return
		}
		b.sendMessage(chatID, msgFrontPhoto)

	case "info":
		if _, err := b.scans.BeginEquipmentInfo(ctx, userID, chatID); err != nil {
			log.Printf("Error starting equipment info: %v", err)
			return
		}
		b.sendMessage(chatID, msgPlatePhoto)

	case "ok":
		session, err := b.scans.Accept(ctx, userID, chatID)
		if err != nil {
			if errors.Is(err, app.ErrWrongState) {
				b.sendMessage(chatID, msgNothingToOk)
				return
			}
			log.Printf("Error accepting capture: %v", err)
			return
		}
		b.afterAccept(chatID, session)

	case "retake":
		session, err := b.scans.Retake(ctx, userID, chatID)
		if err != nil {
			if errors.Is(err, app.ErrWrongState) {
				b.sendMessage(chatID, msgNothingToOk)
				return
			}
			log.Printf("Error on retake: %v", err)
			return
		}
		b.sendMessage(chatID, capturePrompt(session))

	case "skip":
		session, err := b.scans.SkipField(ctx, userID, chatID)
		if err != nil {
			if errors.Is(err, app.ErrWrongState) {
				b.sendMessage(chatID, msgNothingToSkip)
				return
			}
			log.Printf("Error skipping field: %v", err)
			return
		}
		b.afterAssignStep(chatID, session)

	case "cancel":
		if _, err := b.scans.Cancel(ctx, userID, chatID); err != nil {
			log.Printf("Error cancelling: %v", err)
			return
		}
		b.sendMessage(chatID, msgCancelled)

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}
}

// handlePhoto обрабатывает входящее фото
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID

	b.sendMessage(chatID, msgProcessing)

	// Получаем файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.downloadFile(photo.FileID)
	if err != nil {
		log.Printf("Error downloading photo: %v", err)
		b.sendMessage(chatID, msgDownloadError)
		return
	}

	session, err := b.scans.SubmitPhoto(ctx, userID, chatID, imageData)
	if err != nil {
		if errors.Is(err, app.ErrWrongState) {
			b.sendMessage(chatID, msgNoScenario)
			return
		}
		log.Printf("Error submitting photo: %v", err)
		return
	}

	b.sendReview(chatID, session)
}

// handleText обрабатывает обычный текст: при назначении полей это
// номер кандидата или собственное значение.
func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	session, err := b.scans.AssignInput(ctx, userID, chatID, text)
	if err != nil {
		if errors.Is(err, app.ErrWrongState) {
			b.sendMessage(chatID, msgNoScenario)
			return
		}
		log.Printf("Error assigning value: %v", err)
		return
	}

	b.afterAssignStep(chatID, session)
}

// sendReview показывает результат детекции и предлагает подтвердить
// или переснять кадр.
func (b *Bot) sendReview(chatID int64, session *entity.Session) {
	// Пустой кадр молча возвращает сессию в ожидание.
	if session.State != entity.StateReviewing {
		return
	}

	if len(session.Detections) > 0 {
		if overlayData, err := b.overlay.Draw(session.Image, session.Detections); err == nil {
			photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
				Name:  "detections.jpg",
				Bytes: overlayData,
			})
			if _, err := b.api.Send(photo); err != nil {
				log.Printf("Error sending overlay: %v", err)
			}
		} else {
			log.Printf("Error rendering overlay: %v", err)
		}
	}

	var sb strings.Builder
	if session.Notice != "" {
		sb.WriteString("⚠️ " + session.Notice + "\n\n")
	}
	if len(session.Detections) == 0 {
		sb.WriteString("🔍 Ничего не обнаружено.\n")
	} else {
		sb.WriteString("🔍 Обнаружено:\n")
		for _, det := range session.Detections {
			sb.WriteString(fmt.Sprintf("• %s — %.0f%%\n", russianLabel(det.Label), det.Confidence*100))
		}
	}
	sb.WriteString("\n/ok — подтвердить, /retake — переснять")

	b.sendMessage(chatID, sb.String())
}

// afterAccept решает, что показать после подтверждения кадра.
func (b *Bot) afterAccept(chatID int64, session *entity.Session) {
	switch {
	case session.Flow == entity.FlowGearCheck && session.State == entity.StateCapturing:
		b.sendMessage(chatID, msgRearPhoto)

	case session.Flow == entity.FlowGearCheck && session.State == entity.StateDone:
		b.sendMessage(chatID, gearSummary(session))

	case session.Flow == entity.FlowEquipmentInfo && session.State == entity.StateAssigning:
		if session.Notice != "" {
			b.sendMessage(chatID, "⚠️ "+session.Notice)
		}
		b.sendMessage(chatID, assignPrompt(session))

	case session.Flow == entity.FlowEquipmentInfo && session.State == entity.StateDone:
		b.sendMessage(chatID, fieldsSummary(session))
	}
}

// afterAssignStep показывает следующее поле или итог.
func (b *Bot) afterAssignStep(chatID int64, session *entity.Session) {
	if session.State == entity.StateDone {
		b.sendMessage(chatID, fieldsSummary(session))
		return
	}
	b.sendMessage(chatID, assignPrompt(session))
}

// capturePrompt подсказка, какой кадр ждёт сессия.
func capturePrompt(session *entity.Session) string {
	if session.Flow == entity.FlowEquipmentInfo {
		return msgPlatePhoto
	}
	if session.Camera == entity.CameraRear {
		return msgRearPhoto
	}
	return msgFrontPhoto
}

// assignPrompt строит запрос значения для текущего поля очереди.
func assignPrompt(session *entity.Session) string {
	field, ok := session.CurrentField()
	if !ok {
		return msgNothingToSkip
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("✍️ Укажите значение поля «%s».\n", field.DisplayName))

	candidates := session.Candidates()
	if len(candidates) > 0 {
		sb.WriteString("\nРаспознанные строки:\n")
		for i, line := range candidates {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, line))
		}
		sb.WriteString("\nОтправьте номер строки или свой текст, /skip — пропустить.")
	} else {
		sb.WriteString("\nОтправьте значение текстом, /skip — пропустить.")
	}

	return sb.String()
}

// gearSummary итог проверки экипировки по чек-листу.
func gearSummary(session *entity.Session) string {
	var sb strings.Builder
	sb.WriteString("🦺 Итог проверки экипировки:\n")
	sb.WriteString(checkLine("Каска", session.Gear.Helmet))
	sb.WriteString(checkLine("Перчатки", session.Gear.Glove))
	sb.WriteString(checkLine("Ботинки", session.Gear.Boots))
	sb.WriteString("\n")

	if session.Notice != "" {
		sb.WriteString("⛔ " + session.Notice + "\n")
		return sb.String()
	}
	if session.Gear.Complete() {
		sb.WriteString("✅ Допуск разрешён.")
	} else {
		sb.WriteString("⛔ Экипировка неполная, допуск запрещён.")
	}
	return sb.String()
}

// fieldsSummary итог считывания паспорта оборудования.
func fieldsSummary(session *entity.Session) string {
	var sb strings.Builder
	sb.WriteString("🏷 Паспорт оборудования:\n")
	for _, key := range entity.RequiredFields() {
		value, ok := session.Fields[key]
		if !ok || value == "" {
			value = "—"
		}
		sb.WriteString(fmt.Sprintf("• %s: %s\n", key.DisplayName(), value))
	}
	return sb.String()
}

func checkLine(name string, ok bool) string {
	if ok {
		return "✅ " + name + "\n"
	}
	return "❌ " + name + "\n"
}

// russianLabel переводит метку класса для сообщений пользователю.
func russianLabel(label string) string {
	switch label {
	case "helmet":
		return "каска"
	case "glove":
		return "перчатки"
	case "boots":
		return "ботинки"
	case "flip-flops":
		return "сланцы"
	default:
		return label
	}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}
