package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gear-scan-bot/internal/domain/entity"
	"gear-scan-bot/internal/domain/port"
)

// ErrWrongState возвращается, когда операция не разрешена в текущем
// состоянии сессии.
var ErrWrongState = errors.New("operation is not allowed in the current state")

// Тексты примечаний к результату осмотра.
const (
	NoticeInferenceFailed = "не удалось выполнить распознавание, список детекций пуст"
	NoticeOCRFailed       = "не удалось распознать текст, заполните поля вручную"
	NoticeFlipFlops       = "обнаружены сланцы — допуск запрещён"
)

// ScanService управляет жизненным циклом сканирования: захват кадра,
// просмотр, подтверждение и назначение полей. Одна сессия на пользователя.
type ScanService struct {
	sessions   port.SessionRepository
	detector   port.Detector
	recognizer port.TextRecognizer
	extractor  *FieldExtractor
}

// NewScanService создаёт сервис сканирования.
func NewScanService(
	sessions port.SessionRepository,
	detector port.Detector,
	recognizer port.TextRecognizer,
	extractor *FieldExtractor,
) *ScanService {
	return &ScanService{
		sessions:   sessions,
		detector:   detector,
		recognizer: recognizer,
		extractor:  extractor,
	}
}

// BeginGearCheck начинает проверку экипировки: сначала кадр со
// фронтальной камеры, после подтверждения — с тыловой.
func (s *ScanService) BeginGearCheck(ctx context.Context, userID, chatID int64) (*entity.Session, error) {
	session, err := s.sessions.Get(ctx, userID, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session.Reset()
	session.Flow = entity.FlowGearCheck
	session.Camera = entity.CameraFront
	session.SetState(entity.StateCapturing)

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return session, nil
}

// BeginEquipmentInfo начинает считывание паспортной таблички оборудования.
func (s *ScanService) BeginEquipmentInfo(ctx context.Context, userID, chatID int64) (*entity.Session, error) {
	session, err := s.sessions.Get(ctx, userID, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session.Reset()
	session.Flow = entity.FlowEquipmentInfo
	session.SetState(entity.StateCapturing)

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return session, nil
}

// SubmitPhoto принимает кадр. Пустой кадр молча возвращает сессию в
// ожидание. Ошибка распознавания не роняет процесс: просмотр достигается
// всегда, с пустым списком и примечанием.
func (s *ScanService) SubmitPhoto(ctx context.Context, userID, chatID int64, imageData []byte) (*entity.Session, error) {
	session, err := s.sessions.Get(ctx, userID, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if session.State != entity.StateCapturing {
		return nil, ErrWrongState
	}

	if len(imageData) == 0 {
		session.Reset()
		if err := s.sessions.Save(ctx, session); err != nil {
			return nil, fmt.Errorf("failed to save session: %w", err)
		}
		return session, nil
	}

	session.Image = imageData
	session.Notice = ""

	detections, err := s.detector.Detect(ctx, imageData)
	if err != nil {
		session.Detections = nil
		session.Notice = NoticeInferenceFailed
	} else {
		session.Detections = detections
	}

	session.SetState(entity.StateReviewing)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return session, nil
}

// Retake отбрасывает кадр и результат просмотра, сессия снова ждёт фото.
// Прогресс чек-листа экипировки сохраняется.
func (s *ScanService) Retake(ctx context.Context, userID, chatID int64) (*entity.Session, error) {
	session, err := s.sessions.Get(ctx, userID, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if session.State != entity.StateReviewing {
		return nil, ErrWrongState
	}

	session.DiscardCapture()
	session.SetState(entity.StateCapturing)

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return session, nil
}

// Accept подтверждает кадр и продвигает процесс дальше.
func (s *ScanService) Accept(ctx context.Context, userID, chatID int64) (*entity.Session, error) {
	session, err := s.sessions.Get(ctx, userID, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if session.State != entity.StateReviewing {
		return nil, ErrWrongState
	}

	switch session.Flow {
	case entity.FlowGearCheck:
		s.commitGear(session)
	case entity.FlowEquipmentInfo:
		s.commitEquipment(ctx, session)
	default:
		return nil, ErrWrongState
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return session, nil
}

// commitGear обновляет чек-лист экипировки по детекциям текущего кадра.
// Сначала применяется фильтр релевантности камеры, потом правила.
// Сланцы имеют приоритет над ботинками: допуск блокируется.
func (s *ScanService) commitGear(session *entity.Session) {
	relevant := relevantLabels(session.Camera)
	flipFlops := false
	for _, det := range session.Detections {
		if !relevant[det.Label] {
			continue
		}
		switch det.Label {
		case "helmet":
			session.Gear.Helmet = true
		case "glove":
			session.Gear.Glove = true
		case "boots":
			session.Gear.Boots = true
		case "flip-flops":
			flipFlops = true
		}
	}
	if flipFlops {
		session.Gear.Boots = false
		session.Notice = NoticeFlipFlops
	}

	if session.Camera == entity.CameraFront {
		session.Camera = entity.CameraRear
		session.DiscardCapture()
		session.SetState(entity.StateCapturing)
		return
	}

	session.SetState(entity.StateDone)
}

// relevantLabels какие классы учитываются для каждой камеры:
// фронтальная видит голову и руки, тыловая — обувь.
func relevantLabels(camera entity.CameraPosition) map[string]bool {
	if camera == entity.CameraRear {
		return map[string]bool{"boots": true, "flip-flops": true}
	}
	return map[string]bool{"helmet": true, "glove": true}
}

// commitEquipment запускает OCR, автозаполняет поля и строит очередь
// назначений для оставшихся.
func (s *ScanService) commitEquipment(ctx context.Context, session *entity.Session) {
	lines, err := s.recognizer.RecognizeLines(ctx, session.Image)
	if err != nil {
		session.Notice = NoticeOCRFailed
		lines = nil
	}
	session.Lines = lines

	for _, fv := range s.extractor.Extract(lines) {
		session.Fields[fv.Key] = fv.Value
		session.Consume(fv.Value)
	}

	session.Queue = session.Queue[:0]
	for _, key := range entity.RequiredFields() {
		if _, ok := session.Fields[key]; ok {
			continue
		}
		session.Queue = append(session.Queue, entity.AssignableField{
			Key:         key,
			DisplayName: key.DisplayName(),
		})
	}

	if len(session.Queue) == 0 {
		session.SetState(entity.StateDone)
		return
	}
	session.SetState(entity.StateAssigning)
}

// Assign записывает значение в текущее поле очереди и двигается дальше.
// Значение попадает в использованные и больше не предлагается.
func (s *ScanService) Assign(ctx context.Context, userID, chatID int64, value string) (*entity.Session, error) {
	session, err := s.sessions.Get(ctx, userID, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if session.State != entity.StateAssigning {
		return nil, ErrWrongState
	}

	field, ok := session.CurrentField()
	if !ok {
		return nil, ErrWrongState
	}

	session.Fields[field.Key] = value
	session.Consume(value)
	if !session.AdvanceField() {
		session.SetState(entity.StateDone)
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return session, nil
}

// AssignInput трактует ввод пользователя при назначении: номер
// строки-кандидата либо произвольный текст. Номер вне диапазона
// считается обычным текстом.
func (s *ScanService) AssignInput(ctx context.Context, userID, chatID int64, input string) (*entity.Session, error) {
	session, err := s.sessions.Get(ctx, userID, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	value := input
	if n, err := strconv.Atoi(input); err == nil {
		candidates := session.Candidates()
		if n >= 1 && n <= len(candidates) {
			value = candidates[n-1]
		}
	}

	return s.Assign(ctx, userID, chatID, value)
}

// SkipField пропускает текущее поле очереди без значения.
func (s *ScanService) SkipField(ctx context.Context, userID, chatID int64) (*entity.Session, error) {
	session, err := s.sessions.Get(ctx, userID, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if session.State != entity.StateAssigning {
		return nil, ErrWrongState
	}

	if !session.AdvanceField() {
		session.SetState(entity.StateDone)
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return session, nil
}

// Cancel прерывает процесс из любого состояния и возвращает сессию
// в ожидание команды.
func (s *ScanService) Cancel(ctx context.Context, userID, chatID int64) (*entity.Session, error) {
	session, err := s.sessions.Get(ctx, userID, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session.Reset()
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return session, nil
}
