package entity

// ScanState — состояние сценария сканирования в диалоге.
type ScanState string

const (
	StateIdle      ScanState = "idle"           // сценарий не запущен
	StateCapturing ScanState = "awaiting_photo" // ожидание фото
	StateReviewing ScanState = "reviewing"      // проверка результатов детекции
	StateAssigning ScanState = "assigning"      // ручное назначение полей
	StateDone      ScanState = "done"           // сценарий завершён
)

// FlowKind — вид сценария сканирования.
type FlowKind string

const (
	FlowNone          FlowKind = ""
	FlowGearCheck     FlowKind = "gear_check"     // проверка экипировки
	FlowEquipmentInfo FlowKind = "equipment_info" // паспорт оборудования
)

// CameraPosition — какая камера использовалась для снимка.
// От неё зависит, какие классы детекций учитываются при фиксации.
type CameraPosition string

const (
	CameraFront CameraPosition = "front" // фронтальная: каска, перчатки
	CameraRear  CameraPosition = "rear"  // тыловая: ботинки, сланцы
)

// GearChecklist хранит итог проверки экипировки по двум снимкам.
type GearChecklist struct {
	Helmet bool // каска обнаружена на фронтальном снимке
	Glove  bool // перчатки обнаружены на фронтальном снимке
	Boots  bool // ботинки обнаружены на тыловом снимке
}

// Complete сообщает, что все обязательные предметы экипировки на месте.
func (g GearChecklist) Complete() bool {
	return g.Helmet && g.Glove && g.Boots
}

// Session — всё изменяемое состояние одного незавершённого сканирования.
// Ровно одна сессия на пользователя; создаётся при старте сценария,
// сбрасывается при пересъёмке, отмене и завершении.
type Session struct {
	UserID int64 // Telegram User ID
	ChatID int64 // Telegram Chat ID

	Flow   FlowKind
	State  ScanState
	Camera CameraPosition

	Image      []byte      // принятый снимок текущего шага
	Detections []Detection // детекции последнего прохода
	Notice     string      // сообщение об ошибке или блокирующее предупреждение

	Gear GearChecklist // итог сценария проверки экипировки

	Lines    []string            // сырые строки OCR принятого снимка
	Fields   map[FieldKey]string // уже полученные значения полей
	Queue    []AssignableField   // очередь полей для ручного назначения
	Consumed map[string]struct{} // значения, уже использованные назначением
}

// NewSession создаёт пустую сессию в начальном состоянии.
func NewSession(userID, chatID int64) *Session {
	s := &Session{
		UserID: userID,
		ChatID: chatID,
	}
	s.Reset()
	return s
}

// Reset сбрасывает всё состояние сканирования, кроме идентификаторов.
func (s *Session) Reset() {
	s.Flow = FlowNone
	s.State = StateIdle
	s.Camera = CameraFront
	s.Image = nil
	s.Detections = nil
	s.Notice = ""
	s.Gear = GearChecklist{}
	s.Lines = nil
	s.Fields = make(map[FieldKey]string)
	s.Queue = nil
	s.Consumed = make(map[string]struct{})
}

// SetState обновляет состояние сценария.
func (s *Session) SetState(state ScanState) {
	s.State = state
}

// DiscardCapture убирает снимок и детекции перед пересъёмкой.
func (s *Session) DiscardCapture() {
	s.Image = nil
	s.Detections = nil
	s.Notice = ""
	s.Lines = nil
}

// Consume отмечает значение как использованное, чтобы оно больше
// не предлагалось кандидатом при ручном назначении.
func (s *Session) Consume(value string) {
	if value == "" {
		return
	}
	s.Consumed[value] = struct{}{}
}

// CurrentField возвращает поле, ожидающее назначения, если оно есть.
func (s *Session) CurrentField() (AssignableField, bool) {
	if len(s.Queue) == 0 {
		return AssignableField{}, false
	}
	return s.Queue[0], true
}

// AdvanceField убирает текущее поле из очереди и сообщает,
// остались ли ещё поля.
func (s *Session) AdvanceField() bool {
	if len(s.Queue) > 0 {
		s.Queue = s.Queue[1:]
	}
	return len(s.Queue) > 0
}

// Candidates возвращает строки OCR, ещё не использованные назначением.
func (s *Session) Candidates() []string {
	out := make([]string, 0, len(s.Lines))
	for _, line := range s.Lines {
		if _, used := s.Consumed[line]; used {
			continue
		}
		out = append(out, line)
	}
	return out
}
