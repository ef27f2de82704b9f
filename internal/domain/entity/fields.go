package entity

// FieldKey — закрытый перечень полей паспорта оборудования.
// Закрытый тип вместо строковых ключей, чтобы опечатка ловилась компилятором.
type FieldKey string

const (
	FieldPressure FieldKey = "pressure"  // рабочее давление
	FieldVoltage  FieldKey = "voltage"   // напряжение
	FieldCurrent  FieldKey = "current"   // ток
	FieldMfgDate  FieldKey = "mfg_date"  // дата выпуска
	FieldModel    FieldKey = "model"     // модель
	FieldSerial   FieldKey = "serial_no" // серийный номер
)

// DisplayName возвращает человекочитаемое имя поля.
func (k FieldKey) DisplayName() string {
	switch k {
	case FieldPressure:
		return "Давление"
	case FieldVoltage:
		return "Напряжение"
	case FieldCurrent:
		return "Ток"
	case FieldMfgDate:
		return "Дата выпуска"
	case FieldModel:
		return "Модель"
	case FieldSerial:
		return "Серийный номер"
	default:
		return string(k)
	}
}

// RequiredFields — фиксированный список полей, которые должны быть
// заполнены по завершении сценария паспорта оборудования.
func RequiredFields() []FieldKey {
	return []FieldKey{
		FieldModel,
		FieldSerial,
		FieldPressure,
		FieldVoltage,
		FieldCurrent,
		FieldMfgDate,
	}
}

// FieldValue — одно распознанное или назначенное вручную значение.
type FieldValue struct {
	Key   FieldKey
	Value string
}

// AssignableField — поле, оставшееся без значения после автоматического
// разбора и ожидающее ручного назначения.
type AssignableField struct {
	Key         FieldKey
	DisplayName string
}
