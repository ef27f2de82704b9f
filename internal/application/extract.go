package app

import (
	"regexp"
	"strings"
	"unicode"

	"gear-scan-bot/internal/domain/entity"
)

// fieldRule правило автозаполнения: поле и шаблон его значения в строке.
type fieldRule struct {
	key entity.FieldKey
	re  *regexp.Regexp
}

// FieldExtractor автоматически заполняет поля паспорта по строкам OCR.
// Правила независимы, для каждого поля побеждает первое совпадение
// в порядке строк. Строки не изменяются и проходят дальше как есть.
type FieldExtractor struct {
	rules []fieldRule
}

// NewFieldExtractor создаёт экстрактор со стандартным набором правил.
func NewFieldExtractor() *FieldExtractor {
	// \b в RE2 работает только для ASCII, поэтому конец юнита отмечается
	// явным разделителем, который потом срезается с совпадения.
	return &FieldExtractor{
		rules: []fieldRule{
			{entity.FieldPressure, regexp.MustCompile(`(?i)\b\d+(?:[.,]\d+)?\s*(?:psi|bar|кпа|мпа|атм)(?:[^\p{L}\p{N}]|$)`)},
			{entity.FieldVoltage, regexp.MustCompile(`(?i)\b\d+(?:[.,]\d+)?\s*(?:kv|mv|кв|мв|v|в)(?:[^\p{L}\p{N}]|$)`)},
			{entity.FieldCurrent, regexp.MustCompile(`(?i)\b\d+(?:[.,]\d+)?\s*(?:ma|ма|a|а)(?:[^\p{L}\p{N}]|$)`)},
			// Дата выпуска — только если строка целиком является датой.
			{entity.FieldMfgDate, regexp.MustCompile(`^\d{4}[-/](?:0?[1-9]|1[0-2])(?:[-/](?:0?[1-9]|[12]\d|3[01]))?$`)},
		},
	}
}

// Extract возвращает автозаполненные поля. Значение поля — совпавшая
// подстрока. Результат детерминирован при фиксированном порядке строк.
func (e *FieldExtractor) Extract(lines []string) []entity.FieldValue {
	values := make([]entity.FieldValue, 0, len(e.rules))
	for _, rule := range e.rules {
		for _, line := range lines {
			match := rule.re.FindString(line)
			if match == "" {
				continue
			}
			values = append(values, entity.FieldValue{
				Key:   rule.key,
				Value: trimValue(match),
			})
			break
		}
	}
	return values
}

// trimValue срезает разделитель и пробелы по краям совпадения.
func trimValue(match string) string {
	return strings.TrimRightFunc(strings.TrimSpace(match), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
