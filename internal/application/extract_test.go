package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gear-scan-bot/internal/domain/entity"
)

func TestFieldExtractor_AutoFillsKnownUnits(t *testing.T) {
	e := NewFieldExtractor()

	values := e.Extract([]string{"175 PSI", "220 В", "10 мА", "2023-05"})
	require.Len(t, values, 4)

	byKey := fieldMap(values)
	require.Equal(t, "175 PSI", byKey[entity.FieldPressure])
	require.Equal(t, "220 В", byKey[entity.FieldVoltage])
	require.Equal(t, "10 мА", byKey[entity.FieldCurrent])
	require.Equal(t, "2023-05", byKey[entity.FieldMfgDate])
}

func TestFieldExtractor_FirstMatchWins(t *testing.T) {
	e := NewFieldExtractor()

	values := e.Extract([]string{"10 bar", "20 bar"})
	require.Len(t, values, 1)
	require.Equal(t, "10 bar", values[0].Value)
}

func TestFieldExtractor_DateIsAnchoredToLineStart(t *testing.T) {
	e := NewFieldExtractor()

	values := e.Extract([]string{"SN 2023-05-01", "2023-05-01"})
	byKey := fieldMap(values)
	require.Equal(t, "2023-05-01", byKey[entity.FieldMfgDate])

	values = e.Extract([]string{"SN 2023-05-01", "2023-05-01 партия 7"})
	_, ok := fieldMap(values)[entity.FieldMfgDate]
	require.False(t, ok)
}

func TestFieldExtractor_PressureLineDoesNotLeakIntoCurrent(t *testing.T) {
	e := NewFieldExtractor()

	// «атм» начинается с «а», но это не ток.
	values := e.Extract([]string{"5 атм"})
	byKey := fieldMap(values)
	require.Equal(t, "5 атм", byKey[entity.FieldPressure])
	_, ok := byKey[entity.FieldCurrent]
	require.False(t, ok)
}

func TestFieldExtractor_ValueIsMatchedSubstring(t *testing.T) {
	e := NewFieldExtractor()

	values := e.Extract([]string{"Рабочее давление: 1,6 МПа max"})
	byKey := fieldMap(values)
	require.Equal(t, "1,6 МПа", byKey[entity.FieldPressure])
}

func TestFieldExtractor_Deterministic(t *testing.T) {
	e := NewFieldExtractor()
	lines := []string{"MODEL X100", "175 PSI", "12 V", "5 A"}

	first := e.Extract(lines)
	second := e.Extract(lines)
	require.Equal(t, first, second)
}

func TestFieldExtractor_NoMatches(t *testing.T) {
	e := NewFieldExtractor()
	require.Empty(t, e.Extract([]string{"MODEL X100", "SN 0042"}))
	require.Empty(t, e.Extract(nil))
}

func fieldMap(values []entity.FieldValue) map[entity.FieldKey]string {
	out := make(map[entity.FieldKey]string, len(values))
	for _, fv := range values {
		out[fv.Key] = fv.Value
	}
	return out
}
