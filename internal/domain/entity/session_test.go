package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSession_DefaultState(t *testing.T) {
	s := NewSession(1, 10)
	require.Equal(t, int64(1), s.UserID)
	require.Equal(t, int64(10), s.ChatID)
	require.Equal(t, StateIdle, s.State)
	require.Equal(t, FlowNone, s.Flow)
	require.NotNil(t, s.Fields)
	require.NotNil(t, s.Consumed)
}

func TestSession_ResetClearsEverythingButIdentity(t *testing.T) {
	s := NewSession(1, 10)
	s.Flow = FlowEquipmentInfo
	s.SetState(StateAssigning)
	s.Image = []byte{1, 2, 3}
	s.Lines = []string{"a"}
	s.Fields[FieldModel] = "X100"
	s.Consume("X100")
	s.Gear.Helmet = true

	s.Reset()

	require.Equal(t, int64(1), s.UserID)
	require.Equal(t, StateIdle, s.State)
	require.Equal(t, FlowNone, s.Flow)
	require.Nil(t, s.Image)
	require.Nil(t, s.Lines)
	require.Empty(t, s.Fields)
	require.Empty(t, s.Consumed)
	require.False(t, s.Gear.Helmet)
}

func TestSession_CandidatesExcludeConsumed(t *testing.T) {
	s := NewSession(1, 10)
	s.Lines = []string{"175 PSI", "MODEL X100", "SN 0042"}

	s.Consume("175 PSI")
	require.Equal(t, []string{"MODEL X100", "SN 0042"}, s.Candidates())

	// Пустое значение не попадает в использованные.
	s.Consume("")
	require.Len(t, s.Candidates(), 2)
}

func TestSession_FieldQueue(t *testing.T) {
	s := NewSession(1, 10)
	s.Queue = []AssignableField{
		{Key: FieldModel, DisplayName: FieldModel.DisplayName()},
		{Key: FieldSerial, DisplayName: FieldSerial.DisplayName()},
	}

	field, ok := s.CurrentField()
	require.True(t, ok)
	require.Equal(t, FieldModel, field.Key)

	require.True(t, s.AdvanceField())
	field, ok = s.CurrentField()
	require.True(t, ok)
	require.Equal(t, FieldSerial, field.Key)

	require.False(t, s.AdvanceField())
	_, ok = s.CurrentField()
	require.False(t, ok)
}

func TestGearChecklist_Complete(t *testing.T) {
	require.False(t, GearChecklist{Helmet: true, Glove: true}.Complete())
	require.True(t, GearChecklist{Helmet: true, Glove: true, Boots: true}.Complete())
}
