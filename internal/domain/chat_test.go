package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfidence(t *testing.T) {
	for in, want := range map[string]Confidence{
		"":        ConfidenceNone,
		"low":     ConfidenceLow,
		" Medium": ConfidenceMedium,
		"HIGH":    ConfidenceHigh,
	} {
		got, err := ParseConfidence(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseConfidence("certain")
	assert.ErrorIs(t, err, ErrInvalidConfidence)
}

func TestMessagesAreNotAliased(t *testing.T) {
	sources := []string{"AgroDept"}
	m := NewBotMessage("answer", sources, ConfidenceMedium)

	sources[0] = "changed"
	assert.Equal(t, []string{"AgroDept"}, m.Sources())

	got := m.Sources()
	got[0] = "changed"
	assert.Equal(t, []string{"AgroDept"}, m.Sources())
}

func TestUserMessageHasNoMetadata(t *testing.T) {
	m := NewUserMessage("hello")

	assert.Equal(t, RoleUser, m.Role())
	assert.Empty(t, m.Sources())
	assert.Equal(t, ConfidenceNone, m.Confidence())
	assert.False(t, m.Confidence().Valid())
}
