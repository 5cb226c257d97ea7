package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSheet(t *testing.T) {
	s, err := NewSheet(SheetSpec{
		Name:  "adventurer",
		MaxHP: 20,
		AC:    12,
		Attributes: map[string]int{
			"strength": 14,
			"wisdom":   10,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "adventurer", s.Name())

	lines := s.View()
	require.NotEmpty(t, lines)
	assert.Equal(t, "Adventurer", lines[0])
	assert.Contains(t, lines, "HP: 20/20")
	assert.Contains(t, lines, "AC: 12")
	assert.Contains(t, lines, "Strength: 14")

	_, err = NewSheet(SheetSpec{MaxHP: 10})
	assert.Error(t, err, "empty name")
}
