package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		word    string
		second  string
		unknown bool
	}{
		{name: "simple command", input: "go north", word: "go", second: "north"},
		{name: "uppercase folded", input: "GO North", word: "go", second: "north"},
		{name: "extra whitespace", input: "  inventory   pickup  ", word: "inventory", second: "pickup"},
		{name: "unknown word", input: "dance", word: "dance", unknown: true},
		{name: "blank input", input: "   ", word: "", unknown: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := Parse(tc.input)
			assert.Equal(t, tc.word, cmd.Word())
			assert.Equal(t, tc.second, cmd.SecondWord())
			assert.Equal(t, tc.unknown, cmd.IsUnknown())
		})
	}
}

func TestParseTruncatesToFourWords(t *testing.T) {
	cmd := Parse("inventory pickup coin 3 extra words here")
	assert.Equal(t, "inventory", cmd.Word())
	assert.Equal(t, "pickup", cmd.SecondWord())
	assert.Equal(t, "coin", cmd.ThirdWord())
	assert.Equal(t, "3", cmd.FourthWord())
}

func TestDifficultyChance(t *testing.T) {
	for _, name := range DifficultyNames() {
		c, ok := DifficultyChance(name)
		assert.True(t, ok)
		assert.Greater(t, c, 0)
	}
	_, ok := DifficultyChance("nightmare")
	assert.False(t, ok)
}
