package game

import "strings"

// Words is the set of recognized command words.
var Words = []string{
	"help", "go", "back", "quit", "inventory", "room",
	"interact", "use", "answer", "map", "stats", "configure",
}

func knownWord(w string) bool {
	for _, k := range Words {
		if k == w {
			return true
		}
	}
	return false
}

// Command is a tokenized player input: an optional command word and up
// to three argument words. The command word is recognized against
// Words; arguments are free-form.
type Command struct {
	words []string
	known bool
}

// Parse tokenizes a raw input line. Tokens are lowercased; everything
// past the fourth word is discarded.
func Parse(line string) Command {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) > 4 {
		fields = fields[:4]
	}
	c := Command{words: fields}
	if len(fields) > 0 {
		c.known = knownWord(fields[0])
	}
	return c
}

// IsUnknown reports whether the input had no recognized command word.
func (c Command) IsUnknown() bool { return !c.known }

// Word returns the command word, empty for blank input.
func (c Command) Word() string { return c.word(0) }

// HasSecondWord reports whether a first argument is present.
func (c Command) HasSecondWord() bool { return len(c.words) > 1 }

// SecondWord returns the first argument word.
func (c Command) SecondWord() string { return c.word(1) }

// HasThirdWord reports whether a second argument is present.
func (c Command) HasThirdWord() bool { return len(c.words) > 2 }

// ThirdWord returns the second argument word.
func (c Command) ThirdWord() string { return c.word(2) }

// HasFourthWord reports whether a third argument is present.
func (c Command) HasFourthWord() bool { return len(c.words) > 3 }

// FourthWord returns the third argument word.
func (c Command) FourthWord() string { return c.word(3) }

func (c Command) word(i int) string {
	if i < len(c.words) {
		return c.words[i]
	}
	return ""
}
