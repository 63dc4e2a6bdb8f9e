package command

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestParse_Empty(t *testing.T) {
	result := Parse("   ")
	assert.Equal(t, "", result.Command)
	assert.Nil(t, result.Args)
	assert.Equal(t, 1, result.Count)
}

func TestParse_SingleWord(t *testing.T) {
	result := Parse("look")
	assert.Equal(t, "look", result.Command)
	assert.Nil(t, result.Args)
	assert.Equal(t, "", result.RawArgs)
}

func TestParse_LowercasesWords(t *testing.T) {
	assert.Equal(t, "north", Parse("NORTH").Command)
}

func TestParse_SingleLetterKeepsCase(t *testing.T) {
	assert.Equal(t, "E", Parse("E").Command)
	assert.Equal(t, "e", Parse("e").Command)
}

func TestParse_WithArgs(t *testing.T) {
	result := Parse("  throw   swim   fins  ")
	assert.Equal(t, "throw", result.Command)
	assert.Equal(t, []string{"swim", "fins"}, result.Args)
	assert.Equal(t, "swim   fins", result.RawArgs)
}

func TestParse_RepeatCount(t *testing.T) {
	result := Parse("3 n")
	assert.Equal(t, "n", result.Command)
	assert.Equal(t, 3, result.Count)

	result = Parse("250 wait")
	assert.Equal(t, maxRepeat, result.Count)

	result = Parse("2 use 2 rocks")
	assert.Equal(t, "use", result.Command)
	assert.Equal(t, "2 rocks", result.RawArgs)

	result = Parse("7")
	assert.Equal(t, "7", result.Command, "a lone number is a command word")
	assert.Equal(t, 1, result.Count)
}

func TestPropertyParseCountBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(-1000, 1000).Draw(t, "n")
		word := rapid.StringMatching(`[a-z]{2,10}`).Draw(t, "word")
		result := Parse(rapid.SampledFrom([]string{"", " "}).Draw(t, "pad") + strconv.Itoa(n) + " " + word)
		if result.Count < 1 || result.Count > maxRepeat {
			t.Fatalf("count %d out of range for %d", result.Count, n)
		}
		if result.Command != word {
			t.Fatalf("command %q, want %q", result.Command, word)
		}
	})
}

func TestPropertyParseNonEmptyInputHasCommand(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		word := rapid.StringMatching(`[A-Za-z]{1,10}`).Draw(t, "word")
		if Parse(word).Command == "" {
			t.Fatalf("non-empty input %q produced empty command", word)
		}
	})
}
