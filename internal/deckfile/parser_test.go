package deckfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomas/studydeck/internal/deckfile"
)

func TestParseDirectives_ValidDirectives(t *testing.T) {
	text := `[Title "Spanish basics"]
[Description "Core vocabulary for beginners"]
[Kind "flashcard"]

hola	hello`

	directives := deckfile.ParseDirectives(text)

	assert.Equal(t, "Spanish basics", directives["Title"])
	assert.Equal(t, "Core vocabulary for beginners", directives["Description"])
	assert.Equal(t, "flashcard", directives["Kind"])
}

func TestParseDirectives_EmptyInput(t *testing.T) {
	directives := deckfile.ParseDirectives("")
	assert.Empty(t, directives)
}

func TestParseDirectives_MalformedDirectives(t *testing.T) {
	text := `[Title Spanish basics]
[Invalid directive]
hola	hello`

	directives := deckfile.ParseDirectives(text)
	assert.Empty(t, directives, "malformed directives should be ignored")
}

func TestParse_CompleteDeck(t *testing.T) {
	text := `[Title "Spanish basics"]
[Description "Core vocabulary"]

# greetings
hola	hello
adios	goodbye

[Kind "question"]
How do you say thank you?	gracias`

	deck, err := deckfile.Parse(text)
	require.NoError(t, err)

	assert.Equal(t, "Spanish basics", deck.Title)
	assert.Equal(t, "Core vocabulary", deck.Description)
	require.Len(t, deck.Items, 3)

	assert.Equal(t, "flashcard", deck.Items[0].Kind)
	assert.Equal(t, "hola", deck.Items[0].Prompt)
	assert.Equal(t, "hello", deck.Items[0].Answer)

	assert.Equal(t, "question", deck.Items[2].Kind)
	assert.Equal(t, "How do you say thank you?", deck.Items[2].Prompt)
	assert.Equal(t, "gracias", deck.Items[2].Answer)
}

func TestParse_MissingTitle(t *testing.T) {
	_, err := deckfile.Parse("hola\thello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Title")
}

func TestParse_LineWithoutTab(t *testing.T) {
	text := `[Title "Broken"]
hola hello`

	_, err := deckfile.Parse(text)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParse_EmptyPromptOrAnswer(t *testing.T) {
	text := "[Title \"Broken\"]\nhola\t"

	_, err := deckfile.Parse(text)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParse_CommentsAndBlankLinesIgnored(t *testing.T) {
	text := `[Title "Sparse"]

# a comment

hola	hello
`

	deck, err := deckfile.Parse(text)
	require.NoError(t, err)
	assert.Len(t, deck.Items, 1)
}
