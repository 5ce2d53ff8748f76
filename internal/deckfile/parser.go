package deckfile

import (
	"fmt"
	"regexp"
	"strings"
)

// Deckfiles are plain text: bracketed directives describe the deck, then one
// item per line with prompt and answer separated by a tab. Lines starting
// with # are comments.
//
//	[Title "Spanish basics"]
//	[Description "Core vocabulary"]
//	[Kind "flashcard"]
//
//	hola	hello
//	adios	goodbye
//
// A later [Kind "..."] directive switches the kind for following items.

var directiveRe = regexp.MustCompile(`\[(\w+)\s+"([^"]+)"\]`)

type Item struct {
	Kind   string
	Prompt string
	Answer string
}

type Deck struct {
	Title       string
	Description string
	Items       []Item
}

// ParseDirectives extracts bracketed directive tags into a map. Malformed
// directive lines are ignored.
func ParseDirectives(text string) map[string]string {
	out := map[string]string{}
	for _, line := range strings.Split(text, "\n") {
		if !strings.HasPrefix(line, "[") {
			continue
		}
		m := directiveRe.FindStringSubmatch(line)
		if len(m) == 3 {
			out[m[1]] = m[2]
		}
	}
	return out
}

// Parse reads a complete deckfile. It fails on item lines without a tab
// separator, reporting the offending line number.
func Parse(text string) (*Deck, error) {
	deck := &Deck{}
	kind := "flashcard"

	for i, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if strings.HasPrefix(trimmed, "[") {
			m := directiveRe.FindStringSubmatch(trimmed)
			if len(m) != 3 {
				continue
			}
			switch m[1] {
			case "Title":
				deck.Title = m[2]
			case "Description":
				deck.Description = m[2]
			case "Kind":
				kind = m[2]
			}
			continue
		}

		prompt, answer, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("line %d: expected tab-separated prompt and answer", i+1)
		}
		prompt = strings.TrimSpace(prompt)
		answer = strings.TrimSpace(answer)
		if prompt == "" || answer == "" {
			return nil, fmt.Errorf("line %d: empty prompt or answer", i+1)
		}

		deck.Items = append(deck.Items, Item{
			Kind:   kind,
			Prompt: prompt,
			Answer: answer,
		})
	}

	if deck.Title == "" {
		return nil, fmt.Errorf("missing Title directive")
	}
	return deck, nil
}
