package engine

import (
	"strings"
	"unicode"

	"github.com/mkarvon/sleuthline/internal/models"
)

// Match scans the player message against the frontier's trigger phrases.
// A phrase matches when every one of its words appears in the message as a
// whole word, tolerating a trailing plural "s", so "check coat" matches
// "let's check the coat" but not "coatrack". The first frontier step with a
// matching phrase wins; within a step, phrases are tried in catalog order.
// Steps without usable phrases never match.
func Match(message string, frontier []models.Step) (models.Step, string, bool) {
	words := messageWords(message)
	for _, step := range frontier {
		for _, phrase := range step.Phrases() {
			if phraseMatches(phrase, words) {
				return step, phrase, true
			}
		}
	}
	return models.Step{}, "", false
}

func phraseMatches(phrase string, words map[string]bool) bool {
	for _, w := range strings.Fields(phrase) {
		if !words[w] && !words[w+"s"] {
			return false
		}
	}
	return true
}

// messageWords tokenizes the message into lowercase words. Anything that is
// not a letter or digit is a word boundary.
func messageWords(message string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(strings.ToLower(message), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		words[w] = true
	}
	return words
}
