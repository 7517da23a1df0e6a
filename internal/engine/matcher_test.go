package engine_test

import (
	"testing"

	"github.com/mkarvon/sleuthline/internal/engine"
	"github.com/mkarvon/sleuthline/internal/models"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	frontier := []models.Step{
		{PathID: "coat", Number: 1, TriggerPhrases: "check coat, examine coat"},
		{PathID: "desk", Number: 1, TriggerPhrases: "check drawer, open drawer"},
	}

	tests := []struct {
		name       string
		message    string
		wantPath   string
		wantPhrase string
		wantMatch  bool
	}{
		{
			name:      "no phrase present",
			message:   "tell me about the suspects",
			wantMatch: false,
		},
		{
			name:       "exact phrase",
			message:    "check coat",
			wantPath:   "coat",
			wantPhrase: "check coat",
			wantMatch:  true,
		},
		{
			name:       "phrase embedded in a sentence",
			message:    "could you please check coat pockets for me",
			wantPath:   "coat",
			wantPhrase: "check coat",
			wantMatch:  true,
		},
		{
			name:       "matching is case-insensitive",
			message:    "CHECK the DRAWER please",
			wantPath:   "desk",
			wantPhrase: "check drawer",
			wantMatch:  true,
		},
		{
			name:       "phrase words may be separated by filler",
			message:    "let's check the coat",
			wantPath:   "coat",
			wantPhrase: "check coat",
			wantMatch:  true,
		},
		{
			name:       "plural forms still match",
			message:    "open the drawers",
			wantPath:   "desk",
			wantPhrase: "open drawer",
			wantMatch:  true,
		},
		{
			name:      "whole words only, not fragments inside longer words",
			message:   "the overcoat hangs on the coatrack",
			wantMatch: false,
		},
		{
			name:      "one phrase word alone is not enough",
			message:   "examine the room",
			wantMatch: false,
		},
		{
			name:       "first frontier step wins when several could match",
			message:    "check the drawer and also examine the coat",
			wantPath:   "coat",
			wantPhrase: "check coat",
			wantMatch:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step, phrase, ok := engine.Match(tt.message, frontier)
			require.Equal(t, tt.wantMatch, ok)
			if !tt.wantMatch {
				return
			}
			require.Equal(t, tt.wantPath, step.PathID)
			require.Equal(t, tt.wantPhrase, phrase)
		})
	}
}

func TestMatch_blankPhrasesNeverMatch(t *testing.T) {
	frontier := []models.Step{
		{PathID: "coat", Number: 1, TriggerPhrases: " ,  , "},
		{PathID: "desk", Number: 1, TriggerPhrases: ""},
	}
	_, _, ok := engine.Match("anything at all", frontier)
	require.False(t, ok)
}

func TestMatch_emptyFrontier(t *testing.T) {
	_, _, ok := engine.Match("check coat", nil)
	require.False(t, ok)
}
