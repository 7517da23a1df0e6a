package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateChatMessage(t *testing.T) {
	tests := []struct {
		name        string
		message     string
		want        string
		wantProblem bool
	}{
		{name: "plain message", message: "check the coat", want: "check the coat"},
		{name: "whitespace trimmed", message: "  check the coat \n", want: "check the coat"},
		{name: "two letters is enough", message: "ok", want: "ok"},
		{name: "single character", message: "a", wantProblem: true},
		{name: "whitespace only", message: " \t ", wantProblem: true},
		{name: "digits and punctuation only", message: "12:30?", wantProblem: true},
		{name: "over the length limit", message: strings.Repeat("a", 501), wantProblem: true},
		{name: "exactly at the length limit", message: strings.Repeat("a", 500), want: strings.Repeat("a", 500)},
		{name: "multibyte letters count as characters", message: "tutki takki", want: "tutki takki"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, problem := validateChatMessage(tt.message)
			if tt.wantProblem {
				require.NotEmpty(t, problem)
				return
			}
			require.Empty(t, problem)
			require.Equal(t, tt.want, got)
		})
	}
}
