package ai

import (
	"fmt"
	"strings"

	"github.com/mkarvon/sleuthline/internal/engine"
	"github.com/mkarvon/sleuthline/internal/models"
)

// colleaguePrompt renders the system prompt for the colleague reply. It only
// ever sees the allow-listed bundle, so guilt, locked evidence and trigger
// phrases cannot leak into the model context.
func colleaguePrompt(bundle engine.ContextBundle) string {
	var b strings.Builder

	b.WriteString(bundle.Persona)
	b.WriteString("\n\nYou are texting with a detective who is investigating remotely. ")
	b.WriteString("Stay in character. Answer in at most three short paragraphs. ")
	b.WriteString("Describe only what you can plausibly observe at the scene. ")
	b.WriteString("Never decide or hint who is responsible; let the detective draw conclusions.\n")

	fmt.Fprintf(&b, "\nThe case: %s\n%s\n", bundle.CaseTitle, bundle.CaseDescription)

	if len(bundle.Suspects) > 0 {
		b.WriteString("\nPersons of interest:\n")
		for _, s := range bundle.Suspects {
			fmt.Fprintf(&b, "- %s: %s\n", s.Name, s.Backstory)
		}
	}

	if len(bundle.UnlockedEvidence) > 0 {
		b.WriteString("\nEvidence found so far:\n")
		for _, e := range bundle.UnlockedEvidence {
			if e.Location != "" {
				fmt.Fprintf(&b, "- %s (%s): %s\n", e.Name, e.Location, e.Description)
			} else {
				fmt.Fprintf(&b, "- %s: %s\n", e.Name, e.Description)
			}
		}
	}

	if bundle.Summary != "" {
		fmt.Fprintf(&b, "\nInvestigation so far: %s\n", bundle.Summary)
	}

	if bundle.NextHint != "" {
		fmt.Fprintf(&b, "\nThe detective's latest instruction pays off. Work this discovery into your reply naturally: %s\n", bundle.NextHint)
	} else {
		b.WriteString("\nThe latest instruction uncovers nothing new. Respond helpfully without inventing discoveries.\n")
	}

	return b.String()
}

// summaryPrompt renders the system prompt for the rolling summary update.
func summaryPrompt(previous string) string {
	var b strings.Builder
	b.WriteString("Summarize the investigation conversation below in three to five sentences. ")
	b.WriteString("Keep established facts, discovered evidence and the detective's working theories. ")
	b.WriteString("Write in the past tense, third person.\n")
	if previous != "" {
		fmt.Fprintf(&b, "\nSummary of the earlier conversation: %s\n", previous)
	}
	return b.String()
}

func transcript(messages []models.Message) string {
	var b strings.Builder
	for _, m := range messages {
		speaker := "Detective"
		if m.Sender == models.SenderColleague {
			speaker = "Colleague"
		}
		fmt.Fprintf(&b, "%s: %s\n", speaker, m.Content)
	}
	return b.String()
}
