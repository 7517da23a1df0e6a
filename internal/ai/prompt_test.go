package ai

import (
	"testing"

	"github.com/mkarvon/sleuthline/internal/engine"
	"github.com/mkarvon/sleuthline/internal/models"
	"github.com/stretchr/testify/require"
)

func TestColleaguePrompt(t *testing.T) {
	bundle := engine.ContextBundle{
		Persona:         "You are Detective Mercer, on scene.",
		CaseTitle:       "The Velvet Study Affair",
		CaseDescription: "A collector found dead in his study.",
		Suspects: []engine.SuspectProfile{
			{Name: "Edmund Holt", Backstory: "Served the family thirty years."},
		},
		UnlockedEvidence: []engine.EvidenceCard{
			{Name: "Silk handkerchief", Description: "Embroidered C.V.", Location: "coat pocket"},
		},
		NextHint:      "A monogrammed handkerchief sits in the pocket.",
		Summary:       "The player has searched the coat.",
		PlayerMessage: "take the handkerchief",
	}

	prompt := colleaguePrompt(bundle)
	require.Contains(t, prompt, bundle.Persona)
	require.Contains(t, prompt, "The Velvet Study Affair")
	require.Contains(t, prompt, "Edmund Holt")
	require.Contains(t, prompt, "Silk handkerchief (coat pocket): Embroidered C.V.")
	require.Contains(t, prompt, bundle.Summary)
	require.Contains(t, prompt, bundle.NextHint)
	require.NotContains(t, prompt, "take the handkerchief", "player message belongs in the conversation, not the system prompt")
}

func TestColleaguePrompt_noDiscovery(t *testing.T) {
	prompt := colleaguePrompt(engine.ContextBundle{
		Persona:         "You are on scene.",
		CaseTitle:       "Case",
		CaseDescription: "d",
	})
	require.Contains(t, prompt, "uncovers nothing new")
	require.NotContains(t, prompt, "Evidence found so far")
	require.NotContains(t, prompt, "Investigation so far")
}

func TestSummaryPrompt(t *testing.T) {
	require.NotContains(t, summaryPrompt(""), "earlier conversation")
	require.Contains(t, summaryPrompt("The coat was searched."), "The coat was searched.")
}

func TestTranscript(t *testing.T) {
	got := transcript([]models.Message{
		{Sender: models.SenderPlayer, Content: "check the coat"},
		{Sender: models.SenderColleague, Content: "The coat hangs by the door."},
	})
	require.Equal(t, "Detective: check the coat\nColleague: The coat hangs by the door.\n", got)
}
