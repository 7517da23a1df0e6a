package engine_test

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/mkarvon/sleuthline/internal/engine"
	"github.com/mkarvon/sleuthline/internal/models"
	"github.com/stretchr/testify/require"
)

func TestAssemble(t *testing.T) {
	c := &models.Case{
		ID:          "velvet-study",
		Title:       "The Velvet Study Affair",
		Description: "A collector found dead in his study.",
		Persona:     "You are Detective Mercer, on scene.",
	}
	suspects := []models.Suspect{
		{ID: "butler", Name: "Edmund Holt", Backstory: "Served the family thirty years.", Guilty: false},
		{ID: "nephew", Name: "Casper Vance", Backstory: "Deep in gambling debt.", Guilty: true},
	}
	unlocked := []models.Evidence{
		{ID: "handkerchief", Name: "Silk handkerchief", Description: "Embroidered C.V.", Location: "coat pocket"},
	}
	summary := "The player has searched the coat."
	recent := []models.Message{
		{Sender: models.SenderPlayer, Content: "check the coat"},
		{Sender: models.SenderColleague, Content: "The coat hangs by the door."},
	}

	bundle := engine.Assemble(c, suspects, unlocked, "A monogrammed handkerchief sits in the pocket.", summary, recent, "take the handkerchief")

	require.Equal(t, c.Persona, bundle.Persona)
	require.Equal(t, c.Title, bundle.CaseTitle)
	require.Len(t, bundle.Suspects, 2)
	require.Equal(t, "Casper Vance", bundle.Suspects[1].Name)
	require.Len(t, bundle.UnlockedEvidence, 1)
	require.Equal(t, "coat pocket", bundle.UnlockedEvidence[0].Location)
	require.Equal(t, summary, bundle.Summary)
	require.Len(t, bundle.RecentMessages, 2)
	require.Equal(t, "take the handkerchief", bundle.PlayerMessage)
}

// The allow-list policy: for any catalog and progress combination, the
// serialized bundle must never leak suspect guilt, locked evidence content
// or trigger phrases.
func TestAssemble_allowListProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for round := 0; round < 50; round++ {
		c := &models.Case{
			ID:          "case",
			Title:       fmt.Sprintf("Case %d", round),
			Description: "A test of the filtering policy.",
			Persona:     "You are on scene.",
		}

		var suspects []models.Suspect
		guilty := rng.Intn(3)
		for i := 0; i < 3; i++ {
			suspects = append(suspects, models.Suspect{
				ID:        fmt.Sprintf("suspect-%d", i),
				Name:      fmt.Sprintf("Suspect %d", i),
				Backstory: fmt.Sprintf("backstory %d", i),
				Guilty:    i == guilty,
			})
		}

		var (
			unlocked []models.Evidence
			leaked   []string
		)
		for i := 0; i < 4; i++ {
			ev := models.Evidence{
				ID:          fmt.Sprintf("evidence-%d-%d", round, i),
				Name:        fmt.Sprintf("item %d", i),
				Description: fmt.Sprintf("locked-detail-%d-%d", round, i),
			}
			if rng.Intn(2) == 0 {
				unlocked = append(unlocked, ev)
			} else {
				leaked = append(leaked, ev.Description)
			}
		}

		phrase := fmt.Sprintf("secret-trigger-%d", round)
		paths := []models.Path{
			{ID: "p1", Steps: []models.Step{
				{PathID: "p1", Number: 1, TriggerPhrases: phrase, Narrative: "a clue appears"},
			}},
		}
		frontier := engine.Frontier(paths, nil)
		require.Len(t, frontier, 1)

		bundle := engine.Assemble(c, suspects, unlocked, frontier[0].Narrative, "so far so good", nil, "look around")
		raw, err := json.Marshal(bundle)
		require.NoError(t, err)
		serialized := string(raw)

		require.NotContains(t, serialized, "Guilty")
		require.NotContains(t, serialized, "guilty")
		require.NotContains(t, serialized, phrase)
		for _, description := range leaked {
			require.NotContains(t, serialized, description)
		}
		for _, ev := range unlocked {
			require.True(t, strings.Contains(serialized, ev.Description), "unlocked evidence should be present")
		}
	}
}
