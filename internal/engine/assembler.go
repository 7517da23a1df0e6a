package engine

import (
	"github.com/mkarvon/sleuthline/internal/models"
)

// ContextBundle is the material handed to the narrative generator. Fields
// are allow-listed: suspect guilt, locked evidence and trigger phrases must
// never appear here, so the bundle is built from explicit per-field copies
// rather than passing model structs through.
type ContextBundle struct {
	Persona          string
	CaseTitle        string
	CaseDescription  string
	Suspects         []SuspectProfile
	UnlockedEvidence []EvidenceCard
	NextHint         string
	Summary          string
	RecentMessages   []TranscriptLine
	PlayerMessage    string
}

// SuspectProfile is a suspect as the generator may see them.
type SuspectProfile struct {
	Name      string
	Backstory string
}

// EvidenceCard is a piece of unlocked evidence as the generator may see it.
type EvidenceCard struct {
	Name        string
	Description string
	Location    string
}

// TranscriptLine is one message of the recent conversation window.
type TranscriptLine struct {
	Sender  models.Sender
	Content string
}

// Assemble builds the generation context. nextHint carries the narrative
// description of a freshly matched step, or "" when nothing matched.
func Assemble(
	c *models.Case,
	suspects []models.Suspect,
	unlocked []models.Evidence,
	nextHint string,
	summary string,
	recent []models.Message,
	playerMessage string,
) ContextBundle {
	bundle := ContextBundle{
		Persona:         c.Persona,
		CaseTitle:       c.Title,
		CaseDescription: c.Description,
		NextHint:        nextHint,
		Summary:         summary,
		PlayerMessage:   playerMessage,
	}
	for _, s := range suspects {
		bundle.Suspects = append(bundle.Suspects, SuspectProfile{
			Name:      s.Name,
			Backstory: s.Backstory,
		})
	}
	for _, e := range unlocked {
		bundle.UnlockedEvidence = append(bundle.UnlockedEvidence, EvidenceCard{
			Name:        e.Name,
			Description: e.Description,
			Location:    e.Location,
		})
	}
	for _, m := range recent {
		bundle.RecentMessages = append(bundle.RecentMessages, TranscriptLine{
			Sender:  m.Sender,
			Content: m.Content,
		})
	}
	return bundle
}
