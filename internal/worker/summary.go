// Package worker runs the in-process background jobs of the game server.
// Currently the only job is the rolling conversation summary, which runs off
// the chat request path so a slow or failing summarizer never delays a reply.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/mkarvon/sleuthline/internal/errors"
	"github.com/mkarvon/sleuthline/internal/models"
)

// summaryWindow is how many trailing messages feed one summary update.
const summaryWindow = 10

// jobTimeout bounds one summarization round trip.
const jobTimeout = 30 * time.Second

type GameStore interface {
	Get(ctx context.Context, id string) (*models.Game, error)
	SetSummary(ctx context.Context, id, summary string) error
}

type MessageStore interface {
	Recent(ctx context.Context, gameID string, n int) ([]models.Message, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, previous string, recent []models.Message) (string, error)
}

// SummaryWorker consumes game ids from a bounded queue and refreshes their
// rolling summaries one at a time.
type SummaryWorker struct {
	queue       chan string
	stopChannel chan struct{}
	doneChannel chan struct{}
	games       GameStore
	messages    MessageStore
	summarizer  Summarizer
	logger      *slog.Logger
}

func NewSummaryWorker(games GameStore, messages MessageStore, summarizer Summarizer, logger *slog.Logger) *SummaryWorker {
	return &SummaryWorker{
		queue:       make(chan string, 64),
		stopChannel: make(chan struct{}),
		doneChannel: make(chan struct{}),
		games:       games,
		messages:    messages,
		summarizer:  summarizer,
		logger:      logger,
	}
}

// Start consumes the queue until Stop is called. It blocks, so it should be
// called in a goroutine.
func (w *SummaryWorker) Start() {
	defer close(w.doneChannel)
	for {
		select {
		case <-w.stopChannel:
			return
		case gameID := <-w.queue:
			w.process(gameID)
		}
	}
}

// Stop stops the worker and waits for the in-flight job to finish. Queued
// jobs are dropped; the next summarization round covers the gap.
func (w *SummaryWorker) Stop() {
	close(w.stopChannel)
	<-w.doneChannel
}

// Enqueue schedules a summary refresh for the game. When the queue is full
// the job is dropped with a warning rather than blocking the chat request.
func (w *SummaryWorker) Enqueue(gameID string) {
	select {
	case w.queue <- gameID:
	default:
		w.logger.LogAttrs(context.Background(), slog.LevelWarn, "summary queue full, dropping job",
			slog.String("game_id", gameID))
	}
}

func (w *SummaryWorker) process(gameID string) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	game, err := w.games.Get(ctx, gameID)
	if err != nil {
		w.logger.LogAttrs(ctx, slog.LevelError, "summary job: load game",
			slog.String("game_id", gameID), errors.SlogError(err))
		return
	}
	recent, err := w.messages.Recent(ctx, gameID, summaryWindow)
	if err != nil {
		w.logger.LogAttrs(ctx, slog.LevelError, "summary job: load messages",
			slog.String("game_id", gameID), errors.SlogError(err))
		return
	}
	if len(recent) == 0 {
		return
	}

	var previous string
	if game.Summary != nil {
		previous = *game.Summary
	}
	summary, err := w.summarizer.Summarize(ctx, previous, recent)
	if err != nil {
		w.logger.LogAttrs(ctx, slog.LevelWarn, "summary job: summarize",
			slog.String("game_id", gameID), errors.SlogError(err))
		return
	}
	if err := w.games.SetSummary(ctx, gameID, summary); err != nil {
		w.logger.LogAttrs(ctx, slog.LevelError, "summary job: store summary",
			slog.String("game_id", gameID), errors.SlogError(err))
		return
	}
	w.logger.LogAttrs(ctx, slog.LevelInfo, "summary updated",
		slog.String("game_id", gameID))
}
