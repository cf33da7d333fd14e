package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"ActivityPublisher/internal/cursor"
	"ActivityPublisher/internal/domain"
	"ActivityPublisher/internal/ports"
)

// PipelineDeps wires all driven adapters into the run-cycle orchestration.
type PipelineDeps struct {
	Cursor  ports.CursorStore
	Source  ports.ItemSource
	Engine  *Engine
	Archive ports.ResultArchive
	Logger  *slog.Logger
}

// Pipeline implements one fetch-and-process cycle: load the cursor once,
// fetch, process items strictly sequentially, save the cursor once.
type Pipeline struct {
	cursor  ports.CursorStore
	source  ports.ItemSource
	engine  *Engine
	archive ports.ResultArchive
	logger  *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		cursor:  deps.Cursor,
		source:  deps.Source,
		engine:  deps.Engine,
		archive: deps.Archive,
		logger:  deps.Logger,
	}
}

// RunCycle executes one full cycle. The cursor is the only state shared
// across the run: read once here, written once at the end, and only when the
// max accepted timestamp strictly exceeds it.
func (p *Pipeline) RunCycle(ctx context.Context) error {
	if p.source == nil || p.engine == nil {
		return nil
	}

	runID := uuid.New().String()
	log := p.log().With("run_id", runID)

	since, err := p.cursor.Load()
	if err != nil {
		return fmt.Errorf("load cursor: %w", err)
	}
	log.Info("cycle started", "cursor", since.Format(cursor.TimestampLayout))

	items, err := p.source.FetchNew(ctx, since)
	if err != nil {
		log.Warn("fetch failed, treating as empty", "error", err)
		items = nil
	}
	if len(items) == 0 {
		log.Info("no new items")
		return nil
	}

	maxSeen := since
	okCount := 0
	for _, item := range items {
		result := p.engine.ProcessItem(ctx, item)

		if item.Timestamp.After(maxSeen) {
			maxSeen = item.Timestamp
		}
		if len(result.Errors) == 0 {
			okCount++
		}
		log.Info("item processed",
			"item_id", item.ID,
			"classifications", labelStrings(result.Classifications),
			"published", outcomeCount(result),
			"errors", len(result.Errors))

		if p.archive != nil {
			if err := p.archive.SaveResult(ctx, runID, result); err != nil {
				log.Warn("archive result failed", "item_id", item.ID, "error", err)
			}
		}
	}

	if maxSeen.After(since) {
		if err := p.cursor.Save(maxSeen); err != nil {
			log.Warn("save cursor failed", "error", err)
		} else {
			log.Info("cursor advanced", "cursor", maxSeen.Format(cursor.TimestampLayout))
		}
	}

	log.Info("cycle finished", "items", len(items), "ok", okCount, "with_errors", len(items)-okCount)
	return nil
}

func outcomeCount(result domain.PipelineResult) int {
	count := 0
	for _, outcomes := range result.Outcomes {
		for _, outcome := range outcomes {
			if outcome.Class == domain.OutcomeOK {
				count++
			}
		}
	}
	return count
}

func labelStrings(labels []domain.Label) []string {
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		out = append(out, string(label))
	}
	return out
}

func (p *Pipeline) log() *slog.Logger {
	if p.logger != nil {
		return p.logger
	}
	return slog.Default()
}
