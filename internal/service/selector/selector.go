package selector

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/domain"
)

// Selector picks the content for a delivery. It has no side effects:
// callers record seen-state after a successful delivery.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New builds a Selector around the given random source. The source is
// injected so planning tests can pin the sequence.
func New(rng *rand.Rand) *Selector {
	return &Selector{rng: rng}
}

// Select resolves the sentence for one delivery.
//
// With a forced message ID (an override fired) the ID is looked up
// verbatim in the current config; a stale ID referencing removed
// content yields nil rather than an error. Otherwise one sentence is
// drawn uniformly at random from those not yet seen; an exhausted pool
// also yields nil. A nil result means the caller suppresses delivery.
func (s *Selector) Select(ctx context.Context, cfg *domain.ScheduleConfig, seenIDs map[string]struct{}, forcedMessageID string) *domain.Sentence {
	if forcedMessageID != "" {
		sentence := cfg.SentenceByID(forcedMessageID)
		if sentence == nil {
			slog.WarnContext(ctx, "forced message ID absent from current config",
				slog.String("message_id", forcedMessageID),
			)
		}
		return sentence
	}

	available := make([]*domain.Sentence, 0, len(cfg.Sentences))
	for i := range cfg.Sentences {
		if _, seen := seenIDs[cfg.Sentences[i].ID]; !seen {
			available = append(available, &cfg.Sentences[i])
		}
	}

	if len(available) == 0 {
		slog.InfoContext(ctx, "content pool exhausted",
			slog.Int("sentence_count", len(cfg.Sentences)),
			slog.Int("seen_count", len(seenIDs)),
		)
		return nil
	}

	s.mu.Lock()
	idx := s.rng.IntN(len(available))
	s.mu.Unlock()

	return available[idx]
}
