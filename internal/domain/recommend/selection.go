package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"gift-server/internal/domain/completion"
	"gift-server/internal/domain/gift"
)

const (
	selectionTemperature = 0.5
	selectionMaxTokens   = 250
)

// idArrayPattern matches the first JSON array of integers in a completion,
// tolerating surrounding prose and code fences.
var idArrayPattern = regexp.MustCompile(`\[[\d,\s]+\]`)

// Selector narrows an over-full candidate list down to the display limit,
// asking the completion provider to rank candidates by fit and degrading to
// random sampling when the provider misbehaves.
type Selector struct {
	provider completion.Provider
	log      zerolog.Logger
}

func NewSelector(provider completion.Provider, log zerolog.Logger) *Selector {
	return &Selector{provider: provider, log: log}
}

// SelectGifts returns exactly limit gifts when more than limit candidates are
// given, and the candidates unchanged otherwise. It never fails: provider
// errors, unparseable output and unknown ids all degrade to random sampling.
func (s *Selector) SelectGifts(ctx context.Context, criteria gift.Criteria, candidates []*gift.Gift, limit int) []*gift.Gift {
	if len(candidates) <= limit {
		return candidates
	}

	selected := s.selectWithProvider(ctx, criteria, candidates, limit)
	if len(selected) == limit {
		return selected
	}
	if len(selected) > 0 {
		// Partial match: keep what the provider chose, pad with random picks.
		return padWithRandom(selected, candidates, limit)
	}

	s.log.Warn().
		Int("candidates", len(candidates)).
		Msg("gift selection fell back to random sampling")
	return randomSample(candidates, limit)
}

func (s *Selector) selectWithProvider(ctx context.Context, criteria gift.Criteria, candidates []*gift.Gift, limit int) []*gift.Gift {
	var list strings.Builder
	for _, candidate := range candidates {
		fmt.Fprintf(&list, "%d. %s - %s (%s)\n", candidate.ID, candidate.Name, candidate.Description, candidate.PriceRange)
	}

	prompt := completion.Prompt{
		System: "You are a gift selection assistant. Respond with a JSON array of numeric gift ids only, no explanations.",
		User: fmt.Sprintf(
			"Recipient: %s\n\nCandidate gifts:\n%s\nPick the %d most suitable gift ids. Answer with a JSON array like [1, 5, 9].",
			criteria.Description(), list.String(), limit,
		),
	}

	raw, err := s.provider.Complete(ctx, prompt, completion.Options{
		Temperature: selectionTemperature,
		MaxTokens:   selectionMaxTokens,
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("selection completion failed")
		return nil
	}

	match := idArrayPattern.FindString(raw)
	if match == "" {
		s.log.Warn().Str("response", truncate(raw, 200)).Msg("selection response contained no id array")
		return nil
	}

	var ids []uint
	if err := json.Unmarshal([]byte(match), &ids); err != nil {
		return nil
	}

	byID := make(map[uint]*gift.Gift, len(candidates))
	for _, candidate := range candidates {
		byID[candidate.ID] = candidate
	}

	seen := make(map[uint]bool, limit)
	selected := make([]*gift.Gift, 0, limit)
	for _, id := range ids {
		if len(selected) == limit {
			break
		}
		candidate, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		selected = append(selected, candidate)
	}
	return selected
}

// padWithRandom fills selected up to limit with random candidates that are
// not already chosen.
func padWithRandom(selected []*gift.Gift, candidates []*gift.Gift, limit int) []*gift.Gift {
	chosen := make(map[uint]bool, len(selected))
	for _, g := range selected {
		chosen[g.ID] = true
	}

	remaining := make([]*gift.Gift, 0, len(candidates))
	for _, candidate := range candidates {
		if !chosen[candidate.ID] {
			remaining = append(remaining, candidate)
		}
	}

	for _, index := range rand.Perm(len(remaining)) {
		if len(selected) == limit {
			break
		}
		selected = append(selected, remaining[index])
	}
	return selected
}

func randomSample(candidates []*gift.Gift, limit int) []*gift.Gift {
	sample := make([]*gift.Gift, 0, limit)
	for _, index := range rand.Perm(len(candidates)) {
		if len(sample) == limit {
			break
		}
		sample = append(sample, candidates[index])
	}
	return sample
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
