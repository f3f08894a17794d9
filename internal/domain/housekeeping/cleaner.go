// Package housekeeping contains scheduled catalog maintenance jobs.
package housekeeping

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"gift-server/internal/domain/gift"
	"gift-server/internal/utils/platformerrors"
)

// Names within this edit distance are considered the same gift.
const maxNameDistance = 3

// Cleaner removes near-duplicate catalog entries that accumulate when the
// generator produces slight variations of existing gifts.
type Cleaner struct {
	repo gift.Repository
	log  zerolog.Logger
}

func NewCleaner(repo gift.Repository, log zerolog.Logger) *Cleaner {
	return &Cleaner{repo: repo, log: log}
}

// CleanDuplicates groups gifts by name similarity, keeps the newest entry of
// each group and deletes the rest. It returns the number of deleted gifts.
func (c *Cleaner) CleanDuplicates(ctx context.Context) (int, error) {
	gifts, err := c.repo.ListAll(ctx)
	if err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list gifts for duplicate cleanup")
	}

	var doomed []uint
	claimed := make(map[uint]bool, len(gifts))
	for i, candidate := range gifts {
		if claimed[candidate.ID] {
			continue
		}
		group := []*gift.Gift{candidate}
		for _, other := range gifts[i+1:] {
			if claimed[other.ID] {
				continue
			}
			if similarNames(candidate.Name, other.Name) {
				group = append(group, other)
			}
		}
		if len(group) < 2 {
			continue
		}

		keeper := newest(group)
		for _, member := range group {
			claimed[member.ID] = true
			if member.ID != keeper.ID {
				doomed = append(doomed, member.ID)
				c.log.Debug().
					Str("removed", member.Name).
					Str("kept", keeper.Name).
					Msg("removing duplicate gift")
			}
		}
	}

	if len(doomed) == 0 {
		return 0, nil
	}
	if err := c.repo.DeleteByIDs(ctx, doomed); err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete duplicate gifts")
	}

	c.log.Info().Int("removed", len(doomed)).Msg("duplicate cleanup finished")
	return len(doomed), nil
}

// similarNames reports whether two gift names are close enough to be
// duplicates: one contains the other, or their edit distance is small.
func similarNames(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	return levenshtein(a, b) <= maxNameDistance
}

func newest(group []*gift.Gift) *gift.Gift {
	keeper := group[0]
	for _, member := range group[1:] {
		if member.CreatedAt.After(keeper.CreatedAt) ||
			(member.CreatedAt.Equal(keeper.CreatedAt) && member.ID > keeper.ID) {
			keeper = member
		}
	}
	return keeper
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
