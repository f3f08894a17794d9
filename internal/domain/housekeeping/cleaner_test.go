package housekeeping

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gift-server/internal/domain/gift"
)

type fakeGiftRepo struct {
	gift.Repository

	gifts   []*gift.Gift
	deleted []uint
}

func (r *fakeGiftRepo) ListAll(_ context.Context) ([]*gift.Gift, error) {
	return r.gifts, nil
}

func (r *fakeGiftRepo) DeleteByIDs(_ context.Context, ids []uint) error {
	r.deleted = append(r.deleted, ids...)
	return nil
}

func entry(id uint, name string, age time.Duration) *gift.Gift {
	return &gift.Gift{
		ID:        id,
		Name:      name,
		BudgetMin: decimal.Zero,
		BudgetMax: decimal.NewFromInt(100),
		CreatedAt: time.Now().Add(-age),
	}
}

func TestCleanDuplicatesKeepsNewest(t *testing.T) {
	repo := &fakeGiftRepo{gifts: []*gift.Gift{
		entry(1, "Кофейная кружка", 48*time.Hour),
		entry(2, "Кофейная кружкa", 24*time.Hour),
		entry(3, "кофейная кружка ", 1*time.Hour),
		entry(4, "Настольная лампа", 12*time.Hour),
	}}
	cleaner := NewCleaner(repo, zerolog.Nop())

	removed, err := cleaner.CleanDuplicates(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.ElementsMatch(t, []uint{1, 2}, repo.deleted)
}

func TestCleanDuplicatesNoFalsePositives(t *testing.T) {
	repo := &fakeGiftRepo{gifts: []*gift.Gift{
		entry(1, "Шахматы", time.Hour),
		entry(2, "Шахматы из дерева ручной работы", 2*time.Hour),
		entry(3, "Аквариум", 3*time.Hour),
		entry(4, "Террариум с растениями", 4*time.Hour),
	}}
	cleaner := NewCleaner(repo, zerolog.Nop())

	removed, err := cleaner.CleanDuplicates(context.Background())

	require.NoError(t, err)
	// "Шахматы" is contained in the longer name so the pair collapses to the
	// newest entry; the terrarium is too far from the aquarium to match.
	assert.Equal(t, 1, removed)
	assert.Equal(t, []uint{2}, repo.deleted)
}

func TestCleanDuplicatesEmptyCatalog(t *testing.T) {
	cleaner := NewCleaner(&fakeGiftRepo{}, zerolog.Nop())

	removed, err := cleaner.CleanDuplicates(context.Background())

	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestSimilarNames(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Плед", "плед", true},
		{"Плед", "Пледы", true},
		{"Термос", "Термосы стальные", true},
		{"Книга", "Кружка", false},
		{"", "Плед", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, similarNames(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}
