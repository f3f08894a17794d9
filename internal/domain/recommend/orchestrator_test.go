package recommend

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gift-server/internal/domain/completion"
	"gift-server/internal/domain/gift"
	"gift-server/internal/domain/tag"
)

type panicProvider struct{}

func (panicProvider) Complete(context.Context, completion.Prompt, completion.Options) (string, error) {
	panic("provider exploded")
}

func newTestOrchestrator(provider completion.Provider, repo *memoryGiftRepo, images ImageFinder) (*Orchestrator, *StatusRegistry) {
	registry := newTestRegistry()
	catalog := gift.NewCatalogService(repo)
	generator := NewGenerator(provider, catalog, &stubTranslator{}, images, registry, zerolog.Nop())
	orchestrator := NewOrchestrator(
		catalog,
		tag.NewExtractor(provider, zerolog.Nop()),
		NewSelector(provider, zerolog.Nop()),
		generator,
		registry,
		images,
		Options{DisplayLimit: 8, DefaultAICount: 3, MaxAICount: 10},
		zerolog.Nop(),
	)
	return orchestrator, registry
}

func seedCatalog(n int, min, max int64, tags ...string) []*gift.Gift {
	gifts := make([]*gift.Gift, 0, n)
	for i := 0; i < n; i++ {
		gifts = append(gifts, &gift.Gift{
			Name:      "Подарок " + strings.Repeat("и", i+1),
			BudgetMin: decimal.NewFromInt(min),
			BudgetMax: decimal.NewFromInt(max),
			Tags:      tags,
		})
	}
	return gifts
}

func waitTerminal(t *testing.T, registry *StatusRegistry, requestID string) Snapshot {
	t.Helper()
	var snapshot Snapshot
	require.Eventually(t, func() bool {
		snapshot = registry.Poll(requestID)
		return snapshot.State.Terminal()
	}, 2*time.Second, 5*time.Millisecond)
	return snapshot
}

func TestRecommendWithoutAI(t *testing.T) {
	repo := newMemoryGiftRepo(seedCatalog(4, 500, 1500)...)
	orchestrator, _ := newTestOrchestrator(&stubProvider{}, repo, &stubImageFinder{})

	result, err := orchestrator.Recommend(context.Background(), Request{
		Criteria: gift.Criteria{Budget: "500-2000"},
	})

	require.NoError(t, err)
	assert.Len(t, result.Gifts, 4)
	assert.Equal(t, AIStatusNotStarted, result.AIStatus)
	assert.Empty(t, result.RequestID)
}

func TestRecommendLaunchesGenerationAndReportsImmediately(t *testing.T) {
	provider := &stubProvider{response: ideasResponse}
	repo := newMemoryGiftRepo(seedCatalog(2, 500, 1500)...)
	orchestrator, registry := newTestOrchestrator(provider, repo, &stubImageFinder{})

	result, err := orchestrator.Recommend(context.Background(), Request{
		Criteria:    gift.Criteria{Budget: "1000"},
		UseAI:       true,
		AIGiftCount: 3,
	})

	require.NoError(t, err)
	assert.Equal(t, AIStatusGenerating, result.AIStatus)
	assert.True(t, strings.HasPrefix(result.RequestID, "req_"), "got %q", result.RequestID)
	assert.Len(t, result.Gifts, 2)

	snapshot := waitTerminal(t, registry, result.RequestID)
	assert.Equal(t, StateCompleted, snapshot.State)
	assert.Len(t, snapshot.Gifts, 3)

	// Terminal state was consumed by waitTerminal.
	assert.Equal(t, StatePending, orchestrator.PollStatus(result.RequestID).State)
}

func TestRecommendEmptyCatalogStillGenerates(t *testing.T) {
	provider := &stubProvider{response: ideasResponse}
	orchestrator, registry := newTestOrchestrator(provider, newMemoryGiftRepo(), &stubImageFinder{})

	result, err := orchestrator.Recommend(context.Background(), Request{
		Criteria: gift.Criteria{Budget: "99999-100000"},
		UseAI:    true,
	})

	require.NoError(t, err)
	assert.Empty(t, result.Gifts)
	assert.Equal(t, AIStatusGenerating, result.AIStatus)

	snapshot := waitTerminal(t, registry, result.RequestID)
	assert.Equal(t, StateCompleted, snapshot.State)
	assert.Len(t, snapshot.Gifts, 3, "default count applies when none requested")
}

func TestRecommendClampsRequestedCount(t *testing.T) {
	provider := &stubProvider{response: ideasResponse}
	orchestrator, registry := newTestOrchestrator(provider, newMemoryGiftRepo(), &stubImageFinder{})

	result, err := orchestrator.Recommend(context.Background(), Request{
		UseAI:       true,
		AIGiftCount: 50,
	})
	require.NoError(t, err)

	snapshot := waitTerminal(t, registry, result.RequestID)
	assert.Equal(t, 10, snapshot.Total, "requested count is clamped to the maximum")
}

func TestRecommendPanicInGenerationYieldsErrorStatus(t *testing.T) {
	repo := newMemoryGiftRepo(seedCatalog(1, 100, 200)...)
	orchestrator, registry := newTestOrchestrator(panicProvider{}, repo, &stubImageFinder{})

	result, err := orchestrator.Recommend(context.Background(), Request{
		Criteria: gift.Criteria{Budget: "150"},
		UseAI:    true,
	})
	require.NoError(t, err)

	snapshot := waitTerminal(t, registry, result.RequestID)
	assert.Equal(t, StateError, snapshot.State)
	assert.NotEmpty(t, snapshot.Error)
}

func TestRecommendFillsMissingImages(t *testing.T) {
	repo := newMemoryGiftRepo(seedCatalog(2, 500, 1500)...)
	orchestrator, _ := newTestOrchestrator(&stubProvider{}, repo, &stubImageFinder{url: "https://images.example/fill.jpg"})

	result, err := orchestrator.Recommend(context.Background(), Request{
		Criteria: gift.Criteria{Budget: "1000"},
	})

	require.NoError(t, err)
	for _, g := range result.Gifts {
		require.NotNil(t, g.ImageURL)
		assert.Equal(t, "https://images.example/fill.jpg", *g.ImageURL)
	}

	// The resolved URLs were persisted, not just decorated onto the response.
	missing, err := repo.FindMissingImages(context.Background())
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestRecommendNarrowsOverfullCandidatesByTags(t *testing.T) {
	tagged := seedCatalog(9, 500, 1500, "birthday")
	untagged := &gift.Gift{
		Name:      "Безликий подарок",
		BudgetMin: decimal.NewFromInt(500),
		BudgetMax: decimal.NewFromInt(1500),
	}
	repo := newMemoryGiftRepo(append(tagged, untagged)...)
	// Provider errors force both rule-based tags and random selection.
	provider := &stubProvider{err: errors.New("model offline")}
	orchestrator, _ := newTestOrchestrator(provider, repo, &stubImageFinder{})

	result, err := orchestrator.Recommend(context.Background(), Request{
		Criteria: gift.Criteria{Budget: "1000", Occasion: "birthday"},
	})

	require.NoError(t, err)
	assert.Len(t, result.Gifts, 8)
	for _, g := range result.Gifts {
		assert.NotEqual(t, "Безликий подарок", g.Name)
	}
}

func TestRefreshImagesBackfillsCatalog(t *testing.T) {
	withImage := "https://images.example/old.jpg"
	repo := newMemoryGiftRepo(
		&gift.Gift{Name: "С картинкой", ImageURL: &withImage},
		&gift.Gift{Name: "Без картинки"},
		&gift.Gift{Name: "Тоже без"},
	)
	orchestrator, _ := newTestOrchestrator(&stubProvider{}, repo, &stubImageFinder{url: "https://images.example/new.jpg"})

	updated, err := orchestrator.RefreshImages(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, updated)
	missing, err := repo.FindMissingImages(context.Background())
	require.NoError(t, err)
	assert.Empty(t, missing)
}
