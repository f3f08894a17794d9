package recommend

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gift-server/internal/domain/gift"
)

// memoryGiftRepo is an in-memory gift.Repository for tests.
type memoryGiftRepo struct {
	mu     sync.Mutex
	nextID uint
	gifts  []*gift.Gift

	insertErr    error
	insertErrFor map[string]error
}

func newMemoryGiftRepo(seed ...*gift.Gift) *memoryGiftRepo {
	repo := &memoryGiftRepo{nextID: 1}
	for _, g := range seed {
		copied := *g
		copied.ID = repo.nextID
		repo.nextID++
		repo.gifts = append(repo.gifts, &copied)
	}
	return repo
}

func (r *memoryGiftRepo) FindByBudgetOverlap(_ context.Context, min, max decimal.Decimal) ([]*gift.Gift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*gift.Gift
	for _, g := range r.gifts {
		if g.BudgetMin.LessThanOrEqual(max) && g.BudgetMax.GreaterThanOrEqual(min) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *memoryGiftRepo) Insert(_ context.Context, g *gift.Gift) (*gift.Gift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	if r.insertErrFor != nil && r.insertErrFor[g.Name] != nil {
		return nil, r.insertErrFor[g.Name]
	}
	copied := *g
	copied.ID = r.nextID
	copied.CreatedAt = time.Now()
	r.nextID++
	r.gifts = append(r.gifts, &copied)
	return &copied, nil
}

func (r *memoryGiftRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.gifts {
		if g.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryGiftRepo) UpdateImage(_ context.Context, id uint, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.gifts {
		if g.ID == id {
			u := url
			g.ImageURL = &u
			return nil
		}
	}
	return errors.New("not found")
}

func (r *memoryGiftRepo) ListNames(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.gifts))
	for _, g := range r.gifts {
		names = append(names, g.Name)
	}
	return names, nil
}

func (r *memoryGiftRepo) ListAll(_ context.Context) ([]*gift.Gift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*gift.Gift(nil), r.gifts...), nil
}

func (r *memoryGiftRepo) FindMissingImages(_ context.Context) ([]*gift.Gift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*gift.Gift
	for _, g := range r.gifts {
		if g.ImageURL == nil || *g.ImageURL == "" {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *memoryGiftRepo) DeleteByIDs(_ context.Context, ids []uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	drop := make(map[uint]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := r.gifts[:0]
	for _, g := range r.gifts {
		if !drop[g.ID] {
			kept = append(kept, g)
		}
	}
	r.gifts = kept
	return nil
}

type stubTranslator struct {
	translations map[string]string
	err          error
}

func (s *stubTranslator) Translate(_ context.Context, text string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.translations[text], nil
}

type stubImageFinder struct {
	url string
	err error
}

func (s *stubImageFinder) FindImage(_ context.Context, _ string, _ bool) (string, error) {
	return s.url, s.err
}

func newTestGenerator(provider *stubProvider, repo *memoryGiftRepo, translator Translator, images ImageFinder) (*Generator, *StatusRegistry) {
	registry := newTestRegistry()
	catalog := gift.NewCatalogService(repo)
	generator := NewGenerator(provider, catalog, translator, images, registry, zerolog.Nop())
	return generator, registry
}

const ideasResponse = `Here you go:
[
  {"name": "Набор для каллиграфии", "description": "Перья, тушь и прописи", "price_range": "800-1500"},
  {"name": "Плед с подогревом", "description": "Мягкий плед", "price_range": "2000-3500"},
  {"name": "Звёздный проектор", "description": "Проектор ночного неба", "price_range": "дорого"}
]`

func TestGeneratePersistsAndPublishesEachIdea(t *testing.T) {
	provider := &stubProvider{response: ideasResponse}
	repo := newMemoryGiftRepo()
	translator := &stubTranslator{translations: map[string]string{
		"Набор для каллиграфии": "Calligraphy set",
	}}
	generator, registry := newTestGenerator(provider, repo, translator, &stubImageFinder{url: "https://images.example/1.jpg"})

	registry.Begin("req_x", 3)
	generator.Generate(context.Background(), "req_x", gift.Criteria{}, nil, 3)

	snapshot := registry.Poll("req_x")
	require.Equal(t, StateCompleted, snapshot.State)
	require.Len(t, snapshot.Gifts, 3)
	assert.Equal(t, 3, snapshot.Completed)

	first := snapshot.Gifts[0]
	assert.True(t, first.AIGenerated)
	require.NotNil(t, first.NameEN)
	assert.Equal(t, "Calligraphy set", *first.NameEN)
	require.NotNil(t, first.ImageURL)
	assert.True(t, first.BudgetMin.Equal(decimal.NewFromInt(800)))
	assert.True(t, first.BudgetMax.Equal(decimal.NewFromInt(1500)))

	// Unparseable price text falls back to the fixed bracket.
	third := snapshot.Gifts[2]
	assert.True(t, third.BudgetMin.Equal(defaultIdeaBudgetMin))
	assert.True(t, third.BudgetMax.Equal(defaultIdeaBudgetMax))

	names, err := repo.ListNames(context.Background())
	require.NoError(t, err)
	assert.Len(t, names, 3)
}

func TestGenerateSkipsDuplicateNames(t *testing.T) {
	provider := &stubProvider{response: ideasResponse}
	repo := newMemoryGiftRepo(&gift.Gift{Name: "Плед с подогревом"})
	generator, registry := newTestGenerator(provider, repo, &stubTranslator{}, &stubImageFinder{})

	registry.Begin("req_dup", 3)
	generator.Generate(context.Background(), "req_dup", gift.Criteria{}, nil, 3)

	snapshot := registry.Poll("req_dup")
	require.Equal(t, StateCompleted, snapshot.State)
	assert.Len(t, snapshot.Gifts, 2)
	for _, g := range snapshot.Gifts {
		assert.NotEqual(t, "Плед с подогревом", g.Name)
	}
}

func TestGenerateToleratesEnrichmentFailures(t *testing.T) {
	provider := &stubProvider{response: ideasResponse}
	repo := newMemoryGiftRepo()
	generator, registry := newTestGenerator(provider, repo,
		&stubTranslator{err: errors.New("translate down")},
		&stubImageFinder{err: errors.New("pexels down")})

	registry.Begin("req_soft", 3)
	generator.Generate(context.Background(), "req_soft", gift.Criteria{}, nil, 3)

	snapshot := registry.Poll("req_soft")
	require.Equal(t, StateCompleted, snapshot.State)
	require.Len(t, snapshot.Gifts, 3)
	for _, g := range snapshot.Gifts {
		assert.Nil(t, g.NameEN)
		assert.Nil(t, g.ImageURL)
	}
}

func TestGenerateFailsWhenNoIdeasParse(t *testing.T) {
	tests := []struct {
		name     string
		provider *stubProvider
	}{
		{"provider error", &stubProvider{err: errors.New("model offline")}},
		{"no json", &stubProvider{response: "Sorry, I cannot help with that."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator, registry := newTestGenerator(tt.provider, newMemoryGiftRepo(), &stubTranslator{}, &stubImageFinder{})

			registry.Begin("req_err", 3)
			generator.Generate(context.Background(), "req_err", gift.Criteria{}, nil, 3)

			snapshot := registry.Poll("req_err")
			assert.Equal(t, StateError, snapshot.State)
			assert.NotEmpty(t, snapshot.Error)
		})
	}
}

func TestGeneratePersistenceFailureSkipsItemOnly(t *testing.T) {
	provider := &stubProvider{response: ideasResponse}
	repo := newMemoryGiftRepo()
	repo.insertErr = errors.New("db full")
	generator, registry := newTestGenerator(provider, repo, &stubTranslator{}, &stubImageFinder{})

	registry.Begin("req_db", 3)
	generator.Generate(context.Background(), "req_db", gift.Criteria{}, nil, 3)

	snapshot := registry.Poll("req_db")
	assert.Equal(t, StateCompleted, snapshot.State)
	assert.Empty(t, snapshot.Gifts)
}

func TestGenerateSingleInsertFailureKeepsRemaining(t *testing.T) {
	provider := &stubProvider{response: ideasResponse}
	repo := newMemoryGiftRepo()
	repo.insertErrFor = map[string]error{"Плед с подогревом": errors.New("deadlock")}
	generator, registry := newTestGenerator(provider, repo, &stubTranslator{}, &stubImageFinder{})

	registry.Begin("req_one", 3)
	generator.Generate(context.Background(), "req_one", gift.Criteria{}, nil, 3)

	snapshot := registry.Poll("req_one")
	require.Equal(t, StateCompleted, snapshot.State)
	require.Len(t, snapshot.Gifts, 2)
	assert.Equal(t, 2, snapshot.Completed)
	assert.Equal(t, "Набор для каллиграфии", snapshot.Gifts[0].Name)
	assert.Equal(t, "Звёздный проектор", snapshot.Gifts[1].Name)

	names, err := repo.ListNames(context.Background())
	require.NoError(t, err)
	assert.Len(t, names, 2)
}

func TestParseIdeasRecoversObjectsFromBrokenArray(t *testing.T) {
	raw := `[
  {"name": "Термокружка", "description": "Держит тепло", "price_range": "700-1200"},
  {"name": "Гамак", "description": "Для дачи" "price_range": "1500-2500"}
]`

	ideas := parseIdeas(raw)

	require.Len(t, ideas, 1)
	assert.Equal(t, "Термокружка", ideas[0].Name)
}
