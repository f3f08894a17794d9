package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"gift-server/internal/domain/completion"
	"gift-server/internal/domain/gift"
	"gift-server/internal/infrastructure/metrics"
)

const (
	generationTemperature = 0.7
	generationMaxTokens   = 2000
)

// Fallback bounds for generated ideas whose price text cannot be parsed.
var (
	defaultIdeaBudgetMin = decimal.NewFromInt(10)
	defaultIdeaBudgetMax = decimal.NewFromInt(100)
)

var (
	jsonArrayPattern  = regexp.MustCompile(`\[\s*\{[\s\S]*\}\s*\]`)
	jsonObjectPattern = regexp.MustCompile(`\{[\s\S]*?\}`)
)

// Translator renders a gift name in English for image search. Failures are
// tolerated by callers.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// ImageFinder resolves an illustrative image URL for a search query. The
// english flag tells the finder whether the query is already English.
type ImageFinder interface {
	FindImage(ctx context.Context, query string, english bool) (string, error)
}

type giftIdea struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceRange  string `json:"price_range"`
}

// Generator produces novel gift ideas through the completion provider and
// enriches them one at a time, publishing each persisted gift to the status
// registry as it lands.
type Generator struct {
	provider   completion.Provider
	catalog    *gift.CatalogService
	translator Translator
	images     ImageFinder
	registry   *StatusRegistry
	log        zerolog.Logger
}

func NewGenerator(
	provider completion.Provider,
	catalog *gift.CatalogService,
	translator Translator,
	images ImageFinder,
	registry *StatusRegistry,
	log zerolog.Logger,
) *Generator {
	return &Generator{
		provider:   provider,
		catalog:    catalog,
		translator: translator,
		images:     images,
		registry:   registry,
		log:        log,
	}
}

// Generate runs one background generation to completion. The registry entry
// for requestID must already be in the generating state. A panic anywhere in
// the pipeline is converted into a terminal error status so pollers are never
// left waiting on a dead job.
func (g *Generator) Generate(ctx context.Context, requestID string, criteria gift.Criteria, existingNames []string, count int) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Error().Interface("panic", r).Str("request_id", requestID).Msg("gift generation panicked")
			metrics.AIGenerationFailuresTotal.Inc()
			g.registry.Fail(requestID, "internal generation failure")
		}
	}()

	ideas, err := g.requestIdeas(ctx, criteria, existingNames, count)
	if err != nil {
		g.log.Error().Err(err).Str("request_id", requestID).Msg("gift idea generation failed")
		metrics.AIGenerationFailuresTotal.Inc()
		g.registry.Fail(requestID, "gift generation failed")
		return
	}

	for _, idea := range ideas {
		persisted, ok := g.materialize(ctx, idea)
		if !ok {
			continue
		}
		metrics.AIGiftsGeneratedTotal.Inc()
		g.registry.AppendGift(requestID, persisted)
	}

	g.registry.Complete(requestID)
}

// materialize turns one idea into a persisted catalog gift. Translation and
// image lookup are best effort; only duplicate names and persistence failures
// drop the idea.
func (g *Generator) materialize(ctx context.Context, idea giftIdea) (*gift.Gift, bool) {
	name := strings.TrimSpace(idea.Name)
	if name == "" {
		return nil, false
	}

	exists, err := g.catalog.ExistsByName(ctx, name)
	if err != nil {
		g.log.Warn().Err(err).Str("name", name).Msg("duplicate check failed, keeping idea")
	} else if exists {
		g.log.Debug().Str("name", name).Msg("skipping duplicate generated gift")
		return nil, false
	}

	candidate := &gift.Gift{
		Name:        name,
		Description: strings.TrimSpace(idea.Description),
		PriceRange:  strings.TrimSpace(idea.PriceRange),
		AIGenerated: true,
	}

	budget := ideaBudget(candidate.PriceRange)
	candidate.BudgetMin = budget.Min
	candidate.BudgetMax = budget.Max

	if english, err := g.translator.Translate(ctx, name); err == nil && english != "" {
		candidate.NameEN = &english
	} else if err != nil {
		g.log.Warn().Err(err).Str("name", name).Msg("translation failed, searching images with original name")
	}

	query, isEnglish := name, false
	if candidate.NameEN != nil {
		query, isEnglish = *candidate.NameEN, true
	}
	if url, err := g.images.FindImage(ctx, query, isEnglish); err == nil && url != "" {
		candidate.ImageURL = &url
	} else if err != nil {
		g.log.Warn().Err(err).Str("query", query).Msg("image lookup failed for generated gift")
	}

	persisted, err := g.catalog.Insert(ctx, candidate)
	if err != nil {
		g.log.Error().Err(err).Str("name", name).Msg("failed to persist generated gift")
		return nil, false
	}
	return persisted, true
}

func (g *Generator) requestIdeas(ctx context.Context, criteria gift.Criteria, existingNames []string, count int) ([]giftIdea, error) {
	var avoid string
	if len(existingNames) > 0 {
		avoid = "\nDo not repeat any of these existing gifts: " + strings.Join(existingNames, ", ") + "."
	}

	prompt := completion.Prompt{
		System: "You are a creative gift consultant. Respond with a JSON array of gift objects, each having \"name\", \"description\" and \"price_range\" fields. No text outside the JSON.",
		User: fmt.Sprintf(
			"Suggest %d original gift ideas for this recipient: %s.%s\nPrice ranges are plain strings like \"500-1500\".",
			count, criteria.Description(), avoid,
		),
	}

	raw, err := g.provider.Complete(ctx, prompt, completion.Options{
		Temperature: generationTemperature,
		MaxTokens:   generationMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	ideas := parseIdeas(raw)
	if len(ideas) == 0 {
		return nil, fmt.Errorf("completion contained no parseable gift ideas: %s", truncate(raw, 200))
	}
	if len(ideas) > count {
		ideas = ideas[:count]
	}
	return ideas, nil
}

// parseIdeas extracts gift ideas from a completion, first as a whole JSON
// array, then object by object when the array is malformed.
func parseIdeas(raw string) []giftIdea {
	if match := jsonArrayPattern.FindString(raw); match != "" {
		var ideas []giftIdea
		if err := json.Unmarshal([]byte(match), &ideas); err == nil {
			return ideas
		}
	}

	var ideas []giftIdea
	for _, match := range jsonObjectPattern.FindAllString(raw, -1) {
		var idea giftIdea
		if err := json.Unmarshal([]byte(match), &idea); err == nil && strings.TrimSpace(idea.Name) != "" {
			ideas = append(ideas, idea)
		}
	}
	return ideas
}

// ideaBudget parses a free-form price string, substituting a fixed bracket
// when nothing numeric can be recovered.
func ideaBudget(priceRange string) gift.BudgetRange {
	budget := gift.ParseBudget(priceRange)
	if budget.Unrestricted() {
		return gift.BudgetRange{Min: defaultIdeaBudgetMin, Max: defaultIdeaBudgetMax}
	}
	return budget
}
