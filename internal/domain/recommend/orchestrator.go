package recommend

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"gift-server/internal/domain/gift"
	"gift-server/internal/domain/tag"
	"gift-server/internal/infrastructure/metrics"
	"gift-server/internal/utils/functional"
	"gift-server/internal/utils/idgen"
	"gift-server/internal/utils/platformerrors"
)

// AI generation status values reported to clients.
const (
	AIStatusNotStarted = "not_started"
	AIStatusGenerating = "generating"
)

const requestIDLength = 16

// Options bounds the orchestrator's output sizes.
type Options struct {
	DisplayLimit   int
	DefaultAICount int
	MaxAICount     int
}

// Request is one recommendation query.
type Request struct {
	gift.Criteria
	UseAI       bool
	AIGiftCount int
}

// Result is the immediate answer to a recommendation query. RequestID is set
// only when a background generation was launched.
type Result struct {
	Gifts     []*gift.Gift
	AIStatus  string
	RequestID string
}

// Orchestrator wires the catalog, tag extraction, selection and background
// generation into the recommendation flow.
type Orchestrator struct {
	catalog   *gift.CatalogService
	extractor *tag.Extractor
	selector  *Selector
	generator *Generator
	registry  *StatusRegistry
	images    ImageFinder
	opts      Options
	log       zerolog.Logger
}

func NewOrchestrator(
	catalog *gift.CatalogService,
	extractor *tag.Extractor,
	selector *Selector,
	generator *Generator,
	registry *StatusRegistry,
	images ImageFinder,
	opts Options,
	log zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		catalog:   catalog,
		extractor: extractor,
		selector:  selector,
		generator: generator,
		registry:  registry,
		images:    images,
		opts:      opts,
		log:       log,
	}
}

// Recommend answers synchronously with catalog matches and, when requested,
// launches a detached generation job whose progress is observable through
// PollStatus.
func (o *Orchestrator) Recommend(ctx context.Context, req Request) (*Result, error) {
	metrics.RecommendationsTotal.WithLabelValues(strconv.FormatBool(req.UseAI)).Inc()

	budget := req.Criteria.BudgetRange()
	candidates, err := o.catalog.QueryByBudget(ctx, budget)
	if err != nil {
		return nil, err
	}

	if len(candidates) > o.opts.DisplayLimit {
		candidates = o.narrowByTags(ctx, req.Criteria, candidates)
	}

	selected := o.selector.SelectGifts(ctx, req.Criteria, candidates, o.opts.DisplayLimit)
	o.fillImages(ctx, selected)

	result := &Result{Gifts: selected, AIStatus: AIStatusNotStarted}
	if !req.UseAI {
		return result, nil
	}

	requestID, err := idgen.GenerateSecureID("req", requestIDLength)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate request id")
	}

	count := req.AIGiftCount
	if count <= 0 {
		count = o.opts.DefaultAICount
	}
	if count > o.opts.MaxAICount {
		count = o.opts.MaxAICount
	}

	existingNames, err := o.catalog.ListNames(ctx)
	if err != nil {
		o.log.Warn().Err(err).Msg("could not list existing names for generation prompt")
		existingNames = nil
	}

	o.registry.Begin(requestID, count)
	go o.generator.Generate(context.WithoutCancel(ctx), requestID, req.Criteria, existingNames, count)

	result.AIStatus = AIStatusGenerating
	result.RequestID = requestID
	return result, nil
}

// PollStatus reports background generation progress for a request id.
func (o *Orchestrator) PollStatus(requestID string) Snapshot {
	return o.registry.Poll(requestID)
}

// narrowByTags keeps budget candidates whose tags intersect the extracted
// recipient tags, as long as enough survive to fill the display limit.
func (o *Orchestrator) narrowByTags(ctx context.Context, criteria gift.Criteria, candidates []*gift.Gift) []*gift.Gift {
	extracted := o.extractor.ExtractTags(ctx, criteria)
	wanted := make(map[string]bool)
	for _, t := range extracted.All() {
		wanted[t] = true
	}
	if len(wanted) == 0 {
		return candidates
	}

	matched := functional.Filter(candidates, func(candidate *gift.Gift) bool {
		return functional.Any(candidate.Tags, func(t string) bool { return wanted[t] })
	})
	if len(matched) < o.opts.DisplayLimit {
		return candidates
	}
	return matched
}

// fillImages resolves missing images for the gifts about to be returned.
// Lookup and persistence failures leave the gift without an image.
func (o *Orchestrator) fillImages(ctx context.Context, gifts []*gift.Gift) {
	for _, g := range gifts {
		if g.ImageURL != nil && *g.ImageURL != "" {
			continue
		}
		url, err := o.images.FindImage(ctx, g.DisplayName(), g.NameEN != nil)
		if err != nil || url == "" {
			continue
		}
		if err := o.catalog.UpdateImage(ctx, g.ID, url); err != nil {
			o.log.Warn().Err(err).Uint("gift_id", g.ID).Msg("failed to persist resolved image")
		}
		resolved := url
		g.ImageURL = &resolved
	}
}

// RefreshImages backfills images for every catalog gift missing one. It is
// used by the admin endpoint and the nightly job.
func (o *Orchestrator) RefreshImages(ctx context.Context) (int, error) {
	missing, err := o.catalog.FindMissingImages(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, g := range missing {
		url, err := o.images.FindImage(ctx, g.DisplayName(), g.NameEN != nil)
		if err != nil || url == "" {
			continue
		}
		if err := o.catalog.UpdateImage(ctx, g.ID, url); err != nil {
			o.log.Warn().Err(err).Uint("gift_id", g.ID).Msg("image backfill persist failed")
			continue
		}
		updated++
	}

	o.log.Info().Int("updated", updated).Int("missing", len(missing)).Msg("image backfill finished")
	return updated, nil
}
