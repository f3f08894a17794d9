package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gift-server/internal/config"
	"gift-server/internal/domain/gift"
	"gift-server/internal/domain/tag"
	"gift-server/internal/infrastructure/logger"
	"gift-server/internal/utils/platformerrors"
)

type DataInitializer struct {
	catalog *gift.CatalogService
	tags    tag.Repository
}

// Install seeds the tag vocabulary and the starter catalog. Gifts whose name
// already exists are left untouched, so repeated startups are idempotent.
func (d *DataInitializer) Install(ctx context.Context) error {
	cfg := config.GetGlobal()
	if cfg == nil || !cfg.SeedEnabled {
		return nil
	}
	log := logger.GetLogger()

	doc, err := config.LoadSeedDocument(cfg.SeedFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Msg("seed file not found, skipping catalog seed")
			return nil
		}
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load seed file")
	}

	tagIDs, err := d.seedTags(ctx, doc)
	if err != nil {
		return err
	}

	seeded := 0
	for i := range doc.Gifts {
		created, err := d.seedGift(ctx, &doc.Gifts[i], tagIDs)
		if err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err,
				fmt.Sprintf("failed to seed gift %q", doc.Gifts[i].Name))
		}
		if created {
			seeded++
		}
	}

	if seeded > 0 {
		log.Info().Int("gifts", seeded).Msg("catalog seed installed")
	}
	return nil
}

// seedTags ensures the built-in vocabularies plus any seed-file additions and
// returns a name to id lookup for gift linking.
func (d *DataInitializer) seedTags(ctx context.Context, doc *config.SeedDocument) (map[string]uint, error) {
	vocabularies := map[tag.Category][]string{
		tag.CategoryAge:        tag.AgeVocabulary,
		tag.CategoryGender:     tag.GenderVocabulary,
		tag.CategoryInterest:   tag.InterestVocabulary,
		tag.CategoryProfession: tag.ProfessionVocabulary,
		tag.CategoryOccasion:   tag.OccasionVocabulary,
	}

	tagIDs := make(map[string]uint)
	for category, names := range vocabularies {
		names = append(names, doc.Tags[string(category)]...)
		for _, name := range names {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			id, err := d.tags.EnsureTag(ctx, category, name)
			if err != nil {
				return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err,
					fmt.Sprintf("failed to ensure tag %q", name))
			}
			tagIDs[name] = id
		}
	}
	return tagIDs, nil
}

func (d *DataInitializer) seedGift(ctx context.Context, entry *config.SeedGiftEntry, tagIDs map[string]uint) (bool, error) {
	exists, err := d.catalog.ExistsByName(ctx, entry.Name)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	budget := gift.ParseBudget(entry.PriceRange)
	candidate := &gift.Gift{
		Name:        entry.Name,
		Description: entry.Description,
		PriceRange:  entry.PriceRange,
		BudgetMin:   budget.Min,
		BudgetMax:   budget.Max,
		Tags:        entry.Tags,
	}
	if entry.NameEN != "" {
		nameEN := entry.NameEN
		candidate.NameEN = &nameEN
	}
	if entry.ImageURL != "" {
		imageURL := entry.ImageURL
		candidate.ImageURL = &imageURL
	}

	persisted, err := d.catalog.Insert(ctx, candidate)
	if err != nil {
		return false, err
	}

	var linkIDs []uint
	for _, name := range entry.Tags {
		name = strings.ToLower(strings.TrimSpace(name))
		id, ok := tagIDs[name]
		if !ok {
			// Unlisted tags on seed gifts are treated as interests.
			id, err = d.tags.EnsureTag(ctx, tag.CategoryInterest, name)
			if err != nil {
				return false, err
			}
			tagIDs[name] = id
		}
		linkIDs = append(linkIDs, id)
	}
	if err := d.tags.LinkGift(ctx, persisted.ID, linkIDs); err != nil {
		return false, err
	}
	return true, nil
}
