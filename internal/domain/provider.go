package domain

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"gift-server/internal/config"
	"gift-server/internal/domain/gift"
	"gift-server/internal/domain/housekeeping"
	"gift-server/internal/domain/recommend"
	"gift-server/internal/domain/tag"
	"gift-server/internal/domain/user"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	// Catalog domain
	gift.NewCatalogService,

	// Tag extraction
	tag.NewExtractor,

	// Recommendation flow
	recommend.NewSelector,
	recommend.NewGenerator,
	recommend.NewOrchestrator,
	ProvideStatusRegistry,
	ProvideOrchestratorOptions,

	// Accounts
	ProvideAuthService,

	// Housekeeping
	housekeeping.NewCleaner,
)

func ProvideStatusRegistry(cfg *config.Config, log zerolog.Logger) *recommend.StatusRegistry {
	return recommend.NewStatusRegistry(cfg.StatusTTL, cfg.StatusGeneratingTTL, log)
}

func ProvideOrchestratorOptions(cfg *config.Config) recommend.Options {
	return recommend.Options{
		DisplayLimit:   cfg.GiftDisplayLimit,
		DefaultAICount: cfg.DefaultAIGiftCount,
		MaxAICount:     cfg.MaxAIGiftCount,
	}
}

func ProvideAuthService(cfg *config.Config, repo user.Repository) *user.AuthService {
	return user.NewAuthService(repo, cfg.JWTSecret, cfg.TokenTTL)
}
