package infrastructure

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"gift-server/internal/config"
	"gift-server/internal/domain/completion"
	"gift-server/internal/domain/recommend"
	infracompletion "gift-server/internal/infrastructure/completion"
	"gift-server/internal/infrastructure/crontab"
	"gift-server/internal/infrastructure/database"
	"gift-server/internal/infrastructure/database/repository"
	"gift-server/internal/infrastructure/imagesearch"
	"gift-server/internal/infrastructure/logger"
	"gift-server/internal/infrastructure/translate"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideDatabase provides a database connection
func ProvideDatabase(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.NewDB(cfg.DatabaseDSN())
	if err != nil {
		return nil, err
	}

	// Run migrations if AUTO_MIGRATE is enabled
	if cfg.AutoMigrate {
		log.Info().Msg("Running database migrations...")
		if err := database.AutoMigrate(db); err != nil {
			log.Error().Err(err).Msg("Failed to run database migrations")
			return nil, err
		}
		log.Info().Msg("Database migrations completed successfully")
	}

	return db, nil
}

// ProvideCompletionProvider wires the OpenAI-compatible completion client.
func ProvideCompletionProvider(cfg *config.Config) completion.Provider {
	return infracompletion.NewOpenAIProvider(infracompletion.Config{
		BaseURL: cfg.CompletionBaseURL,
		APIKey:  cfg.CompletionAPIKey,
		Model:   cfg.CompletionModel,
		Timeout: cfg.CompletionTimeout,
	})
}

// ProvideImageSearchClient wires the Pexels image search client.
func ProvideImageSearchClient(cfg *config.Config) *imagesearch.Client {
	return imagesearch.NewClient(cfg.PexelsBaseURL, cfg.PexelsAPIKey)
}

// ProvideTranslateClient wires the translation client.
func ProvideTranslateClient(cfg *config.Config) *translate.Client {
	return translate.NewClient(cfg.TranslateBaseURL, cfg.TranslateAPIKey)
}

// Infrastructure holds all infrastructure dependencies
type Infrastructure struct {
	DB     *gorm.DB
	Logger zerolog.Logger
}

// NewInfrastructure creates a new infrastructure instance
func NewInfrastructure(db *gorm.DB, logger zerolog.Logger) *Infrastructure {
	return &Infrastructure{
		DB:     db,
		Logger: logger,
	}
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,

	// Database
	ProvideDatabase,

	// Repositories
	repository.RepositoryProvider,

	// External providers
	ProvideCompletionProvider,
	ProvideImageSearchClient,
	ProvideTranslateClient,
	wire.Bind(new(recommend.Translator), new(*translate.Client)),
	wire.Bind(new(recommend.ImageFinder), new(*imagesearch.Client)),

	// Logger
	logger.GetLogger,

	// Crontab for housekeeping jobs
	crontab.NewCrontab,

	// Infrastructure struct
	NewInfrastructure,
)
