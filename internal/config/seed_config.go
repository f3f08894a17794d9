package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"gift-server/internal/infrastructure/logger"
)

const DefaultSeedFile = "config/seed.yml"

// SeedGiftEntry describes one catalog gift seeded on startup.
type SeedGiftEntry struct {
	Name        string   `yaml:"name"`
	NameEN      string   `yaml:"name_en"`
	Description string   `yaml:"description"`
	PriceRange  string   `yaml:"price_range"`
	ImageURL    string   `yaml:"image_url"`
	Tags        []string `yaml:"tags"`
}

// SeedDocument is the parsed catalog seed file: the tag vocabulary per
// category plus starter gifts.
type SeedDocument struct {
	Tags  map[string][]string `yaml:"tags"`
	Gifts []SeedGiftEntry     `yaml:"gifts"`
}

// LoadSeedDocument parses the yaml seed file at the provided path.
func LoadSeedDocument(path string) (*SeedDocument, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultSeedFile
	}

	log := logger.GetLogger()
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read seed file %q: %w", cleanPath, err)
	}
	log.Info().Str("path", cleanPath).Msg("loading catalog seed file")

	var doc SeedDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse seed file %q: %w", cleanPath, err)
	}

	for i, gift := range doc.Gifts {
		if strings.TrimSpace(gift.Name) == "" {
			return nil, fmt.Errorf("seed file %q: gift %d has no name", cleanPath, i)
		}
	}
	if len(doc.Gifts) == 0 && len(doc.Tags) == 0 {
		return nil, errors.New("seed file contains no tags and no gifts")
	}

	return &doc, nil
}
