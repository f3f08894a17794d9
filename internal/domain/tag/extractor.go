package tag

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"gift-server/internal/domain/completion"
	"gift-server/internal/domain/gift"
)

const (
	extractTemperature = 0.1
	extractMaxTokens   = 300
)

var jsonObjectRe = regexp.MustCompile(`\{[\s\S]*?\}`)

// Extractor maps free-text user attributes onto the controlled vocabulary
// using the completion provider, with a deterministic rule fallback.
type Extractor struct {
	provider completion.Provider
	log      zerolog.Logger
}

// NewExtractor constructs an Extractor with required dependencies.
func NewExtractor(provider completion.Provider, log zerolog.Logger) *Extractor {
	return &Extractor{provider: provider, log: log}
}

// ExtractTags resolves a tag set for the criteria. It never fails: provider
// errors, unparseable replies, and a missing occasion category all degrade to
// the rule-based mapping, and OccasionTags is never empty.
func (e *Extractor) ExtractTags(ctx context.Context, criteria gift.Criteria) Set {
	set, err := e.extractWithProvider(ctx, criteria)
	if err != nil {
		e.log.Warn().Err(err).Msg("tag extraction via provider failed, using rule fallback")
		set = RuleBasedTags(criteria)
	}

	if len(set.OccasionTags) == 0 {
		set.OccasionTags = RuleBasedTags(criteria).OccasionTags
	}
	return set
}

func (e *Extractor) extractWithProvider(ctx context.Context, criteria gift.Criteria) (Set, error) {
	prompt := completion.Prompt{
		System: "You map a gift recipient's attributes onto fixed tag vocabularies. " +
			"Respond with ONLY a JSON object of the form " +
			`{"age_tags": [], "gender_tags": [], "interest_tags": [], "profession_tags": [], "occasion_tags": []}. ` +
			"Allowed age tags: " + strings.Join(AgeVocabulary, ", ") + ". " +
			"Allowed gender tags: " + strings.Join(GenderVocabulary, ", ") + ". " +
			"Allowed occasion tags: " + strings.Join(OccasionVocabulary, ", ") + ". " +
			"Interest and profession tags are short lowercase nouns.",
		User: fmt.Sprintf("Recipient: %s", criteria.Description()),
	}

	raw, err := e.provider.Complete(ctx, prompt, completion.Options{
		Temperature: extractTemperature,
		MaxTokens:   extractMaxTokens,
	})
	if err != nil {
		return Set{}, err
	}

	match := jsonObjectRe.FindString(raw)
	if match == "" {
		return Set{}, fmt.Errorf("no JSON object in provider response")
	}

	var set Set
	if err := json.Unmarshal([]byte(match), &set); err != nil {
		return Set{}, fmt.Errorf("parse provider response: %w", err)
	}

	set.AgeTags = keepKnown(set.AgeTags, AgeVocabulary)
	set.GenderTags = keepKnown(set.GenderTags, GenderVocabulary)
	set.OccasionTags = keepKnown(set.OccasionTags, OccasionVocabulary)
	set.InterestTags = normalizeTokens(set.InterestTags)
	set.ProfessionTags = normalizeTokens(set.ProfessionTags)
	return set, nil
}

// RuleBasedTags is the deterministic fallback mapping.
func RuleBasedTags(criteria gift.Criteria) Set {
	var set Set

	if criteria.Age != nil {
		set.AgeTags = []string{AgeBracket(*criteria.Age)}
	}

	switch strings.ToLower(criteria.Gender) {
	case "male", "female":
		set.GenderTags = []string{strings.ToLower(criteria.Gender)}
	default:
		if criteria.Gender != "" {
			set.GenderTags = []string{"unisex"}
		}
	}

	for _, interest := range strings.Split(criteria.Interests, ",") {
		fields := strings.Fields(strings.ToLower(strings.TrimSpace(interest)))
		if len(fields) > 0 {
			set.InterestTags = append(set.InterestTags, fields[0])
		}
	}

	if profession := strings.ToLower(strings.TrimSpace(criteria.Profession)); profession != "" {
		set.ProfessionTags = []string{profession}
	}

	occasion := strings.ToLower(strings.TrimSpace(criteria.Occasion))
	if contains(OccasionVocabulary, occasion) {
		set.OccasionTags = []string{occasion}
	} else {
		set.OccasionTags = []string{OccasionAny}
	}

	return set
}

// AgeBracket maps a numeric age to its age-category tag.
func AgeBracket(age int) string {
	switch {
	case age < 13:
		return "children"
	case age < 20:
		return "teenagers"
	case age < 30:
		return "young adults"
	case age > 65:
		return "seniors"
	default:
		return "adults"
	}
}

func keepKnown(tags, vocabulary []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if contains(vocabulary, t) {
			out = append(out, t)
		}
	}
	return out
}

func normalizeTokens(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
