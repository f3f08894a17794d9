package tag

import (
	"context"
	"errors"
	"testing"

	"gift-server/internal/domain/completion"
	"gift-server/internal/domain/gift"
	"gift-server/internal/infrastructure/logger"
)

// stubProvider returns a canned response or error for every call.
type stubProvider struct {
	response string
	err      error
	calls    int
}

func (s *stubProvider) Complete(ctx context.Context, prompt completion.Prompt, opts completion.Options) (string, error) {
	s.calls++
	return s.response, s.err
}

func intPtr(v int) *int { return &v }

func TestExtractTagsParsesProviderJSON(t *testing.T) {
	provider := &stubProvider{
		response: `Here you go: {"age_tags": ["young adults"], "gender_tags": ["female"], ` +
			`"interest_tags": ["Reading"], "profession_tags": ["teacher"], "occasion_tags": ["birthday"]}`,
	}
	extractor := NewExtractor(provider, logger.GetLogger())

	set := extractor.ExtractTags(context.Background(), gift.Criteria{
		Age:       intPtr(25),
		Gender:    "female",
		Interests: "reading",
		Occasion:  "birthday",
	})

	if len(set.AgeTags) != 1 || set.AgeTags[0] != "young adults" {
		t.Errorf("AgeTags = %v, want [young adults]", set.AgeTags)
	}
	if len(set.InterestTags) != 1 || set.InterestTags[0] != "reading" {
		t.Errorf("InterestTags = %v, want lowercase [reading]", set.InterestTags)
	}
	if len(set.OccasionTags) != 1 || set.OccasionTags[0] != "birthday" {
		t.Errorf("OccasionTags = %v, want [birthday]", set.OccasionTags)
	}
}

func TestExtractTagsEmptyOccasionUsesRuleMapping(t *testing.T) {
	provider := &stubProvider{
		response: `{"age_tags": ["adults"], "gender_tags": [], ` +
			`"interest_tags": ["cooking"], "profession_tags": [], "occasion_tags": []}`,
	}
	extractor := NewExtractor(provider, logger.GetLogger())

	set := extractor.ExtractTags(context.Background(), gift.Criteria{
		Age:      intPtr(40),
		Occasion: "birthday",
	})

	// the stated occasion survives even when the provider omits the category
	if len(set.OccasionTags) != 1 || set.OccasionTags[0] != "birthday" {
		t.Errorf("OccasionTags = %v, want [birthday]", set.OccasionTags)
	}
	if len(set.InterestTags) != 1 || set.InterestTags[0] != "cooking" {
		t.Errorf("InterestTags = %v, want provider tags kept [cooking]", set.InterestTags)
	}
}

func TestExtractTagsMalformedResponseFallsBack(t *testing.T) {
	tests := []struct {
		name     string
		provider *stubProvider
	}{
		{name: "non-JSON response", provider: &stubProvider{response: "I cannot help with that."}},
		{name: "broken JSON", provider: &stubProvider{response: `{"age_tags": [unquoted]}`}},
		{name: "provider error", provider: &stubProvider{err: errors.New("connection refused")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := NewExtractor(tt.provider, logger.GetLogger())

			set := extractor.ExtractTags(context.Background(), gift.Criteria{
				Age:       intPtr(8),
				Gender:    "male",
				Interests: "model trains, puzzles",
			})

			// never raises, always yields a usable set with occasion defaulted
			if len(set.OccasionTags) == 0 {
				t.Fatal("OccasionTags is empty, want at least [any]")
			}
			if set.OccasionTags[0] != OccasionAny {
				t.Errorf("OccasionTags = %v, want [%s]", set.OccasionTags, OccasionAny)
			}
			if len(set.AgeTags) != 1 || set.AgeTags[0] != "children" {
				t.Errorf("AgeTags = %v, want [children]", set.AgeTags)
			}
			if len(set.InterestTags) != 2 || set.InterestTags[0] != "model" || set.InterestTags[1] != "puzzles" {
				t.Errorf("InterestTags = %v, want first tokens [model puzzles]", set.InterestTags)
			}
		})
	}
}

func TestAgeBracket(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{age: 5, want: "children"},
		{age: 12, want: "children"},
		{age: 13, want: "teenagers"},
		{age: 19, want: "teenagers"},
		{age: 20, want: "young adults"},
		{age: 29, want: "young adults"},
		{age: 30, want: "adults"},
		{age: 65, want: "adults"},
		{age: 66, want: "seniors"},
	}

	for _, tt := range tests {
		if got := AgeBracket(tt.age); got != tt.want {
			t.Errorf("AgeBracket(%d) = %q, want %q", tt.age, got, tt.want)
		}
	}
}

func TestRuleBasedTagsUnknownOccasion(t *testing.T) {
	set := RuleBasedTags(gift.Criteria{Occasion: "quinceanera"})
	if len(set.OccasionTags) != 1 || set.OccasionTags[0] != OccasionAny {
		t.Errorf("OccasionTags = %v, want [%s]", set.OccasionTags, OccasionAny)
	}
}
