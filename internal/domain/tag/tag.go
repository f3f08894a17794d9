// Package tag provides the controlled tag vocabulary and the criteria
// extractor that maps free-text user attributes onto it.
package tag

import "context"

// Category groups tags by the recipient attribute they describe.
type Category string

const (
	CategoryAge        Category = "age"
	CategoryGender     Category = "gender"
	CategoryInterest   Category = "interest"
	CategoryProfession Category = "profession"
	CategoryOccasion   Category = "occasion"
)

// OccasionAny is the default occasion tag applied when none was extracted.
const OccasionAny = "any"

// Controlled vocabularies per category. Interest and profession accept free
// tokens in addition to the listed seeds; age, gender and occasion are closed.
var (
	AgeVocabulary    = []string{"children", "teenagers", "young adults", "adults", "seniors"}
	GenderVocabulary = []string{"male", "female", "unisex"}
	InterestVocabulary = []string{
		"reading", "cooking", "sports", "music", "travel", "gaming",
		"art", "technology", "gardening", "photography", "fashion", "fitness",
	}
	ProfessionVocabulary = []string{
		"engineer", "teacher", "doctor", "artist", "student",
		"manager", "programmer", "designer", "chef", "musician",
	}
	OccasionVocabulary = []string{
		"birthday", "wedding", "anniversary", "christmas",
		"new year", "valentines", "graduation", OccasionAny,
	}
)

// Set holds the extracted tags, one list per category. OccasionTags is never
// empty.
type Set struct {
	AgeTags        []string `json:"age_tags"`
	GenderTags     []string `json:"gender_tags"`
	InterestTags   []string `json:"interest_tags"`
	ProfessionTags []string `json:"profession_tags"`
	OccasionTags   []string `json:"occasion_tags"`
}

// All flattens the set into a single tag list for catalog filtering.
func (s Set) All() []string {
	out := make([]string, 0, len(s.AgeTags)+len(s.GenderTags)+len(s.InterestTags)+len(s.ProfessionTags)+len(s.OccasionTags))
	out = append(out, s.AgeTags...)
	out = append(out, s.GenderTags...)
	out = append(out, s.InterestTags...)
	out = append(out, s.ProfessionTags...)
	out = append(out, s.OccasionTags...)
	return out
}

// Repository defines storage operations for tags.
type Repository interface {
	EnsureTag(ctx context.Context, category Category, name string) (uint, error)
	LinkGift(ctx context.Context, giftID uint, tagIDs []uint) error
}
