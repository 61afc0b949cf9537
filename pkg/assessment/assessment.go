// Package assessment scores a business's ESG submission: it routes the
// onboarding answers to a loan category, estimates a carbon footprint
// from consumption proxies, and produces a 0-100 scorecard with a
// rating and improvement suggestions.
package assessment

// Category is the assessment track a business is routed to.
type Category string

const (
	// CategoryGreen is the green loan track (environmental focus).
	CategoryGreen Category = "green"
	// CategorySLL is the sustainability-linked loan track (social and
	// governance focus).
	CategorySLL Category = "sll"
	// CategoryOther is the general ESG readiness track.
	CategoryOther Category = "other"
)

// ParseCategory validates a category string coming from a URL or a
// hidden form field.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryGreen, CategorySLL, CategoryOther:
		return Category(s), true
	}
	return "", false
}

// Suggestion is one improvement hint shown on the dashboard.
type Suggestion struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

// Section is one scored line of the breakdown.
type Section struct {
	Label  string `json:"label"`
	Points int    `json:"points"`
	Max    int    `json:"max"`
}

// Scorecard is the scored assessment result.
type Scorecard struct {
	Score       int          `json:"score"`
	Rating      string       `json:"rating"`
	Breakdown   []Section    `json:"breakdown"`
	Suggestions []Suggestion `json:"suggestions"`
}

// finalize caps the score at 100 and assigns the letter rating.
func finalize(card Scorecard) Scorecard {
	if card.Score > 100 {
		card.Score = 100
	}
	switch {
	case card.Score >= 80:
		card.Rating = "A"
	case card.Score >= 60:
		card.Rating = "B"
	case card.Score >= 40:
		card.Rating = "C"
	default:
		card.Rating = "D"
	}
	return card
}
