package sentiment

import "time"

// Sentiment is the categorical label assigned to a post by the analysis
// pipeline.
type Sentiment string

const (
	Positive Sentiment = "positive"
	Negative Sentiment = "negative"
	Neutral  Sentiment = "neutral"
)

// All lists every sentiment category in presentation order.
func All() []Sentiment {
	return []Sentiment{Positive, Negative, Neutral}
}

// Valid reports whether s is a known category.
func (s Sentiment) Valid() bool {
	switch s {
	case Positive, Negative, Neutral:
		return true
	}
	return false
}

// String returns the string representation of the sentiment
func (s Sentiment) String() string {
	return string(s)
}

// Label is the sentiment annotation attached to a single post.
// At most one label exists per post.
type Label struct {
	ID              int64     `db:"id"`
	PostID          int64     `db:"post_id"`
	Sentiment       Sentiment `db:"sentiment"`
	ConfidenceScore float64   `db:"confidence_score"` // 0..1
	AnalyzedAt      time.Time `db:"analyzed_at"`
}
