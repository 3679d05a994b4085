package analytics

import (
	"delphi/internal/domain/analytics"
	"delphi/internal/domain/sentiment"
)

// labelTotals accumulates grouped label counts into the fixed three-category
// shape. Categories absent from the rows stay at zero.
type labelTotals struct {
	Positive, Negative, Neutral int

	positiveConf, negativeConf, neutralConf float64
}

func tallyLabels(rows []analytics.LabelCount) labelTotals {
	var t labelTotals
	for _, row := range rows {
		switch row.Sentiment {
		case sentiment.Positive:
			t.Positive = row.Count
			t.positiveConf = row.AvgConfidence
		case sentiment.Negative:
			t.Negative = row.Count
			t.negativeConf = row.AvgConfidence
		case sentiment.Neutral:
			t.Neutral = row.Count
			t.neutralConf = row.AvgConfidence
		}
	}
	return t
}

// Add accumulates one grouped row. Confidences of rows landing in the same
// category merge weighted by their counts.
func (t *labelTotals) Add(s sentiment.Sentiment, count int, avgConfidence float64) {
	switch s {
	case sentiment.Positive:
		t.positiveConf = weightedConf(t.positiveConf, t.Positive, avgConfidence, count)
		t.Positive += count
	case sentiment.Negative:
		t.negativeConf = weightedConf(t.negativeConf, t.Negative, avgConfidence, count)
		t.Negative += count
	case sentiment.Neutral:
		t.neutralConf = weightedConf(t.neutralConf, t.Neutral, avgConfidence, count)
		t.Neutral += count
	}
}

func weightedConf(avgA float64, nA int, avgB float64, nB int) float64 {
	if nA+nB == 0 {
		return 0
	}
	return (avgA*float64(nA) + avgB*float64(nB)) / float64(nA+nB)
}

func (t labelTotals) Total() int {
	return t.Positive + t.Negative + t.Neutral
}

// Score derives the sentiment score at the given precision.
func (t labelTotals) Score(places int32) float64 {
	return score(t.Positive, t.Negative, t.Total(), places)
}

// Breakdown renders counts, percentages at the given precision, and average
// confidence at two decimals.
func (t labelTotals) Breakdown(places int32) analytics.Breakdown {
	total := t.Total()
	return analytics.Breakdown{
		Positive: analytics.CategoryStats{
			Count:         t.Positive,
			Percentage:    pct(t.Positive, total, places),
			AvgConfidence: round2(t.positiveConf),
		},
		Negative: analytics.CategoryStats{
			Count:         t.Negative,
			Percentage:    pct(t.Negative, total, places),
			AvgConfidence: round2(t.negativeConf),
		},
		Neutral: analytics.CategoryStats{
			Count:         t.Neutral,
			Percentage:    pct(t.Neutral, total, places),
			AvgConfidence: round2(t.neutralConf),
		},
	}
}

// Distribution renders counts and percentages only.
func (t labelTotals) Distribution(places int32) analytics.Distribution {
	total := t.Total()
	return analytics.Distribution{
		Positive: analytics.Share{Count: t.Positive, Percentage: pct(t.Positive, total, places)},
		Negative: analytics.Share{Count: t.Negative, Percentage: pct(t.Negative, total, places)},
		Neutral:  analytics.Share{Count: t.Neutral, Percentage: pct(t.Neutral, total, places)},
	}
}
