package analytics

import (
	"context"
	"sort"
	"time"

	"delphi/internal/domain/analytics"
	"delphi/internal/domain/sentiment"
	"delphi/pkg/errors"
)

// buildTimeline groups bucket/label rows by bucket, derives per-point
// percentages and scores, and returns the points in ascending bucket order.
// Buckets with no mentions never appear, so gaps are not zero-filled.
func buildTimeline(rows []analytics.BucketLabelCount) []analytics.TimelinePoint {
	grouped := make(map[time.Time]*analytics.TimelinePoint)
	for _, row := range rows {
		point, ok := grouped[row.Bucket]
		if !ok {
			point = &analytics.TimelinePoint{Bucket: row.Bucket}
			grouped[row.Bucket] = point
		}
		point.Total += row.Count
		switch row.Sentiment {
		case sentiment.Positive:
			point.Positive += row.Count
		case sentiment.Negative:
			point.Negative += row.Count
		case sentiment.Neutral:
			point.Neutral += row.Count
		}
	}

	points := make([]analytics.TimelinePoint, 0, len(grouped))
	for _, point := range grouped {
		point.PositivePct = pct(point.Positive, point.Total, 2)
		point.NegativePct = pct(point.Negative, point.Total, 2)
		point.NeutralPct = pct(point.Neutral, point.Total, 2)
		point.Score = score(point.Positive, point.Negative, point.Total, 2)
		points = append(points, *point)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Bucket.Before(points[j].Bucket) })

	return points
}

// sumTimeline collapses a timeline into one overall aggregate.
func sumTimeline(points []analytics.TimelinePoint) analytics.OverallSentiment {
	var overall analytics.OverallSentiment
	var total int
	for _, p := range points {
		overall.Positive += p.Positive
		overall.Negative += p.Negative
		overall.Neutral += p.Neutral
		total += p.Total
	}
	overall.PositivePct = pct(overall.Positive, total, 2)
	overall.NegativePct = pct(overall.Negative, total, 2)
	overall.NeutralPct = pct(overall.Neutral, total, 2)
	overall.Score = score(overall.Positive, overall.Negative, total, 2)
	return overall
}

// TokenSentimentTimeline buckets one token's labeled mentions by the interval
// and returns the ordered sequence of sentiment points.
func (s *Service) TokenSentimentTimeline(ctx context.Context, p analytics.TimelineParams) (*analytics.TokenTimeline, error) {
	if p.DaysBack == 0 {
		p.DaysBack = 30
	}
	if p.Interval == "" {
		p.Interval = analytics.IntervalDay
	}
	if err := checkInterval(p.Interval); err != nil {
		return nil, err
	}

	res, err := s.resolveSelector(ctx, p.Token)
	if err != nil {
		return nil, err
	}

	win, err := s.window(p.DaysBack)
	if err != nil {
		return nil, err
	}

	rows, err := s.reader.TimelineCounts(ctx, res.IDs, p.Interval, win)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load timeline counts")
	}

	return &analytics.TokenTimeline{
		Token:    res.Key,
		Window:   win,
		Interval: p.Interval,
		Points:   buildTimeline(rows),
	}, nil
}

// NetworkSentimentTimeline is the timeline of everything mentioned on one
// network, with an overall aggregate and the network's most discussed
// symbols.
func (s *Service) NetworkSentimentTimeline(ctx context.Context, p analytics.NetworkTimelineParams) (*analytics.NetworkTimeline, error) {
	if p.DaysBack == 0 {
		p.DaysBack = 30
	}
	if p.Interval == "" {
		p.Interval = analytics.IntervalDay
	}
	if err := checkInterval(p.Interval); err != nil {
		return nil, err
	}
	if p.Network == "" {
		return nil, errors.NewValidationError("network", "must not be empty", p.Network)
	}

	network, err := s.tokens.GetNetworkByName(ctx, p.Network)
	if err != nil {
		return nil, err
	}

	win, err := s.window(p.DaysBack)
	if err != nil {
		return nil, err
	}

	rows, err := s.reader.NetworkTimelineCounts(ctx, p.Network, p.Interval, win)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load network timeline counts")
	}
	points := buildTimeline(rows)
	overall := sumTimeline(points)

	topTokens, err := s.reader.TopSymbols(ctx, []string{p.Network}, win, 1, 5)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load top symbols")
	}

	return &analytics.NetworkTimeline{
		Network:       network.Name,
		DisplayName:   network.DisplayName,
		Window:        win,
		TotalMentions: overall.Positive + overall.Negative + overall.Neutral,
		Overall:       overall,
		TopTokens:     topTokens,
		Points:        points,
	}, nil
}

// GlobalSentimentTrends is the cross-network timeline plus a per-network
// aggregate. TopNetworks > 0 restricts the view to the N busiest networks.
func (s *Service) GlobalSentimentTrends(ctx context.Context, p analytics.GlobalTrendsParams) (*analytics.GlobalTrends, error) {
	if p.DaysBack == 0 {
		p.DaysBack = 30
	}
	if p.Interval == "" {
		p.Interval = analytics.IntervalDay
	}
	if err := checkInterval(p.Interval); err != nil {
		return nil, err
	}
	if p.TopNetworks < 0 {
		return nil, errors.NewValidationError("top_networks", "must not be negative", p.TopNetworks)
	}

	win, err := s.window(p.DaysBack)
	if err != nil {
		return nil, err
	}

	var included []string
	if p.TopNetworks > 0 {
		top, err := s.reader.TopNetworks(ctx, win, 1, p.TopNetworks)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load top networks")
		}
		if len(top) == 0 {
			return &analytics.GlobalTrends{Window: win}, nil
		}
		included = make([]string, len(top))
		for i, n := range top {
			included[i] = n.Network
		}
	}

	rows, err := s.reader.GlobalTimelineCounts(ctx, included, p.Interval, win)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load global timeline counts")
	}
	points := buildTimeline(rows)
	overall := sumTimeline(points)

	networkRows, err := s.reader.NetworkLabelCounts(ctx, included, win)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load network label counts")
	}

	return &analytics.GlobalTrends{
		Window:           win,
		TotalMentions:    overall.Positive + overall.Negative + overall.Neutral,
		Overall:          overall,
		Points:           points,
		Networks:         networkTrends(networkRows),
		NetworksIncluded: included,
	}, nil
}

// networkTrends folds per-network label rows into per-network aggregates,
// sorted by total mentions descending.
func networkTrends(rows []analytics.NetworkLabelCount) []analytics.NetworkTrend {
	grouped := make(map[string]*analytics.NetworkTrend)
	for _, row := range rows {
		trend, ok := grouped[row.Network]
		if !ok {
			trend = &analytics.NetworkTrend{Network: row.Network}
			grouped[row.Network] = trend
		}
		trend.Total += row.Count
		switch row.Sentiment {
		case sentiment.Positive:
			trend.Positive += row.Count
		case sentiment.Negative:
			trend.Negative += row.Count
		case sentiment.Neutral:
			trend.Neutral += row.Count
		}
	}

	trends := make([]analytics.NetworkTrend, 0, len(grouped))
	for _, trend := range grouped {
		trend.PositivePct = pct(trend.Positive, trend.Total, 2)
		trend.NegativePct = pct(trend.Negative, trend.Total, 2)
		trend.NeutralPct = pct(trend.Neutral, trend.Total, 2)
		trend.Score = score(trend.Positive, trend.Negative, trend.Total, 2)
		trends = append(trends, *trend)
	}
	sort.Slice(trends, func(i, j int) bool { return trends[i].Total > trends[j].Total })

	return trends
}
