package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"delphi/internal/domain/analytics"
	"delphi/pkg/errors"
	"delphi/pkg/logger"
)

// Engine is the slice of the analytics surface the digest needs. Both the
// plain and the cached service satisfy it.
type Engine interface {
	MostDiscussedTokens(ctx context.Context, p analytics.MostDiscussedParams) (*analytics.MostDiscussed, error)
	SentimentMomentum(ctx context.Context, p analytics.MomentumParams) (*analytics.Momentum, error)
	GlobalSentimentTrends(ctx context.Context, p analytics.GlobalTrendsParams) (*analytics.GlobalTrends, error)
}

// Notifier delivers a rendered digest.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Config contains the digest query parameters
type Config struct {
	DaysBack    int
	TopTokens   int
	MinMentions int
}

// Service builds and delivers the periodic sentiment digest
type Service struct {
	engine   Engine
	notifier Notifier
	cfg      Config
	log      *logger.Logger
}

// NewService creates a new report service
func NewService(engine Engine, notifier Notifier, cfg Config) *Service {
	return &Service{
		engine:   engine,
		notifier: notifier,
		cfg:      cfg,
		log:      logger.Get().With("component", "report"),
	}
}

// Run builds the digest and sends it to the configured chat
func (s *Service) Run(ctx context.Context) error {
	digest, err := s.BuildDigest(ctx)
	if err != nil {
		return err
	}

	if err := s.notifier.Send(ctx, digest); err != nil {
		return err
	}

	s.log.Infow("Digest delivered", "days_back", s.cfg.DaysBack)
	return nil
}

// BuildDigest renders the most-discussed, momentum and global trend sections
// into a single Telegram-flavoured markdown message
func (s *Service) BuildDigest(ctx context.Context) (string, error) {
	discussed, err := s.engine.MostDiscussedTokens(ctx, analytics.MostDiscussedParams{
		DaysBack:    s.cfg.DaysBack,
		Limit:       s.cfg.TopTokens,
		MinMentions: s.cfg.MinMentions,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to query most discussed tokens")
	}

	momentum, err := s.engine.SentimentMomentum(ctx, analytics.MomentumParams{
		TopN:        s.cfg.TopTokens,
		DaysBack:    s.cfg.DaysBack * 2, // momentum compares two halves of a doubled window
		MinMentions: s.cfg.MinMentions,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to query sentiment momentum")
	}

	trends, err := s.engine.GlobalSentimentTrends(ctx, analytics.GlobalTrendsParams{
		DaysBack: s.cfg.DaysBack,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to query global trends")
	}

	var b strings.Builder

	fmt.Fprintf(&b, "*Sentiment digest* — %s\n", discussed.Window.String())
	fmt.Fprintf(&b, "%s labelled mentions, overall score %+.2f\n\n",
		humanize.Comma(int64(trends.TotalMentions)), trends.Overall.Score)

	b.WriteString("*Most discussed*\n")
	if len(discussed.Tokens) == 0 {
		b.WriteString("_no tokens above the mention threshold_\n")
	}
	for i, t := range discussed.Tokens {
		fmt.Fprintf(&b, "%d. %s — %s mentions, score %+.2f %s\n",
			i+1, t.DisplayName, humanize.Comma(int64(t.MentionCount)), t.Score, scoreEmoji(t.Score))
	}

	b.WriteString("\n*Momentum* (second half vs first half)\n")
	if len(momentum.Tokens) == 0 {
		b.WriteString("_not enough volume to score momentum_\n")
	}
	for _, m := range momentum.Tokens {
		growth := fmt.Sprintf("%+.1f%% volume", m.MentionGrowthPct)
		if m.UnboundedGrowth {
			growth = "new this period"
		}
		fmt.Fprintf(&b, "%s %s: %+.3f (%s)\n",
			momentumArrow(m.Momentum), m.DisplayName, m.Momentum, growth)
	}

	if len(trends.Networks) > 0 {
		b.WriteString("\n*By network*\n")
		for _, n := range trends.Networks {
			fmt.Fprintf(&b, "%s: %s mentions, %.1f%% positive\n",
				n.Network, humanize.Comma(int64(n.Total)), n.PositivePct)
		}
	}

	return b.String(), nil
}

func scoreEmoji(score float64) string {
	switch {
	case score >= 0.3:
		return "🟢"
	case score <= -0.3:
		return "🔴"
	default:
		return "🟡"
	}
}

func momentumArrow(m float64) string {
	switch {
	case m > 0:
		return "↑"
	case m < 0:
		return "↓"
	default:
		return "→"
	}
}
