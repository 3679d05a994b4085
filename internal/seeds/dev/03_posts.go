package dev

import (
	"context"
	"fmt"
	"strings"
	"time"

	"delphi/internal/domain/sentiment"
	"delphi/internal/testsupport/seeds"
)

// devAuthors is the fixed author pool. The first two post often enough to
// show up in top-user queries.
var devAuthors = []struct {
	id       string
	username string
}{
	{id: "dev-author-1", username: "sol_maxi"},
	{id: "dev-author-2", username: "chain_watcher"},
	{id: "dev-author-3", username: "pepe_enjoyer"},
	{id: "dev-author-4", username: "base_builder"},
	{id: "dev-author-5", username: "quiet_lurker"},
}

// postScenario describes one post template. Scenarios are stamped out once
// per day across the seeded window, with the day offset folded into the
// external id so reruns stay idempotent.
type postScenario struct {
	text       string
	addresses  []string // token addresses to mention
	sentiment  sentiment.Sentiment
	confidence float64
	author     int
	likes      int
	reposts    int
	everyNDays int // 1 = daily, 2 = every other day, ...
	sinceDay   int // only emitted for day offsets <= sinceDay (recent momentum)
}

var devPostScenarios = []postScenario{
	// SOL on solana: steady volume, turning positive in the recent half
	{text: "SOL breaking out again, this chain is unstoppable", addresses: []string{"dev-sol-solana"}, sentiment: sentiment.Positive, confidence: 0.91, author: 0, likes: 120, reposts: 34, everyNDays: 1, sinceDay: 6},
	{text: "solana fees are still the best in the business", addresses: []string{"dev-sol-solana"}, sentiment: sentiment.Positive, confidence: 0.78, author: 1, likes: 45, reposts: 9, everyNDays: 2, sinceDay: 13},
	{text: "another solana outage scare, watching closely", addresses: []string{"dev-sol-solana"}, sentiment: sentiment.Negative, confidence: 0.82, author: 2, likes: 15, reposts: 4, everyNDays: 3, sinceDay: 13},
	{text: "SOL volume flat today", addresses: []string{"dev-sol-solana"}, sentiment: sentiment.Neutral, confidence: 0.65, author: 4, likes: 3, reposts: 0, everyNDays: 2, sinceDay: 13},

	// BONK rides SOL hype and is frequently co-mentioned with it
	{text: "BONK and SOL carrying my whole portfolio", addresses: []string{"dev-bonk-solana", "dev-sol-solana"}, sentiment: sentiment.Positive, confidence: 0.88, author: 0, likes: 210, reposts: 67, everyNDays: 2, sinceDay: 9},
	{text: "bonk chart looks exhausted", addresses: []string{"dev-bonk-solana"}, sentiment: sentiment.Negative, confidence: 0.74, author: 1, likes: 22, reposts: 5, everyNDays: 3, sinceDay: 13},

	// WIF stays thin and recent so min-mention cutoffs have something to drop
	{text: "is WIF back?", addresses: []string{"dev-wif-solana"}, sentiment: sentiment.Positive, confidence: 0.6, author: 2, likes: 8, reposts: 1, everyNDays: 2, sinceDay: 3},

	// ETH and PEPE on ethereum, PEPE co-mentioned with ETH
	{text: "ETH L2 season loading", addresses: []string{"dev-eth-ethereum"}, sentiment: sentiment.Positive, confidence: 0.8, author: 1, likes: 95, reposts: 21, everyNDays: 1, sinceDay: 13},
	{text: "gas spiked again, classic ethereum", addresses: []string{"dev-eth-ethereum"}, sentiment: sentiment.Negative, confidence: 0.85, author: 3, likes: 40, reposts: 12, everyNDays: 2, sinceDay: 13},
	{text: "PEPE dumping while ETH holds", addresses: []string{"dev-pepe-ethereum", "dev-eth-ethereum"}, sentiment: sentiment.Negative, confidence: 0.79, author: 2, likes: 55, reposts: 18, everyNDays: 2, sinceDay: 13},
	{text: "pepe never dies", addresses: []string{"dev-pepe-ethereum"}, sentiment: sentiment.Positive, confidence: 0.7, author: 2, likes: 30, reposts: 8, everyNDays: 3, sinceDay: 13},

	// Wrapped SOL chatter on ethereum, sparse
	{text: "bridged my SOL over to ethereum for the yields", addresses: []string{"dev-sol-ethereum"}, sentiment: sentiment.Neutral, confidence: 0.55, author: 4, likes: 5, reposts: 0, everyNDays: 4, sinceDay: 13},

	// DEGEN on base
	{text: "DEGEN tips flowing on base today", addresses: []string{"dev-degen-base"}, sentiment: sentiment.Positive, confidence: 0.77, author: 3, likes: 60, reposts: 25, everyNDays: 2, sinceDay: 13},
	{text: "degen airdrop drama continues", addresses: []string{"dev-degen-base"}, sentiment: sentiment.Negative, confidence: 0.68, author: 3, likes: 18, reposts: 6, everyNDays: 4, sinceDay: 13},
}

// seedDays is the window the dev posts cover, counting back from now.
const seedDays = 14

// SeedPosts creates annotated posts across the last two weeks (idempotent)
func SeedPosts(ctx context.Context, s *seeds.Seeder) error {
	log := s.Log()

	// Resolve token ids for every address used by the scenarios
	tokenIDs := make(map[string]int64)
	for _, sc := range devPostScenarios {
		for _, addr := range sc.addresses {
			if _, ok := tokenIDs[addr]; ok {
				continue
			}
			id, err := s.TokenIDByAddress(addr)
			if err != nil {
				return fmt.Errorf("failed to resolve token %s: %w", addr, err)
			}
			tokenIDs[addr] = id
		}
	}

	now := time.Now().UTC()
	created := 0

	for si, sc := range devPostScenarios {
		for day := 0; day < seedDays; day++ {
			if day > sc.sinceDay || day%sc.everyNDays != 0 {
				continue
			}

			author := devAuthors[sc.author]
			createdAt := now.AddDate(0, 0, -day).Add(-time.Duration(si) * 17 * time.Minute)

			builder := s.Post().
				WithText(sc.text).
				WithAuthor(author.id, author.username).
				WithCreatedAt(createdAt).
				WithLikes(sc.likes).
				WithReposts(sc.reposts).
				WithSentiment(sc.sentiment, sc.confidence)

			for _, addr := range sc.addresses {
				builder.WithMentions(tokenIDs[addr])
			}

			_, err := builder.
				WithExternalID(fmt.Sprintf("dev-post-%02d-%02d", si, day)).
				Insert()
			if err != nil {
				// Skip if duplicate (idempotent)
				if strings.Contains(err.Error(), "duplicate key") {
					continue
				}
				return err
			}

			created++
		}
	}

	log.Infow("Created dev posts", "count", created)
	return nil
}
