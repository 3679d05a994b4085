package dev

import (
	"context"
	"strings"

	"delphi/internal/testsupport/seeds"
)

// devTokens is the fixed token set for development. Deterministic addresses
// keep reruns idempotent. SOL appears on two networks on purpose so the
// cross-network queries have something to chew on.
var devTokens = []struct {
	symbol  string
	name    string
	network string
	address string
}{
	{symbol: "SOL", name: "Solana", network: "solana", address: "dev-sol-solana"},
	{symbol: "BONK", name: "Bonk", network: "solana", address: "dev-bonk-solana"},
	{symbol: "WIF", name: "dogwifhat", network: "solana", address: "dev-wif-solana"},
	{symbol: "ETH", name: "Ether", network: "ethereum", address: "dev-eth-ethereum"},
	{symbol: "PEPE", name: "Pepe", network: "ethereum", address: "dev-pepe-ethereum"},
	{symbol: "SOL", name: "Wrapped Solana", network: "ethereum", address: "dev-sol-ethereum"},
	{symbol: "DEGEN", name: "Degen", network: "base", address: "dev-degen-base"},
}

// SeedTokens creates the dev token set (idempotent)
func SeedTokens(ctx context.Context, s *seeds.Seeder) error {
	log := s.Log()

	for _, t := range devTokens {
		_, err := s.Token().
			WithSymbol(t.symbol).
			WithName(t.name).
			WithNetwork(t.network).
			WithAddress(t.address).
			Insert()
		if err != nil {
			// Skip if duplicate (idempotent)
			if strings.Contains(err.Error(), "duplicate key") {
				log.Infow("Token already exists, skipping", "symbol", t.symbol, "network", t.network)
				continue
			}
			return err
		}

		log.Infow("Created token", "symbol", t.symbol, "network", t.network)
	}

	return nil
}
