package dev

import (
	"context"
	"strings"

	"delphi/internal/testsupport/seeds"
)

// SeedNetworks creates the blockchain networks used by dev data (idempotent)
func SeedNetworks(ctx context.Context, s *seeds.Seeder) error {
	log := s.Log()

	networks := []struct {
		name        string
		displayName string
	}{
		{name: "solana", displayName: "Solana"},
		{name: "ethereum", displayName: "Ethereum"},
		{name: "base", displayName: "Base"},
	}

	for _, n := range networks {
		_, err := s.Network().
			WithName(n.name).
			WithDisplayName(n.displayName).
			Insert()
		if err != nil {
			// Skip if duplicate (idempotent)
			if strings.Contains(err.Error(), "duplicate key") {
				log.Infow("Network already exists, skipping", "name", n.name)
				continue
			}
			return err
		}

		log.Infow("Created network", "name", n.name)
	}

	return nil
}
