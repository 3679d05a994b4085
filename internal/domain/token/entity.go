package token

import (
	"fmt"
	"strings"
	"time"
)

// Token is a tradable on-chain asset. The address is unique; the symbol is
// not, since assets with the same ticker exist on different networks.
type Token struct {
	ID        int64     `db:"id"`
	Address   string    `db:"address"`
	Symbol    string    `db:"symbol"`
	Name      string    `db:"name"`
	Network   string    `db:"network"` // empty when unaffiliated
	CreatedAt time.Time `db:"created_at"`
}

// Key returns the composite identity of the token.
func (t Token) Key() Key {
	return Key{Symbol: t.Symbol, Network: t.Network}
}

// Network is a blockchain platform hosting tokens.
type Network struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	DisplayName string `db:"display_name"`
}

// Mention is the many-to-many edge recording that a post referenced a token.
// The mention timestamp may differ from the post creation time and feeds
// first/last seen queries.
type Mention struct {
	ID          int64     `db:"id"`
	PostID      int64     `db:"post_id"`
	TokenID     int64     `db:"token_id"`
	MentionedAt time.Time `db:"mentioned_at"`
}

// Key identifies a token by symbol plus network. Symbol alone is ambiguous
// across networks, so the pair is used wherever results are keyed per token
// instead of a "symbol_network" string.
type Key struct {
	Symbol  string
	Network string
}

// Display renders the key for presentation: "SOL" or "SOL (solana)".
func (k Key) Display() string {
	if k.Network == "" {
		return k.Symbol
	}
	return fmt.Sprintf("%s (%s)", k.Symbol, k.Network)
}

// MarshalText lets a Key serve as a JSON map key.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.Display()), nil
}

// UnmarshalText parses the Display form back into a Key.
func (k *Key) UnmarshalText(text []byte) error {
	s := string(text)
	if i := strings.IndexByte(s, '('); i > 0 && strings.HasSuffix(s, ")") {
		k.Symbol = strings.TrimSpace(s[:i])
		k.Network = s[i+1 : len(s)-1]
		return nil
	}
	k.Symbol = s
	k.Network = ""
	return nil
}
