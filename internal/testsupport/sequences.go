package testsupport

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var (
	// Global counter for generating unique sequential IDs in tests
	testSequence uint64

	// Base timestamp to make names shorter
	baseTimestamp = time.Now().UnixNano()
)

func init() {
	// Initialize with current timestamp to ensure uniqueness across test runs
	testSequence = uint64(baseTimestamp % 1000000)
}

// NextSequence returns next unique sequence number
func NextSequence() uint64 {
	return atomic.AddUint64(&testSequence, 1)
}

// UniqueName generates a unique name with given prefix
// Example: UniqueName("network") -> "network_123456"
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, NextSequence())
}

// UniqueSymbol generates a unique token symbol for tests
// Example: UniqueSymbol("SOL") -> "SOL_123456"
func UniqueSymbol(base string) string {
	return fmt.Sprintf("%s_%d", base, NextSequence())
}

// UniqueAddress generates a unique on-chain address placeholder
func UniqueAddress() string {
	return fmt.Sprintf("addr_%d_%s", NextSequence(), uuid.New().String()[:8])
}

// UniquePostID generates a unique platform post identifier
func UniquePostID() string {
	return fmt.Sprintf("post_%d_%s", NextSequence(), uuid.New().String()[:8])
}

// UniqueAuthorID generates a unique author identifier
func UniqueAuthorID() string {
	return fmt.Sprintf("author_%d", NextSequence())
}

// UniqueUsername generates a unique username
// Example: UniqueUsername() -> "user_123456"
func UniqueUsername() string {
	return fmt.Sprintf("user_%d", NextSequence())
}

// UniqueString generates a unique string identifier
// Useful when you need guaranteed uniqueness (uses UUID)
func UniqueString() string {
	return uuid.New().String()
}
