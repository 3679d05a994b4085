package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundPlaces(t *testing.T) {
	// Half-way cases round away from zero, independent of float artifacts
	assert.Equal(t, 0.13, roundPlaces(0.125, 2))
	assert.Equal(t, -0.13, roundPlaces(-0.125, 2))
	assert.Equal(t, 33.33, roundPlaces(100.0/3.0, 2))
	assert.Equal(t, 66.67, roundPlaces(200.0/3.0, 2))
	assert.Equal(t, 0.667, round3(2.0/3.0))
	assert.Equal(t, 33.3, round1(100.0/3.0))
}

func TestPct(t *testing.T) {
	assert.Equal(t, 50.0, pct(5, 10, 2))
	assert.Equal(t, 33.33, pct(1, 3, 2))
	assert.Equal(t, 0.0, pct(5, 0, 2))
	assert.Equal(t, 0.0, pct(0, 10, 2))
}

func TestScore(t *testing.T) {
	assert.Equal(t, 0.3, score(5, 2, 10, 2))
	assert.Equal(t, -1.0, score(0, 4, 4, 2))
	assert.Equal(t, 1.0, score(4, 0, 4, 2))
	assert.Equal(t, 0.0, score(0, 0, 0, 2))
}
