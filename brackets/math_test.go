package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundsNeeded(t *testing.T) {
	tests := []struct {
		teams int
		want  int
	}{
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{8, 3},
		{9, 4},
		{16, 4},
		{17, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundsNeeded(tt.teams), "teams=%d", tt.teams)
	}
}

func TestBracketSizeIsTightUpperBound(t *testing.T) {
	for n := 2; n <= 200; n++ {
		rounds := RoundsNeeded(n)
		assert.GreaterOrEqual(t, BracketSize(rounds), n, "n=%d", n)
		if n&(n-1) != 0 {
			assert.Less(t, BracketSize(rounds-1), n, "n=%d", n)
		}
	}
}

func TestByeCount(t *testing.T) {
	assert.Equal(t, 3, ByeCount(5, 8))
	assert.Equal(t, 0, ByeCount(8, 8))
	assert.Equal(t, 15, ByeCount(17, 32))
}

func TestRoundName(t *testing.T) {
	tests := []struct {
		total, current int
		want           string
	}{
		{3, 3, "Final"},
		{3, 2, "Semifinal"},
		{3, 1, "Quarterfinal"},
		{4, 1, "Round of 16"},
		{5, 1, "Round 1"},
		{6, 2, "Round 2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundName(tt.total, tt.current))
	}
}
