package brackets

import "fmt"

// RoundsNeeded returns the smallest r such that 2^r >= teamCount.
func RoundsNeeded(teamCount int) int {
	rounds := 0
	for size := 1; size < teamCount; size <<= 1 {
		rounds++
	}
	return rounds
}

func BracketSize(rounds int) int {
	if rounds <= 0 {
		return 1
	}
	return 1 << uint(rounds)
}

func ByeCount(teamCount, bracketSize int) int {
	return bracketSize - teamCount
}

// RoundName labels a round by its distance from the final.
func RoundName(totalRounds, currentRound int) string {
	switch totalRounds - currentRound {
	case 0:
		return "Final"
	case 1:
		return "Semifinal"
	case 2:
		return "Quarterfinal"
	case 3:
		return "Round of 16"
	default:
		return fmt.Sprintf("Round %d", currentRound)
	}
}
