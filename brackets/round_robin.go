package brackets

import (
	"context"
	"fmt"
	"sort"

	"github.com/Dosada05/tournament-engine/models"
)

// RoundRobinGenerator plays a single group where every team meets every other team once.
// The group id equals the tournament id.
type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() BracketGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

func (g *RoundRobinGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*models.Match, error) {
	teams := params.TeamIDs
	if len(teams) == 0 {
		return nil, ErrNoTeams
	}
	if len(teams) < 2 {
		return nil, fmt.Errorf("RoundRobinGenerator: %w (found %d)", ErrNotEnoughTeams, len(teams))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	groupID := params.TournamentID
	matches := make([]*models.Match, 0, len(teams)*(len(teams)-1)/2)
	matchOrder := 0

	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			matchOrder++
			matches = append(matches, &models.Match{
				TournamentID: params.TournamentID,
				GroupID:      intPtr(groupID),
				MatchNumber:  intPtr(matchOrder),
				TeamHomeID:   intPtr(teams[i]),
				TeamAwayID:   intPtr(teams[j]),
				Status:       models.MatchStatusScheduled,
			})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return *matches[i].MatchNumber < *matches[j].MatchNumber
	})

	return matches, nil
}
