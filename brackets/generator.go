package brackets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/tournament-engine/models"
)

var (
	ErrNoTeams                = errors.New("cannot generate bracket with zero teams")
	ErrNotEnoughTeams         = errors.New("not enough teams to generate a bracket (minimum 2)")
	ErrUnsupportedBracketType = errors.New("unsupported bracket type")
)

type GenerateBracketParams struct {
	TournamentID int
	TeamIDs      []int
}

type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*models.Match, error)

	GetName() string
}

// NewGenerator picks the generator for a tournament bracket type.
// Double elimination is not implemented and is played as single elimination.
func NewGenerator(bracketType models.BracketType, logger *slog.Logger, opts ...Option) (BracketGenerator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch bracketType {
	case models.BracketSingleElimination:
		return NewSingleEliminationGenerator(logger, opts...), nil
	case models.BracketDoubleElimination:
		logger.Warn("double elimination is not implemented, falling back to single elimination",
			slog.String("bracket_type", string(bracketType)))
		return NewSingleEliminationGenerator(logger, opts...), nil
	case models.BracketRoundRobin:
		return NewRoundRobinGenerator(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBracketType, bracketType)
	}
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
