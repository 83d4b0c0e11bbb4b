package brackets

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/Dosada05/tournament-engine/models"
)

const pendingSlotData = `{"pending":"awaiting results of previous round"}`

type Option func(*SingleEliminationGenerator)

// WithRand fixes the shuffle source. Without it the team order is random per call.
func WithRand(r *rand.Rand) Option {
	return func(g *SingleEliminationGenerator) {
		g.rnd = r
	}
}

// WithClock overrides the time used for bye finish timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *SingleEliminationGenerator) {
		g.now = now
	}
}

type SingleEliminationGenerator struct {
	logger *slog.Logger
	rnd    *rand.Rand
	now    func() time.Time
}

func NewSingleEliminationGenerator(logger *slog.Logger, opts ...Option) *SingleEliminationGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	g := &SingleEliminationGenerator{logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *SingleEliminationGenerator) GetName() string {
	return "SingleElimination"
}

// GenerateBracket builds every match of a single elimination bracket.
// Round 1 pairs the shuffled teams, byes are finished immediately with a 1-0
// score. Later rounds are empty placeholders; filling them as results come in
// is up to the match workflow.
func (g *SingleEliminationGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*models.Match, error) {
	n := len(params.TeamIDs)
	if n == 0 {
		return nil, ErrNoTeams
	}
	if n < 2 {
		return nil, ErrNotEnoughTeams
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	teams := make([]int, n)
	copy(teams, params.TeamIDs)
	g.shuffle(teams)

	numRounds := RoundsNeeded(n)
	size := BracketSize(numRounds)
	numByes := ByeCount(n, size)

	g.logger.Info("generating single elimination bracket",
		slog.Int("tournament_id", params.TournamentID),
		slog.Int("teams", n),
		slog.Int("rounds", numRounds),
		slog.Int("bracket_size", size),
		slog.Int("byes", numByes))

	matches := make([]*models.Match, 0, size-1)
	matchNumber := 0
	finishedAt := g.now()

	fullPairings := (n - numByes) / 2
	teamIdx := 0
	for i := 0; i < size/2; i++ {
		matchNumber++
		m := g.newMatch(params.TournamentID, numRounds, 1, matchNumber)

		if i < fullPairings {
			m.TeamHomeID = intPtr(teams[teamIdx])
			m.TeamAwayID = intPtr(teams[teamIdx+1])
			teamIdx += 2
		} else {
			home := teams[teamIdx]
			teamIdx++
			m.TeamHomeID = intPtr(home)
			m.Status = models.MatchStatusFinished
			m.WinnerID = intPtr(home)
			m.ScoreHome = intPtr(1)
			m.ScoreAway = intPtr(0)
			m.FinishedAt = &finishedAt
		}
		matches = append(matches, m)
	}

	for r := 2; r <= numRounds; r++ {
		for i := 0; i < size>>uint(r); i++ {
			matchNumber++
			m := g.newMatch(params.TournamentID, numRounds, r, matchNumber)
			m.MatchData = strPtr(pendingSlotData)
			matches = append(matches, m)
		}
	}

	return matches, nil
}

func (g *SingleEliminationGenerator) newMatch(tournamentID, totalRounds, round, number int) *models.Match {
	return &models.Match{
		TournamentID: tournamentID,
		RoundName:    strPtr(RoundName(totalRounds, round)),
		RoundNumber:  intPtr(round),
		MatchNumber:  intPtr(number),
		Status:       models.MatchStatusScheduled,
	}
}

func (g *SingleEliminationGenerator) shuffle(teams []int) {
	swap := func(i, j int) { teams[i], teams[j] = teams[j], teams[i] }
	if g.rnd != nil {
		g.rnd.Shuffle(len(teams), swap)
		return
	}
	rand.Shuffle(len(teams), swap)
}
