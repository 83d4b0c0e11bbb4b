package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/Dosada05/tournament-engine/models"
	"github.com/Dosada05/tournament-engine/repositories"
	"github.com/Dosada05/tournament-engine/stores"
)

const (
	pointsForWin  = 3
	pointsForDraw = 1
)

type StandingsService interface {
	GroupStandings(ctx context.Context, groupID int) ([]models.Standing, error)
	InvalidateGroup(groupID int)
	InvalidateGroups(groupIDs []int)
	CacheStats() stores.CacheStats
}

type standingsService struct {
	matchRepo repositories.MatchRepository
	cache     *stores.StandingsCache
	logger    *slog.Logger
}

func NewStandingsService(matchRepo repositories.MatchRepository, cache *stores.StandingsCache, logger *slog.Logger) StandingsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &standingsService{matchRepo: matchRepo, cache: cache, logger: logger}
}

func (s *standingsService) GroupStandings(ctx context.Context, groupID int) ([]models.Standing, error) {
	return s.cache.GetOrCompute(groupID, func() ([]models.Standing, error) {
		matches, err := s.matchRepo.ListByGroup(ctx, groupID)
		if err != nil {
			return nil, fmt.Errorf("failed to list matches of group %d: %w", groupID, err)
		}
		if len(matches) == 0 {
			return nil, ErrGroupNotFound
		}
		s.logger.DebugContext(ctx, "computing group standings",
			slog.Int("group_id", groupID), slog.Int("matches", len(matches)))
		return ComputeStandings(matches), nil
	})
}

func (s *standingsService) InvalidateGroup(groupID int) {
	s.cache.Invalidate(groupID)
}

func (s *standingsService) InvalidateGroups(groupIDs []int) {
	s.cache.InvalidateAll(groupIDs)
}

func (s *standingsService) CacheStats() stores.CacheStats {
	return s.cache.Stats()
}

// ComputeStandings builds a group table. Every team that appears in a match is
// listed; only finished matches with both scores count. Ties on points are
// broken by score difference, then score for, then team id.
func ComputeStandings(matches []*models.Match) []models.Standing {
	byTeam := make(map[int]*models.Standing)
	team := func(id int) *models.Standing {
		st, ok := byTeam[id]
		if !ok {
			st = &models.Standing{TeamID: id}
			byTeam[id] = st
		}
		return st
	}

	for _, m := range matches {
		if m == nil || m.TeamHomeID == nil || m.TeamAwayID == nil {
			continue
		}
		home, away := team(*m.TeamHomeID), team(*m.TeamAwayID)
		if m.Status != models.MatchStatusFinished || m.ScoreHome == nil || m.ScoreAway == nil {
			continue
		}
		sh, sa := *m.ScoreHome, *m.ScoreAway

		home.Played++
		away.Played++
		home.ScoreFor += sh
		home.ScoreAgainst += sa
		away.ScoreFor += sa
		away.ScoreAgainst += sh

		switch {
		case sh > sa:
			home.Wins++
			away.Losses++
		case sh < sa:
			away.Wins++
			home.Losses++
		default:
			home.Draws++
			away.Draws++
		}
	}

	table := make([]models.Standing, 0, len(byTeam))
	for _, st := range byTeam {
		st.ScoreDifference = st.ScoreFor - st.ScoreAgainst
		st.Points = st.Wins*pointsForWin + st.Draws*pointsForDraw
		table = append(table, *st)
	}

	sort.Slice(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.ScoreDifference != b.ScoreDifference {
			return a.ScoreDifference > b.ScoreDifference
		}
		if a.ScoreFor != b.ScoreFor {
			return a.ScoreFor > b.ScoreFor
		}
		return a.TeamID < b.TeamID
	})
	for i := range table {
		table[i].Rank = i + 1
	}
	return table
}
