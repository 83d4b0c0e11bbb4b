package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Dosada05/tournament-engine/brackets"
	"github.com/Dosada05/tournament-engine/models"
	"github.com/Dosada05/tournament-engine/repositories"
	"github.com/Dosada05/tournament-engine/stores"
)

// RecordResultInput - изменения результата матча. Пустые поля не меняются.
type RecordResultInput struct {
	ScoreHome *int                `json:"score_home"`
	ScoreAway *int                `json:"score_away"`
	WinnerID  *int                `json:"winner_id"`
	Status    *models.MatchStatus `json:"status"`
	MatchData *string             `json:"match_data"`
}

type MatchResultPayload struct {
	Match      *models.Match `json:"match"`
	SnapshotID string        `json:"snapshot_id,omitempty"`
	UserID     int           `json:"user_id"`
	CanUndo    bool          `json:"can_undo"`
}

type StandingsInvalidatedPayload struct {
	GroupID int `json:"group_id"`
	MatchID int `json:"match_id"`
}

type MatchService interface {
	GetMatch(ctx context.Context, matchID int) (*models.Match, error)
	RecordResult(ctx context.Context, matchID, userID int, input RecordResultInput) (*models.Match, error)
	UndoResult(ctx context.Context, matchID, userID int) (*models.Match, error)
	History(ctx context.Context, matchID int) ([]models.MatchSnapshot, error)
	CanUndo(matchID int) bool
}

type matchService struct {
	matchRepo repositories.MatchRepository
	history   *stores.MatchHistory
	standings StandingsService
	notifier  Notifier
	logger    *slog.Logger
	now       func() time.Time

	// writes holds a *sync.Mutex per match id.
	writes sync.Map
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	history *stores.MatchHistory,
	standings StandingsService,
	notifier Notifier,
	logger *slog.Logger,
) MatchService {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &matchService{
		matchRepo: matchRepo,
		history:   history,
		standings: standings,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *matchService) GetMatch(ctx context.Context, matchID int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return match, nil
}

// lockMatch serializes result changes of one match so every snapshot
// captures the state the change is applied to.
func (s *matchService) lockMatch(matchID int) func() {
	mu, _ := s.writes.LoadOrStore(matchID, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

func validateResultInput(match *models.Match, input RecordResultInput) error {
	if (input.ScoreHome != nil && *input.ScoreHome < 0) || (input.ScoreAway != nil && *input.ScoreAway < 0) {
		return fmt.Errorf("%w: %w", ErrValidationFailed, ErrInvalidScore)
	}
	if input.Status != nil && !input.Status.IsValid() {
		return fmt.Errorf("%w: %w: %q", ErrValidationFailed, ErrInvalidMatchStatus, *input.Status)
	}
	if input.WinnerID != nil {
		home, away := match.TeamHomeID, match.TeamAwayID
		if (home == nil || *home != *input.WinnerID) && (away == nil || *away != *input.WinnerID) {
			return fmt.Errorf("%w: %w", ErrValidationFailed, ErrInvalidWinner)
		}
	}
	return nil
}

// applyResult переносит входные данные в матч. Финальный статус по умолчанию,
// когда переданы оба счета; победитель выводится из счета, если не указан.
func (s *matchService) applyResult(match *models.Match, input RecordResultInput) {
	if input.ScoreHome != nil {
		match.ScoreHome = input.ScoreHome
	}
	if input.ScoreAway != nil {
		match.ScoreAway = input.ScoreAway
	}
	if input.MatchData != nil {
		match.MatchData = input.MatchData
	}

	switch {
	case input.Status != nil:
		match.Status = *input.Status
	case input.ScoreHome != nil && input.ScoreAway != nil:
		match.Status = models.MatchStatusFinished
	}

	now := s.now()
	switch match.Status {
	case models.MatchStatusLive:
		if match.StartedAt == nil {
			match.StartedAt = &now
		}
		match.FinishedAt = nil
	case models.MatchStatusFinished:
		if match.FinishedAt == nil {
			match.FinishedAt = &now
		}
	default:
		match.FinishedAt = nil
	}

	switch {
	case input.WinnerID != nil:
		match.WinnerID = input.WinnerID
	case match.Status == models.MatchStatusFinished && match.ScoreHome != nil && match.ScoreAway != nil:
		match.WinnerID = nil
		if *match.ScoreHome > *match.ScoreAway {
			match.WinnerID = match.TeamHomeID
		} else if *match.ScoreAway > *match.ScoreHome {
			match.WinnerID = match.TeamAwayID
		}
	case match.Status != models.MatchStatusFinished:
		match.WinnerID = nil
	}
}

func (s *matchService) RecordResult(ctx context.Context, matchID, userID int, input RecordResultInput) (*models.Match, error) {
	unlock := s.lockMatch(matchID)
	defer unlock()

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	if match.Status == models.MatchStatusCancelled && (input.Status == nil || *input.Status == models.MatchStatusCancelled) {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, ErrMatchNotEditable)
	}
	if err := validateResultInput(match, input); err != nil {
		return nil, err
	}

	snapshot := s.history.Push(match, userID)
	s.applyResult(match, input)

	if err := s.matchRepo.UpdateResult(ctx, nil, match); err != nil {
		if top, ok := s.history.Peek(matchID); ok && top.ID == snapshot.ID {
			s.history.Pop(matchID)
		}
		return nil, fmt.Errorf("failed to save result of match %d: %w", matchID, handleRepositoryError(err))
	}

	s.logger.InfoContext(ctx, "match result recorded",
		slog.Int("match_id", matchID),
		slog.Int("user_id", userID),
		slog.String("status", string(match.Status)),
		slog.String("snapshot_id", snapshot.ID))

	s.afterChange(match, brackets.EventMatchResultRecorded, snapshot.ID, userID)
	return match, nil
}

func (s *matchService) UndoResult(ctx context.Context, matchID, userID int) (*models.Match, error) {
	unlock := s.lockMatch(matchID)
	defer unlock()

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}

	snapshot, ok := s.history.Pop(matchID)
	if !ok {
		return nil, ErrNothingToUndo
	}

	match.ScoreHome = snapshot.ScoreHome
	match.ScoreAway = snapshot.ScoreAway
	match.WinnerID = snapshot.WinnerID
	match.Status = snapshot.Status
	match.MatchData = snapshot.MatchData
	match.FinishedAt = snapshot.FinishedAt

	if err := s.matchRepo.UpdateResult(ctx, nil, match); err != nil {
		s.logger.ErrorContext(ctx, "failed to restore match snapshot, keeping it in history",
			slog.Int("match_id", matchID), slog.String("snapshot_id", snapshot.ID), slog.Any("error", err))
		s.history.Push(match, snapshot.UpdatedBy)
		return nil, fmt.Errorf("failed to restore result of match %d: %w", matchID, handleRepositoryError(err))
	}

	s.logger.InfoContext(ctx, "match result undone",
		slog.Int("match_id", matchID),
		slog.Int("user_id", userID),
		slog.String("snapshot_id", snapshot.ID),
		slog.Int("snapshot_author", snapshot.UpdatedBy))

	s.afterChange(match, brackets.EventMatchResultUndone, snapshot.ID, userID)
	return match, nil
}

func (s *matchService) afterChange(match *models.Match, eventType, snapshotID string, userID int) {
	if match.GroupID != nil {
		s.standings.InvalidateGroup(*match.GroupID)
		s.notifier.Publish(match.TournamentID, brackets.EventStandingsChanged, StandingsInvalidatedPayload{
			GroupID: *match.GroupID,
			MatchID: match.ID,
		})
	}
	s.notifier.Publish(match.TournamentID, eventType, MatchResultPayload{
		Match:      match,
		SnapshotID: snapshotID,
		UserID:     userID,
		CanUndo:    s.history.CanUndo(match.ID),
	})
}

func (s *matchService) History(ctx context.Context, matchID int) ([]models.MatchSnapshot, error) {
	if _, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
		return nil, handleRepositoryError(err)
	}
	return s.history.History(matchID), nil
}

func (s *matchService) CanUndo(matchID int) bool {
	return s.history.CanUndo(matchID)
}
