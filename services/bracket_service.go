package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Dosada05/tournament-engine/brackets"
	"github.com/Dosada05/tournament-engine/models"
	"github.com/Dosada05/tournament-engine/repositories"
	"github.com/Dosada05/tournament-engine/storage"
	"golang.org/x/sync/errgroup"
)

const bracketExportContentType = "application/json"

// BracketView is the read model of an elimination bracket.
type BracketView struct {
	TournamentID int                    `json:"tournament_id"`
	BracketType  models.BracketType     `json:"bracket_type"`
	Depth        int                    `json:"depth"`
	Rounds       int                    `json:"rounds"`
	MatchCount   int                    `json:"match_count"`
	Tree         map[string]interface{} `json:"tree"`
}

type BracketGeneratedPayload struct {
	TournamentID int                `json:"tournament_id"`
	BracketType  models.BracketType `json:"bracket_type"`
	MatchCount   int                `json:"match_count"`
	TeamCount    int                `json:"team_count"`
}

type BracketService interface {
	GenerateBracket(ctx context.Context, tournamentID int) ([]*models.Match, error)
	GetBracket(ctx context.Context, tournamentID int) (*BracketView, error)
	ListBracketMatches(ctx context.Context, tournamentID int) ([]*models.Match, error)
	GetPath(ctx context.Context, tournamentID, matchID int) ([]*models.Match, error)
	ExportBracket(ctx context.Context, tournamentID int) (*storage.UploadResult, error)
}

// QueueCloser drops a tournament's waiting teams once the bracket is drawn.
type QueueCloser interface {
	CloseQueue(ctx context.Context, tournamentID int)
}

type bracketService struct {
	tx               repositories.TxRunner
	tournamentRepo   repositories.TournamentRepository
	registrationRepo repositories.RegistrationRepository
	matchRepo        repositories.MatchRepository
	standings        StandingsService
	queues           QueueCloser
	uploader         storage.FileUploader
	notifier         Notifier
	logger           *slog.Logger
	generatorOpts    []brackets.Option
}

// NewBracketService собирает сервис сетки. uploader может быть nil, тогда экспорт отключен.
// queues может быть nil, если очередь ожидания не используется.
func NewBracketService(
	tx repositories.TxRunner,
	tournamentRepo repositories.TournamentRepository,
	registrationRepo repositories.RegistrationRepository,
	matchRepo repositories.MatchRepository,
	standings StandingsService,
	queues QueueCloser,
	uploader storage.FileUploader,
	notifier Notifier,
	logger *slog.Logger,
	generatorOpts ...brackets.Option,
) BracketService {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &bracketService{
		tx:               tx,
		tournamentRepo:   tournamentRepo,
		registrationRepo: registrationRepo,
		matchRepo:        matchRepo,
		standings:        standings,
		queues:           queues,
		uploader:         uploader,
		notifier:         notifier,
		logger:           logger,
		generatorOpts:    generatorOpts,
	}
}

func (s *bracketService) GenerateBracket(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	var (
		tournament    *models.Tournament
		teamIDs       []int
		existingCount int
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.tournamentRepo.GetByID(gCtx, tournamentID)
		if err != nil {
			return handleRepositoryError(err)
		}
		tournament = t
		return nil
	})
	g.Go(func() error {
		ids, err := s.registrationRepo.ListConfirmedTeamIDs(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to list registered teams for tournament %d: %w", tournamentID, err)
		}
		teamIDs = ids
		return nil
	})
	g.Go(func() error {
		count, err := s.matchRepo.CountByTournament(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to count matches for tournament %d: %w", tournamentID, err)
		}
		existingCount = count
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if existingCount > 0 {
		return nil, ErrBracketAlreadyGenerated
	}
	if !isValidStatusTransition(tournament.Status, models.StatusActive) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrTournamentInvalidStatusTransition, tournament.Status, models.StatusActive)
	}

	generator, err := brackets.NewGenerator(tournament.BracketType, s.logger, s.generatorOpts...)
	if err != nil {
		return nil, handleRepositoryError(err)
	}

	s.logger.InfoContext(ctx, "generating bracket",
		slog.Int("tournament_id", tournament.ID),
		slog.String("generator", generator.GetName()),
		slog.Int("teams", len(teamIDs)))

	matches, err := generator.GenerateBracket(ctx, brackets.GenerateBracketParams{
		TournamentID: tournament.ID,
		TeamIDs:      teamIDs,
	})
	if err != nil {
		return nil, handleRepositoryError(err)
	}

	err = s.tx.RunInTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.matchRepo.CreateBatch(ctx, exec, matches); err != nil {
			return handleRepositoryError(err)
		}
		return handleRepositoryError(s.tournamentRepo.UpdateStatus(ctx, exec, tournament.ID, models.StatusActive))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save bracket for tournament %d: %w", tournament.ID, err)
	}

	if groups := groupIDs(matches); len(groups) > 0 {
		s.standings.InvalidateGroups(groups)
	}
	if s.queues != nil {
		s.queues.CloseQueue(ctx, tournament.ID)
	}

	s.notifier.Publish(tournament.ID, brackets.EventBracketGenerated, BracketGeneratedPayload{
		TournamentID: tournament.ID,
		BracketType:  tournament.BracketType,
		MatchCount:   len(matches),
		TeamCount:    len(teamIDs),
	})
	s.logger.InfoContext(ctx, "bracket saved",
		slog.Int("tournament_id", tournament.ID), slog.Int("matches", len(matches)))

	return matches, nil
}

// groupIDs returns the distinct groups of the matches in first-seen order.
func groupIDs(matches []*models.Match) []int {
	seen := make(map[int]bool)
	var ids []int
	for _, m := range matches {
		if m.GroupID == nil || seen[*m.GroupID] {
			continue
		}
		seen[*m.GroupID] = true
		ids = append(ids, *m.GroupID)
	}
	return ids
}

func (s *bracketService) loadTree(ctx context.Context, tournamentID int) (*models.Tournament, *brackets.BracketNode, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, nil, handleRepositoryError(err)
	}
	if !tournament.BracketType.IsElimination() {
		return nil, nil, ErrNotEliminationBracket
	}

	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list matches for tournament %d: %w", tournamentID, err)
	}
	root := brackets.BuildTree(matches)
	if root == nil {
		return nil, nil, ErrBracketNotAvailable
	}
	return tournament, root, nil
}

func (s *bracketService) GetBracket(ctx context.Context, tournamentID int) (*BracketView, error) {
	tournament, root, err := s.loadTree(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return &BracketView{
		TournamentID: tournament.ID,
		BracketType:  tournament.BracketType,
		Depth:        brackets.Depth(root),
		Rounds:       derefInt(root.Match.RoundNumber),
		MatchCount:   len(brackets.InorderTraversal(root)),
		Tree:         brackets.Serialize(root),
	}, nil
}

func (s *bracketService) ListBracketMatches(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	_, root, err := s.loadTree(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return brackets.InorderTraversal(root), nil
}

func (s *bracketService) GetPath(ctx context.Context, tournamentID, matchID int) ([]*models.Match, error) {
	_, root, err := s.loadTree(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if !brackets.ValidatePath(root, matchID) {
		return nil, ErrMatchNotInBracket
	}
	return brackets.PathToMatch(root, matchID), nil
}

func (s *bracketService) ExportBracket(ctx context.Context, tournamentID int) (*storage.UploadResult, error) {
	if s.uploader == nil {
		return nil, ErrExportDisabled
	}
	view, err := s.GetBracket(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(view)
	if err != nil {
		return nil, fmt.Errorf("failed to encode bracket of tournament %d: %w", tournamentID, err)
	}

	result, err := s.uploader.Upload(ctx, storage.BracketExportKey(tournamentID), bracketExportContentType, bytes.NewReader(body))
	if err != nil {
		s.logger.ErrorContext(ctx, "bracket export failed", slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to export bracket of tournament %d: %w", tournamentID, err)
	}
	s.logger.InfoContext(ctx, "bracket exported",
		slog.Int("tournament_id", tournamentID), slog.String("location", result.Location))
	return result, nil
}
