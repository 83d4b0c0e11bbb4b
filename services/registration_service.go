package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Dosada05/tournament-engine/brackets"
	"github.com/Dosada05/tournament-engine/models"
	"github.com/Dosada05/tournament-engine/repositories"
	"github.com/Dosada05/tournament-engine/stores"
)

// RegistrationResult - итог заявки: либо регистрация, либо место в очереди.
type RegistrationResult struct {
	Registered   bool                 `json:"registered"`
	Registration *models.Registration `json:"registration,omitempty"`
	QueueEntry   *models.QueueEntry   `json:"queue_entry,omitempty"`
}

type QueueUpdatedPayload struct {
	TournamentID int                 `json:"tournament_id"`
	Queue        []models.QueueEntry `json:"queue"`
	PromotedTeam *int                `json:"promoted_team_id,omitempty"`
}

type RegistrationService interface {
	Register(ctx context.Context, tournamentID, teamID, userID int) (*RegistrationResult, error)
	Withdraw(ctx context.Context, tournamentID, teamID int) (*models.Registration, error)
	CancelQueued(ctx context.Context, tournamentID, teamID int) error
	Queue(ctx context.Context, tournamentID int) ([]models.QueueEntry, error)
	Position(ctx context.Context, tournamentID, teamID int) (*models.QueueEntry, error)
	CloseQueue(ctx context.Context, tournamentID int)
}

type registrationService struct {
	tx               repositories.TxRunner
	tournamentRepo   repositories.TournamentRepository
	registrationRepo repositories.RegistrationRepository
	queue            *stores.WaitingQueue
	notifier         Notifier
	logger           *slog.Logger

	// admission serializes capacity checks and promotions from the queue.
	admission sync.Mutex
}

func NewRegistrationService(
	tx repositories.TxRunner,
	tournamentRepo repositories.TournamentRepository,
	registrationRepo repositories.RegistrationRepository,
	queue *stores.WaitingQueue,
	notifier Notifier,
	logger *slog.Logger,
) RegistrationService {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &registrationService{
		tx:               tx,
		tournamentRepo:   tournamentRepo,
		registrationRepo: registrationRepo,
		queue:            queue,
		notifier:         notifier,
		logger:           logger,
	}
}

func (s *registrationService) openTournament(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	if tournament.Status != models.StatusRegistration {
		return nil, ErrRegistrationNotOpen
	}
	return tournament, nil
}

func (s *registrationService) Register(ctx context.Context, tournamentID, teamID, userID int) (*RegistrationResult, error) {
	tournament, err := s.openTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	s.admission.Lock()
	defer s.admission.Unlock()

	if s.queue.IsQueued(tournamentID, teamID) {
		return nil, ErrAlreadyQueued
	}
	_, err = s.registrationRepo.FindByTeam(ctx, tournamentID, teamID)
	if err == nil {
		return nil, ErrRegistrationConflict
	}
	if !errors.Is(err, repositories.ErrRegistrationNotFound) {
		return nil, fmt.Errorf("failed to check registration of team %d: %w", teamID, err)
	}

	count, err := s.registrationRepo.CountConfirmed(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	if tournament.MaxTeams <= 0 || count < tournament.MaxTeams {
		reg := &models.Registration{
			TournamentID: tournamentID,
			TeamID:       teamID,
			UserID:       userID,
			Status:       models.RegistrationConfirmed,
		}
		if err := s.registrationRepo.Create(ctx, nil, reg); err != nil {
			return nil, handleRepositoryError(err)
		}
		s.logger.InfoContext(ctx, "team registered",
			slog.Int("tournament_id", tournamentID), slog.Int("team_id", teamID), slog.Int("user_id", userID))
		return &RegistrationResult{Registered: true, Registration: reg}, nil
	}

	if !s.queue.Enqueue(tournamentID, teamID, userID) {
		return nil, ErrAlreadyQueued
	}
	entry, _ := s.findQueued(tournamentID, teamID)
	s.logger.InfoContext(ctx, "tournament full, team queued",
		slog.Int("tournament_id", tournamentID),
		slog.Int("team_id", teamID),
		slog.Int("position", entry.Position))
	s.publishQueue(tournamentID, nil)
	return &RegistrationResult{Registered: false, QueueEntry: &entry}, nil
}

// Withdraw снимает команду и, пока идет регистрация, переводит первую команду
// очереди в участники. Возвращает регистрацию переведенной команды или nil.
func (s *registrationService) Withdraw(ctx context.Context, tournamentID, teamID int) (*models.Registration, error) {
	s.admission.Lock()
	defer s.admission.Unlock()

	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	registrationOpen := tournament.Status == models.StatusRegistration

	head, hasHead := s.queue.Peek(tournamentID)
	promote := hasHead && registrationOpen
	var promoted *models.Registration

	err = s.tx.RunInTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.registrationRepo.Withdraw(ctx, exec, tournamentID, teamID); err != nil {
			return handleRepositoryError(err)
		}
		if !promote {
			return nil
		}
		reg := &models.Registration{
			TournamentID: tournamentID,
			TeamID:       head.TeamID,
			UserID:       head.UserID,
			Status:       models.RegistrationConfirmed,
		}
		if err := s.registrationRepo.Create(ctx, exec, reg); err != nil {
			return handleRepositoryError(err)
		}
		promoted = reg
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "team withdrawn",
		slog.Int("tournament_id", tournamentID), slog.Int("team_id", teamID))
	if !registrationOpen {
		s.clearQueue(ctx, tournamentID)
		return nil, nil
	}
	if promoted == nil {
		return nil, nil
	}

	s.queue.Remove(tournamentID, head.TeamID)
	s.logger.InfoContext(ctx, "queued team promoted",
		slog.Int("tournament_id", tournamentID), slog.Int("team_id", promoted.TeamID))
	s.publishQueue(tournamentID, &promoted.TeamID)
	return promoted, nil
}

// CloseQueue drops every waiting team once registration is over.
func (s *registrationService) CloseQueue(ctx context.Context, tournamentID int) {
	s.admission.Lock()
	defer s.admission.Unlock()
	s.clearQueue(ctx, tournamentID)
}

// clearQueue requires s.admission to be held.
func (s *registrationService) clearQueue(ctx context.Context, tournamentID int) {
	dropped := s.queue.Size(tournamentID)
	if dropped == 0 {
		return
	}
	s.queue.Clear(tournamentID)
	s.logger.InfoContext(ctx, "waiting queue closed",
		slog.Int("tournament_id", tournamentID), slog.Int("dropped", dropped))
	s.publishQueue(tournamentID, nil)
}

func (s *registrationService) CancelQueued(ctx context.Context, tournamentID, teamID int) error {
	s.admission.Lock()
	removed := s.queue.Remove(tournamentID, teamID)
	s.admission.Unlock()

	if !removed {
		return ErrNotQueued
	}
	s.logger.InfoContext(ctx, "queued team cancelled",
		slog.Int("tournament_id", tournamentID), slog.Int("team_id", teamID))
	s.publishQueue(tournamentID, nil)
	return nil
}

func (s *registrationService) Queue(ctx context.Context, tournamentID int) ([]models.QueueEntry, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, handleRepositoryError(err)
	}
	return s.queue.Queue(tournamentID), nil
}

func (s *registrationService) Position(ctx context.Context, tournamentID, teamID int) (*models.QueueEntry, error) {
	entry, ok := s.findQueued(tournamentID, teamID)
	if !ok {
		return nil, ErrNotQueued
	}
	return &entry, nil
}

func (s *registrationService) findQueued(tournamentID, teamID int) (models.QueueEntry, bool) {
	for _, entry := range s.queue.Queue(tournamentID) {
		if entry.TeamID == teamID {
			return entry, true
		}
	}
	return models.QueueEntry{}, false
}

func (s *registrationService) publishQueue(tournamentID int, promoted *int) {
	s.notifier.Publish(tournamentID, brackets.EventQueueUpdated, QueueUpdatedPayload{
		TournamentID: tournamentID,
		Queue:        s.queue.Queue(tournamentID),
		PromotedTeam: promoted,
	})
}
