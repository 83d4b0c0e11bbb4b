package services

import (
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-engine/brackets"
	"github.com/Dosada05/tournament-engine/models"
	"github.com/Dosada05/tournament-engine/repositories"
)

// Notifier доставляет события подписчикам комнаты турнира.
type Notifier interface {
	Publish(tournamentID int, eventType string, payload interface{})
}

type noopNotifier struct{}

func (noopNotifier) Publish(int, string, interface{}) {}

// handleRepositoryError переводит ошибки репозиториев в ошибки сервисов.
func handleRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrRegistrationNotFound):
		return ErrRegistrationNotFound
	case errors.Is(err, repositories.ErrRegistrationConflict):
		return ErrRegistrationConflict
	case errors.Is(err, repositories.ErrRegistrationTeamInvalid),
		errors.Is(err, repositories.ErrRegistrationTournamentInvalid),
		errors.Is(err, repositories.ErrMatchTeamInvalid),
		errors.Is(err, repositories.ErrMatchTournamentInvalid),
		errors.Is(err, repositories.ErrMatchNumberConflict):
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	case errors.Is(err, brackets.ErrNoTeams),
		errors.Is(err, brackets.ErrNotEnoughTeams),
		errors.Is(err, brackets.ErrUnsupportedBracketType):
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	return err
}

func isValidStatusTransition(current, next models.TournamentStatus) bool {
	if current == next {
		return true
	}
	allowedTransitions := map[models.TournamentStatus][]models.TournamentStatus{
		models.StatusSoon:         {models.StatusRegistration, models.StatusCanceled},
		models.StatusRegistration: {models.StatusActive, models.StatusCanceled},
		models.StatusActive:       {models.StatusCompleted, models.StatusCanceled},
		models.StatusCompleted:    {},
		models.StatusCanceled:     {},
	}
	for _, allowedNextStatus := range allowedTransitions[current] {
		if next == allowedNextStatus {
			return true
		}
	}
	return false
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
