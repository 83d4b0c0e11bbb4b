package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-engine/models"
	"github.com/lib/pq"
)

var (
	ErrRegistrationNotFound          = errors.New("registration not found")
	ErrRegistrationConflict          = errors.New("team is already registered for this tournament")
	ErrRegistrationTeamInvalid       = errors.New("registration team conflict or invalid")
	ErrRegistrationTournamentInvalid = errors.New("registration tournament conflict or invalid")
)

type RegistrationRepository interface {
	Create(ctx context.Context, exec SQLExecutor, reg *models.Registration) error
	Withdraw(ctx context.Context, exec SQLExecutor, tournamentID, teamID int) error
	FindByTeam(ctx context.Context, tournamentID, teamID int) (*models.Registration, error)
	CountConfirmed(ctx context.Context, tournamentID int) (int, error)
	ListConfirmedTeamIDs(ctx context.Context, tournamentID int) ([]int, error)
}

type postgresRegistrationRepository struct {
	db *sql.DB
}

func NewPostgresRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

func (r *postgresRegistrationRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresRegistrationRepository) Create(ctx context.Context, exec SQLExecutor, reg *models.Registration) error {
	query := `
		INSERT INTO registrations (tournament_id, team_id, user_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		reg.TournamentID, reg.TeamID, reg.UserID, reg.Status,
	).Scan(&reg.ID, &reg.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505": // unique_violation
				return ErrRegistrationConflict
			case "23503": // foreign_key_violation
				switch pqErr.Constraint {
				case "registrations_team_id_fkey":
					return ErrRegistrationTeamInvalid
				case "registrations_tournament_id_fkey":
					return ErrRegistrationTournamentInvalid
				}
			}
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

func (r *postgresRegistrationRepository) Withdraw(ctx context.Context, exec SQLExecutor, tournamentID, teamID int) error {
	query := `
		UPDATE registrations SET status = $1
		WHERE tournament_id = $2 AND team_id = $3 AND status = $4`
	result, err := r.getExecutor(exec).ExecContext(ctx, query,
		models.RegistrationWithdrawn, tournamentID, teamID, models.RegistrationConfirmed)
	if err != nil {
		return fmt.Errorf("failed to withdraw team %d from tournament %d: %w", teamID, tournamentID, err)
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) FindByTeam(ctx context.Context, tournamentID, teamID int) (*models.Registration, error) {
	query := `
		SELECT id, tournament_id, team_id, user_id, status, created_at
		FROM registrations
		WHERE tournament_id = $1 AND team_id = $2 AND status = $3`
	reg := &models.Registration{}
	err := r.db.QueryRowContext(ctx, query, tournamentID, teamID, models.RegistrationConfirmed).Scan(
		&reg.ID, &reg.TournamentID, &reg.TeamID, &reg.UserID, &reg.Status, &reg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to find registration of team %d: %w", teamID, err)
	}
	return reg, nil
}

func (r *postgresRegistrationRepository) CountConfirmed(ctx context.Context, tournamentID int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM registrations WHERE tournament_id = $1 AND status = $2`
	if err := r.db.QueryRowContext(ctx, query, tournamentID, models.RegistrationConfirmed).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count registrations for tournament %d: %w", tournamentID, err)
	}
	return count, nil
}

func (r *postgresRegistrationRepository) ListConfirmedTeamIDs(ctx context.Context, tournamentID int) ([]int, error) {
	query := `
		SELECT team_id FROM registrations
		WHERE tournament_id = $1 AND status = $2
		ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, tournamentID, models.RegistrationConfirmed)
	if err != nil {
		return nil, fmt.Errorf("failed to list registered teams for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan team id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
