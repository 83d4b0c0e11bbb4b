package models

import "time"

// TournamentStatus представляет статусы турнира, соответствующие ENUM в БД.
type TournamentStatus string

const (
	StatusSoon         TournamentStatus = "soon"
	StatusRegistration TournamentStatus = "registration"
	StatusActive       TournamentStatus = "active"
	StatusCompleted    TournamentStatus = "completed"
	StatusCanceled     TournamentStatus = "canceled"
)

type BracketType string

const (
	BracketSingleElimination BracketType = "single_elimination"
	BracketDoubleElimination BracketType = "double_elimination"
	BracketRoundRobin        BracketType = "round_robin"
)

// IsElimination reports whether the type is played as a knockout tree.
func (b BracketType) IsElimination() bool {
	return b == BracketSingleElimination || b == BracketDoubleElimination
}

// Tournament представляет турнир.
type Tournament struct {
	ID          int              `json:"id" db:"id"`
	Name        string           `json:"name" db:"name"`
	BracketType BracketType      `json:"bracket_type" db:"bracket_type"`
	Status      TournamentStatus `json:"status" db:"status"`
	MaxTeams    int              `json:"max_teams" db:"max_teams"`
	StartDate   time.Time        `json:"start_date" db:"start_date"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
}
