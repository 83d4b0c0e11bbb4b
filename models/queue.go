package models

import "time"

// QueueEntry - команда, ожидающая свободного места в турнире.
type QueueEntry struct {
	ID           string    `json:"id"`
	TournamentID int       `json:"tournamentId"`
	TeamID       int       `json:"teamId"`
	UserID       int       `json:"userId"`
	Position     int       `json:"position"`
	EnqueuedAt   time.Time `json:"enqueuedAt"`
}
