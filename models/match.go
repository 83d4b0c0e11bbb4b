package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusLive      MatchStatus = "live"
	MatchStatusFinished  MatchStatus = "finished"
	MatchStatusCancelled MatchStatus = "cancelled"
)

func (s MatchStatus) IsValid() bool {
	switch s {
	case MatchStatusScheduled, MatchStatusLive, MatchStatusFinished, MatchStatusCancelled:
		return true
	}
	return false
}

// Match представляет матч турнира: групповой (GroupID != nil) или матч сетки на выбывание.
type Match struct {
	ID           int         `json:"id" db:"id"`
	TournamentID int         `json:"tournament_id" db:"tournament_id"`
	GroupID      *int        `json:"group_id,omitempty" db:"group_id"`
	RoundName    *string     `json:"round_name,omitempty" db:"round_name"`
	RoundNumber  *int        `json:"round_number,omitempty" db:"round_number"`
	MatchNumber  *int        `json:"match_number,omitempty" db:"match_number"`
	TeamHomeID   *int        `json:"team_home_id,omitempty" db:"team_home_id"`
	TeamAwayID   *int        `json:"team_away_id,omitempty" db:"team_away_id"`
	Status       MatchStatus `json:"status" db:"status"`
	ScoreHome    *int        `json:"score_home,omitempty" db:"score_home"`
	ScoreAway    *int        `json:"score_away,omitempty" db:"score_away"`
	WinnerID     *int        `json:"winner_id,omitempty" db:"winner_id"`
	MatchData    *string     `json:"match_data,omitempty" db:"match_data"` // Sport specific payload, stored as raw text
	ScheduledAt  *time.Time  `json:"scheduled_at,omitempty" db:"scheduled_at"`
	StartedAt    *time.Time  `json:"started_at,omitempty" db:"started_at"`
	FinishedAt   *time.Time  `json:"finished_at,omitempty" db:"finished_at"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}

// IsBracketMatch reports whether the match belongs to direct-elimination play.
func (m *Match) IsBracketMatch() bool {
	return m != nil && m.GroupID == nil && m.RoundNumber != nil
}

// MatchSnapshot is an immutable copy of the mutable part of a match, taken
// before a result change so it can be restored later.
type MatchSnapshot struct {
	ID         string      `json:"id"`
	MatchID    int         `json:"matchId"`
	ScoreHome  *int        `json:"scoreHome"`
	ScoreAway  *int        `json:"scoreAway"`
	WinnerID   *int        `json:"winnerId"`
	Status     MatchStatus `json:"status"`
	MatchData  *string     `json:"matchData,omitempty"`
	FinishedAt *time.Time  `json:"finishedAt,omitempty"`
	UpdatedBy  int         `json:"updatedBy"`
	Timestamp  time.Time   `json:"timestamp"`
}
