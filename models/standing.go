package models

// Standing is one row of a group table.
type Standing struct {
	TeamID          int `json:"team_id"`
	Played          int `json:"played"`
	Wins            int `json:"wins"`
	Draws           int `json:"draws"`
	Losses          int `json:"losses"`
	ScoreFor        int `json:"score_for"`
	ScoreAgainst    int `json:"score_against"`
	ScoreDifference int `json:"score_difference"`
	Points          int `json:"points"`
	Rank            int `json:"rank"`
}
