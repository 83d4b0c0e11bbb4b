package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-engine/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(ss services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: ss}
}

// GroupStandingsHandler обрабатывает GET /groups/{groupID}/standings
func (h *StandingsHandler) GroupStandingsHandler(w http.ResponseWriter, r *http.Request) {
	groupID, err := getIDFromURL(r, "groupID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.standingsService.GroupStandings(r.Context(), groupID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"group_id": groupID, "standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// InvalidateHandler обрабатывает DELETE /groups/{groupID}/standings/cache
func (h *StandingsHandler) InvalidateHandler(w http.ResponseWriter, r *http.Request) {
	groupID, err := getIDFromURL(r, "groupID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	h.standingsService.InvalidateGroup(groupID)
	w.WriteHeader(http.StatusNoContent)
}

// CacheStatsHandler обрабатывает GET /standings/cache/stats
func (h *StandingsHandler) CacheStatsHandler(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"cache": h.standingsService.CacheStats()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
