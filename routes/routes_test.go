package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dosada05/tournament-engine/brackets"
	"github.com/Dosada05/tournament-engine/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(burst int) http.Handler {
	router := chi.NewRouter()
	SetupRoutes(router, Handlers{
		Bracket:      handlers.NewBracketHandler(nil),
		Match:        handlers.NewMatchHandler(nil),
		Standings:    handlers.NewStandingsHandler(nil),
		Registration: handlers.NewRegistrationHandler(nil),
		WebSocket:    handlers.NewWebSocketHandler(brackets.NewHub(nil), []string{"*"}, nil),
	}, Options{
		JWTSecret:      "secret",
		AllowedOrigins: []string{"https://app.example.com"},
		RateLimitRPS:   1,
		RateLimitBurst: burst,
	})
	return router
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(100)

	routes := []struct{ method, path string }{
		{http.MethodPost, "/tournaments/1/bracket"},
		{http.MethodPost, "/tournaments/1/bracket/export"},
		{http.MethodPost, "/tournaments/1/registrations"},
		{http.MethodDelete, "/tournaments/1/registrations/2"},
		{http.MethodDelete, "/tournaments/1/queue/2"},
		{http.MethodPut, "/matches/1/result"},
		{http.MethodPost, "/matches/1/undo"},
		{http.MethodDelete, "/groups/1/standings/cache"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(rt.method, rt.path, nil))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestMutatingRoutesAreRateLimited(t *testing.T) {
	router := newTestRouter(1)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/matches/1/undo", nil)
		req.RemoteAddr = "192.0.2.1:5000"
		router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusTooManyRequests}, codes)
}

func TestSwaggerDocServed(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(1).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/matches/{matchID}/undo")
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/matches/1/result", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()

	newTestRouter(1).ServeHTTP(rec, req)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
