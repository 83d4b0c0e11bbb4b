package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/Dosada05/tournament-engine/models"
	"github.com/Dosada05/tournament-engine/repositories"
	"github.com/Dosada05/tournament-engine/storage"
	"github.com/Dosada05/tournament-engine/stores"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(v int) *int { return &v }

type fakeTx struct {
	calls int
}

func (f *fakeTx) RunInTx(_ context.Context, fn func(exec repositories.SQLExecutor) error) error {
	f.calls++
	return fn(nil)
}

type fakeTournamentRepo struct {
	mu          sync.Mutex
	tournaments map[int]*models.Tournament
}

func newFakeTournamentRepo(ts ...*models.Tournament) *fakeTournamentRepo {
	r := &fakeTournamentRepo{tournaments: make(map[int]*models.Tournament)}
	for _, t := range ts {
		r.tournaments[t.ID] = t
	}
	return r
}

func (r *fakeTournamentRepo) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTournamentRepo) UpdateStatus(_ context.Context, _ repositories.SQLExecutor, id int, status models.TournamentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.Status = status
	return nil
}

type fakeMatchRepo struct {
	mu        sync.Mutex
	matches   map[int]*models.Match
	nextID    int
	updateErr error
	listCalls int
}

func newFakeMatchRepo(ms ...*models.Match) *fakeMatchRepo {
	r := &fakeMatchRepo{matches: make(map[int]*models.Match), nextID: 1}
	for _, m := range ms {
		r.matches[m.ID] = m
		if m.ID >= r.nextID {
			r.nextID = m.ID + 1
		}
	}
	return r
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id int) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMatchRepo) filter(keep func(*models.Match) bool) []*models.Match {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	out := make([]*models.Match, 0)
	for _, m := range r.matches {
		if keep(m) {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeMatchRepo) ListByTournament(_ context.Context, tournamentID int) ([]*models.Match, error) {
	return r.filter(func(m *models.Match) bool { return m.TournamentID == tournamentID }), nil
}

func (r *fakeMatchRepo) ListByGroup(_ context.Context, groupID int) ([]*models.Match, error) {
	return r.filter(func(m *models.Match) bool { return m.GroupID != nil && *m.GroupID == groupID }), nil
}

func (r *fakeMatchRepo) CountByTournament(_ context.Context, tournamentID int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.matches {
		if m.TournamentID == tournamentID {
			n++
		}
	}
	return n, nil
}

func (r *fakeMatchRepo) CreateBatch(_ context.Context, _ repositories.SQLExecutor, matches []*models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range matches {
		m.ID = r.nextID
		r.nextID++
		cp := *m
		r.matches[m.ID] = &cp
	}
	return nil
}

func (r *fakeMatchRepo) UpdateResult(_ context.Context, _ repositories.SQLExecutor, m *models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.matches[m.ID]; !ok {
		return repositories.ErrMatchNotFound
	}
	cp := *m
	r.matches[m.ID] = &cp
	return nil
}

type fakeRegistrationRepo struct {
	mu     sync.Mutex
	regs   []*models.Registration
	nextID int
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{nextID: 1}
}

func (r *fakeRegistrationRepo) confirm(tournamentID int, teamIDs ...int) {
	for _, id := range teamIDs {
		_ = r.Create(context.Background(), nil, &models.Registration{
			TournamentID: tournamentID, TeamID: id, Status: models.RegistrationConfirmed,
		})
	}
}

func (r *fakeRegistrationRepo) Create(_ context.Context, _ repositories.SQLExecutor, reg *models.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.regs {
		if existing.TournamentID == reg.TournamentID && existing.TeamID == reg.TeamID && existing.Status == models.RegistrationConfirmed {
			return repositories.ErrRegistrationConflict
		}
	}
	reg.ID = r.nextID
	r.nextID++
	cp := *reg
	r.regs = append(r.regs, &cp)
	return nil
}

func (r *fakeRegistrationRepo) Withdraw(_ context.Context, _ repositories.SQLExecutor, tournamentID, teamID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reg := range r.regs {
		if reg.TournamentID == tournamentID && reg.TeamID == teamID && reg.Status == models.RegistrationConfirmed {
			reg.Status = models.RegistrationWithdrawn
			return nil
		}
	}
	return repositories.ErrRegistrationNotFound
}

func (r *fakeRegistrationRepo) FindByTeam(_ context.Context, tournamentID, teamID int) (*models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reg := range r.regs {
		if reg.TournamentID == tournamentID && reg.TeamID == teamID && reg.Status == models.RegistrationConfirmed {
			cp := *reg
			return &cp, nil
		}
	}
	return nil, repositories.ErrRegistrationNotFound
}

func (r *fakeRegistrationRepo) CountConfirmed(ctx context.Context, tournamentID int) (int, error) {
	ids, _ := r.ListConfirmedTeamIDs(ctx, tournamentID)
	return len(ids), nil
}

func (r *fakeRegistrationRepo) ListConfirmedTeamIDs(_ context.Context, tournamentID int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int, 0)
	for _, reg := range r.regs {
		if reg.TournamentID == tournamentID && reg.Status == models.RegistrationConfirmed {
			ids = append(ids, reg.TeamID)
		}
	}
	return ids, nil
}

type publishedEvent struct {
	TournamentID int
	Type         string
	Payload      interface{}
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (n *fakeNotifier) Publish(tournamentID int, eventType string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, publishedEvent{TournamentID: tournamentID, Type: eventType, Payload: payload})
}

func (n *fakeNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.events))
	for _, e := range n.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeStandings struct {
	mu          sync.Mutex
	invalidated []int
}

func (f *fakeStandings) GroupStandings(context.Context, int) ([]models.Standing, error) {
	return []models.Standing{}, nil
}

func (f *fakeStandings) InvalidateGroup(groupID int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, groupID)
}

func (f *fakeStandings) InvalidateGroups(groupIDs []int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, groupIDs...)
}

func (f *fakeStandings) CacheStats() stores.CacheStats { return stores.CacheStats{} }

type fakeQueueCloser struct {
	mu     sync.Mutex
	closed []int
}

func (f *fakeQueueCloser) CloseQueue(_ context.Context, tournamentID int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = append(f.closed, tournamentID)
}

type fakeUploader struct {
	key         string
	contentType string
	body        []byte
	err         error
}

func (u *fakeUploader) Upload(_ context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if u.err != nil {
		return nil, u.err
	}
	u.key, u.contentType = key, contentType
	u.body, _ = io.ReadAll(reader)
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}
