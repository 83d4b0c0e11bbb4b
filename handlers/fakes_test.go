package handlers

import (
	"context"

	"github.com/Dosada05/tournament-engine/models"
	"github.com/Dosada05/tournament-engine/services"
	"github.com/Dosada05/tournament-engine/storage"
	"github.com/Dosada05/tournament-engine/stores"
)

type fakeBracketService struct {
	view    *services.BracketView
	matches []*models.Match
	path    []*models.Match
	export  *storage.UploadResult
	err     error
}

func (f *fakeBracketService) GenerateBracket(context.Context, int) ([]*models.Match, error) {
	return f.matches, f.err
}

func (f *fakeBracketService) GetBracket(context.Context, int) (*services.BracketView, error) {
	return f.view, f.err
}

func (f *fakeBracketService) ListBracketMatches(context.Context, int) ([]*models.Match, error) {
	return f.matches, f.err
}

func (f *fakeBracketService) GetPath(context.Context, int, int) ([]*models.Match, error) {
	return f.path, f.err
}

func (f *fakeBracketService) ExportBracket(context.Context, int) (*storage.UploadResult, error) {
	return f.export, f.err
}

type fakeMatchService struct {
	match     *models.Match
	history   []models.MatchSnapshot
	err       error
	gotUserID int
	gotInput  services.RecordResultInput
}

func (f *fakeMatchService) GetMatch(context.Context, int) (*models.Match, error) {
	return f.match, f.err
}

func (f *fakeMatchService) RecordResult(_ context.Context, _ int, userID int, input services.RecordResultInput) (*models.Match, error) {
	f.gotUserID, f.gotInput = userID, input
	return f.match, f.err
}

func (f *fakeMatchService) UndoResult(_ context.Context, _ int, userID int) (*models.Match, error) {
	f.gotUserID = userID
	return f.match, f.err
}

func (f *fakeMatchService) History(context.Context, int) ([]models.MatchSnapshot, error) {
	return f.history, f.err
}

func (f *fakeMatchService) CanUndo(int) bool { return len(f.history) > 0 }

type fakeStandingsService struct {
	table       []models.Standing
	err         error
	invalidated []int
}

func (f *fakeStandingsService) GroupStandings(context.Context, int) ([]models.Standing, error) {
	return f.table, f.err
}

func (f *fakeStandingsService) InvalidateGroup(groupID int) {
	f.invalidated = append(f.invalidated, groupID)
}

func (f *fakeStandingsService) InvalidateGroups(groupIDs []int) {
	f.invalidated = append(f.invalidated, groupIDs...)
}

func (f *fakeStandingsService) CacheStats() stores.CacheStats {
	return stores.CacheStats{Entries: 2, Hits: 5}
}

type fakeRegistrationService struct {
	result   *services.RegistrationResult
	promoted *models.Registration
	queue    []models.QueueEntry
	entry    *models.QueueEntry
	err      error
}

func (f *fakeRegistrationService) Register(context.Context, int, int, int) (*services.RegistrationResult, error) {
	return f.result, f.err
}

func (f *fakeRegistrationService) Withdraw(context.Context, int, int) (*models.Registration, error) {
	return f.promoted, f.err
}

func (f *fakeRegistrationService) CancelQueued(context.Context, int, int) error { return f.err }

func (f *fakeRegistrationService) CloseQueue(context.Context, int) {}

func (f *fakeRegistrationService) Queue(context.Context, int) ([]models.QueueEntry, error) {
	return f.queue, f.err
}

func (f *fakeRegistrationService) Position(context.Context, int, int) (*models.QueueEntry, error) {
	return f.entry, f.err
}
