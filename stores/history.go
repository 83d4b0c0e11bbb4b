package stores

import (
	"sync"
	"time"

	"github.com/Dosada05/tournament-engine/models"
	"github.com/google/uuid"
)

const DefaultHistoryLimit = 10

type HistoryOption func(*MatchHistory)

func WithHistoryLimit(limit int) HistoryOption {
	return func(h *MatchHistory) {
		if limit > 0 {
			h.limit = limit
		}
	}
}

func WithHistoryClock(now func() time.Time) HistoryOption {
	return func(h *MatchHistory) {
		h.now = now
	}
}

// MatchHistory keeps a bounded undo stack of result snapshots per match.
// Pushing past the limit drops the oldest snapshot; Pop always returns the newest.
type MatchHistory struct {
	mu     sync.RWMutex
	stacks map[int]*historyStack
	limit  int
	now    func() time.Time
}

type historyStack struct {
	mu    sync.Mutex
	items []models.MatchSnapshot
}

func NewMatchHistory(opts ...HistoryOption) *MatchHistory {
	h := &MatchHistory{
		stacks: make(map[int]*historyStack),
		limit:  DefaultHistoryLimit,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Push snapshots the mutable fields of match and puts them on top of its stack.
func (h *MatchHistory) Push(match *models.Match, actingUserID int) models.MatchSnapshot {
	if match == nil {
		return models.MatchSnapshot{}
	}
	snap := models.MatchSnapshot{
		ID:         uuid.NewString(),
		MatchID:    match.ID,
		ScoreHome:  copyInt(match.ScoreHome),
		ScoreAway:  copyInt(match.ScoreAway),
		WinnerID:   copyInt(match.WinnerID),
		Status:     match.Status,
		MatchData:  copyString(match.MatchData),
		FinishedAt: copyTime(match.FinishedAt),
		UpdatedBy:  actingUserID,
		Timestamp:  h.now(),
	}

	stack := h.stack(match.ID, true)
	stack.mu.Lock()
	defer stack.mu.Unlock()
	stack.items = append(stack.items, snap)
	if len(stack.items) > h.limit {
		// evict from the bottom, undo reads from the top
		stack.items = append(stack.items[:0:0], stack.items[len(stack.items)-h.limit:]...)
	}
	return snap
}

func (h *MatchHistory) Pop(matchID int) (models.MatchSnapshot, bool) {
	stack := h.stack(matchID, false)
	if stack == nil {
		return models.MatchSnapshot{}, false
	}
	stack.mu.Lock()
	defer stack.mu.Unlock()
	if len(stack.items) == 0 {
		return models.MatchSnapshot{}, false
	}
	last := stack.items[len(stack.items)-1]
	stack.items = stack.items[:len(stack.items)-1]
	return last, true
}

func (h *MatchHistory) Peek(matchID int) (models.MatchSnapshot, bool) {
	stack := h.stack(matchID, false)
	if stack == nil {
		return models.MatchSnapshot{}, false
	}
	stack.mu.Lock()
	defer stack.mu.Unlock()
	if len(stack.items) == 0 {
		return models.MatchSnapshot{}, false
	}
	return stack.items[len(stack.items)-1], true
}

// History returns the stack bottom to top. The slice is a copy.
func (h *MatchHistory) History(matchID int) []models.MatchSnapshot {
	stack := h.stack(matchID, false)
	if stack == nil {
		return []models.MatchSnapshot{}
	}
	stack.mu.Lock()
	defer stack.mu.Unlock()
	out := make([]models.MatchSnapshot, len(stack.items))
	copy(out, stack.items)
	return out
}

func (h *MatchHistory) CanUndo(matchID int) bool {
	stack := h.stack(matchID, false)
	if stack == nil {
		return false
	}
	stack.mu.Lock()
	defer stack.mu.Unlock()
	return len(stack.items) > 0
}

func (h *MatchHistory) Clear(matchID int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.stacks, matchID)
}

func (h *MatchHistory) ClearAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stacks = make(map[int]*historyStack)
}

func (h *MatchHistory) Limit() int {
	return h.limit
}

func (h *MatchHistory) stack(matchID int, create bool) *historyStack {
	h.mu.RLock()
	stack, ok := h.stacks[matchID]
	h.mu.RUnlock()
	if ok || !create {
		return stack
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if stack, ok = h.stacks[matchID]; ok {
		return stack
	}
	stack = &historyStack{}
	h.stacks[matchID] = stack
	return stack
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
