package stores

import (
	"sync"
	"time"

	"github.com/Dosada05/tournament-engine/models"
	"github.com/google/uuid"
)

type QueueOption func(*WaitingQueue)

func WithQueueClock(now func() time.Time) QueueOption {
	return func(q *WaitingQueue) {
		q.now = now
	}
}

// WaitingQueue keeps a FIFO of teams waiting for a free slot, one per tournament.
// A team is queued at most once per tournament.
type WaitingQueue struct {
	mu     sync.RWMutex
	queues map[int]*tournamentQueue
	now    func() time.Time
}

type tournamentQueue struct {
	mu      sync.Mutex
	entries []models.QueueEntry
}

func NewWaitingQueue(opts ...QueueOption) *WaitingQueue {
	q := &WaitingQueue{
		queues: make(map[int]*tournamentQueue),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Enqueue appends the team to the tail. It returns false if the team is already queued.
func (q *WaitingQueue) Enqueue(tournamentID, teamID, userID int) bool {
	tq := q.queue(tournamentID, true)
	tq.mu.Lock()
	defer tq.mu.Unlock()
	if tq.indexOf(teamID) >= 0 {
		return false
	}
	tq.entries = append(tq.entries, models.QueueEntry{
		ID:           uuid.NewString(),
		TournamentID: tournamentID,
		TeamID:       teamID,
		UserID:       userID,
		EnqueuedAt:   q.now(),
	})
	return true
}

func (q *WaitingQueue) Dequeue(tournamentID int) (models.QueueEntry, bool) {
	tq := q.queue(tournamentID, false)
	if tq == nil {
		return models.QueueEntry{}, false
	}
	tq.mu.Lock()
	defer tq.mu.Unlock()
	if len(tq.entries) == 0 {
		return models.QueueEntry{}, false
	}
	head := tq.entries[0]
	tq.entries = tq.entries[1:]
	head.Position = 1
	return head, true
}

func (q *WaitingQueue) Peek(tournamentID int) (models.QueueEntry, bool) {
	tq := q.queue(tournamentID, false)
	if tq == nil {
		return models.QueueEntry{}, false
	}
	tq.mu.Lock()
	defer tq.mu.Unlock()
	if len(tq.entries) == 0 {
		return models.QueueEntry{}, false
	}
	head := tq.entries[0]
	head.Position = 1
	return head, true
}

// Queue returns a head to tail copy with positions filled in.
func (q *WaitingQueue) Queue(tournamentID int) []models.QueueEntry {
	tq := q.queue(tournamentID, false)
	if tq == nil {
		return []models.QueueEntry{}
	}
	tq.mu.Lock()
	defer tq.mu.Unlock()
	out := make([]models.QueueEntry, len(tq.entries))
	for i, e := range tq.entries {
		e.Position = i + 1
		out[i] = e
	}
	return out
}

func (q *WaitingQueue) Size(tournamentID int) int {
	tq := q.queue(tournamentID, false)
	if tq == nil {
		return 0
	}
	tq.mu.Lock()
	defer tq.mu.Unlock()
	return len(tq.entries)
}

func (q *WaitingQueue) IsQueued(tournamentID, teamID int) bool {
	return q.PositionOf(tournamentID, teamID) > 0
}

// Remove takes a team out of the queue wherever it stands.
func (q *WaitingQueue) Remove(tournamentID, teamID int) bool {
	tq := q.queue(tournamentID, false)
	if tq == nil {
		return false
	}
	tq.mu.Lock()
	defer tq.mu.Unlock()
	idx := tq.indexOf(teamID)
	if idx < 0 {
		return false
	}
	tq.entries = append(tq.entries[:idx:idx], tq.entries[idx+1:]...)
	return true
}

// PositionOf returns the 1-based position of the team, or -1.
func (q *WaitingQueue) PositionOf(tournamentID, teamID int) int {
	tq := q.queue(tournamentID, false)
	if tq == nil {
		return -1
	}
	tq.mu.Lock()
	defer tq.mu.Unlock()
	idx := tq.indexOf(teamID)
	if idx < 0 {
		return -1
	}
	return idx + 1
}

func (q *WaitingQueue) Clear(tournamentID int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.queues, tournamentID)
}

func (q *WaitingQueue) queue(tournamentID int, create bool) *tournamentQueue {
	q.mu.RLock()
	tq, ok := q.queues[tournamentID]
	q.mu.RUnlock()
	if ok || !create {
		return tq
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if tq, ok = q.queues[tournamentID]; ok {
		return tq
	}
	tq = &tournamentQueue{}
	q.queues[tournamentID] = tq
	return tq
}

func (tq *tournamentQueue) indexOf(teamID int) int {
	for i, e := range tq.entries {
		if e.TeamID == teamID {
			return i
		}
	}
	return -1
}
