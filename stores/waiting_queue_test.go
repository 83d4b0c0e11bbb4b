package stores

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitingQueue_RejectsDuplicates(t *testing.T) {
	q := NewWaitingQueue()

	assert.True(t, q.Enqueue(1, 10, 100))
	assert.False(t, q.Enqueue(1, 10, 101))
	assert.Equal(t, 1, q.Size(1))

	assert.True(t, q.Enqueue(2, 10, 100), "uniqueness is per tournament")
}

func TestWaitingQueue_FIFO(t *testing.T) {
	q := NewWaitingQueue()
	for _, team := range []int{1, 2, 3, 4} {
		require.True(t, q.Enqueue(5, team, team*10))
	}

	head, ok := q.Peek(5)
	require.True(t, ok)
	assert.Equal(t, 1, head.TeamID)
	assert.Equal(t, 4, q.Size(5))

	for _, want := range []int{1, 2, 3, 4} {
		e, ok := q.Dequeue(5)
		require.True(t, ok)
		assert.Equal(t, want, e.TeamID)
		assert.Equal(t, want*10, e.UserID)
	}
	_, ok = q.Dequeue(5)
	assert.False(t, ok)
	_, ok = q.Peek(5)
	assert.False(t, ok)
}

func TestWaitingQueue_WithdrawalPromotesNext(t *testing.T) {
	const x, y, z = 11, 12, 13
	q := NewWaitingQueue()
	q.Enqueue(1, x, 1)
	q.Enqueue(1, y, 1)
	q.Enqueue(1, z, 1)

	admitted, ok := q.Dequeue(1)
	require.True(t, ok)
	assert.Equal(t, x, admitted.TeamID)

	rest := q.Queue(1)
	require.Len(t, rest, 2)
	assert.Equal(t, y, rest[0].TeamID)
	assert.Equal(t, 1, rest[0].Position)
	assert.Equal(t, z, rest[1].TeamID)
	assert.Equal(t, 2, rest[1].Position)
	assert.Equal(t, 1, q.PositionOf(1, y))
	assert.False(t, q.IsQueued(1, x))
}

func TestWaitingQueue_PositionsShiftAfterHeadRemoval(t *testing.T) {
	q := NewWaitingQueue()
	teams := []int{21, 22, 23, 24, 25}
	for _, team := range teams {
		q.Enqueue(1, team, 1)
	}
	before := make(map[int]int)
	for _, team := range teams[1:] {
		before[team] = q.PositionOf(1, team)
	}

	require.True(t, q.Remove(1, teams[0]))
	for _, team := range teams[1:] {
		assert.Equal(t, before[team]-1, q.PositionOf(1, team))
	}
}

func TestWaitingQueue_RemoveFromMiddle(t *testing.T) {
	q := NewWaitingQueue()
	q.Enqueue(1, 1, 1)
	q.Enqueue(1, 2, 1)
	q.Enqueue(1, 3, 1)

	assert.True(t, q.Remove(1, 2))
	assert.False(t, q.Remove(1, 2))
	assert.False(t, q.Remove(9, 2))
	assert.Equal(t, -1, q.PositionOf(1, 2))
	assert.Equal(t, 2, q.PositionOf(1, 3))

	q.Enqueue(1, 2, 1)
	assert.Equal(t, 3, q.PositionOf(1, 2), "a withdrawn team re-enters at the tail")
}

func TestWaitingQueue_ClearAndAbsent(t *testing.T) {
	q := NewWaitingQueue()
	assert.Equal(t, 0, q.Size(3))
	assert.Empty(t, q.Queue(3))
	assert.Equal(t, -1, q.PositionOf(3, 1))

	q.Enqueue(3, 1, 1)
	q.Clear(3)
	assert.Equal(t, 0, q.Size(3))
	assert.False(t, q.IsQueued(3, 1))
}

func TestWaitingQueue_QueueIsSnapshot(t *testing.T) {
	q := NewWaitingQueue()
	q.Enqueue(1, 1, 1)
	snapshot := q.Queue(1)
	snapshot[0].TeamID = 99
	assert.True(t, q.IsQueued(1, 1))
	assert.False(t, q.IsQueued(1, 99))
}

func TestWaitingQueue_ConcurrentEnqueueSameTeam(t *testing.T) {
	q := NewWaitingQueue()
	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if q.Enqueue(1, 7, 1) {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, accepted)
	assert.Equal(t, 1, q.Size(1))
}
