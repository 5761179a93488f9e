package session

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nedz/interviewbot/interview/questions"
)

func firstIndex(int) int { return 0 }

func TestUnknownUserIsPending(t *testing.T) {
	store := NewMemoryStore(RandomFunc(firstIndex))

	for _, id := range []int64{0, 1, 42, -7} {
		assert.Equal(t, Pending, store.GetState(id))
		assert.Equal(t, 0, store.Remaining(id))
		_, ok := store.Draw(id)
		assert.False(t, ok)
	}
	assert.Equal(t, Stats{}, store.Stats())
}

func TestStartCopiesFullList(t *testing.T) {
	list := questions.New([]string{"Q1", "Q2", "Q3"})
	store := NewMemoryStore(RandomFunc(firstIndex))

	sess := store.Start(42, list)
	assert.Equal(t, Started, sess.State)
	assert.NotEmpty(t, sess.InterviewID)
	assert.ElementsMatch(t, list.Items(), sess.Remaining)
	assert.Equal(t, Started, store.GetState(42))
	assert.Equal(t, 3, store.Remaining(42))

	// Mutating the returned copy must not touch the store.
	sess.Remaining[0] = "mutated"
	snap, ok := store.Snapshot(42)
	require.True(t, ok)
	assert.ElementsMatch(t, list.Items(), snap.Remaining)
}

func TestDrawExhaustsWithoutRepeats(t *testing.T) {
	list := questions.New([]string{"Q1", "Q2", "Q3", "Q4", "Q5"})
	seq := []int{3, 0, 2, 1, 0}
	calls := 0
	store := NewMemoryStore(RandomFunc(func(n int) int {
		idx := seq[calls] % n
		calls++
		return idx
	}))
	store.Start(1, list)

	var drawn []string
	for i := 0; i < list.Len(); i++ {
		q, ok := store.Draw(1)
		require.True(t, ok)
		drawn = append(drawn, q)
	}
	assert.ElementsMatch(t, list.Items(), drawn)

	_, ok := store.Draw(1)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Remaining(1))
	assert.Equal(t, Started, store.GetState(1))
}

func TestEndKeepsRow(t *testing.T) {
	store := NewMemoryStore(nil)
	store.Start(5, questions.New([]string{"Q1"}))
	store.End(5)

	assert.Equal(t, Pending, store.GetState(5))
	_, ok := store.Snapshot(5)
	assert.True(t, ok)

	store.End(6)
	assert.Equal(t, Pending, store.GetState(6))
	assert.Equal(t, Stats{Sessions: 2, Started: 0}, store.Stats())
}

func TestRestartRefillsPool(t *testing.T) {
	list := questions.New([]string{"Q1", "Q2"})
	store := NewMemoryStore(nil)

	first := store.Start(9, list)
	_, _ = store.Draw(9)
	_, _ = store.Draw(9)
	store.End(9)
	second := store.Start(9, list)

	assert.Equal(t, 2, store.Remaining(9))
	assert.NotEqual(t, first.InterviewID, second.InterviewID)
}

func TestConcurrentDrawsAreDistinct(t *testing.T) {
	items := make([]string, 0, 200)
	for i := 0; i < 200; i++ {
		items = append(items, "Q"+string(rune('A'+i%26))+string(rune('a'+i/26)))
	}
	list := questions.New(items)
	store := NewMemoryStore(nil)
	store.Start(1, list)

	var (
		mu      sync.Mutex
		got     []string
		wg      sync.WaitGroup
		workers = 8
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				q, ok := store.Draw(1)
				if !ok {
					return
				}
				mu.Lock()
				got = append(got, q)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	sort.Strings(got)
	want := list.Items()
	sort.Strings(want)
	assert.Equal(t, want, got)
}

func TestLockIsPerUser(t *testing.T) {
	store := NewMemoryStore(nil)
	unlockA := store.Lock(1)

	done := make(chan struct{})
	go func() {
		unlockB := store.Lock(2)
		unlockB()
		close(done)
	}()
	<-done
	unlockA()
}
