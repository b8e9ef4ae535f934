package quota

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"goodjob/apperr"
	"goodjob/models"
)

// memCounter is an in-memory Counter. dupKeyErrs makes the next N
// increments fail the way a racing upsert does.
type memCounter struct {
	mu           sync.Mutex
	counts       map[models.UserRef]int
	dupKeyErrs   int
	decrementErr error
	increments   int
}

func newMemCounter() *memCounter {
	return &memCounter{counts: map[models.UserRef]int{}}
}

func (c *memCounter) Increment(_ context.Context, user models.UserRef) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.increments++
	if c.dupKeyErrs > 0 {
		c.dupKeyErrs--
		return 0, mongo.CommandError{Code: 11000, Message: "E11000 duplicate key error"}
	}
	c.counts[user]++
	return c.counts[user], nil
}

func (c *memCounter) Decrement(_ context.Context, user models.UserRef) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.decrementErr != nil {
		return c.decrementErr
	}
	c.counts[user]--
	return nil
}

func (c *memCounter) get(user models.UserRef) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[user]
}

var alice = models.UserRef{ID: "alice", Type: "facebook"}

func TestCheckAndUpdate_CountsUpToLimit(t *testing.T) {
	counter := newMemCounter()
	m := NewManager(counter, 5)

	for i := 1; i <= 5; i++ {
		n, err := m.CheckAndUpdate(context.Background(), alice)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
	assert.Equal(t, 5, counter.get(alice))
}

func TestCheckAndUpdate_SixthIsRejectedAndCompensated(t *testing.T) {
	counter := newMemCounter()
	m := NewManager(counter, 5)
	for i := 0; i < 5; i++ {
		_, err := m.CheckAndUpdate(context.Background(), alice)
		require.NoError(t, err)
	}

	_, err := m.CheckAndUpdate(context.Background(), alice)
	require.Error(t, err)
	assert.Equal(t, http.StatusTooManyRequests, apperr.StatusOf(err))
	assert.Equal(t, 5, counter.get(alice))
}

func TestCheckAndUpdate_UsersAreIndependent(t *testing.T) {
	counter := newMemCounter()
	m := NewManager(counter, 1)
	bob := models.UserRef{ID: "alice", Type: "google"}

	_, err := m.CheckAndUpdate(context.Background(), alice)
	require.NoError(t, err)
	n, err := m.CheckAndUpdate(context.Background(), bob)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCheckAndUpdate_RetriesDuplicateKeyOnce(t *testing.T) {
	counter := newMemCounter()
	counter.dupKeyErrs = 1
	m := NewManager(counter, 5)

	n, err := m.CheckAndUpdate(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, counter.increments)
}

func TestCheckAndUpdate_SecondDuplicateKeyPropagates(t *testing.T) {
	counter := newMemCounter()
	counter.dupKeyErrs = 2
	m := NewManager(counter, 5)

	_, err := m.CheckAndUpdate(context.Background(), alice)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperr.StatusOf(err))
	assert.Equal(t, 2, counter.increments)
}

func TestCheckAndUpdate_CompensationFailureIsSwallowed(t *testing.T) {
	counter := newMemCounter()
	m := NewManager(counter, 1)
	_, err := m.CheckAndUpdate(context.Background(), alice)
	require.NoError(t, err)

	counter.decrementErr = errors.New("primary stepped down")
	_, err = m.CheckAndUpdate(context.Background(), alice)
	require.Error(t, err)
	assert.Equal(t, http.StatusTooManyRequests, apperr.StatusOf(err))
	// the drift is accepted: the counter stays inflated by one
	assert.Equal(t, 2, counter.get(alice))
}

func TestCheckAndUpdate_ConcurrentSubmissionsNeverPassTheLimit(t *testing.T) {
	counter := newMemCounter()
	m := NewManager(counter, 5)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.CheckAndUpdate(context.Background(), alice); err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, accepted)
	assert.Equal(t, 5, counter.get(alice))
}

func TestNewManager_DefaultLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NewManager(newMemCounter(), 0).Limit())
}
