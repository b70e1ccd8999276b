package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/weberbot/weber/internal/messenger"
)

// fakeSender fails the first failUntil calls, then succeeds.
type fakeSender struct {
	mu        sync.Mutex
	calls     []string
	failUntil int
}

func (s *fakeSender) Send(_ context.Context, recipientID string, _ messenger.Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, recipientID)
	if len(s.calls) <= s.failUntil {
		return errors.New("transient send failure")
	}
	return nil
}

func (s *fakeSender) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func shutdownPool(t *testing.T, p *Pool) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, p.Shutdown(ctx))
}

func TestPoolDelivers(t *testing.T) {
	sender := &fakeSender{}
	p := NewPool(sender, 2, 8, 3, zap.NewNop())
	p.Start()

	require.True(t, p.Enqueue("psid-1", *messenger.TextPayload("hello")))
	require.True(t, p.Enqueue("psid-2", *messenger.TextPayload("hi")))

	shutdownPool(t, p)
	assert.Equal(t, 2, sender.callCount())
}

func TestPoolRetriesThenSucceeds(t *testing.T) {
	sender := &fakeSender{failUntil: 2}
	p := NewPool(sender, 1, 8, 3, zap.NewNop())
	p.Start()

	require.True(t, p.Enqueue("psid-1", *messenger.TextPayload("hello")))

	shutdownPool(t, p)
	// Two failures, then the third attempt lands.
	assert.Equal(t, 3, sender.callCount())
}

func TestPoolGivesUpAfterMaxAttempts(t *testing.T) {
	sender := &fakeSender{failUntil: 100}
	p := NewPool(sender, 1, 8, 2, zap.NewNop())
	p.Start()

	require.True(t, p.Enqueue("psid-1", *messenger.TextPayload("hello")))

	shutdownPool(t, p)
	assert.Equal(t, 2, sender.callCount())
}

func TestEnqueueFullQueue(t *testing.T) {
	sender := &fakeSender{}
	// Never started: nothing drains the queue.
	p := NewPool(sender, 1, 1, 1, zap.NewNop())

	assert.True(t, p.Enqueue("psid-1", *messenger.TextPayload("one")))
	assert.False(t, p.Enqueue("psid-2", *messenger.TextPayload("two")))
}

func TestEnqueueAfterShutdown(t *testing.T) {
	sender := &fakeSender{}
	p := NewPool(sender, 1, 8, 1, zap.NewNop())
	p.Start()

	shutdownPool(t, p)
	assert.False(t, p.Enqueue("psid-1", *messenger.TextPayload("late")))
}

func TestShutdownDrainsQueuedJobs(t *testing.T) {
	sender := &fakeSender{}
	p := NewPool(sender, 1, 8, 1, zap.NewNop())

	for i := 0; i < 5; i++ {
		require.True(t, p.Enqueue("psid-1", *messenger.TextPayload("queued")))
	}

	// Workers start after the queue is loaded; Shutdown must still wait
	// for every queued job.
	p.Start()
	shutdownPool(t, p)
	assert.Equal(t, 5, sender.callCount())
}
