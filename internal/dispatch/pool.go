// Package dispatch delivers replies through the platform's Send API from a
// bounded worker pool. Delivery is decoupled from the webhook request
// path: jobs are enqueued without blocking, retried with backoff, and
// failures are logged, never surfaced to the chat user.
package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/weberbot/weber/internal/messenger"
)

// sendTimeout bounds one delivery attempt.
const sendTimeout = 10 * time.Second

// baseBackoff is the delay before the second attempt; it doubles per retry.
const baseBackoff = 500 * time.Millisecond

// Sender performs one Send API call.
type Sender interface {
	Send(ctx context.Context, recipientID string, payload messenger.Payload) error
}

// Job is one reply awaiting delivery.
type Job struct {
	ID          string
	RecipientID string
	Payload     messenger.Payload
}

// Pool is a fixed-size worker pool draining a bounded job queue.
type Pool struct {
	sender      Sender
	jobs        chan Job
	workers     int
	maxAttempts int
	log         *zap.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewPool creates a pool; call Start before enqueuing.
func NewPool(sender Sender, workers, queueSize, maxAttempts int, log *zap.Logger) *Pool {
	return &Pool{
		sender:      sender,
		jobs:        make(chan Job, queueSize),
		workers:     workers,
		maxAttempts: maxAttempts,
		log:         log,
	}
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// Enqueue queues a reply for delivery. It never blocks: when the queue is
// full or the pool is shut down it reports false and the reply is dropped.
func (p *Pool) Enqueue(recipientID string, payload messenger.Payload) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}

	job := Job{
		ID:          uuid.NewString(),
		RecipientID: recipientID,
		Payload:     payload,
	}

	select {
	case p.jobs <- job:
		return true
	default:
		return false
	}
}

// Shutdown stops intake and waits for queued jobs to drain, up to the
// context deadline.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		p.deliver(job)
	}
}

// deliver attempts the Send API call with exponential backoff. Exhausted
// attempts are logged and the job is dropped.
func (p *Pool) deliver(job Job) {
	log := p.log.With(
		zap.String("job", job.ID),
		zap.String("recipient", job.RecipientID))

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		err := p.sender.Send(ctx, job.RecipientID, job.Payload)
		cancel()

		if err == nil {
			log.Debug("reply delivered", zap.Int("attempt", attempt))
			return
		}

		if attempt < p.maxAttempts {
			delay := baseBackoff << (attempt - 1)
			log.Warn("delivery failed, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", delay),
				zap.Error(err))
			time.Sleep(delay)
			continue
		}

		log.Error("delivery failed, giving up",
			zap.Int("attempts", p.maxAttempts),
			zap.Error(err))
	}
}
