package search

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Controller owns at most one outstanding lookup and the State it produces.
//
// Each Observe or Refetch starts a new attempt and takes a new attempt
// token. A finishing attempt writes to State only while its token is still
// the current one, so a superseded lookup can never overwrite a newer one,
// even when the transport ignores cancellation.
type Controller struct {
	provider Provider
	policy   RetryPolicy
	log      *slog.Logger

	mu         sync.Mutex
	state      State
	lastPhrase string             // Last committed phrase, used by Refetch
	attempt    uint64             // Token of the current attempt
	cancel     context.CancelFunc // Cancels the current attempt's lookup
	closed     bool
	changes    chan struct{}

	wg sync.WaitGroup
}

// Option configures a Controller.
type Option func(*Controller)

// WithRetryPolicy sets the retry policy. The default is a single attempt.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Controller) { c.policy = p }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// NewController creates a Controller in the idle state.
func NewController(p Provider, opts ...Option) *Controller {
	c := &Controller{
		provider: p,
		policy:   DefaultRetryPolicy(),
		log:      slog.New(slog.DiscardHandler),
		changes:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "search")
	return c
}

// Observe commits phrase. An empty phrase (after trimming) clears the state
// without a lookup; anything else starts exactly one lookup.
func (c *Controller) Observe(phrase string) {
	phrase = Normalize(phrase)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.cancelLocked()
	c.attempt++
	c.lastPhrase = phrase

	if phrase == "" {
		c.setLocked(State{})
		return
	}

	token := c.attempt
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.setLocked(State{
		Phrase:    phrase,
		Results:   c.state.Results,
		IsLoading: true,
	})

	c.wg.Add(1)
	go c.run(ctx, token, phrase)
}

// Refetch repeats the lookup for the last committed phrase.
func (c *Controller) Refetch() {
	c.mu.Lock()
	phrase := c.lastPhrase
	c.mu.Unlock()

	c.Observe(phrase)
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastPhrase returns the last committed phrase.
func (c *Controller) LastPhrase() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastPhrase
}

// Changes returns a channel that receives a signal after state mutations.
// Signals are coalesced: a receiver should read State after each one. The
// channel is closed by Close.
func (c *Controller) Changes() <-chan struct{} {
	return c.changes
}

// Wait blocks until no lookup goroutine is running.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close cancels any in-flight lookup. Later calls to Observe and Refetch are
// ignored and the state no longer changes.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.cancelLocked()
	c.attempt++
	c.closed = true
	close(c.changes)
}

func (c *Controller) run(ctx context.Context, token uint64, phrase string) {
	defer c.wg.Done()

	log := c.log.With("attempt_id", uuid.NewString(), "phrase", phrase)
	log.Debug("search started", "attempt_token", token)
	started := time.Now()

	items, err := Resolve(ctx, c.provider, phrase, c.policy, log)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || token != c.attempt {
		log.Debug("search superseded", "elapsed_ms", time.Since(started).Milliseconds())
		return
	}
	c.cancelLocked()

	next := State{Phrase: phrase}
	if err != nil {
		se := Classify(err)
		next.ErrorMessage = se.Message
		if se.Kind == KindNotFound {
			log.Info("search found nothing", "message", se.Message)
		} else {
			log.Warn("search failed", "kind", se.Kind.String(), "error", err)
		}
	} else {
		next.Results = items
		log.Info("search settled",
			"results", len(items),
			"elapsed_ms", time.Since(started).Milliseconds(),
		)
	}
	c.setLocked(next)
}

// cancelLocked cancels the in-flight lookup context, if any.
func (c *Controller) cancelLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// setLocked replaces the state, bumps its version and signals a change.
func (c *Controller) setLocked(next State) {
	next.Version = c.state.Version + 1
	c.state = next

	select {
	case c.changes <- struct{}{}:
	default:
	}
}
