package thread

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cexll/threadbot/internal/feed"
	"github.com/cexll/threadbot/internal/history"
	"github.com/cexll/threadbot/internal/monitoring"
	"github.com/cexll/threadbot/internal/reddit"
	"github.com/cexll/threadbot/internal/render"
)

// prettyDateLayout is the en-US long date format the original thread titles
// use, e.g. "January 5, 2025".
const prettyDateLayout = "January 2, 2006"

// Action is the outcome of one reconciliation pass.
type Action string

const (
	// ActionSkip means the feed was unavailable or the pass aborted
	// before deciding; nothing was written and state is untouched.
	ActionSkip Action = "skip"
	// ActionCreate means a new daily thread was submitted.
	ActionCreate Action = "create"
	// ActionUpdate means the existing thread body was edited.
	ActionUpdate Action = "update"
	// ActionNoOp means the thread already matches the feed.
	ActionNoOp Action = "noop"
)

// FeedSource is what the engine needs from the feed client.
type FeedSource interface {
	Fetch(ctx context.Context, day time.Time) (feed.Snapshot, error)
}

// Status is the read-only view of the tracked thread served by the ops
// endpoints.
type Status struct {
	ActiveDate   string `json:"active_date,omitempty"`
	ActivePostID string `json:"active_post_id,omitempty"`
}

// Config carries the engine's fixed settings.
type Config struct {
	Subreddit string
	BotUser   string
	Timezone  *time.Location

	// Now is overridable in tests; defaults to time.Now.
	Now func() time.Time
}

// Engine drives one reconciliation per tick: it decides whether the day's
// thread must be created, edited, or left alone, and owns the only mutable
// state in the process. Ticks run strictly one at a time, so state needs no
// lock; only the published Status view is shared with the HTTP handlers.
type Engine struct {
	feeds   FeedSource
	client  reddit.Client
	locator *Locator

	subreddit string
	timezone  *time.Location
	now       func() time.Time

	logger  *logrus.Logger
	metrics *monitoring.Metrics
	history *history.Store

	state State

	statusMu sync.RWMutex
	status   Status
}

// NewEngine wires the reconciliation engine.
func NewEngine(feeds FeedSource, client reddit.Client, cfg Config, logger *logrus.Logger, metrics *monitoring.Metrics, hist *history.Store) *Engine {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	tz := cfg.Timezone
	if tz == nil {
		tz = time.UTC
	}
	return &Engine{
		feeds:     feeds,
		client:    client,
		locator:   NewLocator(client, cfg.Subreddit, cfg.BotUser, logger),
		subreddit: cfg.Subreddit,
		timezone:  tz,
		now:       now,
		logger:    logger,
		metrics:   metrics,
		history:   hist,
	}
}

// Tick runs one full reconciliation pass: fetch the snapshot, then
// reconcile. Feed failures degrade to Skip and are not errors; platform
// failures are returned so the scheduler can log them.
func (e *Engine) Tick(ctx context.Context) error {
	start := time.Now()
	day := e.now().In(e.timezone)

	action, err := e.run(ctx, day)
	e.record(action, day, err, time.Since(start))

	return err
}

func (e *Engine) run(ctx context.Context, day time.Time) (Action, error) {
	snap, err := e.feeds.Fetch(ctx, day)
	if err != nil {
		e.logger.WithError(err).Warn("Stream feed unavailable, skipping tick")
		e.metrics.FeedFailures.Inc()
		return ActionSkip, nil
	}

	return e.Reconcile(ctx, day, snap)
}

// Reconcile maps the day's snapshot and the current state to at most one
// remote write. On any error the state is exactly as it was before the
// attempted write, so the next tick retries the same decision.
func (e *Engine) Reconcile(ctx context.Context, day time.Time, snap feed.Snapshot) (Action, error) {
	prettyDate := day.Format(prettyDateLayout)
	title := Title(prettyDate)

	post, err := e.locator.Locate(ctx, &e.state, prettyDate, title)
	if err != nil {
		return ActionSkip, err
	}
	e.publish()

	if post == nil {
		return e.create(ctx, prettyDate, title, snap)
	}

	if e.state.LastKnown.Equal(snap) {
		return ActionNoOp, nil
	}

	return e.update(ctx, prettyDate, snap)
}

func (e *Engine) create(ctx context.Context, prettyDate, title string, snap feed.Snapshot) (Action, error) {
	e.logger.WithField("date", prettyDate).Info("No thread yet for today, creating one")

	body := render.Thread(prettyDate, snap)
	id, err := e.client.SubmitSelfPost(ctx, e.subreddit, title, body)
	if err != nil {
		return ActionCreate, fmt.Errorf("failed to create daily thread: %w", err)
	}

	e.state.adopt(prettyDate, id)
	e.state.LastKnown = snap
	e.publish()

	e.applyThreadFlags(ctx, id)

	e.logger.WithFields(logrus.Fields{
		"post_id": id,
		"date":    prettyDate,
	}).Info("Daily thread created")

	return ActionCreate, nil
}

func (e *Engine) update(ctx context.Context, prettyDate string, snap feed.Snapshot) (Action, error) {
	e.logger.WithField("post_id", e.state.ActivePostID).Info("Streams changed, updating thread")

	body := render.Thread(prettyDate, snap)
	if err := e.client.EditPost(ctx, e.state.ActivePostID, body); err != nil {
		return ActionUpdate, fmt.Errorf("failed to update daily thread: %w", err)
	}

	e.state.LastKnown = snap

	e.logger.WithField("post_id", e.state.ActivePostID).Info("Daily thread updated")
	return ActionUpdate, nil
}

// applyThreadFlags pins, distinguishes, and approves a freshly created
// thread. These are best-effort: a failure leaves the thread up and is
// only logged.
func (e *Engine) applyThreadFlags(ctx context.Context, postID string) {
	flags := []struct {
		name  string
		apply func(context.Context, string) error
	}{
		{"sticky", e.client.StickyPost},
		{"distinguish", e.client.DistinguishPost},
		{"approve", e.client.ApprovePost},
	}

	for _, f := range flags {
		if err := f.apply(ctx, postID); err != nil {
			e.logger.WithError(err).WithField("post_id", postID).Warnf("Failed to %s daily thread", f.name)
		}
	}
}

// Status returns the published view of the tracked thread.
func (e *Engine) Status() Status {
	e.statusMu.RLock()
	defer e.statusMu.RUnlock()
	return e.status
}

// publish refreshes the Status view after a state change.
func (e *Engine) publish() {
	e.statusMu.Lock()
	e.status = Status{
		ActiveDate:   e.state.ActiveDate,
		ActivePostID: e.state.ActivePostID,
	}
	e.statusMu.Unlock()
}

func (e *Engine) record(action Action, day time.Time, err error, elapsed time.Duration) {
	e.metrics.ObserveTick(string(action), err, elapsed)

	rec := history.Record{
		Time:     time.Now(),
		Action:   string(action),
		Date:     day.Format(prettyDateLayout),
		PostID:   e.state.ActivePostID,
		Duration: elapsed,
	}
	if err != nil {
		rec.Error = err.Error()
	}
	e.history.Append(rec)
}
