package search

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/SchoolScout/SS-Backend/internal/directory"
	"github.com/SchoolScout/SS-Backend/internal/favorites"
)

// State names one phase of the search lifecycle.
type State string

const (
	StateIdle        State = "idle"
	StateDebouncing  State = "debouncing"
	StateQuerying    State = "querying"
	StateIdleResults State = "idle_results"
	StateIdleEmpty   State = "idle_empty"
)

// DistrictSearcher is the remote dependency the controller queries.
type DistrictSearcher interface {
	SearchDistricts(ctx context.Context, name, state, city string) ([]directory.DistrictRecord, error)
}

// Update is one published snapshot of the search session.
type Update struct {
	State   State
	Filter  FilterState
	Query   string // shareable query-string form of the settled filter
	Results []directory.DistrictRecord
	Err     error // transient; set only on the update that reports a failure
}

// ControllerConfig tunes the two debounce stages and receives snapshots.
type ControllerConfig struct {
	InputDelay    time.Duration // quiet period after the last keystroke
	URLWriteDelay time.Duration // second stage, before the query-string write
	OnUpdate      func(Update)
}

// Controller reconciles what the user is typing with the query-string
// representation and the remote API.
//
// The live filter is what the user is typing; the settled (URL-derived)
// filter is what actually drives remote queries. The two meet through two
// debounce stages. Each outgoing query carries a generation number and a
// response older than the newest issued generation is discarded, so slow
// responses can never overwrite newer results. In-flight requests are not
// cancelled by further typing.
type Controller struct {
	client        DistrictSearcher
	history       *favorites.SearchHistoryStore
	inputDelay    time.Duration
	urlWriteDelay time.Duration
	onUpdate      func(Update)

	mu         sync.Mutex
	state      State
	filter     FilterState // live typing
	settled    FilterState // URL-derived, drives queries
	query      string
	results    []directory.DistrictRecord
	generation uint64
	inputTimer *time.Timer
	urlTimer   *time.Timer
	closed     bool
}

// NewController wires a search session. history may be nil to skip history
// recording.
func NewController(client DistrictSearcher, history *favorites.SearchHistoryStore, cfg ControllerConfig) *Controller {
	if cfg.InputDelay <= 0 {
		cfg.InputDelay = 500 * time.Millisecond
	}
	if cfg.URLWriteDelay <= 0 {
		cfg.URLWriteDelay = 500 * time.Millisecond
	}
	return &Controller{
		client:        client,
		history:       history,
		inputDelay:    cfg.InputDelay,
		urlWriteDelay: cfg.URLWriteDelay,
		onUpdate:      cfg.OnUpdate,
		state:         StateIdle,
	}
}

func (c *Controller) SetName(v string) {
	c.setFilter(func(f *FilterState) { f.Name = v })
}

func (c *Controller) SetCity(v string) {
	c.setFilter(func(f *FilterState) { f.City = v })
}

func (c *Controller) SetState(v string) {
	c.setFilter(func(f *FilterState) { f.State = v })
}

func (c *Controller) setFilter(mutate func(*FilterState)) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	mutate(&c.filter)
	c.state = StateDebouncing
	if c.inputTimer != nil {
		c.inputTimer.Stop()
	}
	c.inputTimer = time.AfterFunc(c.inputDelay, c.inputSettled)
	snap := c.snapshotLocked(nil)
	c.mu.Unlock()

	c.publish(snap)
}

// inputSettled fires when the user has stopped typing; it arms the second
// debounce stage in front of the query-string write.
func (c *Controller) inputSettled() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.urlTimer != nil {
		c.urlTimer.Stop()
	}
	c.urlTimer = time.AfterFunc(c.urlWriteDelay, c.writeQueryString)
}

// writeQueryString commits the live filter to the settled (shareable)
// representation; a change there is what triggers the remote query.
func (c *Controller) writeQueryString() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	changed := c.filter != c.settled
	c.settled = c.filter
	c.query = c.settled.Encode()
	if !changed {
		// Nothing new to query; settle back into the idle state that
		// matches what is already on screen.
		switch {
		case len(c.results) > 0:
			c.state = StateIdleResults
		case c.settled.Empty():
			c.state = StateIdle
		default:
			c.state = StateIdleEmpty
		}
		snap := c.snapshotLocked(nil)
		c.mu.Unlock()
		c.publish(snap)
		return
	}

	c.startQueryLocked()
}

// startQueryLocked transitions from a settled filter change to either the
// empty short-circuit or an in-flight query. Unlocks c.mu.
func (c *Controller) startQueryLocked() {
	if c.settled.Empty() {
		c.results = nil
		c.state = StateIdleEmpty
		snap := c.snapshotLocked(nil)
		c.mu.Unlock()
		c.publish(snap)
		return
	}

	c.state = StateQuerying
	c.generation++
	gen := c.generation
	settled := c.settled
	snap := c.snapshotLocked(nil)
	c.mu.Unlock()

	c.publish(snap)
	go c.runQuery(gen, settled)
}

func (c *Controller) runQuery(gen uint64, f FilterState) {
	results, err := c.client.SearchDistricts(context.Background(), f.Name, f.State, f.City)

	c.mu.Lock()
	if c.closed || gen != c.generation {
		// A newer query was issued while this one was in flight.
		c.mu.Unlock()
		return
	}

	if err != nil {
		c.results = nil
		c.state = StateIdleEmpty
		snap := c.snapshotLocked(err)
		c.mu.Unlock()
		c.publish(snap)
		return
	}

	c.results = results
	if len(results) == 0 {
		c.state = StateIdleEmpty
	} else {
		c.state = StateIdleResults
	}
	snap := c.snapshotLocked(nil)
	c.mu.Unlock()

	if c.history != nil && f.Name != "" {
		_ = c.history.AddTerm(f.Name)
	}
	c.publish(snap)
}

// ApplyQuery seeds the session from a shared link and queries immediately,
// skipping both debounce stages.
func (c *Controller) ApplyQuery(q url.Values) error {
	f, err := ParseFilterState(q)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.filter = f
	c.settled = f
	c.query = f.Encode()
	c.startQueryLocked()
	return nil
}

// Close stops the timers. Responses still in flight are discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.inputTimer != nil {
		c.inputTimer.Stop()
	}
	if c.urlTimer != nil {
		c.urlTimer.Stop()
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Filter() FilterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Query returns the settled, shareable query-string form.
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

func (c *Controller) Results() []directory.DistrictRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]directory.DistrictRecord, len(c.results))
	copy(out, c.results)
	return out
}

func (c *Controller) snapshotLocked(err error) Update {
	return Update{
		State:   c.state,
		Filter:  c.filter,
		Query:   c.query,
		Results: c.results,
		Err:     err,
	}
}

func (c *Controller) publish(u Update) {
	if c.onUpdate != nil {
		c.onUpdate(u)
	}
}
