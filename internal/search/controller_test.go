package search_test

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/SchoolScout/SS-Backend/internal/directory"
	"github.com/SchoolScout/SS-Backend/internal/favorites"
	"github.com/SchoolScout/SS-Backend/internal/search"
	"github.com/SchoolScout/SS-Backend/internal/storage"
)

// fakeSearcher implements search.DistrictSearcher with a configurable
// response function and records every call.
type fakeSearcher struct {
	mu      sync.Mutex
	calls   []string
	respond func(name, state, city string) ([]directory.DistrictRecord, error)
}

func (f *fakeSearcher) SearchDistricts(ctx context.Context, name, state, city string) ([]directory.DistrictRecord, error) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
	if f.respond != nil {
		return f.respond(name, state, city)
	}
	return []directory.DistrictRecord{{LEAID: "1", Name: "Result for " + name}}, nil
}

func (f *fakeSearcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeSearcher) lastCall() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return ""
	}
	return f.calls[len(f.calls)-1]
}

const testDelay = 10 * time.Millisecond

// settleTime is long enough for both debounce stages plus the query to
// finish on a loaded CI machine.
const settleTime = 500 * time.Millisecond

func newTestController(client search.DistrictSearcher, history *favorites.SearchHistoryStore) *search.Controller {
	return search.NewController(client, history, search.ControllerConfig{
		InputDelay:    testDelay,
		URLWriteDelay: testDelay,
	})
}

// waitFor polls until the condition holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

// TestController_DebounceCoalesces verifies that rapid keystrokes produce a
// single remote query carrying the final filter.
func TestController_DebounceCoalesces(t *testing.T) {
	fake := &fakeSearcher{}
	c := newTestController(fake, nil)
	defer c.Close()

	c.SetName("l")
	c.SetName("li")
	c.SetName("lincoln")

	if got := c.State(); got != search.StateDebouncing {
		t.Errorf("expected debouncing while typing, got %s", got)
	}

	time.Sleep(settleTime)

	if n := fake.callCount(); n != 1 {
		t.Errorf("expected exactly 1 remote call, got %d", n)
	}
	if got := fake.lastCall(); got != "lincoln" {
		t.Errorf("expected the final term to be queried, got %q", got)
	}
	if got := c.State(); got != search.StateIdleResults {
		t.Errorf("expected idle_results, got %s", got)
	}
}

// TestController_EmptyFilterShortCircuit verifies that clearing every filter
// field clears results without a remote call.
func TestController_EmptyFilterShortCircuit(t *testing.T) {
	fake := &fakeSearcher{}
	c := newTestController(fake, nil)
	defer c.Close()

	c.SetName("lincoln")
	time.Sleep(settleTime)
	if len(c.Results()) == 0 {
		t.Fatal("expected seeded results")
	}
	callsBefore := fake.callCount()

	c.SetName("")
	time.Sleep(settleTime)

	if got := c.State(); got != search.StateIdleEmpty {
		t.Errorf("expected idle_empty, got %s", got)
	}
	if len(c.Results()) != 0 {
		t.Errorf("expected results cleared, got %d", len(c.Results()))
	}
	if n := fake.callCount(); n != callsBefore {
		t.Errorf("expected no further remote calls, got %d extra", n-callsBefore)
	}
}

// TestController_NoQueryWhenFilterUnchanged verifies that a settle with an
// unchanged filter triple issues no query.
func TestController_NoQueryWhenFilterUnchanged(t *testing.T) {
	fake := &fakeSearcher{}
	c := newTestController(fake, nil)
	defer c.Close()

	c.SetName("lincoln")
	time.Sleep(settleTime)
	callsBefore := fake.callCount()

	// Retype the identical value.
	c.SetName("lincoln")
	time.Sleep(settleTime)

	if n := fake.callCount(); n != callsBefore {
		t.Errorf("expected no new query for an unchanged filter, got %d extra", n-callsBefore)
	}
}

// TestController_ErrorClearsResults verifies the failure path: results are
// cleared, the error is published, typed filters survive.
func TestController_ErrorClearsResults(t *testing.T) {
	fake := &fakeSearcher{
		respond: func(name, state, city string) ([]directory.DistrictRecord, error) {
			return nil, errors.New("upstream down")
		},
	}

	var mu sync.Mutex
	var published []search.Update
	c := search.NewController(fake, nil, search.ControllerConfig{
		InputDelay:    testDelay,
		URLWriteDelay: testDelay,
		OnUpdate: func(u search.Update) {
			mu.Lock()
			published = append(published, u)
			mu.Unlock()
		},
	})
	defer c.Close()

	c.SetName("lincoln")
	time.Sleep(settleTime)

	if got := c.State(); got != search.StateIdleEmpty {
		t.Errorf("expected idle_empty after failure, got %s", got)
	}
	if len(c.Results()) != 0 {
		t.Errorf("expected no results after failure, got %d", len(c.Results()))
	}
	if got := c.Filter().Name; got != "lincoln" {
		t.Errorf("expected typed filter preserved, got %q", got)
	}

	mu.Lock()
	defer mu.Unlock()
	sawErr := false
	for _, u := range published {
		if u.Err != nil {
			sawErr = true
		}
	}
	if !sawErr {
		t.Error("expected a published update carrying the error")
	}
}

// TestController_StaleResponseDiscarded verifies that a slow response from a
// superseded query cannot overwrite newer results.
func TestController_StaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	fake := &fakeSearcher{
		respond: func(name, state, city string) ([]directory.DistrictRecord, error) {
			if name == "slow" {
				started <- struct{}{}
				<-release
				return []directory.DistrictRecord{{LEAID: "old", Name: "Stale"}}, nil
			}
			return []directory.DistrictRecord{{LEAID: "new", Name: "Fresh"}}, nil
		},
	}
	c := newTestController(fake, nil)
	defer c.Close()

	if err := c.ApplyQuery(url.Values{"name": {"slow"}}); err != nil {
		t.Fatalf("ApplyQuery failed: %v", err)
	}
	<-started

	if err := c.ApplyQuery(url.Values{"name": {"fast"}}); err != nil {
		t.Fatalf("ApplyQuery failed: %v", err)
	}
	waitFor(t, "fresh results", func() bool {
		r := c.Results()
		return len(r) == 1 && r[0].LEAID == "new"
	})

	close(release)
	time.Sleep(100 * time.Millisecond)

	r := c.Results()
	if len(r) != 1 || r[0].LEAID != "new" {
		t.Errorf("stale response overwrote newer results: %+v", r)
	}
	if got := c.State(); got != search.StateIdleResults {
		t.Errorf("expected idle_results, got %s", got)
	}
}

// TestController_HistoryRecorded verifies that a successful search with a
// name term lands in the history store, and that a term-less city search
// does not.
func TestController_HistoryRecorded(t *testing.T) {
	history := favorites.NewSearchHistoryStore(storage.NewMemKV())
	fake := &fakeSearcher{}
	c := newTestController(fake, history)
	defer c.Close()

	c.SetName("Lincoln")
	time.Sleep(settleTime)

	terms := history.Terms()
	if len(terms) != 1 || terms[0] != "Lincoln" {
		t.Fatalf("expected history [Lincoln], got %v", terms)
	}

	c.SetName("")
	c.SetCity("Austin")
	time.Sleep(settleTime)

	terms = history.Terms()
	if len(terms) != 1 {
		t.Errorf("expected a name-less search to leave history alone, got %v", terms)
	}
}

// TestController_URLRoundTrip verifies the shareable query string omits
// empty fields and reproduces the filter triple when parsed back.
func TestController_URLRoundTrip(t *testing.T) {
	fake := &fakeSearcher{}
	c := newTestController(fake, nil)
	defer c.Close()

	c.SetName("Lincoln")
	c.SetState("TX")
	time.Sleep(settleTime)

	query := c.Query()
	if query != "name=Lincoln&state=TX" {
		t.Fatalf("expected name=Lincoln&state=TX, got %q", query)
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		t.Fatalf("ParseQuery failed: %v", err)
	}
	parsed, err := search.ParseFilterState(values)
	if err != nil {
		t.Fatalf("ParseFilterState failed: %v", err)
	}
	if parsed != (search.FilterState{Name: "Lincoln", State: "TX"}) {
		t.Errorf("round trip lost data: %+v", parsed)
	}
}

// TestController_ApplyQueryImmediate verifies a shared link triggers a query
// without waiting for the debounce stages.
func TestController_ApplyQueryImmediate(t *testing.T) {
	fake := &fakeSearcher{}
	c := newTestController(fake, nil)
	defer c.Close()

	if err := c.ApplyQuery(url.Values{"name": {"Lincoln"}, "state": {"TX"}}); err != nil {
		t.Fatalf("ApplyQuery failed: %v", err)
	}

	waitFor(t, "results from shared link", func() bool {
		return c.State() == search.StateIdleResults
	})
	if got := c.Filter(); got != (search.FilterState{Name: "Lincoln", State: "TX"}) {
		t.Errorf("unexpected filter: %+v", got)
	}
}

// TestController_ZeroResultsIsIdleEmpty verifies an empty result set settles
// in idle_empty rather than idle_results.
func TestController_ZeroResultsIsIdleEmpty(t *testing.T) {
	fake := &fakeSearcher{
		respond: func(name, state, city string) ([]directory.DistrictRecord, error) {
			return []directory.DistrictRecord{}, nil
		},
	}
	c := newTestController(fake, nil)
	defer c.Close()

	c.SetName("nowhere")
	time.Sleep(settleTime)

	if got := c.State(); got != search.StateIdleEmpty {
		t.Errorf("expected idle_empty for zero rows, got %s", got)
	}
}
