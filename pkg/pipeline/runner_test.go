package pipeline

import (
	"context"
	"errors"
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seatplan/pkg/cache"
	errs "github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/observability"
	"github.com/matzehuels/seatplan/pkg/problem"
	"github.com/matzehuels/seatplan/pkg/solver"
)

func quietRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.New(io.Discard))
}

func smallProblem() *problem.Problem {
	return &problem.Problem{
		Name:     "small",
		Tables:   2,
		Seats:    2,
		Guests:   []string{"Alice", "Bob", "Carol", "Dave"},
		Together: [][]string{{"Alice", "Carol"}},
		Apart:    [][]string{{"Alice", "Bob"}},
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Fatalf("NewRunner left nil fields: %+v", r)
	}
}

// ttlCache records the ttl of every Set.
type ttlCache struct {
	cache.NullCache
	ttls []time.Duration
}

func (c *ttlCache) Set(_ context.Context, _ string, _ []byte, ttl time.Duration) error {
	c.ttls = append(c.ttls, ttl)
	return nil
}

func TestRunnerSolveCacheTTL(t *testing.T) {
	c := &ttlCache{}
	if _, err := quietRunner(c).Solve(context.Background(), smallProblem(), Options{}); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(c.ttls) != 1 || c.ttls[0] != cache.DefaultTTL {
		t.Errorf("Set ttls = %v, want [%v]", c.ttls, cache.DefaultTTL)
	}
}

func TestRunnerSolve(t *testing.T) {
	res, err := quietRunner(nil).Solve(context.Background(), smallProblem(), Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !res.Solved {
		t.Fatal("expected a solution")
	}
	want := [][]string{{"Alice", "Carol"}, {"Bob", "Dave"}}
	if !reflect.DeepEqual(res.Tables, want) {
		t.Errorf("Tables = %v, want %v", res.Tables, want)
	}
	if len(res.Unseated) != 0 {
		t.Errorf("Unseated = %v, want none", res.Unseated)
	}
	if res.RunID == "" {
		t.Error("RunID not set")
	}
	if res.Name != "small" {
		t.Errorf("Name = %q", res.Name)
	}
	if res.Cached {
		t.Error("first run reported as cached")
	}
	if len(res.Rules) != 2 || !res.Rules[0].Accepted || !res.Rules[1].Accepted {
		t.Errorf("Rules = %+v", res.Rules)
	}
}

func TestRunnerSolveUnsatisfiable(t *testing.T) {
	p := &problem.Problem{
		Tables: 2,
		Seats:  2,
		Guests: []string{"Alice", "Bob", "Carol", "Dave"},
		Apart:  [][]string{{"Alice", "Bob"}, {"Alice", "Carol"}, {"Alice", "Dave"}},
	}
	res, err := quietRunner(nil).Solve(context.Background(), p, Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if res.Solved {
		t.Fatalf("expected no solution, got %v", res.Tables)
	}
	if res.Tables != nil {
		t.Errorf("Tables = %v, want nil", res.Tables)
	}
	if len(res.Unseated) != 4 {
		t.Errorf("Unseated = %v, want all four guests", res.Unseated)
	}
}

func TestRunnerSolveStrict(t *testing.T) {
	p := &problem.Problem{
		Tables: 1,
		Seats:  2,
		Guests: []string{"Alice", "Bob", "Carol"},
	}
	r := quietRunner(nil)

	lenient, err := r.Solve(context.Background(), p, Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !lenient.Solved {
		t.Error("lenient solve should succeed once the tables are full")
	}
	if !reflect.DeepEqual(lenient.Unseated, []string{"Carol"}) {
		t.Errorf("Unseated = %v, want [Carol]", lenient.Unseated)
	}

	strict, err := r.Solve(context.Background(), p, Options{Strict: true})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if strict.Solved {
		t.Error("strict solve should fail with a guest left over")
	}
}

func TestRunnerSolveInvalid(t *testing.T) {
	tests := []struct {
		name string
		p    *problem.Problem
		code errs.Code
	}{
		{"negative tables", &problem.Problem{Tables: -1, Seats: 2}, errs.ErrCodeInvalidProblem},
		{"duplicate guest", &problem.Problem{Tables: 1, Seats: 2, Guests: []string{"A", "A"}}, errs.ErrCodeInvalidProblem},
		{"blank guest", &problem.Problem{Tables: 1, Seats: 2, Guests: []string{" "}}, errs.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := quietRunner(nil).Solve(context.Background(), tt.p, Options{})
			if !errs.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

// blockingProgress holds the solving goroutine at its final progress report
// until release is closed.
func blockingProgress(release <-chan struct{}) func(solver.Stats) {
	return func(solver.Stats) { <-release }
}

func TestRunnerSolveTimeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	_, err := quietRunner(nil).Solve(context.Background(), smallProblem(), Options{
		Timeout:  10 * time.Millisecond,
		Progress: blockingProgress(release),
	})
	if !errs.Is(err, errs.ErrCodeTimeout) {
		t.Fatalf("err = %v, want TIMEOUT", err)
	}
}

func TestRunnerSolveCanceled(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := quietRunner(nil).Solve(ctx, smallProblem(), Options{
		Timeout:  -1,
		Progress: blockingProgress(release),
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

type countingCacheHooks struct {
	hits, misses, sets int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingCacheHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestRunnerSolveCached(t *testing.T) {
	hooks := &countingCacheHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := quietRunner(fc)
	ctx := context.Background()

	first, err := r.Solve(ctx, smallProblem(), Options{})
	if err != nil {
		t.Fatalf("first Solve: %v", err)
	}
	second, err := r.Solve(ctx, smallProblem(), Options{})
	if err != nil {
		t.Fatalf("second Solve: %v", err)
	}

	if !second.Cached {
		t.Error("second run should come from the cache")
	}
	if !reflect.DeepEqual(first.Tables, second.Tables) {
		t.Errorf("cached Tables = %v, want %v", second.Tables, first.Tables)
	}
	if first.RunID == second.RunID {
		t.Error("cached run reused the run id")
	}
	if hooks.misses != 1 || hooks.hits != 1 || hooks.sets != 1 {
		t.Errorf("hooks = %+v, want 1 miss, 1 hit, 1 set", *hooks)
	}

	refreshed, err := r.Solve(ctx, smallProblem(), Options{Refresh: true})
	if err != nil {
		t.Fatalf("refresh Solve: %v", err)
	}
	if refreshed.Cached {
		t.Error("refresh should bypass the cache")
	}

	strict, err := r.Solve(ctx, smallProblem(), Options{Strict: true})
	if err != nil {
		t.Fatalf("strict Solve: %v", err)
	}
	if strict.Cached {
		t.Error("strict results are cached separately")
	}
}

func TestRunnerSolveCorruptCacheEntry(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := quietRunner(fc)
	ctx := context.Background()

	p := smallProblem()
	key := r.Keyer.ResultKey(cache.Hash(p.Fingerprint()), cache.ResultKeyOpts{})
	if err := fc.Set(ctx, key, []byte("not json"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}

	res, err := r.Solve(ctx, p, Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if res.Cached {
		t.Error("corrupt entry should be treated as a miss")
	}

	again, err := r.Solve(ctx, smallProblem(), Options{})
	if err != nil {
		t.Fatalf("second Solve: %v", err)
	}
	if !again.Cached {
		t.Error("fresh result should replace the corrupt entry")
	}
}

func TestRunnerCheck(t *testing.T) {
	p := &problem.Problem{
		Tables:  2,
		Seats:   2,
		Guests:  []string{"Alice", "Bob", "Carol", "Dave", "Eve"},
		Apart:   [][]string{{"Alice", "Bob"}},
		Seating: [][]string{{"Alice", "Bob"}, {"Carol", "Dave"}},
	}
	report, err := quietRunner(nil).Check(p)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if report.Satisfied {
		t.Error("seating with enemies together reported as satisfied")
	}
	if !reflect.DeepEqual(report.Violating, []int{0}) {
		t.Errorf("Violating = %v, want [0]", report.Violating)
	}
	if !reflect.DeepEqual(report.Unseated, []string{"Eve"}) {
		t.Errorf("Unseated = %v, want [Eve]", report.Unseated)
	}

	p.Seating = [][]string{{"Alice", "Carol"}, {"Bob", "Dave"}}
	report, err = quietRunner(nil).Check(p)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !report.Satisfied || len(report.Violating) != 0 {
		t.Errorf("report = %+v, want satisfied", report)
	}
}

func TestRunnerCheckRejectsAmbiguousSeating(t *testing.T) {
	tests := []struct {
		name    string
		seating [][]string
	}{
		{"guest at two tables", [][]string{{"A", "C"}, {"B", "A"}}},
		{"guest twice at one table", [][]string{{"A", "A"}, {"B"}}},
		{"unknown guest", [][]string{{"A", "Zed"}, {"B"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &problem.Problem{
				Tables:  2,
				Seats:   2,
				Guests:  []string{"A", "B", "C"},
				Apart:   [][]string{{"A", "B"}},
				Seating: tt.seating,
			}
			report, err := quietRunner(nil).Check(p)
			if !errs.Is(err, errs.ErrCodeInvalidProblem) {
				t.Fatalf("Check() = %+v, %v, want code %s", report, err, errs.ErrCodeInvalidProblem)
			}
		})
	}
}

func TestRejected(t *testing.T) {
	outs := []RuleOutcome{
		{Kind: "together", A: "A", B: "B", Accepted: true},
		{Kind: "apart", A: "A", B: "B", Reason: "already_friends"},
	}
	got := Rejected(outs)
	if len(got) != 1 || got[0].Kind != "apart" {
		t.Errorf("Rejected = %+v", got)
	}
}
