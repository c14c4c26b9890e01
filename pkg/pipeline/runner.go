package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/seatplan/pkg/cache"
	errs "github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/observability"
	"github.com/matzehuels/seatplan/pkg/plan"
	"github.com/matzehuels/seatplan/pkg/problem"
	"github.com/matzehuels/seatplan/pkg/solver"
)

const resultKeyType = "result"

// Runner encapsulates solving with caching and a deadline.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different problems. A solve
// that ends in TIMEOUT keeps its search goroutine busy, using CPU and firing
// the global observability hooks, until the search finishes.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Solve searches for a seating of p that satisfies its rules.
//
// An unsatisfiable problem is not an error: the result has Solved set to
// false. If the deadline passes first, Solve returns an error with code
// TIMEOUT; the abandoned search keeps running in the background until it
// finishes, since the solver cannot be interrupted.
func (r *Runner) Solve(ctx context.Context, p *problem.Problem, opts Options) (*Result, error) {
	opts.SetDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	key := r.Keyer.ResultKey(cache.Hash(p.Fingerprint()), cache.ResultKeyOpts{Strict: opts.Strict})
	if !opts.Refresh {
		if res, ok := r.lookup(ctx, key); ok {
			res.RunID = uuid.NewString()
			res.Name = p.Name
			res.Cached = true
			r.Logger.Info("using cached result", "solved", res.Solved, "key", key)
			return res, nil
		}
	}

	rs, results := p.BuildRules()
	for _, res := range results {
		if !res.Accepted {
			r.Logger.Warn("rule ignored", "rule", res.String())
		}
	}

	var sopts []solver.Option
	if opts.Progress != nil {
		sopts = append(sopts, solver.WithProgress(opts.Progress))
	}
	pl := p.NewPlan()
	s := solver.New(p.Guests, pl, rs, sopts...)

	r.Logger.Debug("searching",
		"guests", len(p.Guests),
		"tables", p.Tables,
		"seats", p.Seats,
		"timeout", opts.Timeout)

	start := time.Now()
	solved, err := run(ctx, s, opts.Timeout)
	if err != nil {
		return nil, err
	}

	res := &Result{
		RunID:     uuid.NewString(),
		Name:      p.Name,
		Solved:    solved,
		Unseated:  s.Unseated(),
		Rules:     Outcomes(results),
		Stats:     s.Stats(),
		Duration:  time.Since(start),
		CacheKey:  key,
		Timestamp: start.UTC(),
	}
	if solved {
		res.Tables = pl.Assignment()
	}
	if opts.Strict && len(res.Unseated) > 0 {
		res.Solved = false
		res.Tables = nil
	}

	r.Logger.Info("search finished",
		"solved", res.Solved,
		"placements", res.Stats.Placements,
		"backtracks", res.Stats.Backtracks,
		"duration", res.Duration)

	r.store(ctx, key, res)
	return res, nil
}

// run waits for s.Solve or the deadline, whichever comes first.
func run(ctx context.Context, s *solver.Solver, timeout time.Duration) (bool, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	done := make(chan bool, 1)
	go func() {
		done <- s.Solve()
	}()

	select {
	case ok := <-done:
		return ok, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return false, errs.Wrap(errs.ErrCodeTimeout, ctx.Err(), "no seating found within %s", timeout)
		}
		return false, ctx.Err()
	}
}

func (r *Runner) lookup(ctx context.Context, key string) (*Result, bool) {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
		return nil, false
	}
	if !hit {
		hooks.OnCacheMiss(ctx, resultKeyType)
		return nil, false
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		r.Logger.Warn("dropping cached result", "key", key, "error", fmt.Errorf("%w: %v", cache.ErrCorrupt, err))
		_ = r.Cache.Delete(ctx, key)
		hooks.OnCacheMiss(ctx, resultKeyType)
		return nil, false
	}
	hooks.OnCacheHit(ctx, resultKeyType)
	res.CacheKey = key
	return &res, true
}

func (r *Runner) store(ctx context.Context, key string, res *Result) {
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, resultKeyType, len(data))
}

// Check reports whether the fixed seating in p satisfies its rules, and which
// tables break them.
func (r *Runner) Check(p *problem.Problem) (*CheckReport, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	rs, results := p.BuildRules()
	pl, err := p.SeatingPlan()
	if err != nil {
		return nil, err
	}

	report := &CheckReport{
		Satisfied: rs.IsSatisfied(pl),
		Tables:    pl.Assignment(),
		Rules:     Outcomes(results),
	}

	// A seating is satisfied exactly when each table is, so checking tables
	// one at a time pinpoints the offenders.
	for i := 0; i < pl.Tables(); i++ {
		single := plan.New(1, pl.SeatsPerTable())
		table, _ := pl.GuestsAt(i)
		for _, guest := range table.Guests() {
			_ = single.PlaceGuest(0, guest)
		}
		if !rs.IsSatisfied(single) {
			report.Violating = append(report.Violating, i)
		}
	}

	for _, guest := range p.Guests {
		if !plan.IsBlank(guest) && !pl.IsSeated(guest) {
			report.Unseated = append(report.Unseated, guest)
		}
	}

	r.Logger.Debug("checked seating",
		"satisfied", report.Satisfied,
		"violating", len(report.Violating))
	return report, nil
}
