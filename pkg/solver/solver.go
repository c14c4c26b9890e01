// Package solver finds a seating plan that satisfies a rule set by
// depth-first backtracking.
//
// The search repeatedly takes the first table with a free seat and tries each
// unseated guest there, in guest-list order. After every tentative placement
// the whole plan is checked against the rules; a valid placement is explored
// further, an invalid one or a dead end is undone and the next guest is tried.
//
// The search succeeds when no table has a free seat, or when every guest has
// been seated. Guests that do not fit once all seats are taken are simply
// left unseated; see [Solver.Unseated]. Seats are filled in table order, so a
// seat is never skipped while an unseated guest remains.
//
// No pruning or pre-processing is performed and the search is exponential in
// the worst case. It runs to completion without cancellation; callers that
// need a deadline run Solve in a goroutine and stop waiting for it.
package solver

import (
	"time"

	"github.com/matzehuels/seatplan/pkg/observability"
	"github.com/matzehuels/seatplan/pkg/plan"
	"github.com/matzehuels/seatplan/pkg/rules"
)

// progressInterval is the number of placements between progress callbacks.
const progressInterval = 4096

// Store is the mutable plan the solver fills. [*plan.Plan] implements it.
type Store interface {
	rules.Seating
	PlaceGuest(table int, guest string) error
	RemoveGuest(guest string)
	IsSeated(guest string) bool
	FirstOpenTable() (int, bool)
}

// Checker validates a plan. [*rules.Rules] implements it.
type Checker interface {
	IsSatisfied(s rules.Seating) bool
}

// Stats counts the work done by a search.
type Stats struct {
	Placements int `json:"placements"` // tentative placements made
	Rejections int `json:"rejections"` // placements that broke a rule
	Backtracks int `json:"backtracks"` // placements undone
	MaxDepth   int `json:"max_depth"`  // deepest recursion level reached
}

// Option configures a Solver.
type Option func(*Solver)

// WithProgress registers fn to be called periodically during the search and
// once when it finishes. fn runs on the solving goroutine.
func WithProgress(fn func(Stats)) Option {
	return func(s *Solver) { s.progress = fn }
}

// Solver searches for a valid seating. A Solver owns its store for the
// duration of Solve and is not safe for concurrent use.
type Solver struct {
	guests   []string
	store    Store
	rules    Checker
	progress func(Stats)
	stats    Stats
}

// New creates a solver that seats guests into store subject to rules.
// Blank names and repeated names in guests are ignored during the search.
func New(guests []string, store Store, checker Checker, opts ...Option) *Solver {
	s := &Solver{
		guests: guests,
		store:  store,
		rules:  checker,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Solve runs the search and reports whether a valid seating was found. On
// success the store holds the seating; on failure it is left as it was
// before the call.
func (s *Solver) Solve() bool {
	start := time.Now()
	s.stats = Stats{}
	hooks := observability.Solver()
	hooks.OnSolveStart(len(s.guests), s.store.Tables(), s.store.SeatsPerTable())

	ok := s.solve(1)

	if s.progress != nil {
		s.progress(s.stats)
	}
	hooks.OnSolveComplete(ok, s.stats.Placements, s.stats.Backtracks, time.Since(start))
	return ok
}

func (s *Solver) solve(depth int) bool {
	s.stats.MaxDepth = max(s.stats.MaxDepth, depth)

	table, open := s.store.FirstOpenTable()
	if !open {
		return true
	}

	candidates := false
	for _, guest := range s.guests {
		if plan.IsBlank(guest) || s.store.IsSeated(guest) {
			continue
		}
		candidates = true

		if err := s.store.PlaceGuest(table, guest); err != nil {
			return false
		}
		s.placed()

		if s.rules.IsSatisfied(s.store) {
			if s.solve(depth + 1) {
				return true
			}
		} else {
			s.stats.Rejections++
		}

		s.store.RemoveGuest(guest)
		s.stats.Backtracks++
	}

	// Everyone is seated; the remaining seats stay empty.
	return !candidates
}

func (s *Solver) placed() {
	s.stats.Placements++
	if s.progress != nil && s.stats.Placements%progressInterval == 0 {
		s.progress(s.stats)
	}
}

// Stats returns the counters of the most recent Solve.
func (s *Solver) Stats() Stats { return s.stats }

// Unseated returns the guests, in list order, that the store does not seat.
// After a successful Solve these are the guests left over once every seat was
// taken. Blank names are omitted.
func (s *Solver) Unseated() []string {
	var out []string
	seen := make(map[string]bool, len(s.guests))
	for _, g := range s.guests {
		if plan.IsBlank(g) || seen[g] || s.store.IsSeated(g) {
			continue
		}
		seen[g] = true
		out = append(out, g)
	}
	return out
}
