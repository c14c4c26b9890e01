// Package pipeline runs a seating problem end to end: validate, build the
// rules, solve with a deadline, and cache the outcome.
//
// The CLI and any embedding program share this logic so that caching and
// timeouts behave the same everywhere.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Solve(ctx, p, pipeline.Options{Timeout: time.Minute})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Tables)
//
// Check a fixed seating instead of searching for one:
//
//	report, err := runner.Check(p)
package pipeline

import (
	"time"

	"github.com/matzehuels/seatplan/pkg/rules"
	"github.com/matzehuels/seatplan/pkg/solver"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultTimeout bounds a solve when the caller does not set one.
// The search is exponential in the worst case.
const DefaultTimeout = 2 * time.Minute

// =============================================================================
// Options
// =============================================================================

// Options controls a solve.
type Options struct {
	// Timeout bounds the search. Zero uses DefaultTimeout, a negative value
	// disables the deadline.
	Timeout time.Duration

	// Strict reports a problem as unsolved when any guest is left without a
	// seat, even if every table is full.
	Strict bool

	// Refresh skips the cache lookup. The new result is still stored.
	Refresh bool

	// Progress receives search counters periodically. It is called from the
	// solving goroutine.
	Progress func(solver.Stats)
}

// SetDefaults fills in zero values.
func (o *Options) SetDefaults() {
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
}

// =============================================================================
// Results
// =============================================================================

// RuleOutcome is the serializable form of a [rules.Result].
type RuleOutcome struct {
	Kind     string `json:"kind"`
	A        string `json:"a"`
	B        string `json:"b"`
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason"`
	Message  string `json:"message,omitempty"`
}

// Outcomes converts rule results to their serializable form.
func Outcomes(results []rules.Result) []RuleOutcome {
	if len(results) == 0 {
		return nil
	}
	out := make([]RuleOutcome, len(results))
	for i, r := range results {
		out[i] = RuleOutcome{
			Kind:     string(r.Kind),
			A:        r.A,
			B:        r.B,
			Accepted: r.Accepted,
			Reason:   string(r.Reason),
			Message:  r.Message,
		}
	}
	return out
}

// Rejected returns the outcomes of rules that were not applied.
func Rejected(outs []RuleOutcome) []RuleOutcome {
	var rejected []RuleOutcome
	for _, o := range outs {
		if !o.Accepted {
			rejected = append(rejected, o)
		}
	}
	return rejected
}

// Result is the outcome of a solve.
type Result struct {
	RunID     string        `json:"run_id"`
	Name      string        `json:"name,omitempty"`
	Solved    bool          `json:"solved"`
	Tables    [][]string    `json:"tables"`
	Unseated  []string      `json:"unseated,omitempty"`
	Rules     []RuleOutcome `json:"rules,omitempty"`
	Stats     solver.Stats  `json:"stats"`
	Duration  time.Duration `json:"duration_ns"`
	Cached    bool          `json:"cached"`
	CacheKey  string        `json:"-"`
	Timestamp time.Time     `json:"timestamp"`
}

// CheckReport is the outcome of checking a fixed seating.
type CheckReport struct {
	Satisfied bool          `json:"satisfied"`
	Tables    [][]string    `json:"tables"`
	Violating []int         `json:"violating_tables,omitempty"`
	Unseated  []string      `json:"unseated,omitempty"`
	Rules     []RuleOutcome `json:"rules,omitempty"`
}
