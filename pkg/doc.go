// Package pkg provides the libraries behind seatplan, a wedding seating
// solver.
//
// # Overview
//
// A seating problem is a number of tables with a fixed number of seats, a
// guest list, and two kinds of rule: guests who must sit together and guests
// who must sit apart. The packages are organized in three layers:
//
//  1. Core: [plan] holds a seating, [rules] holds the constraints and checks
//     a seating against them, and [solver] searches for a valid seating.
//  2. Definition: [problem] describes a problem as data; [io] reads it from
//     TOML or JSON and writes results.
//  3. Orchestration: [pipeline] validates, solves under a deadline and caches
//     results in [cache].
//
// Cross-cutting packages: [errors] for coded errors, [observability] for
// hook-based instrumentation, and [buildinfo] for version information.
//
// # Data Flow
//
//	problem file (.toml/.json)
//	         ↓
//	    io.LoadProblem
//	         ↓
//	  problem.Problem ──→ rules.Rules (together/apart)
//	         ↓
//	    plan.Plan (empty)
//	         ↓
//	  solver.Solve  ──→  pipeline.Result  ──→  cache
//
// # Concurrency
//
// Plans, rule sets and solvers are not safe for concurrent use; each search
// owns its own. A [pipeline.Runner] may be shared between goroutines.
//
// [plan]: github.com/matzehuels/seatplan/pkg/plan
// [rules]: github.com/matzehuels/seatplan/pkg/rules
// [solver]: github.com/matzehuels/seatplan/pkg/solver
// [problem]: github.com/matzehuels/seatplan/pkg/problem
// [io]: github.com/matzehuels/seatplan/pkg/io
// [pipeline]: github.com/matzehuels/seatplan/pkg/pipeline
// [pipeline.Runner]: github.com/matzehuels/seatplan/pkg/pipeline#Runner
// [cache]: github.com/matzehuels/seatplan/pkg/cache
// [errors]: github.com/matzehuels/seatplan/pkg/errors
// [observability]: github.com/matzehuels/seatplan/pkg/observability
// [buildinfo]: github.com/matzehuels/seatplan/pkg/buildinfo
package pkg
