// Package plan holds a seating plan: a fixed number of tables, each with the
// same seat capacity, and the guests currently sitting at them.
//
// # Overview
//
// A [Plan] is created with its dimensions fixed for life:
//
//	p := plan.New(3, 8) // 3 tables of 8 seats
//
// Guests are placed and removed by name. Placement is forgiving: placing a
// blank name, a guest who is already seated, or a guest at a full table is a
// silent no-op. Only an out-of-range table index is an error, because that
// indicates caller misuse rather than bad input:
//
//	if err := p.PlaceGuest(0, "Alice"); err != nil {
//	    // err has code errors.ErrCodeTableOutOfRange
//	}
//
// # Invariants
//
//   - A guest appears at most at one table.
//   - No table holds more than [Plan.SeatsPerTable] guests through PlaceGuest.
//   - Table indices are in [0, [Plan.Tables]).
//
// # Aliasing
//
// [Plan.GuestsAt] returns the live [Table], not a copy. Writes through it
// change the plan directly and bypass the checks PlaceGuest performs; callers
// that do so are responsible for keeping the invariants above. Use
// [Plan.Assignment] for a detached snapshot.
//
// # Concurrency
//
// A Plan is not safe for concurrent use. It is meant to be owned by a single
// solve at a time.
package plan
