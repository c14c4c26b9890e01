// Package observability provides hooks for logging and metrics.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific backends. Consumers register hooks at startup to
// receive events about rule decisions, solver runs, and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// The rules and solver packages call these hooks but never log themselves, so
// library users get silence by default and the CLI gets structured log lines.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRuleHooks(&myRuleHooks{})
//	    observability.SetSolverHooks(&mySolverHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Rules().OnRuleRejected("together", a, b, "already_enemies", msg)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Rule Hooks
// =============================================================================

// RuleHooks receives a diagnostic for every rule added to a rule set.
// kind is "together" or "apart"; reason is a short machine-readable token.
type RuleHooks interface {
	OnRuleAccepted(kind, a, b string)
	OnRuleRejected(kind, a, b, reason, message string)
}

// =============================================================================
// Solver Hooks
// =============================================================================

// SolverHooks receives events from backtracking searches.
type SolverHooks interface {
	// OnSolveStart is called once before the search begins.
	OnSolveStart(guests, tables, seatsPerTable int)

	// OnSolveComplete reports the outcome with the number of tentative
	// placements and undone placements.
	OnSolveComplete(solved bool, placements, backtracks int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRuleHooks is a no-op implementation of RuleHooks.
type NoopRuleHooks struct{}

func (NoopRuleHooks) OnRuleAccepted(string, string, string)                 {}
func (NoopRuleHooks) OnRuleRejected(string, string, string, string, string) {}

// NoopSolverHooks is a no-op implementation of SolverHooks.
type NoopSolverHooks struct{}

func (NoopSolverHooks) OnSolveStart(int, int, int)                    {}
func (NoopSolverHooks) OnSolveComplete(bool, int, int, time.Duration) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	ruleHooks   RuleHooks   = NoopRuleHooks{}
	solverHooks SolverHooks = NoopSolverHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetRuleHooks registers custom rule hooks.
// This should be called once at application startup before any rules are added.
func SetRuleHooks(h RuleHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		ruleHooks = h
	}
}

// SetSolverHooks registers custom solver hooks.
func SetSolverHooks(h SolverHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		solverHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Rules returns the registered rule hooks.
func Rules() RuleHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return ruleHooks
}

// Solver returns the registered solver hooks.
func Solver() SolverHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return solverHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	ruleHooks = NoopRuleHooks{}
	solverHooks = NoopSolverHooks{}
	cacheHooks = NoopCacheHooks{}
}
