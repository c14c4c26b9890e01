package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seatplan/pkg/observability"
)

// hookSet implements every observability hook interface.
type hookSet interface {
	observability.RuleHooks
	observability.SolverHooks
	observability.CacheHooks
}

// installHooks routes core events to the logger at debug level, and to any
// extra hook sets such as metrics.
func installHooks(l *log.Logger, extra ...hookSet) {
	var h hookSet = logHooks{l}
	if len(extra) > 0 {
		h = append(multiHooks{h}, extra...)
	}
	observability.SetRuleHooks(h)
	observability.SetSolverHooks(h)
	observability.SetCacheHooks(h)
}

// multiHooks forwards each event to every hook set in order.
type multiHooks []hookSet

func (m multiHooks) OnRuleAccepted(kind, a, b string) {
	for _, h := range m {
		h.OnRuleAccepted(kind, a, b)
	}
}

func (m multiHooks) OnRuleRejected(kind, a, b, reason, message string) {
	for _, h := range m {
		h.OnRuleRejected(kind, a, b, reason, message)
	}
}

func (m multiHooks) OnSolveStart(guests, tables, seatsPerTable int) {
	for _, h := range m {
		h.OnSolveStart(guests, tables, seatsPerTable)
	}
}

func (m multiHooks) OnSolveComplete(solved bool, placements, backtracks int, d time.Duration) {
	for _, h := range m {
		h.OnSolveComplete(solved, placements, backtracks, d)
	}
}

func (m multiHooks) OnCacheHit(ctx context.Context, keyType string) {
	for _, h := range m {
		h.OnCacheHit(ctx, keyType)
	}
}

func (m multiHooks) OnCacheMiss(ctx context.Context, keyType string) {
	for _, h := range m {
		h.OnCacheMiss(ctx, keyType)
	}
}

func (m multiHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	for _, h := range m {
		h.OnCacheSet(ctx, keyType, size)
	}
}

type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnRuleAccepted(kind, a, b string) {
	h.logger.Debug("rule accepted", "kind", kind, "a", a, "b", b)
}

func (h logHooks) OnRuleRejected(kind, a, b, reason, message string) {
	h.logger.Debug("rule rejected", "kind", kind, "a", a, "b", b, "reason", reason)
}

func (h logHooks) OnSolveStart(guests, tables, seatsPerTable int) {
	h.logger.Debug("solve started", "guests", guests, "tables", tables, "seats", seatsPerTable)
}

func (h logHooks) OnSolveComplete(solved bool, placements, backtracks int, d time.Duration) {
	h.logger.Debug("solve finished", "solved", solved, "placements", placements, "backtracks", backtracks, "duration", d)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

var (
	_ hookSet = logHooks{}
	_ hookSet = multiHooks{}
)
