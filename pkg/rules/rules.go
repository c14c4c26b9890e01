package rules

import (
	"slices"

	"github.com/matzehuels/seatplan/pkg/observability"
	"github.com/matzehuels/seatplan/pkg/plan"
)

// Seating is the read view of a plan that [Rules.IsSatisfied] needs.
// [*plan.Plan] implements it.
type Seating interface {
	Tables() int
	SeatsPerTable() int
	GuestsAt(table int) (plan.Table, error)
}

type guestSet = map[string]struct{}

// Rules is a set of together and apart constraints.
//
// The zero value is not usable; create rule sets with [New]. Rules is not
// safe for concurrent mutation, and should be treated as read-only once a
// solve has started.
type Rules struct {
	groups  []guestSet
	enemies map[string]guestSet
}

// New creates an empty rule set.
func New() *Rules {
	return &Rules{enemies: make(map[string]guestSet)}
}

// RequireTogether requires a and b to share a table.
//
// The rule is rejected if the guests are already enemies, if a == b, or if
// the friend group it would extend already contains an enemy of a or b.
// Otherwise the missing guest joins the first group holding either guest, or
// a new two-member group is created.
func (r *Rules) RequireTogether(a, b string) Result {
	return r.report(r.requireTogether(a, b), a, b)
}

func (r *Rules) requireTogether(a, b string) Result {
	switch {
	case plan.IsBlank(a) || plan.IsBlank(b):
		return newResult(KindTogether, a, b, ReasonBlankGuest)
	case r.AreEnemies(a, b):
		return newResult(KindTogether, a, b, ReasonAlreadyEnemies)
	case a == b:
		return newResult(KindTogether, a, b, ReasonSameGuest)
	}

	for _, group := range r.groups {
		_, hasA := group[a]
		_, hasB := group[b]
		if !hasA && !hasB {
			continue
		}
		if r.hasEnemy(group, a) || r.hasEnemy(group, b) {
			return newResult(KindTogether, a, b, ReasonEnemyInGroup)
		}
		group[a] = struct{}{}
		group[b] = struct{}{}
		return newResult(KindTogether, a, b, ReasonAccepted)
	}

	r.groups = append(r.groups, guestSet{a: {}, b: {}})
	return newResult(KindTogether, a, b, ReasonAccepted)
}

// ForbidTogether forbids a and b from sharing a table. The enemy relation is
// symmetric.
//
// The rule is rejected if a and b are members of the same friend group or if
// a == b.
func (r *Rules) ForbidTogether(a, b string) Result {
	return r.report(r.forbidTogether(a, b), a, b)
}

func (r *Rules) forbidTogether(a, b string) Result {
	switch {
	case plan.IsBlank(a) || plan.IsBlank(b):
		return newResult(KindApart, a, b, ReasonBlankGuest)
	case r.AreFriends(a, b):
		return newResult(KindApart, a, b, ReasonAlreadyFriends)
	case a == b:
		return newResult(KindApart, a, b, ReasonSameGuest)
	}

	r.addEnemy(a, b)
	r.addEnemy(b, a)
	return newResult(KindApart, a, b, ReasonAccepted)
}

func (r *Rules) addEnemy(guest, enemy string) {
	set, ok := r.enemies[guest]
	if !ok {
		set = make(guestSet)
		r.enemies[guest] = set
	}
	set[enemy] = struct{}{}
}

func (r *Rules) report(res Result, a, b string) Result {
	hooks := observability.Rules()
	if res.Accepted {
		hooks.OnRuleAccepted(string(res.Kind), a, b)
	} else {
		hooks.OnRuleRejected(string(res.Kind), a, b, string(res.Reason), res.Message)
	}
	return res
}

// AreEnemies reports whether an apart rule links a and b.
func (r *Rules) AreEnemies(a, b string) bool {
	_, ok := r.enemies[a][b]
	return ok
}

// AreFriends reports whether a and b belong to the same friend group.
func (r *Rules) AreFriends(a, b string) bool {
	for _, group := range r.groups {
		_, hasA := group[a]
		_, hasB := group[b]
		if hasA && hasB {
			return true
		}
	}
	return false
}

// Empty reports whether the rule set has no rules at all.
func (r *Rules) Empty() bool {
	return len(r.groups) == 0 && len(r.enemies) == 0
}

// IsSatisfied reports whether the seating breaks no rule.
//
// A table fails if two enemies sit at it, or if it is full and one of its
// guests belongs to a friend group that is not wholly seated there. Tables
// with free seats are never failed for incomplete friend groups.
func (r *Rules) IsSatisfied(s Seating) bool {
	if r.Empty() {
		return true
	}

	for i := range s.Tables() {
		table, err := s.GuestsAt(i)
		if err != nil {
			continue
		}
		for guest := range table {
			if r.hasEnemy(table, guest) {
				return false
			}
		}
		if table.Len() >= s.SeatsPerTable() && !r.allFriendsPresent(table) {
			return false
		}
	}
	return true
}

// hasEnemy reports whether any member of group counts guest as an enemy.
func (r *Rules) hasEnemy(group map[string]struct{}, guest string) bool {
	for member := range group {
		if _, ok := r.enemies[member][guest]; ok {
			return true
		}
	}
	return false
}

// allFriendsPresent reports whether every friend group touching the table is
// seated there in full.
func (r *Rules) allFriendsPresent(table plan.Table) bool {
	for guest := range table {
		for _, group := range r.groups {
			if _, ok := group[guest]; ok && !table.ContainsAll(group) {
				return false
			}
		}
	}
	return true
}

// Groups returns a sorted snapshot of the friend groups in creation order.
func (r *Rules) Groups() [][]string {
	out := make([][]string, len(r.groups))
	for i, group := range r.groups {
		out[i] = sortedKeys(group)
	}
	return out
}

// Enemies returns the sorted enemies of guest.
func (r *Rules) Enemies(guest string) []string {
	return sortedKeys(r.enemies[guest])
}

// EnemyPairs returns every apart rule once, as sorted pairs in sorted order.
func (r *Rules) EnemyPairs() [][2]string {
	var out [][2]string
	for _, a := range sortedKeys(r.enemies) {
		for _, b := range sortedKeys(r.enemies[a]) {
			if a < b {
				out = append(out, [2]string{a, b})
			}
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
