// Package rules holds the seating constraints of a problem and checks plans
// against them.
//
// Two kinds of rule exist:
//   - "together": guests that must end up at the same table. Rules are kept as
//     friend groups; requiring a guest to sit with a member of an existing
//     group merges the guest into that group.
//   - "apart": a symmetric enemy relation between two guests.
//
// Adding a rule never fails with an error. Contradictory or malformed rules
// (blank names, a guest paired with itself, friends declared enemies or the
// reverse) are rejected without changing the rule set, and the returned
// [Result] says why. Every decision is also reported to
// [observability.RuleHooks] so an operator can see rejections in the log.
//
// # Checking plans
//
// [Rules.IsSatisfied] accepts partial plans. Enemies may never share a table,
// but a friend group only has to be complete at a table once that table is
// full: a partially filled table may still receive the rest of the group.
//
// # Known limitation
//
// A together rule merges into the first friend group that contains either
// guest. Two groups built independently are never unioned, even when a later
// rule links them, so "must sit together" is not enforced transitively across
// such groups.
package rules
