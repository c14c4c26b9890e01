package rules

import "fmt"

// Kind names the type of a rule.
type Kind string

const (
	// KindTogether is a "must sit together" rule.
	KindTogether Kind = "together"
	// KindApart is a "must not sit together" rule.
	KindApart Kind = "apart"
)

// Reason explains the outcome of adding a rule.
type Reason string

const (
	ReasonAccepted       Reason = "accepted"
	ReasonBlankGuest     Reason = "blank_guest"
	ReasonSameGuest      Reason = "same_guest"
	ReasonAlreadyEnemies Reason = "already_enemies"
	ReasonAlreadyFriends Reason = "already_friends"
	ReasonEnemyInGroup   Reason = "enemy_in_group"
)

var reasonMessages = map[Reason]string{
	ReasonAccepted:       "rule added",
	ReasonBlankGuest:     "guest names must not be blank",
	ReasonSameGuest:      "a rule needs two different guests",
	ReasonAlreadyEnemies: "guests are already enemies and cannot be required together",
	ReasonAlreadyFriends: "guests are already required together and cannot be enemies",
	ReasonEnemyInGroup:   "the friend group already contains an enemy of one of the guests",
}

// Result is the outcome of adding one rule. Rejected rules leave the rule set
// unchanged.
type Result struct {
	Kind     Kind
	A, B     string
	Accepted bool
	Reason   Reason
	Message  string
}

func newResult(kind Kind, a, b string, reason Reason) Result {
	return Result{
		Kind:     kind,
		A:        a,
		B:        b,
		Accepted: reason == ReasonAccepted,
		Reason:   reason,
		Message:  reasonMessages[reason],
	}
}

// String renders the result as "together(A, B): accepted".
func (r Result) String() string {
	if r.Accepted {
		return fmt.Sprintf("%s(%s, %s): accepted", r.Kind, r.A, r.B)
	}
	return fmt.Sprintf("%s(%s, %s): rejected: %s", r.Kind, r.A, r.B, r.Message)
}
