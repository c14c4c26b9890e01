// Package problem describes a seating problem as data: table dimensions, the
// guest list, the rules, and optionally a fixed seating to check.
//
// A Problem is what the CLI reads from a TOML or JSON file (see package io).
// It turns into the core types with [Problem.NewPlan], [Problem.BuildRules]
// and [Problem.SeatingPlan].
package problem

import (
	"encoding/json"

	errs "github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/plan"
	"github.com/matzehuels/seatplan/pkg/rules"
)

// Problem is a seating problem definition.
//
// Each Together entry lists guests that must share a table; an entry with
// more than two names requires every later guest to sit with the first.
// Each Apart entry names exactly two guests that must not share a table.
// Seating, when present, lists guests per table in table order.
type Problem struct {
	Name     string     `toml:"name" json:"name,omitempty"`
	Tables   int        `toml:"tables" json:"tables"`
	Seats    int        `toml:"seats" json:"seats"`
	Guests   []string   `toml:"guests" json:"guests"`
	Together [][]string `toml:"together" json:"together,omitempty"`
	Apart    [][]string `toml:"apart" json:"apart,omitempty"`
	Seating  [][]string `toml:"seating" json:"seating,omitempty"`
}

// Validate checks the structure of the problem.
//
// Names inside rules are not validated here: blank or contradictory rules are
// rejected softly by [rules.Rules] and reported by [Problem.BuildRules].
func (p *Problem) Validate() error {
	if err := errs.ValidateProblemShape(p.Tables, p.Seats); err != nil {
		return err
	}
	if err := errs.ValidateGuestList(p.Guests); err != nil {
		return err
	}
	for i, group := range p.Together {
		if len(group) < 2 {
			return errs.New(errs.ErrCodeInvalidProblem, "together rule %d needs at least two guests, got %d", i+1, len(group))
		}
	}
	for i, pair := range p.Apart {
		if len(pair) != 2 {
			return errs.New(errs.ErrCodeInvalidProblem, "apart rule %d needs exactly two guests, got %d", i+1, len(pair))
		}
	}
	if len(p.Seating) > p.Tables {
		return errs.New(errs.ErrCodeInvalidProblem, "seating lists %d tables but the problem has %d", len(p.Seating), p.Tables)
	}
	known := make(map[string]struct{}, len(p.Guests))
	for _, g := range p.Guests {
		known[g] = struct{}{}
	}
	seated := make(map[string]int)
	for i, table := range p.Seating {
		if len(table) > p.Seats {
			return errs.New(errs.ErrCodeInvalidProblem, "seating for table %d lists %d guests but tables have %d seats", i, len(table), p.Seats)
		}
		for _, guest := range table {
			if plan.IsBlank(guest) {
				continue
			}
			if _, ok := known[guest]; !ok {
				return errs.New(errs.ErrCodeInvalidProblem, "seating for table %d names %q, who is not a guest", i, guest)
			}
			if prev, dup := seated[guest]; dup {
				return errs.New(errs.ErrCodeInvalidProblem, "seating lists %q at table %d and table %d", guest, prev, i)
			}
			seated[guest] = i
		}
	}
	return nil
}

// NewPlan returns an empty plan with the problem's dimensions.
func (p *Problem) NewPlan() *plan.Plan {
	return plan.New(p.Tables, p.Seats)
}

// BuildRules creates the rule set, applying together rules before apart
// rules in file order, and returns the outcome of every rule.
func (p *Problem) BuildRules() (*rules.Rules, []rules.Result) {
	r := rules.New()
	var results []rules.Result
	for _, group := range p.Together {
		for _, other := range group[1:] {
			results = append(results, r.RequireTogether(group[0], other))
		}
	}
	for _, pair := range p.Apart {
		results = append(results, r.ForbidTogether(pair[0], pair[1]))
	}
	return r, results
}

// SeatingPlan builds the fixed seating given in the problem. Blank names are
// skipped; call [Problem.Validate] first to reject repeated or unknown names.
func (p *Problem) SeatingPlan() (*plan.Plan, error) {
	pl := p.NewPlan()
	for i, table := range p.Seating {
		for _, guest := range table {
			if err := pl.PlaceGuest(i, guest); err != nil {
				return nil, err
			}
		}
	}
	return pl, nil
}

// Fingerprint returns a canonical encoding of the fields that determine a
// solve result. The name and fixed seating are excluded.
func (p *Problem) Fingerprint() []byte {
	data, _ := json.Marshal(struct {
		Tables   int        `json:"tables"`
		Seats    int        `json:"seats"`
		Guests   []string   `json:"guests"`
		Together [][]string `json:"together"`
		Apart    [][]string `json:"apart"`
	}{p.Tables, p.Seats, p.Guests, p.Together, p.Apart})
	return data
}
