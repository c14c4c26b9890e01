package plan

import (
	"fmt"
	"slices"
	"strings"

	errs "github.com/matzehuels/seatplan/pkg/errors"
)

// IsBlank reports whether guest is empty or whitespace-only. Blank names are
// never seated and never match a seated guest.
func IsBlank(guest string) bool {
	return strings.TrimSpace(guest) == ""
}

// Table is the set of guests seated at one table. Membership checks are O(1).
type Table map[string]struct{}

// Has reports whether guest sits at the table.
func (t Table) Has(guest string) bool {
	_, ok := t[guest]
	return ok
}

// Len returns the number of occupied seats.
func (t Table) Len() int { return len(t) }

// Add seats guest at the table without any capacity or uniqueness checks.
// It exists for callers that manipulate a live table returned by
// [Plan.GuestsAt]; normal placement goes through [Plan.PlaceGuest].
func (t Table) Add(guest string) { t[guest] = struct{}{} }

// Remove unseats guest and reports whether it was present.
func (t Table) Remove(guest string) bool {
	if _, ok := t[guest]; !ok {
		return false
	}
	delete(t, guest)
	return true
}

// ContainsAll reports whether every guest in group sits at the table.
func (t Table) ContainsAll(group map[string]struct{}) bool {
	for g := range group {
		if !t.Has(g) {
			return false
		}
	}
	return true
}

// Guests returns the guests at the table in sorted order.
func (t Table) Guests() []string {
	out := make([]string, 0, len(t))
	for g := range t {
		out = append(out, g)
	}
	slices.Sort(out)
	return out
}

// Plan is an assignment of guests to tables.
//
// The zero value is a plan with no tables. Use [New] to create a plan with
// seats.
type Plan struct {
	seats  int
	tables []Table
}

// New creates an empty plan with the given number of tables and seats per
// table. Negative dimensions are treated as zero.
func New(tables, seatsPerTable int) *Plan {
	tables = max(tables, 0)
	seatsPerTable = max(seatsPerTable, 0)

	p := &Plan{
		seats:  seatsPerTable,
		tables: make([]Table, tables),
	}
	for i := range p.tables {
		p.tables[i] = make(Table, min(seatsPerTable, 64))
	}
	return p
}

// Tables returns the number of tables.
func (p *Plan) Tables() int { return len(p.tables) }

// SeatsPerTable returns the capacity of each table.
func (p *Plan) SeatsPerTable() int { return p.seats }

// Capacity returns the total number of seats in the plan.
func (p *Plan) Capacity() int { return len(p.tables) * p.seats }

// PlaceGuest seats guest at the given table.
//
// It returns an error with code [errs.ErrCodeTableOutOfRange] if table is not
// a valid index. It does nothing if guest is blank, already seated anywhere,
// or the table is full.
func (p *Plan) PlaceGuest(table int, guest string) error {
	if err := p.checkTable(table); err != nil {
		return err
	}
	if IsBlank(guest) || p.IsSeated(guest) || p.tables[table].Len() >= p.seats {
		return nil
	}
	p.tables[table].Add(guest)
	return nil
}

// RemoveGuest unseats guest. Tables are scanned in index order and the scan
// stops at the first table that held the guest. Blank or unseated guests are
// ignored.
func (p *Plan) RemoveGuest(guest string) {
	if IsBlank(guest) {
		return
	}
	for _, t := range p.tables {
		if t.Remove(guest) {
			return
		}
	}
}

// IsSeated reports whether guest sits at any table. Blank names are never
// seated.
func (p *Plan) IsSeated(guest string) bool {
	_, ok := p.TableOf(guest)
	return ok
}

// TableOf returns the index of the table guest sits at.
func (p *Plan) TableOf(guest string) (int, bool) {
	if IsBlank(guest) {
		return -1, false
	}
	for i, t := range p.tables {
		if t.Has(guest) {
			return i, true
		}
	}
	return -1, false
}

// GuestsAt returns the live guest set of a table. The returned Table aliases
// plan state: changes made through it are changes to the plan.
func (p *Plan) GuestsAt(table int) (Table, error) {
	if err := p.checkTable(table); err != nil {
		return nil, err
	}
	return p.tables[table], nil
}

// OpenSeats returns the number of free seats at a table.
func (p *Plan) OpenSeats(table int) (int, error) {
	if err := p.checkTable(table); err != nil {
		return 0, err
	}
	return max(p.seats-p.tables[table].Len(), 0), nil
}

// FirstOpenTable returns the lowest-indexed table with a free seat, or false
// if every table is full.
func (p *Plan) FirstOpenTable() (int, bool) {
	for i, t := range p.tables {
		if t.Len() < p.seats {
			return i, true
		}
	}
	return -1, false
}

// Seated returns the total number of seated guests.
func (p *Plan) Seated() int {
	n := 0
	for _, t := range p.tables {
		n += t.Len()
	}
	return n
}

// Assignment returns a detached snapshot of the plan: one sorted guest list
// per table, in table order.
func (p *Plan) Assignment() [][]string {
	out := make([][]string, len(p.tables))
	for i, t := range p.tables {
		out[i] = t.Guests()
	}
	return out
}

// String renders the plan as "0:[A B] 1:[C]".
func (p *Plan) String() string {
	var b strings.Builder
	for i, guests := range p.Assignment() {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d:%v", i, guests)
	}
	return b.String()
}

func (p *Plan) checkTable(table int) error {
	if table < 0 || table >= len(p.tables) {
		return errs.New(errs.ErrCodeTableOutOfRange, "table %d does not exist (plan has %d tables)", table, len(p.tables))
	}
	return nil
}
