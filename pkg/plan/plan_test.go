package plan

import (
	"slices"
	"testing"

	errs "github.com/matzehuels/seatplan/pkg/errors"
)

// fill builds a plan and seats guests row by row; "" leaves a seat empty.
func fill(t *testing.T, tables, seats int, guests ...string) *Plan {
	t.Helper()
	if len(guests) != tables*seats {
		t.Fatalf("fill: got %d guests for %d seats", len(guests), tables*seats)
	}
	p := New(tables, seats)
	for i, g := range guests {
		if g == "" {
			continue
		}
		if err := p.PlaceGuest(i/seats, g); err != nil {
			t.Fatalf("PlaceGuest(%d, %q): %v", i/seats, g, err)
		}
	}
	return p
}

func TestNew(t *testing.T) {
	tests := []struct {
		name                string
		tables, seats       int
		wantTables, wantSts int
	}{
		{"typical", 3, 4, 3, 4},
		{"empty", 0, 0, 0, 0},
		{"negative clamps", -2, -5, 0, 0},
		{"huge seat count", 2, 1 << 40, 2, 1 << 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.tables, tt.seats)
			if p.Tables() != tt.wantTables {
				t.Errorf("Tables() = %d, want %d", p.Tables(), tt.wantTables)
			}
			if p.SeatsPerTable() != tt.wantSts {
				t.Errorf("SeatsPerTable() = %d, want %d", p.SeatsPerTable(), tt.wantSts)
			}
			if p.Seated() != 0 {
				t.Errorf("Seated() = %d, want 0", p.Seated())
			}
		})
	}
}

func TestPlaceGuest(t *testing.T) {
	p := New(2, 2)

	if err := p.PlaceGuest(0, "A"); err != nil {
		t.Fatalf("PlaceGuest: %v", err)
	}
	if !p.IsSeated("A") {
		t.Error("A should be seated")
	}
	table, _ := p.GuestsAt(0)
	if !table.Has("A") {
		t.Error("table 0 should contain A")
	}
}

func TestPlaceGuestOutOfRange(t *testing.T) {
	p := New(2, 2)

	for _, idx := range []int{-1, 2, 100} {
		err := p.PlaceGuest(idx, "A")
		if !errs.Is(err, errs.ErrCodeTableOutOfRange) {
			t.Errorf("PlaceGuest(%d) error = %v, want %s", idx, err, errs.ErrCodeTableOutOfRange)
		}
		if _, err := p.GuestsAt(idx); !errs.Is(err, errs.ErrCodeTableOutOfRange) {
			t.Errorf("GuestsAt(%d) error = %v, want %s", idx, err, errs.ErrCodeTableOutOfRange)
		}
		if _, err := p.OpenSeats(idx); err == nil {
			t.Errorf("OpenSeats(%d) should fail", idx)
		}
	}
	if p.Seated() != 0 {
		t.Errorf("failed placements changed the plan: %s", p)
	}
}

func TestPlaceGuestNoOps(t *testing.T) {
	tests := []struct {
		name  string
		table int
		guest string
	}{
		{"empty name", 1, ""},
		{"whitespace name", 1, "   "},
		{"tab name", 1, "\t"},
		{"already seated elsewhere", 1, "A"},
		{"already seated here", 0, "A"},
		{"full table", 0, "Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := fill(t, 2, 2, "A", "B", "C", "")
			before := p.Assignment()

			if err := p.PlaceGuest(tt.table, tt.guest); err != nil {
				t.Fatalf("PlaceGuest: %v", err)
			}

			after := p.Assignment()
			for i := range before {
				if !slices.Equal(before[i], after[i]) {
					t.Errorf("table %d changed: %v -> %v", i, before[i], after[i])
				}
			}
		})
	}
}

func TestRemoveGuest(t *testing.T) {
	p := fill(t, 2, 2, "A", "B", "C", "D")

	p.RemoveGuest("C")
	if p.IsSeated("C") {
		t.Error("C should not be seated after removal")
	}
	if p.Seated() != 3 {
		t.Errorf("Seated() = %d, want 3", p.Seated())
	}

	// Removing again, or removing strangers and blanks, is a no-op.
	for _, g := range []string{"C", "nobody", "", "  "} {
		p.RemoveGuest(g)
	}
	if p.Seated() != 3 {
		t.Errorf("Seated() = %d after no-op removals, want 3", p.Seated())
	}
	if got := p.String(); got != "0:[A B] 1:[D]" {
		t.Errorf("String() = %q", got)
	}
}

func TestIsSeated(t *testing.T) {
	p := fill(t, 2, 2, "A", "", "B", "")

	tests := []struct {
		guest string
		want  bool
	}{
		{"A", true},
		{"B", true},
		{"C", false},
		{"", false},
		{" ", false},
	}
	for _, tt := range tests {
		if got := p.IsSeated(tt.guest); got != tt.want {
			t.Errorf("IsSeated(%q) = %v, want %v", tt.guest, got, tt.want)
		}
	}
}

func TestSeatedInExactlyOneTable(t *testing.T) {
	p := New(3, 2)
	guests := []string{"A", "B", "C", "D", "E", "F", "G"}

	// Try to seat every guest at every table; each should land once.
	for table := range p.Tables() {
		for _, g := range guests {
			_ = p.PlaceGuest(table, g)
		}
	}

	for _, g := range guests {
		count := 0
		for table := range p.Tables() {
			ts, _ := p.GuestsAt(table)
			if ts.Has(g) {
				count++
			}
		}
		if count > 1 {
			t.Errorf("%s seated at %d tables", g, count)
		}
		if p.IsSeated(g) != (count == 1) {
			t.Errorf("IsSeated(%s) = %v, but found at %d tables", g, p.IsSeated(g), count)
		}
	}
	if p.Seated() != p.Capacity() {
		t.Errorf("Seated() = %d, want %d", p.Seated(), p.Capacity())
	}
}

func TestGuestsAtIsLive(t *testing.T) {
	p := New(1, 3)
	table, err := p.GuestsAt(0)
	if err != nil {
		t.Fatalf("GuestsAt: %v", err)
	}

	table.Add("A")
	if !p.IsSeated("A") {
		t.Error("write through live table should seat A")
	}

	_ = p.PlaceGuest(0, "B")
	if !table.Has("B") {
		t.Error("live table should observe PlaceGuest")
	}

	table.Remove("A")
	if p.IsSeated("A") {
		t.Error("remove through live table should unseat A")
	}
}

func TestOpenSeatsAndFirstOpenTable(t *testing.T) {
	p := fill(t, 3, 2, "A", "B", "C", "", "", "")

	if n, _ := p.OpenSeats(0); n != 0 {
		t.Errorf("OpenSeats(0) = %d, want 0", n)
	}
	if n, _ := p.OpenSeats(1); n != 1 {
		t.Errorf("OpenSeats(1) = %d, want 1", n)
	}
	if idx, ok := p.FirstOpenTable(); !ok || idx != 1 {
		t.Errorf("FirstOpenTable() = %d, %v, want 1, true", idx, ok)
	}

	full := fill(t, 1, 1, "A")
	if _, ok := full.FirstOpenTable(); ok {
		t.Error("full plan should have no open table")
	}
	if _, ok := New(0, 0).FirstOpenTable(); ok {
		t.Error("empty plan should have no open table")
	}
}

func TestTableOf(t *testing.T) {
	p := fill(t, 2, 1, "A", "B")
	if idx, ok := p.TableOf("B"); !ok || idx != 1 {
		t.Errorf("TableOf(B) = %d, %v", idx, ok)
	}
	if _, ok := p.TableOf("Z"); ok {
		t.Error("TableOf(Z) should be false")
	}
}

func TestAssignmentIsDetached(t *testing.T) {
	p := fill(t, 1, 2, "B", "A")
	snap := p.Assignment()
	if !slices.Equal(snap[0], []string{"A", "B"}) {
		t.Errorf("Assignment() = %v, want sorted [A B]", snap)
	}

	snap[0][0] = "X"
	if p.IsSeated("X") {
		t.Error("mutating the snapshot must not change the plan")
	}
}

func TestZeroValuePlan(t *testing.T) {
	var p Plan
	if p.Tables() != 0 || p.Capacity() != 0 {
		t.Errorf("zero plan should be empty: %d tables", p.Tables())
	}
	if err := p.PlaceGuest(0, "A"); err == nil {
		t.Error("PlaceGuest on zero plan should fail")
	}
	p.RemoveGuest("A")
	if p.IsSeated("A") {
		t.Error("zero plan seats nobody")
	}
}
