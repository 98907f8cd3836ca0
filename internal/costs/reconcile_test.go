package costs

import (
	"math"
	"testing"
)

// Whatever the allocator could not attribute, reconciliation spreads across
// the roster so the breakdown always sums to the category total.
func TestReconcileConservation(t *testing.T) {
	roster := []string{"alice", "bob", "carol"}

	tests := []struct {
		name  string
		items []fakeItem
		total float64
	}{
		{
			name: "partially unassigned",
			items: []fakeItem{
				{cost: 40, payers: []string{"alice", "bob"}},
				{cost: 60, payers: []string{}},
			},
			total: 100,
		},
		{
			name: "everything unassigned",
			items: []fakeItem{
				{cost: 33.33, payers: []string{}},
				{cost: 66.67, payers: []string{}},
			},
			total: 100,
		},
		{
			name:  "nothing unassigned",
			items: []fakeItem{{cost: 99.99, payers: []string{"alice", "bob", "carol"}}},
			total: 99.99,
		},
		{
			name:  "total does not divide evenly",
			items: []fakeItem{{cost: 100, payers: []string{}}},
			total: 100,
		},
		{
			name:  "no items at all",
			items: nil,
			total: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := Allocate(tt.items, itemCost, itemPayers, roster, Options{})
			totals = Reconcile(totals, tt.total, roster)
			if sum := Sum(totals); !almostEqual(sum, tt.total) {
				t.Errorf("Sum() after Reconcile = %v, want %v", sum, tt.total)
			}
			if len(totals) != len(roster) {
				t.Errorf("Reconcile() returned %d entries, want %d", len(totals), len(roster))
			}
		})
	}
}

// The lodging example end to end: 40 split between alice and bob, 60 with
// its payers removed, forced back to the 100 total by an even 20 each.
func TestReconcileEndToEnd(t *testing.T) {
	items := []fakeItem{
		{cost: 40, payers: []string{"alice", "bob"}},
		{cost: 60, payers: []string{}},
	}
	roster := []string{"alice", "bob", "carol"}

	totals := Allocate(items, itemCost, itemPayers, roster, Options{})
	totals = Reconcile(totals, Total(items, itemCost), roster)

	want := map[string]float64{"alice": 40, "bob": 40, "carol": 20}
	for id, w := range want {
		if !almostEqual(totals[id], w) {
			t.Errorf("totals[%s] = %v, want %v", id, totals[id], w)
		}
	}
	if sum := Sum(totals); !almostEqual(sum, 100) {
		t.Errorf("Sum() = %v, want 100", sum)
	}
}

func TestReconcileEmptyRoster(t *testing.T) {
	totals := Reconcile(map[string]float64{}, 100, nil)
	if len(totals) != 0 {
		t.Errorf("Reconcile() with empty roster = %v, want empty map", totals)
	}
}

// Over-assignment is corrected downward the same way: a NaN category total
// coerces to zero and the shares are pulled back to it.
func TestReconcileNegativeRemainder(t *testing.T) {
	roster := []string{"alice", "bob"}
	totals := map[string]float64{"alice": 30, "bob": 10}

	totals = Reconcile(totals, math.NaN(), roster)
	if sum := Sum(totals); !almostEqual(sum, 0) {
		t.Errorf("Sum() = %v, want 0", sum)
	}
}
