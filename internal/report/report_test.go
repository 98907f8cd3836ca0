package report

import (
	"math"
	"strings"
	"testing"

	"github.com/susu3304/tabiplan/internal/db"
)

func TestBuild(t *testing.T) {
	members := []db.GroupMember{
		{UserID: "alice"},
		{UserID: "bob"},
		{UserID: "carol"},
		{UserID: "plus-one", IsGuest: true},
	}
	flights := []db.Flight{
		{Cost: 300, Payers: []string{"alice", "bob", "carol"}},
	}
	lodgings := []db.Lodging{
		{Cost: 40, Payers: []string{"alice", "bob"}},
		{Cost: 60, Payers: []string{}}, // payers removed, reconciled back in
	}
	tours := []db.Tour{
		{Cost: 90, Payers: nil}, // legacy record, split across the roster
	}

	rep := Build(members, flights, lodgings, tours)

	wantMembers := []string{"alice", "bob", "carol"}
	if len(rep.Members) != len(wantMembers) {
		t.Fatalf("Members = %v, want %v", rep.Members, wantMembers)
	}
	for i, id := range wantMembers {
		if rep.Members[i] != id {
			t.Errorf("Members[%d] = %s, want %s", i, rep.Members[i], id)
		}
	}

	if len(rep.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rep.Rows))
	}
	// With the uniform policy every row sums to its category total.
	for _, row := range rep.Rows {
		if math.Abs(row.Assigned-row.Total) > 1e-6 {
			t.Errorf("row %s: assigned %v != total %v", row.Category, row.Assigned, row.Total)
		}
	}

	wantTotals := map[string]float64{"flights": 300, "lodging": 100, "tours": 90}
	for _, row := range rep.Rows {
		if want := wantTotals[row.Category]; math.Abs(row.Total-want) > 1e-6 {
			t.Errorf("row %s: total = %v, want %v", row.Category, row.Total, want)
		}
	}

	// lodging row: 20+20 from the split item, plus 20 each from the
	// reconciled remainder.
	lodgingRow := rep.Rows[1]
	wantCells := []float64{40, 40, 20}
	for i, want := range wantCells {
		if math.Abs(lodgingRow.Cells[i]-want) > 1e-6 {
			t.Errorf("lodging cell[%d] = %v, want %v", i, lodgingRow.Cells[i], want)
		}
	}

	if math.Abs(rep.GrandTotal-490) > 1e-6 {
		t.Errorf("GrandTotal = %v, want 490", rep.GrandTotal)
	}
	var overall float64
	for _, v := range rep.Overall {
		overall += v
	}
	if math.Abs(overall-490) > 1e-6 {
		t.Errorf("sum of Overall = %v, want 490", overall)
	}
}

func TestBuildNoMembers(t *testing.T) {
	rep := Build(nil, []db.Flight{{Cost: 100}}, nil, nil)
	if len(rep.Members) != 0 {
		t.Errorf("Members = %v, want none", rep.Members)
	}
	if math.Abs(rep.GrandTotal-100) > 1e-6 {
		t.Errorf("GrandTotal = %v, want 100", rep.GrandTotal)
	}
}

func TestRenderText(t *testing.T) {
	members := []db.GroupMember{{UserID: "u1"}, {UserID: "u2"}}
	flights := []db.Flight{{Cost: 100, Payers: []string{"u1", "u2"}}}

	rep := Build(members, flights, nil, nil)
	out := RenderText(rep, map[string]string{"u1": "alice"})

	if !strings.HasPrefix(out, "```") || !strings.HasSuffix(out, "```") {
		t.Errorf("RenderText() not wrapped in a code block: %q", out)
	}
	for _, want := range []string{"alice", "u2", "flights", "Overall", "50.00", "100.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderText() missing %q in:\n%s", want, out)
		}
	}
}
