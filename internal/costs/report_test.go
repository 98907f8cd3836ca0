package costs

import "testing"

// The tours example end to end, without reconciliation: the 60 whose
// payers were removed stays unassigned, so the row legitimately sums to 40
// against a 100 total.
func TestBuildReportUnreconciledRow(t *testing.T) {
	items := []fakeItem{
		{cost: 40, payers: []string{"alice", "bob"}},
		{cost: 60, payers: []string{}},
	}
	roster := []string{"alice", "bob", "carol"}

	totals := Allocate(items, itemCost, itemPayers, roster, Options{})
	report := BuildReport([]CategoryInput{
		{Name: "tours", Total: Total(items, itemCost), Totals: totals},
	}, roster)

	if len(report.Rows) != 1 {
		t.Fatalf("BuildReport() produced %d rows, want 1", len(report.Rows))
	}
	row := report.Rows[0]
	wantCells := []float64{20, 20, 0}
	for i, w := range wantCells {
		if !almostEqual(row.Cells[i], w) {
			t.Errorf("row.Cells[%d] = %v, want %v", i, row.Cells[i], w)
		}
	}
	if !almostEqual(row.Assigned, 40) {
		t.Errorf("row.Assigned = %v, want 40", row.Assigned)
	}
	if !almostEqual(row.Total, 100) {
		t.Errorf("row.Total = %v, want 100", row.Total)
	}
}

func TestBuildReportOverall(t *testing.T) {
	roster := []string{"alice", "bob"}
	report := BuildReport([]CategoryInput{
		{Name: "flights", Total: 100, Totals: map[string]float64{"alice": 60, "bob": 40}},
		{Name: "lodging", Total: 80, Totals: map[string]float64{"alice": 40, "bob": 40}},
		{Name: "tours", Total: 50, Totals: map[string]float64{"alice": 10, "bob": 20}},
	}, roster)

	wantOverall := []float64{110, 100}
	for i, w := range wantOverall {
		if !almostEqual(report.Overall[i], w) {
			t.Errorf("Overall[%d] = %v, want %v", i, report.Overall[i], w)
		}
	}
	if !almostEqual(report.GrandTotal, 230) {
		t.Errorf("GrandTotal = %v, want 230", report.GrandTotal)
	}
}

// A trip whose group has no (non-guest) members still reports the raw
// category and grand totals.
func TestBuildReportEmptyRoster(t *testing.T) {
	report := BuildReport([]CategoryInput{
		{Name: "flights", Total: 123.45, Totals: map[string]float64{}},
	}, nil)

	if len(report.Rows[0].Cells) != 0 {
		t.Errorf("Cells = %v, want none", report.Rows[0].Cells)
	}
	if !almostEqual(report.Rows[0].Total, 123.45) {
		t.Errorf("row.Total = %v, want 123.45", report.Rows[0].Total)
	}
	if !almostEqual(report.GrandTotal, 123.45) {
		t.Errorf("GrandTotal = %v, want 123.45", report.GrandTotal)
	}
}
