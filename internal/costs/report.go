package costs

// CategoryInput is one category's computed allocation feeding the report.
// Total is the raw sum of the category's item costs; Totals is the
// (possibly reconciled) per-member allocation for it.
type CategoryInput struct {
	Name   string
	Total  float64
	Totals map[string]float64
}

// Row is one line of the cost report: a cell per roster member plus the
// category's raw total. Assigned is the portion of Total actually
// attributed to members; for a reconciled category the two are equal, for
// an unreconciled one Assigned can fall short and the difference is cost
// nobody is charged for.
type Row struct {
	Category string    `json:"category"`
	Cells    []float64 `json:"cells"`
	Assigned float64   `json:"assigned"`
	Total    float64   `json:"total"`
}

// Report is the full cost matrix for a trip, ready for rendering. Cells
// follow the order of Members in every row.
type Report struct {
	Members    []string  `json:"members"`
	Rows       []Row     `json:"rows"`
	Overall    []float64 `json:"overall"`
	GrandTotal float64   `json:"grand_total"`
}

// BuildReport combines per-category allocations into the report matrix:
// one row per category, an overall entry per member summing that member's
// true shares across categories, and a grand total summing the raw
// category totals. Cells are always the true accumulated shares; a row
// whose category was not reconciled may legitimately sum to less than its
// total. An empty roster yields rows with no cells but correct totals.
func BuildReport(categories []CategoryInput, roster []string) Report {
	report := Report{
		Members: roster,
		Rows:    make([]Row, 0, len(categories)),
		Overall: make([]float64, len(roster)),
	}

	for _, cat := range categories {
		row := Row{
			Category: cat.Name,
			Cells:    make([]float64, len(roster)),
			Total:    sanitizeAmount(cat.Total),
		}
		for i, id := range roster {
			v := cat.Totals[id]
			row.Cells[i] = v
			row.Assigned += v
			report.Overall[i] += v
		}
		report.GrandTotal += row.Total
		report.Rows = append(report.Rows, row)
	}

	return report
}
