// Package report assembles a trip's cost matrix from its stored expense
// lists and group roster. Both the web API and the Discord bot render the
// same numbers from here.
package report

import (
	"fmt"
	"strings"

	"github.com/susu3304/tabiplan/internal/costs"
	"github.com/susu3304/tabiplan/internal/db"
)

// reconcilePolicy is the one place deciding which categories are forced to
// sum to their raw total. Historically only lodging was; flights and tours
// silently dropped the cost of removed-payer items from the matrix, so the
// rows disagreed with the totals for no reason a user could see. The
// policy is now uniform: every category reconciles.
var reconcilePolicy = map[string]bool{
	"flights": true,
	"lodging": true,
	"tours":   true,
}

// allocOptions: an absent payer list (legacy record) splits across the
// roster, an explicitly emptied one does not.
var allocOptions = costs.Options{FallbackOnEmpty: false}

// Build turns the trip's expense lists and member roster into the cost
// matrix. Pure assembly over the cost engine; callers do the loading.
func Build(members []db.GroupMember, flights []db.Flight, lodgings []db.Lodging, tours []db.Tour) costs.Report {
	rosterMembers := make([]costs.Member, 0, len(members))
	for _, m := range members {
		rosterMembers = append(rosterMembers, costs.Member{ID: m.UserID, Guest: m.IsGuest})
	}
	roster := costs.Roster(rosterMembers)

	category := func(name string, total float64, totals map[string]float64) costs.CategoryInput {
		if reconcilePolicy[name] {
			totals = costs.Reconcile(totals, total, roster)
		}
		return costs.CategoryInput{Name: name, Total: total, Totals: totals}
	}

	flightCost := func(f db.Flight) float64 { return f.Cost }
	flightPayers := func(f db.Flight) []string { return f.Payers }
	lodgingCost := func(l db.Lodging) float64 { return l.Cost }
	lodgingPayers := func(l db.Lodging) []string { return l.Payers }
	tourCost := func(t db.Tour) float64 { return t.Cost }
	tourPayers := func(t db.Tour) []string { return t.Payers }

	return costs.BuildReport([]costs.CategoryInput{
		category("flights",
			costs.Total(flights, flightCost),
			costs.Allocate(flights, flightCost, flightPayers, roster, allocOptions)),
		category("lodging",
			costs.Total(lodgings, lodgingCost),
			costs.Allocate(lodgings, lodgingCost, lodgingPayers, roster, allocOptions)),
		category("tours",
			costs.Total(tours, tourCost),
			costs.Allocate(tours, tourCost, tourPayers, roster, allocOptions)),
	}, roster)
}

// RenderText formats the matrix as a fixed-width table for a Discord
// message. Amounts are rounded to two decimals here and only here; the
// report itself carries raw values.
func RenderText(rep costs.Report, names map[string]string) string {
	display := func(id string) string {
		if n, ok := names[id]; ok && n != "" {
			return n
		}
		return id
	}

	var b strings.Builder
	b.WriteString("```\n")

	fmt.Fprintf(&b, "%-10s", "")
	for _, id := range rep.Members {
		fmt.Fprintf(&b, " %10s", truncate(display(id), 10))
	}
	fmt.Fprintf(&b, " %10s\n", "Total")

	for _, row := range rep.Rows {
		fmt.Fprintf(&b, "%-10s", row.Category)
		for _, v := range row.Cells {
			fmt.Fprintf(&b, " %10.2f", v)
		}
		fmt.Fprintf(&b, " %10.2f\n", row.Total)
	}

	fmt.Fprintf(&b, "%-10s", "Overall")
	for _, v := range rep.Overall {
		fmt.Fprintf(&b, " %10.2f", v)
	}
	fmt.Fprintf(&b, " %10.2f\n", rep.GrandTotal)

	b.WriteString("```")
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
