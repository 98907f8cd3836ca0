package costs

// Reconcile adjusts an allocation so it sums exactly to the category total,
// spreading whatever the allocator could not attribute evenly across the
// roster. Second-order drift from the even split goes to the first roster
// member, whole. The map is adjusted in place and returned.
//
// With a non-empty roster the result sums to categoryTotal within epsilon.
// With an empty roster there is nobody to absorb the remainder and the
// totals come back unchanged; the caller reports the category total as
// unattributed.
func Reconcile(totals map[string]float64, categoryTotal float64, roster []string) map[string]float64 {
	if len(roster) == 0 {
		return totals
	}

	want := sanitizeAmount(categoryTotal)
	remainder := want - Sum(totals)
	if remainder > epsilon || remainder < -epsilon {
		share := remainder / float64(len(roster))
		for _, id := range roster {
			totals[id] += share
		}
	}

	if adjust := want - Sum(totals); adjust > epsilon || adjust < -epsilon {
		totals[roster[0]] += adjust
	}

	return totals
}
