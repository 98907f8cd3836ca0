package costs

// Member is one entry of a trip group's member list.
type Member struct {
	ID    string
	Guest bool
}

// Roster returns the ids eligible for an allocation slot, in stored order.
// Guests can be tagged as a payer on an item but never receive a share of
// their own.
func Roster(members []Member) []string {
	ids := make([]string, 0, len(members))
	for _, m := range members {
		if m.Guest {
			continue
		}
		ids = append(ids, m.ID)
	}
	return ids
}
