// Package costs computes per-member cost breakdowns for a trip.
//
// Everything in this package is a pure function over the inputs it is
// given: no package state, no I/O, and a fresh result map on every call.
// Amounts are float64; drift below epsilon is ignored.
package costs

import "math"

// Drift smaller than this is treated as zero.
const epsilon = 1e-6

// Options controls how items without payers are handled.
type Options struct {
	// FallbackOnEmpty splits an item across the whole roster whenever its
	// effective payer list ends up empty. When false, only an absent (nil)
	// payer list triggers the roster split; an explicitly empty list means
	// every payer was removed and the cost stays unassigned.
	FallbackOnEmpty bool
}

// Allocate splits the cost of each item across that item's payers and
// returns the accumulated share per roster member.
//
// The result map's keys are exactly roster: every member appears, even at
// zero, and ids that are not in the roster (guests, members who left)
// never appear no matter what the items say. Items with a zero cost or an
// empty effective payer list contribute nothing; their cost still counts
// toward the category total, which the caller tracks separately.
func Allocate[T any](items []T, cost func(T) float64, payers func(T) []string, roster []string, opts Options) map[string]float64 {
	totals := make(map[string]float64, len(roster))
	for _, id := range roster {
		totals[id] = 0
	}

	for _, item := range items {
		raw := payers(item)
		effective := make([]string, 0, len(raw))
		for _, id := range raw {
			if id != "" {
				effective = append(effective, id)
			}
		}
		if len(effective) == 0 {
			// An absent list is a record from before payer tracking and
			// means "everyone"; an empty list means the payers were
			// deliberately removed.
			if opts.FallbackOnEmpty || raw == nil {
				effective = roster
			}
		}

		c := sanitizeAmount(cost(item))
		if c == 0 || len(effective) == 0 {
			continue
		}

		share := c / float64(len(effective))
		for _, id := range effective {
			if _, ok := totals[id]; ok {
				totals[id] += share
			}
		}

		// Division drift lands on the first listed payer, whole.
		if rem := c - share*float64(len(effective)); rem > epsilon || rem < -epsilon {
			if _, ok := totals[effective[0]]; ok {
				totals[effective[0]] += rem
			}
		}
	}

	return totals
}

// Total sums the sanitized costs of all items in a category, regardless of
// whether any of it is attributable to a member.
func Total[T any](items []T, cost func(T) float64) float64 {
	var sum float64
	for _, item := range items {
		sum += sanitizeAmount(cost(item))
	}
	return sum
}

// Sum adds up every member's share in a totals map.
func Sum(totals map[string]float64) float64 {
	var sum float64
	for _, v := range totals {
		sum += v
	}
	return sum
}

// sanitizeAmount coerces malformed amounts to zero. Costs are user-edited
// and immediately visible, so a silently corrected zero beats a panic.
func sanitizeAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
