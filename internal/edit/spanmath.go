// Package edit implements the document editing engines: proportional span
// arithmetic, cross-run search/replace, structural paragraph and table
// mutation, linear text search and range formatting.
package edit

import "sort"

// Distribute splits a non-negative total across the weight list,
// proportionally to each weight, returning one share per weight summing
// exactly to total.
//
// Zero-weight degenerate lists split the total as evenly as possible with
// the remainder handed out left to right. Otherwise each entry gets the
// floor of its proportional share and leftover units go to the entries with
// the largest fractional remainder, ties broken by ascending index.
//
// The replace engine uses this to decide how many characters of a rewritten
// merged string each original run receives, so style boundaries shift as
// little as possible.
func Distribute(total int, weights []int) []int {
	if len(weights) == 0 {
		return nil
	}
	shares := make([]int, len(weights))
	if total <= 0 {
		return shares
	}

	sum := 0
	for _, w := range weights {
		if w > 0 {
			sum += w
		}
	}
	if sum == 0 {
		base := total / len(weights)
		rem := total % len(weights)
		for i := range shares {
			shares[i] = base
			if i < rem {
				shares[i]++
			}
		}
		return shares
	}

	type remainder struct {
		index int
		frac  int
	}
	fracs := make([]remainder, len(weights))
	assigned := 0
	for i, w := range weights {
		if w < 0 {
			w = 0
		}
		shares[i] = total * w / sum
		assigned += shares[i]
		fracs[i] = remainder{index: i, frac: total * w % sum}
	}

	leftover := total - assigned
	sort.SliceStable(fracs, func(a, b int) bool {
		if fracs[a].frac != fracs[b].frac {
			return fracs[a].frac > fracs[b].frac
		}
		return fracs[a].index < fracs[b].index
	})
	for i := 0; i < leftover && i < len(fracs); i++ {
		shares[fracs[i].index]++
	}
	if extra := leftover - len(fracs); extra > 0 {
		shares[len(shares)-1] += extra
	}
	return shares
}
