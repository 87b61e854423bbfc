// Package stowage holds the bay numbering rules and the cross-section grid
// layout used to display one vessel bay.
package stowage

// Vertical areas of a bay. Tiers at or above deckTierThreshold are stowed
// above deck in the source coding scheme.
const (
	AreaDeck = "DECK"
	AreaHold = "HOLD"

	deckTierThreshold = 80
)

// AreaForTier derives the vertical area from a tier number.
func AreaForTier(tier int) string {
	if tier >= deckTierThreshold {
		return AreaDeck
	}
	return AreaHold
}

// ValidArea reports whether s names a known vertical area.
func ValidArea(s string) bool {
	return s == AreaDeck || s == AreaHold
}

// BayGroup returns the physical bays that share one logical bay slot. An
// odd bay (a 20-foot slot) groups with its even neighbour, because a
// 40-foot container is recorded at the even bay number straddling two odd
// ones. An even bay groups with both odd neighbours. Non-positive bays are
// invalid and yield an empty group.
func BayGroup(bay int) []int {
	if bay <= 0 {
		return nil
	}
	if bay%2 == 1 {
		return []int{bay, bay + 1}
	}
	group := make([]int, 0, 3)
	for _, b := range []int{bay - 1, bay, bay + 1} {
		if b > 0 {
			group = append(group, b)
		}
	}
	return group
}

// DisplayBay canonicalizes a physical bay to the odd bay shown to users,
// so an even/odd pair never appears as two separate bays. ok is false for
// invalid (non-positive) bay numbers.
func DisplayBay(bay int) (int, bool) {
	if bay <= 0 {
		return 0, false
	}
	if bay%2 == 0 {
		return bay - 1, true
	}
	return bay, true
}
