package training

import "math/rand"

// defaultShuffleAttempts bounds the adjacency-avoiding reshuffle. The
// bound is a deliberate tradeoff: when exhausted, the last shuffle is
// accepted even if two exposures of one card ended up adjacent.
const defaultShuffleAttempts = 200

// ShuffleAvoidAdjacent shuffles items until no two neighbours share a
// card id, giving up after the attempt bound. Best effort, not a
// guarantee. Slices shorter than three items are returned unchanged.
func ShuffleAvoidAdjacent(items []SessionItem, rng *rand.Rand, attempts int) []SessionItem {
	if len(items) < 3 {
		return items
	}
	for a := 0; a < attempts; a++ {
		rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
		if noAdjacentRepeats(items) {
			return items
		}
	}
	return items
}

func noAdjacentRepeats(items []SessionItem) bool {
	for i := 1; i < len(items); i++ {
		if items[i].CardID == items[i-1].CardID {
			return false
		}
	}
	return true
}
