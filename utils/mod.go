package utils

import "cmp"

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// ArgMax returns the first item of order whose score is highest, and false when order is empty.
// Scores missing from the map count as the zero value.
func ArgMax[K comparable, V cmp.Ordered](order []K, scores map[K]V) (K, bool) {
	var best K
	if len(order) == 0 {
		return best, false
	}
	best = order[0]
	for _, k := range order[1:] {
		if scores[k] > scores[best] {
			best = k
		}
	}
	return best, true
}
