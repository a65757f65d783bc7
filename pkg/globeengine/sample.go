package globeengine

import "math/rand"

// GenRandomNumbers draws distinct uniform integers from [min, max] until
// count values have been collected, preserving insertion order. count is
// clamped to the range size so the draw loop always terminates.
func GenRandomNumbers(min, max, count int) []int {
	if min > max || count <= 0 {
		return nil
	}
	if span := max - min + 1; count > span {
		count = span
	}
	seen := make(map[int]struct{}, count)
	out := make([]int, 0, count)
	for len(out) < count {
		n := min + rand.Intn(max-min+1)
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
