package scenario

// Overlaps returns the distinct trend values that also appear in the crash
// set, in trend order.
func Overlaps(trends, crashes []float64) []float64 {
	seen := make(map[float64]struct{})
	var overlaps []float64
	for _, t := range trends {
		if _, dup := seen[t]; dup {
			continue
		}
		for _, c := range crashes {
			if t == c {
				seen[t] = struct{}{}
				overlaps = append(overlaps, t)
				break
			}
		}
	}
	return overlaps
}

// ExpectedCount is the closed-form number of scenarios Generate emits for a
// horizon of M months, T trend values, C crash magnitudes, and the given
// number of trend/crash overlap values (0 or 1 for a valid configuration).
//
// The naive enumeration yields M*T^2*C - 2*(T^2*C - T*C) sequences: each of
// the M-2 interior crash months contributes T^2 per crash magnitude, the two
// boundary months T each. Every overlap value defers M constant sequences
// (one per candidate crash month) and emits a single plateau back, removing
// M-1 net.
func ExpectedCount(months, trends, crashes, overlaps int) int {
	naive := months*trends*trends*crashes - 2*(trends*trends*crashes-trends*crashes)
	return naive - overlaps*(months-1)
}
