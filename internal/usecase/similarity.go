package usecase

// Score computes a partial-ratio similarity between a and b in [0, 100].
// The shorter string is aligned against the best-matching substring window of
// the longer one, and the leftover edit distance is converted to a percentage
// of the shorter length. 100 means the shorter string occurs verbatim inside
// the longer; 0 means no resemblance at all.
//
// The measure is symmetric (the shorter argument is always the pattern) and
// deterministic. Case is compared as given; callers lowercase both sides
// when they want case-insensitive behavior.
func Score(a, b string) int {
	pattern := []rune(a)
	text := []rune(b)
	if len(pattern) > len(text) {
		pattern, text = text, pattern
	}

	if len(pattern) == 0 {
		if len(text) == 0 {
			return 100
		}
		return 0
	}

	dist := substringEditDistance(pattern, text)
	if dist > len(pattern) {
		dist = len(pattern)
	}
	return (len(pattern) - dist) * 100 / len(pattern)
}

// substringEditDistance returns the minimum edit distance between pattern and
// any substring of text (semi-global alignment: the prefix and suffix of text
// are free). Uses two rows instead of the full matrix for space efficiency.
func substringEditDistance(pattern, text []rune) int {
	m := len(pattern)
	n := len(text)

	// First row stays zero so a match may start anywhere in text.
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if pattern[i-1] != text[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	// Minimum over the last row lets the match end anywhere in text.
	best := prev[0]
	for j := 1; j <= n; j++ {
		if prev[j] < best {
			best = prev[j]
		}
	}
	return best
}
