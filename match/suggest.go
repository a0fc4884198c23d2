package match

// levenshtein computes the classic edit distance between a and b.
// Grounded on the teacher's deleted closest.go, which uses the same
// full-matrix dynamic program to power "did you mean" suggestions.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}

	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i

		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost

			curr[j] = min3(del, ins, sub)
		}

		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}

	if c < m {
		m = c
	}

	return m
}

// closestMatch returns the candidate in candidates nearest to word by
// edit distance, provided it is close enough to be a plausible typo
// (distance <= max(1, len(word)/3)). Returns "" if nothing is close.
func closestMatch(word string, candidates []string) string {
	if word == "" || len(candidates) == 0 {
		return ""
	}

	threshold := len(word) / 3
	if threshold < 1 {
		threshold = 1
	}

	best := ""
	bestDist := threshold + 1

	for _, c := range candidates {
		d := levenshtein(word, c)
		if d < bestDist {
			bestDist = d
			best = c
		}
	}

	if bestDist > threshold {
		return ""
	}

	return best
}
