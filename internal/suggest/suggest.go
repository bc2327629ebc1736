// Package suggest ranks candidate strings by edit distance.
package suggest

import (
	"sort"
	"strings"
)

// Levenshtein calculates the case-insensitive edit distance between two strings.
func Levenshtein(a, b string) int {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// Two rows are enough: the previous one and the one being filled.
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

			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// Match is a candidate together with its distance from the input.
type Match struct {
	Value    string
	Distance int
}

// Rank returns candidates within maxDistance of input, closest first, ties
// broken alphabetically. Exact matches are excluded. maxResults <= 0 means no cap.
func Rank(input string, candidates []string, maxDistance, maxResults int) []Match {
	var matches []Match

	for _, c := range candidates {
		dist := Levenshtein(input, c)
		if dist <= maxDistance && dist > 0 {
			matches = append(matches, Match{Value: c, Distance: dist})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].Value < matches[j].Value
	})

	if maxResults > 0 && len(matches) > maxResults {
		matches = matches[:maxResults]
	}

	return matches
}

// Closest is Rank without the distances.
func Closest(input string, candidates []string, maxDistance, maxResults int) []string {
	matches := Rank(input, candidates, maxDistance, maxResults)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Value
	}
	return out
}
