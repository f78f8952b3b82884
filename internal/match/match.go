// Package match implements the approximate string matching behind flag
// suggestions.
package match

// Ratio returns a similarity score in [0,1]: twice the length of the longest
// common subsequence over the combined length of both strings. Identical
// strings score 1, strings with nothing in common score 0.
func Ratio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	return 2 * float64(lcs(a, b)) / float64(len(a)+len(b))
}

// lcs computes the longest common subsequence length with a single-row
// dynamic program.
func lcs(a, b string) int {
	if len(a) > len(b) {
		a, b = b, a
	}

	row := make([]int, len(a)+1)
	for j := 1; j <= len(b); j++ {
		prev := 0
		for i := 1; i <= len(a); i++ {
			tmp := row[i]
			if a[i-1] == b[j-1] {
				row[i] = prev + 1
			} else if row[i-1] > row[i] {
				row[i] = row[i-1]
			}
			prev = tmp
		}
	}

	return row[len(a)]
}
