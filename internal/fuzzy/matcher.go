// Package fuzzy implements the approximate text matching primitive used for
// occupation, category, and region detection. It tolerates transliteration
// variants and common misspellings ("framer" for "farmer", "prasesh" for
// "pradesh") without any language model.
package fuzzy

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
)

// DefaultThreshold is the similarity cutoff for general keyword matching.
const DefaultThreshold = 0.8

var punctuation = regexp.MustCompile(`[^\w\s]`)

// Normalize lower-cases text, strips punctuation, and splits it into tokens.
func Normalize(text string) []string {
	clean := punctuation.ReplaceAllString(strings.ToLower(text), "")
	return strings.Fields(clean)
}

// Ratio returns a similarity score in [0, 1] between two strings. It takes
// the better of a Ratcliff/Obershelp ratio and a normalized Levenshtein
// similarity; the former credits transposed fragments ("framer"/"farmer")
// that a pure edit distance undercounts.
func Ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	ro := ratcliffObershelp(a, b)
	lev := levenshteinSimilarity(a, b)
	if lev > ro {
		return lev
	}
	return ro
}

// ratcliffObershelp computes 2*M/(len(a)+len(b)) where M is the total length
// of recursively matched common blocks.
func ratcliffObershelp(a, b string) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(matchingChars(a, b)) / float64(total)
}

// matchingChars finds the longest common substring, then recurses on the
// unmatched prefixes and suffixes.
func matchingChars(a, b string) int {
	startA, startB, length := longestCommonSubstring(a, b)
	if length == 0 {
		return 0
	}
	n := length
	n += matchingChars(a[:startA], b[:startB])
	n += matchingChars(a[startA+length:], b[startB+length:])
	return n
}

func longestCommonSubstring(a, b string) (startA, startB, length int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
				if curr[j] > length {
					length = curr[j]
					startA = i - length
					startB = j - length
				}
			} else {
				curr[j] = 0
			}
		}
		prev, curr = curr, prev
	}
	return startA, startB, length
}

func levenshteinSimilarity(a, b string) float64 {
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}

// ClosestMatch returns the input token most similar to keyword, along with
// its ratio. Tokens below cutoff are ignored; ok is false when none qualify.
func ClosestMatch(keyword string, words []string, cutoff float64) (best string, ratio float64, ok bool) {
	for _, w := range words {
		r := Ratio(keyword, w)
		if r >= cutoff && r > ratio {
			best, ratio, ok = w, r, true
		}
	}
	return best, ratio, ok
}

// BestWindowRatio slides a window of windowLen tokens across words and
// returns the highest similarity between phrase and any window.
func BestWindowRatio(phrase string, words []string, windowLen int) float64 {
	var best float64
	for i := 0; i+windowLen <= len(words); i++ {
		window := strings.Join(words[i:i+windowLen], " ")
		if r := Ratio(phrase, window); r > best {
			best = r
		}
	}
	return best
}

// Matches reports whether any keyword matches the tokenized query. Each
// keyword is tried in order: exact substring containment against the
// space-joined token stream first, then approximate matching (closest-token
// ratio for single-word keywords, a sliding token window for phrases). The
// first success wins; no ranking happens at this layer.
func Matches(queryWords []string, keywords []string, threshold float64) bool {
	joined := strings.Join(queryWords, " ")
	for _, kw := range keywords {
		if strings.Contains(joined, kw) {
			return true
		}
		kwWords := strings.Fields(kw)
		switch {
		case len(kwWords) == 0:
			continue
		case len(kwWords) == 1:
			if _, _, ok := ClosestMatch(kw, queryWords, threshold); ok {
				return true
			}
		default:
			if BestWindowRatio(kw, queryWords, len(kwWords)) >= threshold {
				return true
			}
		}
	}
	return false
}
