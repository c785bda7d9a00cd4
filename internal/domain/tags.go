package domain

import (
	"regexp"
	"sort"
	"strings"
)

// maxTags bounds the tag list returned for a product.
const maxTags = 10

// minTagLength is the shortest word length (exclusive) that qualifies as a
// tag. Splitting also produces empty strings at text boundaries; the length
// rule excludes those implicitly.
const minTagLength = 3

// nonWord matches runs of characters that are not letters, digits, or
// underscores. In Go's regexp syntax \W is exactly [^0-9A-Za-z_].
var nonWord = regexp.MustCompile(`\W+`)

// ExtractTags derives a product's tags from its review texts: words are
// lower-cased, split on non-word runs, filtered by length, counted globally
// across all reviews, ranked by descending frequency, and truncated to the top
// ten. Ties keep first-seen order, so the output is deterministic for a given
// input. No reviews yields an empty list.
func ExtractTags(reviewTexts []string) []string {
	counts := make(map[string]int)
	words := []string{}

	for _, text := range reviewTexts {
		for _, word := range nonWord.Split(strings.ToLower(text), -1) {
			if len(word) <= minTagLength {
				continue
			}
			if _, seen := counts[word]; !seen {
				words = append(words, word)
			}
			counts[word]++
		}
	}

	// words is in first-seen order; a stable sort preserves that order
	// among equal counts.
	sort.SliceStable(words, func(i, j int) bool {
		return counts[words[i]] > counts[words[j]]
	})

	if len(words) > maxTags {
		words = words[:maxTags]
	}
	return words
}
