// Package syllable estimates English syllable counts with a vowel-group
// heuristic. It is an approximation, not a phonetic engine: results are
// stable and cheap, and wrong on plenty of real words.
package syllable

import (
	"strings"
	"unicode/utf8"
)

// Estimate returns the approximate number of syllables in line.
// Words are separated by runs of whitespace. An empty or whitespace-only
// line yields 0; every other word contributes at least 1.
func Estimate(line string) int {
	total := 0
	for _, word := range strings.Fields(strings.ToLower(line)) {
		total += countWord(word)
	}
	return total
}

// EstimateWord returns the approximate number of syllables in a single word.
// The word is lower-cased first; surrounding whitespace is ignored.
func EstimateWord(word string) int {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return 0
	}
	return countWord(word)
}

// countWord applies the heuristic to a lower-cased, non-empty word.
// The corrections run in a fixed order; reordering them changes the
// result for words such as "little", "the" and "queue".
func countWord(word string) int {
	count := vowelGroups(word)

	// silent e
	if strings.HasSuffix(word, "e") {
		count--
	}
	// syllabic -le, as in "little"
	if strings.HasSuffix(word, "le") && utf8.RuneCountInString(word) > 2 {
		count++
	}
	if count <= 0 {
		count = 1
	}
	return count
}

// vowelGroups counts maximal runs of vowels in word.
func vowelGroups(word string) int {
	groups := 0
	prevVowel := false
	for _, r := range word {
		v := isVowel(r)
		if v && !prevVowel {
			groups++
		}
		prevVowel = v
	}
	return groups
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
