// Package haiku finds a 5-7-5 haiku hidden in free-form text.
//
// Text is split into lines on sentence-terminal punctuation (".", "!", "?")
// and newlines. A window of three consecutive lines slides across them from
// left to right, and the first window whose estimated syllable counts are each
// within Tolerance of 5, 7 and 5 is returned. There is no ranking: a later,
// closer fit never replaces an earlier one.
//
// Everything here is a pure function of its input. Scan, Segment and Analyze
// are safe to call concurrently and never return an error; finding nothing is
// a normal result.
//
//	result := haiku.Scan("An old silent pond\nA frog jumps into the pond\nSplash silence again")
//	if result.Found {
//	    for _, line := range result.Lines {
//	        fmt.Println(line)
//	    }
//	}
package haiku
