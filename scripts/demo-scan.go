//go:build ignore
// +build ignore

// Demo script that walks a few texts through the haiku scanner
// Run with: go run scripts/demo-scan.go
package main

import (
	"fmt"
	"strings"

	"github.com/harrison/haiku/internal/haiku"
)

func main() {
	samples := []string{
		"Hello there. I am fine.",
		"An old silent pond. A frog jumps into the pond. Splash! Silence again.",
		"An old silent pond\nA frog jumps into the pond\nSplash silence again",
		"The parser was rewritten. It is faster now. The build is green\nall of the tests pass today\nwe ship it at noon",
	}

	for i, text := range samples {
		fmt.Println(strings.Repeat("=", 60))
		fmt.Printf("Sample %d\n", i+1)
		fmt.Println(strings.Repeat("=", 60))

		for n, lc := range haiku.Analyze(text) {
			fmt.Printf("  %d. [%2d] %s\n", n+1, lc.Syllables, lc.Text)
		}

		result := haiku.Scan(text)
		if !result.Found {
			fmt.Println("\n  no haiku")
			fmt.Println()
			continue
		}

		fmt.Printf("\n  haiku at line %d (%d-%d-%d):\n", result.Start+1, result.Counts[0], result.Counts[1], result.Counts[2])
		for _, line := range result.Lines {
			fmt.Printf("    %s\n", line)
		}
		fmt.Println()
	}
}
