// Package display renders scan results, syllable breakdowns, detection
// history and warnings for the haiku CLI.
//
// A Renderer writes either human-readable text (colored when the writer is a
// terminal) or JSON:
//
//	r := display.NewRenderer(os.Stdout, display.FormatText)
//	r.Outcomes(outcomes, &tally)
//
// A found haiku prints as its three lines in order. A miss prints NoHaikuMessage.
package display
