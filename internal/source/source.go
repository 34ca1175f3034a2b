// Package source turns raw user input into text the scanner can read.
//
// It is the guard in front of the scanner: blank input is rejected with
// ErrEmptyInput and oversized input with ErrInputTooLarge, so the scanner
// itself never has to validate anything.
package source

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Names used for inputs that are not files.
const (
	NameStdin = "stdin"
	NameArgs  = "args"
)

var (
	// ErrEmptyInput is returned for blank or whitespace-only input.
	ErrEmptyInput = errors.New("please enter some text to analyze")
	// ErrInputTooLarge is returned when input exceeds the configured limit.
	ErrInputTooLarge = errors.New("input too large")
)

// Input is a named block of text ready for scanning.
type Input struct {
	Name string
	Text string
}

// Guard checks text before it is handed to the scanner.
// maxLen is in bytes; 0 disables the size check.
func Guard(text string, maxLen int) error {
	if maxLen > 0 && len(text) > maxLen {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrInputTooLarge, len(text), maxLen)
	}
	if strings.TrimSpace(text) == "" {
		return ErrEmptyInput
	}
	return nil
}

// FromArgs builds an Input from command-line arguments. Each argument
// becomes its own line, so `detect "line one" "line two" "line three"`
// scans three lines.
func FromArgs(args []string, maxLen int) (Input, error) {
	in := Input{Name: NameArgs, Text: strings.Join(args, "\n")}
	if err := Guard(in.Text, maxLen); err != nil {
		return Input{}, err
	}
	return in, nil
}

// FromReader reads an Input from r. At most maxLen+1 bytes are read so an
// oversized stream is rejected without buffering all of it.
func FromReader(name string, r io.Reader, maxLen int) (Input, error) {
	if maxLen > 0 {
		r = io.LimitReader(r, int64(maxLen)+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Input{}, fmt.Errorf("failed to read %s: %w", name, err)
	}

	text := string(data)
	if err := Guard(text, maxLen); err != nil {
		return Input{}, fmt.Errorf("%s: %w", name, err)
	}
	return Input{Name: name, Text: text}, nil
}
