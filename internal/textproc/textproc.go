// Package textproc validates and preprocesses raw transcript text
// before it is sent to the linguistic parser. Preprocessing is
// deterministic: the same input always yields the same output, which
// keeps assessment results reproducible and cache keys stable.
package textproc

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	// MinLength is the minimum usable transcript length in characters.
	// Anything shorter cannot support meaningful linguistic metrics.
	MinLength = 20

	// MaxLength is the truncation limit in characters. Longer inputs
	// are cut, not rejected, so a very long recording still produces
	// an assessment.
	MaxLength = 50000
)

// ValidationError reports input that cannot be analyzed at all.
type ValidationError struct {
	Reason string
	Length int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %s (length %d)", e.Reason, e.Length)
}

// Result is the outcome of preparing one transcript.
type Result struct {
	Text           string   // Preprocessed text, ready for parsing
	OriginalLength int      // Character count before any processing
	Truncated      bool     // Input exceeded MaxLength
	Warnings       []string // Non-fatal notes, e.g. truncation
}

var (
	urlRe   = regexp.MustCompile(`(?i)\bhttps?://\S+|\bwww\.\S+`)
	emailRe = regexp.MustCompile(`[\w.+-]+@[\w-]+(?:\.[\w-]+)+`)
	wsRe    = regexp.MustCompile(`\s+`)
)

// Prepare validates and normalizes raw transcript text. Inputs shorter
// than MinLength (after trimming) return a ValidationError. Inputs
// longer than MaxLength are truncated with a warning.
func Prepare(raw string) (Result, error) {
	res := Result{OriginalLength: len([]rune(raw))}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return res, &ValidationError{Reason: "empty input", Length: 0}
	}
	if n := len([]rune(trimmed)); n < MinLength {
		return res, &ValidationError{Reason: fmt.Sprintf("input shorter than %d characters", MinLength), Length: n}
	}

	if runes := []rune(trimmed); len(runes) > MaxLength {
		trimmed = string(runes[:MaxLength])
		res.Truncated = true
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("input truncated from %d to %d characters", len(runes), MaxLength))
	}

	res.Text = Preprocess(trimmed)
	return res, nil
}

// Preprocess applies the deterministic normalization steps: Unicode
// NFKC, line-ending normalization, URL and email masking, and
// whitespace collapsing.
func Preprocess(text string) string {
	text = norm.NFKC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = urlRe.ReplaceAllString(text, " [URL] ")
	text = emailRe.ReplaceAllString(text, " [EMAIL] ")
	text = wsRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
