// Package protocol extracts the suggestion directive Haven's system
// instruction asks the model to embed in its replies. The directive is a
// prompt-level convention, not something the remote service guarantees, so
// the parser tolerates anything and never fails.
package protocol

import "strings"

const (
	directivePrefix = "[SUGGESTIONS:"
	directiveSuffix = "]"
)

// Result is the outcome of parsing one reply.
type Result struct {
	// Text is the reply with the directive removed, or the input
	// unchanged when no directive was found.
	Text string

	// Chips are the quick-reply labels extracted from the directive.
	Chips []string

	// Found reports whether a well-formed directive was present.
	Found bool
}

// Parse scans raw reply text for the first `[SUGGESTIONS: a, b, c]`
// directive. A malformed directive (no closing bracket, nested opening
// bracket inside the payload) is treated as not found and the text passes
// through unmodified. Only the first directive is honored; any later
// occurrence stays verbatim in the text.
func Parse(raw string) Result {
	start := strings.Index(raw, directivePrefix)
	if start == -1 {
		return Result{Text: raw}
	}

	rest := raw[start+len(directivePrefix):]
	end := strings.Index(rest, directiveSuffix)
	if end == -1 {
		return Result{Text: raw}
	}

	payload := rest[:end]
	if strings.Contains(payload, "[") {
		return Result{Text: raw}
	}

	var chips []string
	for _, item := range strings.Split(payload, ",") {
		if chip := strings.TrimSpace(item); chip != "" {
			chips = append(chips, chip)
		}
	}

	// Remove the whole matched directive, payload and brackets included.
	text := raw[:start] + rest[end+len(directiveSuffix):]

	return Result{
		Text:  strings.TrimSpace(text),
		Chips: chips,
		Found: true,
	}
}
