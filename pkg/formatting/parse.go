package formatting

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

// ErrParseFailed is returned when no JSON value of the requested shape can be
// recovered from model output.
var ErrParseFailed = errors.New("failed to parse response")

const maxEcho = 200

var jsonBlockRegex = regexp.MustCompile(`(?s)` + "```" + `(?:json)?\s*\n?(.*?)\n?` + "```")

// Parse attempts to unmarshal content as JSON into T.
// If direct parsing fails, it extracts JSON from a markdown code fence
// and retries. Returns ErrParseFailed if both attempts fail.
func Parse[T any](content string) (T, error) {
	var result T
	content = strings.TrimSpace(content)

	if err := json.Unmarshal([]byte(content), &result); err == nil {
		return result, nil
	}

	matches := jsonBlockRegex.FindStringSubmatch(content)
	if len(matches) >= 2 {
		cleaned := strings.TrimSpace(matches[1])
		if err := json.Unmarshal([]byte(cleaned), &result); err == nil {
			return result, nil
		}
	}

	return result, fmt.Errorf("%w: %s", ErrParseFailed, truncate(content))
}

// ParseArray recovers a JSON array embedded in free-form text, such as a model
// reply that wraps the array in commentary. Candidate spans are tried in the
// order returned by Spans. The first one that decodes into a non-empty []T
// with no zero-valued elements wins; an empty or sparse array is returned only
// when no candidate is fully populated.
func ParseArray[T any](content string) ([]T, error) {
	var fallback []T

	for _, span := range Spans(content, '[', ']') {
		var candidate []T
		if err := json.Unmarshal([]byte(span), &candidate); err != nil {
			continue
		}
		if populated(candidate) {
			return candidate, nil
		}
		if fallback == nil {
			fallback = candidate
		}
	}

	if fallback != nil {
		return fallback, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrParseFailed, truncate(strings.TrimSpace(content)))
}

// ParseObject decodes a JSON object into T from model output. Direct and
// fenced JSON are tried first, then every embedded {...} span.
func ParseObject[T any](content string) (T, error) {
	if result, err := Parse[T](content); err == nil {
		return result, nil
	}
	return parseEmbedded[T](content, '{', '}')
}

// Spans returns the candidate substrings of content delimited by open and
// close. Each balanced span that begins at an occurrence of open is listed in
// order of its starting offset, followed by the greedy span running from the
// first open to the last close. Delimiters inside JSON string literals do not
// affect balancing.
func Spans(content string, open, close byte) []string {
	first := strings.IndexByte(content, open)
	if first < 0 {
		return nil
	}

	var spans []string
	for i := first; i < len(content); i++ {
		if content[i] != open {
			continue
		}
		if end := matching(content, i, open, close); end > i {
			spans = append(spans, content[i:end+1])
		}
	}

	last := strings.LastIndexByte(content, close)
	if last > first {
		greedy := content[first : last+1]
		if len(spans) == 0 || spans[0] != greedy {
			spans = append(spans, greedy)
		}
	}

	return spans
}

func parseEmbedded[T any](content string, open, close byte) (T, error) {
	var result T

	for _, span := range Spans(content, open, close) {
		var candidate T
		if err := json.Unmarshal([]byte(span), &candidate); err == nil {
			return candidate, nil
		}
	}

	return result, fmt.Errorf("%w: %s", ErrParseFailed, truncate(strings.TrimSpace(content)))
}

func populated[T any](items []T) bool {
	if len(items) == 0 {
		return false
	}
	for i := range items {
		if reflect.ValueOf(&items[i]).Elem().IsZero() {
			return false
		}
	}
	return true
}

func matching(s string, start int, open, close byte) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

func truncate(s string) string {
	if len(s) <= maxEcho {
		return s
	}
	return s[:maxEcho] + "..."
}
