package services

import (
	"encoding/json"
	"strings"
)

// ExtractJSON locates and repairs the JSON payload inside free-form model
// output. It tolerates markdown code fences, surrounding prose, stray
// control characters inside string values, and responses truncated
// mid-generation. The returned string, when ok is true, always passes
// json.Valid. ok is false when no parseable payload can be recovered.
func ExtractJSON(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	s = stripCodeFence(s)

	start, opener := firstJSONBoundary(s)
	if start < 0 {
		return "", false
	}
	s = sanitizeJSON(s[start:])

	closer := byte('}')
	if opener == '[' {
		closer = ']'
	}
	if end := strings.LastIndexByte(s, closer); end >= 0 {
		if candidate := s[:end+1]; json.Valid([]byte(candidate)) {
			return candidate, true
		}
	}

	// Either truncated mid-generation or followed by prose containing
	// braces. Re-close at the last fully completed element.
	return repairTruncated(s)
}

func stripCodeFence(s string) string {
	if strings.HasPrefix(s, "```") {
		s = s[3:]
		if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
			s = s[4:]
		}
		s = strings.TrimLeft(s, " \t\r\n")
	}
	if t := strings.TrimSpace(s); strings.HasSuffix(t, "```") {
		s = strings.TrimSpace(t[:len(t)-3])
	}
	return s
}

// firstJSONBoundary finds the first { or [ and reports which one came first.
func firstJSONBoundary(s string) (int, byte) {
	obj := strings.IndexByte(s, '{')
	arr := strings.IndexByte(s, '[')
	switch {
	case obj < 0 && arr < 0:
		return -1, 0
	case arr < 0 || (obj >= 0 && obj < arr):
		return obj, '{'
	default:
		return arr, '['
	}
}

// sanitizeJSON walks the payload once, tracking string boundaries. Inside
// string values raw newlines and tabs become their escape sequences and
// other control characters are dropped; outside strings control characters
// collapse to plain spaces. Already-escaped sequences pass through
// untouched, so the function is idempotent.
func sanitizeJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false
	for _, r := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
				b.WriteRune(r)
			case r == '\\':
				escaped = true
				b.WriteRune(r)
			case r == '"':
				inString = false
				b.WriteRune(r)
			case r == '\n':
				b.WriteString(`\n`)
			case r == '\t':
				b.WriteString(`\t`)
			case isControl(r):
				// dropped
			default:
				b.WriteRune(r)
			}
			continue
		}

		switch {
		case r == '"':
			inString = true
			b.WriteRune(r)
		case r == '\n' || r == '\t' || r == '\r':
			b.WriteRune(' ')
		case isControl(r):
			// dropped
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isControl(r rune) bool {
	return r < 0x20 || (r >= 0x7f && r <= 0x9f)
}

// repairTruncated cuts the payload just past the most recently closed
// element, discards the incomplete tail, and re-closes every container
// still open at that point. Prose after a complete payload is handled the
// same way: scanning stops at the first closer that has no matching opener.
func repairTruncated(s string) (string, bool) {
	var stack []byte
	var stackAtCut []byte
	inString := false
	escaped := false
	cut := -1

scan:
	for i := 0; i < len(s); i++ {
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
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			if len(stack) == 0 {
				break scan
			}
			stack = stack[:len(stack)-1]
			cut = i + 1
			stackAtCut = append(stackAtCut[:0], stack...)
		}
	}
	if cut < 0 {
		return "", false
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(s[:cut], " \t\r\n"))
	for i := len(stackAtCut) - 1; i >= 0; i-- {
		if stackAtCut[i] == '{' {
			b.WriteByte('}')
		} else {
			b.WriteByte(']')
		}
	}

	repaired := b.String()
	if json.Valid([]byte(repaired)) {
		return repaired, true
	}
	return "", false
}
