package parser

import (
	"strings"
)

// stripComments removes block and line comments from a physical line. inBlock
// carries an unterminated /* across lines. Comment markers inside string and
// character literals are kept.
func stripComments(line string, inBlock bool) (string, bool) {
	var sb strings.Builder
	for i := 0; i < len(line); i++ {
		if inBlock {
			if line[i] == '*' && i+1 < len(line) && line[i+1] == '/' {
				inBlock = false
				i++
			}
			continue
		}
		if opensLiteral(line, i) {
			end := literalEnd(line, i)
			sb.WriteString(line[i:end])
			i = end - 1
			continue
		}
		if line[i] == '/' && i+1 < len(line) {
			switch line[i+1] {
			case '/':
				return sb.String(), false
			case '*':
				inBlock = true
				i++
				sb.WriteByte(' ')
				continue
			}
		}
		sb.WriteByte(line[i])
	}
	return sb.String(), inBlock
}

// opensLiteral reports a `"` or `'` that starts a literal at i. A quote between
// digits is a digit separator.
func opensLiteral(text string, i int) bool {
	switch text[i] {
	case '"':
		return true
	case '\'':
		return i == 0 || !isDigit(text[i-1]) || i+1 >= len(text) || !isIdentByte(text[i+1])
	}
	return false
}

// literalEnd returns the index just past the literal opened at i. An
// unterminated literal runs to the end of the line.
func literalEnd(text string, i int) int {
	quote := text[i]
	for j := i + 1; j < len(text); j++ {
		switch text[j] {
		case '\\':
			j++
		case quote:
			return j + 1
		}
	}
	return len(text)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// splitLogical breaks a physical line into logical segments after `{`, `}`, `;`
// and an access label, so that one-line class bodies are seen the same way as
// their multi-line layout. `};` stays a single segment.
func splitLogical(text string) []string {
	var segments []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '"', '\'':
			if opensLiteral(text, i) {
				i = literalEnd(text, i) - 1
			}
		case '{', ';':
			segments = appendSegment(segments, text[start:i+1])
			start = i + 1
		case '}':
			if i+1 < len(text) && text[i+1] == ';' {
				continue
			}
			segments = appendSegment(segments, text[start:i+1])
			start = i + 1
		case ':':
			if isScopeColon(text, i) {
				continue
			}
			if _, ok := MatchAccessSpecifier(text[start : i+1]); ok {
				segments = appendSegment(segments, text[start:i+1])
				start = i + 1
			}
		}
	}
	return appendSegment(segments, text[start:])
}

func isScopeColon(text string, i int) bool {
	return (i+1 < len(text) && text[i+1] == ':') || (i > 0 && text[i-1] == ':')
}

func appendSegment(segments []string, seg string) []string {
	if strings.TrimSpace(seg) == "" {
		return segments
	}
	return append(segments, seg)
}
