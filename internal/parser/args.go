package parser

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	leadingConst = regexp.MustCompile(`^(?:const\s+)+`)
	arraySuffix  = regexp.MustCompile(`\s*\[[^\]]*\]\s*$`)
)

// SplitArgs splits raw argument text on commas. Commas nested inside template
// arguments or parentheses are split too.
func SplitArgs(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseArg decomposes one parameter into qualifier, base type, modifier and name.
// The name may be absent. ok is false when the text does not decompose.
func ParseArg(text string) (Argument, bool) {
	s := strings.TrimSpace(text)
	if idx := strings.IndexByte(s, '='); idx >= 0 {
		s = strings.TrimSpace(s[:idx])
	}
	if s == "" || s == "..." {
		return Argument{}, false
	}

	var arg Argument
	if loc := leadingConst.FindStringIndex(s); loc != nil {
		arg.Const = true
		s = s[loc[1]:]
	}
	if loc := arraySuffix.FindStringIndex(s); loc != nil {
		s = arrayToPointer(s[:loc[0]])
	}

	rest, name := splitTrailingIdent(s)
	if name != "" && (rest == "" || !isBoundary(rest[len(rest)-1]) || typeKeywords[name]) {
		rest, name = s, ""
	}

	typ := strings.TrimSpace(rest)
	end := len(typ)
	for end > 0 && (typ[end-1] == '*' || typ[end-1] == '&' || typ[end-1] == ' ' || typ[end-1] == '\t') {
		end--
	}
	arg.Modifier = strings.Map(func(r rune) rune {
		if r == '*' || r == '&' {
			return r
		}
		return -1
	}, typ[end:])
	arg.Type = strings.Join(strings.Fields(typ[:end]), " ")
	arg.Name = name

	if arg.Type == "" || strings.ContainsAny(arg.Type, "()*&") {
		return Argument{}, false
	}
	return arg, true
}

// arrayToPointer rewrites `int values` (from `int values[]`) as `int* values`
func arrayToPointer(s string) string {
	rest, name := splitTrailingIdent(s)
	if name == "" || rest == "" || !isBoundary(rest[len(rest)-1]) || typeKeywords[name] {
		return s + "*"
	}
	return strings.TrimRight(rest, " \t") + "* " + name
}

func splitTrailingIdent(s string) (string, string) {
	i := len(s)
	for i > 0 && isIdentByte(s[i-1]) {
		i--
	}
	// identifiers do not start with a digit
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i], s[i:]
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isBoundary(b byte) bool {
	return b == ' ' || b == '\t' || b == '*' || b == '&'
}

// ParseArgs returns the retained arguments of a raw parameter list in order.
// Undecomposable entries and a bare `void` marker are dropped.
func ParseArgs(raw string) []Argument {
	var args []Argument
	for _, part := range SplitArgs(raw) {
		arg, ok := ParseArg(part)
		if !ok {
			continue
		}
		if arg.Type == "void" && arg.Modifier == "" {
			continue
		}
		args = append(args, arg)
	}
	return args
}

// Synthesized holds local declarations standing in for a parameter list
type Synthesized struct {
	Decls []string
	Names []string
}

// Call returns the comma-joined argument names
func (s Synthesized) Call() string {
	return strings.Join(s.Names, ", ")
}

// Synthesize declares one local per argument named prefix0, prefix1, ...
// Pointers are null-initialized, everything else is default-initialized by value.
func Synthesize(args []Argument, prefix string) Synthesized {
	var s Synthesized
	for i, arg := range args {
		name := fmt.Sprintf("%s%d", prefix, i)
		if arg.Pointer() {
			stars := strings.TrimRight(arg.Modifier, "&")
			s.Decls = append(s.Decls, fmt.Sprintf("%s%s %s = nullptr;", arg.Type, stars, name))
		} else {
			s.Decls = append(s.Decls, fmt.Sprintf("%s %s;", arg.Type, name))
		}
		s.Names = append(s.Names, name)
	}
	return s
}

// NormalizeParams rewrites a raw parameter list as `a, b` with default values
// and a lone `void` marker removed
func NormalizeParams(raw string) string {
	parts := SplitArgs(raw)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if idx := strings.IndexByte(part, '='); idx >= 0 {
			part = strings.TrimSpace(part[:idx])
		}
		part = strings.Join(strings.Fields(part), " ")
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	if len(out) == 1 && out[0] == "void" {
		return ""
	}
	return strings.Join(out, ", ")
}
