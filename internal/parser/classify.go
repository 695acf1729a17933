package parser

import (
	"regexp"
	"strings"
)

var (
	namespaceOpenPattern  = regexp.MustCompile(`^\s*namespace(?:\s+([A-Za-z_][\w:]*))?\s*(\{)?\s*$`)
	namespaceClosePattern = regexp.MustCompile(`^\s*\}\s*$`)
	classOpenPattern      = regexp.MustCompile(`^\s*(?:template\s*<[^;]*>\s*)?(class|struct)\s+([A-Za-z_]\w*)([^;]*)$`)
	accessPattern         = regexp.MustCompile(`^\s*(public|private|protected)\s*:\s*$`)
	functionPattern       = regexp.MustCompile(`^\s*((?:[A-Za-z_][\w:]*(?:<[^()]*>)?[\s\*&]+)+)([A-Za-z_]\w*)\s*\((.*)$`)
	deletedPattern        = regexp.MustCompile(`=\s*delete\b`)
)

// classCloseToken ends the active class wherever it appears on a line.
// Function bodies closed with the same text end the class too.
const classCloseToken = "};"

// keywords that never name a function and never start a declaration
var statementKeywords = map[string]bool{
	"return": true, "if": true, "else": true, "while": true, "for": true, "do": true,
	"switch": true, "case": true, "default": true, "goto": true, "throw": true,
	"new": true, "delete": true, "using": true, "typedef": true, "sizeof": true,
	"decltype": true, "static_assert": true, "alignof": true, "operator": true,
	"friend": true, "namespace": true, "class": true, "struct": true, "enum": true,
	"union": true, "template": true, "typename": true,
}

var typeKeywords = map[string]bool{
	"void": true, "bool": true, "char": true, "short": true, "int": true, "long": true,
	"float": true, "double": true, "signed": true, "unsigned": true, "wchar_t": true,
	"auto": true, "const": true, "volatile": true,
}

// declaration specifiers that are not part of a return type
var declSpecifiers = map[string]bool{
	"virtual": true, "static": true, "inline": true, "explicit": true,
	"extern": true, "constexpr": true,
}

// Scope is the slice of machine context the classifier needs
type Scope struct {
	InClass        bool
	ClassName      string
	Pending        bool
	NamespaceDepth int
	// Constructor matches the active class's constructor; compiled from
	// ClassName when nil.
	Constructor *regexp.Regexp
}

func (s Scope) constructor() *regexp.Regexp {
	if s.Constructor != nil {
		return s.Constructor
	}
	return constructorPattern(s.ClassName)
}

// FunctionMatch is a recognized function start
type FunctionMatch struct {
	ReturnType string
	Name       string
	Rest       string // text after the opening parenthesis
}

// Classify returns the role of a logical line. Priority is fixed: comments and
// directives first, continuation of a pending signature next, then openings
// before generic function matching.
func Classify(line string, scope Scope) LineKind {
	switch {
	case IsComment(line):
		return LineComment
	case scope.Pending:
		return LineContinuation
	case IsDirective(line):
		return LineDirective
	}
	if _, ok := MatchNamespaceOpen(line); ok {
		return LineNamespaceOpen
	}
	if _, _, ok := MatchClassOpen(line); ok {
		return LineClassOpen
	}
	if scope.InClass {
		if _, ok := MatchAccessSpecifier(line); ok {
			return LineAccessSpecifier
		}
		if _, ok := MatchConstructorStart(line, scope.constructor()); ok {
			return LineConstructorStart
		}
	}
	if _, ok := MatchFunctionStart(line); ok {
		return LineFunctionStart
	}
	if scope.InClass && IsClassClose(line) {
		return LineClassClose
	}
	if !scope.InClass && scope.NamespaceDepth > 0 && IsNamespaceClose(line) {
		return LineNamespaceClose
	}
	if _, ok := MatchAccessSpecifier(line); ok {
		return LineAccessSpecifier
	}
	return LineUnrecognized
}

// IsComment reports whether the line is a line comment
func IsComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "//")
}

// IsDirective reports whether the line is a preprocessor directive
func IsDirective(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}

// MatchNamespaceOpen returns the namespace name; anonymous namespaces yield ""
func MatchNamespaceOpen(line string) (string, bool) {
	m := namespaceOpenPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	// a bare `namespace` with neither name nor brace is not an opening
	if m[1] == "" && m[2] == "" {
		return "", false
	}
	return m[1], true
}

// IsNamespaceClose reports a lone closing brace
func IsNamespaceClose(line string) bool {
	return namespaceClosePattern.MatchString(line)
}

// MatchClassOpen returns the class name and whether it was declared as a struct
func MatchClassOpen(line string) (name string, isStruct bool, ok bool) {
	m := classOpenPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false, false
	}
	return m[2], m[1] == "struct", true
}

// ClassBodyOpens reports whether a class-opening line leaves the body open.
// A class whose closing brace is on the same line never becomes active.
func ClassBodyOpens(line string) bool {
	m := classOpenPattern.FindStringSubmatch(line)
	return m != nil && !strings.Contains(m[3], "}")
}

// MatchAccessSpecifier returns the access level a specifier line selects.
// protected is treated as private.
func MatchAccessSpecifier(line string) (AccessLevel, bool) {
	m := accessPattern.FindStringSubmatch(line)
	if m == nil {
		return AccessPrivate, false
	}
	if m[1] == "public" {
		return AccessPublic, true
	}
	return AccessPrivate, true
}

func constructorPattern(className string) *regexp.Regexp {
	if className == "" {
		return nil
	}
	return regexp.MustCompile(`(?:^|[^~\w:])` + regexp.QuoteMeta(className) + `\s*\((.*)$`)
}

// MatchConstructorStart returns the text following the constructor's opening parenthesis
func MatchConstructorStart(line string, pattern *regexp.Regexp) (string, bool) {
	if pattern == nil {
		return "", false
	}
	m := pattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// MatchFunctionStart recognizes `return-type name(`
func MatchFunctionStart(line string) (FunctionMatch, bool) {
	m := functionPattern.FindStringSubmatch(line)
	if m == nil {
		return FunctionMatch{}, false
	}
	name := m[2]
	if statementKeywords[name] || typeKeywords[name] {
		return FunctionMatch{}, false
	}
	var words []string
	for _, word := range strings.Fields(m[1]) {
		bare := strings.Trim(word, "*&")
		if statementKeywords[bare] {
			return FunctionMatch{}, false
		}
		if declSpecifiers[bare] {
			continue
		}
		words = append(words, word)
	}
	if len(words) == 0 {
		return FunctionMatch{}, false
	}
	return FunctionMatch{
		ReturnType: normalizeType(strings.Join(words, " ")),
		Name:       name,
		Rest:       m[3],
	}, true
}

// IsClassClose reports whether the line carries the class-closing token
func IsClassClose(line string) bool {
	return strings.Contains(line, classCloseToken)
}

// normalizeType collapses whitespace and binds pointer/reference markers to the type
func normalizeType(t string) string {
	t = strings.Join(strings.Fields(t), " ")
	t = strings.ReplaceAll(t, " *", "*")
	t = strings.ReplaceAll(t, " &", "&")
	return t
}
