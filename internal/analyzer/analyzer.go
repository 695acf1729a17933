package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"hdrgen/internal/parser"
)

// Severity levels of a finding
const (
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Finding is something in a header the generators will render imperfectly
type Finding struct {
	File           string `json:"file" yaml:"file"`
	Line           int    `json:"line" yaml:"line"`
	Class          string `json:"class,omitempty" yaml:"class,omitempty"`
	Symbol         string `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Reason         string `json:"reason" yaml:"reason"`
	Recommendation string `json:"recommendation,omitempty" yaml:"recommendation,omitempty"`
	Severity       string `json:"severity" yaml:"severity"`
}

// noteRules maps scan notes to findings; notes without a rule are dropped
var noteRules = map[parser.NoteKind]struct {
	severity       string
	reason         string
	recommendation string
}{
	parser.NoteSignatureAbandoned: {SeverityWarning,
		"signature never reached `);` within the lookahead bound",
		"raise max_continuation_lines or check for a missing `;`"},
	parser.NoteSignatureUnfinished: {SeverityWarning,
		"file ended inside a parameter list", ""},
	parser.NoteNestedClassReplaced: {SeverityWarning,
		"nested class replaced the enclosing one; later members are attributed to it",
		"move the nested class out of line"},
	parser.NoteConstructorIgnored: {SeverityInfo,
		"only the first constructor shapes the fixture", ""},
	parser.NoteDefinitionSkipped: {SeverityInfo,
		"inline definition; the body was skipped", ""},
	parser.NoteClassClosed: {SeverityWarning,
		"class closed by `};`; later members are scanned as free functions",
		"move the inline definition out of the class body"},
	parser.NoteAccessOutsideClass: {SeverityInfo,
		"access specifier outside any class was ignored; an earlier `};` may have closed the class", ""},
	parser.NoteNamespaceUnterminate: {SeverityWarning,
		"namespace still open at end of file", ""},
}

// Analyzer inspects scan results for declarations that generate poorly
type Analyzer struct {
	results []parser.Result
	classes []parser.ClassSummary
}

// NewAnalyzer creates a new analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// AddResults adds per-file scan results
func (a *Analyzer) AddResults(results []parser.Result) {
	a.results = append(a.results, results...)
}

// AddClasses adds merged class summaries
func (a *Analyzer) AddClasses(classes []parser.ClassSummary) {
	a.classes = append(a.classes, classes...)
}

// Analyze runs every rule and returns findings ordered by file and line
func (a *Analyzer) Analyze() []Finding {
	var findings []Finding

	for _, result := range a.results {
		findings = append(findings, a.analyzeResult(result)...)
	}

	for _, class := range a.classes {
		if len(class.Files) > 1 {
			findings = append(findings, Finding{
				File:     strings.Join(class.Files, ", "),
				Class:    class.Name,
				Reason:   fmt.Sprintf("declared in %d files; each file generates its own fixture", len(class.Files)),
				Severity: SeverityInfo,
			})
		}
	}

	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].File != findings[j].File {
			return findings[i].File < findings[j].File
		}
		return findings[i].Line < findings[j].Line
	})
	return findings
}

func (a *Analyzer) analyzeResult(result parser.Result) []Finding {
	var findings []Finding

	// Rule 1: absorbed parse events
	for _, note := range result.Notes {
		rule, ok := noteRules[note.Kind]
		if !ok {
			continue
		}
		// ordinary class ends carry no detail
		if note.Kind == parser.NoteClassClosed && note.Detail == "" {
			continue
		}
		reason := rule.reason
		if note.Detail != "" {
			reason += " (" + note.Detail + ")"
		}
		findings = append(findings, Finding{
			File:           result.File,
			Line:           note.Line,
			Symbol:         note.Name,
			Reason:         reason,
			Recommendation: rule.recommendation,
			Severity:       rule.severity,
		})
	}

	overloads := make(map[string][]parser.Declaration)
	reportedCtor := make(map[string]bool)

	for _, decl := range result.Declarations {
		if decl.Deleted {
			continue
		}
		class := ""
		if decl.Class != nil {
			class = decl.Class.Name
		}
		finding := func(reason, recommendation, severity string) Finding {
			return Finding{
				File:           result.File,
				Line:           decl.StartLine,
				Class:          class,
				Symbol:         decl.Name,
				Reason:         reason,
				Recommendation: recommendation,
				Severity:       severity,
			}
		}

		// Rule 2: parameters the synthesizer cannot declare
		for _, part := range parser.SplitArgs(decl.Args) {
			if _, ok := parser.ParseArg(part); !ok && part != "..." {
				findings = append(findings, finding(
					fmt.Sprintf("parameter %q cannot be synthesized", part),
					"introduce a typedef for the parameter type",
					SeverityWarning))
			}
		}

		// Rule 3: defaults are dropped from synthesized calls and stubs
		if strings.Contains(decl.Args, "=") {
			findings = append(findings, finding(
				"default argument values are not carried into generated code", "", SeverityInfo))
		}

		if decl.Kind != parser.DeclFunction {
			continue
		}

		// Rule 4: fixture built through a constructor the test cannot reach
		if decl.Eligible && decl.Class != nil && decl.Class.Constructed() &&
			decl.Class.ConstructorAccess != parser.AccessPublic && !reportedCtor[class] {
			reportedCtor[class] = true
			findings = append(findings, finding(
				"fixture uses a non-public constructor of "+class,
				"make the constructor public or befriend the test fixture",
				SeverityWarning))
		}

		// Rule 5: stubs of non-void functions have no return statement
		if decl.ReturnType != "" && decl.ReturnType != "void" {
			findings = append(findings, finding(
				"stub returns "+decl.ReturnType+" without a return statement",
				"fill in a return value in the generated stub",
				SeverityInfo))
		}

		key := parser.QualifiedName(decl.Namespaces, class+"::"+decl.Name)
		overloads[key] = append(overloads[key], decl)
	}

	// Rule 6: overloads share a name, test cases are numbered
	for _, decls := range overloads {
		if len(decls) < 2 {
			continue
		}
		first := decls[0]
		class := ""
		if first.Class != nil {
			class = first.Class.Name
		}
		findings = append(findings, Finding{
			File:     result.File,
			Line:     first.StartLine,
			Class:    class,
			Symbol:   first.Name,
			Reason:   fmt.Sprintf("%d overloads; test cases are numbered in declaration order", len(decls)),
			Severity: SeverityInfo,
		})
	}

	return findings
}

// AnalyzeRegistry is a convenience function to analyze everything a registry holds
func AnalyzeRegistry(r *parser.Registry) []Finding {
	analyzer := NewAnalyzer()
	analyzer.AddResults(r.Results())
	analyzer.AddClasses(r.MergeClasses())
	return analyzer.Analyze()
}
