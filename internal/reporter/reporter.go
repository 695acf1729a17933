package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"hdrgen/internal/analyzer"
	"hdrgen/internal/parser"
)

// Output formats
const (
	FormatConsole = "console"
	FormatJSON    = "json"
	FormatYAML    = "yaml"
)

// Report is everything a scan run produced
type Report struct {
	Files         []parser.Result       `json:"files" yaml:"files"`
	Classes       []parser.ClassSummary `json:"classes" yaml:"classes"`
	FreeFunctions []parser.Declaration  `json:"free_functions" yaml:"free_functions"`
	Findings      []analyzer.Finding    `json:"findings" yaml:"findings"`
	Summary       Summary               `json:"summary" yaml:"summary"`
}

// Summary holds aggregate information about the scan
type Summary struct {
	Files        int `json:"files" yaml:"files"`
	Declarations int `json:"declarations" yaml:"declarations"`
	Eligible     int `json:"eligible" yaml:"eligible"`
	Warnings     int `json:"warnings" yaml:"warnings"`
	Infos        int `json:"infos" yaml:"infos"`
}

// NewReport assembles a report from a registry and its findings
func NewReport(r *parser.Registry, findings []analyzer.Finding) Report {
	report := Report{
		Files:         r.Results(),
		Classes:       r.MergeClasses(),
		FreeFunctions: r.FreeFunctions(),
		Findings:      findings,
	}
	if report.Files == nil {
		report.Files = []parser.Result{}
	}
	if report.Classes == nil {
		report.Classes = []parser.ClassSummary{}
	}
	if report.FreeFunctions == nil {
		report.FreeFunctions = []parser.Declaration{}
	}
	if report.Findings == nil {
		report.Findings = []analyzer.Finding{}
	}

	report.Summary.Files = len(report.Files)
	for _, res := range report.Files {
		for _, d := range res.Declarations {
			report.Summary.Declarations++
			if d.Eligible && d.Kind == parser.DeclFunction && !d.Deleted {
				report.Summary.Eligible++
			}
		}
	}
	report.Summary.Warnings = countBySeverity(findings, analyzer.SeverityWarning)
	report.Summary.Infos = countBySeverity(findings, analyzer.SeverityInfo)
	return report
}

// Reporter formats and outputs scan reports
type Reporter struct {
	output io.Writer
	format string
}

// NewReporter creates a new reporter
func NewReporter(output io.Writer, format string) (*Reporter, error) {
	switch format {
	case FormatConsole, FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("unknown report format %q (want console, json or yaml)", format)
	}
	return &Reporter{output: output, format: format}, nil
}

// Report outputs the report in the configured format
func (r *Reporter) Report(report Report) error {
	switch r.format {
	case FormatJSON:
		return r.reportJSON(report)
	case FormatYAML:
		return r.reportYAML(report)
	default:
		return r.reportConsole(report)
	}
}

func (r *Reporter) reportConsole(report Report) error {
	fmt.Fprintf(r.output, "Scanned %d file(s): %d declaration(s), %d testable\n",
		report.Summary.Files, report.Summary.Declarations, report.Summary.Eligible)

	for _, class := range report.Classes {
		ctor := "default-constructed"
		if class.Constructor != nil {
			ctor = class.Name + "(" + parser.NormalizeParams(class.Constructor.Args) + ")"
		}
		fmt.Fprintf(r.output, "  class %s [%s]: %d method(s)\n", class.Name, ctor, len(class.Methods))
	}
	if n := len(report.FreeFunctions); n > 0 {
		fmt.Fprintf(r.output, "  %d free function(s)\n", n)
	}

	findings := report.Findings
	if len(findings) == 0 {
		fmt.Fprintln(r.output, "\n[OK] Every declaration generates cleanly.")
		return nil
	}

	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].File != findings[j].File {
			return findings[i].File < findings[j].File
		}
		return findings[i].Line < findings[j].Line
	})

	// Group by file
	currentFile := ""
	for _, f := range findings {
		if f.File != currentFile {
			currentFile = f.File
			fmt.Fprintf(r.output, "\n%s:\n", filepath.Base(currentFile))
		}

		icon := "[INFO]"
		if f.Severity == analyzer.SeverityWarning {
			icon = "[WARN]"
		}

		fmt.Fprintf(r.output, "  %s Line %d [%s]: %s\n", icon, f.Line, symbol(f), f.Reason)
		if f.Recommendation != "" {
			fmt.Fprintf(r.output, "         -> Fix: %s\n", f.Recommendation)
		}
	}

	fmt.Fprintf(r.output, "\nSummary: %d warning(s), %d info\n", report.Summary.Warnings, report.Summary.Infos)
	return nil
}

func symbol(f analyzer.Finding) string {
	switch {
	case f.Class != "" && f.Symbol != "":
		return f.Class + "::" + f.Symbol
	case f.Class != "":
		return f.Class
	default:
		return f.Symbol
	}
}

func (r *Reporter) reportJSON(report Report) error {
	encoder := json.NewEncoder(r.output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func (r *Reporter) reportYAML(report Report) error {
	encoder := yaml.NewEncoder(r.output)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		return err
	}
	return encoder.Close()
}

func countBySeverity(findings []analyzer.Finding, severity string) int {
	count := 0
	for _, f := range findings {
		if f.Severity == severity {
			count++
		}
	}
	return count
}
