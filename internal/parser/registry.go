package parser

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ClassSummary is everything scanned for one class
type ClassSummary struct {
	Name        string        `json:"name" yaml:"name"`
	Files       []string      `json:"files" yaml:"files"`
	Constructor *Declaration  `json:"constructor,omitempty" yaml:"constructor,omitempty"`
	Methods     []Declaration `json:"methods" yaml:"methods"`
}

// Registry holds scan results for cross-file reporting
type Registry struct {
	mu      sync.Mutex
	results []Result
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Add records one file's result. Safe for concurrent use.
func (r *Registry) Add(result Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
}

// Results returns the recorded results ordered by file
func (r *Registry) Results() []Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Result, len(r.results))
	copy(out, r.results)
	sort.SliceStable(out, func(i, j int) bool { return out[i].File < out[j].File })
	return out
}

// QualifiedName joins namespaces and a class or function name with ::
func QualifiedName(namespaces []string, name string) string {
	if len(namespaces) == 0 {
		return name
	}
	return strings.Join(namespaces, "::") + "::" + name
}

// MergeClasses merges classes with the same qualified name across files
func (r *Registry) MergeClasses() []ClassSummary {
	merged := make(map[string]*ClassSummary)
	var order []string

	for _, result := range r.Results() {
		for _, decl := range result.Declarations {
			if decl.Class == nil {
				continue
			}
			key := QualifiedName(decl.Namespaces, decl.Class.Name)
			summary, exists := merged[key]
			if !exists {
				summary = &ClassSummary{Name: key}
				merged[key] = summary
				order = append(order, key)
			}
			mergeDeclInto(summary, decl, result.File)
		}
	}

	out := make([]ClassSummary, 0, len(order))
	for _, key := range order {
		out = append(out, *merged[key])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// mergeDeclInto adds decl to summary; the first usable constructor wins and
// identical method signatures are kept once
func mergeDeclInto(summary *ClassSummary, decl Declaration, file string) {
	base := filepath.Base(file)
	found := false
	for _, f := range summary.Files {
		if f == base {
			found = true
			break
		}
	}
	if !found {
		summary.Files = append(summary.Files, base)
	}

	if decl.Kind == DeclConstructor {
		if summary.Constructor == nil && !decl.Deleted {
			d := decl
			summary.Constructor = &d
		}
		return
	}
	for _, m := range summary.Methods {
		if m.Name == decl.Name && NormalizeParams(m.Args) == NormalizeParams(decl.Args) {
			return
		}
	}
	summary.Methods = append(summary.Methods, decl)
}

// FreeFunctions returns every function declared outside a class
func (r *Registry) FreeFunctions() []Declaration {
	var out []Declaration
	for _, result := range r.Results() {
		for _, decl := range result.Declarations {
			if decl.Class == nil {
				out = append(out, decl)
			}
		}
	}
	return out
}
