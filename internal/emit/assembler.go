package emit

import (
	"io"
	"strings"
)

// Artifact is one generated text file
type Artifact struct {
	Role string
	Text string
}

// Assembler sequences an artifact's regions in fixed order: boilerplate,
// namespace-import directives, then emitted fragments. Namespaces opened in the
// fragment region are closed in reverse order when the artifact is written,
// whether or not the input closed them.
type Assembler struct {
	boilerplate []string
	imports     []string
	fragments   []string
	open        []string
	separator   string
	epilogue    string
}

// NewAssembler creates an assembler. separator is written after the
// boilerplate and after the imports.
func NewAssembler(separator string, boilerplate ...string) *Assembler {
	return &Assembler{separator: separator, boilerplate: boilerplate}
}

// Import appends a namespace-import directive
func (a *Assembler) Import(directive string) {
	a.imports = append(a.imports, directive)
}

// Fragment appends emitted text
func (a *Assembler) Fragment(text string) {
	a.fragments = append(a.fragments, text)
}

// OpenNamespace opens a namespace block in the fragment region
func (a *Assembler) OpenNamespace(name string) {
	a.fragments = append(a.fragments, "namespace "+name+"\n{\n")
	a.open = append(a.open, name)
}

// CloseNamespace closes the innermost open namespace block
func (a *Assembler) CloseNamespace() {
	if len(a.open) == 0 {
		return
	}
	a.open = a.open[:len(a.open)-1]
	a.fragments = append(a.fragments, "}\n")
}

// SetEpilogue sets the text written last
func (a *Assembler) SetEpilogue(text string) {
	a.epilogue = text
}

// String renders the artifact
func (a *Assembler) String() string {
	var sb strings.Builder
	for _, b := range a.boilerplate {
		sb.WriteString(b)
	}
	sb.WriteString(a.separator)
	for _, imp := range a.imports {
		sb.WriteString(imp)
	}
	sb.WriteString(a.separator)
	for _, f := range a.fragments {
		sb.WriteString(f)
	}
	for range a.open {
		sb.WriteString("}\n")
	}
	sb.WriteString(a.epilogue)
	return sb.String()
}

// WriteTo writes the rendered artifact in one pass
func (a *Assembler) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, a.String())
	return int64(n), err
}
