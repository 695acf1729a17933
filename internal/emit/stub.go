package emit

import (
	"path/filepath"
	"strings"

	"hdrgen/internal/parser"
)

// DefaultStubPrefix prefixes every generated stub function
const DefaultStubPrefix = "stub_"

// DefaultStubIncludes are included by every generated stub header
var DefaultStubIncludes = []string{"stub.h"}

// GuardMacro derives the include guard of a generated header:
// `unittest_stub-widget.h` -> `__UNITTEST_STUB_WIDGET_H__`
func GuardMacro(headerName string) string {
	base := filepath.Base(headerName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.Map(func(r rune) rune {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, base)
	return "__" + strings.ToUpper(base) + "_H__"
}

// StubOptions configure a stub emitter
type StubOptions struct {
	// HeaderName is the generated header's path; the source includes its base name
	HeaderName     string
	Includes       []string
	FunctionPrefix string
}

// StubEmitter writes a declaration and an empty definition for every function
// signature, public or not
type StubEmitter struct {
	header *Assembler
	source *Assembler
	prefix string
	stubs  int
}

// NewStubEmitter creates header and source assemblers with their boilerplate
func NewStubEmitter(opts StubOptions) *StubEmitter {
	includes := opts.Includes
	if includes == nil {
		includes = DefaultStubIncludes
	}
	prefix := opts.FunctionPrefix
	if prefix == "" {
		prefix = DefaultStubPrefix
	}

	guard := GuardMacro(opts.HeaderName)
	headerBoilerplate := []string{"#ifndef " + guard + "\n#define " + guard + "\n\n"}
	for _, inc := range includes {
		headerBoilerplate = append(headerBoilerplate, "#include <"+inc+">\n")
	}
	headerBoilerplate = append(headerBoilerplate, "\n")

	header := NewAssembler("", headerBoilerplate...)
	header.SetEpilogue("\n#endif")
	source := NewAssembler("", "#include \""+filepath.Base(opts.HeaderName)+"\"\n\n")

	return &StubEmitter{header: header, source: source, prefix: prefix}
}

func (e *StubEmitter) EnterNamespace(name string) {
	if name == "" {
		return
	}
	e.header.OpenNamespace(name)
	e.source.Import("using namespace " + name + ";\n\n")
}

func (e *StubEmitter) LeaveNamespace(name string) {
	if name != "" {
		e.header.CloseNamespace()
	}
}

// Declare writes the stub pair for a function. Constructors are not stubbed.
func (e *StubEmitter) Declare(d parser.Declaration) {
	if d.Kind != parser.DeclFunction || d.Deleted {
		return
	}
	sig := StubSignature(d, e.prefix)

	var body strings.Builder
	if d.Class != nil {
		body.WriteString(indent + "(void)obj;\n")
	}
	for _, arg := range parser.ParseArgs(d.Args) {
		if arg.Name != "" {
			body.WriteString(indent + "(void)" + arg.Name + ";\n")
		}
	}

	e.header.Fragment(sig + ";\n\n")
	e.source.Fragment(sig + "\n{\n" + body.String() + "}\n\n")
	e.stubs++
}

// StubSignature renders `ret prefix[Class_]name([void* obj, ]params)`
func StubSignature(d parser.Declaration, prefix string) string {
	params := parser.NormalizeParams(d.Args)
	name := prefix + d.Name
	if d.Class != nil {
		name = prefix + d.Class.Name + "_" + d.Name
		if params == "" {
			params = "void* obj"
		} else {
			params = "void* obj, " + params
		}
	}
	return d.ReturnType + " " + name + "(" + params + ")"
}

// Emitted returns how many functions were stubbed
func (e *StubEmitter) Emitted() int {
	return e.stubs
}

// Artifacts returns the header and source files
func (e *StubEmitter) Artifacts() []Artifact {
	return []Artifact{
		{Role: "header", Text: e.header.String()},
		{Role: "source", Text: e.source.String()},
	}
}
