package emit

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"hdrgen/internal/parser"
)

const indent = "    "

// DefaultTestIncludes are included by every generated test file
var DefaultTestIncludes = []string{"stub.h", "gtest/gtest.h", "gmock/gmock.h"}

const fixtureTemplate = `class %[1]s : public ::testing::Test
{
    virtual void SetUp() override
    {
        Test::SetUp();
    }
    virtual void TearDown() override
    {
        Test::TearDown();
    }
    static void SetUpTestCase()
    {
    }
    static void TearDownTestCase()
    {
    }
};
`

var suiteWord = regexp.MustCompile(`\w+`)

// SuiteName derives the fixture name from a header path: `widget.h` -> `widgetTest`
func SuiteName(header string) string {
	word := suiteWord.FindString(filepath.Base(header))
	if word == "" {
		word = "Header"
	}
	return word + "Test"
}

// TestOptions configure a test emitter
type TestOptions struct {
	// Header is the path of the scanned header; its base name is included
	Header   string
	Includes []string
}

// TestEmitter writes one gtest case per eligible function
type TestEmitter struct {
	asm       *Assembler
	suite     string
	overloads map[string]int
	cases     int
}

// NewTestEmitter creates an emitter with the fixture block already in place
func NewTestEmitter(opts TestOptions) *TestEmitter {
	includes := opts.Includes
	if includes == nil {
		includes = DefaultTestIncludes
	}
	var boilerplate []string
	for _, inc := range includes {
		boilerplate = append(boilerplate, "#include <"+inc+">\n")
	}
	boilerplate = append(boilerplate, "#include \""+filepath.Base(opts.Header)+"\"\n")

	suite := SuiteName(opts.Header)
	asm := NewAssembler("\n", boilerplate...)
	asm.Import("using namespace ::testing;\n")
	asm.Fragment(fmt.Sprintf(fixtureTemplate, suite) + "\n")

	return &TestEmitter{
		asm:       asm,
		suite:     suite,
		overloads: make(map[string]int),
	}
}

func (e *TestEmitter) EnterNamespace(name string) {
	if name != "" {
		e.asm.Import("using namespace " + name + ";\n")
	}
}

func (e *TestEmitter) LeaveNamespace(string) {}

// Declare emits a case for an eligible function. Constructors only shape fixtures.
func (e *TestEmitter) Declare(d parser.Declaration) {
	if d.Kind != parser.DeclFunction || !d.Eligible || d.Deleted {
		return
	}
	index := e.overloads[d.Name]
	e.overloads[d.Name]++
	e.cases++
	e.asm.Fragment(e.testCase(d, index))
}

func (e *TestEmitter) testCase(d parser.Declaration, index int) string {
	args := parser.Synthesize(parser.ParseArgs(d.Args), "arg")

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nTEST_F(%s, %s%d)\n{\n", e.suite, d.Name, index)
	writeDecls(&sb, args.Decls)
	if d.Class != nil {
		sb.WriteString(Construction(*d.Class))
		fmt.Fprintf(&sb, "%stestInstance.%s(%s);\n", indent, d.Name, args.Call())
	} else {
		fmt.Fprintf(&sb, "%s%s(%s);\n", indent, d.Name, args.Call())
	}
	sb.WriteString("}\n")
	return sb.String()
}

// Construction declares `testInstance` from the class's first constructor, or
// default-constructs it when no constructor arguments are known
func Construction(c parser.ClassInfo) string {
	if c.Constructor == nil {
		return indent + c.Name + " testInstance;\n"
	}
	args := parser.Synthesize(parser.ParseArgs(*c.Constructor), "construct_arg")
	if len(args.Names) == 0 {
		return indent + c.Name + " testInstance;\n"
	}
	var sb strings.Builder
	writeDecls(&sb, args.Decls)
	fmt.Fprintf(&sb, "%s%s testInstance{%s};\n", indent, c.Name, args.Call())
	return sb.String()
}

func writeDecls(sb *strings.Builder, decls []string) {
	for _, d := range decls {
		sb.WriteString(indent)
		sb.WriteString(d)
		sb.WriteByte('\n')
	}
}

// Emitted returns how many test cases were written
func (e *TestEmitter) Emitted() int {
	return e.cases
}

// Artifacts returns the test file
func (e *TestEmitter) Artifacts() []Artifact {
	return []Artifact{{Role: "test", Text: e.asm.String()}}
}
