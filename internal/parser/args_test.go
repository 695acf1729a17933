package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArg(t *testing.T) {
	tests := []struct {
		text string
		want Argument
	}{
		{"int x", Argument{Type: "int", Name: "x"}},
		{"const std::string& name", Argument{Const: true, Type: "std::string", Modifier: "&", Name: "name"}},
		{"double* b", Argument{Type: "double", Modifier: "*", Name: "b"}},
		{"char**argv", Argument{Type: "char", Modifier: "**", Name: "argv"}},
		{"int&& r", Argument{Type: "int", Modifier: "&&", Name: "r"}},
		{"int", Argument{Type: "int"}},
		{"unsigned int", Argument{Type: "unsigned int"}},
		{"Widget", Argument{Type: "Widget"}},
		{"int timeout = 30", Argument{Type: "int", Name: "timeout"}},
		{"int values[]", Argument{Type: "int", Modifier: "*", Name: "values"}},
		{"int[16]", Argument{Type: "int", Modifier: "*"}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ParseArg(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, text := range []string{"", "...", "void (*cb)(int)"} {
		_, ok := ParseArg(text)
		assert.False(t, ok, text)
	}
}

func TestParseArgsDropsVoidMarker(t *testing.T) {
	assert.Empty(t, ParseArgs("void"))
	assert.Empty(t, ParseArgs(""))

	args := ParseArgs("void* data, int n")
	require.Len(t, args, 2)
	assert.Equal(t, "void", args[0].Type)
	assert.True(t, args[0].Pointer())
}

func TestSynthesize(t *testing.T) {
	s := Synthesize(ParseArgs("int a, double* b"), "construct_arg")

	assert.Equal(t, []string{
		"int construct_arg0;",
		"double* construct_arg1 = nullptr;",
	}, s.Decls)
	assert.Equal(t, "construct_arg0, construct_arg1", s.Call())
}

func TestSynthesizeReferences(t *testing.T) {
	s := Synthesize(ParseArgs("const Config& cfg, Node*& head"), "arg")

	assert.Equal(t, []string{
		"Config arg0;",
		"Node* arg1 = nullptr;",
	}, s.Decls)
}

func TestSynthesizedCallKeepsArgumentCount(t *testing.T) {
	lists := []string{
		"int a",
		"int a, double* b",
		"const std::string& s, char** argv, unsigned long n",
		"void",
		"",
	}

	for _, raw := range lists {
		t.Run(raw, func(t *testing.T) {
			want := 0
			for _, part := range SplitArgs(raw) {
				if part != "void" {
					want++
				}
			}
			call := Synthesize(ParseArgs(raw), "arg").Call()
			got := 0
			if call != "" {
				got = len(strings.Split(call, ","))
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestNormalizeParams(t *testing.T) {
	assert.Equal(t, "int a, double* b", NormalizeParams("int   a,double* b = nullptr"))
	assert.Equal(t, "", NormalizeParams(" void "))
	assert.Equal(t, "", NormalizeParams(""))
}
