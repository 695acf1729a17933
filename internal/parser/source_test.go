package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLogical(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"single declaration", "void f();", []string{"void f();"}},
		{"one-line class", "class Foo { public: Foo(); };", []string{"class Foo {", " public:", " Foo();", " };"}},
		{"scope operator is not a label", "std::string name();", []string{"std::string name();"}},
		{"base clause is not a label", "class A : public B {", []string{"class A : public B {"}},
		{"closing braces split", "} }", []string{"}", " }"}},
		{"adjacent closing braces split", "}}", []string{"}", "}"}},
		{"class close stays whole", "int f() { return 1; } };", []string{"int f() {", " return 1;", " }", " };"}},
		{"braces inside a literal", `void f(const char* s = "{;}");`, []string{`void f(const char* s = "{;}");`}},
		{"blank", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitLogical(tt.text))
		})
	}
}

func TestStripComments(t *testing.T) {
	text, inBlock := stripComments("int a; /* open", false)
	assert.Equal(t, "int a;  ", text)
	assert.True(t, inBlock)

	text, inBlock = stripComments("still */ int b; // done", inBlock)
	assert.Equal(t, " int b; ", text)
	assert.False(t, inBlock)
}

func TestStripCommentsKeepsLiterals(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"url default", `void open(const char* url = "http://x"); // note`, `void open(const char* url = "http://x"); `},
		{"block marker in string", `void f(const char* s = "/* x */");`, `void f(const char* s = "/* x */");`},
		{"escaped quote", `void f(const char* s = "a\"//"); // c`, `void f(const char* s = "a\"//"); `},
		{"char literal", `void f(char c = '/'); // c`, `void f(char c = '/'); `},
		{"digit separator", `void f(int n = 1'000); // c`, `void f(int n = 1'000); `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, inBlock := stripComments(tt.line, false)
			assert.Equal(t, tt.want, text)
			assert.False(t, inBlock)
		})
	}
}
