package parser

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanFile(t *testing.T, file, src string) Result {
	t.Helper()
	result, err := Scan(strings.NewReader(src), Options{AccessControl: true}, nil)
	require.NoError(t, err)
	result.File = file
	return result
}

func TestRegistryMergeClasses(t *testing.T) {
	reg := NewRegistry()

	results := []Result{
		scanFile(t, "b/widget_ext.h", "namespace ui {\nclass Widget {\npublic:\n  void Draw();\n  void Resize(int w);\n};\n}\n"),
		scanFile(t, "a/widget.h", "namespace ui {\nclass Widget {\npublic:\n  Widget(int id);\n  void Draw();\n};\n}\nint helper(int x);\n"),
	}

	var wg sync.WaitGroup
	for _, r := range results {
		r := r
		wg.Add(1)
		go func() {
			defer wg.Done()
			reg.Add(r)
		}()
	}
	wg.Wait()

	results = reg.Results()
	require.Len(t, results, 2)
	assert.Equal(t, "a/widget.h", results[0].File)

	classes := reg.MergeClasses()
	require.Len(t, classes, 1)
	widget := classes[0]
	assert.Equal(t, "ui::Widget", widget.Name)
	assert.Equal(t, []string{"widget.h", "widget_ext.h"}, widget.Files)
	require.NotNil(t, widget.Constructor)
	assert.Equal(t, "int id", widget.Constructor.Args)

	var names []string
	for _, m := range widget.Methods {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Draw", "Resize"}, names)

	free := reg.FreeFunctions()
	require.Len(t, free, 1)
	assert.Equal(t, "helper", free[0].Name)
}

func TestQualifiedName(t *testing.T) {
	assert.Equal(t, "Foo", QualifiedName(nil, "Foo"))
	assert.Equal(t, "a::b::Foo", QualifiedName([]string{"a", "b"}, "Foo"))
}
