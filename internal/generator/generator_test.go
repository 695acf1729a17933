package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hdrgen/internal/config"
	"hdrgen/internal/parser"
	"hdrgen/internal/scanner"
)

const fooHeader = "class Foo { public: Foo(); void Bar(int x); };\n"

func newTestGenerator(t *testing.T, files map[string]string) (*Generator, afero.Fs) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for name, text := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(text), 0o644))
	}
	v := viper.New()
	config.SetDefaults(v)
	cfg, err := config.New(v)
	require.NoError(t, err)
	return New(fsys, cfg), fsys
}

func readFile(t *testing.T, fsys afero.Fs, name string) string {
	t.Helper()
	data, err := afero.ReadFile(fsys, name)
	require.NoError(t, err)
	return string(data)
}

func TestOutputPaths(t *testing.T) {
	assert.Equal(t, "test_widget.cpp", TestOutputPath("src/widget.h", "test_", ""))
	assert.Equal(t, "out/test_widget.cpp", TestOutputPath("src/widget.h", "test_", "out"))

	h, s := StubOutputPaths("src/widget.hxx", "unittest_stub-", "", "")
	assert.Equal(t, "unittest_stub-widget.h", h)
	assert.Equal(t, "unittest_stub-widget.cpp", s)

	h, s = StubOutputPaths("src/widget.h", "unittest_stub-", "gen", "")
	assert.Equal(t, "gen/unittest_stub-widget.h", h)
	assert.Equal(t, "gen/unittest_stub-widget.cpp", s)

	h, s = StubOutputPaths("src/widget.h", "unittest_stub-", "gen", "fakes/widget_fake")
	assert.Equal(t, "fakes/widget_fake.h", h)
	assert.Equal(t, "fakes/widget_fake.cpp", s)
}

func TestGeneratorTest(t *testing.T) {
	g, fsys := newTestGenerator(t, map[string]string{"/src/foo.h": fooHeader})

	summary, err := g.Test(context.Background(), TestJob{Input: "/src/foo.h", Output: "/out/test_foo.cpp"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/out/test_foo.cpp"}, summary.Outputs)
	assert.Equal(t, 2, summary.Declarations)
	assert.Equal(t, 1, summary.Emitted)

	text := readFile(t, fsys, "/out/test_foo.cpp")
	assert.Contains(t, text, "#include \"foo.h\"\n")
	assert.Contains(t, text, "TEST_F(fooTest, Bar0)")
	assert.Contains(t, text, "    Foo testInstance;\n    testInstance.Bar(arg0);\n")
}

func TestGeneratorTestHonorsAccessControl(t *testing.T) {
	src := "class Foo {\n    void hidden();\npublic:\n    void shown();\n};\n"
	g, fsys := newTestGenerator(t, map[string]string{"/foo.h": src})

	_, err := g.Test(context.Background(), TestJob{Input: "/foo.h", Output: "/a.cpp"})
	require.NoError(t, err)
	assert.NotContains(t, readFile(t, fsys, "/a.cpp"), "hidden")

	g.cfg.AccessControl = false
	_, err = g.Test(context.Background(), TestJob{Input: "/foo.h", Output: "/b.cpp"})
	require.NoError(t, err)
	assert.Contains(t, readFile(t, fsys, "/b.cpp"), "TEST_F(fooTest, hidden0)")
}

func TestGeneratorStub(t *testing.T) {
	g, fsys := newTestGenerator(t, map[string]string{"/src/foo.hxx": fooHeader})

	summary, err := g.Stub(context.Background(), StubJob{Input: "/src/foo.hxx", Header: "/gen/fake_foo.h", Source: "/gen/fake_foo.cpp"})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Emitted)

	header := readFile(t, fsys, "/gen/fake_foo.h")
	assert.Contains(t, header, "#ifndef __FAKE_FOO_H__\n")
	assert.Contains(t, header, "void stub_Foo_Bar(void* obj, int x);\n")

	source := readFile(t, fsys, "/gen/fake_foo.cpp")
	assert.Contains(t, source, "#include \"fake_foo.h\"\n")
	assert.Contains(t, source, "void stub_Foo_Bar(void* obj, int x)\n{\n    (void)obj;\n    (void)x;\n}\n")
}

func TestGeneratorRejectsSuffix(t *testing.T) {
	g, fsys := newTestGenerator(t, map[string]string{"/src/foo.hxx": fooHeader})

	_, err := g.Test(context.Background(), TestJob{Input: "/src/foo.hxx", Output: "/out.cpp"})
	assert.ErrorIs(t, err, scanner.ErrUnsupportedSuffix)

	exists, err := afero.Exists(fsys, "/out.cpp")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGeneratorMissingInputWritesNothing(t *testing.T) {
	g, fsys := newTestGenerator(t, nil)

	_, err := g.Stub(context.Background(), StubJob{Input: "/gone.h", Header: "/s.h", Source: "/s.cpp"})
	require.Error(t, err)

	exists, _ := afero.Exists(fsys, "/s.h")
	assert.False(t, exists)
}

func TestGeneratorBatch(t *testing.T) {
	files := make(map[string]string)
	var inputs []string
	for i := 0; i < 10; i++ {
		name := fmt.Sprintf("/src/mod%d.h", i)
		files[name] = fmt.Sprintf("void run%d(int n);\nvoid stop%d();\n", i, i)
		inputs = append(inputs, name)
	}
	g, fsys := newTestGenerator(t, files)
	g.cfg.Workers = 3

	tests, err := g.TestAll(context.Background(), inputs, "/out")
	require.NoError(t, err)
	require.Len(t, tests, 10)
	for i, s := range tests {
		assert.Equal(t, inputs[i], s.Input)
		assert.Equal(t, 2, s.Emitted)
	}
	assert.Contains(t, readFile(t, fsys, "/out/test_mod7.cpp"), "TEST_F(mod7Test, run70)")

	stubs, err := g.StubAll(context.Background(), inputs, "/out")
	require.NoError(t, err)
	require.Len(t, stubs, 10)
	assert.Contains(t, readFile(t, fsys, "/out/unittest_stub-mod3.cpp"), "void stub_stop3()\n{\n}\n")
}

func TestGeneratorBatchRejectsCollidingOutputs(t *testing.T) {
	g, fsys := newTestGenerator(t, map[string]string{
		"/a/widget.h": "void fromA();\n",
		"/b/widget.h": "void fromB();\n",
	})
	inputs := []string{"/a/widget.h", "/b/widget.h"}

	_, err := g.TestAll(context.Background(), inputs, "/gen")
	require.ErrorIs(t, err, ErrOutputCollision)
	assert.Contains(t, err.Error(), "/gen/test_widget.cpp")

	_, err = g.StubAll(context.Background(), inputs, "/gen")
	require.ErrorIs(t, err, ErrOutputCollision)

	exists, err := afero.DirExists(fsys, "/gen")
	require.NoError(t, err)
	assert.False(t, exists)
}

// failingFs refuses to open one path for writing
type failingFs struct {
	afero.Fs
	path string
}

func (f failingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if name == f.path {
		return nil, errors.New("disk full")
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func TestGeneratorFailedWriteRemovesEarlierOutputs(t *testing.T) {
	base, fsys := newTestGenerator(t, map[string]string{"/src/foo.h": fooHeader})
	g := New(failingFs{Fs: fsys, path: "/gen/s.cpp"}, base.cfg)

	_, err := g.Stub(context.Background(), StubJob{Input: "/src/foo.h", Header: "/gen/s.h", Source: "/gen/s.cpp"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	exists, err := afero.Exists(fsys, "/gen/s.h")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGeneratorBatchStopsOnError(t *testing.T) {
	g, _ := newTestGenerator(t, map[string]string{"/a.h": "void a();\n"})

	_, err := g.TestAll(context.Background(), []string{"/a.h", "/missing.h"}, "/out")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/missing.h")
}

func TestGeneratorCancelled(t *testing.T) {
	g, _ := newTestGenerator(t, map[string]string{"/a.h": "void a();\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.TestAll(ctx, []string{"/a.h"}, "/out")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestGeneratorScan(t *testing.T) {
	g, _ := newTestGenerator(t, map[string]string{
		"/a.h": "namespace n {\nclass A {\npublic:\n  void f();\n};\n}\n",
		"/b.h": "int g(int x);\n",
	})
	reg := parser.NewRegistry()

	require.NoError(t, g.Scan(context.Background(), []string{"/b.h", "/a.h"}, reg))

	results := reg.Results()
	require.Len(t, results, 2)
	assert.Equal(t, "/a.h", results[0].File)
	classes := reg.MergeClasses()
	require.Len(t, classes, 1)
	assert.Equal(t, "n::A", classes[0].Name)
}
