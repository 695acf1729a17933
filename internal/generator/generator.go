package generator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/phuslu/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"hdrgen/internal/config"
	"hdrgen/internal/emit"
	"hdrgen/internal/parser"
	"hdrgen/internal/scanner"
)

// Generator runs scans over headers on a filesystem and writes the artifacts
type Generator struct {
	fs  afero.Fs
	cfg *config.Config
}

// New creates a generator
func New(fsys afero.Fs, cfg *config.Config) *Generator {
	return &Generator{fs: fsys, cfg: cfg}
}

// TestJob names one header and the test file to produce. An empty Output
// derives the default name.
type TestJob struct {
	Input  string
	Output string
}

// StubJob names one header and the stub pair to produce
type StubJob struct {
	Input  string
	Header string
	Source string
}

// Summary describes one completed generation
type Summary struct {
	Input        string        `json:"input" yaml:"input"`
	Outputs      []string      `json:"outputs" yaml:"outputs"`
	Declarations int           `json:"declarations" yaml:"declarations"`
	Emitted      int           `json:"emitted" yaml:"emitted"`
	Notes        []parser.Note `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func (g *Generator) options() parser.Options {
	return parser.Options{
		AccessControl:   g.cfg.AccessControl,
		MaxContinuation: g.cfg.MaxContinuationLines,
	}
}

func (g *Generator) checkSuffix(input string, suffixes []string) error {
	s := scanner.NewScanner(g.fs, suffixes, nil)
	if !s.IsHeader(input) {
		return fmt.Errorf("%s: %w", input, scanner.ErrUnsupportedSuffix)
	}
	return nil
}

// Test scans job.Input and writes its gtest skeleton
func (g *Generator) Test(ctx context.Context, job TestJob) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	if err := g.checkSuffix(job.Input, g.cfg.Test.Suffixes); err != nil {
		return Summary{}, err
	}
	if job.Output == "" {
		job.Output = TestOutputPath(job.Input, g.cfg.Test.OutputPrefix, "")
	}

	e := emit.NewTestEmitter(emit.TestOptions{Header: job.Input, Includes: g.cfg.Test.Includes})
	return g.run(job.Input, e, []string{job.Output})
}

// Stub scans job.Input and writes its stub header and source
func (g *Generator) Stub(ctx context.Context, job StubJob) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	if err := g.checkSuffix(job.Input, g.cfg.Stub.Suffixes); err != nil {
		return Summary{}, err
	}
	if job.Header == "" || job.Source == "" {
		job.Header, job.Source = StubOutputPaths(job.Input, g.cfg.Stub.OutputPrefix, "", "")
	}

	e := emit.NewStubEmitter(emit.StubOptions{
		HeaderName:     job.Header,
		Includes:       g.cfg.Stub.Includes,
		FunctionPrefix: g.cfg.Stub.FunctionPrefix,
	})
	return g.run(job.Input, e, []string{job.Header, job.Source})
}

// run parses input into e and writes e's artifacts to outputs in order. All
// artifacts are rendered before the first write, and a failed write removes
// the outputs already written, so a failure leaves no outputs behind.
func (g *Generator) run(input string, e emit.Emitter, outputs []string) (Summary, error) {
	result, err := parser.ParseFile(g.fs, input, g.options(), e)
	if err != nil {
		return Summary{}, fmt.Errorf("scan %s: %w", input, err)
	}

	for _, note := range result.Notes {
		log.Debug().Str("file", input).Int("line", note.Line).
			Str("kind", string(note.Kind)).Str("name", note.Name).Msg(note.Detail)
	}

	artifacts := e.Artifacts()
	if len(artifacts) != len(outputs) {
		return Summary{}, fmt.Errorf("%s: %d artifacts for %d outputs", input, len(artifacts), len(outputs))
	}
	for i, a := range artifacts {
		if err := g.write(outputs[i], a.Text); err != nil {
			g.remove(outputs[:i])
			return Summary{}, err
		}
		log.Info().Str("input", input).Str("output", outputs[i]).Str("role", a.Role).
			Int("emitted", e.Emitted()).Msg("artifact written")
	}

	return Summary{
		Input:        input,
		Outputs:      outputs,
		Declarations: len(result.Declarations),
		Emitted:      e.Emitted(),
		Notes:        result.Notes,
	}, nil
}

func (g *Generator) write(path, text string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := g.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(g.fs, path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (g *Generator) remove(paths []string) {
	for _, path := range paths {
		if err := g.fs.Remove(path); err != nil {
			log.Warn().Err(err).Str("output", path).Msg("partial output left behind")
		}
	}
}

// Scan parses headers into reg without generating anything
func (g *Generator) Scan(ctx context.Context, inputs []string, reg *parser.Registry) error {
	return g.each(ctx, len(inputs), func(ctx context.Context, i int) error {
		result, err := parser.ParseFile(g.fs, inputs[i], g.options(), nil)
		if err != nil {
			return fmt.Errorf("scan %s: %w", inputs[i], err)
		}
		reg.Add(result)
		log.Debug().Str("file", inputs[i]).Int("declarations", len(result.Declarations)).Msg("scanned")
		return nil
	})
}

// TestAll generates a test file per input into outDir. Inputs whose output
// names collide are rejected before anything is written.
func (g *Generator) TestAll(ctx context.Context, inputs []string, outDir string) ([]Summary, error) {
	output := func(input string) string {
		return TestOutputPath(input, g.cfg.Test.OutputPrefix, outDir)
	}
	if err := checkCollisions(inputs, func(input string) []string {
		return []string{output(input)}
	}); err != nil {
		return nil, err
	}

	summaries := make([]Summary, len(inputs))
	err := g.each(ctx, len(inputs), func(ctx context.Context, i int) error {
		s, err := g.Test(ctx, TestJob{Input: inputs[i], Output: output(inputs[i])})
		summaries[i] = s
		return err
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// StubAll generates a stub pair per input into outDir. Inputs whose output
// names collide are rejected before anything is written.
func (g *Generator) StubAll(ctx context.Context, inputs []string, outDir string) ([]Summary, error) {
	if err := checkCollisions(inputs, func(input string) []string {
		header, source := StubOutputPaths(input, g.cfg.Stub.OutputPrefix, outDir, "")
		return []string{header, source}
	}); err != nil {
		return nil, err
	}

	summaries := make([]Summary, len(inputs))
	err := g.each(ctx, len(inputs), func(ctx context.Context, i int) error {
		header, source := StubOutputPaths(inputs[i], g.cfg.Stub.OutputPrefix, outDir, "")
		s, err := g.Stub(ctx, StubJob{Input: inputs[i], Header: header, Source: source})
		summaries[i] = s
		return err
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// each runs fn for 0..n-1 on at most cfg.Workers goroutines. The first
// error cancels the jobs not yet started.
func (g *Generator) each(ctx context.Context, n int, fn func(context.Context, int) error) error {
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(g.cfg.Workers, 1))
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		eg.Go(func() error {
			return fn(gctx, i)
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
