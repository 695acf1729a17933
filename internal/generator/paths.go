package generator

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrOutputCollision is returned when two inputs of a batch would write the
// same output file
var ErrOutputCollision = errors.New("inputs share an output path")

// baseName strips directories and the last extension: `src/a/widget.h` -> `widget`
func baseName(input string) string {
	base := filepath.Base(input)
	if ext := filepath.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

// TestOutputPath is where a header's test file goes when no output is named
func TestOutputPath(input, prefix, outDir string) string {
	return filepath.Join(outDir, prefix+baseName(input)+".cpp")
}

// StubOutputPaths returns the header and source paths of a stub pair. An
// explicit base overrides the derived `<prefix><name>` base.
func StubOutputPaths(input, prefix, outDir, base string) (header, source string) {
	if base == "" {
		base = filepath.Join(outDir, prefix+baseName(input))
	}
	return base + ".h", base + ".cpp"
}

// checkCollisions fails when outputs maps two inputs to the same path
func checkCollisions(inputs []string, outputs func(string) []string) error {
	owners := make(map[string]string)
	for _, input := range inputs {
		for _, out := range outputs(input) {
			key := filepath.Clean(out)
			if owner, ok := owners[key]; ok {
				return fmt.Errorf("%s and %s both write %s: %w", owner, input, key, ErrOutputCollision)
			}
			owners[key] = input
		}
	}
	return nil
}
