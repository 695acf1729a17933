package parser

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/afero"
)

const maxLineBytes = 1 << 20

// Scan feeds every line of r through a fresh Machine. The only error is a read failure.
func Scan(r io.Reader, opts Options, h Handler) (Result, error) {
	m := NewMachine(opts, h)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		m.Feed(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return Result{}, err
	}
	return m.Finish(), nil
}

// ParseFile scans a single header
func ParseFile(fs afero.Fs, filename string, opts Options, h Handler) (Result, error) {
	f, err := fs.Open(filename)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	result, err := Scan(f, opts, h)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", filename, err)
	}
	result.File = filename
	return result, nil
}
