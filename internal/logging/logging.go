package logging

import (
	"io"
	"os"
	"strings"

	"github.com/phuslu/log"
)

// Setup configures the global logger. format is "console" or "json".
func Setup(level, format string, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	lvl := log.ParseLevel(strings.ToLower(level))

	var writer log.Writer
	if strings.EqualFold(format, "json") {
		writer = &log.IOWriter{Writer: w}
	} else {
		writer = &log.ConsoleWriter{
			Writer:         w,
			ColorOutput:    isTerminal(w),
			EndWithMessage: true,
		}
	}

	log.DefaultLogger = log.Logger{
		Level:      lvl,
		TimeFormat: "15:04:05",
		Writer:     writer,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && log.IsTerminal(f.Fd())
}
