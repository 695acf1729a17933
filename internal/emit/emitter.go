package emit

import "hdrgen/internal/parser"

// Emitter turns scan events into generated artifacts
type Emitter interface {
	parser.Handler
	Artifacts() []Artifact
	Emitted() int
}

var (
	_ Emitter = (*TestEmitter)(nil)
	_ Emitter = (*StubEmitter)(nil)
)
