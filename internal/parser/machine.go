package parser

import (
	"regexp"
	"strings"
)

// DefaultMaxContinuation bounds how many lines a signature may span
const DefaultMaxContinuation = 64

// Options configure one scan session
type Options struct {
	// AccessControl limits eligibility to public members
	AccessControl bool
	// MaxContinuation is the lookahead bound for multi-line signatures
	MaxContinuation int
}

// Handler receives scan events in source order
type Handler interface {
	EnterNamespace(name string)
	LeaveNamespace(name string)
	Declare(d Declaration)
}

type nopHandler struct{}

func (nopHandler) EnterNamespace(string) {}
func (nopHandler) LeaveNamespace(string) {}
func (nopHandler) Declare(Declaration)   {}

// AccessGate decides whether a declaration may be emitted as a test. It passes
// when filtering is disabled, outside any class, or for public members.
func AccessGate(accessControl, inClass bool, level AccessLevel) bool {
	return !accessControl || !inClass || level == AccessPublic
}

// scanMode is what the machine is doing with the next logical line
type scanMode interface {
	mode() string
}

type scanning struct{}

// collecting accumulates a signature whose parameter list is still open
type collecting struct {
	sig *signature
}

// skippingBody consumes an inline definition until its braces balance
type skippingBody struct {
	depth int
}

func (scanning) mode() string      { return "scanning" }
func (*collecting) mode() string   { return "collecting" }
func (*skippingBody) mode() string { return "skipping-body" }

type classRecord struct {
	name        string
	access      AccessLevel
	ctorArgs    *string
	ctorAccess  AccessLevel
	ctorPattern *regexp.Regexp
}

func (c *classRecord) info() *ClassInfo {
	info := &ClassInfo{Name: c.name, ConstructorAccess: c.ctorAccess}
	if c.ctorArgs != nil {
		args := *c.ctorArgs
		info.Constructor = &args
	}
	return info
}

// signature is built fresh per declaration and consumed once at completion
type signature struct {
	kind        DeclKind
	name        string
	returnType  string
	args        strings.Builder
	class       *classRecord
	gate        bool
	startLine   int
	parenClosed bool
	deleted     bool
	lines       int
}

// appendArgs concatenates trimmed argument fragments
func (s *signature) appendArgs(fragment string) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return
	}
	if s.args.Len() > 0 {
		prev := s.args.String()
		if !strings.HasSuffix(prev, ",") && !strings.HasPrefix(fragment, ",") {
			s.args.WriteByte(' ')
		}
	}
	s.args.WriteString(fragment)
}

// Machine tracks namespace, class and pending-signature context over a header
type Machine struct {
	opts       Options
	handler    Handler
	namespaces Stack[string]
	class      *classRecord
	mode       scanMode
	opaque     int  // non-namespace blocks open outside any class
	braceOwed  bool // a namespace was opened with its `{` on a later line
	inComment  bool
	line       int
	result     Result
}

// NewMachine creates a machine that reports to h
func NewMachine(opts Options, h Handler) *Machine {
	if opts.MaxContinuation <= 0 {
		opts.MaxContinuation = DefaultMaxContinuation
	}
	if h == nil {
		h = nopHandler{}
	}
	return &Machine{
		opts:    opts,
		handler: h,
		mode:    scanning{},
	}
}

// Feed processes one physical line. Nothing on a line is ever an error.
func (m *Machine) Feed(line string) {
	m.line++
	text, inComment := stripComments(line, m.inComment)
	m.inComment = inComment
	for _, seg := range splitLogical(text) {
		m.step(seg)
	}
}

// Finish closes the session and returns what was seen
func (m *Machine) Finish() Result {
	if c, ok := m.mode.(*collecting); ok {
		m.note(NoteSignatureUnfinished, c.sig.name, "parameter list never closed")
	}
	for _, name := range m.namespaces.Items() {
		m.note(NoteNamespaceUnterminate, name, "")
	}
	m.result.Lines = m.line
	return m.result
}

// Scope exposes the context the classifier sees for the next line
func (m *Machine) Scope() Scope {
	s := Scope{NamespaceDepth: m.namespaces.Depth()}
	if _, ok := m.mode.(*collecting); ok {
		s.Pending = true
	}
	if m.class != nil {
		s.InClass = true
		s.ClassName = m.class.name
		s.Constructor = m.class.ctorPattern
	}
	return s
}

func (m *Machine) step(seg string) {
	switch mode := m.mode.(type) {
	case *collecting:
		m.continueSignature(mode.sig, seg)
		return
	case *skippingBody:
		m.skipBody(mode, seg)
		return
	}

	if m.braceOwed {
		m.braceOwed = false
		if strings.TrimSpace(seg) == "{" {
			return
		}
	}

	switch Classify(seg, m.Scope()) {
	case LineNamespaceOpen:
		name, _ := MatchNamespaceOpen(seg)
		m.namespaces.Push(name)
		m.braceOwed = !strings.Contains(seg, "{")
		m.handler.EnterNamespace(name)
	case LineNamespaceClose:
		if m.opaque > 0 {
			m.opaque--
			return
		}
		if name, ok := m.namespaces.Pop(); ok {
			m.handler.LeaveNamespace(name)
		}
	case LineClassOpen:
		m.openClass(seg)
	case LineAccessSpecifier:
		level, _ := MatchAccessSpecifier(seg)
		if m.class == nil {
			m.note(NoteAccessOutsideClass, "", strings.TrimSpace(seg))
			return
		}
		m.class.access = level
	case LineConstructorStart:
		rest, _ := MatchConstructorStart(seg, m.class.ctorPattern)
		m.start(&signature{kind: DeclConstructor, name: m.class.name, class: m.class}, rest, seg)
	case LineFunctionStart:
		fm, _ := MatchFunctionStart(seg)
		m.start(&signature{kind: DeclFunction, name: fm.Name, returnType: fm.ReturnType, class: m.class}, fm.Rest, seg)
	case LineClassClose:
		m.leaveClass("")
	case LineUnrecognized:
		if m.class == nil {
			m.opaque += strings.Count(seg, "{") - strings.Count(seg, "}")
			if m.opaque < 0 {
				m.opaque = 0
			}
		}
	}
}

func (m *Machine) gate() bool {
	if m.class == nil {
		return AccessGate(m.opts.AccessControl, false, AccessPublic)
	}
	return AccessGate(m.opts.AccessControl, true, m.class.access)
}

func (m *Machine) openClass(seg string) {
	name, isStruct, _ := MatchClassOpen(seg)
	if !ClassBodyOpens(seg) {
		return
	}
	if m.class != nil {
		m.note(NoteNestedClassReplaced, m.class.name, "replaced by "+name)
	}
	access := AccessPrivate
	if isStruct {
		access = AccessPublic
	}
	m.class = &classRecord{
		name:        name,
		access:      access,
		ctorPattern: constructorPattern(name),
	}
}

func (m *Machine) leaveClass(detail string) {
	m.note(NoteClassClosed, m.class.name, detail)
	m.class = nil
}

func (m *Machine) start(sig *signature, rest, seg string) {
	sig.startLine = m.line
	sig.gate = m.gate()
	m.mode = &collecting{sig: sig}
	m.consume(sig, rest)
	if _, ok := m.mode.(scanning); ok && m.class != nil && IsClassClose(seg) {
		m.leaveClass("")
	}
}

func (m *Machine) continueSignature(sig *signature, seg string) {
	sig.lines++
	if sig.lines > m.opts.MaxContinuation {
		m.note(NoteSignatureAbandoned, sig.name, "lookahead bound reached")
		m.mode = scanning{}
		m.step(seg)
		return
	}
	m.consume(sig, seg)
}

// consume feeds text after the opening parenthesis (or a continuation line)
// into sig and completes it once `)` ... `;` has been seen
func (m *Machine) consume(sig *signature, text string) {
	if !sig.parenClosed {
		idx := strings.IndexByte(text, ')')
		if idx < 0 {
			sig.appendArgs(text)
			return
		}
		sig.appendArgs(text[:idx])
		sig.parenClosed = true
		text = text[idx+1:]
	}
	semi := strings.IndexByte(text, ';')
	brace := strings.IndexByte(text, '{')
	switch {
	case brace >= 0 && (semi < 0 || brace < semi):
		m.note(NoteDefinitionSkipped, sig.name, "inline definition")
		body := &skippingBody{}
		m.mode = body
		m.skipBody(body, text[brace:])
	case semi >= 0:
		sig.deleted = deletedPattern.MatchString(text[:semi])
		m.complete(sig)
	}
}

func (m *Machine) skipBody(body *skippingBody, seg string) {
	if m.class != nil && IsClassClose(seg) {
		m.leaveClass("inside a function body")
	}
	body.depth += strings.Count(seg, "{") - strings.Count(seg, "}")
	if body.depth <= 0 {
		m.mode = scanning{}
	}
}

func (m *Machine) complete(sig *signature) {
	m.mode = scanning{}

	decl := Declaration{
		Kind:       sig.kind,
		Name:       sig.name,
		ReturnType: sig.returnType,
		Args:       sig.args.String(),
		Namespaces: m.namedNamespaces(),
		Access:     AccessPublic,
		Eligible:   sig.gate && m.gate(),
		Deleted:    sig.deleted,
		StartLine:  sig.startLine,
		EndLine:    m.line,
	}
	if c := sig.class; c != nil {
		decl.Access = c.access
		if sig.kind == DeclConstructor {
			switch {
			case c.ctorArgs != nil:
				m.note(NoteConstructorIgnored, c.name, "only the first constructor is used")
			case !sig.deleted:
				args := decl.Args
				c.ctorArgs = &args
				c.ctorAccess = c.access
			}
		}
		decl.Class = c.info()
	}

	m.result.Declarations = append(m.result.Declarations, decl)
	m.handler.Declare(decl)
}

func (m *Machine) namedNamespaces() []string {
	var names []string
	for _, name := range m.namespaces.Items() {
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

func (m *Machine) note(kind NoteKind, name, detail string) {
	m.result.Notes = append(m.result.Notes, Note{Kind: kind, Line: m.line, Name: name, Detail: detail})
}
