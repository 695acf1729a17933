package parser

// LineKind is the role a logical line plays given the active context
type LineKind int

const (
	LineUnrecognized LineKind = iota
	LineComment
	LineDirective
	LineNamespaceOpen
	LineNamespaceClose
	LineClassOpen
	LineAccessSpecifier
	LineConstructorStart
	LineFunctionStart
	LineContinuation
	LineClassClose
)

var lineKindNames = map[LineKind]string{
	LineUnrecognized:     "unrecognized",
	LineComment:          "comment",
	LineDirective:        "directive",
	LineNamespaceOpen:    "namespace-open",
	LineNamespaceClose:   "namespace-close",
	LineClassOpen:        "class-open",
	LineAccessSpecifier:  "access-specifier",
	LineConstructorStart: "constructor-start",
	LineFunctionStart:    "function-start",
	LineContinuation:     "continuation",
	LineClassClose:       "class-close",
}

func (k LineKind) String() string {
	if name, ok := lineKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// AccessLevel is the visibility of a class member
type AccessLevel int

const (
	AccessPrivate AccessLevel = iota
	AccessPublic
)

func (a AccessLevel) String() string {
	if a == AccessPublic {
		return "public"
	}
	return "private"
}

// MarshalText lets reports render the level by name
func (a AccessLevel) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// DeclKind distinguishes completed declarations
type DeclKind int

const (
	DeclFunction DeclKind = iota
	DeclConstructor
)

func (k DeclKind) String() string {
	if k == DeclConstructor {
		return "constructor"
	}
	return "function"
}

func (k DeclKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ClassInfo is a snapshot of the active class at the moment a declaration completed
type ClassInfo struct {
	Name string `json:"name" yaml:"name"`
	// Constructor holds the raw argument text of the first usable constructor,
	// nil when none has been seen yet.
	Constructor *string `json:"constructor,omitempty" yaml:"constructor,omitempty"`
	// ConstructorAccess is meaningful only when Constructor is set
	ConstructorAccess AccessLevel `json:"constructor_access" yaml:"constructor_access"`
}

// Constructed reports whether a constructor signature has been fully seen
func (c ClassInfo) Constructed() bool {
	return c.Constructor != nil
}

// Declaration is a completed constructor or function signature
type Declaration struct {
	Kind       DeclKind    `json:"kind" yaml:"kind"`
	Name       string      `json:"name" yaml:"name"`
	ReturnType string      `json:"return_type,omitempty" yaml:"return_type,omitempty"`
	Args       string      `json:"args" yaml:"args"`
	Namespaces []string    `json:"namespaces,omitempty" yaml:"namespaces,omitempty"`
	Class      *ClassInfo  `json:"class,omitempty" yaml:"class,omitempty"`
	Access     AccessLevel `json:"access" yaml:"access"`
	// Eligible is the access gate result, checked when the signature started
	// and again when it completed.
	Eligible bool `json:"eligible" yaml:"eligible"`
	// Deleted marks `= delete` signatures
	Deleted   bool `json:"deleted,omitempty" yaml:"deleted,omitempty"`
	StartLine int  `json:"start_line" yaml:"start_line"`
	EndLine   int  `json:"end_line" yaml:"end_line"`
}

// Member reports whether the declaration belongs to a class
func (d Declaration) Member() bool {
	return d.Class != nil
}

// Argument is one decomposed parameter
type Argument struct {
	Const    bool
	Type     string
	Modifier string // "*", "&", "&&", "**" or "" for by-value
	Name     string
}

// Pointer reports whether the argument is passed by pointer
func (a Argument) Pointer() bool {
	return len(a.Modifier) > 0 && a.Modifier[0] == '*'
}

// NoteKind classifies best-effort events the machine absorbed instead of failing
type NoteKind string

const (
	NoteClassClosed          NoteKind = "class-closed"
	NoteAccessOutsideClass   NoteKind = "access-outside-class"
	NoteDefinitionSkipped    NoteKind = "definition-skipped"
	NoteConstructorIgnored   NoteKind = "constructor-ignored"
	NoteSignatureAbandoned   NoteKind = "signature-abandoned"
	NoteSignatureUnfinished  NoteKind = "signature-unfinished"
	NoteNestedClassReplaced  NoteKind = "nested-class-replaced"
	NoteNamespaceUnterminate NoteKind = "namespace-unterminated"
)

// Note records something the scan absorbed. Notes never change emitted output.
type Note struct {
	Kind   NoteKind `json:"kind" yaml:"kind"`
	Line   int      `json:"line" yaml:"line"`
	Name   string   `json:"name,omitempty" yaml:"name,omitempty"`
	Detail string   `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Result summarizes one completed scan
type Result struct {
	File         string        `json:"file" yaml:"file"`
	Lines        int           `json:"lines" yaml:"lines"`
	Declarations []Declaration `json:"declarations" yaml:"declarations"`
	Notes        []Note        `json:"notes,omitempty" yaml:"notes,omitempty"`
}
