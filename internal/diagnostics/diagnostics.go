package diagnostics

import (
	"fmt"
	"sort"
)

// Severity classifies a diagnostic. There are exactly two levels: errors
// (statically wrong programs) and warnings (probably wrong, recoverable).
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Code identifies a diagnostic category.
type Code string

const (
	ErrRedeclared      Code = "U001" // name already declared in this scope
	ErrUndefined       Code = "U002" // undefined variable
	ErrUndefinedFunc   Code = "U003" // call target cannot be resolved
	ErrArity           Code = "U004" // wrong number of arguments
	ErrArgType         Code = "U005" // wrong argument type
	ErrInvalidProperty Code = "U006" // property access on a property-less type
	ErrUnknownMethod   Code = "U007" // method missing on a module handle
	ErrPossiblyNull    Code = "U008" // operand may be null at this point
	ErrInvalidImport   Code = "U009" // name not exported by module
	ErrBadReturn       Code = "U010" // return outside of a function
	ErrBadBreak        Code = "U011" // break/continue outside of a loop
	ErrInOperand       Code = "U012" // right side of `in` is not object/array
	ErrInternal        Code = "U099" // unexpected analyzer fault
	ErrSyntax          Code = "P001" // parse error

	WarnShadow       Code = "U101" // declaration shadows an outer scope
	WarnUnused       Code = "U102" // declared but never used
	WarnBitwise      Code = "U103" // bitwise operator on unexpected type
	WarnAssignType   Code = "U104" // assignment type mismatch
	WarnInGuard      Code = "U105" // union operand to `in`, guard recommended
	WarnNullAccess   Code = "U106" // member access on a possibly-null value
)

// Diagnostic is one analyzer finding. Start and End are byte offsets into
// the source; conversion to line/column happens only at the display
// boundary (CLI renderer, LSP).
type Diagnostic struct {
	Code     Code
	Severity Severity
	Message  string
	Start    int
	End      int

	// Data carries structured quick-fix metadata for diagnostics that
	// editor tooling can repair (nullable `in`/member access). The core
	// never interprets it.
	Data any
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s: %s", d.Severity, d.Code, d.Message)
}

// QuickFixData is the payload attached to nullable-operand diagnostics so
// that an editor-side quick fix can synthesize the missing guard.
type QuickFixData struct {
	Variable string `json:"variable"`
	Operator string `json:"operator"`
}

// New constructs an error-severity diagnostic spanning [start, end).
func New(code Code, start, end int, format string, args ...any) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Start:    start,
		End:      end,
	}
}

// Warn constructs a warning-severity diagnostic spanning [start, end).
func Warn(code Code, start, end int, format string, args ...any) Diagnostic {
	d := New(code, start, end, format, args...)
	d.Severity = SeverityWarning
	return d
}

// Set accumulates diagnostics with deduplication. Multiple traversal paths
// can re-check the same AST node (member expressions especially), so the
// set is keyed on (code, severity, message, span).
type Set struct {
	seen  map[string]bool
	items []Diagnostic
}

func NewSet() *Set {
	return &Set{seen: make(map[string]bool)}
}

// Add inserts d unless an identical diagnostic was already recorded.
func (s *Set) Add(d Diagnostic) {
	key := fmt.Sprintf("%s:%d:%d:%d:%s", d.Code, d.Severity, d.Start, d.End, d.Message)
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.items = append(s.items, d)
}

// AddAll inserts every diagnostic through the dedup filter.
func (s *Set) AddAll(ds []Diagnostic) {
	for _, d := range ds {
		s.Add(d)
	}
}

// Items returns the accumulated diagnostics sorted by position, errors
// before warnings on ties.
func (s *Set) Items() []Diagnostic {
	out := make([]Diagnostic, len(s.items))
	copy(out, s.items)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		if out[i].End != out[j].End {
			return out[i].End < out[j].End
		}
		return out[i].Severity < out[j].Severity
	})
	return out
}

// Len returns the number of unique diagnostics recorded so far.
func (s *Set) Len() int { return len(s.items) }
