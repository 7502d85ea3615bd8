package lower

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/roach88/tsbind/internal/syntax"
)

// ErrUnresolvedName is the cause of every LowerError raised for a type
// reference whose name is missing.
var ErrUnresolvedName = errors.New("unresolved type reference name")

// LowerError is a fatal lowering failure tied to a source position.
type LowerError struct {
	Kind    syntax.Kind
	Message string
	Line    int
	Column  int
	Err     error
}

func (e *LowerError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Column, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the cause so errors.Is works against ErrUnresolvedName.
func (e *LowerError) Unwrap() error {
	return e.Err
}

// Diagnostic records one graceful degradation: a node that was lowered to a
// sentinel or dropped instead of being translated.
type Diagnostic struct {
	Kind    syntax.Kind `json:"kind"`
	Message string      `json:"message"`
	Text    string      `json:"text"`
	Line    int         `json:"line"`
	Column  int         `json:"column"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Line, d.Column, d.Kind, d.Message)
}
