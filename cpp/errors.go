package cpp

import (
	"errors"
	"fmt"
)

// ErrUnbalancedBlock is returned when a block is closed with no open
// block on the emitter's stack. It signals a renderer bug, not bad input.
var ErrUnbalancedBlock = errors.New("closing a block with no open block")

// ErrEmptyBuffer is returned by AppendToLast when nothing has been
// emitted yet.
var ErrEmptyBuffer = errors.New("no line to append to")

// IdentifierError reports a name that is not a valid C++ identifier.
// It is raised at entity construction time so malformed models are
// rejected before any rendering starts.
type IdentifierError struct {
	Name string
}

func (e *IdentifierError) Error() string {
	return fmt.Sprintf("invalid C++ identifier: %q", e.Name)
}
