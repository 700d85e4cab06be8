package cpp

import (
	"fmt"
	"strings"
)

// Emitter accumulates indented output lines for one render call.
// It tracks the current block depth and a stack of pending closer
// tokens so that nesting stays balanced mechanically: every opened
// block records the closer text to emit, at the depth it was opened.
//
// Emitters are cheap and single-use. Create one per render, extract
// the text, throw it away.
type Emitter struct {
	style   Style
	lines   []string
	depth   int
	closers []closer
}

type closer struct {
	text  string
	depth int
}

// NewEmitter returns an empty emitter using the given style. A nil
// style means tabs, the conventional default; there is no package-level
// formatting state to configure.
func NewEmitter(style Style) *Emitter {
	if style == nil {
		style = TabStyle{}
	}
	return &Emitter{style: style}
}

// Line appends text as a new line at the current depth.
func (e *Emitter) Line(text string) {
	e.lines = append(e.lines, e.style.Indent(e.depth)+text)
}

// Linef appends a formatted line at the current depth.
func (e *Emitter) Linef(format string, args ...any) {
	e.Line(fmt.Sprintf(format, args...))
}

// AppendToLast concatenates text onto the most recently emitted line,
// with no indentation and no line break. Used for trailing punctuation
// when a construct is closed by a separate call than the one that
// opened it.
func (e *Emitter) AppendToLast(text string) error {
	if len(e.lines) == 0 {
		return ErrEmptyBuffer
	}
	e.lines[len(e.lines)-1] += text
	return nil
}

// Blank appends a single empty line.
func (e *Emitter) Blank() {
	e.BlankN(1)
}

// BlankN appends n empty lines.
func (e *Emitter) BlankN(n int) {
	for range n {
		e.lines = append(e.lines, "")
	}
}

// Label emits text one level shallower than the current depth, without
// touching the block stack. Access specifiers like "public:" sit at the
// depth of the enclosing block opener, not of the members they label.
func (e *Emitter) Label(text string) {
	d := e.depth - 1
	if d < 0 {
		d = 0
	}
	e.lines = append(e.lines, e.style.Indent(d)+text)
}

// Block is the handle for an open block. Closing it emits the closer
// token recorded when the block was opened. Close is safe to call more
// than once; only the first call has effect, so a deferred Close and an
// explicit one on the happy path can coexist.
type Block struct {
	e      *Emitter
	closed bool
}

// BeginBlock emits opener as a line at the current depth, then descends
// one level. The closer text is emitted when the returned handle is
// closed, at the depth the opener was emitted.
func (e *Emitter) BeginBlock(opener, closerText string) *Block {
	e.Line(opener)
	e.closers = append(e.closers, closer{text: closerText, depth: e.depth})
	e.depth++
	return &Block{e: e}
}

// Close ends the block, restoring the opening depth and emitting the
// recorded closer token there.
func (b *Block) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	return b.e.EndBlock()
}

// EndBlock pops the most recently opened block, emitting its closer at
// the depth recorded when it was opened.
func (e *Emitter) EndBlock() error {
	if len(e.closers) == 0 {
		return ErrUnbalancedBlock
	}
	c := e.closers[len(e.closers)-1]
	e.closers = e.closers[:len(e.closers)-1]
	e.depth = c.depth
	e.lines = append(e.lines, e.style.Indent(c.depth)+c.text)
	return nil
}

// Scope opens a block, runs fn, and closes the block on every exit
// path, including when fn fails. The closer is always emitted, so a
// failing body can never leave an unbalanced stack behind. A body that
// pops the scope's own block makes the deferred close fail, and that
// failure is reported when fn itself succeeded.
func (e *Emitter) Scope(opener, closerText string, fn func() error) (err error) {
	b := e.BeginBlock(opener, closerText)
	defer func() {
		if cerr := b.Close(); err == nil {
			err = cerr
		}
	}()
	return fn()
}

// Depth returns the number of currently open blocks.
func (e *Emitter) Depth() int {
	return e.depth
}

// Balanced reports whether every opened block has been closed.
func (e *Emitter) Balanced() bool {
	return len(e.closers) == 0
}

// Len returns the number of accumulated lines.
func (e *Emitter) Len() int {
	return len(e.lines)
}

// Text returns the accumulated lines joined by newlines.
func (e *Emitter) Text() string {
	return strings.Join(e.lines, "\n")
}
