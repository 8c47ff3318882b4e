package cst

import "fmt"

// InvariantError reports a breach of a core invariant (lossless parse,
// formatting idempotence). It indicates a bug in the formatter itself:
// processing of the affected file must abort loudly and no output may be
// written. It is never downgraded to a diagnostic.
type InvariantError struct {
	Stage string // "parse", "canon", "print"
	Msg   string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("internal invariant violated in %s: %s", e.Stage, e.Msg)
}
