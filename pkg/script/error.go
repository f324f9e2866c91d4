package script

// Error reasons are enumerated here to be used in the Err struct,
// the error type shared across the script runtime's APIs.
const (
	ErrUnknown = 0
	ErrSyntax  = 1
	ErrRuntime = 2
	ErrSystem  = 40
	ErrAssert  = 100
)

// Err represents possible errors the reader and the embedding
// surface may return, carrying a human-readable message.
type Err struct {
	reason  int
	message string
}

func (e Err) Error() string {
	return e.message
}

// EvalError is the evaluator's failure channel. Unlike Err it carries
// no message: the payload is the offending expression itself, rendered
// back to S-expression text on demand.
type EvalError struct {
	Heap *Heap
	Expr Handle
}

func (e EvalError) Error() string {
	return "cannot evaluate " + e.Heap.Render(e.Expr)
}
