// exp.go — the public API surface.
//
// exp is a small, embeddable expression language: a recursive-descent parser
// producing a span-annotated AST, and a budgeted tree-walking evaluator
// executing that AST against a host-provided environment under a
// conservative safe-access policy.
//
// The three entry points:
//
//	expr, err := exp.Parse(`user.plan == "free"`)          // text → AST
//	v, err := exp.EvaluateAST(expr, opts)                  // AST → value
//	v, err := exp.Evaluate(`1 + 2 * 3`, nil)               // text → value
//
// Parse failures are *ParseError values carrying a byte index into the
// input; evaluation failures are *EvalError values carrying a stable kind,
// the responsible node's span, and the step counter at failure. The AST is
// immutable after Parse and may be shared across concurrent evaluations,
// each with its own Options.
package exp

// Version of the library.
const Version = "1.0.0"

// Default resource budgets.
const (
	DefaultMaxSteps         = 10_000
	DefaultMaxDepth         = 256
	DefaultMaxArrayElements = 1_000
)

// UnknownIdentPolicy selects what an identifier lookup miss produces.
type UnknownIdentPolicy int

const (
	// ErrorOnUnknown fails evaluation with UnknownIdentifier. The default.
	ErrorOnUnknown UnknownIdentPolicy = iota
	// UndefinedOnUnknown yields the undefined value instead.
	UndefinedOnUnknown
)

// Options configures one evaluation.
//
// Env is the host environment: a mapping from identifier names to admissible
// values, borrowed read-only for the duration of the call and never mutated.
// The name "std" is reserved for the standard library; an environment that
// binds it fails validation with EnvInvalid.
//
// The budget fields are honored literally: MaxSteps of zero permits no steps
// at all. Use DefaultOptions for the standard budgets and override from
// there.
type Options struct {
	Env               map[string]Value
	MaxSteps          int
	MaxDepth          int
	MaxArrayElements  int
	UnknownIdentifier UnknownIdentPolicy
}

// DefaultOptions returns an Options with an empty environment, the default
// budgets and the default unknown-identifier policy.
func DefaultOptions() *Options {
	return &Options{
		MaxSteps:         DefaultMaxSteps,
		MaxDepth:         DefaultMaxDepth,
		MaxArrayElements: DefaultMaxArrayElements,
	}
}

// Parse parses a single expression: leading trivia, the expression, trailing
// trivia, end of input. Leftover non-trivia input is a parse error. The
// returned error, when non-nil, is a *ParseError.
func Parse(input string) (Expr, error) {
	e, perr := parseExpr(input)
	if perr != nil {
		return nil, perr
	}
	return e, nil
}

// EvaluateAST evaluates a parsed expression under opts. A nil opts means
// DefaultOptions. The returned error, when non-nil, is an *EvalError.
func EvaluateAST(e Expr, opts *Options) (Value, error) {
	if e == nil {
		return Undefined, &EvalError{Kind: ErrBadOperator, Message: "nil expression"}
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	v, eerr := evaluateAST(e, opts)
	if eerr != nil {
		return Undefined, eerr
	}
	return v, nil
}

// Evaluate parses and evaluates input. A parse failure surfaces as an
// *EvalError with Kind ErrParse and the failure's byte index; all other
// failures follow EvaluateAST.
func Evaluate(input string, opts *Options) (Value, error) {
	e, perr := parseExpr(input)
	if perr != nil {
		return Undefined, &EvalError{
			Kind:    ErrParse,
			Message: perr.Message,
			Index:   perr.Index,
		}
	}
	return EvaluateAST(e, opts)
}
