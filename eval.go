// eval.go — the tree-walking evaluator.
//
// A single evaluation carries a mutable context (environment, budgets,
// counters) threaded through all recursive visits. Failures abort through an
// internal panic recovered at the public API boundary; the panic value never
// escapes the package.
//
// Ordering guarantees: binary operands evaluate strictly left before right
// (short-circuit operators skip the right operand entirely when decided),
// array elements and call arguments evaluate left to right, and the untaken
// branch of a conditional is never visited.
package exp

import "fmt"

// forbiddenMembers are never readable regardless of the object's shape.
var forbiddenMembers = map[string]bool{
	"__proto__":   true,
	"prototype":   true,
	"constructor": true,
}

type evalCtx struct {
	env   map[string]Value
	opts  *Options
	steps int
	depth int
}

// evalAbort carries an *EvalError up to the evaluateAST recover.
type evalAbort struct{ err *EvalError }

func (ctx *evalCtx) fail(kind ErrorKind, sp Span, format string, args ...any) {
	panic(evalAbort{&EvalError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Span:    &sp,
		Steps:   ctx.steps,
	}})
}

func evaluateAST(e Expr, opts *Options) (Value, *EvalError) {
	if verr := validateEnv(opts.Env); verr != nil {
		return Undefined, verr
	}
	ctx := &evalCtx{env: opts.Env, opts: opts}

	var result Value
	var abort *EvalError
	func() {
		defer func() {
			if r := recover(); r != nil {
				ab, ok := r.(evalAbort)
				if !ok {
					panic(r)
				}
				abort = ab.err
			}
		}()
		result = ctx.eval(e)
	}()
	if abort != nil {
		return Undefined, abort
	}
	return result, nil
}

// eval dispatches on the node tag. The step counter increments on entry to
// every visit; the depth counter tracks the recursion.
func (ctx *evalCtx) eval(e Expr) Value {
	ctx.steps++
	if ctx.steps > ctx.opts.MaxSteps {
		ctx.fail(ErrBudgetExceeded, e.Span(), "step budget of %d exceeded", ctx.opts.MaxSteps)
	}
	ctx.depth++
	if ctx.depth > ctx.opts.MaxDepth {
		ctx.fail(ErrRecursionLimit, e.Span(), "recursion depth limit of %d exceeded", ctx.opts.MaxDepth)
	}
	defer func() { ctx.depth-- }()

	switch n := e.(type) {
	case *NumberLit:
		return Num(n.Value)
	case *StringLit:
		return Str(n.Value)
	case *BoolLit:
		return Bool(n.Value)
	case *NullLit:
		return Null
	case *Ident:
		return ctx.lookup(n)
	case *ArrayLit:
		return ctx.evalArray(n)
	case *UnaryExpr:
		return ctx.evalUnary(n)
	case *BinaryExpr:
		return ctx.evalBinary(n)
	case *CondExpr:
		if truthy(ctx.eval(n.Test)) {
			return ctx.eval(n.Consequent)
		}
		return ctx.eval(n.Alternate)
	case *MemberExpr:
		obj := ctx.eval(n.Object)
		return ctx.member(obj, n.Property, n.Span())
	case *CallExpr:
		return ctx.evalCall(n)
	default:
		ctx.fail(ErrBadOperator, e.Span(), "unrecognized expression node %T", e)
		return Undefined
	}
}

// lookup resolves an identifier against the two-layer scope: the immutable
// std binding first, then the host environment's own members.
func (ctx *evalCtx) lookup(n *Ident) Value {
	if n.Name == stdName {
		return stdValue
	}
	if v, ok := ctx.env[n.Name]; ok {
		return v
	}
	if ctx.opts.UnknownIdentifier == UndefinedOnUnknown {
		return Undefined
	}
	ctx.fail(ErrUnknownIdentifier, n.Span(), "unknown identifier %q", n.Name)
	return Undefined
}

func (ctx *evalCtx) evalArray(n *ArrayLit) Value {
	if len(n.Elements) > ctx.opts.MaxArrayElements {
		ctx.fail(ErrArrayTooLarge, n.Span(),
			"array literal with %d elements exceeds the limit of %d",
			len(n.Elements), ctx.opts.MaxArrayElements)
	}
	elems := make([]Value, 0, len(n.Elements))
	for _, el := range n.Elements {
		elems = append(elems, ctx.eval(el))
	}
	return Arr(elems)
}

func (ctx *evalCtx) evalUnary(n *UnaryExpr) Value {
	v := ctx.eval(n.Expr)
	switch n.Op {
	case "!":
		return Bool(!truthy(v))
	case "+":
		return Num(ctx.numOperand(v, n.Expr.Span()))
	case "-":
		return Num(-ctx.numOperand(v, n.Expr.Span()))
	default:
		ctx.fail(ErrBadOperator, n.Span(), "unrecognized unary operator %q", n.Op)
		return Undefined
	}
}

func (ctx *evalCtx) evalBinary(n *BinaryExpr) Value {
	switch n.Op {
	case "&&":
		left := ctx.eval(n.Left)
		if !truthy(left) {
			return left
		}
		return ctx.eval(n.Right)
	case "||":
		left := ctx.eval(n.Left)
		if truthy(left) {
			return left
		}
		return ctx.eval(n.Right)
	}

	left := ctx.eval(n.Left)
	right := ctx.eval(n.Right)

	switch n.Op {
	case "+":
		if left.Tag == VTStr || right.Tag == VTStr {
			ls := ctx.strOperand(left, n.Left.Span())
			rs := ctx.strOperand(right, n.Right.Span())
			return Str(ls + rs)
		}
		return Num(ctx.numOperand(left, n.Left.Span()) + ctx.numOperand(right, n.Right.Span()))
	case "-":
		return Num(ctx.numOperand(left, n.Left.Span()) - ctx.numOperand(right, n.Right.Span()))
	case "*":
		return Num(ctx.numOperand(left, n.Left.Span()) * ctx.numOperand(right, n.Right.Span()))
	case "/":
		return Num(ctx.numOperand(left, n.Left.Span()) / ctx.numOperand(right, n.Right.Span()))
	case "%":
		return Num(floatMod(ctx.numOperand(left, n.Left.Span()), ctx.numOperand(right, n.Right.Span())))
	case "<":
		return Bool(ctx.numOperand(left, n.Left.Span()) < ctx.numOperand(right, n.Right.Span()))
	case "<=":
		return Bool(ctx.numOperand(left, n.Left.Span()) <= ctx.numOperand(right, n.Right.Span()))
	case ">":
		return Bool(ctx.numOperand(left, n.Left.Span()) > ctx.numOperand(right, n.Right.Span()))
	case ">=":
		return Bool(ctx.numOperand(left, n.Left.Span()) >= ctx.numOperand(right, n.Right.Span()))
	case "==":
		return Bool(looseEq(left, right))
	case "!=":
		return Bool(!looseEq(left, right))
	default:
		ctx.fail(ErrBadOperator, n.Span(), "unrecognized binary operator %q", n.Op)
		return Undefined
	}
}

func (ctx *evalCtx) numOperand(v Value, sp Span) float64 {
	f, ok := toNumber(v)
	if !ok {
		ctx.fail(ErrExpectedPrimitive, sp, "numeric operator applied to %s", v.String())
	}
	return f
}

func (ctx *evalCtx) strOperand(v Value, sp Span) string {
	s, ok := toString(v)
	if !ok {
		ctx.fail(ErrExpectedPrimitive, sp, "string operator applied to %s", v.String())
	}
	return s
}

// member implements the safe access policy. The forbidden-name check applies
// to every object shape; arrays expose only length; objects expose only own
// members; everything else yields undefined.
func (ctx *evalCtx) member(obj Value, prop string, sp Span) Value {
	if forbiddenMembers[prop] {
		ctx.fail(ErrForbiddenMember, sp, "access to forbidden member %q", prop)
	}
	switch obj.Tag {
	case VTArray:
		if prop == "length" {
			return Num(float64(len(obj.Data.(*Array).Elems)))
		}
		return Undefined
	case VTObject:
		if v, ok := obj.Data.(*Object).Entries[prop]; ok {
			return v
		}
		return Undefined
	default:
		return Undefined
	}
}

// evalCall handles both call forms. A member call obj.m(...) resolves m by
// the member rules and invokes with obj as the bound receiver; a free call
// invokes without one.
func (ctx *evalCtx) evalCall(n *CallExpr) Value {
	recv := Undefined
	var fv Value

	if m, ok := n.Callee.(*MemberExpr); ok {
		recv = ctx.eval(m.Object)
		fv = ctx.member(recv, m.Property, m.Span())
		if fv.Tag != VTFunc {
			ctx.fail(ErrNotCallable, n.Span(), "member %q is not a function", m.Property)
		}
	} else {
		fv = ctx.eval(n.Callee)
		if fv.Tag != VTFunc {
			ctx.fail(ErrNotCallable, n.Span(), "%s is not a function", fv.String())
		}
	}

	args := make([]Value, 0, len(n.Args))
	for _, a := range n.Args {
		args = append(args, ctx.eval(a))
	}

	res, err := callHost(fv.Data.(*Func), recv, args)
	if err != nil {
		ctx.fail(ErrHostError, n.Span(), "%s", err.Error())
	}
	if verr := validateValue(res, map[any]bool{}); verr != nil {
		ctx.fail(ErrUnsupportedReturn, n.Span(), "host function returned unsupported value: %s", verr)
	}
	return res
}

// callHost invokes a host function, converting a panic into an ordinary
// error so a misbehaving host cannot unwind through the evaluator.
func callHost(f *Func, recv Value, args []Value) (res Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return f.Fn(recv, args)
}
