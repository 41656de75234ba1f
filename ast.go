// ast.go — expression AST and source spans.
//
// Every node carries a half-open byte span [Start, End) into the original
// input. Spans cover the node's source text exactly: the first consumed byte
// through (but excluding) the first unconsumed byte, with trailing trivia
// (whitespace and comments) never included.
package exp

// Span is a half-open byte interval [Start, End) in the original source text.
// Offsets are counted in bytes from the start of the UTF-8 input; End is
// exclusive and Start <= End always holds for parser-produced nodes.
type Span struct {
	Start int // inclusive
	End   int // exclusive
}

// Expr is the closed sum of expression node kinds produced by Parse.
// Implementations are exactly the node structs in this file; callers
// dispatch with a type switch. The unexported method closes the sum.
type Expr interface {
	Span() Span
	setSpan(Span)
}

// NumberLit is a numeric literal. Value is always an IEEE-754 double; the
// sign of a negative literal belongs to an enclosing UnaryExpr, never to the
// literal itself.
type NumberLit struct {
	Value float64
	span  Span
}

// StringLit is a string literal with escape sequences already decoded.
type StringLit struct {
	Value string
	span  Span
}

// BoolLit is the literal true or false.
type BoolLit struct {
	Value bool
	span  Span
}

// NullLit is the literal null.
type NullLit struct {
	span Span
}

// Ident is an identifier reference. The reserved words true, false and null
// never appear here; the parser produces the corresponding literal nodes.
type Ident struct {
	Name string
	span Span
}

// ArrayLit is an array literal. Elements preserve source order and may be
// empty.
type ArrayLit struct {
	Elements []Expr
	span     Span
}

// UnaryExpr is a prefix operator application: !x, +x or -x.
type UnaryExpr struct {
	Op   string
	Expr Expr
	span Span
}

// BinaryExpr is a binary operator application. Op is one of
// + - * / % == != < <= > >= && ||.
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
	span  Span
}

// MemberExpr is a property access obj.prop. Property is always a
// syntactically valid identifier.
type MemberExpr struct {
	Object   Expr
	Property string
	span     Span
}

// CallExpr is a call. Args preserve source order and may be empty. Pipeline
// expressions desugar into CallExpr at parse time: a |> f becomes f(a), and
// a |> f(x) becomes f(a, x).
type CallExpr struct {
	Callee Expr
	Args   []Expr
	span   Span
}

// CondExpr is the ternary conditional test ? consequent : alternate.
type CondExpr struct {
	Test       Expr
	Consequent Expr
	Alternate  Expr
	span       Span
}

func (e *NumberLit) Span() Span  { return e.span }
func (e *StringLit) Span() Span  { return e.span }
func (e *BoolLit) Span() Span    { return e.span }
func (e *NullLit) Span() Span    { return e.span }
func (e *Ident) Span() Span      { return e.span }
func (e *ArrayLit) Span() Span   { return e.span }
func (e *UnaryExpr) Span() Span  { return e.span }
func (e *BinaryExpr) Span() Span { return e.span }
func (e *MemberExpr) Span() Span { return e.span }
func (e *CallExpr) Span() Span   { return e.span }
func (e *CondExpr) Span() Span   { return e.span }

// setSpan widens a node's span; the parser uses it to make a parenthesized
// expression cover its parentheses.
func (e *NumberLit) setSpan(s Span)  { e.span = s }
func (e *StringLit) setSpan(s Span)  { e.span = s }
func (e *BoolLit) setSpan(s Span)    { e.span = s }
func (e *NullLit) setSpan(s Span)    { e.span = s }
func (e *Ident) setSpan(s Span)      { e.span = s }
func (e *ArrayLit) setSpan(s Span)   { e.span = s }
func (e *UnaryExpr) setSpan(s Span)  { e.span = s }
func (e *BinaryExpr) setSpan(s Span) { e.span = s }
func (e *MemberExpr) setSpan(s Span) { e.span = s }
func (e *CallExpr) setSpan(s Span)   { e.span = s }
func (e *CondExpr) setSpan(s Span)   { e.span = s }
