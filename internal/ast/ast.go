package ast

// Node is the base interface for all AST nodes. Every node carries its
// byte-offset span in the source; all position math in the analyzer and
// the narrowing engine works on these offsets.
type Node interface {
	Pos() int // offset of the first character of the node
	End() int // offset one past the last character of the node
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
}

// Span is embedded by every concrete node.
type Span struct {
	StartPos int
	EndPos   int
}

func (s Span) Pos() int { return s.StartPos }
func (s Span) End() int { return s.EndPos }

// Contains reports whether the given offset falls inside the span.
func (s Span) Contains(pos int) bool { return pos >= s.StartPos && pos <= s.EndPos }

// Program is the root node of every AST the parser produces.
type Program struct {
	Span
	File string // source file path, "" for anonymous buffers
	Body []Statement
}

func (p *Program) statementNode() {}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// VariableDeclaration represents `let a = 1, b;` or `const c = 2;`.
type VariableDeclaration struct {
	Span
	Kind         string // "let" or "const"
	Declarations []*VariableDeclarator
}

func (vd *VariableDeclaration) statementNode() {}

// VariableDeclarator is a single name/initializer pair in a declaration.
type VariableDeclarator struct {
	Span
	Name *Identifier
	Init Expression // nil when no initializer
}

// FunctionDeclaration represents `function name(params) { ... }`.
type FunctionDeclaration struct {
	Span
	Name   *Identifier
	Params []*Identifier
	Rest   *Identifier // `...rest` parameter, nil when absent
	Body   *BlockStatement
}

func (fd *FunctionDeclaration) statementNode() {}

// ExpressionStatement wraps an expression used in statement position.
type ExpressionStatement struct {
	Span
	Expression Expression
}

func (es *ExpressionStatement) statementNode() {}

// BlockStatement is `{ stmt* }`.
type BlockStatement struct {
	Span
	Body []Statement
}

func (bs *BlockStatement) statementNode() {}

// IfStatement is `if (test) consequent [else alternate]`.
type IfStatement struct {
	Span
	Test       Expression
	Consequent Statement
	Alternate  Statement // nil when no else branch
}

func (is *IfStatement) statementNode() {}

// WhileStatement is `while (test) body`.
type WhileStatement struct {
	Span
	Test Expression
	Body Statement
}

func (ws *WhileStatement) statementNode() {}

// ForStatement is the C-style `for (init; test; update) body`.
type ForStatement struct {
	Span
	Init   Statement  // nil, VariableDeclaration or ExpressionStatement
	Test   Expression // nil when omitted
	Update Expression // nil when omitted
	Body   Statement
}

func (fs *ForStatement) statementNode() {}

// ForInStatement is `for (let k in expr)` or `for (let k, v in expr)`.
type ForInStatement struct {
	Span
	Names    []*Identifier // one (value) or two (key, value) loop variables
	Declared bool          // true when introduced with let/const
	Right    Expression
	Body     Statement
}

func (fs *ForInStatement) statementNode() {}

// ReturnStatement is `return [expr];`.
type ReturnStatement struct {
	Span
	Argument Expression // nil for a bare return
}

func (rs *ReturnStatement) statementNode() {}

// BreakStatement is `break;`.
type BreakStatement struct {
	Span
}

func (bs *BreakStatement) statementNode() {}

// ContinueStatement is `continue;`.
type ContinueStatement struct {
	Span
}

func (cs *ContinueStatement) statementNode() {}

// TryStatement is `try { ... } catch (e) { ... }`.
type TryStatement struct {
	Span
	Block   *BlockStatement
	Param   *Identifier // nil when the catch clause binds no variable
	Handler *BlockStatement
}

func (ts *TryStatement) statementNode() {}

// SwitchStatement is `switch (disc) { case ...: ... default: ... }`.
type SwitchStatement struct {
	Span
	Discriminant Expression
	Cases        []*SwitchCase
}

func (ss *SwitchStatement) statementNode() {}

// SwitchCase is one `case expr:` or `default:` arm.
type SwitchCase struct {
	Span
	Test Expression // nil for default
	Body []Statement
}

// ImportDeclaration is `import { a, b as c } from 'mod'` or
// `import * as m from 'mod'` or `import m from 'mod'`.
type ImportDeclaration struct {
	Span
	Specifiers []*ImportSpecifier
	Source     string
}

func (id *ImportDeclaration) statementNode() {}

// ImportSpecifier binds one imported name.
type ImportSpecifier struct {
	Span
	Imported  *Identifier // exported name; nil for namespace/default imports
	Local     *Identifier // local binding
	Namespace bool        // `* as local`
	Default   bool        // bare default import
}

// EmptyStatement is a stray `;`.
type EmptyStatement struct {
	Span
}

func (es *EmptyStatement) statementNode() {}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// Identifier is a name reference.
type Identifier struct {
	Span
	Name string
}

func (i *Identifier) expressionNode() {}

// IntegerLiteral is a decimal/hex integer literal.
type IntegerLiteral struct {
	Span
	Value int64
}

func (il *IntegerLiteral) expressionNode() {}

// DoubleLiteral is a floating-point literal.
type DoubleLiteral struct {
	Span
	Value float64
}

func (dl *DoubleLiteral) expressionNode() {}

// StringLiteral is a quoted string with escapes already resolved.
type StringLiteral struct {
	Span
	Value string
}

func (sl *StringLiteral) expressionNode() {}

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Span
	Value bool
}

func (bl *BooleanLiteral) expressionNode() {}

// NullLiteral is `null`.
type NullLiteral struct {
	Span
}

func (nl *NullLiteral) expressionNode() {}

// RegexLiteral is `/pattern/flags`.
type RegexLiteral struct {
	Span
	Pattern string
	Flags   string
}

func (rl *RegexLiteral) expressionNode() {}

// ArrayExpression is `[a, b, c]`.
type ArrayExpression struct {
	Span
	Elements []Expression
}

func (ae *ArrayExpression) expressionNode() {}

// ObjectExpression is `{ key: value, ... }`.
type ObjectExpression struct {
	Span
	Properties []*Property
}

func (oe *ObjectExpression) expressionNode() {}

// Property is one key/value pair of an object literal.
type Property struct {
	Span
	Key      Expression // Identifier, StringLiteral or computed expression
	Value    Expression
	Computed bool
}

// BinaryExpression covers arithmetic, comparison, bitwise, logical
// (&&, ||, ??) and the `in` operator. Logical operators stay in the same
// node kind so the narrowing engine can fold nested && chains uniformly.
type BinaryExpression struct {
	Span
	Operator string
	Left     Expression
	Right    Expression
}

func (be *BinaryExpression) expressionNode() {}

// UnaryExpression is a prefix operator (`!x`, `-x`, `~x`, `+x`, `delete x`)
// or the postfix/prefix increment forms.
type UnaryExpression struct {
	Span
	Operator string
	Argument Expression
	Postfix  bool
}

func (ue *UnaryExpression) expressionNode() {}

// AssignmentExpression is `target op value` where op is =, +=, -=, ...
type AssignmentExpression struct {
	Span
	Operator string
	Left     Expression
	Right    Expression
}

func (ae *AssignmentExpression) expressionNode() {}

// CallExpression is `callee(args...)`.
type CallExpression struct {
	Span
	Callee    Expression
	Arguments []Expression
	Optional  bool // `callee?.(args)`
}

func (ce *CallExpression) expressionNode() {}

// MemberExpression is `object.prop` or `object[prop]`.
type MemberExpression struct {
	Span
	Object   Expression
	Property Expression
	Computed bool
	Optional bool // `object?.prop`
}

func (me *MemberExpression) expressionNode() {}

// ConditionalExpression is `test ? consequent : alternate`.
type ConditionalExpression struct {
	Span
	Test       Expression
	Consequent Expression
	Alternate  Expression
}

func (ce *ConditionalExpression) expressionNode() {}

// FunctionExpression is `function [name](params) { ... }` in value position.
type FunctionExpression struct {
	Span
	Name   *Identifier // nil for anonymous functions
	Params []*Identifier
	Rest   *Identifier
	Body   *BlockStatement
}

func (fe *FunctionExpression) expressionNode() {}

// ArrowFunctionExpression is `(params) => body`.
type ArrowFunctionExpression struct {
	Span
	Params []*Identifier
	Rest   *Identifier
	Body   Statement  // *BlockStatement for brace bodies
	Expr   Expression // non-nil for expression bodies; Body is nil then
}

func (af *ArrowFunctionExpression) expressionNode() {}
