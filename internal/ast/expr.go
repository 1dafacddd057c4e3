package ast

import "math/big"

type Expr interface {
	Node
	NodeID() NodeID
	isExpr()
}

// NumberExpr represents integer literals; Raw keeps the source spelling
// Example: "42", "0xFF", "1_000_000"
type NumberExpr struct {
	Pos    Position
	EndPos Position
	ID     NodeID
	Value  *big.Int
	Raw    string
}

// BoolExpr represents "true" and "false"
type BoolExpr struct {
	Pos    Position
	EndPos Position
	ID     NodeID
	Value  bool
}

// StringExpr represents string literals; Value is unquoted
// Example: "\"increment\""
type StringExpr struct {
	Pos    Position
	EndPos Position
	ID     NodeID
	Value  string
}

// NullExpr represents "null"
type NullExpr struct {
	Pos    Position
	EndPos Position
	ID     NodeID
}

// IdentExpr represents variable references
// Example: "amount", "self"
type IdentExpr struct {
	Pos    Position
	EndPos Position
	ID     NodeID
	Name   string
}

// BinaryExpr represents binary operations
// Example: "a + b", "x / y", "ok && done"
type BinaryExpr struct {
	Pos    Position
	EndPos Position
	ID     NodeID
	Op     string
	Left   Expr
	Right  Expr
}

// UnaryExpr represents prefix operators and the postfix non-null assertion "!!"
// Example: "-x", "!flag", "~mask", "value!!"
type UnaryExpr struct {
	Pos     Position
	EndPos  Position
	ID      NodeID
	Op      string
	Operand Expr
}

// ConditionalExpr represents the ternary operator
// Example: "x > 0 ? x : -x"
type ConditionalExpr struct {
	Pos    Position
	EndPos Position
	ID     NodeID
	Cond   Expr
	Then   Expr
	Else   Expr
}

// CallExpr represents calls of global functions
// Example: "require(x > 0, \"positive\")", "min(a, b)"
type CallExpr struct {
	Pos    Position
	EndPos Position
	ID     NodeID
	Callee Ident
	Args   []Expr
}

// MethodCallExpr represents method calls
// Example: "self.reply(\"ok\".asComment())", "self.balances.get(addr)"
type MethodCallExpr struct {
	Pos      Position
	EndPos   Position
	ID       NodeID
	Receiver Expr
	Method   Ident
	Args     []Expr
}

// FieldAccessExpr represents field reads
// Example: "self.value", "msg.amount"
type FieldAccessExpr struct {
	Pos    Position
	EndPos Position
	ID     NodeID
	Target Expr
	Field  Ident
}

// StructInstanceExpr represents struct and message construction
// Example: "SendParameters{ to: sender(), value: 0 }"
type StructInstanceExpr struct {
	Pos    Position
	EndPos Position
	ID     NodeID
	Type   Ident
	Fields []*FieldInit
}

// FieldInit is a single "name: value" pair of a struct instance. A shorthand
// "name" initializer is expanded to "name: name" by the parser.
type FieldInit struct {
	Pos    Position
	EndPos Position
	Name   Ident
	Value  Expr
}

// InitOfExpr represents "initOf C(args)"
type InitOfExpr struct {
	Pos      Position
	EndPos   Position
	ID       NodeID
	Contract Ident
	Args     []Expr
}

// BadExpr represents parse errors in expressions
type BadExpr struct {
	ID  NodeID
	Bad BadNode
}

func (*NumberExpr) isExpr()         {}
func (*BoolExpr) isExpr()           {}
func (*StringExpr) isExpr()         {}
func (*NullExpr) isExpr()           {}
func (*IdentExpr) isExpr()          {}
func (*BinaryExpr) isExpr()         {}
func (*UnaryExpr) isExpr()          {}
func (*ConditionalExpr) isExpr()    {}
func (*CallExpr) isExpr()           {}
func (*MethodCallExpr) isExpr()     {}
func (*FieldAccessExpr) isExpr()    {}
func (*StructInstanceExpr) isExpr() {}
func (*InitOfExpr) isExpr()         {}
func (*BadExpr) isExpr()            {}

func (e *NumberExpr) NodeID() NodeID         { return e.ID }
func (e *BoolExpr) NodeID() NodeID           { return e.ID }
func (e *StringExpr) NodeID() NodeID         { return e.ID }
func (e *NullExpr) NodeID() NodeID           { return e.ID }
func (e *IdentExpr) NodeID() NodeID          { return e.ID }
func (e *BinaryExpr) NodeID() NodeID         { return e.ID }
func (e *UnaryExpr) NodeID() NodeID          { return e.ID }
func (e *ConditionalExpr) NodeID() NodeID    { return e.ID }
func (e *CallExpr) NodeID() NodeID           { return e.ID }
func (e *MethodCallExpr) NodeID() NodeID     { return e.ID }
func (e *FieldAccessExpr) NodeID() NodeID    { return e.ID }
func (e *StructInstanceExpr) NodeID() NodeID { return e.ID }
func (e *InitOfExpr) NodeID() NodeID         { return e.ID }
func (e *BadExpr) NodeID() NodeID            { return e.ID }
