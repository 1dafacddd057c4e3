package ast

import (
	"fmt"
	"sync/atomic"
)

// Position tracks location information for error reporting and tooling
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// NodeID uniquely identifies a statement or expression within a process.
type NodeID uint32

var lastID atomic.Uint32

// NextID allocates a fresh node identifier. IDs are never reused, so nodes of
// different files parsed in the same process never collide.
func NextID() NodeID {
	return NodeID(lastID.Add(1))
}

// Origin tells user sources apart from the bundled standard library.
type Origin int

const (
	OriginUser Origin = iota
	OriginStdlib
)

func (o Origin) String() string {
	if o == OriginStdlib {
		return "stdlib"
	}
	return "user"
}

// File represents one parsed Tact source
// Example: "import \"./messages\"; message Add { amount: Int } contract Counter { ... }"
type File struct {
	Pos     Position
	EndPos  Position
	Path    string
	Origin  Origin
	Imports []*Import
	Items   []TopLevelItem
}

// Import represents import statements
// Example: "import \"@stdlib/deploy\";"
type Import struct {
	Pos    Position
	EndPos Position
	Path   string
}

// Ident represents any identifier like variable names, type names, etc.
// Example: "Counter", "balance", "self"
type Ident struct {
	Pos    Position
	EndPos Position
	Value  string
}

// BadNode contains error information for failed parsing
type BadNode struct {
	Pos     Position
	EndPos  Position
	Message string
}

// TypeRef represents type specifications
// Example: "Int", "Address?", "map<Address, Int>", "Int as uint64"
type TypeRef struct {
	Pos      Position
	EndPos   Position
	Name     string
	Optional bool
	Generics []*TypeRef
	As       string
}

// Contract represents contract and trait declarations
// Example: "contract Counter with Deployable { value: Int; receive(msg: Add) { ... } }"
type Contract struct {
	Pos     Position
	EndPos  Position
	IsTrait bool
	Name    Ident
	Traits  []Ident
	Items   []ContractItem
}

// Fields returns the state variables declared directly in the contract.
func (c *Contract) Fields() []*Field {
	var fields []*Field
	for _, item := range c.Items {
		if f, ok := item.(*Field); ok {
			fields = append(fields, f)
		}
	}
	return fields
}

// Functions returns every function-like item: methods, getters, init and
// receivers, in declaration order.
func (c *Contract) Functions() []*Function {
	var fns []*Function
	for _, item := range c.Items {
		if f, ok := item.(*Function); ok {
			fns = append(fns, f)
		}
	}
	return fns
}

// Field represents a contract or trait state variable, or a struct field
// Example: "value: Int as uint32 = 0;"
type Field struct {
	Pos     Position
	EndPos  Position
	Name    Ident
	Type    *TypeRef
	Default Expr
}

// Constant represents constant declarations
// Example: "const MAX: Int = 100;"
type Constant struct {
	Pos        Position
	EndPos     Position
	Attributes []string
	Name       Ident
	Type       *TypeRef
	Value      Expr // nil for abstract constants
}

// StructDecl represents struct and message declarations
// Example: "message(0x1234) Add { amount: Int as uint32 }"
type StructDecl struct {
	Pos       Position
	EndPos    Position
	IsMessage bool
	Opcode    Expr
	Name      Ident
	Fields    []*Field
}

// FunctionKind classifies function-like declarations.
type FunctionKind int

const (
	FunctionFun FunctionKind = iota
	FunctionGetter
	FunctionInit
	FunctionReceive
	FunctionBounced
	FunctionExternal
)

func (k FunctionKind) String() string {
	switch k {
	case FunctionGetter:
		return "get fun"
	case FunctionInit:
		return "init"
	case FunctionReceive:
		return "receive"
	case FunctionBounced:
		return "bounced"
	case FunctionExternal:
		return "external"
	}
	return "fun"
}

// IsReceiver reports whether the function is a message handler.
func (k FunctionKind) IsReceiver() bool {
	return k == FunctionReceive || k == FunctionBounced || k == FunctionExternal
}

// Function represents functions, getters, init and receivers
// Example: "get fun balance(): Int { return self.value; }", "receive(\"inc\") { self.value += 1; }"
type Function struct {
	Pos        Position
	EndPos     Position
	ID         NodeID
	Kind       FunctionKind
	Attributes []string
	Name       Ident
	Params     []*Param
	Return     *TypeRef
	// Comment is the text matched by a comment receiver, e.g. receive("inc").
	Comment *string
	Body    []Stmt // nil for abstract and native declarations
}

// HasAttribute reports whether the function is marked with attr, e.g. "inline".
func (f *Function) HasAttribute(attr string) bool {
	for _, a := range f.Attributes {
		if a == attr {
			return true
		}
	}
	return false
}

// Param represents function parameters
// Example: "amount: Int", "msg: Add"
type Param struct {
	Pos    Position
	EndPos Position
	Name   Ident
	Type   *TypeRef
}

// BadItem represents parse errors in top-level or contract items
type BadItem struct {
	Bad BadNode
}
