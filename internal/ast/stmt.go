package ast

type Stmt interface {
	Node
	NodeID() NodeID
	isStmt()
}

// LetStmt represents local variable declarations
// Example: "let x: Int = a + 1;"
type LetStmt struct {
	Pos    Position
	EndPos Position
	ID     NodeID
	Name   Ident
	Type   *TypeRef
	Value  Expr
}

// AssignStmt represents plain assignments
// Example: "x = 5;", "self.value = msg.amount;"
type AssignStmt struct {
	Pos    Position
	EndPos Position
	ID     NodeID
	Target Expr
	Value  Expr
}

// AugmentedAssignStmt represents compound assignments; Op is the binary
// operator without the trailing '='
// Example: "x += 1;", "total /= count;"
type AugmentedAssignStmt struct {
	Pos    Position
	EndPos Position
	ID     NodeID
	Op     string
	Target Expr
	Value  Expr
}

// ReturnStmt represents return statements
// Example: "return balance;", "return;"
type ReturnStmt struct {
	Pos    Position
	EndPos Position
	ID     NodeID
	Value  Expr // nil if plain `return;`
}

// ExprStmt represents expression statements
// Example: "require(x > 0, \"x must be positive\");"
type ExprStmt struct {
	Pos    Position
	EndPos Position
	ID     NodeID
	Expr   Expr
}

// IfStmt represents conditionals; `else if` chains nest an IfStmt in Else
// Example: "if (x > 0) { ... } else { ... }"
type IfStmt struct {
	Pos    Position
	EndPos Position
	ID     NodeID
	Cond   Expr
	Then   []Stmt
	Else   []Stmt // nil when there is no else branch
}

// WhileStmt represents while loops
// Example: "while (i < 10) { i += 1; }"
type WhileStmt struct {
	Pos    Position
	EndPos Position
	ID     NodeID
	Cond   Expr
	Body   []Stmt
}

// RepeatStmt represents counted loops
// Example: "repeat (10) { i += 1; }"
type RepeatStmt struct {
	Pos    Position
	EndPos Position
	ID     NodeID
	Count  Expr
	Body   []Stmt
}

// UntilStmt represents do-until loops; the body runs at least once
// Example: "do { i -= 1; } until (i == 0);"
type UntilStmt struct {
	Pos    Position
	EndPos Position
	ID     NodeID
	Body   []Stmt
	Cond   Expr
}

// TryStmt represents try/catch
// Example: "try { ... } catch (err) { ... }"
type TryStmt struct {
	Pos       Position
	EndPos    Position
	ID        NodeID
	Body      []Stmt
	HasCatch  bool
	CatchName *Ident
	Catch     []Stmt
}

// ForEachStmt represents map iteration
// Example: "foreach (key, value in self.balances) { ... }"
type ForEachStmt struct {
	Pos    Position
	EndPos Position
	ID     NodeID
	Key    Ident
	Value  Ident
	Map    Expr
	Body   []Stmt
}

// BlockStmt represents a nested block
// Example: "{ let tmp = x; x = y; y = tmp; }"
type BlockStmt struct {
	Pos    Position
	EndPos Position
	ID     NodeID
	Body   []Stmt
}

func (*LetStmt) isStmt()             {}
func (*AssignStmt) isStmt()          {}
func (*AugmentedAssignStmt) isStmt() {}
func (*ReturnStmt) isStmt()          {}
func (*ExprStmt) isStmt()            {}
func (*IfStmt) isStmt()              {}
func (*WhileStmt) isStmt()           {}
func (*RepeatStmt) isStmt()          {}
func (*UntilStmt) isStmt()           {}
func (*TryStmt) isStmt()             {}
func (*ForEachStmt) isStmt()         {}
func (*BlockStmt) isStmt()           {}

func (s *LetStmt) NodeID() NodeID             { return s.ID }
func (s *AssignStmt) NodeID() NodeID          { return s.ID }
func (s *AugmentedAssignStmt) NodeID() NodeID { return s.ID }
func (s *ReturnStmt) NodeID() NodeID          { return s.ID }
func (s *ExprStmt) NodeID() NodeID            { return s.ID }
func (s *IfStmt) NodeID() NodeID              { return s.ID }
func (s *WhileStmt) NodeID() NodeID           { return s.ID }
func (s *RepeatStmt) NodeID() NodeID          { return s.ID }
func (s *UntilStmt) NodeID() NodeID           { return s.ID }
func (s *TryStmt) NodeID() NodeID             { return s.ID }
func (s *ForEachStmt) NodeID() NodeID         { return s.ID }
func (s *BlockStmt) NodeID() NodeID           { return s.ID }
