package ast

type Node interface {
	NodePos() Position
	NodeEndPos() Position
	NodeType() NodeType
	String() string
}

func (f *File) NodePos() Position    { return f.Pos }
func (f *File) NodeEndPos() Position { return f.EndPos }
func (*File) NodeType() NodeType     { return FILE }

func (i *Import) NodePos() Position    { return i.Pos }
func (i *Import) NodeEndPos() Position { return i.EndPos }
func (*Import) NodeType() NodeType     { return IMPORT }

func (c *Contract) NodePos() Position    { return c.Pos }
func (c *Contract) NodeEndPos() Position { return c.EndPos }
func (*Contract) NodeType() NodeType     { return CONTRACT }

func (s *StructDecl) NodePos() Position    { return s.Pos }
func (s *StructDecl) NodeEndPos() Position { return s.EndPos }
func (*StructDecl) NodeType() NodeType     { return STRUCT_DECL }

func (c *Constant) NodePos() Position    { return c.Pos }
func (c *Constant) NodeEndPos() Position { return c.EndPos }
func (*Constant) NodeType() NodeType     { return CONSTANT }

func (f *Field) NodePos() Position    { return f.Pos }
func (f *Field) NodeEndPos() Position { return f.EndPos }
func (*Field) NodeType() NodeType     { return FIELD }

func (t *TypeRef) NodePos() Position    { return t.Pos }
func (t *TypeRef) NodeEndPos() Position { return t.EndPos }
func (*TypeRef) NodeType() NodeType     { return TYPE }

func (f *Function) NodePos() Position    { return f.Pos }
func (f *Function) NodeEndPos() Position { return f.EndPos }
func (*Function) NodeType() NodeType     { return FUNCTION }

func (p *Param) NodePos() Position    { return p.Pos }
func (p *Param) NodeEndPos() Position { return p.EndPos }
func (*Param) NodeType() NodeType     { return PARAM }

func (b *BadItem) NodePos() Position    { return b.Bad.Pos }
func (b *BadItem) NodeEndPos() Position { return b.Bad.EndPos }
func (*BadItem) NodeType() NodeType     { return BAD_ITEM }

func (s *LetStmt) NodePos() Position    { return s.Pos }
func (s *LetStmt) NodeEndPos() Position { return s.EndPos }
func (*LetStmt) NodeType() NodeType     { return LET_STMT }

func (s *AssignStmt) NodePos() Position    { return s.Pos }
func (s *AssignStmt) NodeEndPos() Position { return s.EndPos }
func (*AssignStmt) NodeType() NodeType     { return ASSIGN_STMT }

func (s *AugmentedAssignStmt) NodePos() Position    { return s.Pos }
func (s *AugmentedAssignStmt) NodeEndPos() Position { return s.EndPos }
func (*AugmentedAssignStmt) NodeType() NodeType     { return AUGMENTED_ASSIGN_STMT }

func (s *ReturnStmt) NodePos() Position    { return s.Pos }
func (s *ReturnStmt) NodeEndPos() Position { return s.EndPos }
func (*ReturnStmt) NodeType() NodeType     { return RETURN_STMT }

func (s *ExprStmt) NodePos() Position    { return s.Pos }
func (s *ExprStmt) NodeEndPos() Position { return s.EndPos }
func (*ExprStmt) NodeType() NodeType     { return EXPR_STMT }

func (s *IfStmt) NodePos() Position    { return s.Pos }
func (s *IfStmt) NodeEndPos() Position { return s.EndPos }
func (*IfStmt) NodeType() NodeType     { return IF_STMT }

func (s *WhileStmt) NodePos() Position    { return s.Pos }
func (s *WhileStmt) NodeEndPos() Position { return s.EndPos }
func (*WhileStmt) NodeType() NodeType     { return WHILE_STMT }

func (s *RepeatStmt) NodePos() Position    { return s.Pos }
func (s *RepeatStmt) NodeEndPos() Position { return s.EndPos }
func (*RepeatStmt) NodeType() NodeType     { return REPEAT_STMT }

func (s *UntilStmt) NodePos() Position    { return s.Pos }
func (s *UntilStmt) NodeEndPos() Position { return s.EndPos }
func (*UntilStmt) NodeType() NodeType     { return UNTIL_STMT }

func (s *TryStmt) NodePos() Position    { return s.Pos }
func (s *TryStmt) NodeEndPos() Position { return s.EndPos }
func (*TryStmt) NodeType() NodeType     { return TRY_STMT }

func (s *ForEachStmt) NodePos() Position    { return s.Pos }
func (s *ForEachStmt) NodeEndPos() Position { return s.EndPos }
func (*ForEachStmt) NodeType() NodeType     { return FOREACH_STMT }

func (s *BlockStmt) NodePos() Position    { return s.Pos }
func (s *BlockStmt) NodeEndPos() Position { return s.EndPos }
func (*BlockStmt) NodeType() NodeType     { return BLOCK_STMT }

func (e *NumberExpr) NodePos() Position    { return e.Pos }
func (e *NumberExpr) NodeEndPos() Position { return e.EndPos }
func (*NumberExpr) NodeType() NodeType     { return NUMBER_EXPR }

func (e *BoolExpr) NodePos() Position    { return e.Pos }
func (e *BoolExpr) NodeEndPos() Position { return e.EndPos }
func (*BoolExpr) NodeType() NodeType     { return BOOL_EXPR }

func (e *StringExpr) NodePos() Position    { return e.Pos }
func (e *StringExpr) NodeEndPos() Position { return e.EndPos }
func (*StringExpr) NodeType() NodeType     { return STRING_EXPR }

func (e *NullExpr) NodePos() Position    { return e.Pos }
func (e *NullExpr) NodeEndPos() Position { return e.EndPos }
func (*NullExpr) NodeType() NodeType     { return NULL_EXPR }

func (e *IdentExpr) NodePos() Position    { return e.Pos }
func (e *IdentExpr) NodeEndPos() Position { return e.EndPos }
func (*IdentExpr) NodeType() NodeType     { return IDENT_EXPR }

func (e *BinaryExpr) NodePos() Position    { return e.Pos }
func (e *BinaryExpr) NodeEndPos() Position { return e.EndPos }
func (*BinaryExpr) NodeType() NodeType     { return BINARY_EXPR }

func (e *UnaryExpr) NodePos() Position    { return e.Pos }
func (e *UnaryExpr) NodeEndPos() Position { return e.EndPos }
func (*UnaryExpr) NodeType() NodeType     { return UNARY_EXPR }

func (e *ConditionalExpr) NodePos() Position    { return e.Pos }
func (e *ConditionalExpr) NodeEndPos() Position { return e.EndPos }
func (*ConditionalExpr) NodeType() NodeType     { return CONDITIONAL_EXPR }

func (e *CallExpr) NodePos() Position    { return e.Pos }
func (e *CallExpr) NodeEndPos() Position { return e.EndPos }
func (*CallExpr) NodeType() NodeType     { return CALL_EXPR }

func (e *MethodCallExpr) NodePos() Position    { return e.Pos }
func (e *MethodCallExpr) NodeEndPos() Position { return e.EndPos }
func (*MethodCallExpr) NodeType() NodeType     { return METHOD_CALL_EXPR }

func (e *FieldAccessExpr) NodePos() Position    { return e.Pos }
func (e *FieldAccessExpr) NodeEndPos() Position { return e.EndPos }
func (*FieldAccessExpr) NodeType() NodeType     { return FIELD_ACCESS_EXPR }

func (e *StructInstanceExpr) NodePos() Position    { return e.Pos }
func (e *StructInstanceExpr) NodeEndPos() Position { return e.EndPos }
func (*StructInstanceExpr) NodeType() NodeType     { return STRUCT_INSTANCE_EXPR }

func (e *InitOfExpr) NodePos() Position    { return e.Pos }
func (e *InitOfExpr) NodeEndPos() Position { return e.EndPos }
func (*InitOfExpr) NodeType() NodeType     { return INIT_OF_EXPR }

func (e *BadExpr) NodePos() Position    { return e.Bad.Pos }
func (e *BadExpr) NodeEndPos() Position { return e.Bad.EndPos }
func (*BadExpr) NodeType() NodeType     { return BAD_EXPR }
