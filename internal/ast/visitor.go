package ast

// ForEachStatement visits every statement of stmts in source order,
// descending into nested bodies.
func ForEachStatement(stmts []Stmt, fn func(Stmt)) {
	for _, s := range stmts {
		fn(s)
		for _, body := range NestedBodies(s) {
			ForEachStatement(body, fn)
		}
	}
}

// NestedBodies returns the statement lists nested directly in s.
func NestedBodies(s Stmt) [][]Stmt {
	switch s := s.(type) {
	case *IfStmt:
		if s.Else != nil {
			return [][]Stmt{s.Then, s.Else}
		}
		return [][]Stmt{s.Then}
	case *WhileStmt:
		return [][]Stmt{s.Body}
	case *RepeatStmt:
		return [][]Stmt{s.Body}
	case *UntilStmt:
		return [][]Stmt{s.Body}
	case *TryStmt:
		if s.HasCatch {
			return [][]Stmt{s.Body, s.Catch}
		}
		return [][]Stmt{s.Body}
	case *ForEachStmt:
		return [][]Stmt{s.Body}
	case *BlockStmt:
		return [][]Stmt{s.Body}
	}
	return nil
}

// StatementExpressions returns the expressions owned by s itself, excluding
// those of nested statement bodies.
func StatementExpressions(s Stmt) []Expr {
	var exprs []Expr
	add := func(e Expr) {
		if e != nil {
			exprs = append(exprs, e)
		}
	}

	switch s := s.(type) {
	case *LetStmt:
		add(s.Value)
	case *AssignStmt:
		add(s.Target)
		add(s.Value)
	case *AugmentedAssignStmt:
		add(s.Target)
		add(s.Value)
	case *ReturnStmt:
		add(s.Value)
	case *ExprStmt:
		add(s.Expr)
	case *IfStmt:
		add(s.Cond)
	case *WhileStmt:
		add(s.Cond)
	case *RepeatStmt:
		add(s.Count)
	case *UntilStmt:
		add(s.Cond)
	case *ForEachStmt:
		add(s.Map)
	}

	return exprs
}

// Children returns the direct subexpressions of e.
func Children(e Expr) []Expr {
	switch e := e.(type) {
	case *BinaryExpr:
		return []Expr{e.Left, e.Right}
	case *UnaryExpr:
		return []Expr{e.Operand}
	case *ConditionalExpr:
		return []Expr{e.Cond, e.Then, e.Else}
	case *CallExpr:
		return e.Args
	case *MethodCallExpr:
		return append([]Expr{e.Receiver}, e.Args...)
	case *FieldAccessExpr:
		return []Expr{e.Target}
	case *StructInstanceExpr:
		children := make([]Expr, len(e.Fields))
		for i, f := range e.Fields {
			children[i] = f.Value
		}
		return children
	case *InitOfExpr:
		return e.Args
	}
	return nil
}

// ForEachExpression visits e and all of its subexpressions in pre-order.
func ForEachExpression(e Expr, fn func(Expr)) {
	if e == nil {
		return
	}
	fn(e)
	for _, child := range Children(e) {
		ForEachExpression(child, fn)
	}
}

// FindInExpressions returns every subexpression of the statement's own
// expressions satisfying pred. Nested statement bodies are not searched, so
// each expression is found through exactly one statement.
func FindInExpressions(s Stmt, pred func(Expr) bool) []Expr {
	var found []Expr
	for _, root := range StatementExpressions(s) {
		ForEachExpression(root, func(e Expr) {
			if pred(e) {
				found = append(found, e)
			}
		})
	}
	return found
}

// ForEachFunction visits every function-like declaration of the file: top-level
// functions and the items of contracts and traits. The owning contract is nil
// for top-level functions.
func ForEachFunction(f *File, fn func(owner *Contract, function *Function)) {
	for _, item := range f.Items {
		switch item := item.(type) {
		case *Function:
			fn(nil, item)
		case *Contract:
			for _, function := range item.Functions() {
				fn(item, function)
			}
		}
	}
}
