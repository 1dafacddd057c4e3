package ast

import (
	"fmt"
	"strconv"
	"strings"
)

func (f *File) String() string {
	var b strings.Builder

	for _, imp := range f.Imports {
		b.WriteString(imp.String())
		b.WriteString("\n")
	}
	for i, item := range f.Items {
		if i > 0 || len(f.Imports) > 0 {
			b.WriteString("\n")
		}
		b.WriteString(item.String())
		b.WriteString("\n")
	}

	return b.String()
}

func (i *Import) String() string {
	return fmt.Sprintf("import %s;", strconv.Quote(i.Path))
}

func (i *Ident) String() string {
	return i.Value
}

func (t *TypeRef) String() string {
	var b strings.Builder
	b.WriteString(t.Name)
	if len(t.Generics) > 0 {
		b.WriteString("<")
		for i, g := range t.Generics {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(g.String())
		}
		b.WriteString(">")
	}
	if t.Optional {
		b.WriteString("?")
	}
	if t.As != "" {
		b.WriteString(" as ")
		b.WriteString(t.As)
	}
	return b.String()
}

func (c *Contract) String() string {
	var b strings.Builder

	if c.IsTrait {
		b.WriteString("trait ")
	} else {
		b.WriteString("contract ")
	}
	b.WriteString(c.Name.Value)
	if len(c.Traits) > 0 {
		names := make([]string, len(c.Traits))
		for i, t := range c.Traits {
			names[i] = t.Value
		}
		b.WriteString(" with ")
		b.WriteString(strings.Join(names, ", "))
	}
	b.WriteString(" {\n")
	for _, item := range c.Items {
		b.WriteString("  " + strings.ReplaceAll(item.String(), "\n", "\n  ") + "\n")
	}
	b.WriteString("}")

	return b.String()
}

func (f *Field) String() string {
	s := fmt.Sprintf("%s: %s", f.Name.Value, f.Type.String())
	if f.Default != nil {
		s += " = " + f.Default.String()
	}
	return s + ";"
}

func (c *Constant) String() string {
	var b strings.Builder
	for _, attr := range c.Attributes {
		b.WriteString(attr + " ")
	}
	b.WriteString("const " + c.Name.Value)
	if c.Type != nil {
		b.WriteString(": " + c.Type.String())
	}
	if c.Value != nil {
		b.WriteString(" = " + c.Value.String())
	}
	b.WriteString(";")
	return b.String()
}

func (s *StructDecl) String() string {
	var b strings.Builder

	if s.IsMessage {
		b.WriteString("message")
		if s.Opcode != nil {
			b.WriteString("(" + s.Opcode.String() + ")")
		}
	} else {
		b.WriteString("struct")
	}
	b.WriteString(" " + s.Name.Value + " {")
	for i, field := range s.Fields {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(" " + field.String())
	}
	b.WriteString(" }")
	return b.String()
}

func (f *Function) String() string {
	var b strings.Builder

	for _, attr := range f.Attributes {
		b.WriteString(attr + " ")
	}

	switch f.Kind {
	case FunctionInit:
		b.WriteString("init")
	case FunctionReceive, FunctionBounced, FunctionExternal:
		b.WriteString(f.Kind.String())
	case FunctionGetter:
		b.WriteString("get fun " + f.Name.Value)
	default:
		b.WriteString("fun " + f.Name.Value)
	}

	b.WriteString("(")
	if f.Comment != nil {
		b.WriteString(strconv.Quote(*f.Comment))
	}
	for i, param := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(param.String())
	}
	b.WriteString(")")

	if f.Return != nil {
		b.WriteString(": ")
		b.WriteString(f.Return.String())
	}

	if f.Body == nil {
		b.WriteString(";")
		return b.String()
	}

	b.WriteString(" ")
	writeBlock(&b, f.Body, "")
	return b.String()
}

func (p *Param) String() string {
	return fmt.Sprintf("%s: %s", p.Name.Value, p.Type.String())
}

func (b *BadItem) String() string {
	return fmt.Sprintf("BadItem: %s", b.Bad.Message)
}

// writeBlock prints "{ ... }" with each statement on its own line, indented
// one level deeper than indent.
func writeBlock(b *strings.Builder, stmts []Stmt, indent string) {
	if len(stmts) == 0 {
		b.WriteString("{}")
		return
	}
	b.WriteString("{\n")
	for _, s := range stmts {
		b.WriteString(indent + "  ")
		b.WriteString(strings.ReplaceAll(s.String(), "\n", "\n"+indent+"  "))
		b.WriteString("\n")
	}
	b.WriteString(indent + "}")
}

func blockString(stmts []Stmt) string {
	var b strings.Builder
	writeBlock(&b, stmts, "")
	return b.String()
}

func (s *LetStmt) String() string {
	if s.Type != nil {
		return fmt.Sprintf("let %s: %s = %s;", s.Name.Value, s.Type.String(), s.Value.String())
	}
	return fmt.Sprintf("let %s = %s;", s.Name.Value, s.Value.String())
}

func (s *AssignStmt) String() string {
	return fmt.Sprintf("%s = %s;", s.Target.String(), s.Value.String())
}

func (s *AugmentedAssignStmt) String() string {
	return fmt.Sprintf("%s %s= %s;", s.Target.String(), s.Op, s.Value.String())
}

func (s *ReturnStmt) String() string {
	if s.Value == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", s.Value.String())
}

func (s *ExprStmt) String() string {
	return s.Expr.String() + ";"
}

func (s *IfStmt) String() string {
	out := fmt.Sprintf("if (%s) %s", s.Cond.String(), blockString(s.Then))
	if s.Else == nil {
		return out
	}
	if len(s.Else) == 1 {
		if elif, ok := s.Else[0].(*IfStmt); ok {
			return out + " else " + elif.String()
		}
	}
	return out + " else " + blockString(s.Else)
}

func (s *WhileStmt) String() string {
	return fmt.Sprintf("while (%s) %s", s.Cond.String(), blockString(s.Body))
}

func (s *RepeatStmt) String() string {
	return fmt.Sprintf("repeat (%s) %s", s.Count.String(), blockString(s.Body))
}

func (s *UntilStmt) String() string {
	return fmt.Sprintf("do %s until (%s);", blockString(s.Body), s.Cond.String())
}

func (s *TryStmt) String() string {
	out := "try " + blockString(s.Body)
	if !s.HasCatch {
		return out
	}
	if s.CatchName != nil {
		return out + fmt.Sprintf(" catch (%s) ", s.CatchName.Value) + blockString(s.Catch)
	}
	return out + " catch " + blockString(s.Catch)
}

func (s *ForEachStmt) String() string {
	return fmt.Sprintf("foreach (%s, %s in %s) %s", s.Key.Value, s.Value.Value, s.Map.String(), blockString(s.Body))
}

func (s *BlockStmt) String() string {
	return blockString(s.Body)
}

func (e *NumberExpr) String() string {
	if e.Raw != "" {
		return e.Raw
	}
	return e.Value.String()
}

func (e *BoolExpr) String() string {
	return strconv.FormatBool(e.Value)
}

func (e *StringExpr) String() string {
	return strconv.Quote(e.Value)
}

func (*NullExpr) String() string {
	return "null"
}

func (e *IdentExpr) String() string {
	return e.Name
}

func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.String(), e.Op, e.Right.String())
}

func (e *UnaryExpr) String() string {
	if e.Op == "!!" {
		return fmt.Sprintf("%s!!", e.Operand.String())
	}
	return fmt.Sprintf("(%s%s)", e.Op, e.Operand.String())
}

func (e *ConditionalExpr) String() string {
	return fmt.Sprintf("(%s ? %s : %s)", e.Cond.String(), e.Then.String(), e.Else.String())
}

func argsString(args []Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}

func (e *CallExpr) String() string {
	return fmt.Sprintf("%s(%s)", e.Callee.Value, argsString(e.Args))
}

func (e *MethodCallExpr) String() string {
	return fmt.Sprintf("%s.%s(%s)", e.Receiver.String(), e.Method.Value, argsString(e.Args))
}

func (e *FieldAccessExpr) String() string {
	return fmt.Sprintf("%s.%s", e.Target.String(), e.Field.Value)
}

func (e *StructInstanceExpr) String() string {
	if len(e.Fields) == 0 {
		return e.Type.Value + "{}"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Name.Value, f.Value.String())
	}
	return fmt.Sprintf("%s{ %s }", e.Type.Value, strings.Join(parts, ", "))
}

func (e *InitOfExpr) String() string {
	return fmt.Sprintf("initOf %s(%s)", e.Contract.Value, argsString(e.Args))
}

func (e *BadExpr) String() string {
	return fmt.Sprintf("BadExpr: %s", e.Bad.Message)
}
