package ir

import (
	"slices"
	"strings"

	"tactscan/internal/ast"
	"tactscan/internal/stdlib"
)

// Effect is a set of observable side effects of a function.
type Effect uint8

const (
	EffectSend Effect = 1 << iota
	EffectStateRead
	EffectStateWrite
)

// Has reports whether all effects of o are in e.
func (e Effect) Has(o Effect) bool {
	return e&o == o
}

func (e Effect) String() string {
	var names []string
	if e.Has(EffectSend) {
		names = append(names, "send")
	}
	if e.Has(EffectStateRead) {
		names = append(names, "state-read")
	}
	if e.Has(EffectStateWrite) {
		names = append(names, "state-write")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// Map methods that modify the map they are called on.
var mutatingMethods = map[string]bool{
	"set":        true,
	"del":        true,
	"replace":    true,
	"replaceGet": true,
}

// SelfField returns the contract field accessed by `self.field`.
func SelfField(e ast.Expr) (string, bool) {
	fa, ok := e.(*ast.FieldAccessExpr)
	if !ok {
		return "", false
	}
	if id, ok := fa.Target.(*ast.IdentExpr); ok && id.Name == "self" {
		return fa.Field.Value, true
	}
	return "", false
}

// rootSelfField returns the field at the root of a chain such as
// self.config.owner.
func rootSelfField(e ast.Expr) (string, bool) {
	for {
		if name, ok := SelfField(e); ok {
			return name, true
		}
		fa, ok := e.(*ast.FieldAccessExpr)
		if !ok {
			return "", false
		}
		e = fa.Target
	}
}

// IsSendCall reports whether e queues an outgoing message.
func IsSendCall(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.CallExpr:
		return stdlib.IsSendFunction(e.Callee.Value)
	case *ast.MethodCallExpr:
		id, ok := e.Receiver.(*ast.IdentExpr)
		return ok && id.Name == "self" && stdlib.IsSendMethod(e.Method.Value)
	}
	return false
}

// StateWrites returns the contract fields a statement modifies, sorted.
// Nested statement bodies are not included.
func StateWrites(s ast.Stmt) []string {
	var fields []string
	switch s := s.(type) {
	case *ast.AssignStmt:
		if name, ok := rootSelfField(s.Target); ok {
			fields = append(fields, name)
		}
	case *ast.AugmentedAssignStmt:
		if name, ok := rootSelfField(s.Target); ok {
			fields = append(fields, name)
		}
	}

	for _, root := range ast.StatementExpressions(s) {
		ast.ForEachExpression(root, func(e ast.Expr) {
			call, ok := e.(*ast.MethodCallExpr)
			if !ok || !mutatingMethods[call.Method.Value] {
				return
			}
			if name, ok := rootSelfField(call.Receiver); ok {
				fields = append(fields, name)
			}
		})
	}
	return sortedSet(fields)
}

// StateReads returns the contract fields a statement reads, sorted. The
// target of a plain assignment is not a read.
func StateReads(s ast.Stmt) []string {
	var fields []string
	for _, root := range ast.StatementExpressions(s) {
		if assign, ok := s.(*ast.AssignStmt); ok && root == assign.Target {
			continue
		}
		ast.ForEachExpression(root, func(e ast.Expr) {
			if name, ok := SelfField(e); ok {
				fields = append(fields, name)
			}
		})
	}
	return sortedSet(fields)
}

// Sends reports whether a statement itself sends a message.
func Sends(s ast.Stmt) bool {
	return len(ast.FindInExpressions(s, IsSendCall)) > 0
}

// StatementEffects returns the direct effects of one statement.
func StatementEffects(s ast.Stmt) Effect {
	var e Effect
	if Sends(s) {
		e |= EffectSend
	}
	if len(StateReads(s)) > 0 {
		e |= EffectStateRead
	}
	if len(StateWrites(s)) > 0 {
		e |= EffectStateWrite
	}
	return e
}

func sortedSet(names []string) []string {
	slices.Sort(names)
	return slices.Compact(names)
}
