// Package ir holds the compilation unit the analyses run on: the parsed
// files, one control-flow graph per function body and the call graph.
package ir

import (
	"strconv"

	"tactscan/internal/ast"
	"tactscan/internal/errors"
)

// FunctionRef locates the declaration a CFG was built from.
type FunctionRef struct {
	Decl     *ast.Function
	Contract *ast.Contract // nil for top-level functions
	File     *ast.File
}

// CompilationUnit is the immutable input of detectors and tools.
type CompilationUnit struct {
	ProjectName string
	Files       []*ast.File
	CallGraph   *CallGraph

	cfgs       []*Cfg
	functions  []FunctionRef // indexed by CfgID
	statements map[ast.NodeID]ast.Stmt
	constants  map[string]ast.Expr
}

// ForEachOptions selects the CFGs visited by ForEachCFG.
type ForEachOptions struct {
	IncludeStdlib bool
}

// NewCompilationUnit builds the CFGs and the call graph of files.
// Functions without a body, such as native bindings and abstract trait
// functions, get no CFG.
func NewCompilationUnit(projectName string, files []*ast.File) *CompilationUnit {
	cu := &CompilationUnit{
		ProjectName: projectName,
		Files:       files,
		statements:  make(map[ast.NodeID]ast.Stmt),
		constants:   make(map[string]ast.Expr),
	}

	for _, file := range files {
		cu.collectConstants(file)
		ast.ForEachFunction(file, func(owner *ast.Contract, fn *ast.Function) {
			if fn.Body == nil {
				return
			}
			id := CfgID(len(cu.cfgs))
			cu.cfgs = append(cu.cfgs, BuildCfg(id, owner, fn, file.Origin, cu.statements))
			cu.functions = append(cu.functions, FunctionRef{Decl: fn, Contract: owner, File: file})
		})
	}

	cu.CallGraph = buildCallGraph(cu)
	return cu
}

func (cu *CompilationUnit) collectConstants(file *ast.File) {
	for _, item := range file.Items {
		switch item := item.(type) {
		case *ast.Constant:
			if item.Value != nil {
				cu.constants[item.Name.Value] = item.Value
			}
		case *ast.Contract:
			for _, ci := range item.Items {
				if c, ok := ci.(*ast.Constant); ok && c.Value != nil {
					cu.constants[item.Name.Value+"::"+c.Name.Value] = c.Value
				}
			}
		}
	}
}

// Cfgs returns every CFG in declaration order.
func (cu *CompilationUnit) Cfgs() []*Cfg {
	return cu.cfgs
}

// ForEachCFG calls fn for every CFG in declaration order. Stdlib functions
// are skipped unless opts.IncludeStdlib is set.
func (cu *CompilationUnit) ForEachCFG(opts ForEachOptions, fn func(*Cfg)) {
	for _, cfg := range cu.cfgs {
		if cfg.Origin == ast.OriginStdlib && !opts.IncludeStdlib {
			continue
		}
		fn(cfg)
	}
}

// FindCfg returns the CFG of the function with the given qualified name.
func (cu *CompilationUnit) FindCfg(name string) (*Cfg, bool) {
	for _, cfg := range cu.cfgs {
		if cfg.Name == name {
			return cfg, true
		}
	}
	return nil, false
}

// Function resolves a CFG back to its declaration.
func (cu *CompilationUnit) Function(id CfgID) (FunctionRef, error) {
	if id < 0 || int(id) >= len(cu.functions) {
		return FunctionRef{}, errors.Internalf("cfg %d not found", id)
	}
	return cu.functions[id], nil
}

// Statement resolves the statement of a basic block. A missing statement
// means the CFG and the AST are out of sync and is an internal error.
func (cu *CompilationUnit) Statement(id ast.NodeID) (ast.Stmt, error) {
	stmt, ok := cu.statements[id]
	if !ok {
		return nil, errors.Internalf("statement %d not found", id)
	}
	return stmt, nil
}

// Constants returns the constant declarations by name. Contract constants
// are keyed as "Contract::NAME".
func (cu *CompilationUnit) Constants() map[string]ast.Expr {
	return cu.constants
}

// Contracts returns the contracts and traits of the unit, skipping stdlib
// declarations unless opts.IncludeStdlib is set.
func (cu *CompilationUnit) Contracts(opts ForEachOptions) []*ast.Contract {
	var contracts []*ast.Contract
	for _, file := range cu.Files {
		if file.Origin == ast.OriginStdlib && !opts.IncludeStdlib {
			continue
		}
		for _, item := range file.Items {
			if c, ok := item.(*ast.Contract); ok {
				contracts = append(contracts, c)
			}
		}
	}
	return contracts
}

// FunctionName returns the qualified name of fn as used in CFGs and the
// call graph, e.g. "Wallet::withdraw" or `Wallet::receive("stop")`.
func FunctionName(owner *ast.Contract, fn *ast.Function) string {
	var name string
	switch fn.Kind {
	case ast.FunctionReceive, ast.FunctionBounced, ast.FunctionExternal:
		name = fn.Kind.String() + "(" + receiverSelector(fn) + ")"
	case ast.FunctionInit:
		name = "init"
	default:
		name = fn.Name.Value
	}

	if owner == nil {
		return name
	}
	return owner.Name.Value + "::" + name
}

func receiverSelector(fn *ast.Function) string {
	if fn.Comment != nil {
		return strconv.Quote(*fn.Comment)
	}
	if len(fn.Params) > 0 && fn.Params[0].Type != nil {
		return fn.Params[0].Type.Name
	}
	return ""
}
