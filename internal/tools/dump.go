package tools

import (
	"fmt"
	"strings"

	"tactscan/internal/ast"
	"tactscan/internal/config"
	"tactscan/internal/errors"
	"tactscan/internal/ir"
)

// DumpAst prints the parsed sources.
type DumpAst struct {
	base
}

func NewDumpAst(options map[string]string) (*DumpAst, error) {
	b, err := newBase("DumpAst", (&DumpAst{}).DefaultOptions(), options)
	if err != nil {
		return nil, err
	}
	return &DumpAst{b}, nil
}

func (*DumpAst) Description() string {
	return "Dumps the AST of every source file."
}

func (*DumpAst) DefaultOptions() map[string]string {
	return map[string]string{"include_stdlib": "false"}
}

func (*DumpAst) OptionDescriptions() map[string]string {
	return map[string]string{"include_stdlib": "Also dump the standard library."}
}

func (t *DumpAst) Run(cu *ir.CompilationUnit) (Output, error) {
	stdlib, err := t.boolOption("include_stdlib")
	if err != nil {
		return Output{}, err
	}

	var b strings.Builder
	for _, file := range cu.Files {
		if file.Origin == ast.OriginStdlib && !stdlib {
			continue
		}
		fmt.Fprintf(&b, "// %s\n", file.Path)
		b.WriteString(file.String())
	}
	return t.output(cu, b.String()), nil
}

// DumpCfg prints the control-flow graph of every function.
type DumpCfg struct {
	base
}

func NewDumpCfg(options map[string]string) (*DumpCfg, error) {
	b, err := newBase("DumpCfg", (&DumpCfg{}).DefaultOptions(), options)
	if err != nil {
		return nil, err
	}
	return &DumpCfg{b}, nil
}

func (*DumpCfg) Description() string {
	return "Dumps the control-flow graphs of all functions."
}

func (*DumpCfg) DefaultOptions() map[string]string {
	return map[string]string{
		"format":         "text",
		"include_stdlib": "false",
		"output":         "",
	}
}

func (*DumpCfg) OptionDescriptions() map[string]string {
	return map[string]string{
		"format":         "Output format: text, dot, svg or png.",
		"include_stdlib": "Also dump standard library functions.",
		"output":         "File the png image is written to.",
	}
}

func (t *DumpCfg) Run(cu *ir.CompilationUnit) (Output, error) {
	format, err := t.choice("format", graphFormats...)
	if err != nil {
		return Output{}, err
	}
	stdlib, err := t.boolOption("include_stdlib")
	if err != nil {
		return Output{}, err
	}

	var cfgs []*ir.Cfg
	cu.ForEachCFG(ir.ForEachOptions{IncludeStdlib: stdlib}, func(cfg *ir.Cfg) {
		cfgs = append(cfgs, cfg)
	})

	p := ir.NewPrinter(cu)
	if format == "text" {
		for _, cfg := range cfgs {
			if err := p.PrintCfg(cfg); err != nil {
				return Output{}, err
			}
		}
		return t.output(cu, p.String()), nil
	}

	if err := p.PrintCfgDot(cfgs); err != nil {
		return Output{}, err
	}
	text, err := render(p.String(), format, t.option("output"))
	if err != nil {
		return Output{}, err
	}
	return t.output(cu, text), nil
}

// DumpCallGraph prints the call graph with the effects of every function.
type DumpCallGraph struct {
	base
}

func NewDumpCallGraph(options map[string]string) (*DumpCallGraph, error) {
	b, err := newBase("DumpCallGraph", (&DumpCallGraph{}).DefaultOptions(), options)
	if err != nil {
		return nil, err
	}
	return &DumpCallGraph{b}, nil
}

func (*DumpCallGraph) Description() string {
	return "Dumps the call graph."
}

func (*DumpCallGraph) DefaultOptions() map[string]string {
	return map[string]string{"format": "text", "output": ""}
}

func (*DumpCallGraph) OptionDescriptions() map[string]string {
	return map[string]string{
		"format": "Output format: text, dot, svg or png.",
		"output": "File the png image is written to.",
	}
}

func (t *DumpCallGraph) Run(cu *ir.CompilationUnit) (Output, error) {
	format, err := t.choice("format", graphFormats...)
	if err != nil {
		return Output{}, err
	}

	p := ir.NewPrinter(cu)
	if format == "text" {
		p.PrintCallGraph(cu.CallGraph)
		return t.output(cu, p.String()), nil
	}

	p.PrintCallGraphDot(cu.CallGraph)
	text, err := render(p.String(), format, t.option("output"))
	if err != nil {
		return Output{}, err
	}
	return t.output(cu, text), nil
}

// DumpImports prints the files of the project and the modules they import.
type DumpImports struct {
	base
}

func NewDumpImports(options map[string]string) (*DumpImports, error) {
	b, err := newBase("DumpImports", (&DumpImports{}).DefaultOptions(), options)
	if err != nil {
		return nil, err
	}
	return &DumpImports{b}, nil
}

func (*DumpImports) Description() string {
	return "Dumps the import graph of the project."
}

func (*DumpImports) DefaultOptions() map[string]string {
	return map[string]string{"format": "text", "include_stdlib": "false"}
}

func (*DumpImports) OptionDescriptions() map[string]string {
	return map[string]string{
		"format":         "Output format: text or dot.",
		"include_stdlib": "Also list the imports of standard library modules.",
	}
}

func (t *DumpImports) Run(cu *ir.CompilationUnit) (Output, error) {
	format, err := t.choice("format", "text", "dot")
	if err != nil {
		return Output{}, err
	}
	stdlib, err := t.boolOption("include_stdlib")
	if err != nil {
		return Output{}, err
	}

	var b strings.Builder
	if format == "dot" {
		b.WriteString("digraph \"Imports\" {\n")
	}
	for _, file := range cu.Files {
		if file.Origin == ast.OriginStdlib && !stdlib {
			continue
		}
		if format == "text" {
			fmt.Fprintf(&b, "%s [%s]\n", file.Path, file.Origin)
		}
		for _, imp := range file.Imports {
			if format == "dot" {
				fmt.Fprintf(&b, "  %q -> %q;\n", file.Path, imp.Path)
			} else {
				fmt.Fprintf(&b, "  -> %s\n", imp.Path)
			}
		}
	}
	if format == "dot" {
		b.WriteString("}\n")
	}
	return t.output(cu, b.String()), nil
}

// DumpConfig prints the effective analyzer configuration as YAML. It needs
// no sources.
type DumpConfig struct {
	base
	config *config.Config
}

func NewDumpConfig(options map[string]string, cfg *config.Config) (*DumpConfig, error) {
	b, err := newBase("DumpConfig", (&DumpConfig{}).DefaultOptions(), options)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, errors.Internalf("DumpConfig needs a configuration")
	}
	return &DumpConfig{base: b, config: cfg}, nil
}

func (*DumpConfig) Description() string {
	return "Dumps the effective analyzer configuration."
}

func (*DumpConfig) DefaultOptions() map[string]string {
	return map[string]string{}
}

func (*DumpConfig) OptionDescriptions() map[string]string {
	return map[string]string{}
}

func (t *DumpConfig) Run(cu *ir.CompilationUnit) (Output, error) {
	out, err := t.RunStandalone()
	if err != nil {
		return Output{}, err
	}
	out.ProjectName = cu.ProjectName
	return out, nil
}

func (t *DumpConfig) RunStandalone() (Output, error) {
	data, err := t.config.Marshal()
	if err != nil {
		return Output{}, fmt.Errorf("%s: %w", t.id, err)
	}
	return t.output(nil, string(data)), nil
}
