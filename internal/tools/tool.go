// Package tools holds the built-in tools: commands that dump the internal
// representations of a project instead of looking for problems in it.
package tools

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/tliron/commonlog"

	"tactscan/internal/config"
	"tactscan/internal/errors"
	"tactscan/internal/ir"
)

var log = commonlog.GetLogger("tactscan.tools")

// Output is the text a tool produced for a project.
type Output struct {
	Name        string `json:"name"`
	ProjectName string `json:"projectName,omitempty"`
	Text        string `json:"output"`
}

// Tool runs on a compilation unit. Options are given as strings and merged
// with the tool's defaults.
type Tool interface {
	ID() string
	Description() string
	DefaultOptions() map[string]string
	OptionDescriptions() map[string]string
	Run(cu *ir.CompilationUnit) (Output, error)
}

// Standalone is implemented by tools that can run without sources.
type Standalone interface {
	RunStandalone() (Output, error)
}

// Env is what tools may need besides the compilation unit.
type Env struct {
	Config *config.Config
}

type base struct {
	id      string
	options map[string]string
}

func newBase(id string, defaults, options map[string]string) (base, error) {
	merged := maps.Clone(defaults)
	for name, value := range options {
		if _, ok := defaults[name]; !ok {
			return base{}, errors.UnknownName(id+" option", name, slices.Sorted(maps.Keys(defaults)))
		}
		merged[name] = value
	}
	return base{id: id, options: merged}, nil
}

func (b base) ID() string { return b.id }

func (b base) option(name string) string {
	return b.options[name]
}

func (b base) boolOption(name string) (bool, error) {
	v, err := strconv.ParseBool(b.options[name])
	if err != nil {
		return false, errors.Executionf(errors.ErrorInvalidConfig, "%s: option %s must be true or false, got %q", b.id, name, b.options[name])
	}
	return v, nil
}

func (b base) choice(name string, allowed ...string) (string, error) {
	v := b.options[name]
	if !slices.Contains(allowed, v) {
		return "", errors.Executionf(errors.ErrorInvalidConfig, "%s: option %s must be one of %s, got %q",
			b.id, name, strings.Join(allowed, ", "), v)
	}
	return v, nil
}

func (b base) output(cu *ir.CompilationUnit, text string) Output {
	out := Output{Name: b.id, Text: text}
	if cu != nil {
		out.ProjectName = cu.ProjectName
	}
	return out
}

type entry struct {
	name string
	make func(options map[string]string, env Env) (Tool, error)
}

var registry = []entry{
	{"DumpAst", func(o map[string]string, _ Env) (Tool, error) { return NewDumpAst(o) }},
	{"DumpCfg", func(o map[string]string, _ Env) (Tool, error) { return NewDumpCfg(o) }},
	{"DumpConfig", func(o map[string]string, env Env) (Tool, error) { return NewDumpConfig(o, env.Config) }},
	{"DumpImports", func(o map[string]string, _ Env) (Tool, error) { return NewDumpImports(o) }},
	{"DumpCallGraph", func(o map[string]string, _ Env) (Tool, error) { return NewDumpCallGraph(o) }},
}

// Names returns the names of all built-in tools.
func Names() []string {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.name
	}
	return names
}

// Find creates the tool with the given name.
func Find(name string, options map[string]string, env Env) (Tool, error) {
	for _, e := range registry {
		if e.name == name {
			return e.make(options, env)
		}
	}
	return nil, errors.UnknownName("tool", name, Names())
}

// HelpMessage describes every tool and its options.
func HelpMessage() string {
	var b strings.Builder
	b.WriteString("Available tools:\n\n")
	for _, e := range registry {
		tool, err := e.make(nil, Env{Config: config.Default()})
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "* %s: %s\n", e.name, tool.Description())
		descriptions := tool.OptionDescriptions()
		if len(descriptions) > 0 {
			b.WriteString("  Options:\n")
		}
		for _, name := range slices.Sorted(maps.Keys(descriptions)) {
			fmt.Fprintf(&b, "  - %s: %s (default: %q)\n", name, descriptions[name], tool.DefaultOptions()[name])
		}
		b.WriteString("\n")
	}
	return b.String()
}
