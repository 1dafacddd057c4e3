// Package detectors holds the built-in checks run over a compilation unit.
package detectors

import (
	"context"
	"runtime"

	"github.com/tliron/commonlog"

	"tactscan/internal/errors"
	"tactscan/internal/ir"
	"tactscan/internal/warnings"
)

var log = commonlog.GetLogger("tactscan.detectors")

// Detector inspects a compilation unit and reports findings. Check returns
// an error only when the analysis itself fails; findings are never errors.
type Detector interface {
	ID() string
	Severity() warnings.Severity
	Category() warnings.Category
	Check(ctx context.Context, cu *ir.CompilationUnit) ([]warnings.Warning, error)
}

// Options tune the detectors.
type Options struct {
	// WideningThreshold is the number of times a variable may grow before
	// it is widened to Top. Negative selects the lattice default.
	WideningThreshold int
	// Narrowing restricts variables by the conditions of require-like calls.
	Narrowing bool
	// IncludeStdlib also analyzes the bundled standard library.
	IncludeStdlib bool
	// Workers bounds the functions analyzed in parallel; 0 means GOMAXPROCS.
	Workers int
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{WideningThreshold: -1, Narrowing: true}
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (o Options) cfgs(cu *ir.CompilationUnit) []*ir.Cfg {
	var cfgs []*ir.Cfg
	cu.ForEachCFG(ir.ForEachOptions{IncludeStdlib: o.IncludeStdlib}, func(cfg *ir.Cfg) {
		cfgs = append(cfgs, cfg)
	})
	return cfgs
}

// base carries the fields shared by all detectors.
type base struct {
	id       string
	severity warnings.Severity
	category warnings.Category
	opts     Options
}

func (b base) ID() string                  { return b.id }
func (b base) Severity() warnings.Severity { return b.severity }
func (b base) Category() warnings.Category { return b.category }

func (b base) makeWarning(w warnings.Warning) warnings.Warning {
	w.DetectorID = b.id
	w.Severity = b.severity
	w.Category = b.category
	return w
}

type entry struct {
	name string
	make func(Options) Detector
}

// registry lists the built-in detectors in the order they run and report.
var registry = []entry{
	{"DivisionByZero", func(o Options) Detector { return NewDivisionByZero(o) }},
	{"RaceCondition", func(o Options) Detector { return NewRaceCondition(o) }},
}

// Names returns the names of all built-in detectors.
func Names() []string {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.name
	}
	return names
}

// Find creates the detector with the given name.
func Find(name string, opts Options) (Detector, error) {
	for _, e := range registry {
		if e.name == name {
			return e.make(opts), nil
		}
	}
	return nil, errors.UnknownName("detector", name, Names())
}

// All creates every built-in detector.
func All(opts Options) []Detector {
	ds := make([]Detector, len(registry))
	for i, e := range registry {
		ds[i] = e.make(opts)
	}
	return ds
}
