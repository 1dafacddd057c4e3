// Package driver runs an analysis end to end: it loads the projects, builds
// their compilation units, runs the detectors and tools and collects what
// they report.
package driver

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"tactscan/internal/ast"
	"tactscan/internal/config"
	"tactscan/internal/detectors"
	"tactscan/internal/errors"
	"tactscan/internal/ir"
	"tactscan/internal/tools"
	"tactscan/internal/warnings"
)

var log = commonlog.GetLogger("tactscan.driver")

// Result is everything an analysis run reports.
type Result struct {
	Warnings []warnings.Warning
	Tools    []tools.Output
	// Errors are parse and import errors. Projects with errors are not
	// analyzed.
	Errors []errors.Diagnostic
	// Sources holds the text of every user file by display path.
	Sources map[string]string
}

// HasErrors reports whether some project could not be analyzed.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Driver runs the configured detectors and tools over a set of projects.
type Driver struct {
	config   *config.Config
	projects *config.Projects
	overlay  map[string]string
}

// New creates a driver. projects may be nil when only standalone tools are
// configured.
func New(cfg *config.Config, projects *config.Projects) *Driver {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Driver{config: cfg, projects: projects, overlay: make(map[string]string)}
}

// WithOverlay makes the driver read path from src instead of the disk, as
// for unsaved editor buffers. path must be absolute.
func (d *Driver) WithOverlay(path, src string) *Driver {
	d.overlay[path] = src
	return d
}

type projectResult struct {
	warnings []warnings.Warning
	tools    []tools.Output
	errors   []errors.Diagnostic
	sources  map[string]string
}

// Run analyzes all projects in parallel. Results are ordered by project,
// then by detector, independently of scheduling.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	detectorList, err := d.detectors()
	if err != nil {
		return nil, err
	}

	if d.projects == nil {
		outputs, err := d.runStandaloneTools()
		if err != nil {
			return nil, err
		}
		return &Result{Tools: outputs, Sources: map[string]string{}}, nil
	}

	c := newCache(d.overlay)
	projects := d.projects.Config.Projects
	results := make([]projectResult, len(projects))

	g, ctx := errgroup.WithContext(ctx)
	for i, p := range projects {
		g.Go(func() error {
			r, err := d.runProject(ctx, c, p, detectorList)
			if err != nil {
				return fmt.Errorf("project %s: %w", p.Name, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Sources: make(map[string]string)}
	for _, r := range results {
		res.Warnings = append(res.Warnings, r.warnings...)
		res.Tools = append(res.Tools, r.tools...)
		res.Errors = append(res.Errors, r.errors...)
		maps.Copy(res.Sources, r.sources)
	}
	return res, nil
}

func (d *Driver) detectors() ([]detectors.Detector, error) {
	var ds []detectors.Detector
	for _, name := range d.config.EnabledDetectors() {
		det, err := detectors.Find(name, d.config.DetectorOptions())
		if err != nil {
			return nil, err
		}
		ds = append(ds, det)
	}
	return ds, nil
}

func (d *Driver) runProject(ctx context.Context, c *cache, p config.Project, ds []detectors.Detector) (projectResult, error) {
	entry := d.projects.Resolve(p.Path)
	loaded, err := c.load(entry)
	if err != nil {
		return projectResult{}, err
	}

	r := projectResult{errors: loaded.diagnostics, sources: make(map[string]string)}
	files := make([]*ast.File, len(loaded.files))
	for i, f := range loaded.files {
		files[i] = f.file
		if f.file.Origin == ast.OriginUser {
			r.sources[f.file.Path] = f.source
		}
	}
	if len(r.errors) > 0 {
		log.Warningf("%s: %d errors, skipping analysis", p.Name, len(r.errors))
		return r, nil
	}

	cu := ir.NewCompilationUnit(p.Name, files)
	log.Infof("%s: %d files, %d functions", p.Name, len(files), len(cu.Cfgs()))

	r.warnings, err = d.runDetectors(ctx, cu, ds)
	if err != nil {
		return projectResult{}, err
	}
	r.tools, err = d.runTools(cu)
	if err != nil {
		return projectResult{}, err
	}
	return r, nil
}

func (d *Driver) runDetectors(ctx context.Context, cu *ir.CompilationUnit, ds []detectors.Detector) ([]warnings.Warning, error) {
	found := make([][]warnings.Warning, len(ds))
	g, ctx := errgroup.WithContext(ctx)
	for i, det := range ds {
		g.Go(func() error {
			ws, err := det.Check(ctx, cu)
			if err != nil {
				return fmt.Errorf("%s: %w", det.ID(), err)
			}
			log.Infof("%s: %s found %d warnings", cu.ProjectName, det.ID(), len(ws))
			found[i] = ws
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return warnings.Filter(slices.Concat(found...), d.config.MinSeverity), nil
}

func (d *Driver) runTools(cu *ir.CompilationUnit) ([]tools.Output, error) {
	var outputs []tools.Output
	for _, tc := range d.config.Tools {
		tool, err := tools.Find(tc.Name, tc.Options, tools.Env{Config: d.config})
		if err != nil {
			return nil, err
		}
		out, err := tool.Run(cu)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", tc.Name, err)
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

func (d *Driver) runStandaloneTools() ([]tools.Output, error) {
	var outputs []tools.Output
	for _, tc := range d.config.Tools {
		tool, err := tools.Find(tc.Name, tc.Options, tools.Env{Config: d.config})
		if err != nil {
			return nil, err
		}
		standalone, ok := tool.(tools.Standalone)
		if !ok {
			return nil, errors.Executionf(errors.ErrorUnknownName, "tool %s needs sources to analyze", tc.Name)
		}
		out, err := standalone.RunStandalone()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", tc.Name, err)
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}
