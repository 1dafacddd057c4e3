package driver

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"tactscan/internal/ast"
	"tactscan/internal/errors"
	"tactscan/internal/parser"
	"tactscan/internal/stdlib"
)

// parsed is a source file with the problems found while parsing it.
type parsed struct {
	file        *ast.File
	source      string
	diagnostics []errors.Diagnostic
}

// cache parses every file once, even when several projects importing it are
// loaded concurrently. Parsed files are never modified afterwards.
type cache struct {
	group   singleflight.Group
	mu      sync.Mutex
	files   map[string]*parsed
	overlay map[string]string
}

func newCache(overlay map[string]string) *cache {
	return &cache{files: make(map[string]*parsed), overlay: overlay}
}

func (c *cache) get(path string) (*parsed, error) {
	c.mu.Lock()
	p, ok := c.files[path]
	c.mu.Unlock()
	if ok {
		return p, nil
	}

	v, err, _ := c.group.Do(path, func() (any, error) {
		p, err := c.parse(path)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.files[path] = p
		c.mu.Unlock()
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*parsed), nil
}

func (c *cache) parse(path string) (*parsed, error) {
	origin := ast.OriginUser
	var src string
	switch {
	case stdlib.IsStdlibPath(path):
		def := stdlib.GetModuleDefinition(path)
		if def == nil {
			return nil, errors.Executionf(errors.ErrorImportNotFound, "unknown standard library module %s", path)
		}
		s, err := def.Source()
		if err != nil {
			return nil, errors.Internalf("reading %s: %w", path, err)
		}
		src, origin = s, ast.OriginStdlib
	default:
		if s, ok := c.overlay[path]; ok {
			src = s
			break
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Executionf(errors.ErrorImportNotFound, "failed to read %s: %w", path, err)
		}
		src = string(data)
	}

	name := displayPath(path)
	file, parseErrs, scanErrs := parser.ParseSource(name, src)
	file.Origin = origin

	p := &parsed{file: file, source: src}
	for _, e := range scanErrs {
		p.diagnostics = append(p.diagnostics, errors.InvalidCharacter(e.Message, position(name, e.Position), e.Length))
	}
	for _, e := range parseErrs {
		p.diagnostics = append(p.diagnostics, errors.SyntaxError(e.Message, position(name, e.Position)))
	}
	if origin == ast.OriginStdlib && len(p.diagnostics) > 0 {
		return nil, errors.Internalf("standard library module %s does not parse: %s", path, p.diagnostics[0].Message)
	}
	return p, nil
}

func position(file string, pos parser.Position) ast.Position {
	return ast.Position{Filename: file, Line: pos.Line, Column: pos.Column, Offset: pos.Offset}
}

// displayPath shortens paths below the working directory for messages.
func displayPath(path string) string {
	if stdlib.IsStdlibPath(path) {
		return path
	}
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// resolveImport returns the path an import of from refers to.
func resolveImport(from string, imp string) string {
	if stdlib.IsStdlibPath(imp) {
		return imp
	}
	if filepath.Ext(imp) == "" {
		imp += ".tact"
	}
	if filepath.IsAbs(imp) {
		return filepath.Clean(imp)
	}
	return filepath.Join(filepath.Dir(from), imp)
}

// project is the set of files reachable from one entry point.
type project struct {
	files       []*parsed
	diagnostics []errors.Diagnostic
}

// load collects the entry point, everything it imports and the core
// standard library, in depth-first import order.
func (c *cache) load(entry string) (*project, error) {
	proj := &project{}
	seen := make(map[string]bool)

	var visit func(path string, importedAt *ast.Import) error
	visit = func(path string, importedAt *ast.Import) error {
		if seen[path] {
			return nil
		}
		seen[path] = true

		p, err := c.get(path)
		if err != nil {
			if importedAt != nil && errors.IsExecution(err) {
				proj.diagnostics = append(proj.diagnostics,
					errors.NewError(errors.ErrorImportNotFound, err.Error(), importedAt.Pos).Build())
				return nil
			}
			return err
		}
		proj.files = append(proj.files, p)
		proj.diagnostics = append(proj.diagnostics, p.diagnostics...)

		for _, imp := range p.file.Imports {
			if err := visit(resolveImport(path, imp.Path), imp); err != nil {
				return err
			}
		}
		return nil
	}

	if err := visit(entry, nil); err != nil {
		return nil, err
	}
	if err := visit(stdlib.CorePath, nil); err != nil {
		return nil, err
	}
	return proj, nil
}
