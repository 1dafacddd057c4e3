package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"tactscan/internal/errors"
)

// Project is one entry of a Tact project file.
type Project struct {
	Name    string         `json:"name"`
	Path    string         `json:"path"`
	Output  string         `json:"output"`
	Options map[string]any `json:"options,omitempty"`
}

// TactConfig is the content of tact.config.json.
type TactConfig struct {
	Projects []Project `json:"projects"`
}

// Projects is a Tact project file together with the directory its paths are
// relative to.
type Projects struct {
	Root   string
	Config TactConfig
}

// LoadProjects reads a Tact project file.
func LoadProjects(path string) (*Projects, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Executionf(errors.ErrorInvalidConfig, "invalid project file path %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, errors.Executionf(errors.ErrorInvalidConfig, "unable to find config file at %s: %w", abs, err)
	}

	var cfg TactConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Executionf(errors.ErrorInvalidConfig, "incorrect Tact project file %s: %w", abs, err)
	}
	if len(cfg.Projects) == 0 {
		return nil, errors.Executionf(errors.ErrorInvalidConfig, "incorrect Tact project file %s: no projects", abs)
	}
	for i, p := range cfg.Projects {
		if p.Name == "" || p.Path == "" {
			return nil, errors.Executionf(errors.ErrorInvalidConfig,
				"incorrect Tact project file %s: project %d needs a name and a path", abs, i)
		}
	}
	return &Projects{Root: filepath.Dir(abs), Config: cfg}, nil
}

// FromContract describes a single contract as a project named after the
// file. The root is the contract's directory.
func FromContract(contractPath string) (*Projects, error) {
	abs, err := filepath.Abs(contractPath)
	if err != nil {
		return nil, errors.Executionf(errors.ErrorInvalidConfig, "invalid contract path %s: %w", contractPath, err)
	}
	name := strings.TrimSuffix(filepath.Base(abs), ".tact")
	return &Projects{
		Root: filepath.Dir(abs),
		Config: TactConfig{Projects: []Project{{
			Name:    name,
			Path:    filepath.Base(abs),
			Output:  filepath.Join(os.TempDir(), "tactscan", "output"),
			Options: map[string]any{"debug": false, "external": true},
		}}},
	}, nil
}

// Resolve returns the absolute path of a project path.
func (p *Projects) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(p.Root, path)
}

// FindByName returns the project with the given name.
func (p *Projects) FindByName(name string) (Project, bool) {
	for _, project := range p.Config.Projects {
		if project.Name == name {
			return project, true
		}
	}
	return Project{}, false
}

// EntryPoints returns the absolute paths of all projects' entry files.
func (p *Projects) EntryPoints() []string {
	paths := make([]string, len(p.Config.Projects))
	for i, project := range p.Config.Projects {
		paths[i] = p.Resolve(project.Path)
	}
	return paths
}
