package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tactscan/internal/errors"
	"tactscan/internal/warnings"
)

func TestDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, []string{"DivisionByZero", "RaceCondition"}, cfg.EnabledDetectors())
	assert.Equal(t, 3, cfg.DetectorOptions().WideningThreshold)
	assert.True(t, cfg.DetectorOptions().Narrowing)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
detectors: [DivisionByZero]
min_severity: high
widening_threshold: 5
narrowing: false
workers: 2
output: json
tools:
  - name: DumpCfg
    options:
      format: dot
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"DivisionByZero"}, cfg.EnabledDetectors())
	assert.Equal(t, warnings.High, cfg.MinSeverity)
	assert.Equal(t, OutputJSON, cfg.Output)
	require.Len(t, cfg.Tools, 1)
	assert.Equal(t, "dot", cfg.Tools[0].Options["format"])

	opts := cfg.DetectorOptions()
	assert.Equal(t, 5, opts.WideningThreshold)
	assert.False(t, opts.Narrowing)
	assert.Equal(t, 2, opts.Workers)
}

func TestDisabledDetectors(t *testing.T) {
	cfg, err := Parse([]byte("disabled_detectors: [RaceCondition]\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"DivisionByZero"}, cfg.EnabledDetectors())
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown key", "threshold: 3\n", "field threshold not found"},
		{"unknown detector", "detectors: [Reentrancy]\n", "unknown detector 'Reentrancy'"},
		{"severity", "min_severity: severe\n", "unknown severity"},
		{"negative threshold", "widening_threshold: -1\n", "widening_threshold must not be negative"},
		{"output", "output: html\n", `output must be "plain" or "json"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.True(t, errors.IsExecution(err))
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.MinSeverity = warnings.Medium
	cfg.Tools = []ToolConfig{{Name: "DumpAst"}}

	data, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "min_severity: medium")
	assert.Contains(t, string(data), "widening_threshold: 3")

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsExecution(err))
}

func TestProjects(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tact.config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "projects": [
    {"name": "jetton", "path": "./contracts/jetton.tact", "output": "./output"},
    {"name": "wallet", "path": "wallet.tact", "output": "./output"}
  ]
}`), 0o644))

	projects, err := LoadProjects(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "contracts", "jetton.tact"),
		filepath.Join(dir, "wallet.tact"),
	}, projects.EntryPoints())

	p, ok := projects.FindByName("wallet")
	require.True(t, ok)
	assert.Equal(t, "wallet.tact", p.Path)
	_, ok = projects.FindByName("missing")
	assert.False(t, ok)
}

func TestInvalidProjects(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tact.config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"projects": [{"name": "x"}]}`), 0o644))

	_, err := LoadProjects(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs a name and a path")

	_, err = LoadProjects(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.IsExecution(err))
}

func TestFromContract(t *testing.T) {
	projects, err := FromContract("contracts/counter.tact")
	require.NoError(t, err)

	require.Len(t, projects.Config.Projects, 1)
	assert.Equal(t, "counter", projects.Config.Projects[0].Name)
	abs, _ := filepath.Abs("contracts/counter.tact")
	assert.Equal(t, []string{abs}, projects.EntryPoints())
}
