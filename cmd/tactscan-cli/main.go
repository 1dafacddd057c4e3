// SPDX-License-Identifier: Apache-2.0
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"tactscan/internal/config"
	"tactscan/internal/detectors"
	"tactscan/internal/driver"
	"tactscan/internal/errors"
	"tactscan/internal/tools"
	"tactscan/internal/warnings"
)

const (
	exitClean    = 0
	exitWarnings = 1
	exitFailure  = 2
)

// toolFlags collects repeated -tool flags of the form
// Name[:option=value[:option=value...]].
type toolFlags []config.ToolConfig

func (f *toolFlags) String() string {
	names := make([]string, len(*f))
	for i, t := range *f {
		names[i] = t.Name
	}
	return strings.Join(names, ",")
}

func (f *toolFlags) Set(value string) error {
	parts := strings.Split(value, ":")
	tc := config.ToolConfig{Name: parts[0], Options: make(map[string]string)}
	for _, opt := range parts[1:] {
		k, v, ok := strings.Cut(opt, "=")
		if !ok {
			return fmt.Errorf("tool option %q must have the form name=value", opt)
		}
		tc.Options[k] = v
	}
	*f = append(*f, tc)
	return nil
}

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath    = flag.String("config", "", "Analyzer configuration file (YAML)")
		verbose       = flag.Bool("v", false, "Verbose logging")
		output        = flag.String("output", "", "Output format (plain, json)")
		detectorList  = flag.String("detectors", "", "Comma-separated detectors to run (default: all)")
		minSeverity   = flag.String("min-severity", "", "Report only warnings at or above this severity")
		workers       = flag.Int("workers", -1, "Functions analyzed in parallel (0: number of CPUs)")
		listTools     = flag.Bool("list-tools", false, "List the available tools and exit")
		listDetectors = flag.Bool("list-detectors", false, "List the available detectors and exit")
		requested     toolFlags
	)
	flag.Var(&requested, "tool", "Run a tool, e.g. DumpCfg:format=dot (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: tactscan [flags] <contract.tact | tact.config.json>\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	verbosity := -1
	if *verbose {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)

	if *listTools {
		fmt.Print(tools.HelpMessage())
		return exitClean
	}
	if *listDetectors {
		for _, d := range detectors.All(detectors.DefaultOptions()) {
			fmt.Printf("%-16s %-8s %s\n", d.ID(), d.Severity(), d.Category())
		}
		return exitClean
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return fail(err)
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *detectorList != "" {
		cfg.Detectors = strings.Split(*detectorList, ",")
	}
	if *minSeverity != "" {
		if cfg.MinSeverity, err = warnings.ParseSeverity(*minSeverity); err != nil {
			return fail(err)
		}
	}
	if *workers >= 0 {
		cfg.Workers = *workers
	}
	cfg.Tools = append(cfg.Tools, requested...)
	if err := cfg.Validate(); err != nil {
		return fail(err)
	}

	var projects *config.Projects
	switch flag.NArg() {
	case 0:
		if len(cfg.Tools) == 0 {
			flag.Usage()
			return exitFailure
		}
	case 1:
		if projects, err = loadProjects(flag.Arg(0)); err != nil {
			return fail(err)
		}
	default:
		flag.Usage()
		return exitFailure
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	startTime := time.Now()
	res, err := driver.New(cfg, projects).Run(ctx)
	if err != nil {
		return fail(err)
	}
	duration := formatDuration(time.Since(startTime))

	reporter := errors.NewSourceReporter(res.Sources)
	if res.HasErrors() {
		fmt.Fprint(os.Stderr, reporter.FormatAll(res.Errors))
	}

	switch cfg.Output {
	case config.OutputJSON:
		data, err := warnings.JSON(res.Warnings)
		if err != nil {
			return fail(err)
		}
		fmt.Println(string(data))
	default:
		fmt.Print(warnings.Format(res.Warnings, reporter))
	}
	for _, out := range res.Tools {
		fmt.Print(out.Text)
		if !strings.HasSuffix(out.Text, "\n") {
			fmt.Println()
		}
	}

	switch {
	case res.HasErrors():
		color.New(color.FgRed).Fprintf(os.Stderr, "Analysis failed after %s\n", duration)
		return exitFailure
	case len(res.Warnings) > 0:
		return exitWarnings
	}
	if cfg.Output != config.OutputJSON && projects != nil {
		color.New(color.FgGreen).Fprintf(os.Stderr, "Analyzed %d projects in %s\n", len(projects.Config.Projects), duration)
	}
	return exitClean
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func loadProjects(path string) (*config.Projects, error) {
	if filepath.Ext(path) == ".json" {
		return config.LoadProjects(path)
	}
	return config.FromContract(path)
}

func fail(err error) int {
	if errors.IsInternal(err) {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "%s\nplease report this as a bug\n", err)
	} else {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
	}
	return exitFailure
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
