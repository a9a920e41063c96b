package main

import (
	"context"
	"os"
	"strconv"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"

	"github.com/zkregex-go/compiler/internal/zkerr"
	"github.com/zkregex-go/compiler/pkg/zkregex"
)

// runRaw implements the `raw` subcommand: compile a single regex pattern
// directly (spec.md §6's `compile`), writing generated circuit source to
// -o (or stdout when empty).
func runRaw(args []string) error {
	var pattern, framework, templateName, output, configPath string
	var h, m int
	var verbose bool
	var maxBytes goflags.RuntimeMap

	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription("Compile a raw regex pattern into a zero-knowledge circuit.")

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&pattern, "pattern", "p", "", "regex pattern to compile"),
		flagSet.RuntimeMapVarP(&maxBytes, "max-bytes", "mb", nil, "per-group max byte length in group=N form (e.g. -mb 1=32)"),
	)

	flagSet.CreateGroup("circuit", "Circuit",
		flagSet.StringVarP(&framework, "framework", "f", "", "target framework: circom or noir (overrides config default)"),
		flagSet.StringVarP(&templateName, "template", "t", "", "emitted template/function name (overrides config default)"),
		flagSet.IntVar(&h, "H", 0, "haystack length bound (overrides config default)"),
		flagSet.IntVar(&m, "M", 0, "path length bound (overrides config default)"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&output, "output", "o", "", "output file for generated circuit source (default stdout)"),
		flagSet.StringVar(&configPath, "config", "", "optional YAML settings file"),
		flagSet.BoolVarP(&verbose, "verbose", "v", false, "enable verbose pipeline tracing"),
	)

	if err := flagSet.Parse(); err != nil {
		return zkerr.Wrap(zkerr.InvalidInput, err, "parsing flags")
	}
	if verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	if pattern == "" {
		return zkerr.New(zkerr.InvalidInput, "raw: -pattern is required")
	}

	cfg, err := loadSettings(configPath)
	if err != nil {
		return err
	}
	cfg = overlaySettings(cfg, framework, templateName, h, m)

	fw, err := parseFramework(cfg.Framework)
	if err != nil {
		return err
	}

	maxBytesMap, err := parseMaxBytes(maxBytes)
	if err != nil {
		return err
	}

	_, code, err := zkregex.Compile(context.Background(), pattern, zkregex.Options{
		Framework:        fw,
		TemplateName:     cfg.TemplateName,
		MaxBytesPerGroup: maxBytesMap,
		H:                cfg.H,
		M:                cfg.M,
		Verbose:          verbose,
	})
	if err != nil {
		return err
	}

	return writeOutput(output, code)
}

func overlaySettings(base settings, framework, templateName string, h, m int) settings {
	if framework != "" {
		base.Framework = framework
	}
	if templateName != "" {
		base.TemplateName = templateName
	}
	if h > 0 {
		base.H = h
	}
	if m > 0 {
		base.M = m
	}
	return base
}

func parseFramework(s string) (zkregex.Framework, error) {
	fw := zkregex.Framework(s)
	if err := fw.Validate(); err != nil {
		return "", err
	}
	return fw, nil
}

func parseMaxBytes(m goflags.RuntimeMap) (map[int]int, error) {
	out := map[int]int{}
	for k, v := range m.AsMap() {
		group, err := strconv.Atoi(k)
		if err != nil {
			return nil, zkerr.Wrap(zkerr.InvalidInput, err, "max-bytes key %q is not an integer group id", k)
		}
		mb, err := strconv.Atoi(v)
		if err != nil {
			return nil, zkerr.Wrap(zkerr.InvalidInput, err, "max-bytes value %q is not an integer", v)
		}
		out[group] = mb
	}
	return out, nil
}

func writeOutput(path, content string) error {
	if path == "" {
		_, err := os.Stdout.WriteString(content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return zkerr.Wrap(zkerr.InvalidInput, err, "writing output file %q", path)
	}
	return nil
}
