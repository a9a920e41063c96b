package main

import (
	"context"
	"os"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"

	"github.com/zkregex-go/compiler/internal/zkerr"
	"github.com/zkregex-go/compiler/pkg/zkregex"
)

// runDecomposed implements the `decomposed` subcommand: compile a
// decomposed private/public part config (spec.md §6's `compile_decomposed`)
// read from a JSON file matching the Pattern/PublicPattern part schema.
func runDecomposed(args []string) error {
	var configFile, framework, templateName, output, settingsPath string
	var h, m int
	var verbose bool

	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription("Compile a decomposed private/public regex config into a zero-knowledge circuit.")

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&configFile, "config-file", "c", "", "decomposed config JSON file (parts: Pattern | PublicPattern)"),
	)

	flagSet.CreateGroup("circuit", "Circuit",
		flagSet.StringVarP(&framework, "framework", "f", "", "target framework: circom or noir (overrides config default)"),
		flagSet.StringVarP(&templateName, "template", "t", "", "emitted template/function name (overrides config default)"),
		flagSet.IntVar(&h, "H", 0, "haystack length bound (overrides config default)"),
		flagSet.IntVar(&m, "M", 0, "path length bound (overrides config default)"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&output, "output", "o", "", "output file for generated circuit source (default stdout)"),
		flagSet.StringVar(&settingsPath, "config", "", "optional YAML settings file"),
		flagSet.BoolVarP(&verbose, "verbose", "v", false, "enable verbose pipeline tracing"),
	)

	if err := flagSet.Parse(); err != nil {
		return zkerr.Wrap(zkerr.InvalidInput, err, "parsing flags")
	}
	if verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	if configFile == "" {
		return zkerr.New(zkerr.InvalidInput, "decomposed: -config-file is required")
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return zkerr.Wrap(zkerr.InvalidInput, err, "reading decomposed config file %q", configFile)
	}
	decomposedCfg, err := zkregex.ParseDecomposedConfig(data)
	if err != nil {
		return err
	}

	cfg, err := loadSettings(settingsPath)
	if err != nil {
		return err
	}
	cfg = overlaySettings(cfg, framework, templateName, h, m)

	fw, err := parseFramework(cfg.Framework)
	if err != nil {
		return err
	}

	_, code, err := zkregex.CompileDecomposed(context.Background(), decomposedCfg, fw, cfg.TemplateName, cfg.H, cfg.M)
	if err != nil {
		return err
	}

	return writeOutput(output, code)
}
