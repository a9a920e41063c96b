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

// runGenerateCircuitInput implements the `generate-circuit-input`
// subcommand: load a final NFA (spec.md §6's `final_nfa ↔ JSON`) and an
// input file, and write the padded witness record as JSON.
func runGenerateCircuitInput(args []string) error {
	var nfaFile, inputFile, framework, output string
	var h, m int
	var verbose bool
	var maxBytes goflags.RuntimeMap

	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription("Generate a padded witness record for a compiled regex circuit.")

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&nfaFile, "nfa-file", "n", "", "final NFA JSON file produced by compile"),
		flagSet.StringVarP(&inputFile, "input-file", "i", "", "file containing the concrete haystack bytes to match"),
		flagSet.RuntimeMapVarP(&maxBytes, "max-bytes", "mb", nil, "per-group max byte length in group=N form, must match the values used at compile time"),
	)

	flagSet.CreateGroup("circuit", "Circuit",
		flagSet.StringVarP(&framework, "framework", "f", "circom", "target framework: circom or noir"),
		flagSet.IntVar(&h, "H", 256, "haystack length bound, must match the value used at compile time"),
		flagSet.IntVar(&m, "M", 128, "path length bound, must match the value used at compile time"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&output, "output", "o", "", "output file for the witness JSON (default stdout)"),
		flagSet.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging"),
	)

	if err := flagSet.Parse(); err != nil {
		return zkerr.Wrap(zkerr.InvalidInput, err, "parsing flags")
	}
	if verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	if nfaFile == "" || inputFile == "" {
		return zkerr.New(zkerr.InvalidInput, "generate-circuit-input: -nfa-file and -input-file are required")
	}

	fw, err := parseFramework(framework)
	if err != nil {
		return err
	}

	nfaData, err := os.ReadFile(nfaFile)
	if err != nil {
		return zkerr.Wrap(zkerr.InvalidInput, err, "reading NFA file %q", nfaFile)
	}
	f, err := zkregex.UnmarshalNFA(nfaData)
	if err != nil {
		return err
	}

	input, err := os.ReadFile(inputFile)
	if err != nil {
		return zkerr.Wrap(zkerr.InvalidInput, err, "reading input file %q", inputFile)
	}

	maxBytesMap, err := parseMaxBytes(maxBytes)
	if err != nil {
		return err
	}

	w, err := zkregex.GenerateWitness(context.Background(), f, input, h, m, maxBytesMap, fw)
	if err != nil {
		return err
	}

	data, err := zkregex.MarshalWitnessJSON(w, fw)
	if err != nil {
		return err
	}

	return writeOutput(output, string(data))
}
