// Command zkregex is the peripheral CLI collaborator (spec.md §6): it
// reads a pattern or decomposed config, calls into pkg/zkregex, and writes
// generated circuit source or witness JSON to disk. The core library never
// touches the filesystem; every os.ReadFile/os.WriteFile call lives here.
package main

import (
	"fmt"
	"os"

	"github.com/projectdiscovery/gologger"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "raw":
		err = runRaw(os.Args[2:])
	case "decomposed":
		err = runDecomposed(os.Args[2:])
	case "generate-circuit-input":
		err = runGenerateCircuitInput(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		gologger.Error().Msgf("%v", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: zkregex <raw|decomposed|generate-circuit-input> [flags]")
}
