package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/canvas-contracts/go-canvas/analyzer"
)

func gasCmd(args []string) error {
	fs := flag.NewFlagSet("gas", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "Emit the result as JSON")
	profile := fs.Bool("profile", false, "Include the resource usage profile")
	verbose := fs.Bool("verbose", false, "Log progress to stderr")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: canvas gas <graph.json> [options]

Estimate the gas cost of a contract graph.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("graph file required")
	}

	g, err := loadGraph(fs.Arg(0))
	if err != nil {
		return err
	}

	cfg := analyzer.DefaultConfig()
	cfg.Logger = newLogger(*verbose)
	a, err := analyzer.New(cfg)
	if err != nil {
		return err
	}

	estimate := a.EstimateGas(g)
	if *asJSON {
		out := map[string]any{"gasEstimate": estimate}
		if *profile {
			out["profile"] = a.Profile(g)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("estimated gas: %d\n", estimate)
	if *profile {
		p := a.Profile(g)
		fmt.Printf("peak memory: %d bytes, average: %d bytes\n", p.PeakMemory, p.AverageMemory)
		fmt.Printf("peak cpu: %.2f, average: %.2f\n", p.PeakCPU, p.AverageCPU)
		for _, r := range p.Recommendations {
			fmt.Printf("  - %s\n", r)
		}
	}
	return nil
}
