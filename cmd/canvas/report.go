package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/canvas-contracts/go-canvas/analyzer"
	"github.com/canvas-contracts/go-canvas/results"
)

func reportCmd(args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	name := fs.String("name", "", "Contract name recorded in the report")
	dbPath := fs.String("db", "", "Archive the report in this SQLite database")
	output := fs.String("output", "", "Write the report JSON to a file instead of stdout")
	verbose := fs.Bool("verbose", false, "Log progress to stderr")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: canvas report <graph.json> [options]

Run validation, pattern analysis, gas estimation, and optimization, and
emit everything as one report.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Report to stdout
  canvas report token.json

  # Archive alongside earlier runs
  canvas report token.json --name token --db reports.db
`)
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
	report := a.Report(g, *name)

	if *dbPath != "" {
		store, err := results.Open(*dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Save(report); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "archived report %s\n", report.Fingerprint)
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}
	return report.WriteJSON(out)
}

func historyCmd(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	dbPath := fs.String("db", "reports.db", "SQLite archive to read")
	limit := fs.Int("limit", 10, "Maximum number of reports to show")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: canvas history <graph.json> [options]

Show archived reports for a graph, newest first.

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

	store, err := results.Open(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	history, err := store.History(g.Fingerprint(), *limit)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Println("no archived reports for this graph")
		return nil
	}

	for _, r := range history {
		valid := "valid"
		if r.Validation != nil && !r.Validation.Valid {
			valid = "invalid"
		}
		fmt.Printf("%s  %s  gas=%d  critical=%d  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			valid,
			r.GasEstimate,
			len(r.CriticalFindings()),
			r.Name,
		)
	}
	return nil
}
