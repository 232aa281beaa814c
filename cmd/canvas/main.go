package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/canvas-contracts/go-canvas/graph"
	"github.com/canvas-contracts/go-canvas/parser"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "validate":
		if err := validateCmd(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "analyze":
		if err := analyzeCmd(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "gas":
		if err := gasCmd(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "optimize":
		if err := optimizeCmd(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "report":
		if err := reportCmd(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "history":
		if err := historyCmd(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("canvas version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`canvas - contract graph analysis tool

Usage:
  canvas <command> [options]

Commands:
  validate   Check graph structure, types, and flow
  analyze    Recognize patterns, anti-patterns, and security issues
  gas        Estimate execution cost and resource profile
  optimize   Suggest gas optimizations
  report     Run the full analysis and emit one report
  history    Show archived reports for a graph
  help       Show this help message
  version    Show version information

Examples:
  # Validate a graph exported from the editor
  canvas validate token.json

  # Full analysis with archive
  canvas report token.json --db reports.db

  # Gas estimate as JSON
  canvas gas token.json --json

For command-specific help, run:
  canvas <command> --help`)
}

// loadGraph reads and parses a graph file exported from the editor.
func loadGraph(path string) (*graph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read graph: %w", err)
	}
	g, err := parser.FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parse graph: %w", err)
	}
	return g, nil
}

// newLogger returns a console logger at info level, or a silent one.
func newLogger(verbose bool) zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
