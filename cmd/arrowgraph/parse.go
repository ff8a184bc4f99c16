package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"arrowgraph/internal/diagfmt"
	"arrowgraph/internal/driver"
)

var parseFormats = []string{"pretty", "json", "msgpack"}

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file|->",
	Short: "Parse a diagram and print its node/edge graph",
	Long: `Parse arrow-notation text into a graph of nodes and edges. Malformed lines are skipped;
use "arrowgraph lint" to see why. Pass "-" to read from standard input`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	addParseFlags(parseCmd)
}

func addParseFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	cmd.Flags().Bool("order", false, "append the topological order of directed edges (pretty only)")
}

func runParse(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	rc, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}
	format, err := rc.resolveFormat(cmd, parseFormats, "pretty")
	if err != nil {
		return err
	}

	order, err := cmd.Flags().GetBool("order")
	if err != nil {
		return fmt.Errorf("failed to get order flag: %w", err)
	}
	if order && format != "pretty" {
		return fmt.Errorf("--order requires --format pretty")
	}

	var res *driver.ParseResult
	if args[0] == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		res = driver.ParseSource(cmd.Context(), "<stdin>", content)
	} else {
		if res, err = driver.ParseFile(cmd.Context(), args[0]); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = diagfmt.GraphJSON(out, res.Graph)
	case "msgpack":
		err = diagfmt.GraphMsgpack(out, res.Graph)
	default:
		err = diagfmt.GraphPretty(out, res.Graph, diagfmt.GraphOpts{Color: rc.color, Order: order})
	}
	if err != nil {
		return err
	}

	if rc.timings && !rc.quiet {
		printTimings(os.Stderr, res.Timing)
	}
	return nil
}
