package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"arrowgraph/internal/diagram"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [line...]",
	Short: "Report whether individual lines are well-formed",
	Long: `Check each argument (or each line of standard input with --stdin) the same way the
parser does. Blank lines and // comments are valid. Prints ok or invalid per line and
exits with status 1 when any line is invalid`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("stdin", false, "read lines from standard input")
}

func runCheck(cmd *cobra.Command, args []string) error {
	fromStdin, err := cmd.Flags().GetBool("stdin")
	if err != nil {
		return fmt.Errorf("failed to get stdin flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if fromStdin == (len(args) > 0) {
		return fmt.Errorf("pass lines as arguments or use --stdin, not both")
	}

	lines := args
	if fromStdin {
		if lines, err = readLines(cmd.InOrStdin()); err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	invalid := checkLines(cmd.OutOrStdout(), lines, quiet)
	if invalid > 0 {
		return errFindings
	}
	return nil
}

// checkLines prints one verdict per line (only invalid ones when quiet)
// and returns how many lines were invalid.
func checkLines(out io.Writer, lines []string, quiet bool) int {
	invalid := 0
	for i, line := range lines {
		if diagram.IsValidLine(line) {
			if !quiet {
				fmt.Fprintf(out, "%d: ok\n", i+1)
			}
			continue
		}
		invalid++
		fmt.Fprintf(out, "%d: invalid: %s\n", i+1, diagram.Scan(line).Fault)
	}
	return invalid
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	return lines, sc.Err()
}
