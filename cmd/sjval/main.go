// Command sjval is a small demonstrator for github.com/mcvoid/sjparser: it
// feeds a file or stdin through one of a few built-in schemas and prints
// the decoded value. It is not part of the engine itself — it exists to
// exercise the engine the way a collaborator (spec.md §6) would, grounded
// on dhamidi-sai's cmd/sai subcommand layout (one file per subcommand,
// RunE + local flags).
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sjval",
		Short: "Decode JSON against one of sjparser's built-in demo schemas",
	}
	cmd.AddCommand(newScalarCmd())
	cmd.AddCommand(newObjectCmd())
	cmd.AddCommand(newOsmChangeCmd())
	return cmd
}

// readInput reads filename, or stdin if filename is "" or "-".
func readInput(filename string) ([]byte, error) {
	if filename == "" || filename == "-" {
		return io.ReadAll(os.Stdin)
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filename, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}
