package main

import (
	"fmt"

	"github.com/mcvoid/sjparser"
	"github.com/spf13/cobra"
)

// newScalarCmd demonstrates the simplest schema in the engine — a single
// required int64 (spec.md §8 scenario S1).
func newScalarCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "scalar [file]",
		Short: "Parse a single bare JSON integer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				file = args[0]
			}
			data, err := readInput(file)
			if err != nil {
				return err
			}

			v := sjparser.NewValue[int64]()
			p := sjparser.New(v)
			if err := p.Parse(data); err != nil {
				return fmt.Errorf("parse: %w", err)
			}
			if err := p.Finish(); err != nil {
				return fmt.Errorf("finish: %w", err)
			}

			fmt.Println(v.Get())
			return nil
		},
	}
	return cmd
}
