package main

import (
	"fmt"

	"github.com/mcvoid/sjparser"
	"github.com/spf13/cobra"
)

// newObjectCmd demonstrates an object with an optional defaulted member
// (spec.md §8 scenario S2): {"name": string, "qty": int64 = 1}, with
// unknown keys ignored (spec.md §8 scenario S3).
func newObjectCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "object [file]",
		Short: `Parse {"name": string, "qty"?: int64 = 1}, ignoring unknown keys`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				file = args[0]
			}
			data, err := readInput(file)
			if err != nil {
				return err
			}

			name := sjparser.NewValue[string]()
			qty := sjparser.NewValue[int64]()
			root := sjparser.NewObject([]sjparser.MemberSpec{
				sjparser.Required("name", name),
				sjparser.DefaultValue("qty", qty, 1),
			}, sjparser.IgnoreUnknownKeys())

			p := sjparser.New(root)
			if err := p.Parse(data); err != nil {
				return fmt.Errorf("parse: %w", err)
			}
			if err := p.Finish(); err != nil {
				return fmt.Errorf("finish: %w", err)
			}

			fmt.Printf("name=%q qty=%d\n", name.Get(), qty.Get())
			return nil
		},
	}
	return cmd
}
