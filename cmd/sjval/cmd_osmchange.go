package main

import (
	"fmt"

	"github.com/mcvoid/sjparser/examples/osmchange"
	"github.com/spf13/cobra"
)

// newOsmChangeCmd decodes a changeset-upload document with the
// examples/osmchange schema (spec.md's original_source consumer).
func newOsmChangeCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "osmchange [file]",
		Short: "Decode an OSM changeset-upload document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				file = args[0]
			}
			data, err := readInput(file)
			if err != nil {
				return err
			}

			doc, err := osmchange.Parse(data)
			if err != nil {
				return fmt.Errorf("decode: %w", err)
			}

			fmt.Printf("version=%s generator=%q\n", doc.Version, doc.Generator)
			for _, action := range doc.Changes {
				fmt.Printf("  action=%s elements=%d if-unused=%v\n", action.Action, len(action.Elements), action.IfUnused)
				for _, el := range action.Elements {
					fmt.Printf("    %s id=%d changeset=%d tags=%d nodes=%d members=%d\n",
						el.Type, el.ID, el.Changeset, len(el.Tags), len(el.Nodes), len(el.Members))
				}
			}
			return nil
		},
	}
	return cmd
}
