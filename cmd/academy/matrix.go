package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/easyops/context-academy-go/pkg/catalog"
)

func newMatrixCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "matrix <scenario>",
		Short: "Show which response every subset of components selects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := a.scenario(cmd, args[0])
			if err != nil {
				return err
			}

			rows, err := catalog.Matrix(s, a.engine.Selector())
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"rows":        rows,
					"unreachable": catalog.Unreachable(s, rows),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), a.renderer.MatrixTable(s, rows))
			return nil
		},
	}
}
