package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/easyops/context-academy-go/pkg/render"
)

func newScenariosCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "scenarios",
		Aliases: []string{"ls"},
		Short:   "List scenarios",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCatalog(cmd)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), c.Scenarios())
			}
			fmt.Fprint(cmd.OutOrStdout(), a.renderer.ScenarioTable(c.Scenarios()))
			return nil
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <scenario>",
		Short: "Show a scenario's components, responses and principles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := a.scenario(cmd, args[0])
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), s)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n%s\n\n", s.Title, s.ID, s.Description)
			fmt.Fprintf(out, "Customer: %s\n\n", s.CustomerMessage)

			components := render.NewTable("Components", "ID", "Name", "Kind", "Tokens", "Default")
			defaults := s.InitialEnabled()
			for _, comp := range s.Components {
				def := ""
				if defaults.Has(comp.ID) {
					def = "yes"
				}
				components.AddRow(comp.ID, comp.Name, string(comp.Kind), fmt.Sprint(comp.Tokens), def)
			}
			fmt.Fprintln(out, components.View(render.PlainStyles()))

			responses := render.NewTable("Responses", "ID", "Requires", "Score")
			for _, r := range s.Responses {
				responses.AddRow(r.ID, "{"+strings.Join(r.RequiredComponents, ", ")+"}", fmt.Sprint(r.Score))
			}
			fmt.Fprintln(out, responses.View(render.PlainStyles()))

			for _, p := range s.Principles {
				fmt.Fprintf(out, "* %s: %s\n", p.Title, p.Description)
			}
			return nil
		},
	}
}
