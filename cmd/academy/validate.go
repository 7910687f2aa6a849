package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/easyops/context-academy-go/pkg/catalog"
)

// errValidationFailed 校验未通过时返回，具体问题已输出到标准输出
var errValidationFailed = errors.New("catalog validation failed")

func newValidateCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the scenario catalog",
		Long: `Validate checks every scenario for authoring errors (unknown component
references, duplicate ids, invalid scores) and warnings (duplicate exact
matches, missing empty-set or full-set responses, token drift).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios, err := a.readScenarios()
			if err != nil {
				return err
			}

			report := catalog.Validate(scenarios, a.catalogOptions()...)
			if a.jsonOutput {
				if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), a.renderer.ValidationReport(report))
			}

			if report.HasErrors() || ((strict || a.cfg.Catalog.Strict) && len(report.Warnings) > 0) {
				return errValidationFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")

	return cmd
}
