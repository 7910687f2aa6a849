package main

import (
	"fmt"

	"github.com/spf13/cobra"

	academyctx "github.com/easyops/context-academy-go/pkg/context"
	"github.com/easyops/context-academy-go/pkg/playground"
)

// enabledFlags 是选择已启用集合的参数
type enabledFlags struct {
	enable   []string
	all      bool
	none     bool
	defaults bool
}

func (f *enabledFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.enable, "enable", "e", nil, "component ids to enable (comma separated)")
	cmd.Flags().BoolVar(&f.all, "all", false, "enable every component")
	cmd.Flags().BoolVar(&f.none, "none", false, "enable no components")
	cmd.Flags().BoolVar(&f.defaults, "defaults", false, "use the scenario's default components")
	cmd.MarkFlagsMutuallyExclusive("enable", "all", "none", "defaults")
}

// resolve 返回参数对应的已启用集合，未指定时使用场景默认值
func (f *enabledFlags) resolve(s *playground.Scenario) academyctx.EnabledSet {
	switch {
	case f.all:
		return academyctx.AllEnabled(s.Components)
	case f.none:
		return academyctx.NewEnabledSet()
	case len(f.enable) > 0:
		return academyctx.NewEnabledSet(f.enable...)
	default:
		return s.InitialEnabled()
	}
}

func newEvaluateCmd(a *app) *cobra.Command {
	var flags enabledFlags

	cmd := &cobra.Command{
		Use:   "evaluate <scenario>",
		Short: "Select the agent response for a set of enabled components",
		Example: `  academy evaluate customer-support --enable system,tools,rag
  academy evaluate customer-support --all --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := a.scenario(cmd, args[0])
			if err != nil {
				return err
			}

			ev, err := a.engine.Evaluate(cmd.Context(), s, flags.resolve(s))
			if err != nil {
				return err
			}
			return a.printEvaluation(cmd, s, ev)
		},
	}
	flags.register(cmd)

	return cmd
}

func newToggleCmd(a *app) *cobra.Command {
	var (
		flags     enabledFlags
		component string
	)

	cmd := &cobra.Command{
		Use:     "toggle <scenario>",
		Short:   "Toggle one component and show the resulting response",
		Example: `  academy toggle customer-support --enable system --component rag`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, s, err := a.scenario(cmd, args[0])
			if err != nil {
				return err
			}

			state := playground.NewState(s)
			state.Enabled = flags.resolve(s)

			next, err := a.engine.Reduce(cmd.Context(), state, playground.ToggleComponent{ComponentID: component}, c)
			if err != nil {
				return err
			}

			ev, err := a.engine.Evaluate(cmd.Context(), s, next.Enabled)
			if err != nil {
				return err
			}
			return a.printEvaluation(cmd, s, ev)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&component, "component", "", "component id to toggle")
	_ = cmd.MarkFlagRequired("component")

	return cmd
}

func (a *app) printEvaluation(cmd *cobra.Command, s *playground.Scenario, ev *playground.Evaluation) error {
	if a.jsonOutput {
		return writeJSON(cmd.OutOrStdout(), ev)
	}
	fmt.Fprint(cmd.OutOrStdout(), a.renderer.Evaluation(s, ev))
	return nil
}
