package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/easyops/context-academy-go/pkg/catalog"
	academyctx "github.com/easyops/context-academy-go/pkg/context"
	"github.com/easyops/context-academy-go/pkg/core/config"
	"github.com/easyops/context-academy-go/pkg/otel"
	"github.com/easyops/context-academy-go/pkg/playground"
	"github.com/easyops/context-academy-go/pkg/render"
)

// app 保存一次命令执行期间共享的依赖
type app struct {
	configPath  string
	catalogPath string
	jsonOutput  bool
	noColor     bool

	cfg      *config.Config
	provider *otel.Provider
	engine   *otel.TracedEngine
	renderer *render.Renderer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "academy",
		Short: "Context engineering playground",
		Long: `academy lets you toggle context components (system prompt, tools, retrieval,
memory, history, examples) and see how the simulated agent response changes.

Quick Start:
  academy scenarios                                  # List scenarios
  academy evaluate customer-support --enable system,rag
  academy matrix customer-support                    # Every subset and its response
  academy serve --addr :8080                         # HTTP API`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.provider == nil {
				return nil
			}
			return a.provider.Shutdown(cmd.Context())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file (YAML)")
	flags.StringVar(&a.catalogPath, "catalog", "", "scenario catalog file or directory (default: built-in)")
	flags.BoolVar(&a.jsonOutput, "json", false, "output JSON")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colors")

	cmd.AddCommand(
		newScenariosCmd(a),
		newShowCmd(a),
		newEvaluateCmd(a),
		newToggleCmd(a),
		newMatrixCmd(a),
		newValidateCmd(a),
		newServeCmd(a),
	)

	return cmd
}

// setup 加载配置并初始化可观测性
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.catalogPath != "" {
		cfg.Catalog.Path = a.catalogPath
	}
	a.cfg = cfg

	provider, err := otel.NewProvider(cmd.Context(), cfg.Observability, otel.WithLogWriter(cmd.ErrOrStderr()))
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}
	a.provider = provider
	otel.SetGlobal(provider)

	selector := playground.NewSelector(playground.WithWeights(
		cfg.Selector.MatchWeight,
		cfg.Selector.MissingWeight,
		cfg.Selector.ExtraWeight,
	))
	a.engine = otel.NewTracedEngine(selector, otel.WithProvider(provider))

	styles := render.DefaultStyles()
	if a.noColor || os.Getenv("NO_COLOR") != "" {
		styles = render.PlainStyles()
	}
	a.renderer = render.New(render.WithStyles(styles))

	return nil
}

// catalogOptions 根据配置构造目录选项
func (a *app) catalogOptions() []catalog.Option {
	opts := []catalog.Option{
		catalog.WithLogger(a.provider.Logger()),
		catalog.WithStrict(a.cfg.Catalog.Strict),
	}
	if tol := a.cfg.Catalog.TokenDriftTolerance; tol > 0 {
		opts = append(opts,
			catalog.WithDriftTolerance(tol),
			catalog.WithTokenCounter(academyctx.DefaultTokenCounter(academyctx.WithModel(a.cfg.Catalog.TokenModel))),
		)
	}
	return opts
}

// readScenarios 读取场景但不做校验
func (a *app) readScenarios() ([]playground.Scenario, error) {
	if a.cfg.Catalog.Path != "" {
		return catalog.ReadPath(a.cfg.Catalog.Path)
	}
	return catalog.BuiltinScenarios()
}

// loadCatalog 读取并校验场景目录
func (a *app) loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	scenarios, err := a.readScenarios()
	if err != nil {
		return nil, err
	}
	c, err := catalog.New(scenarios, a.catalogOptions()...)
	if err != nil {
		return nil, err
	}
	a.engine.RecordCatalog(cmd.Context(), c.Len(), len(c.Report().Warnings))
	return c, nil
}

// scenario 加载目录并返回指定场景
func (a *app) scenario(cmd *cobra.Command, id string) (*catalog.Catalog, *playground.Scenario, error) {
	c, err := a.loadCatalog(cmd)
	if err != nil {
		return nil, nil, err
	}
	s, err := c.Scenario(id)
	if err != nil {
		return nil, nil, err
	}
	return c, s, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
