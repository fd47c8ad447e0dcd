package cli

import (
	"context"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/kbukum/neysla/bootstrap"
	"github.com/kbukum/neysla/config"
	"github.com/kbukum/neysla/version"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configFile string
	envFile    string
	transport  string
	logLevel   string
	noColor    bool
}

// NewRootCmd builds the neysla command tree.
func NewRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "neysla",
		Short: "Call REST resources declared in a catalog",
		Long: `neysla issues requests against REST resources declared in config.yml.
Each resource names its path segments and its default params, headers and body;
per-call flags override those defaults.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if g.noColor || !isTerminal(cmd.OutOrStdout()) {
				color.NoColor = true
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&g.configFile, "config", "c", "", "config file (default: searched as config.yml)")
	pf.StringVar(&g.envFile, "env-file", "", ".env file to load")
	pf.StringVar(&g.transport, "transport", "", "HTTP transport override (net/http or resty)")
	pf.StringVar(&g.logLevel, "log-level", "", "log level override")
	pf.BoolVar(&g.noColor, "no-color", false, "disable colored output")

	root.AddCommand(newCallCmd(g), newResourcesCmd(g), newVersionCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(root.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}

// loadApp loads the configuration, applies flag overrides and builds the app.
func (g *globalFlags) loadApp(opts ...bootstrap.Option) (*bootstrap.App, error) {
	var loaderOpts []config.LoaderOption
	if g.configFile != "" {
		loaderOpts = append(loaderOpts, config.WithConfigFile(g.configFile))
	}
	if g.envFile != "" {
		loaderOpts = append(loaderOpts, config.WithEnvFile(g.envFile))
	}

	var cfg config.Config
	if err := config.LoadConfig(config.DefaultName, &cfg, loaderOpts...); err != nil {
		return nil, err
	}
	if g.transport != "" {
		cfg.HTTP.Transport = g.transport
	}
	if g.logLevel != "" {
		cfg.Logging.Level = g.logLevel
	}
	return bootstrap.NewApp(&cfg, opts...)
}

// run starts an app for the command and runs task inside it.
func (g *globalFlags) run(cmd *cobra.Command, task func(ctx context.Context, app *bootstrap.App) error) error {
	app, err := g.loadApp()
	if err != nil {
		return err
	}
	return app.RunTask(cmd.Context(), task)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
