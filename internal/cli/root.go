package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/config"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/gateway/app"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/observability"
)

// Options lets callers substitute collaborators, mainly for tests.
type Options struct {
	Version string
	// Backend replaces the Gemini client when set.
	Backend *app.Backend
	// Config replaces config.Load when set.
	Config *config.Config
	Logger *zap.Logger
}

type root struct {
	opts    Options
	verbose bool
}

func NewRootCmd(opts Options) *cobra.Command {
	r := &root{opts: opts}
	rootCmd := &cobra.Command{
		Use:   "medwise",
		Short: "Medical awareness assessments from a free-text concern",
		Long: `medwise sends a description of a medical concern to a generative model and
prints a structured risk and urgency assessment.

It is an educational tool and NOT a substitute for professional medical advice.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&r.verbose, "verbose", "v", false, "Verbose logging")

	rootCmd.AddCommand(
		r.newAnalyzeCmd(),
		r.newModelsCmd(),
		r.newServeCmd(),
		r.newVersionCmd(),
	)
	return rootCmd
}

func (r *root) config() *config.Config {
	if r.opts.Config != nil {
		return r.opts.Config
	}
	return config.Load()
}

func (r *root) logger(cfg *config.Config) (*zap.Logger, error) {
	if r.opts.Logger != nil {
		return r.opts.Logger, nil
	}
	level := cfg.LogLevel
	if r.verbose {
		level = "debug"
	}
	return observability.NewLogger(cfg.Env, level)
}

func (r *root) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "medwise version %s\n", r.version())
		},
	}
}

func (r *root) version() string {
	if r.opts.Version == "" {
		return "dev"
	}
	return r.opts.Version
}

func stderrOf(cmd *cobra.Command) io.Writer {
	if w := cmd.ErrOrStderr(); w != nil {
		return w
	}
	return os.Stderr
}
