package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/assessment"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/formatter"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/gateway/app"
)

type analyzeFlags struct {
	tags   []string
	output string
}

func (r *root) newAnalyzeCmd() *cobra.Command {
	f := &analyzeFlags{}
	cmd := &cobra.Command{
		Use:   "analyze CONCERN",
		Short: "Assess a medical concern",
		Long: `Assess a free-text medical concern.

Examples:
  # Describe symptoms
  medwise analyze "Severe right-side stomach pain for 3 days, doctor suspects appendicitis"

  # Add related condition tags
  medwise analyze "Blurry vision in my left eye for months" -t Cataract

  # Machine-readable output
  medwise analyze "Knee pain when climbing stairs for two weeks" -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runAnalyze(cmd, args[0], f)
		},
	}
	cmd.Flags().StringSliceVarP(&f.tags, "tag", "t", []string{}, "Related condition tag (repeatable), e.g. "+strings.Join(assessment.CommonConditions[:3], ", "))
	cmd.Flags().StringVarP(&f.output, "output", "o", "human", "Output format (human, json, yaml)")
	return cmd
}

func (r *root) runAnalyze(cmd *cobra.Command, concern string, f *analyzeFlags) error {
	if !formatter.ValidFormat(f.output) {
		return fmt.Errorf("unknown output format %q", f.output)
	}
	cfg := r.config()
	logger, err := r.logger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	req := assessment.NewRequest(concern, f.tags)
	if err := req.Validate(cfg.MinConcernChars); err != nil {
		return noticeError(err)
	}

	p, err := app.NewPipeline(cmd.Context(), cfg, logger, r.opts.Backend)
	if err != nil {
		return noticeError(err)
	}
	defer p.Close()

	human := f.output == "human"
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(stderrOf(cmd)))
	s.Suffix = " Analyzing your concern..."
	if human {
		s.Start()
	}
	out, err := p.Analyzer.Analyze(cmd.Context(), req)
	s.Stop()
	if err != nil {
		return noticeError(err)
	}
	if human {
		fmt.Fprintf(stderrOf(cmd), "%s Analysis complete (%s)\n", color.GreenString("✓"), out.Candidate.Identifier)
	}
	return formatter.DisplayResults(cmd.OutOrStdout(), formatter.NewAnalysis(out), f.output)
}

// userError prints as the user notice and unwraps to the typed analysis error.
type userError struct {
	notice string
	err    error
}

func (e *userError) Error() string { return e.notice }
func (e *userError) Unwrap() error { return e.err }

func noticeError(err error) error {
	return &userError{notice: assessment.UserNotice(err), err: err}
}
