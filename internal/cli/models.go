package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/formatter"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/gateway/app"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/llm"
)

func (r *root) newModelsCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the model candidates an analysis would try, in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !formatter.ValidFormat(output) {
				return fmt.Errorf("unknown output format %q", output)
			}
			cfg := r.config()
			logger, err := r.logger(cfg)
			if err != nil {
				return err
			}
			p, err := app.NewPipeline(cmd.Context(), cfg, logger, r.opts.Backend)
			if err != nil {
				return noticeError(err)
			}
			defer p.Close()

			cands, err := p.Resolver.Resolve(cmd.Context(), llm.CapabilityGeneral)
			if err != nil {
				return err
			}
			return formatter.DisplayCandidates(cmd.OutOrStdout(), cands, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "human", "Output format (human, json, yaml)")
	return cmd
}
