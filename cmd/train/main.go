// Command train runs the campaign sales training pipeline: it builds a
// training configuration from flags (with CAMPAIGNML_* environment
// overrides), executes the run, and prints where the artifacts landed.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/admetric/campaignml/pkg/errors"
	"github.com/admetric/campaignml/pkg/log"
	"github.com/admetric/campaignml/training"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var qg *errors.QualityGateError
		if errors.As(err, &qg) {
			fmt.Fprintln(os.Stderr, "run rejected by quality gate:", err)
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CAMPAIGNML")
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train campaign sales and ROI models from an advertising CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.SetProvider(log.NewZerologProvider(log.ToLogLevel(v.GetString("log-level"))))

			cfg := training.NewConfig(
				v.GetString("csv"),
				v.GetString("public-dir"),
				v.GetString("artifacts-dir"),
				v.GetString("docs-dir"),
			)
			cfg.MinR2 = v.GetFloat64("min-r2")
			cfg.PricePerUnit = v.GetFloat64("price-per-unit")

			result, err := training.Run(cfg)
			if err != nil {
				return err
			}

			fmt.Printf("version:    %s\n", result.Version)
			fmt.Printf("best model: %s\n", result.BestModel)
			fmt.Printf("metadata:   %s\n", result.MetadataPath)
			fmt.Printf("report:     %s\n", result.ReportPath)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String("csv", "data/advertising.csv", "path to the advertising dataset CSV")
	flags.String("public-dir", "public", "directory for metadata JSON and plots")
	flags.String("artifacts-dir", "artifacts", "directory for model artifacts")
	flags.String("docs-dir", "docs", "directory for the Markdown report")
	flags.Float64("min-r2", 0.6, "minimum acceptable test R² for the selected model")
	flags.Float64("price-per-unit", 10.0, "unit price used for ROI derivation")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	_ = v.BindPFlags(flags)

	return cmd
}
