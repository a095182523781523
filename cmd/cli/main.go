package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gopower/adapters/chart"
	"gopower/adapters/excel"
	"gopower/app"
	"gopower/domain/power"
	"gopower/domain/sweep"
	"gopower/internal/config"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "gopower",
		Short: "Sample-size planning for two-proportion experiments",
	}

	rootCmd.AddCommand(
		newComputeCmd(),
		newSweepCmd(),
		newReportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newComputeCmd() *cobra.Command {
	var p1, p2, baseline, mde, alpha, pw float64

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute required per-group sample size for one query",
		Long: `Compute the minimum per-group sample size for a two-proportion z-test.

Supply the treatment rate directly with --p2, or derive it from a relative
minimum detectable effect with --mde.

Example: gopower compute --baseline 0.5 --mde 0.05 --alpha 0.05 --power 0.8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var q power.Query
			if cmd.Flags().Changed("p2") {
				if !cmd.Flags().Changed("p1") {
					p1 = baseline
				}
				q = power.Query{P1: p1, P2: p2, Alpha: alpha, Power: pw}
			} else {
				q = power.FromRelativeMDE(baseline, mde, alpha, pw)
			}

			raw, err := power.SampleSize(q)
			if err != nil {
				return err
			}
			n, err := power.RequiredSampleSize(q)
			if err != nil {
				return err
			}

			fmt.Printf("p1=%.4f p2=%.4f alpha=%.3f power=%.2f\n", q.P1, q.P2, q.Alpha, q.Power)
			fmt.Printf("required per-group sample size: %d (raw %.2f)\n", n, raw)
			return nil
		},
	}

	cmd.Flags().Float64Var(&p1, "p1", power.DefaultBaseline, "Control-group success rate")
	cmd.Flags().Float64Var(&p2, "p2", 0, "Treatment-group success rate (overrides --mde)")
	cmd.Flags().Float64Var(&baseline, "baseline", power.DefaultBaseline, "Baseline conversion rate")
	cmd.Flags().Float64Var(&mde, "mde", power.DefaultMDE, "Relative minimum detectable effect")
	cmd.Flags().Float64Var(&alpha, "alpha", power.DefaultAlpha, "Two-sided significance level")
	cmd.Flags().Float64Var(&pw, "power", power.DefaultPower, "Desired statistical power")

	return cmd
}

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep [axis]",
		Short: "Run a parameter sweep and print it as JSON",
		Long: `Run a sample-size sweep over one varying parameter (mde, alpha or
baseline), holding the others at their configured defaults.

Example: gopower sweep mde`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			axis, err := sweep.ParseAxis(args[0])
			if err != nil {
				return err
			}

			svc, err := sweepService()
			if err != nil {
				return err
			}
			result, err := svc.RunAxis(cmd.Context(), axis)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	return cmd
}

func newReportCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the full planning report (charts + workbook)",
		Long: `Run all three default sweeps and write an .xlsx workbook plus one PNG
line chart per sweep into the output directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := sweepService()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			renderer := chart.NewRenderer()
			var results []*app.SweepResult
			for _, axis := range []sweep.Axis{sweep.AxisMDE, sweep.AxisAlpha, sweep.AxisBaseline} {
				result, err := svc.RunAxis(cmd.Context(), axis)
				if err != nil {
					return err
				}
				results = append(results, result)

				path := filepath.Join(outDir, fmt.Sprintf("sample_size_by_%s.png", axis))
				f, err := os.Create(path)
				if err != nil {
					return err
				}
				if err := renderer.RenderPNG(result, f); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				fmt.Printf("wrote %s\n", path)
			}

			workbook := filepath.Join(outDir, "sample_size_plan.xlsx")
			if err := excel.NewWriter().WriteWorkbook(results, workbook); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", workbook)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "./reports", "Output directory for report files")

	return cmd
}

func sweepService() (*app.SweepService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return app.NewSweepService(sweep.Fixed{
		Baseline: cfg.Defaults.Baseline,
		MDE:      cfg.Defaults.MDE,
		Alpha:    cfg.Defaults.Alpha,
		Power:    cfg.Defaults.Power,
	}), nil
}
