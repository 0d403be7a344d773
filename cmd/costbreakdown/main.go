package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/costbreakdown/internal/config"
	"github.com/rgehrsitz/costbreakdown/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "costbreakdown %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "costbreakdown",
	Short: "Health benefit cost breakdown calculator",
	Long: "Splits the cost of a medical or pharmacy event between the member and " +
		"the employer-funded wallet, honoring deductibles, out-of-pocket maximums " +
		"and HDHP thresholds",
	SilenceUsage: true,
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [scenario-file]",
	Short: "Compute cost breakdowns for every scenario in a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		format, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("out")
		persist, _ := cmd.Flags().GetBool("persist")

		f, err := output.GetFormatterByName(format)
		if err != nil {
			return err
		}

		file, err := config.NewInputParser().LoadScenarios(args[0])
		if err != nil {
			return err
		}

		results, runErr := env.runScenarios(cmd.Context(), file, persist)
		if len(results) == 0 {
			return runErr
		}

		w := cmd.OutOrStdout()
		if outPath != "" {
			out, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outPath, err)
			}
			defer out.Close()
			w = out
		}
		if err := output.WriteFormatted(w, f, results); err != nil {
			return err
		}
		if outPath != "" {
			env.logger.Info().Str("path", outPath).Str("format", f.Name()).Int("scenarios", len(results)).Msg("report written")
		}
		return runErr
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [scenario-file]",
	Short: "Validate a scenario file without computing anything",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := config.NewInputParser().LoadScenarios(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Scenario file %s is valid (%d scenarios)\n", args[0], len(file.Scenarios))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Settings file (environment variables override it)")

	calculateCmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv, parquet)")
	calculateCmd.Flags().StringP("out", "o", "", "Write the report to a file instead of stdout")
	calculateCmd.Flags().Bool("persist", false, "Store each breakdown in the database")

	coverageCmd.AddCommand(coverageImportCmd)

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(coverageCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
