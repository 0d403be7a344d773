package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/costbreakdown/internal/config"
	"github.com/rgehrsitz/costbreakdown/internal/domain"
	"github.com/rgehrsitz/costbreakdown/internal/output"
	"github.com/rgehrsitz/costbreakdown/internal/store"
)

var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Manage the coverage and cost sharing tables",
}

var coverageImportCmd = &cobra.Command{
	Use:   "import [coverage-file]",
	Short: "Load coverage rows and cost sharing terms into the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, err := config.NewInputParser().LoadCoverageSeed(args[0])
		if err != nil {
			return err
		}

		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		res, err := env.coverage.Import(cmd.Context(), *seed)
		if err != nil {
			return err
		}
		env.logger.Info().Int("coverages", res.Coverages).Int("cost_sharing", res.CostSharing).Msg("coverage imported")
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d coverage rows and %d cost sharing rows into %s\n",
			res.Coverages, res.CostSharing, env.settings.DBPath)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history [treatment-procedure-id]",
	Short: "Show stored breakdowns for a treatment procedure, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid treatment procedure id %q: %w", args[0], err)
		}
		format, _ := cmd.Flags().GetString("format")
		f, err := output.GetFormatterByName(format)
		if err != nil {
			return err
		}

		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		latest, _ := cmd.Flags().GetBool("latest")
		history, err := loadHistory(cmd.Context(), env.breakdowns, id, latest)
		if err != nil {
			return err
		}
		if len(history) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No breakdowns stored for treatment procedure %d\n", id)
			return nil
		}

		results := make([]domain.ScenarioResult, 0, len(history))
		for _, h := range history {
			results = append(results, domain.ScenarioResult{
				Name:      h.ID + " " + h.CreatedAt.Format(time.RFC3339),
				Cost:      h.Cost,
				Breakdown: h.Data,
			})
		}
		return output.WriteFormatted(cmd.OutOrStdout(), f, results)
	},
}

// loadHistory returns every stored breakdown for a procedure, or only the
// authoritative newest one when latest is set
func loadHistory(ctx context.Context, repo store.BreakdownRepository, id int64, latest bool) ([]domain.StoredBreakdown, error) {
	if !latest {
		return repo.History(ctx, id)
	}
	b, err := repo.Latest(ctx, id)
	if errors.Is(err, store.ErrBreakdownNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []domain.StoredBreakdown{*b}, nil
}

func init() {
	historyCmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv)")
	historyCmd.Flags().Bool("latest", false, "Show only the most recent breakdown")
}
