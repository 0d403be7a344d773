package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/rgehrsitz/costbreakdown/internal/calculation"
	"github.com/rgehrsitz/costbreakdown/internal/config"
	"github.com/rgehrsitz/costbreakdown/internal/domain"
	"github.com/rgehrsitz/costbreakdown/internal/logging"
	"github.com/rgehrsitz/costbreakdown/internal/rte"
	"github.com/rgehrsitz/costbreakdown/internal/store"
	"github.com/rgehrsitz/costbreakdown/internal/telemetry"
)

// env is everything a command needs once settings are loaded
type env struct {
	settings   *config.Settings
	logger     zerolog.Logger
	db         *gorm.DB
	coverage   store.CoverageRepository
	breakdowns store.BreakdownRepository
	irs        calculation.IRSLimitTable
	metrics    *telemetry.Registry
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	configFile, _ := cmd.Flags().GetString("config")
	settings, err := config.LoadSettings(configFile)
	if err != nil {
		return nil, err
	}
	logger := logging.New(settings.LogLevel, settings.LogPretty)

	var irs calculation.IRSLimitTable = domain.DefaultIRSLimitSchedule()
	if settings.IRSLimitsFile != "" {
		limits, err := config.NewInputParser().LoadIRSLimits(settings.IRSLimitsFile)
		if err != nil {
			return nil, err
		}
		irs = limits
	}

	db, err := store.Open(settings.DBPath)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("db_path", settings.DBPath).Msg("database opened")

	return &env{
		settings:   settings,
		logger:     logger,
		db:         db,
		coverage:   store.NewCoverageRepository(db),
		breakdowns: store.NewBreakdownRepository(db),
		irs:        irs,
		metrics:    telemetry.NewRegistry(),
	}, nil
}

func (e *env) Close() error {
	sqlDB, err := e.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// runScenarios prices every scenario. Each scenario gets its own fixture
// gateway so transaction ids restart at 1.
func (e *env) runScenarios(ctx context.Context, file *domain.ScenarioFile, persist bool) ([]domain.ScenarioResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		results []domain.ScenarioResult
		errs    []error
	)
	for _, s := range file.Scenarios {
		svc, err := calculation.NewCostBreakdownDataService(s.Request, calculation.Dependencies{
			Gateway:        rte.NewFixtureGateway(s.RTEResponses),
			Coverage:       e.coverage,
			IRSLimits:      e.irs,
			DisabledPayers: e.settings.DisabledPayers,
			Metrics:        e.metrics,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("scenario %q: %w", s.Name, err))
			continue
		}
		svc.SetLogger(e.logger.With().Str("scenario", s.Name).Logger())

		cb, err := svc.GetCostBreakdownData(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("scenario %q: %w", s.Name, err))
			continue
		}

		results = append(results, domain.ScenarioResult{Name: s.Name, Cost: s.Request.Cost, Breakdown: *cb})

		if persist {
			rec := &domain.StoredBreakdown{
				TreatmentProcedureID:   s.Request.TreatmentProcedureID,
				ReimbursementRequestID: s.Request.ReimbursementRequestID,
				WalletID:               s.Request.WalletID,
				MemberHealthPlanID:     s.Request.MemberHealthPlanID(),
				Cost:                   s.Request.Cost,
				Data:                   *cb,
			}
			if err := e.breakdowns.Save(ctx, rec); err != nil {
				errs = append(errs, fmt.Errorf("scenario %q: %w", s.Name, err))
				continue
			}
			e.logger.Debug().Str("scenario", s.Name).Str("breakdown_id", rec.ID).Msg("breakdown stored")
		}
	}

	counts := e.metrics.Snapshot()
	for _, key := range e.metrics.Keys() {
		parts := strings.SplitN(key, "|", 2)
		ev := e.logger.Debug().Str("metric", parts[0]).Int64("value", counts[key])
		if len(parts) == 2 {
			ev = ev.Str("labels", parts[1])
		}
		ev.Msg("counter")
	}

	if len(errs) > 0 {
		return results, errors.Join(errs...)
	}
	return results, nil
}
