package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rgehrsitz/costbreakdown/internal/domain"
)

// CoverageRepository reads and maintains the coverage table
type CoverageRepository interface {
	GetMedicalCoverage(ctx context.Context, employerHealthPlanID int64, size domain.PlanSize, tier domain.Tier) (*domain.Coverage, error)
	GetRxCoverage(ctx context.Context, employerHealthPlanID int64, size domain.PlanSize, tier domain.Tier) (*domain.Coverage, error)
	GetCostSharing(ctx context.Context, category string, tier domain.Tier) (*domain.CostSharing, error)
	UpsertCoverage(ctx context.Context, c domain.Coverage) error
	UpsertCostSharing(ctx context.Context, c domain.CostSharing) error
	Import(ctx context.Context, seed domain.CoverageSeed) (ImportResult, error)
}

// ImportResult counts rows written by an import
type ImportResult struct {
	Coverages   int
	CostSharing int
}

type coverageRepository struct {
	db *gorm.DB
}

// NewCoverageRepository creates a coverage repository over db
func NewCoverageRepository(db *gorm.DB) CoverageRepository {
	return &coverageRepository{db: db}
}

func (r *coverageRepository) GetMedicalCoverage(ctx context.Context, employerHealthPlanID int64, size domain.PlanSize, tier domain.Tier) (*domain.Coverage, error) {
	return r.getCoverage(ctx, domain.CoverageMedical, employerHealthPlanID, size, tier)
}

func (r *coverageRepository) GetRxCoverage(ctx context.Context, employerHealthPlanID int64, size domain.PlanSize, tier domain.Tier) (*domain.Coverage, error) {
	return r.getCoverage(ctx, domain.CoverageRx, employerHealthPlanID, size, tier)
}

// getCoverage prefers the tier-specific row and falls back to the untiered one
func (r *coverageRepository) getCoverage(ctx context.Context, kind domain.CoverageKind, employerHealthPlanID int64, size domain.PlanSize, tier domain.Tier) (*domain.Coverage, error) {
	for _, t := range tierFallback(tier) {
		var rec CoverageRecord
		err := r.db.WithContext(ctx).
			Where("employer_health_plan_id = ? AND kind = ? AND plan_size = ? AND tier = ?",
				employerHealthPlanID, string(kind), string(size), string(t)).
			First(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load %s coverage for plan %d: %w", kind, employerHealthPlanID, err)
		}
		c := rec.toDomain()
		return &c, nil
	}
	return nil, nil
}

func tierFallback(tier domain.Tier) []domain.Tier {
	if tier == domain.TierNone {
		return []domain.Tier{tier}
	}
	return []domain.Tier{tier, domain.TierNone}
}

// GetCostSharing looks up terms for a category and tier, falling back to the
// untiered row when no tier-specific row exists
func (r *coverageRepository) GetCostSharing(ctx context.Context, category string, tier domain.Tier) (*domain.CostSharing, error) {
	for _, t := range tierFallback(tier) {
		var rec CostSharingRecord
		err := r.db.WithContext(ctx).
			Where("category = ? AND tier = ?", category, string(t)).
			First(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load cost sharing for %q: %w", category, err)
		}
		cs := rec.toDomain()
		return &cs, nil
	}
	return nil, nil
}

func (r *coverageRepository) UpsertCoverage(ctx context.Context, c domain.Coverage) error {
	rec := coverageRecordFrom(c)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "employer_health_plan_id"}, {Name: "kind"}, {Name: "plan_size"}, {Name: "tier"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"individual_deductible", "individual_oop", "family_deductible", "family_oop",
			"max_oop_per_covered_individual", "is_deductible_embedded", "is_oop_embedded", "updated_at",
		}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to upsert coverage for plan %d: %w", c.EmployerHealthPlanID, err)
	}
	return nil
}

func (r *coverageRepository) UpsertCostSharing(ctx context.Context, c domain.CostSharing) error {
	rec := costSharingRecordFrom(c)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category"}, {Name: "tier"}},
		DoUpdates: clause.AssignmentColumns([]string{"copay", "coinsurance", "coinsurance_min", "coinsurance_max", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to upsert cost sharing %q: %w", c.Category, err)
	}
	return nil
}

// Import writes a whole seed document in one transaction
func (r *coverageRepository) Import(ctx context.Context, seed domain.CoverageSeed) (ImportResult, error) {
	var res ImportResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &coverageRepository{db: tx}
		for _, c := range seed.Coverages {
			if err := txRepo.UpsertCoverage(ctx, c); err != nil {
				return err
			}
			res.Coverages++
		}
		for _, cs := range seed.CostSharing {
			if err := txRepo.UpsertCostSharing(ctx, cs); err != nil {
				return err
			}
			res.CostSharing++
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	return res, nil
}
