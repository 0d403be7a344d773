package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rgehrsitz/costbreakdown/internal/domain"
)

// CoverageRecord is one row of the org-managed coverage table
type CoverageRecord struct {
	ID                         uint   `gorm:"primaryKey;autoIncrement"`
	EmployerHealthPlanID       int64  `gorm:"uniqueIndex:idx_coverage_key;not null"`
	Kind                       string `gorm:"type:varchar(16);uniqueIndex:idx_coverage_key;not null"`
	PlanSize                   string `gorm:"type:varchar(16);uniqueIndex:idx_coverage_key;not null"`
	Tier                       string `gorm:"type:varchar(16);uniqueIndex:idx_coverage_key"`
	IndividualDeductible       int64
	IndividualOOP              int64
	FamilyDeductible           int64
	FamilyOOP                  int64
	MaxOOPPerCoveredIndividual *int64
	IsDeductibleEmbedded       bool
	IsOOPEmbedded              bool
	CreatedAt                  time.Time `gorm:"autoCreateTime"`
	UpdatedAt                  time.Time `gorm:"autoUpdateTime"`
}

func coverageRecordFrom(c domain.Coverage) CoverageRecord {
	return CoverageRecord{
		EmployerHealthPlanID:       c.EmployerHealthPlanID,
		Kind:                       string(c.Kind),
		PlanSize:                   string(c.PlanSize),
		Tier:                       string(c.Tier),
		IndividualDeductible:       c.IndividualDeductible,
		IndividualOOP:              c.IndividualOOP,
		FamilyDeductible:           c.FamilyDeductible,
		FamilyOOP:                  c.FamilyOOP,
		MaxOOPPerCoveredIndividual: c.MaxOOPPerCoveredIndividual.Ptr(),
		IsDeductibleEmbedded:       c.IsDeductibleEmbedded,
		IsOOPEmbedded:              c.IsOOPEmbedded,
	}
}

func (r CoverageRecord) toDomain() domain.Coverage {
	return domain.Coverage{
		EmployerHealthPlanID:       r.EmployerHealthPlanID,
		Kind:                       domain.CoverageKind(r.Kind),
		PlanSize:                   domain.PlanSize(r.PlanSize),
		Tier:                       domain.Tier(r.Tier),
		IndividualDeductible:       r.IndividualDeductible,
		IndividualOOP:              r.IndividualOOP,
		FamilyDeductible:           r.FamilyDeductible,
		FamilyOOP:                  r.FamilyOOP,
		MaxOOPPerCoveredIndividual: domain.AmountFromPtr(r.MaxOOPPerCoveredIndividual),
		IsDeductibleEmbedded:       r.IsDeductibleEmbedded,
		IsOOPEmbedded:              r.IsOOPEmbedded,
	}
}

// CostSharingRecord holds copay/coinsurance terms per cost sharing category
type CostSharingRecord struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	Category       string `gorm:"type:varchar(64);uniqueIndex:idx_cost_sharing_key;not null"`
	Tier           string `gorm:"type:varchar(16);uniqueIndex:idx_cost_sharing_key"`
	Copay          *int64
	Coinsurance    decimal.Decimal `gorm:"type:varchar(32)"`
	CoinsuranceMin *int64
	CoinsuranceMax *int64
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func costSharingRecordFrom(c domain.CostSharing) CostSharingRecord {
	return CostSharingRecord{
		Category:       c.Category,
		Tier:           string(c.Tier),
		Copay:          c.Copay.Ptr(),
		Coinsurance:    c.Coinsurance,
		CoinsuranceMin: c.CoinsuranceMin.Ptr(),
		CoinsuranceMax: c.CoinsuranceMax.Ptr(),
	}
}

func (r CostSharingRecord) toDomain() domain.CostSharing {
	return domain.CostSharing{
		Category:       r.Category,
		Tier:           domain.Tier(r.Tier),
		Copay:          domain.AmountFromPtr(r.Copay),
		Coinsurance:    r.Coinsurance,
		CoinsuranceMin: domain.AmountFromPtr(r.CoinsuranceMin),
		CoinsuranceMax: domain.AmountFromPtr(r.CoinsuranceMax),
	}
}

// BreakdownRecord is an append-only persisted breakdown
type BreakdownRecord struct {
	ID                     string `gorm:"type:varchar(64);primaryKey"`
	TreatmentProcedureID   *int64 `gorm:"index"`
	ReimbursementRequestID *int64 `gorm:"index"`
	WalletID               string `gorm:"type:varchar(64);index"`
	MemberHealthPlanID     *int64
	Cost                   int64

	TotalMemberResponsibility   int64
	TotalEmployerResponsibility int64
	BeginningWalletBalance      int64
	EndingWalletBalance         int64
	Deductible                  int64
	DeductibleRemaining         int64
	FamilyDeductibleRemaining   *int64
	Coinsurance                 int64
	Copay                       int64
	OOPApplied                  int64  `gorm:"column:oop_applied"`
	OOPRemaining                int64  `gorm:"column:oop_remaining"`
	FamilyOOPRemaining          *int64 `gorm:"column:family_oop_remaining"`
	HRAApplied                  int64  `gorm:"column:hra_applied"`
	OverageAmount               int64
	IsUnlimited                 bool
	AmountType                  string `gorm:"type:varchar(16)"`
	CostBreakdownType           string `gorm:"type:varchar(32)"`
	RTETransactionID            *int64 `gorm:"column:rte_transaction_id"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

// BeforeCreate assigns a time-ordered id
func (r *BreakdownRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		r.ID = id.String()
	}
	return nil
}

func breakdownRecordFrom(b domain.StoredBreakdown) BreakdownRecord {
	d := b.Data
	return BreakdownRecord{
		ID:                          b.ID,
		TreatmentProcedureID:        b.TreatmentProcedureID,
		ReimbursementRequestID:      b.ReimbursementRequestID,
		WalletID:                    b.WalletID,
		MemberHealthPlanID:          b.MemberHealthPlanID,
		Cost:                        b.Cost,
		TotalMemberResponsibility:   d.TotalMemberResponsibility,
		TotalEmployerResponsibility: d.TotalEmployerResponsibility,
		BeginningWalletBalance:      d.BeginningWalletBalance,
		EndingWalletBalance:         d.EndingWalletBalance,
		Deductible:                  d.Deductible,
		DeductibleRemaining:         d.DeductibleRemaining,
		FamilyDeductibleRemaining:   d.FamilyDeductibleRemaining.Ptr(),
		Coinsurance:                 d.Coinsurance,
		Copay:                       d.Copay,
		OOPApplied:                  d.OOPApplied,
		OOPRemaining:                d.OOPRemaining,
		FamilyOOPRemaining:          d.FamilyOOPRemaining.Ptr(),
		HRAApplied:                  d.HRAApplied,
		OverageAmount:               d.OverageAmount,
		IsUnlimited:                 d.IsUnlimited,
		AmountType:                  string(d.AmountType),
		CostBreakdownType:           string(d.CostBreakdownType),
		RTETransactionID:            d.RTETransactionID,
	}
}

func (r BreakdownRecord) toDomain() domain.StoredBreakdown {
	return domain.StoredBreakdown{
		ID:                     r.ID,
		TreatmentProcedureID:   r.TreatmentProcedureID,
		ReimbursementRequestID: r.ReimbursementRequestID,
		WalletID:               r.WalletID,
		MemberHealthPlanID:     r.MemberHealthPlanID,
		Cost:                   r.Cost,
		CreatedAt:              r.CreatedAt,
		Data: domain.CostBreakdownData{
			TotalMemberResponsibility:   r.TotalMemberResponsibility,
			TotalEmployerResponsibility: r.TotalEmployerResponsibility,
			BeginningWalletBalance:      r.BeginningWalletBalance,
			EndingWalletBalance:         r.EndingWalletBalance,
			Deductible:                  r.Deductible,
			DeductibleRemaining:         r.DeductibleRemaining,
			FamilyDeductibleRemaining:   domain.AmountFromPtr(r.FamilyDeductibleRemaining),
			Coinsurance:                 r.Coinsurance,
			Copay:                       r.Copay,
			OOPApplied:                  r.OOPApplied,
			OOPRemaining:                r.OOPRemaining,
			FamilyOOPRemaining:          domain.AmountFromPtr(r.FamilyOOPRemaining),
			HRAApplied:                  r.HRAApplied,
			OverageAmount:               r.OverageAmount,
			IsUnlimited:                 r.IsUnlimited,
			AmountType:                  domain.PlanSize(r.AmountType),
			CostBreakdownType:           domain.CostBreakdownType(r.CostBreakdownType),
			RTETransactionID:            r.RTETransactionID,
		},
	}
}
