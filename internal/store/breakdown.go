package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rgehrsitz/costbreakdown/internal/domain"
)

// ErrBreakdownNotFound is returned when no breakdown exists for a procedure
var ErrBreakdownNotFound = errors.New("cost breakdown not found")

// BreakdownRepository keeps every computed breakdown. The newest one for a
// procedure is authoritative.
type BreakdownRepository interface {
	Save(ctx context.Context, b *domain.StoredBreakdown) error
	Latest(ctx context.Context, treatmentProcedureID int64) (*domain.StoredBreakdown, error)
	History(ctx context.Context, treatmentProcedureID int64) ([]domain.StoredBreakdown, error)
}

type breakdownRepository struct {
	db *gorm.DB
}

// NewBreakdownRepository creates a breakdown repository over db
func NewBreakdownRepository(db *gorm.DB) BreakdownRepository {
	return &breakdownRepository{db: db}
}

// Save appends b and fills in its id and creation time
func (r *breakdownRepository) Save(ctx context.Context, b *domain.StoredBreakdown) error {
	rec := breakdownRecordFrom(*b)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to save cost breakdown: %w", err)
	}
	b.ID = rec.ID
	b.CreatedAt = rec.CreatedAt
	return nil
}

func (r *breakdownRepository) Latest(ctx context.Context, treatmentProcedureID int64) (*domain.StoredBreakdown, error) {
	var rec BreakdownRecord
	err := r.db.WithContext(ctx).
		Where("treatment_procedure_id = ?", treatmentProcedureID).
		Order("created_at DESC").Order("id DESC").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: treatment procedure %d", ErrBreakdownNotFound, treatmentProcedureID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest cost breakdown: %w", err)
	}
	b := rec.toDomain()
	return &b, nil
}

// History returns every breakdown for a procedure, oldest first
func (r *breakdownRepository) History(ctx context.Context, treatmentProcedureID int64) ([]domain.StoredBreakdown, error) {
	var recs []BreakdownRecord
	err := r.db.WithContext(ctx).
		Where("treatment_procedure_id = ?", treatmentProcedureID).
		Order("created_at ASC").Order("id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load cost breakdown history: %w", err)
	}
	out := make([]domain.StoredBreakdown, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.toDomain())
	}
	return out, nil
}
