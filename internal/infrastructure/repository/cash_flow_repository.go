package repository

import (
	"context"
	"errors"

	"github.com/teabook/teabook-api/internal/domain/entity"
	domainRepo "github.com/teabook/teabook-api/internal/domain/repository"
	"gorm.io/gorm"
)

type cashFlowRepository struct {
	db *gorm.DB
}

// NewCashFlowRepository creates a new cash-flow repository
func NewCashFlowRepository(db *gorm.DB) domainRepo.CashFlowRepository {
	return &cashFlowRepository{db: db}
}

func (r *cashFlowRepository) Create(ctx context.Context, flow *entity.DailyCashFlow) error {
	return r.db.WithContext(ctx).Create(flow).Error
}

func (r *cashFlowRepository) Update(ctx context.Context, flow *entity.DailyCashFlow) error {
	return r.db.WithContext(ctx).Save(flow).Error
}

func (r *cashFlowRepository) GetByDate(ctx context.Context, date string) (*entity.DailyCashFlow, error) {
	var flow entity.DailyCashFlow
	err := r.db.WithContext(ctx).First(&flow, "date = ?", date).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &flow, nil
}

func (r *cashFlowRepository) ListRange(ctx context.Context, start, end string) ([]entity.DailyCashFlow, error) {
	var flows []entity.DailyCashFlow
	query := r.db.WithContext(ctx).Model(&entity.DailyCashFlow{})
	if start != "" {
		query = query.Where("date >= ?", start)
	}
	if end != "" {
		query = query.Where("date <= ?", end)
	}
	err := query.Order("date DESC").Find(&flows).Error
	return flows, err
}

func (r *cashFlowRepository) ListAll(ctx context.Context) ([]entity.DailyCashFlow, error) {
	var flows []entity.DailyCashFlow
	err := r.db.WithContext(ctx).Order("date DESC").Find(&flows).Error
	return flows, err
}

func (r *cashFlowRepository) DeleteByDate(ctx context.Context, date string) error {
	return r.db.WithContext(ctx).Delete(&entity.DailyCashFlow{}, "date = ?", date).Error
}
