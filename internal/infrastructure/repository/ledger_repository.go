package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/teabook/teabook-api/internal/domain/entity"
	domainRepo "github.com/teabook/teabook-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type pendingBillRepository struct {
	db *gorm.DB
}

// NewPendingBillRepository creates a new pending bill repository
func NewPendingBillRepository(db *gorm.DB) domainRepo.PendingBillRepository {
	return &pendingBillRepository{db: db}
}

func (r *pendingBillRepository) Create(ctx context.Context, bill *entity.PendingBill) error {
	return r.db.WithContext(ctx).Create(bill).Error
}

func (r *pendingBillRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PendingBill, error) {
	var bill entity.PendingBill
	err := r.db.WithContext(ctx).First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *pendingBillRepository) Update(ctx context.Context, bill *entity.PendingBill) error {
	return r.db.WithContext(ctx).Save(bill).Error
}

func (r *pendingBillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.PendingBill{}, "id = ?", id).Error
}

func (r *pendingBillRepository) List(ctx context.Context) ([]entity.PendingBill, error) {
	var bills []entity.PendingBill
	err := r.db.WithContext(ctx).Order("due_date ASC").Find(&bills).Error
	return bills, err
}

type milkUsageRepository struct {
	db *gorm.DB
}

// NewMilkUsageRepository creates a new milk usage repository
func NewMilkUsageRepository(db *gorm.DB) domainRepo.MilkUsageRepository {
	return &milkUsageRepository{db: db}
}

func (r *milkUsageRepository) Upsert(ctx context.Context, usage *entity.MilkUsage) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"purchased", "used", "remaining", "updated_at",
		}),
	}).Create(usage).Error
}

func (r *milkUsageRepository) GetByDate(ctx context.Context, date string) (*entity.MilkUsage, error) {
	var usage entity.MilkUsage
	err := r.db.WithContext(ctx).First(&usage, "date = ?", date).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &usage, nil
}

func (r *milkUsageRepository) GetLatestBefore(ctx context.Context, date string) (*entity.MilkUsage, error) {
	var usage entity.MilkUsage
	err := r.db.WithContext(ctx).
		Where("date < ?", date).
		Order("date DESC").
		First(&usage).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &usage, nil
}

func (r *milkUsageRepository) List(ctx context.Context) ([]entity.MilkUsage, error) {
	var rows []entity.MilkUsage
	err := r.db.WithContext(ctx).Order("date DESC").Find(&rows).Error
	return rows, err
}

func (r *milkUsageRepository) ListRange(ctx context.Context, start, end string) ([]entity.MilkUsage, error) {
	var rows []entity.MilkUsage
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start, end).
		Order("date DESC").
		Find(&rows).Error
	return rows, err
}

type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository creates a new idempotency key repository
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) Get(ctx context.Context, key string) (*entity.IdempotencyKey, error) {
	var record entity.IdempotencyKey
	err := r.db.WithContext(ctx).First(&record, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if record.IsExpired() {
		return nil, nil
	}
	return &record, nil
}

func (r *idempotencyRepository) Save(ctx context.Context, record *entity.IdempotencyKey) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Delete(&entity.IdempotencyKey{}, "expires_at < ?", time.Now()).Error
}
