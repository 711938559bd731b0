package redisrepo

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/teabook/teabook-api/internal/domain/entity"
	domainRepo "github.com/teabook/teabook-api/internal/domain/repository"
)

type pendingBillRepository struct {
	rdb *redis.Client
}

// NewPendingBillRepository creates a pending-bill repository on the document
// store.
func NewPendingBillRepository(rdb *redis.Client) domainRepo.PendingBillRepository {
	return &pendingBillRepository{rdb: rdb}
}

func (r *pendingBillRepository) Create(ctx context.Context, bill *entity.PendingBill) error {
	if bill.ID == uuid.Nil {
		bill.ID = uuid.New()
	}
	now := time.Now()
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = now
	}
	bill.UpdatedAt = now
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if err := setDoc(ctx, pipe, keyBill+bill.ID.String(), bill); err != nil {
			return err
		}
		return pipe.SAdd(ctx, idxBills, bill.ID.String()).Err()
	})
	return err
}

func (r *pendingBillRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PendingBill, error) {
	var bill entity.PendingBill
	found, err := getDoc(ctx, r.rdb, keyBill+id.String(), &bill)
	if err != nil || !found {
		return nil, err
	}
	return &bill, nil
}

func (r *pendingBillRepository) Update(ctx context.Context, bill *entity.PendingBill) error {
	bill.UpdatedAt = time.Now()
	return setDoc(ctx, r.rdb, keyBill+bill.ID.String(), bill)
}

func (r *pendingBillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if err := pipe.Del(ctx, keyBill+id.String()).Err(); err != nil {
			return err
		}
		return pipe.SRem(ctx, idxBills, id.String()).Err()
	})
	return err
}

func (r *pendingBillRepository) List(ctx context.Context) ([]entity.PendingBill, error) {
	ids, err := r.rdb.SMembers(ctx, idxBills).Result()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, keyBill+id)
	}
	bills := make([]entity.PendingBill, 0, len(keys))
	err = getDocs(ctx, r.rdb, keys, func(raw []byte) error {
		var bill entity.PendingBill
		if err := json.Unmarshal(raw, &bill); err != nil {
			return err
		}
		bills = append(bills, bill)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(bills, func(i, j int) bool { return bills[i].DueDate < bills[j].DueDate })
	return bills, nil
}

type milkUsageRepository struct {
	rdb *redis.Client
}

// NewMilkUsageRepository creates a milk-usage repository on the document
// store.
func NewMilkUsageRepository(rdb *redis.Client) domainRepo.MilkUsageRepository {
	return &milkUsageRepository{rdb: rdb}
}

func (r *milkUsageRepository) Upsert(ctx context.Context, usage *entity.MilkUsage) error {
	if usage.ID == uuid.Nil {
		usage.ID = uuid.New()
	}
	now := time.Now()
	if usage.CreatedAt.IsZero() {
		usage.CreatedAt = now
	}
	usage.UpdatedAt = now
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if err := setDoc(ctx, pipe, keyMilk+usage.Date, usage); err != nil {
			return err
		}
		return pipe.ZAdd(ctx, idxMilkDates, redis.Z{
			Score:  dateScore(usage.Date),
			Member: usage.Date,
		}).Err()
	})
	return err
}

func (r *milkUsageRepository) GetByDate(ctx context.Context, date string) (*entity.MilkUsage, error) {
	var usage entity.MilkUsage
	found, err := getDoc(ctx, r.rdb, keyMilk+date, &usage)
	if err != nil || !found {
		return nil, err
	}
	return &usage, nil
}

func (r *milkUsageRepository) GetLatestBefore(ctx context.Context, date string) (*entity.MilkUsage, error) {
	dates, err := r.rdb.ZRevRangeByScore(ctx, idxMilkDates, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   "(" + formatScore(dateScore(date)),
		Count: 1,
	}).Result()
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, nil
	}
	return r.GetByDate(ctx, dates[0])
}

func (r *milkUsageRepository) List(ctx context.Context) ([]entity.MilkUsage, error) {
	return r.listByScore(ctx, "-inf", "+inf")
}

func (r *milkUsageRepository) ListRange(ctx context.Context, start, end string) ([]entity.MilkUsage, error) {
	min, max := "-inf", "+inf"
	if start != "" {
		min = formatScore(dateScore(start))
	}
	if end != "" {
		max = formatScore(dateScore(end))
	}
	return r.listByScore(ctx, min, max)
}

func (r *milkUsageRepository) listByScore(ctx context.Context, min, max string) ([]entity.MilkUsage, error) {
	dates, err := r.rdb.ZRevRangeByScore(ctx, idxMilkDates, &redis.ZRangeBy{Min: min, Max: max}).Result()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(dates))
	for _, date := range dates {
		keys = append(keys, keyMilk+date)
	}
	rows := make([]entity.MilkUsage, 0, len(keys))
	err = getDocs(ctx, r.rdb, keys, func(raw []byte) error {
		var usage entity.MilkUsage
		if err := json.Unmarshal(raw, &usage); err != nil {
			return err
		}
		rows = append(rows, usage)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type idempotencyRepository struct {
	rdb *redis.Client
}

// NewIdempotencyRepository creates an idempotency-key repository on the
// document store. Expiry is native: keys are stored with a TTL, so
// DeleteExpired has nothing to sweep.
func NewIdempotencyRepository(rdb *redis.Client) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{rdb: rdb}
}

func (r *idempotencyRepository) Get(ctx context.Context, key string) (*entity.IdempotencyKey, error) {
	var record entity.IdempotencyKey
	found, err := getDoc(ctx, r.rdb, keyIdempotency+key, &record)
	if err != nil || !found {
		return nil, err
	}
	if record.IsExpired() {
		return nil, nil
	}
	return &record, nil
}

func (r *idempotencyRepository) Save(ctx context.Context, record *entity.IdempotencyKey) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	ttl := time.Until(record.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, keyIdempotency+record.Key, raw, ttl).Err()
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) error {
	// TTLs already evict expired keys.
	return nil
}
