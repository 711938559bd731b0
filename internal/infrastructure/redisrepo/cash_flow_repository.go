package redisrepo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/teabook/teabook-api/internal/domain/entity"
	domainRepo "github.com/teabook/teabook-api/internal/domain/repository"
)

type cashFlowRepository struct {
	rdb *redis.Client
}

// NewCashFlowRepository creates a cash-flow repository on the document store
func NewCashFlowRepository(rdb *redis.Client) domainRepo.CashFlowRepository {
	return &cashFlowRepository{rdb: rdb}
}

func (r *cashFlowRepository) Create(ctx context.Context, flow *entity.DailyCashFlow) error {
	return r.write(ctx, flow)
}

func (r *cashFlowRepository) Update(ctx context.Context, flow *entity.DailyCashFlow) error {
	return r.write(ctx, flow)
}

// write stores the document under its date key and registers the date in the
// range index. Create and Update collapse into the same operation because the
// date is the primary key.
func (r *cashFlowRepository) write(ctx context.Context, flow *entity.DailyCashFlow) error {
	if flow.ID == uuid.Nil {
		flow.ID = uuid.New()
	}
	now := time.Now()
	if flow.CreatedAt.IsZero() {
		flow.CreatedAt = now
	}
	flow.UpdatedAt = now
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if err := setDoc(ctx, pipe, keyCashFlow+flow.Date, flow); err != nil {
			return err
		}
		return pipe.ZAdd(ctx, idxCashFlowDates, redis.Z{
			Score:  dateScore(flow.Date),
			Member: flow.Date,
		}).Err()
	})
	return err
}

func (r *cashFlowRepository) GetByDate(ctx context.Context, date string) (*entity.DailyCashFlow, error) {
	var flow entity.DailyCashFlow
	found, err := getDoc(ctx, r.rdb, keyCashFlow+date, &flow)
	if err != nil || !found {
		return nil, err
	}
	return &flow, nil
}

func (r *cashFlowRepository) ListRange(ctx context.Context, start, end string) ([]entity.DailyCashFlow, error) {
	min, max := "-inf", "+inf"
	if start != "" {
		min = formatScore(dateScore(start))
	}
	if end != "" {
		max = formatScore(dateScore(end))
	}

	dates, err := r.rdb.ZRevRangeByScore(ctx, idxCashFlowDates, &redis.ZRangeBy{
		Min: min,
		Max: max,
	}).Result()
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(dates))
	for i, d := range dates {
		keys[i] = keyCashFlow + d
	}

	flows := make([]entity.DailyCashFlow, 0, len(keys))
	err = getDocs(ctx, r.rdb, keys, func(raw []byte) error {
		var flow entity.DailyCashFlow
		if err := json.Unmarshal(raw, &flow); err != nil {
			return err
		}
		flows = append(flows, flow)
		return nil
	})
	return flows, err
}

func (r *cashFlowRepository) ListAll(ctx context.Context) ([]entity.DailyCashFlow, error) {
	return r.ListRange(ctx, "", "")
}

func (r *cashFlowRepository) DeleteByDate(ctx context.Context, date string) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if err := pipe.Del(ctx, keyCashFlow+date).Err(); err != nil {
			return err
		}
		return pipe.ZRem(ctx, idxCashFlowDates, date).Err()
	})
	return err
}
