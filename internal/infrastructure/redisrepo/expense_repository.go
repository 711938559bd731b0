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

type expenseRepository struct {
	rdb *redis.Client
}

// NewExpenseRepository creates an expense repository on the document store
func NewExpenseRepository(rdb *redis.Client) domainRepo.ExpenseRepository {
	return &expenseRepository{rdb: rdb}
}

func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	if expense.ID == uuid.Nil {
		expense.ID = uuid.New()
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now()
	}
	expense.UpdatedAt = expense.CreatedAt
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if err := setDoc(ctx, pipe, keyExpense+expense.ID.String(), expense); err != nil {
			return err
		}
		if err := pipe.ZAdd(ctx, idxExpensesByDate, redis.Z{
			Score:  dateScore(expense.Date),
			Member: expense.ID.String(),
		}).Err(); err != nil {
			return err
		}
		return pipe.SAdd(ctx, idxExpensesOfDate+expense.Date, expense.ID.String()).Err()
	})
	return err
}

func (r *expenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	var expense entity.Expense
	found, err := getDoc(ctx, r.rdb, keyExpense+id.String(), &expense)
	if err != nil || !found {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	expense, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return nil
	}
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if err := pipe.Del(ctx, keyExpense+id.String()).Err(); err != nil {
			return err
		}
		if err := pipe.ZRem(ctx, idxExpensesByDate, id.String()).Err(); err != nil {
			return err
		}
		return pipe.SRem(ctx, idxExpensesOfDate+expense.Date, id.String()).Err()
	})
	return err
}

func (r *expenseRepository) ListByDate(ctx context.Context, date string) ([]entity.Expense, error) {
	ids, err := r.rdb.SMembers(ctx, idxExpensesOfDate+date).Result()
	if err != nil {
		return nil, err
	}
	expenses, err := r.fetch(ctx, ids)
	if err != nil {
		return nil, err
	}
	sort.Slice(expenses, func(i, j int) bool {
		return expenses[i].CreatedAt.After(expenses[j].CreatedAt)
	})
	return expenses, nil
}

func (r *expenseRepository) ListRange(ctx context.Context, start, end string) ([]entity.Expense, error) {
	min, max := "-inf", "+inf"
	if start != "" {
		min = formatScore(dateScore(start))
	}
	if end != "" {
		max = formatScore(dateScore(end))
	}

	ids, err := r.rdb.ZRevRangeByScore(ctx, idxExpensesByDate, &redis.ZRangeBy{
		Min: min,
		Max: max,
	}).Result()
	if err != nil {
		return nil, err
	}

	expenses, err := r.fetch(ctx, ids)
	if err != nil {
		return nil, err
	}
	sort.Slice(expenses, func(i, j int) bool {
		if expenses[i].Date != expenses[j].Date {
			return expenses[i].Date > expenses[j].Date
		}
		return expenses[i].CreatedAt.After(expenses[j].CreatedAt)
	})
	return expenses, nil
}

func (r *expenseRepository) List(ctx context.Context, params *domainRepo.ExpenseFilterParams) ([]entity.Expense, int64, error) {
	expenses, err := r.ListRange(ctx, params.StartDate, params.EndDate)
	if err != nil {
		return nil, 0, err
	}

	total := int64(len(expenses))

	// The document store has no offset query; page after the fetch.
	params.Pagination.Validate()
	offset := params.Pagination.Offset()
	if offset >= len(expenses) {
		return []entity.Expense{}, total, nil
	}
	endIdx := offset + params.Pagination.PerPage
	if endIdx > len(expenses) {
		endIdx = len(expenses)
	}
	return expenses[offset:endIdx], total, nil
}

func (r *expenseRepository) fetch(ctx context.Context, ids []string) ([]entity.Expense, error) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = keyExpense + id
	}
	expenses := make([]entity.Expense, 0, len(keys))
	err := getDocs(ctx, r.rdb, keys, func(raw []byte) error {
		var expense entity.Expense
		if err := json.Unmarshal(raw, &expense); err != nil {
			return err
		}
		expenses = append(expenses, expense)
		return nil
	})
	return expenses, err
}
