package redisrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/bsm/redislock"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/teabook/teabook-api/internal/domain/entity"
	"github.com/teabook/teabook-api/internal/domain/enum"
	domainRepo "github.com/teabook/teabook-api/internal/domain/repository"
)

type stockRepository struct {
	rdb    *redis.Client
	locker *redislock.Client
}

// NewStockRepository creates a stock repository on the document store.
func NewStockRepository(rdb *redis.Client) domainRepo.StockRepository {
	return &stockRepository{rdb: rdb, locker: redislock.New(rdb)}
}

func (r *stockRepository) Create(ctx context.Context, item *entity.StockItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if err := setDoc(ctx, pipe, keyStock+item.ID.String(), item); err != nil {
			return err
		}
		return pipe.SAdd(ctx, idxStock, item.ID.String()).Err()
	})
	return err
}

func (r *stockRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.StockItem, error) {
	var item entity.StockItem
	found, err := getDoc(ctx, r.rdb, keyStock+id.String(), &item)
	if err != nil || !found {
		return nil, err
	}
	return &item, nil
}

func (r *stockRepository) Update(ctx context.Context, item *entity.StockItem) error {
	item.UpdatedAt = time.Now()
	return setDoc(ctx, r.rdb, keyStock+item.ID.String(), item)
}

func (r *stockRepository) List(ctx context.Context) ([]entity.StockItem, error) {
	ids, err := r.rdb.SMembers(ctx, idxStock).Result()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, keyStock+id)
	}
	items := make([]entity.StockItem, 0, len(keys))
	err = getDocs(ctx, r.rdb, keys, func(raw []byte) error {
		var item entity.StockItem
		if err := json.Unmarshal(raw, &item); err != nil {
			return err
		}
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].ProductName < items[j].ProductName
	})
	return items, nil
}

// ApplyTransaction serializes movements per item with a lock, since the
// running sums live in the document and must be read back, incremented and
// rewritten. The document write and the log append share one pipeline.
func (r *stockRepository) ApplyTransaction(ctx context.Context, txn *entity.StockTransaction) (*entity.StockItem, error) {
	lock, err := r.locker.Obtain(ctx, lockStock+txn.StockID.String(), 5*time.Second, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(50*time.Millisecond), 20),
	})
	if err != nil {
		return nil, fmt.Errorf("lock stock %s: %w", txn.StockID, err)
	}
	defer lock.Release(ctx)

	var item entity.StockItem
	found, err := getDoc(ctx, r.rdb, keyStock+txn.StockID.String(), &item)
	if err != nil || !found {
		return nil, err
	}

	switch txn.TransactionType {
	case enum.TransactionTypePurchase:
		item.PurchasedQty += txn.Quantity
	case enum.TransactionTypeUse:
		item.UsedSoldQty += txn.Quantity
	default:
		return nil, fmt.Errorf("unknown transaction type %q", txn.TransactionType)
	}
	item.RecalculateClosing()
	item.UpdatedAt = time.Now()

	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now()
	}
	score := float64(txn.CreatedAt.UnixMilli())

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if err := setDoc(ctx, pipe, keyStock+item.ID.String(), &item); err != nil {
			return err
		}
		if err := setDoc(ctx, pipe, keyStockTxn+txn.ID.String(), txn); err != nil {
			return err
		}
		if err := pipe.ZAdd(ctx, idxStockTxns, redis.Z{Score: score, Member: txn.ID.String()}).Err(); err != nil {
			return err
		}
		return pipe.ZAdd(ctx, idxStockTxnsOfItem+item.ID.String(), redis.Z{Score: score, Member: txn.ID.String()}).Err()
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *stockRepository) DeleteWithTransactions(ctx context.Context, id uuid.UUID) error {
	txnIDs, err := r.rdb.ZRange(ctx, idxStockTxnsOfItem+id.String(), 0, -1).Result()
	if err != nil {
		return err
	}
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, txnID := range txnIDs {
			if err := pipe.Del(ctx, keyStockTxn+txnID).Err(); err != nil {
				return err
			}
			if err := pipe.ZRem(ctx, idxStockTxns, txnID).Err(); err != nil {
				return err
			}
		}
		if err := pipe.Del(ctx, idxStockTxnsOfItem+id.String()).Err(); err != nil {
			return err
		}
		if err := pipe.Del(ctx, keyStock+id.String()).Err(); err != nil {
			return err
		}
		return pipe.SRem(ctx, idxStock, id.String()).Err()
	})
	return err
}

func (r *stockRepository) ListTransactions(ctx context.Context, stockID uuid.UUID, limit int) ([]entity.StockTransaction, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	ids, err := r.rdb.ZRevRange(ctx, idxStockTxnsOfItem+stockID.String(), 0, stop).Result()
	if err != nil {
		return nil, err
	}
	return r.fetch(ctx, ids)
}

func (r *stockRepository) ListTransactionsBetween(ctx context.Context, start, end time.Time) ([]entity.StockTransaction, error) {
	ids, err := r.rdb.ZRangeByScore(ctx, idxStockTxns, &redis.ZRangeBy{
		Min: formatScore(float64(start.UnixMilli())),
		Max: "(" + formatScore(float64(end.UnixMilli())),
	}).Result()
	if err != nil {
		return nil, err
	}
	return r.fetch(ctx, ids)
}

func (r *stockRepository) fetch(ctx context.Context, ids []string) ([]entity.StockTransaction, error) {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, keyStockTxn+id)
	}
	txns := make([]entity.StockTransaction, 0, len(keys))
	err := getDocs(ctx, r.rdb, keys, func(raw []byte) error {
		var txn entity.StockTransaction
		if err := json.Unmarshal(raw, &txn); err != nil {
			return err
		}
		txns = append(txns, txn)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txns, nil
}

type supplierRepository struct {
	rdb *redis.Client
}

// NewSupplierRepository creates a supplier repository on the document store.
func NewSupplierRepository(rdb *redis.Client) domainRepo.SupplierRepository {
	return &supplierRepository{rdb: rdb}
}

func (r *supplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	if supplier.ID == uuid.Nil {
		supplier.ID = uuid.New()
	}
	now := time.Now()
	if supplier.CreatedAt.IsZero() {
		supplier.CreatedAt = now
	}
	supplier.UpdatedAt = now
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if err := setDoc(ctx, pipe, keySupplier+supplier.ID.String(), supplier); err != nil {
			return err
		}
		return pipe.SAdd(ctx, idxSuppliers, supplier.ID.String()).Err()
	})
	return err
}

func (r *supplierRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	var supplier entity.Supplier
	found, err := getDoc(ctx, r.rdb, keySupplier+id.String(), &supplier)
	if err != nil || !found {
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	supplier.UpdatedAt = time.Now()
	return setDoc(ctx, r.rdb, keySupplier+supplier.ID.String(), supplier)
}

func (r *supplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if err := pipe.Del(ctx, keySupplier+id.String()).Err(); err != nil {
			return err
		}
		return pipe.SRem(ctx, idxSuppliers, id.String()).Err()
	})
	return err
}

func (r *supplierRepository) List(ctx context.Context) ([]entity.Supplier, error) {
	ids, err := r.rdb.SMembers(ctx, idxSuppliers).Result()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, keySupplier+id)
	}
	suppliers := make([]entity.Supplier, 0, len(keys))
	err = getDocs(ctx, r.rdb, keys, func(raw []byte) error {
		var supplier entity.Supplier
		if err := json.Unmarshal(raw, &supplier); err != nil {
			return err
		}
		suppliers = append(suppliers, supplier)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(suppliers, func(i, j int) bool { return suppliers[i].Name < suppliers[j].Name })
	return suppliers, nil
}
