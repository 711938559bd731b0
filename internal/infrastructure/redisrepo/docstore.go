// Package redisrepo implements the domain repositories on a Redis document
// store: every row is a JSON document under a typed key, with set and
// sorted-set indexes for the query shapes the services need. Multi-document
// writes go through MULTI/EXEC pipelines; the stock movement additionally
// takes a per-item lock so its read-modify-write cannot lose an update.
package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key prefixes. Documents live under "<prefix><key>", indexes under
// "<prefix>" + a plural name.
const (
	keyCashFlow      = "teabook:cashflow:"      // + date -> doc
	idxCashFlowDates = "teabook:cashflow:dates" // zset, member=date, score=unix(date)

	keyExpense        = "teabook:expense:"          // + id -> doc
	idxExpensesByDate = "teabook:expenses:by_date"  // zset, member=id, score=unix(date)
	idxExpensesOfDate = "teabook:expenses:of_date:" // + date -> set of ids

	keyEmployee  = "teabook:employee:" // + id -> doc
	idxEmployees = "teabook:employees" // set of ids

	keySalary             = "teabook:salary:"            // + id -> doc
	idxSalaries           = "teabook:salaries"           // zset, member=id, score=unix(created_at)
	idxSalariesByEmployee = "teabook:salaries:employee:" // + employee id -> zset

	keyStock  = "teabook:stock:"     // + id -> doc
	idxStock  = "teabook:stock:all"  // set of ids
	lockStock = "teabook:stock:lock:" // + id -> redislock key

	keyStockTxn        = "teabook:stocktx:"        // + id -> doc
	idxStockTxns       = "teabook:stocktx:all"     // zset, member=id, score=unix(created_at)
	idxStockTxnsOfItem = "teabook:stocktx:stock:"  // + stock id -> zset

	keySupplier  = "teabook:supplier:" // + id -> doc
	idxSuppliers = "teabook:suppliers" // set of ids

	keyBill  = "teabook:bill:" // + id -> doc
	idxBills = "teabook:bills" // set of ids

	keyMilk      = "teabook:milk:"      // + date -> doc
	idxMilkDates = "teabook:milk:dates" // zset, member=date, score=unix(date)

	keyIdempotency = "teabook:idem:" // + key -> doc, with TTL
)

const dateLayout = "2006-01-02"

// dateScore converts a date key into a sortable zset score.
func dateScore(date string) float64 {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0
	}
	return float64(t.Unix())
}

// formatScore renders a zset score for ZRangeBy bounds.
func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

// getDoc unmarshals the document at key into v. Returns false when the key
// does not exist.
func getDoc(ctx context.Context, rdb *redis.Client, key string, v interface{}) (bool, error) {
	raw, err := rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(raw, v)
}

// setDoc marshals v and stores it at key through the given pipeliner (or the
// client itself).
func setDoc(ctx context.Context, c redis.Cmdable, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, raw, 0).Err()
}

// getDocs fetches and unmarshals documents for the given keys, skipping
// missing ones. decode appends each found document to the caller's slice.
func getDocs(ctx context.Context, rdb *redis.Client, keys []string, decode func(raw []byte) error) error {
	if len(keys) == 0 {
		return nil
	}
	raws, err := rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return err
	}
	for _, raw := range raws {
		s, ok := raw.(string)
		if !ok {
			continue // evicted between index read and fetch
		}
		if err := decode([]byte(s)); err != nil {
			return err
		}
	}
	return nil
}
