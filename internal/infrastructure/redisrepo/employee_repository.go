package redisrepo

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/teabook/teabook-api/internal/domain/entity"
	domainRepo "github.com/teabook/teabook-api/internal/domain/repository"
)

type employeeRepository struct {
	rdb *redis.Client
}

// NewEmployeeRepository creates an employee repository on the document store
func NewEmployeeRepository(rdb *redis.Client) domainRepo.EmployeeRepository {
	return &employeeRepository{rdb: rdb}
}

func (r *employeeRepository) Create(ctx context.Context, employee *entity.Employee) error {
	if employee.ID == uuid.Nil {
		employee.ID = uuid.New()
	}
	if employee.CreatedAt.IsZero() {
		employee.CreatedAt = time.Now()
	}
	employee.UpdatedAt = employee.CreatedAt
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if err := setDoc(ctx, pipe, keyEmployee+employee.ID.String(), employee); err != nil {
			return err
		}
		return pipe.SAdd(ctx, idxEmployees, employee.ID.String()).Err()
	})
	return err
}

func (r *employeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	var employee entity.Employee
	found, err := getDoc(ctx, r.rdb, keyEmployee+id.String(), &employee)
	if err != nil || !found {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) Update(ctx context.Context, employee *entity.Employee) error {
	return setDoc(ctx, r.rdb, keyEmployee+employee.ID.String(), employee)
}

func (r *employeeRepository) List(ctx context.Context) ([]entity.Employee, error) {
	ids, err := r.rdb.SMembers(ctx, idxEmployees).Result()
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = keyEmployee + id
	}
	employees := make([]entity.Employee, 0, len(keys))
	err = getDocs(ctx, r.rdb, keys, func(raw []byte) error {
		var employee entity.Employee
		if err := json.Unmarshal(raw, &employee); err != nil {
			return err
		}
		employees = append(employees, employee)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(employees, func(i, j int) bool {
		return employees[i].Name < employees[j].Name
	})
	return employees, nil
}

type salaryPaymentRepository struct {
	rdb *redis.Client
}

// NewSalaryPaymentRepository creates a salary payment repository on the
// document store
func NewSalaryPaymentRepository(rdb *redis.Client) domainRepo.SalaryPaymentRepository {
	return &salaryPaymentRepository{rdb: rdb}
}

func (r *salaryPaymentRepository) Create(ctx context.Context, payment *entity.SalaryPayment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now()
	}
	payment.UpdatedAt = payment.CreatedAt
	score := float64(payment.CreatedAt.UnixMilli())
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if err := setDoc(ctx, pipe, keySalary+payment.ID.String(), payment); err != nil {
			return err
		}
		if err := pipe.ZAdd(ctx, idxSalaries, redis.Z{
			Score:  score,
			Member: payment.ID.String(),
		}).Err(); err != nil {
			return err
		}
		return pipe.ZAdd(ctx, idxSalariesByEmployee+payment.EmployeeID.String(), redis.Z{
			Score:  score,
			Member: payment.ID.String(),
		}).Err()
	})
	return err
}

func (r *salaryPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SalaryPayment, error) {
	var payment entity.SalaryPayment
	found, err := getDoc(ctx, r.rdb, keySalary+id.String(), &payment)
	if err != nil || !found {
		return nil, err
	}
	return &payment, nil
}

func (r *salaryPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	payment, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if payment == nil {
		return nil
	}
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if err := pipe.Del(ctx, keySalary+id.String()).Err(); err != nil {
			return err
		}
		if err := pipe.ZRem(ctx, idxSalaries, id.String()).Err(); err != nil {
			return err
		}
		return pipe.ZRem(ctx, idxSalariesByEmployee+payment.EmployeeID.String(), id.String()).Err()
	})
	return err
}

func (r *salaryPaymentRepository) List(ctx context.Context, params *domainRepo.SalaryPaymentFilterParams) ([]entity.SalaryPayment, error) {
	index := idxSalaries
	if params.EmployeeID != nil {
		index = idxSalariesByEmployee + params.EmployeeID.String()
	}
	ids, err := r.rdb.ZRevRange(ctx, index, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	payments, err := r.fetch(ctx, ids)
	if err != nil {
		return nil, err
	}

	filtered := payments[:0]
	for _, p := range payments {
		if params.Month != nil && p.Month != *params.Month {
			continue
		}
		if params.Year != nil && p.Year != *params.Year {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

func (r *salaryPaymentRepository) ListRecentByEmployeeAmount(ctx context.Context, employeeID uuid.UUID, amount decimal.Decimal, limit int) ([]entity.SalaryPayment, error) {
	ids, err := r.rdb.ZRevRange(ctx, idxSalariesByEmployee+employeeID.String(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	payments, err := r.fetch(ctx, ids)
	if err != nil {
		return nil, err
	}

	matched := make([]entity.SalaryPayment, 0, limit)
	for _, p := range payments {
		if !p.Amount.Equal(amount) {
			continue
		}
		matched = append(matched, p)
		if len(matched) == limit {
			break
		}
	}
	return matched, nil
}

func (r *salaryPaymentRepository) fetch(ctx context.Context, ids []string) ([]entity.SalaryPayment, error) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = keySalary + id
	}
	payments := make([]entity.SalaryPayment, 0, len(keys))
	err := getDocs(ctx, r.rdb, keys, func(raw []byte) error {
		var payment entity.SalaryPayment
		if err := json.Unmarshal(raw, &payment); err != nil {
			return err
		}
		payments = append(payments, payment)
		return nil
	})
	return payments, err
}
