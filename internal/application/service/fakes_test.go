package service_test

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/teabook/teabook-api/internal/domain/entity"
	"github.com/teabook/teabook-api/internal/domain/enum"
	domainRepo "github.com/teabook/teabook-api/internal/domain/repository"
)

// In-memory repository fakes. They mimic the store contracts the services
// rely on: nil, nil for missing rows, newest-first ordering, and the atomic
// stock movement.

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(nopWriter{})
	return log
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

type fakeExpenseRepo struct {
	rows map[uuid.UUID]*entity.Expense
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{rows: make(map[uuid.UUID]*entity.Expense)}
}

func (r *fakeExpenseRepo) Create(_ context.Context, expense *entity.Expense) error {
	if expense.ID == uuid.Nil {
		expense.ID = uuid.New()
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now()
	}
	clone := *expense
	r.rows[expense.ID] = &clone
	return nil
}

func (r *fakeExpenseRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Expense, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	clone := *row
	return &clone, nil
}

func (r *fakeExpenseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

func (r *fakeExpenseRepo) ListByDate(_ context.Context, date string) ([]entity.Expense, error) {
	var out []entity.Expense
	for _, row := range r.rows {
		if row.Date == date {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *fakeExpenseRepo) ListRange(_ context.Context, start, end string) ([]entity.Expense, error) {
	var out []entity.Expense
	for _, row := range r.rows {
		if start != "" && row.Date < start {
			continue
		}
		if end != "" && row.Date > end {
			continue
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (r *fakeExpenseRepo) List(ctx context.Context, params *domainRepo.ExpenseFilterParams) ([]entity.Expense, int64, error) {
	rows, err := r.ListRange(ctx, params.StartDate, params.EndDate)
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(rows))
	params.Pagination.Validate()
	offset := params.Pagination.Offset()
	if offset >= len(rows) {
		return []entity.Expense{}, total, nil
	}
	end := offset + params.Pagination.PerPage
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end], total, nil
}

type fakeCashFlowRepo struct {
	rows map[string]*entity.DailyCashFlow
}

func newFakeCashFlowRepo() *fakeCashFlowRepo {
	return &fakeCashFlowRepo{rows: make(map[string]*entity.DailyCashFlow)}
}

func (r *fakeCashFlowRepo) Create(_ context.Context, flow *entity.DailyCashFlow) error {
	if flow.ID == uuid.Nil {
		flow.ID = uuid.New()
	}
	clone := *flow
	r.rows[flow.Date] = &clone
	return nil
}

func (r *fakeCashFlowRepo) Update(_ context.Context, flow *entity.DailyCashFlow) error {
	clone := *flow
	r.rows[flow.Date] = &clone
	return nil
}

func (r *fakeCashFlowRepo) GetByDate(_ context.Context, date string) (*entity.DailyCashFlow, error) {
	row, ok := r.rows[date]
	if !ok {
		return nil, nil
	}
	clone := *row
	return &clone, nil
}

func (r *fakeCashFlowRepo) ListRange(_ context.Context, start, end string) ([]entity.DailyCashFlow, error) {
	var out []entity.DailyCashFlow
	for _, row := range r.rows {
		if start != "" && row.Date < start {
			continue
		}
		if end != "" && row.Date > end {
			continue
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (r *fakeCashFlowRepo) ListAll(ctx context.Context) ([]entity.DailyCashFlow, error) {
	return r.ListRange(ctx, "", "")
}

func (r *fakeCashFlowRepo) DeleteByDate(_ context.Context, date string) error {
	delete(r.rows, date)
	return nil
}

type fakeEmployeeRepo struct {
	rows map[uuid.UUID]*entity.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{rows: make(map[uuid.UUID]*entity.Employee)}
}

func (r *fakeEmployeeRepo) Create(_ context.Context, employee *entity.Employee) error {
	if employee.ID == uuid.Nil {
		employee.ID = uuid.New()
	}
	clone := *employee
	r.rows[employee.ID] = &clone
	return nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Employee, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	clone := *row
	return &clone, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, employee *entity.Employee) error {
	clone := *employee
	r.rows[employee.ID] = &clone
	return nil
}

func (r *fakeEmployeeRepo) List(_ context.Context) ([]entity.Employee, error) {
	var out []entity.Employee
	for _, row := range r.rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeSalaryRepo struct {
	rows map[uuid.UUID]*entity.SalaryPayment
}

func newFakeSalaryRepo() *fakeSalaryRepo {
	return &fakeSalaryRepo{rows: make(map[uuid.UUID]*entity.SalaryPayment)}
}

func (r *fakeSalaryRepo) Create(_ context.Context, payment *entity.SalaryPayment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now()
	}
	clone := *payment
	r.rows[payment.ID] = &clone
	return nil
}

func (r *fakeSalaryRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.SalaryPayment, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	clone := *row
	return &clone, nil
}

func (r *fakeSalaryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

func (r *fakeSalaryRepo) List(_ context.Context, params *domainRepo.SalaryPaymentFilterParams) ([]entity.SalaryPayment, error) {
	var out []entity.SalaryPayment
	for _, row := range r.rows {
		if params.EmployeeID != nil && row.EmployeeID != *params.EmployeeID {
			continue
		}
		if params.Month != nil && row.Month != *params.Month {
			continue
		}
		if params.Year != nil && row.Year != *params.Year {
			continue
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeSalaryRepo) ListRecentByEmployeeAmount(_ context.Context, employeeID uuid.UUID, amount decimal.Decimal, limit int) ([]entity.SalaryPayment, error) {
	var out []entity.SalaryPayment
	for _, row := range r.rows {
		if row.EmployeeID == employeeID && row.Amount.Equal(amount) {
			out = append(out, *row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeStockRepo struct {
	items map[uuid.UUID]*entity.StockItem
	txns  []entity.StockTransaction
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{items: make(map[uuid.UUID]*entity.StockItem)}
}

func (r *fakeStockRepo) Create(_ context.Context, item *entity.StockItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	clone := *item
	r.items[item.ID] = &clone
	return nil
}

func (r *fakeStockRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.StockItem, error) {
	row, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	clone := *row
	return &clone, nil
}

func (r *fakeStockRepo) Update(_ context.Context, item *entity.StockItem) error {
	clone := *item
	r.items[item.ID] = &clone
	return nil
}

func (r *fakeStockRepo) List(_ context.Context) ([]entity.StockItem, error) {
	var out []entity.StockItem
	for _, row := range r.items {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].ProductName < out[j].ProductName
	})
	return out, nil
}

func (r *fakeStockRepo) ApplyTransaction(_ context.Context, txn *entity.StockTransaction) (*entity.StockItem, error) {
	item, ok := r.items[txn.StockID]
	if !ok {
		return nil, nil
	}
	switch txn.TransactionType {
	case enum.TransactionTypePurchase:
		item.PurchasedQty += txn.Quantity
	case enum.TransactionTypeUse:
		item.UsedSoldQty += txn.Quantity
	}
	item.RecalculateClosing()
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now()
	}
	r.txns = append(r.txns, *txn)
	clone := *item
	return &clone, nil
}

func (r *fakeStockRepo) DeleteWithTransactions(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	kept := r.txns[:0]
	for _, txn := range r.txns {
		if txn.StockID != id {
			kept = append(kept, txn)
		}
	}
	r.txns = kept
	return nil
}

func (r *fakeStockRepo) ListTransactions(_ context.Context, stockID uuid.UUID, limit int) ([]entity.StockTransaction, error) {
	var out []entity.StockTransaction
	for _, txn := range r.txns {
		if txn.StockID == stockID {
			out = append(out, txn)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeStockRepo) ListTransactionsBetween(_ context.Context, start, end time.Time) ([]entity.StockTransaction, error) {
	var out []entity.StockTransaction
	for _, txn := range r.txns {
		if txn.CreatedAt.Before(start) || !txn.CreatedAt.Before(end) {
			continue
		}
		out = append(out, txn)
	}
	return out, nil
}

type fakeSupplierRepo struct {
	rows map[uuid.UUID]*entity.Supplier
}

func newFakeSupplierRepo() *fakeSupplierRepo {
	return &fakeSupplierRepo{rows: make(map[uuid.UUID]*entity.Supplier)}
}

func (r *fakeSupplierRepo) Create(_ context.Context, supplier *entity.Supplier) error {
	if supplier.ID == uuid.Nil {
		supplier.ID = uuid.New()
	}
	clone := *supplier
	r.rows[supplier.ID] = &clone
	return nil
}

func (r *fakeSupplierRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Supplier, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	clone := *row
	return &clone, nil
}

func (r *fakeSupplierRepo) Update(_ context.Context, supplier *entity.Supplier) error {
	clone := *supplier
	r.rows[supplier.ID] = &clone
	return nil
}

func (r *fakeSupplierRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

func (r *fakeSupplierRepo) List(_ context.Context) ([]entity.Supplier, error) {
	var out []entity.Supplier
	for _, row := range r.rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeBillRepo struct {
	rows map[uuid.UUID]*entity.PendingBill
}

func newFakeBillRepo() *fakeBillRepo {
	return &fakeBillRepo{rows: make(map[uuid.UUID]*entity.PendingBill)}
}

func (r *fakeBillRepo) Create(_ context.Context, bill *entity.PendingBill) error {
	if bill.ID == uuid.Nil {
		bill.ID = uuid.New()
	}
	clone := *bill
	r.rows[bill.ID] = &clone
	return nil
}

func (r *fakeBillRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.PendingBill, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	clone := *row
	return &clone, nil
}

func (r *fakeBillRepo) Update(_ context.Context, bill *entity.PendingBill) error {
	clone := *bill
	r.rows[bill.ID] = &clone
	return nil
}

func (r *fakeBillRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

func (r *fakeBillRepo) List(_ context.Context) ([]entity.PendingBill, error) {
	var out []entity.PendingBill
	for _, row := range r.rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate < out[j].DueDate })
	return out, nil
}

type fakeMilkRepo struct {
	rows map[string]*entity.MilkUsage
}

func newFakeMilkRepo() *fakeMilkRepo {
	return &fakeMilkRepo{rows: make(map[string]*entity.MilkUsage)}
}

func (r *fakeMilkRepo) Upsert(_ context.Context, usage *entity.MilkUsage) error {
	if usage.ID == uuid.Nil {
		usage.ID = uuid.New()
	}
	clone := *usage
	r.rows[usage.Date] = &clone
	return nil
}

func (r *fakeMilkRepo) GetByDate(_ context.Context, date string) (*entity.MilkUsage, error) {
	row, ok := r.rows[date]
	if !ok {
		return nil, nil
	}
	clone := *row
	return &clone, nil
}

func (r *fakeMilkRepo) GetLatestBefore(_ context.Context, date string) (*entity.MilkUsage, error) {
	var latest *entity.MilkUsage
	for _, row := range r.rows {
		if row.Date >= date {
			continue
		}
		if latest == nil || row.Date > latest.Date {
			latest = row
		}
	}
	if latest == nil {
		return nil, nil
	}
	clone := *latest
	return &clone, nil
}

func (r *fakeMilkRepo) List(ctx context.Context) ([]entity.MilkUsage, error) {
	return r.ListRange(ctx, "", "")
}

func (r *fakeMilkRepo) ListRange(_ context.Context, start, end string) ([]entity.MilkUsage, error) {
	var out []entity.MilkUsage
	for _, row := range r.rows {
		if start != "" && row.Date < start {
			continue
		}
		if end != "" && row.Date > end {
			continue
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}
