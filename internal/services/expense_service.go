// Package services holds the business layer: it is the sole entry point for
// mutating expense data and the place where raw user input is validated
// before anything touches the store.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"spendtrack/internal/core"
	"spendtrack/internal/storage"
)

// Store is the persistence surface the service depends on. The SQLite
// repository implements it; tests may substitute their own.
type Store interface {
	CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error)
	GetExpense(ctx context.Context, id int64) (core.Expense, error)
	UpdateExpense(ctx context.Context, id int64, e core.Expense) error
	DeleteExpense(ctx context.Context, id int64) error
	ListExpenses(ctx context.Context, f storage.ExpenseFilter) ([]core.Expense, error)
	ListCategories(ctx context.Context) ([]core.Category, error)
	CreateCategory(ctx context.Context, c core.Category) (core.Category, error)
	SetCategoryBudget(ctx context.Context, name string, limit *core.Money) error
	DeleteCategory(ctx context.Context, name string) error
}

// RawExpense carries unparsed user input for one expense.
type RawExpense struct {
	Date        string
	Category    string
	Amount      string
	Description string
}

type ExpenseService struct {
	store Store
	now   func() time.Time
}

func NewExpenseService(store Store) *ExpenseService {
	return &ExpenseService{
		store: store,
		now:   time.Now,
	}
}

// parseRaw turns raw input into a validated expense. Pure except for the
// clock; it never calls the store's write side, so any failure here means
// nothing was persisted.
func (s *ExpenseService) parseRaw(ctx context.Context, raw RawExpense) (core.Expense, error) {
	date, err := core.ParseDate(raw.Date, s.now())
	if err != nil {
		return core.Expense{}, err
	}

	amount, err := core.ParseAmount(raw.Amount)
	if err != nil {
		return core.Expense{}, err
	}

	cats, err := s.store.ListCategories(ctx)
	if err != nil {
		return core.Expense{}, fmt.Errorf("load categories: %w", err)
	}
	cat, err := core.ResolveCategory(raw.Category, cats)
	if err != nil {
		return core.Expense{}, err
	}

	e := core.Expense{
		Date:        date,
		Category:    cat.Name,
		Amount:      amount,
		Description: raw.Description,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	return e, nil
}

// AddExpense validates raw input and persists the expense. On any validation
// failure no write happens at all.
func (s *ExpenseService) AddExpense(ctx context.Context, raw RawExpense) (core.Expense, error) {
	e, err := s.parseRaw(ctx, raw)
	if err != nil {
		return core.Expense{}, err
	}

	stored, err := s.store.CreateExpense(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", stored.ID,
		"date", stored.Date.String(),
		"category", stored.Category,
		"amount_cents", stored.Amount.Cents)

	return stored, nil
}

// UpdateExpense replaces the mutable fields of an existing expense with
// re-validated input. id and created_at are preserved by the store.
func (s *ExpenseService) UpdateExpense(ctx context.Context, id int64, raw RawExpense) error {
	e, err := s.parseRaw(ctx, raw)
	if err != nil {
		return err
	}

	if err := s.store.UpdateExpense(ctx, id, e); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Expense updated", "id", id)
	return nil
}

// ImportExpenses re-ingests previously exported rows. Every row is parsed
// and validated before the first write, so a bad row anywhere in the file
// means nothing is persisted. Returns the number of expenses imported.
func (s *ExpenseService) ImportExpenses(ctx context.Context, rows []RawExpense) (int, error) {
	parsed := make([]core.Expense, 0, len(rows))
	for i, raw := range rows {
		e, err := s.parseRaw(ctx, raw)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
		parsed = append(parsed, e)
	}

	for i, e := range parsed {
		if _, err := s.store.CreateExpense(ctx, e); err != nil {
			return i, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	slog.InfoContext(ctx, "Expenses imported", "count", len(parsed))
	return len(parsed), nil
}

// DeleteExpense removes an expense by id.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id int64) error {
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Expense deleted", "id", id)
	return nil
}

// GetExpense returns a single expense by id.
func (s *ExpenseService) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	return s.store.GetExpense(ctx, id)
}

// ListExpenses passes the filter through to the store. Ordering is most
// recent date first, ties by id descending.
func (s *ExpenseService) ListExpenses(ctx context.Context, f storage.ExpenseFilter) ([]core.Expense, error) {
	return s.store.ListExpenses(ctx, f)
}

// Categories returns all known categories in menu order.
func (s *ExpenseService) Categories(ctx context.Context) ([]core.Category, error) {
	return s.store.ListCategories(ctx)
}

// AddCategory creates a user-defined category. rawBudget may be empty for
// no budget limit.
func (s *ExpenseService) AddCategory(ctx context.Context, name, rawBudget string) (core.Category, error) {
	c := core.Category{Name: name}
	if rawBudget != "" {
		limit, err := core.ParseAmount(rawBudget)
		if err != nil {
			return core.Category{}, err
		}
		c.BudgetLimit = &limit
	}
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}

	created, err := s.store.CreateCategory(ctx, c)
	if err != nil {
		return core.Category{}, err
	}
	slog.InfoContext(ctx, "Category created", "name", created.Name)
	return created, nil
}

// SetCategoryBudget sets or clears (empty rawBudget) a category's limit.
func (s *ExpenseService) SetCategoryBudget(ctx context.Context, name, rawBudget string) error {
	var limit *core.Money
	if rawBudget != "" {
		m, err := core.ParseAmount(rawBudget)
		if err != nil {
			return err
		}
		limit = &m
	}
	return s.store.SetCategoryBudget(ctx, name, limit)
}

// DeleteCategory removes a category. The store refuses with
// storage.ErrCategoryInUse while expenses still reference it.
func (s *ExpenseService) DeleteCategory(ctx context.Context, name string) error {
	if err := s.store.DeleteCategory(ctx, name); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Category deleted", "name", name)
	return nil
}
