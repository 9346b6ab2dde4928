// Package storage is the persistence gateway: the only component that reads
// or writes the embedded SQLite store. The schema is owned by the embedded
// migrations in migrations/.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"

	"spendtrack/internal/core"

	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound reports a missing expense or category id/name.
	ErrNotFound = errors.New("not found")
	// ErrCategoryInUse guards category deletion while expenses reference it.
	ErrCategoryInUse = errors.New("category referenced by expenses")
	// ErrDuplicateCategory reports a category name collision.
	ErrDuplicateCategory = errors.New("category already exists")
)

// ExpenseFilter narrows ListExpenses. Zero values mean "no constraint";
// Year+Month together select a calendar month.
type ExpenseFilter struct {
	From     *core.Date
	To       *core.Date
	Category string
	Year     int
	Month    int
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dbPath != ":memory:" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// One writer, one reader, same process. A single pooled connection also
	// keeps :memory: databases coherent across calls.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateExpense persists a validated expense and returns the stored record
// with its assigned id and creation timestamp.
func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	createdAt := time.Now().UTC().Truncate(time.Second)

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (date, category, amount_cents, description, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.Date.String(), e.Category, e.Amount.Cents, e.Description, createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: read id: %w", err)
	}

	e.ID = id
	e.CreatedAt = createdAt
	return e, nil
}

// GetExpense returns a single expense or ErrNotFound.
func (r *SQLiteRepository) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, date, category, amount_cents, description, created_at FROM expenses WHERE id = ?`, id)

	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, fmt.Errorf("get expense %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense %d: %w", id, err)
	}
	return e, nil
}

// UpdateExpense replaces the mutable fields of an existing expense. The id
// and created_at columns are never touched. Returns ErrNotFound when the id
// does not exist; nothing is written in that case.
func (r *SQLiteRepository) UpdateExpense(ctx context.Context, id int64, e core.Expense) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET date = ?, category = ?, amount_cents = ?, description = ? WHERE id = ?`,
		e.Date.String(), e.Category, e.Amount.Cents, e.Description, id,
	)
	if err != nil {
		return fmt.Errorf("update expense %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update expense %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("update expense %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteExpense removes an expense by id, ErrNotFound when absent.
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete expense %d: %w", id, ErrNotFound)
	}
	return nil
}

// ListExpenses returns expenses matching the filter, most recent date first,
// ties broken by id descending.
func (r *SQLiteRepository) ListExpenses(ctx context.Context, f ExpenseFilter) ([]core.Expense, error) {
	q := sq.Select("id", "date", "category", "amount_cents", "description", "created_at").
		From("expenses").
		OrderBy("date DESC", "id DESC")

	if f.Year != 0 && f.Month != 0 {
		first, last := core.MonthRange(f.Year, f.Month)
		q = q.Where(sq.GtOrEq{"date": first.String()}).Where(sq.LtOrEq{"date": last.String()})
	}
	if f.From != nil {
		q = q.Where(sq.GtOrEq{"date": f.From.String()})
	}
	if f.To != nil {
		q = q.Where(sq.LtOrEq{"date": f.To.String()})
	}
	if f.Category != "" {
		q = q.Where(sq.Eq{"category": f.Category})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("list expenses: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// CountExpenses returns the total number of expense rows.
func (r *SQLiteRepository) CountExpenses(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count expenses: %w", err)
	}
	return n, nil
}

// ListCategories returns all categories ordered by id, i.e. seeding order
// first so menu indexes stay stable.
func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, budget_limit_cents FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []core.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// GetCategoryByName returns a category or ErrNotFound.
func (r *SQLiteRepository) GetCategoryByName(ctx context.Context, name string) (core.Category, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, budget_limit_cents FROM categories WHERE name = ?`, name)

	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, fmt.Errorf("get category %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("get category %q: %w", name, err)
	}
	return c, nil
}

// CreateCategory adds a user-defined category. Names are unique;
// a collision fails with ErrDuplicateCategory.
func (r *SQLiteRepository) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	if _, err := r.GetCategoryByName(ctx, c.Name); err == nil {
		return core.Category{}, fmt.Errorf("create category %q: %w", c.Name, ErrDuplicateCategory)
	} else if !errors.Is(err, ErrNotFound) {
		return core.Category{}, err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (name, budget_limit_cents, created_at) VALUES (?, ?, ?)`,
		c.Name, budgetCents(c.BudgetLimit), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return core.Category{}, fmt.Errorf("create category %q: %w", c.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Category{}, fmt.Errorf("create category %q: read id: %w", c.Name, err)
	}
	c.ID = id
	return c, nil
}

// SetCategoryBudget updates (or clears, with nil) a category's budget limit.
func (r *SQLiteRepository) SetCategoryBudget(ctx context.Context, name string, limit *core.Money) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE categories SET budget_limit_cents = ? WHERE name = ?`,
		budgetCents(limit), name,
	)
	if err != nil {
		return fmt.Errorf("set budget for %q: %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set budget for %q: %w", name, err)
	}
	if affected == 0 {
		return fmt.Errorf("set budget for %q: %w", name, ErrNotFound)
	}
	return nil
}

// DeleteCategory removes a category by name. Deletion is guarded: while any
// expense still references the category the call fails with ErrCategoryInUse.
// The usage check and the delete run in one transaction.
func (r *SQLiteRepository) DeleteCategory(ctx context.Context, name string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete category %q: begin: %w", name, err)
	}
	defer tx.Rollback()

	var used int64
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM expenses WHERE category = ?`, name).Scan(&used); err != nil {
		return fmt.Errorf("delete category %q: count usage: %w", name, err)
	}
	if used > 0 {
		return fmt.Errorf("delete category %q (%d expenses): %w", name, used, ErrCategoryInUse)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete category %q: %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category %q: %w", name, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete category %q: %w", name, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete category %q: commit: %w", name, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var (
		e         core.Expense
		dateStr   string
		createdAt string
	)
	if err := row.Scan(&e.ID, &dateStr, &e.Category, &e.Amount.Cents, &e.Description, &createdAt); err != nil {
		return core.Expense{}, err
	}

	d, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return core.Expense{}, fmt.Errorf("corrupt date %q: %w", dateStr, err)
	}
	e.Date = core.DateOf(d)

	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return core.Expense{}, fmt.Errorf("corrupt created_at %q: %w", createdAt, err)
	}
	e.CreatedAt = t

	return e, nil
}

func scanCategory(row rowScanner) (core.Category, error) {
	var (
		c     core.Category
		limit sql.NullInt64
	)
	if err := row.Scan(&c.ID, &c.Name, &limit); err != nil {
		return core.Category{}, err
	}
	if limit.Valid {
		c.BudgetLimit = &core.Money{Cents: limit.Int64}
	}
	return c, nil
}

func budgetCents(limit *core.Money) any {
	if limit == nil {
		return nil
	}
	return limit.Cents
}
