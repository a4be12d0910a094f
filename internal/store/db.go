package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bizdash/internal/common"
	"github.com/theirongolddev/bizdash/internal/forecast"
	"github.com/theirongolddev/bizdash/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

//go:embed migrations/*.sql
var migrations embed.FS

const currentBudgetKey = "current_budget"

// DB persists the collections in SQLite so they outlive a single command.
type DB struct {
	db *sql.DB
}

// Open opens or creates the database at dbPath and applies migrations.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if err := migrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	slog.Debug("store opened", "path", dbPath)
	return &DB{db: db}, nil
}

func migrateUp(db *sql.DB) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	defer func() { _ = src.Close() }()

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("preparing migrations: %w", err)
	}

	// m.Close would also close db, so only the source is released.
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("preparing migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *DB) Close() error {
	return s.db.Close()
}

// AddBudget stores b with its categories and selects it.
func (s *DB) AddBudget(b model.Budget) error {
	if err := checkBudget(b); err != nil {
		return fmt.Errorf("adding budget: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	if err := tx.QueryRow("SELECT COUNT(*) FROM budgets WHERE id = ?", b.ID).Scan(&exists); err != nil {
		return err
	}
	if exists > 0 {
		return fmt.Errorf("adding budget: duplicate id %q: %w", b.ID, common.ErrValidation)
	}

	_, err = tx.Exec(`INSERT INTO budgets
		(id, name, total_amount, period, status, start_date, end_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Name, b.TotalAmount.String(), string(b.Period), string(b.Status),
		formatDate(b.StartDate), formatDate(b.EndDate), b.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting budget: %w", err)
	}

	for i, c := range b.Categories {
		_, err = tx.Exec(`INSERT INTO budget_categories
			(budget_id, position, name, allocated, spent)
			VALUES (?, ?, ?, ?, ?)`,
			b.ID, i, c.Name, c.Allocated.String(), c.Spent.String(),
		)
		if err != nil {
			return fmt.Errorf("inserting category %q: %w", c.Name, err)
		}
	}

	if err := setSetting(tx, currentBudgetKey, b.ID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Debug("budget saved", "id", b.ID, "name", b.Name, "categories", len(b.Categories))
	return nil
}

// Budgets loads every budget in creation order.
func (s *DB) Budgets() ([]model.Budget, error) {
	rows, err := s.db.Query(`SELECT
		id, name, total_amount, period, status, start_date, end_date, created_at
		FROM budgets ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var budgets []model.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Batch-load categories
	catRows, err := s.db.Query(`SELECT budget_id, name, allocated, spent
		FROM budget_categories ORDER BY budget_id, position`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = catRows.Close() }()

	budgetIdx := make(map[string]int, len(budgets))
	for i, b := range budgets {
		budgetIdx[b.ID] = i
	}

	for catRows.Next() {
		var id string
		var c model.BudgetCategory
		if err := catRows.Scan(&id, &c.Name, &c.Allocated, &c.Spent); err != nil {
			return nil, err
		}
		if idx, ok := budgetIdx[id]; ok {
			budgets[idx].Categories = append(budgets[idx].Categories, c)
		}
	}
	return budgets, catRows.Err()
}

// SelectBudget records id as the current budget.
func (s *DB) SelectBudget(id string) error {
	var exists int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM budgets WHERE id = ?", id).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return budgetNotFound(id)
	}
	return setSetting(s.db, currentBudgetKey, id)
}

// CurrentBudget loads the selected budget.
func (s *DB) CurrentBudget() (model.Budget, error) {
	var id string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", currentBudgetKey).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Budget{}, common.ErrNoBudget
	}
	if err != nil {
		return model.Budget{}, err
	}

	b, err := scanBudget(s.db.QueryRow(`SELECT
		id, name, total_amount, period, status, start_date, end_date, created_at
		FROM budgets WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Budget{}, common.ErrNoBudget
	}
	if err != nil {
		return model.Budget{}, err
	}

	rows, err := s.db.Query(`SELECT name, allocated, spent
		FROM budget_categories WHERE budget_id = ? ORDER BY position`, id)
	if err != nil {
		return model.Budget{}, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var c model.BudgetCategory
		if err := rows.Scan(&c.Name, &c.Allocated, &c.Spent); err != nil {
			return model.Budget{}, err
		}
		b.Categories = append(b.Categories, c)
	}
	return b, rows.Err()
}

// History loads every sample ordered by month, then by insertion.
func (s *DB) History() ([]model.HistoricalSample, error) {
	rows, err := s.db.Query("SELECT month, revenue, expenses FROM historical_samples ORDER BY month, seq")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	history := []model.HistoricalSample{}
	for rows.Next() {
		var month string
		var revenue, expenses float64
		if err := rows.Scan(&month, &revenue, &expenses); err != nil {
			return nil, err
		}
		history = append(history, forecast.NewSample(month, revenue, expenses))
	}
	return history, rows.Err()
}

// AddSample validates and appends one month of figures.
func (s *DB) AddSample(in forecast.SampleInput) (model.HistoricalSample, error) {
	sample, err := forecast.ParseSample(in)
	if err != nil {
		return model.HistoricalSample{}, err
	}

	_, err = s.db.Exec("INSERT INTO historical_samples (month, revenue, expenses) VALUES (?, ?, ?)",
		sample.Month, sample.Revenue, sample.Expenses)
	if err != nil {
		return model.HistoricalSample{}, fmt.Errorf("inserting sample: %w", err)
	}

	slog.Debug("sample saved", "month", sample.Month, "profit", sample.Profit)
	return sample, nil
}

// AddSamples validates every input, then appends them all in one
// transaction. Nothing is stored when any input is invalid.
func (s *DB) AddSamples(ins []forecast.SampleInput) ([]model.HistoricalSample, error) {
	samples, err := parseSamples(ins)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	for _, sample := range samples {
		_, err := tx.Exec("INSERT INTO historical_samples (month, revenue, expenses) VALUES (?, ?, ?)",
			sample.Month, sample.Revenue, sample.Expenses)
		if err != nil {
			return nil, fmt.Errorf("inserting sample %s: %w", sample.Month, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing samples: %w", err)
	}

	slog.Debug("samples saved", "count", len(samples))
	return samples, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func scanBudget(row rowScanner) (model.Budget, error) {
	var b model.Budget
	var total, period, status, start, end, created string
	if err := row.Scan(&b.ID, &b.Name, &total, &period, &status, &start, &end, &created); err != nil {
		return model.Budget{}, err
	}

	var err error
	if b.TotalAmount, err = decimal.NewFromString(total); err != nil {
		return model.Budget{}, fmt.Errorf("budget %s: total amount: %w", b.ID, err)
	}
	if b.Period, err = model.ParsePeriod(period); err != nil {
		return model.Budget{}, fmt.Errorf("budget %s: %w", b.ID, err)
	}
	if b.Status, err = model.ParseStatus(status); err != nil {
		return model.Budget{}, fmt.Errorf("budget %s: %w", b.ID, err)
	}
	if start != "" {
		if b.StartDate, err = model.ParseDate(start); err != nil {
			return model.Budget{}, fmt.Errorf("budget %s: start date: %w", b.ID, err)
		}
	}
	if end != "" {
		if b.EndDate, err = model.ParseDate(end); err != nil {
			return model.Budget{}, fmt.Errorf("budget %s: end date: %w", b.ID, err)
		}
	}
	if b.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return model.Budget{}, fmt.Errorf("budget %s: created_at: %w", b.ID, err)
	}
	return b, nil
}

func setSetting(e execer, key, value string) error {
	_, err := e.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

func formatDate(d model.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}
