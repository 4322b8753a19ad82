package db

import (
	"context"
	"fmt"
	"time"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/logger"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/models"
)

// ReplaceDataset clears both tables and loads the given rows in one transaction.
func (db *DB) ReplaceDataset(sales []models.SalesRecord, ops []models.TeamMemberStats) error {
	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{
		"DELETE FROM sales_records",
		"DELETE FROM team_operations",
		"DELETE FROM sqlite_sequence WHERE name IN ('sales_records', 'team_operations')",
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear tables: %w", err)
		}
	}

	salesStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sales_records (date, leads, sales, conversion_rate, revenue)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare sales insert: %w", err)
	}
	defer func() { _ = salesStmt.Close() }()

	for _, r := range sales {
		if _, err := salesStmt.ExecContext(ctx,
			r.Date.Format(models.DateLayout),
			r.Leads,
			r.Sales,
			r.ConversionRate,
			r.Revenue,
		); err != nil {
			return fmt.Errorf("failed to insert sales record: %w", err)
		}
	}

	opsStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO team_operations (
			name, tasks_completed, avg_days_per_task, projects_completed,
			late_projects, task_efficiency
		) VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare operations insert: %w", err)
	}
	defer func() { _ = opsStmt.Close() }()

	for _, o := range ops {
		if _, err := opsStmt.ExecContext(ctx,
			o.Name,
			o.TasksCompleted,
			o.AvgDaysPerTask,
			o.ProjectsCompleted,
			o.LateProjects,
			o.TaskEfficiency,
		); err != nil {
			return fmt.Errorf("failed to insert operations row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dataset: %w", err)
	}

	logger.Debug("dataset loaded", "sales", len(sales), "operations", len(ops))
	return nil
}

// GetSalesRecords returns sales rows in insertion order. A zero range returns
// every row; otherwise both ends of the range are inclusive.
func (db *DB) GetSalesRecords(r models.DateRange) ([]models.SalesRecord, error) {
	query := `
		SELECT date, leads, sales, conversion_rate, revenue
		FROM sales_records
	`
	var args []any
	if !r.IsZero() {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		query += " WHERE date BETWEEN ? AND ?"
		args = append(args, r.Start.Format(models.DateLayout), r.End.Format(models.DateLayout))
	}
	query += " ORDER BY id"

	rows, err := db.QueryContext(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := []models.SalesRecord{}
	for rows.Next() {
		var rec models.SalesRecord
		var dateStr string

		if err := rows.Scan(
			&dateStr,
			&rec.Leads,
			&rec.Sales,
			&rec.ConversionRate,
			&rec.Revenue,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sales record: %w", err)
		}

		if rec.Date, err = parseDate(dateStr); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// GetDailySales groups the sales rows by date, oldest first.
func (db *DB) GetDailySales() ([]models.DailySales, error) {
	query := `
		SELECT
			date,
			COUNT(*) as records,
			COALESCE(SUM(leads), 0) as total_leads,
			COALESCE(SUM(sales), 0) as total_sales,
			COALESCE(SUM(revenue), 0) as total_revenue
		FROM sales_records
		GROUP BY date
		ORDER BY date ASC
	`

	rows, err := db.QueryContext(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily sales: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("failed to close rows", "error", err)
		}
	}()

	var days []models.DailySales
	for rows.Next() {
		var d models.DailySales
		var dateStr string

		if err := rows.Scan(
			&dateStr,
			&d.Records,
			&d.Leads,
			&d.Sales,
			&d.Revenue,
		); err != nil {
			return nil, fmt.Errorf("failed to scan daily sales: %w", err)
		}

		if d.Date, err = parseDate(dateStr); err != nil {
			return nil, err
		}
		days = append(days, d)
	}

	return days, rows.Err()
}

// GetRevenueValues returns the revenue column in insertion order.
func (db *DB) GetRevenueValues() ([]float64, error) {
	rows, err := db.QueryContext(context.Background(),
		"SELECT revenue FROM sales_records ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query revenue: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var values []float64
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan revenue: %w", err)
		}
		values = append(values, float64(v))
	}

	return values, rows.Err()
}

// GetOperations returns the team rows in insertion order.
func (db *DB) GetOperations() ([]models.TeamMemberStats, error) {
	query := `
		SELECT name, tasks_completed, avg_days_per_task, projects_completed,
			   late_projects, task_efficiency
		FROM team_operations
		ORDER BY id
	`

	rows, err := db.QueryContext(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("failed to query team operations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ops := []models.TeamMemberStats{}
	for rows.Next() {
		var o models.TeamMemberStats
		if err := rows.Scan(
			&o.Name,
			&o.TasksCompleted,
			&o.AvgDaysPerTask,
			&o.ProjectsCompleted,
			&o.LateProjects,
			&o.TaskEfficiency,
		); err != nil {
			return nil, fmt.Errorf("failed to scan operations row: %w", err)
		}
		ops = append(ops, o)
	}

	return ops, rows.Err()
}

// CountSales returns the number of stored sales rows.
func (db *DB) CountSales() (int, error) {
	var n int
	err := db.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM sales_records").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count sales records: %w", err)
	}
	return n, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored date %q: %w", s, err)
	}
	return t, nil
}
