package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/satya/bridal/internal/model"
)

// PostgresExpenseRepo はPostgreSQLを使用した経費リポジトリ。
type PostgresExpenseRepo struct {
	db *sql.DB
}

// NewPostgresExpenseRepo はPostgresExpenseRepoを生成する。
func NewPostgresExpenseRepo(db *sql.DB) *PostgresExpenseRepo {
	return &PostgresExpenseRepo{db: db}
}

// ListByUserID は指定ユーザーが所有する経費一覧をID昇順で返す。
func (r *PostgresExpenseRepo) ListByUserID(ctx context.Context, userID int64) ([]*model.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, expense_name, description, service_type, amount, notes, user_id
		 FROM expenses WHERE user_id = $1 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []*model.Expense{}
	for rows.Next() {
		ex := &model.Expense{}
		if err := rows.Scan(&ex.ID, &ex.Date, &ex.ExpenseName, &ex.Description,
			&ex.ServiceType, &ex.Amount, &ex.Notes, &ex.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

// FindByID は指定IDの経費を取得する。見つからない場合はnilを返す。
func (r *PostgresExpenseRepo) FindByID(ctx context.Context, id int64) (*model.Expense, error) {
	ex := &model.Expense{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, date, expense_name, description, service_type, amount, notes, user_id
		 FROM expenses WHERE id = $1`,
		id,
	).Scan(&ex.ID, &ex.Date, &ex.ExpenseName, &ex.Description,
		&ex.ServiceType, &ex.Amount, &ex.Notes, &ex.UserID)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find expense by ID: %w", err)
	}

	return ex, nil
}

// Create は経費を作成し、採番されたIDをexpenseに書き戻す。
func (r *PostgresExpenseRepo) Create(ctx context.Context, expense *model.Expense) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO expenses (date, expense_name, description, service_type, amount, notes, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		expense.Date, expense.ExpenseName, expense.Description, expense.ServiceType,
		expense.Amount, expense.Notes, expense.UserID,
	).Scan(&expense.ID)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	return nil
}

// Update は経費を全フィールド上書きで更新する。
func (r *PostgresExpenseRepo) Update(ctx context.Context, expense *model.Expense) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE expenses
		 SET date = $1, expense_name = $2, description = $3, service_type = $4,
		     amount = $5, notes = $6, user_id = $7
		 WHERE id = $8`,
		expense.Date, expense.ExpenseName, expense.Description, expense.ServiceType,
		expense.Amount, expense.Notes, expense.UserID, expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("expense not found: %d", expense.ID)
	}

	return nil
}

// DeleteByID は指定IDの経費を削除する。
func (r *PostgresExpenseRepo) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("expense not found: %d", id)
	}

	return nil
}

// MonthlyTotalsByUserID は指定ユーザーの経費を月（YYYY-MM）ごとに集計する。
func (r *PostgresExpenseRepo) MonthlyTotalsByUserID(ctx context.Context, userID int64) (map[string]float64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT substr(date, 1, 7) AS month, COALESCE(SUM(amount), 0)
		 FROM expenses WHERE user_id = $1 AND date <> ''
		 GROUP BY month`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate expense totals: %w", err)
	}
	defer rows.Close()

	totals := map[string]float64{}
	for rows.Next() {
		var month string
		var total float64
		if err := rows.Scan(&month, &total); err != nil {
			return nil, fmt.Errorf("failed to scan expense totals: %w", err)
		}
		totals[month] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense totals: %w", err)
	}

	return totals, nil
}

// compile-time interface check
var _ ExpenseRepository = (*PostgresExpenseRepo)(nil)
