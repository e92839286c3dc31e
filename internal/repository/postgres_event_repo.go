package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/satya/bridal/internal/model"
)

// PostgresEventRepo はPostgreSQLを使用したブライダル案件リポジトリ。
type PostgresEventRepo struct {
	db *sql.DB
}

// NewPostgresEventRepo はPostgresEventRepoを生成する。
func NewPostgresEventRepo(db *sql.DB) *PostgresEventRepo {
	return &PostgresEventRepo{db: db}
}

// ListByUserID は指定ユーザーが所有するイベント一覧をID昇順で返す。
func (r *PostgresEventRepo) ListByUserID(ctx context.Context, userID int64) ([]*model.BridalEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, event_name, client_name, service_type, amount, notes, user_id
		 FROM bridal_events WHERE user_id = $1 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := []*model.BridalEvent{}
	for rows.Next() {
		ev := &model.BridalEvent{}
		if err := rows.Scan(&ev.ID, &ev.Date, &ev.EventName, &ev.ClientName,
			&ev.ServiceType, &ev.Amount, &ev.Notes, &ev.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

// FindByID は指定IDのイベントを取得する。見つからない場合はnilを返す。
func (r *PostgresEventRepo) FindByID(ctx context.Context, id int64) (*model.BridalEvent, error) {
	ev := &model.BridalEvent{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, date, event_name, client_name, service_type, amount, notes, user_id
		 FROM bridal_events WHERE id = $1`,
		id,
	).Scan(&ev.ID, &ev.Date, &ev.EventName, &ev.ClientName,
		&ev.ServiceType, &ev.Amount, &ev.Notes, &ev.UserID)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find event by ID: %w", err)
	}

	return ev, nil
}

// Create はイベントを作成し、採番されたIDをeventに書き戻す。
func (r *PostgresEventRepo) Create(ctx context.Context, event *model.BridalEvent) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO bridal_events (date, event_name, client_name, service_type, amount, notes, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		event.Date, event.EventName, event.ClientName, event.ServiceType,
		event.Amount, event.Notes, event.UserID,
	).Scan(&event.ID)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	return nil
}

// Update はイベントを全フィールド上書きで更新する。
func (r *PostgresEventRepo) Update(ctx context.Context, event *model.BridalEvent) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bridal_events
		 SET date = $1, event_name = $2, client_name = $3, service_type = $4,
		     amount = $5, notes = $6, user_id = $7
		 WHERE id = $8`,
		event.Date, event.EventName, event.ClientName, event.ServiceType,
		event.Amount, event.Notes, event.UserID, event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("event not found: %d", event.ID)
	}

	return nil
}

// DeleteByID は指定IDのイベントを削除する。
func (r *PostgresEventRepo) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM bridal_events WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("event not found: %d", id)
	}

	return nil
}

// MonthlyTotalsByUserID は指定ユーザーのイベント売上を月（YYYY-MM）ごとに集計する。
// dateは "YYYY-MM-DD" 形式の文字列のため、先頭7文字で月を切り出す。
func (r *PostgresEventRepo) MonthlyTotalsByUserID(ctx context.Context, userID int64) (map[string]float64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT substr(date, 1, 7) AS month, COALESCE(SUM(amount), 0)
		 FROM bridal_events WHERE user_id = $1 AND date <> ''
		 GROUP BY month`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate event totals: %w", err)
	}
	defer rows.Close()

	totals := map[string]float64{}
	for rows.Next() {
		var month string
		var total float64
		if err := rows.Scan(&month, &total); err != nil {
			return nil, fmt.Errorf("failed to scan event totals: %w", err)
		}
		totals[month] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate event totals: %w", err)
	}

	return totals, nil
}

// compile-time interface check
var _ EventRepository = (*PostgresEventRepo)(nil)
