// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"errors"

	"github.com/satya/bridal/internal/model"
)

// ErrDuplicateEmail はemail一意制約違反を表す。
// 事前チェックとINSERTの間の競合でも発生しうるため、リポジトリ層で検出する。
var ErrDuplicateEmail = errors.New("repository: duplicate email")

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByEmail は指定emailのユーザーを取得する。見つからない場合はnilを返す。
	// emailは呼び出し側で正規化（小文字化）済みであること。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// Create はユーザーを作成し、採番されたIDと作成日時をuserに書き戻す。
	// email重複の場合はErrDuplicateEmailを返す。
	Create(ctx context.Context, user *model.User) error
}

// EventRepository はブライダル案件データの永続化インターフェース。
type EventRepository interface {
	// ListByUserID は指定ユーザーが所有するイベント一覧をID昇順で返す。
	ListByUserID(ctx context.Context, userID int64) ([]*model.BridalEvent, error)

	// FindByID は指定IDのイベントを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.BridalEvent, error)

	// Create はイベントを作成し、採番されたIDをeventに書き戻す。
	Create(ctx context.Context, event *model.BridalEvent) error

	// Update はイベントを全フィールド上書きで更新する。
	Update(ctx context.Context, event *model.BridalEvent) error

	// DeleteByID は指定IDのイベントを削除する。
	DeleteByID(ctx context.Context, id int64) error

	// MonthlyTotalsByUserID は指定ユーザーのイベント売上を月（YYYY-MM）ごとに集計する。
	MonthlyTotalsByUserID(ctx context.Context, userID int64) (map[string]float64, error)
}

// ExpenseRepository は経費データの永続化インターフェース。
type ExpenseRepository interface {
	// ListByUserID は指定ユーザーが所有する経費一覧をID昇順で返す。
	ListByUserID(ctx context.Context, userID int64) ([]*model.Expense, error)

	// FindByID は指定IDの経費を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Expense, error)

	// Create は経費を作成し、採番されたIDをexpenseに書き戻す。
	Create(ctx context.Context, expense *model.Expense) error

	// Update は経費を全フィールド上書きで更新する。
	Update(ctx context.Context, expense *model.Expense) error

	// DeleteByID は指定IDの経費を削除する。
	DeleteByID(ctx context.Context, id int64) error

	// MonthlyTotalsByUserID は指定ユーザーの経費を月（YYYY-MM）ごとに集計する。
	MonthlyTotalsByUserID(ctx context.Context, userID int64) (map[string]float64, error)
}
