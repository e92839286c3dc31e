// Package expense は経費管理のドメインロジックを提供する。
// 所有モデルはeventパッケージと同一で、すべての操作が
// 認証済みユーザーのIDを明示的に受け取る。
package expense

import (
	"context"
	"fmt"

	"github.com/satya/bridal/internal/model"
	"github.com/satya/bridal/internal/repository"
	"github.com/satya/bridal/internal/security"
)

// Input は経費の作成・更新入力を表す。
// 所有者は常に認証済みユーザーであり、リクエストボディ由来の値は使用しない。
type Input struct {
	Date        string
	ExpenseName string
	Description string
	ServiceType string
	Amount      float64
	Notes       string
}

// Service は経費管理のサービス層。
type Service struct {
	expenses  repository.ExpenseRepository
	sanitizer security.FieldSanitizerService
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(expenses repository.ExpenseRepository, sanitizer security.FieldSanitizerService) *Service {
	return &Service{
		expenses:  expenses,
		sanitizer: sanitizer,
	}
}

// List は認証済みユーザーが所有する経費一覧を返す。
func (s *Service) List(ctx context.Context, ownerID int64) ([]*model.Expense, error) {
	expenses, err := s.expenses.ListByUserID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("経費一覧の取得に失敗しました: %w", err)
	}
	return expenses, nil
}

// Create は経費を作成する。所有者は認証済みユーザーで固定される。
func (s *Service) Create(ctx context.Context, ownerID int64, in Input) (*model.Expense, error) {
	ex := s.apply(&model.Expense{}, ownerID, in)
	if err := s.expenses.Create(ctx, ex); err != nil {
		return nil, fmt.Errorf("経費の作成に失敗しました: %w", err)
	}
	return ex, nil
}

// Update は所有経費を更新する。
// 存在しない場合はEXPENSE_NOT_FOUND、所有者が異なる場合はFORBIDDENを返す。
func (s *Service) Update(ctx context.Context, ownerID, expenseID int64, in Input) (*model.Expense, error) {
	existing, err := s.expenses.FindByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("経費の取得に失敗しました: %w", err)
	}
	if existing == nil {
		return nil, model.NewExpenseNotFoundError(expenseID)
	}
	if existing.UserID != ownerID {
		return nil, model.NewForbiddenError()
	}

	ex := s.apply(&model.Expense{ID: expenseID}, ownerID, in)
	if err := s.expenses.Update(ctx, ex); err != nil {
		return nil, fmt.Errorf("経費の更新に失敗しました: %w", err)
	}
	return ex, nil
}

// Delete は所有経費を削除する。
// 存在しない場合はEXPENSE_NOT_FOUND、所有者が異なる場合はFORBIDDENを返す。
func (s *Service) Delete(ctx context.Context, ownerID, expenseID int64) error {
	existing, err := s.expenses.FindByID(ctx, expenseID)
	if err != nil {
		return fmt.Errorf("経費の取得に失敗しました: %w", err)
	}
	if existing == nil {
		return model.NewExpenseNotFoundError(expenseID)
	}
	if existing.UserID != ownerID {
		return model.NewForbiddenError()
	}

	if err := s.expenses.DeleteByID(ctx, expenseID); err != nil {
		return fmt.Errorf("経費の削除に失敗しました: %w", err)
	}
	return nil
}

// apply は入力の自由記述フィールドをサニタイズしてexに反映し、
// 所有者を認証済みユーザーに設定する。
func (s *Service) apply(ex *model.Expense, ownerID int64, in Input) *model.Expense {
	ex.Date = s.sanitizer.Sanitize(in.Date)
	ex.ExpenseName = s.sanitizer.Sanitize(in.ExpenseName)
	ex.Description = s.sanitizer.Sanitize(in.Description)
	ex.ServiceType = s.sanitizer.Sanitize(in.ServiceType)
	ex.Amount = in.Amount
	ex.Notes = s.sanitizer.Sanitize(in.Notes)
	ex.UserID = ownerID
	return ex
}
