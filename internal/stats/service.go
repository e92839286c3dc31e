// Package stats は収支集計のドメインロジックを提供する。
package stats

import (
	"context"
	"fmt"
	"sort"

	"github.com/satya/bridal/internal/model"
	"github.com/satya/bridal/internal/repository"
)

// Service は月次収支集計のサービス層。
// イベント売上を収入、経費を支出として月ごとに突き合わせる。
type Service struct {
	events   repository.EventRepository
	expenses repository.ExpenseRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(events repository.EventRepository, expenses repository.ExpenseRepository) *Service {
	return &Service{
		events:   events,
		expenses: expenses,
	}
}

// MonthlyProfit は認証済みユーザーの月次収支を月昇順で返す。
// イベントまたは経費のいずれかが存在する月のみ含まれる。
func (s *Service) MonthlyProfit(ctx context.Context, ownerID int64) ([]model.MonthlyProfit, error) {
	income, err := s.events.MonthlyTotalsByUserID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("イベント売上の集計に失敗しました: %w", err)
	}

	spend, err := s.expenses.MonthlyTotalsByUserID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("経費の集計に失敗しました: %w", err)
	}

	months := make([]string, 0, len(income)+len(spend))
	seen := map[string]bool{}
	for m := range income {
		if !seen[m] {
			seen[m] = true
			months = append(months, m)
		}
	}
	for m := range spend {
		if !seen[m] {
			seen[m] = true
			months = append(months, m)
		}
	}
	sort.Strings(months)

	results := make([]model.MonthlyProfit, len(months))
	for i, m := range months {
		results[i] = model.MonthlyProfit{
			Month:    m,
			Income:   income[m],
			Expenses: spend[m],
			Profit:   income[m] - spend[m],
		}
	}

	return results, nil
}
