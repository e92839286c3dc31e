package stats

import (
	"context"
	"testing"

	"github.com/satya/bridal/internal/model"
)

// --- モック ---

type mockEventTotals struct {
	totals map[string]float64
}

func (m *mockEventTotals) ListByUserID(ctx context.Context, userID int64) ([]*model.BridalEvent, error) {
	return nil, nil
}
func (m *mockEventTotals) FindByID(ctx context.Context, id int64) (*model.BridalEvent, error) {
	return nil, nil
}
func (m *mockEventTotals) Create(ctx context.Context, ev *model.BridalEvent) error  { return nil }
func (m *mockEventTotals) Update(ctx context.Context, ev *model.BridalEvent) error  { return nil }
func (m *mockEventTotals) DeleteByID(ctx context.Context, id int64) error           { return nil }
func (m *mockEventTotals) MonthlyTotalsByUserID(ctx context.Context, userID int64) (map[string]float64, error) {
	return m.totals, nil
}

type mockExpenseTotals struct {
	totals map[string]float64
}

func (m *mockExpenseTotals) ListByUserID(ctx context.Context, userID int64) ([]*model.Expense, error) {
	return nil, nil
}
func (m *mockExpenseTotals) FindByID(ctx context.Context, id int64) (*model.Expense, error) {
	return nil, nil
}
func (m *mockExpenseTotals) Create(ctx context.Context, ex *model.Expense) error { return nil }
func (m *mockExpenseTotals) Update(ctx context.Context, ex *model.Expense) error { return nil }
func (m *mockExpenseTotals) DeleteByID(ctx context.Context, id int64) error      { return nil }
func (m *mockExpenseTotals) MonthlyTotalsByUserID(ctx context.Context, userID int64) (map[string]float64, error) {
	return m.totals, nil
}

// --- テスト ---

// TestService_MonthlyProfit_MergesMonths は収入のみ・支出のみの月も
// 含めて月昇順でマージされることを検証する。
func TestService_MonthlyProfit_MergesMonths(t *testing.T) {
	svc := NewService(
		&mockEventTotals{totals: map[string]float64{
			"2026-06": 130000,
			"2026-08": 40000,
		}},
		&mockExpenseTotals{totals: map[string]float64{
			"2026-06": 30000,
			"2026-07": 15000,
		}},
	)

	results, err := svc.MonthlyProfit(context.Background(), 1)
	if err != nil {
		t.Fatalf("MonthlyProfit returned error: %v", err)
	}

	want := []model.MonthlyProfit{
		{Month: "2026-06", Income: 130000, Expenses: 30000, Profit: 100000},
		{Month: "2026-07", Income: 0, Expenses: 15000, Profit: -15000},
		{Month: "2026-08", Income: 40000, Expenses: 0, Profit: 40000},
	}

	if len(results) != len(want) {
		t.Fatalf("results = %d months, want %d", len(results), len(want))
	}
	for i, w := range want {
		if results[i] != w {
			t.Errorf("results[%d] = %+v, want %+v", i, results[i], w)
		}
	}
}

// TestService_MonthlyProfit_Empty はレコードが無い場合に
// 空スライスが返ることを検証する。
func TestService_MonthlyProfit_Empty(t *testing.T) {
	svc := NewService(
		&mockEventTotals{totals: map[string]float64{}},
		&mockExpenseTotals{totals: map[string]float64{}},
	)

	results, err := svc.MonthlyProfit(context.Background(), 1)
	if err != nil {
		t.Fatalf("MonthlyProfit returned error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %d, want 0", len(results))
	}
}
