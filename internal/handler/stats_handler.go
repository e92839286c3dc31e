package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/satya/bridal/internal/middleware"
	"github.com/satya/bridal/internal/model"
)

// StatsServiceInterface は集計ハンドラーが必要とするサービスインターフェース。
type StatsServiceInterface interface {
	// MonthlyProfit は所有者の月別損益を算出する。
	MonthlyProfit(ctx context.Context, ownerID int64) ([]model.MonthlyProfit, error)
}

// StatsHandler は月別損益集計のHTTPハンドラー。
type StatsHandler struct {
	service StatsServiceInterface
}

// NewStatsHandler はStatsHandlerを生成する。
func NewStatsHandler(service StatsServiceInterface) *StatsHandler {
	return &StatsHandler{service: service}
}

// monthlyProfitResponse は月別損益のAPIレスポンス。
type monthlyProfitResponse struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
}

// MonthlyProfit は認証済みユーザーの月別損益を返す。
// GET /api/stats/monthly-profit
func (h *StatsHandler) MonthlyProfit(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	profits, err := h.service.MonthlyProfit(r.Context(), identity.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]monthlyProfitResponse, 0, len(profits))
	for _, p := range profits {
		responses = append(responses, monthlyProfitResponse{
			Month:    p.Month,
			Income:   p.Income,
			Expenses: p.Expenses,
			Profit:   p.Profit,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responses)
}
