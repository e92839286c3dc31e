package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/satya/bridal/internal/expense"
	"github.com/satya/bridal/internal/middleware"
	"github.com/satya/bridal/internal/model"
)

// ExpenseServiceInterface は経費ハンドラーが必要とするサービスインターフェース。
type ExpenseServiceInterface interface {
	// List は所有者の経費一覧を取得する。
	List(ctx context.Context, ownerID int64) ([]*model.Expense, error)
	// Create は経費を登録する。所有者はサーバー側で確定する。
	Create(ctx context.Context, ownerID int64, in expense.Input) (*model.Expense, error)
	// Update は所有する経費を更新する。
	Update(ctx context.Context, ownerID, expenseID int64, in expense.Input) (*model.Expense, error)
	// Delete は所有する経費を削除する。
	Delete(ctx context.Context, ownerID, expenseID int64) error
}

// ExpenseHandler は経費管理のHTTPハンドラー。
type ExpenseHandler struct {
	service ExpenseServiceInterface
}

// NewExpenseHandler はExpenseHandlerを生成する。
func NewExpenseHandler(service ExpenseServiceInterface) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

// expenseRequest は経費登録・更新リクエストのボディ。
type expenseRequest struct {
	Date        string  `json:"date"`
	ExpenseName string  `json:"expenseName"`
	Description string  `json:"description"`
	ServiceType string  `json:"serviceType"`
	Amount      float64 `json:"amount"`
	Notes       string  `json:"notes"`
}

// expenseResponse は経費情報のAPIレスポンス。
type expenseResponse struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	ExpenseName string  `json:"expenseName"`
	Description string  `json:"description"`
	ServiceType string  `json:"serviceType"`
	Amount      float64 `json:"amount"`
	Notes       string  `json:"notes"`
	UserID      int64   `json:"userId"`
}

// ListExpenses は認証済みユーザーの経費一覧を返す。
// GET /api/expenses
func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	expenses, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]expenseResponse, 0, len(expenses))
	for _, ex := range expenses {
		responses = append(responses, toExpenseResponse(ex))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responses)
}

// CreateExpense は経費登録を処理する。
// POST /api/expenses
func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}

	created, err := h.service.Create(r.Context(), identity.UserID, toExpenseInput(req))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toExpenseResponse(created))
}

// UpdateExpense は所有する経費の更新を処理する。
// PUT /api/expenses/:id
func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	expenseID, err := parseIDParam(r)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("IDは数値で指定してください"))
		return
	}

	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}

	updated, err := h.service.Update(r.Context(), identity.UserID, expenseID, toExpenseInput(req))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toExpenseResponse(updated))
}

// DeleteExpense は所有する経費の削除を処理する。
// DELETE /api/expenses/:id
func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	expenseID, err := parseIDParam(r)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("IDは数値で指定してください"))
		return
	}

	if err := h.service.Delete(r.Context(), identity.UserID, expenseID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- ヘルパー関数 ---

// toExpenseInput はリクエストボディからサービス層の入力に変換する。
func toExpenseInput(req expenseRequest) expense.Input {
	return expense.Input{
		Date:        req.Date,
		ExpenseName: req.ExpenseName,
		Description: req.Description,
		ServiceType: req.ServiceType,
		Amount:      req.Amount,
		Notes:       req.Notes,
	}
}

// toExpenseResponse はmodel.ExpenseからAPIレスポンスに変換する。
func toExpenseResponse(ex *model.Expense) expenseResponse {
	return expenseResponse{
		ID:          ex.ID,
		Date:        ex.Date,
		ExpenseName: ex.ExpenseName,
		Description: ex.Description,
		ServiceType: ex.ServiceType,
		Amount:      ex.Amount,
		Notes:       ex.Notes,
		UserID:      ex.UserID,
	}
}
