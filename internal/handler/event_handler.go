package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/satya/bridal/internal/event"
	"github.com/satya/bridal/internal/middleware"
	"github.com/satya/bridal/internal/model"
)

// EventServiceInterface は挙式案件ハンドラーが必要とするサービスインターフェース。
type EventServiceInterface interface {
	// List は所有者の案件一覧を取得する。
	List(ctx context.Context, ownerID int64) ([]*model.BridalEvent, error)
	// Create は案件を登録する。所有者はサーバー側で確定する。
	Create(ctx context.Context, ownerID int64, in event.Input) (*model.BridalEvent, error)
	// Update は所有する案件を更新する。
	Update(ctx context.Context, ownerID, eventID int64, in event.Input) (*model.BridalEvent, error)
	// Delete は所有する案件を削除する。
	Delete(ctx context.Context, ownerID, eventID int64) error
}

// EventHandler は挙式案件管理のHTTPハンドラー。
type EventHandler struct {
	service EventServiceInterface
}

// NewEventHandler はEventHandlerを生成する。
func NewEventHandler(service EventServiceInterface) *EventHandler {
	return &EventHandler{service: service}
}

// eventRequest は案件登録・更新リクエストのボディ。
// 所有者はリクエストから受け取らず、認証済みユーザーで確定する。
type eventRequest struct {
	Date        string  `json:"date"`
	EventName   string  `json:"eventName"`
	ClientName  string  `json:"clientName"`
	ServiceType string  `json:"serviceType"`
	Amount      float64 `json:"amount"`
	Notes       string  `json:"notes"`
}

// eventResponse は案件情報のAPIレスポンス。
type eventResponse struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	EventName   string  `json:"eventName"`
	ClientName  string  `json:"clientName"`
	ServiceType string  `json:"serviceType"`
	Amount      float64 `json:"amount"`
	Notes       string  `json:"notes"`
	UserID      int64   `json:"userId"`
}

// apiErrorResponse は統一エラーフォーマットのレスポンス。
type apiErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// ListEvents は認証済みユーザーの案件一覧を返す。
// GET /api/events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	events, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]eventResponse, 0, len(events))
	for _, ev := range events {
		responses = append(responses, toEventResponse(ev))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responses)
}

// CreateEvent は案件登録を処理する。
// POST /api/events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}

	created, err := h.service.Create(r.Context(), identity.UserID, toEventInput(req))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toEventResponse(created))
}

// UpdateEvent は所有する案件の更新を処理する。
// PUT /api/events/:id
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	eventID, err := parseIDParam(r)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("IDは数値で指定してください"))
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}

	updated, err := h.service.Update(r.Context(), identity.UserID, eventID, toEventInput(req))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toEventResponse(updated))
}

// DeleteEvent は所有する案件の削除を処理する。
// DELETE /api/events/:id
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	eventID, err := parseIDParam(r)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("IDは数値で指定してください"))
		return
	}

	if err := h.service.Delete(r.Context(), identity.UserID, eventID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- ヘルパー関数 ---

// parseIDParam はURLパラメータ:idをint64に変換する。
func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// toEventInput はリクエストボディからサービス層の入力に変換する。
func toEventInput(req eventRequest) event.Input {
	return event.Input{
		Date:        req.Date,
		EventName:   req.EventName,
		ClientName:  req.ClientName,
		ServiceType: req.ServiceType,
		Amount:      req.Amount,
		Notes:       req.Notes,
	}
}

// toEventResponse はmodel.BridalEventからAPIレスポンスに変換する。
func toEventResponse(ev *model.BridalEvent) eventResponse {
	return eventResponse{
		ID:          ev.ID,
		Date:        ev.Date,
		EventName:   ev.EventName,
		ClientName:  ev.ClientName,
		ServiceType: ev.ServiceType,
		Amount:      ev.Amount,
		Notes:       ev.Notes,
		UserID:      ev.UserID,
	}
}

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(apiErrorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		statusCode := mapAPIErrorToHTTPStatus(apiErr)
		writeAPIErrorResponse(w, statusCode, apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	})
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeDuplicateEmail:
		return http.StatusConflict
	case model.ErrCodeAuthFailed, model.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeEventNotFound, model.ErrCodeExpenseNotFound:
		return http.StatusNotFound
	case model.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
