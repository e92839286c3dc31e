package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/satya/bridal/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	// Signup は新規ユーザーを登録する。
	Signup(ctx context.Context, email, password string) (*model.User, error)
	// Login は資格情報を検証し、署名付きベアラートークンを発行する。
	Login(ctx context.Context, email, password string) (string, error)
}

// AuthMetricsRecorder は認証ハンドラーが記録するメトリクスのインターフェース。
// metrics.Collectorの部分集合として定義する。
type AuthMetricsRecorder interface {
	RecordSignupSuccess()
	RecordSignupFailure(reason string)
	RecordLoginSuccess()
	RecordLoginFailure()
}

// AuthHandler はユーザー登録とログインのHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
	metrics AuthMetricsRecorder
}

// NewAuthHandler はAuthHandlerを生成する。metricsはnilを許容する。
func NewAuthHandler(service AuthServiceInterface, metrics AuthMetricsRecorder) *AuthHandler {
	return &AuthHandler{
		service: service,
		metrics: metrics,
	}
}

// credentialsRequest は登録・ログイン共通のリクエストボディ。
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// signupResponse はユーザー登録成功時のレスポンス。
// パスワードハッシュやIDは含めない。
type signupResponse struct {
	Message string `json:"message"`
}

// loginResponse はログイン成功時のレスポンス。
type loginResponse struct {
	Token string `json:"token"`
}

// Signup はユーザー登録を処理する。
// POST /api/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}

	if _, err := h.service.Signup(r.Context(), req.Email, req.Password); err != nil {
		h.recordSignupFailure(err)
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordSignupSuccess()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(signupResponse{
		Message: "ユーザー登録が完了しました。",
	})
}

// Login はログインを処理し、成功時にベアラートークンを返す。
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordLoginFailure()
		}
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordLoginSuccess()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(loginResponse{Token: token})
}

// recordSignupFailure は登録失敗のメトリクスを理由別に記録する。
func (h *AuthHandler) recordSignupFailure(err error) {
	if h.metrics == nil {
		return
	}

	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case model.ErrCodeDuplicateEmail:
			h.metrics.RecordSignupFailure("duplicate_email")
			return
		case model.ErrCodeInvalidRequest:
			h.metrics.RecordSignupFailure("validation")
			return
		}
	}
	h.metrics.RecordSignupFailure("internal")
}
