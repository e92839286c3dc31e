package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, resource, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeDuplicateEmail  = "DUPLICATE_EMAIL"
	ErrCodeAuthFailed      = "AUTH_FAILED"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeEventNotFound   = "EVENT_NOT_FOUND"
	ErrCodeExpenseNotFound = "EXPENSE_NOT_FOUND"
	ErrCodeInvalidRequest  = "INVALID_REQUEST"
)

// NewDuplicateEmailError はメールアドレス重複エラーを生成する。
func NewDuplicateEmailError(email string) *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateEmail,
		Message:  fmt.Sprintf("このメールアドレスは既に登録されています: %s", email),
		Category: "auth",
		Action:   "別のメールアドレスで登録するか、ログインしてください。",
	}
}

// NewAuthFailedError は認証失敗エラーを生成する。
// ユーザー不存在とパスワード不一致を区別しない（メールアドレスの登録有無を漏らさないため）。
func NewAuthFailedError() *APIError {
	return &APIError{
		Code:     ErrCodeAuthFailed,
		Message:  "メールアドレスまたはパスワードが正しくありません。",
		Category: "auth",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

// NewUnauthorizedError は未認証エラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証が必要です。",
		Category: "auth",
		Action:   "ログインしてください。",
	}
}

// NewForbiddenError は所有者以外による操作エラーを生成する。
func NewForbiddenError() *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  "このレコードを操作する権限がありません。",
		Category: "auth",
		Action:   "自分が作成したレコードのみ操作できます。",
	}
}

// NewEventNotFoundError はイベント未検出エラーを生成する。
func NewEventNotFoundError(eventID int64) *APIError {
	return &APIError{
		Code:     ErrCodeEventNotFound,
		Message:  fmt.Sprintf("指定されたイベントが見つかりません: %d", eventID),
		Category: "resource",
		Action:   "イベントIDを確認してください。",
	}
}

// NewExpenseNotFoundError は経費未検出エラーを生成する。
func NewExpenseNotFoundError(expenseID int64) *APIError {
	return &APIError{
		Code:     ErrCodeExpenseNotFound,
		Message:  fmt.Sprintf("指定された経費が見つかりません: %d", expenseID),
		Category: "resource",
		Action:   "経費IDを確認してください。",
	}
}

// NewInvalidRequestError はリクエスト内容の検証エラーを生成する。
func NewInvalidRequestError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  fmt.Sprintf("リクエスト内容が不正です: %s", reason),
		Category: "validation",
		Action:   "入力内容を確認して再度お試しください。",
	}
}
