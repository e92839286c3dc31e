package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// requestIDContextKey はリクエストIDをコンテキストに格納するためのキー。
var requestIDContextKey = contextKey("request_id")

// requestIDHeader はリクエストIDを伝搬するHTTPヘッダー名。
const requestIDHeader = "X-Request-Id"

// NewRequestIDMiddleware はリクエストごとに一意なIDを割り当てるミドルウェアを返す。
// クライアントが有効なX-Request-Idを送信した場合はそれを引き継ぎ、
// なければUUIDv4を新規発行する。IDはレスポンスヘッダーにも反映される。
func NewRequestIDMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(requestIDHeader)
			if _, err := uuid.Parse(requestID); err != nil {
				requestID = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, requestID)
			ctx := context.WithValue(r.Context(), requestIDContextKey, requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDFromContext はコンテキストからリクエストIDを取得する。
// 未設定の場合は空文字列を返す。
func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDContextKey).(string)
	return requestID
}
