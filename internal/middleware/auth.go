// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/satya/bridal/internal/model"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// identityContextKey はリクエストコンテキストに認証済みユーザーを格納するためのキー。
var identityContextKey = contextKey("identity")

// Identity は認証済み呼び出し元を表す。
// 以降の処理はこの値を明示的に受け渡し、アンビエントな認証状態には依存しない。
type Identity struct {
	UserID int64
	Email  string
}

// TokenValidator はベアラートークンの検証に必要なインターフェース。
// token.Serviceの部分集合として定義する。
type TokenValidator interface {
	Validate(tokenString string, now time.Time) (string, error)
}

// UserFinder はトークンのsubjectからユーザーを解決するインターフェース。
// repository.UserRepositoryの部分集合として定義する。
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// NewAuthMiddleware はAuthorizationヘッダーのベアラートークンを検証し、
// 認証済みユーザーをリクエストコンテキストに注入するミドルウェアを返す。
// トークンの欠落・改ざん・期限切れ、およびsubjectに対応するユーザーの
// 不存在は、いずれもリソースロジックに到達する前に401で拒否される。
func NewAuthMiddleware(tokens TokenValidator, users UserFinder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Authorizationヘッダーからトークンを取得
			header := r.Header.Get("Authorization")
			rawToken, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || rawToken == "" {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			// 2. トークンの検証（失敗種別は区別せず401を返す）
			subject, err := tokens.Validate(rawToken, time.Now())
			if err != nil {
				slog.Warn("token validation failed",
					slog.String("error", err.Error()),
				)
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			// 3. subject（email）からユーザーを解決
			user, err := users.FindByEmail(r.Context(), subject)
			if err != nil {
				slog.Error("failed to resolve token subject",
					slog.String("error", err.Error()),
				)
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}
			if user == nil {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			// 4. 認証済みユーザーをコンテキストに注入
			ctx := ContextWithIdentity(r.Context(), Identity{
				UserID: user.ID,
				Email:  user.Email,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext はリクエストコンテキストから認証済みユーザーを取得する。
// 認証ミドルウェアを通過したリクエストでのみ有効。
func IdentityFromContext(ctx context.Context) (Identity, error) {
	identity, ok := ctx.Value(identityContextKey).(Identity)
	if !ok || identity.UserID == 0 {
		return Identity{}, fmt.Errorf("identity not found in context")
	}
	return identity, nil
}

// ContextWithIdentity はコンテキストに認証済みユーザーを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}
