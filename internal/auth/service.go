// Package auth はサインアップ・ログインの認証ロジックを提供する。
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/satya/bridal/internal/model"
	"github.com/satya/bridal/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash はユーザー不存在時のタイミング均一化用ハッシュ。
// 未登録emailへのログインでもbcrypt比較を1回実行し、
// 応答時間からemailの登録有無が推測できないようにする。
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("bridal-timing-equalizer"), bcrypt.DefaultCost)

// TokenIssuer はログイン成功時のトークン発行インターフェース。
// token.Serviceの部分集合として定義する。
type TokenIssuer interface {
	Issue(subject string, now time.Time) (string, error)
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	users  repository.UserRepository
	tokens TokenIssuer
	now    func() time.Time
}

// NewService はServiceを生成する。
func NewService(users repository.UserRepository, tokens TokenIssuer) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		now:    time.Now,
	}
}

// NormalizeEmail はemailを小文字化・前後空白除去して正規化する。
// emailの照合は大文字小文字を区別しない方針とし、保存・検索とも
// 正規化後の値を使用する。
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup は新規ユーザーを登録する。
// パスワードはbcryptでハッシュ化して保存し、平文は保存もログ出力もしない。
// email重複の場合はDUPLICATE_EMAILエラーを返す。
func (s *Service) Signup(ctx context.Context, email, password string) (*model.User, error) {
	email = NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, model.NewInvalidRequestError("メールアドレスの形式が正しくありません")
	}
	if password == "" {
		return nil, model.NewInvalidRequestError("パスワードを入力してください")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, model.NewDuplicateEmailError(email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// 事前チェックとINSERTの間に同一emailが登録された場合
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, model.NewDuplicateEmailError(email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user signed up",
		slog.Int64("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

// Login は資格情報を検証し、成功時にベアラートークンを発行する。
// ユーザー不存在とパスワード不一致はいずれも同一のAUTH_FAILEDとして返し、
// emailの登録有無を呼び出し側に漏らさない。
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = NormalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		// タイミング均一化のためダミーハッシュと比較してから失敗を返す
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return "", model.NewAuthFailedError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", model.NewAuthFailedError()
	}

	tok, err := s.tokens.Issue(user.Email, s.now())
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("user logged in", slog.Int64("user_id", user.ID))

	return tok, nil
}
