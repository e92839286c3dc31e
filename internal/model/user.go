// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// PasswordHashはbcryptハッシュであり、平文パスワードは保持しない。
// APIレスポンスに含めてはならない。
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
