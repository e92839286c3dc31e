// Package token は署名付きベアラートークンの発行と検証を提供する。
// トークンはHS256署名のJWTで、サーバー側に状態を持たない。
// 有効性はトークン自身の内容と共有シークレットのみで決まる。
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength はHS256の安全性要件（256ビット）を満たす最小シークレット長。
const MinSecretLength = 32

// 検証失敗の種別。ハンドラー層ではいずれも401として扱う。
var (
	// ErrMalformed はトークンのエンコーディングを解析できない場合のエラー。
	ErrMalformed = errors.New("token: malformed token")
	// ErrInvalidSignature は署名が現在のシークレットで検証できない場合のエラー。
	ErrInvalidSignature = errors.New("token: invalid signature")
	// ErrExpired はトークンの有効期限が切れている場合のエラー。
	ErrExpired = errors.New("token: token expired")
)

// Service はベアラートークンの発行・検証サービス。
// シークレットとTTLは起動時に1回注入され、以後変更されない。
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService はServiceを生成する。
// シークレットがMinSecretLengthバイト未満、またはTTLが非正の場合はエラーを返す。
// 弱いシークレットで黙って稼働しないよう、起動時に失敗させる。
func NewService(secret []byte, ttl time.Duration) (*Service, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("token: secret must be at least %d bytes, got %d", MinSecretLength, len(secret))
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token: ttl must be positive, got %v", ttl)
	}
	return &Service{secret: secret, ttl: ttl}, nil
}

// TTL は設定されたトークン有効期間を返す。
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue はsubject（メールアドレス）を主体とするトークンを発行する。
// ペイロードは {sub, iat=now, exp=now+ttl} で、副作用はない。
func (s *Service) Issue(subject string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("token: failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Validate はトークンを検証し、埋め込まれたsubjectを返す。
// 解析不能ならErrMalformed、署名不一致ならErrInvalidSignature、
// 期限切れならErrExpiredを返す。検証時刻はnowとして扱う。
func (s *Service) Validate(tokenString string, now time.Time) (string, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrExpired
		default:
			return "", fmt.Errorf("token: failed to parse token: %w", err)
		}
	}

	return claims.Subject, nil
}
