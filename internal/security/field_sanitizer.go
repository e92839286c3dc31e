// Package security はアプリケーションのセキュリティ機能を提供する。
//
// FieldSanitizerService はユーザー入力の自由記述フィールド（イベント名、
// 顧客名、備考など）からマークアップを除去し、保存データを常に
// プレーンテキストに保つ。値はフロントエンドでそのまま描画されるため、
// 保存前の除去でXSSの持ち込みを防ぐ。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// FieldSanitizerService は自由記述フィールドのサニタイズ機能のインターフェースを定義する。
// レコードの保存前に使用される。
type FieldSanitizerService interface {
	// Sanitize は入力からHTMLタグをすべて除去し、前後の空白を取り除いた
	// プレーンテキストを返す。空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// fieldSanitizer はFieldSanitizerServiceの実装。
// bluemondayのStrictPolicy（全タグ除去）を保持し、スレッドセーフに動作する。
type fieldSanitizer struct {
	policy *bluemonday.Policy
}

// NewFieldSanitizer はFieldSanitizerServiceの新しいインスタンスを生成する。
// StrictPolicyはすべてのタグと属性を除去し、テキストのみを残す。
func NewFieldSanitizer() *fieldSanitizer {
	return &fieldSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は入力からHTMLタグをすべて除去し、前後の空白を取り除く。
// bluemondayはタグ除去後のテキストをHTMLエスケープして返すため、
// プレーンテキストとして保存できるようアンエスケープする。
func (s *fieldSanitizer) Sanitize(raw string) string {
	if raw == "" {
		return ""
	}
	cleaned := s.policy.Sanitize(raw)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

// compile-time interface check
var _ FieldSanitizerService = (*fieldSanitizer)(nil)
