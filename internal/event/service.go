// Package event はブライダル案件管理のドメインロジックを提供する。
// すべての操作は認証済みユーザーのIDを明示的に受け取り、
// 所有者スコープを強制する。
package event

import (
	"context"
	"fmt"

	"github.com/satya/bridal/internal/model"
	"github.com/satya/bridal/internal/repository"
	"github.com/satya/bridal/internal/security"
)

// Input はイベントの作成・更新入力を表す。
// 所有者はここに含まれない。所有者は常に認証済みユーザーであり、
// リクエストボディ由来の値は使用しない。
type Input struct {
	Date        string
	EventName   string
	ClientName  string
	ServiceType string
	Amount      float64
	Notes       string
}

// Service はイベント管理のサービス層。
type Service struct {
	events    repository.EventRepository
	sanitizer security.FieldSanitizerService
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(events repository.EventRepository, sanitizer security.FieldSanitizerService) *Service {
	return &Service{
		events:    events,
		sanitizer: sanitizer,
	}
}

// List は認証済みユーザーが所有するイベント一覧を返す。
func (s *Service) List(ctx context.Context, ownerID int64) ([]*model.BridalEvent, error) {
	events, err := s.events.ListByUserID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("イベント一覧の取得に失敗しました: %w", err)
	}
	return events, nil
}

// Create はイベントを作成する。所有者は認証済みユーザーで固定される。
func (s *Service) Create(ctx context.Context, ownerID int64, in Input) (*model.BridalEvent, error) {
	ev := s.apply(&model.BridalEvent{}, ownerID, in)
	if err := s.events.Create(ctx, ev); err != nil {
		return nil, fmt.Errorf("イベントの作成に失敗しました: %w", err)
	}
	return ev, nil
}

// Update は所有イベントを更新する。
// 存在しない場合はEVENT_NOT_FOUND、所有者が異なる場合はFORBIDDENを返す。
// 所有者は更新時も認証済みユーザーに再設定される。
func (s *Service) Update(ctx context.Context, ownerID, eventID int64, in Input) (*model.BridalEvent, error) {
	existing, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("イベントの取得に失敗しました: %w", err)
	}
	if existing == nil {
		return nil, model.NewEventNotFoundError(eventID)
	}
	if existing.UserID != ownerID {
		return nil, model.NewForbiddenError()
	}

	ev := s.apply(&model.BridalEvent{ID: eventID}, ownerID, in)
	if err := s.events.Update(ctx, ev); err != nil {
		return nil, fmt.Errorf("イベントの更新に失敗しました: %w", err)
	}
	return ev, nil
}

// Delete は所有イベントを削除する。
// 存在しない場合はEVENT_NOT_FOUND、所有者が異なる場合はFORBIDDENを返す。
func (s *Service) Delete(ctx context.Context, ownerID, eventID int64) error {
	existing, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("イベントの取得に失敗しました: %w", err)
	}
	if existing == nil {
		return model.NewEventNotFoundError(eventID)
	}
	if existing.UserID != ownerID {
		return model.NewForbiddenError()
	}

	if err := s.events.DeleteByID(ctx, eventID); err != nil {
		return fmt.Errorf("イベントの削除に失敗しました: %w", err)
	}
	return nil
}

// apply は入力の自由記述フィールドをサニタイズしてevに反映し、
// 所有者を認証済みユーザーに設定する。
func (s *Service) apply(ev *model.BridalEvent, ownerID int64, in Input) *model.BridalEvent {
	ev.Date = s.sanitizer.Sanitize(in.Date)
	ev.EventName = s.sanitizer.Sanitize(in.EventName)
	ev.ClientName = s.sanitizer.Sanitize(in.ClientName)
	ev.ServiceType = s.sanitizer.Sanitize(in.ServiceType)
	ev.Amount = in.Amount
	ev.Notes = s.sanitizer.Sanitize(in.Notes)
	ev.UserID = ownerID
	return ev
}
