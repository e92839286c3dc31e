package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/satya/bridal/internal/event"
	"github.com/satya/bridal/internal/middleware"
	"github.com/satya/bridal/internal/model"
)

// --- モック定義 ---

type mockEventService struct {
	listFn   func(ctx context.Context, ownerID int64) ([]*model.BridalEvent, error)
	createFn func(ctx context.Context, ownerID int64, in event.Input) (*model.BridalEvent, error)
	updateFn func(ctx context.Context, ownerID, eventID int64, in event.Input) (*model.BridalEvent, error)
	deleteFn func(ctx context.Context, ownerID, eventID int64) error
}

func (m *mockEventService) List(ctx context.Context, ownerID int64) ([]*model.BridalEvent, error) {
	if m.listFn != nil {
		return m.listFn(ctx, ownerID)
	}
	return nil, errors.New("not configured")
}

func (m *mockEventService) Create(ctx context.Context, ownerID int64, in event.Input) (*model.BridalEvent, error) {
	if m.createFn != nil {
		return m.createFn(ctx, ownerID, in)
	}
	return nil, errors.New("not configured")
}

func (m *mockEventService) Update(ctx context.Context, ownerID, eventID int64, in event.Input) (*model.BridalEvent, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, ownerID, eventID, in)
	}
	return nil, errors.New("not configured")
}

func (m *mockEventService) Delete(ctx context.Context, ownerID, eventID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, ownerID, eventID)
	}
	return errors.New("not configured")
}

// requestWithIdentity は認証済みユーザーをコンテキストに載せたリクエストを作る。
func requestWithIdentity(method, target string, body *strings.Reader, userID int64) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, body)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := middleware.ContextWithIdentity(req.Context(), middleware.Identity{
		UserID: userID,
		Email:  "alice@example.com",
	})
	return req.WithContext(ctx)
}

// requestWithIDParam はchiのURLパラメータ:idを付与したリクエストを作る。
func requestWithIDParam(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// --- テスト ---

func TestEventHandler_ListEvents_ScopedToOwner(t *testing.T) {
	var capturedOwnerID int64
	service := &mockEventService{
		listFn: func(ctx context.Context, ownerID int64) ([]*model.BridalEvent, error) {
			capturedOwnerID = ownerID
			return []*model.BridalEvent{
				{ID: 1, EventName: "挙式A", Amount: 300000, UserID: ownerID},
			}, nil
		},
	}
	h := NewEventHandler(service)

	req := requestWithIdentity(http.MethodGet, "/api/events", nil, 42)
	w := httptest.NewRecorder()

	h.ListEvents(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if capturedOwnerID != 42 {
		t.Errorf("ownerID = %d, want 42", capturedOwnerID)
	}

	var got []eventResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(got) != 1 || got[0].EventName != "挙式A" {
		t.Errorf("body = %+v, want one event 挙式A", got)
	}
}

func TestEventHandler_ListEvents_NoIdentity_Returns401(t *testing.T) {
	h := NewEventHandler(&mockEventService{})

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	w := httptest.NewRecorder()

	h.ListEvents(w, req)

	if w.Result().StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusUnauthorized)
	}
}

func TestEventHandler_CreateEvent_Returns201(t *testing.T) {
	var capturedInput event.Input
	service := &mockEventService{
		createFn: func(ctx context.Context, ownerID int64, in event.Input) (*model.BridalEvent, error) {
			capturedInput = in
			return &model.BridalEvent{ID: 10, Date: in.Date, EventName: in.EventName, Amount: in.Amount, UserID: ownerID}, nil
		},
	}
	h := NewEventHandler(service)

	body := strings.NewReader(`{"date":"2026-06-20","eventName":"山田家挙式","clientName":"山田","serviceType":"挙式","amount":450000,"notes":""}`)
	req := requestWithIdentity(http.MethodPost, "/api/events", body, 42)
	w := httptest.NewRecorder()

	h.CreateEvent(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	if capturedInput.EventName != "山田家挙式" || capturedInput.Amount != 450000 {
		t.Errorf("input = %+v", capturedInput)
	}

	var got eventResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if got.ID != 10 || got.UserID != 42 {
		t.Errorf("body = %+v, want ID=10 UserID=42", got)
	}
}

func TestEventHandler_UpdateEvent_Forbidden_Returns403(t *testing.T) {
	service := &mockEventService{
		updateFn: func(ctx context.Context, ownerID, eventID int64, in event.Input) (*model.BridalEvent, error) {
			return nil, model.NewForbiddenError()
		},
	}
	h := NewEventHandler(service)

	body := strings.NewReader(`{"date":"2026-06-20","eventName":"改ざん","amount":1}`)
	req := requestWithIdentity(http.MethodPut, "/api/events/7", body, 99)
	req = requestWithIDParam(req, "7")
	w := httptest.NewRecorder()

	h.UpdateEvent(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusForbidden)
	}

	var got apiErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if got.Code != model.ErrCodeForbidden {
		t.Errorf("code = %q, want %q", got.Code, model.ErrCodeForbidden)
	}
}

func TestEventHandler_DeleteEvent_NotFound_Returns404(t *testing.T) {
	service := &mockEventService{
		deleteFn: func(ctx context.Context, ownerID, eventID int64) error {
			return model.NewEventNotFoundError(eventID)
		},
	}
	h := NewEventHandler(service)

	req := requestWithIdentity(http.MethodDelete, "/api/events/999", nil, 42)
	req = requestWithIDParam(req, "999")
	w := httptest.NewRecorder()

	h.DeleteEvent(w, req)

	if w.Result().StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusNotFound)
	}
}

func TestEventHandler_DeleteEvent_Success_Returns204(t *testing.T) {
	service := &mockEventService{
		deleteFn: func(ctx context.Context, ownerID, eventID int64) error {
			return nil
		},
	}
	h := NewEventHandler(service)

	req := requestWithIdentity(http.MethodDelete, "/api/events/7", nil, 42)
	req = requestWithIDParam(req, "7")
	w := httptest.NewRecorder()

	h.DeleteEvent(w, req)

	if w.Result().StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusNoContent)
	}
}

func TestEventHandler_UpdateEvent_InvalidID_Returns400(t *testing.T) {
	h := NewEventHandler(&mockEventService{})

	body := strings.NewReader(`{"eventName":"x"}`)
	req := requestWithIdentity(http.MethodPut, "/api/events/abc", body, 42)
	req = requestWithIDParam(req, "abc")
	w := httptest.NewRecorder()

	h.UpdateEvent(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusBadRequest)
	}
}
