package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/satya/bridal/internal/metrics"
	"github.com/satya/bridal/internal/middleware"
)

// HealthChecker はヘルスチェックに必要なインターフェース。
// *sql.DBがそのまま満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenValidator    middleware.TokenValidator
	UserFinder        middleware.UserFinder
	CORSAllowedOrigin string
	Logger            *slog.Logger
	Metrics           *metrics.Collector

	// サービス
	AuthService    AuthServiceInterface
	EventService   EventServiceInterface
	ExpenseService ExpenseServiceInterface
	StatsService   StatsServiceInterface

	// ヘルスチェック
	HealthChecker HealthChecker
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RequestID → Recovery → SecurityHeaders → CORS → Metrics → Logging
//
// 認証ルート（/api/auth/*）とヘルスチェックは認証ミドルウェアの外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	if deps.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	}
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}

	authHandler := NewAuthHandler(deps.AuthService, authMetrics(deps.Metrics))
	eventHandler := NewEventHandler(deps.EventService)
	expenseHandler := NewExpenseHandler(deps.ExpenseService)
	statsHandler := NewStatsHandler(deps.StatsService)

	// --- 認証不要のルート ---

	r.Get("/health", NewHealthHandler(deps.HealthChecker))

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
	})

	// --- 認証が必要なルート ---

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.TokenValidator, deps.UserFinder))

		// 挙式案件管理
		r.Route("/api/events", func(r chi.Router) {
			r.Get("/", eventHandler.ListEvents)
			r.Post("/", eventHandler.CreateEvent)

			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", eventHandler.UpdateEvent)
				r.Delete("/", eventHandler.DeleteEvent)
			})
		})

		// 経費管理
		r.Route("/api/expenses", func(r chi.Router) {
			r.Get("/", expenseHandler.ListExpenses)
			r.Post("/", expenseHandler.CreateExpense)

			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", expenseHandler.UpdateExpense)
				r.Delete("/", expenseHandler.DeleteExpense)
			})
		})

		// 月別損益集計
		r.Get("/api/stats/monthly-profit", statsHandler.MonthlyProfit)
	})

	return r
}

// authMetrics はnilの*metrics.Collectorをnilインターフェースに正規化する。
func authMetrics(c *metrics.Collector) AuthMetricsRecorder {
	if c == nil {
		return nil
	}
	return c
}

// NewHealthHandler はDB疎通を確認するヘルスチェックハンドラーを返す。
// GET /health
func NewHealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if checker != nil {
			if err := checker.PingContext(r.Context()); err != nil {
				slog.Error("health check failed", slog.String("error", err.Error()))
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{"status": "unhealthy"})
				return
			}
		}

		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}
