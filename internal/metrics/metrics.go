// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ハンドラーやサービス層から利用する。
type MetricsCollector interface {
	RecordSignupSuccess()
	RecordSignupFailure(reason string)
	RecordLoginSuccess()
	RecordLoginFailure()
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(duration time.Duration)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	signupSuccess  prometheus.Counter
	signupFail     *prometheus.CounterVec
	loginSuccess   prometheus.Counter
	loginFail      prometheus.Counter
	httpStatus     *prometheus.CounterVec
	requestLatency prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		signupSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bridal_signup_success_total",
			Help: "ユーザー登録成功の合計数",
		}),
		signupFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bridal_signup_fail_total",
			Help: "ユーザー登録失敗の理由別合計数",
		}, []string{"reason"}),
		loginSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bridal_login_success_total",
			Help: "ログイン成功の合計数",
		}),
		loginFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bridal_login_fail_total",
			Help: "ログイン失敗の合計数",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bridal_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bridal_request_latency_seconds",
			Help:    "HTTPリクエスト処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.signupSuccess,
		c.signupFail,
		c.loginSuccess,
		c.loginFail,
		c.httpStatus,
		c.requestLatency,
	)

	return c
}

// RecordSignupSuccess はユーザー登録成功を記録する。
func (c *Collector) RecordSignupSuccess() {
	c.signupSuccess.Inc()
}

// RecordSignupFailure はユーザー登録失敗を理由付きで記録する。
func (c *Collector) RecordSignupFailure(reason string) {
	c.signupFail.WithLabelValues(reason).Inc()
}

// RecordLoginSuccess はログイン成功を記録する。
func (c *Collector) RecordLoginSuccess() {
	c.loginSuccess.Inc()
}

// RecordLoginFailure はログイン失敗を記録する。
// 失敗理由は意図的にラベル化しない。
func (c *Collector) RecordLoginFailure() {
	c.loginFail.Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はリクエスト処理のレイテンシを記録する。
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
