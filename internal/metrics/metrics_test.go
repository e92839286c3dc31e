package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TestNewCollector_ReturnsNonNil はCollectorが正常に生成されることを検証する。
func TestNewCollector_ReturnsNonNil(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	if c == nil {
		t.Fatal("expected non-nil Collector")
	}
}

// TestRecordSignupSuccess_IncrementsCounter は登録成功カウンタが増加することを検証する。
func TestRecordSignupSuccess_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordSignupSuccess()
	c.RecordSignupSuccess()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	found := false
	for _, mf := range families {
		if mf.GetName() == "bridal_signup_success_total" {
			found = true
			if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 2 {
				t.Errorf("counter = %v, want 2", got)
			}
		}
	}
	if !found {
		t.Error("bridal_signup_success_total not found in gathered metrics")
	}
}

// TestRecordSignupFailure_LabelsByReason は登録失敗カウンタが理由別に記録されることを検証する。
func TestRecordSignupFailure_LabelsByReason(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordSignupFailure("duplicate_email")
	c.RecordSignupFailure("duplicate_email")
	c.RecordSignupFailure("validation")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	for _, mf := range families {
		if mf.GetName() != "bridal_signup_fail_total" {
			continue
		}
		if len(mf.GetMetric()) != 2 {
			t.Errorf("label count = %d, want 2", len(mf.GetMetric()))
		}
	}
}

// TestRecordHTTPStatus_LabelsByCode はHTTPステータスがコード別に記録されることを検証する。
func TestRecordHTTPStatus_LabelsByCode(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(403)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	found := false
	for _, mf := range families {
		if mf.GetName() == "bridal_http_status_total" {
			found = true
			if len(mf.GetMetric()) != 2 {
				t.Errorf("label count = %d, want 2", len(mf.GetMetric()))
			}
		}
	}
	if !found {
		t.Error("bridal_http_status_total not found in gathered metrics")
	}
}

// TestRecordRequestLatency_Observes はレイテンシヒストグラムに観測値が記録されることを検証する。
func TestRecordRequestLatency_Observes(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequestLatency(120 * time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	for _, mf := range families {
		if mf.GetName() != "bridal_request_latency_seconds" {
			continue
		}
		if got := mf.GetMetric()[0].GetHistogram().GetSampleCount(); got != 1 {
			t.Errorf("sample count = %d, want 1", got)
		}
	}
}
