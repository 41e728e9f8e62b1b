package infra

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Counters(t *testing.T) {
	before := testutil.ToFloat64(AlertsAccepted.WithLabelValues("BUY"))
	AlertsAccepted.WithLabelValues("BUY").Inc()
	AlertsAccepted.WithLabelValues("BUY").Inc()
	if got := testutil.ToFloat64(AlertsAccepted.WithLabelValues("BUY")); got != before+2 {
		t.Errorf("Expected %v, got %v", before+2, got)
	}

	before = testutil.ToFloat64(DiscordSends.WithLabelValues("not_ready"))
	DiscordSends.WithLabelValues("not_ready").Inc()
	if got := testutil.ToFloat64(DiscordSends.WithLabelValues("not_ready")); got != before+1 {
		t.Errorf("Expected %v, got %v", before+1, got)
	}
}

func TestMetrics_RejectionReasons(t *testing.T) {
	// Separate label values track independent counters.
	shape := testutil.ToFloat64(AlertsRejected.WithLabelValues("shape"))
	secret := testutil.ToFloat64(AlertsRejected.WithLabelValues("secret"))

	AlertsRejected.WithLabelValues("shape").Inc()

	if got := testutil.ToFloat64(AlertsRejected.WithLabelValues("shape")); got != shape+1 {
		t.Errorf("Expected shape counter %v, got %v", shape+1, got)
	}
	if got := testutil.ToFloat64(AlertsRejected.WithLabelValues("secret")); got != secret {
		t.Errorf("Expected secret counter unchanged at %v, got %v", secret, got)
	}
}
