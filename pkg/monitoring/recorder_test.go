package monitoring

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestSetDomainShuttingDown(t *testing.T) {
	t.Cleanup(func() { domainShuttingDown.Reset() })

	SetDomainShuttingDown("domain1", "default", true)
	if val := gaugeValue(t, domainShuttingDown, "domain1", "default"); val != 1 {
		t.Errorf("expected shutting down gauge to be 1, got %f", val)
	}

	SetDomainShuttingDown("domain1", "default", false)
	if val := gaugeValue(t, domainShuttingDown, "domain1", "default"); val != 0 {
		t.Errorf("expected shutting down gauge to be 0, got %f", val)
	}
}

func TestSetClusterReplicas(t *testing.T) {
	t.Cleanup(func() { clusterReplicas.Reset() })

	SetClusterReplicas("domain1", "cluster-1", "default", 4)

	if val := gaugeValue(t, clusterReplicas, "domain1", "cluster-1", "default"); val != 4 {
		t.Errorf("expected replicas=4, got %f", val)
	}
}

func TestSetServerShouldStart(t *testing.T) {
	t.Cleanup(func() { serverShouldStart.Reset() })

	SetServerShouldStart("domain1", "ms1", "cluster-1", "default", true)
	SetServerShouldStart("domain1", "admin-server", "", "default", false)

	if val := gaugeValue(t, serverShouldStart, "domain1", "ms1", "cluster-1", "default"); val != 1 {
		t.Errorf("expected ms1 gauge=1, got %f", val)
	}
	if val := gaugeValue(t, serverShouldStart, "domain1", "admin-server", "", "default"); val != 0 {
		t.Errorf("expected admin gauge=0, got %f", val)
	}
}

func TestForgetDomain(t *testing.T) {
	t.Cleanup(func() {
		domainShuttingDown.Reset()
		clusterReplicas.Reset()
		serverShouldStart.Reset()
	})

	SetDomainShuttingDown("domain1", "default", false)
	SetClusterReplicas("domain1", "cluster-1", "default", 2)
	SetServerShouldStart("domain1", "ms1", "cluster-1", "default", true)
	SetClusterReplicas("domain2", "cluster-1", "default", 3)

	ForgetDomain("domain1", "default")

	if n := testutil.CollectAndCount(domainShuttingDown); n != 0 {
		t.Errorf("expected no shutdown series, got %d", n)
	}
	if n := testutil.CollectAndCount(serverShouldStart); n != 0 {
		t.Errorf("expected no server series, got %d", n)
	}
	if n := testutil.CollectAndCount(clusterReplicas); n != 1 {
		t.Errorf("expected domain2 cluster series to survive, got %d series", n)
	}
}

func TestRecordResolution(t *testing.T) {
	t.Cleanup(func() { resolutionTotal.Reset() })

	RecordResolution("domain1", "default", nil)
	RecordResolution("domain1", "default", nil)
	RecordResolution("domain1", "default", errors.New("invalid"))

	if val := testutil.ToFloat64(resolutionTotal.WithLabelValues("domain1", "default", "success")); val != 2 {
		t.Errorf("expected success counter=2, got %f", val)
	}
	if val := testutil.ToFloat64(resolutionTotal.WithLabelValues("domain1", "default", "error")); val != 1 {
		t.Errorf("expected error counter=1, got %f", val)
	}
}

func TestRecordWebhookRequest(t *testing.T) {
	t.Cleanup(func() {
		webhookRequestTotal.Reset()
		webhookRequestDuration.Reset()
	})

	RecordWebhookRequest("CREATE", "Domain", nil, 50*time.Millisecond)
	RecordWebhookRequest(
		"UPDATE",
		"Domain",
		errors.New("validation failed"),
		100*time.Millisecond,
	)

	successVal := counterValue(t, webhookRequestTotal, "CREATE", "Domain", "success")
	if successVal != 1 {
		t.Errorf("expected success counter=1, got %f", successVal)
	}

	errorVal := counterValue(t, webhookRequestTotal, "UPDATE", "Domain", "error")
	if errorVal != 1 {
		t.Errorf("expected error counter=1, got %f", errorVal)
	}

	if n := testutil.CollectAndCount(webhookRequestDuration); n != 2 {
		t.Errorf("expected 2 duration series, got %d", n)
	}
}

// --- helpers ---

func gaugeValue(t *testing.T, vec *prometheus.GaugeVec, labels ...string) float64 {
	t.Helper()
	g, err := vec.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("GetMetricWithLabelValues(%v): %v", labels, err)
	}
	m := &dto.Metric{}
	if err := g.Write(m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return m.GetGauge().GetValue()
}

func counterValue(t *testing.T, vec *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	c, err := vec.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("GetMetricWithLabelValues(%v): %v", labels, err)
	}
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return m.GetCounter().GetValue()
}
