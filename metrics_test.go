package goGate

import (
	"sync"
	"testing"
	"time"
)

func TestMetricsDisabledNoIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})
	m.Inc(MetricAuthAdmit)

	if got := m.Value(MetricAuthAdmit); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestMetricsEnabledIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricAuthAdmit)
	m.Inc(MetricAuthAdmit)
	m.Inc(MetricAuthAdmit)

	if got := m.Value(MetricAuthAdmit); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestMetricsConcurrentIncrementSafe(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const goroutines = 32
	const perG = 4000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perG; j++ {
				m.Inc(MetricRateAdmit)
			}
		}()
	}
	wg.Wait()

	want := uint64(goroutines * perG)
	if got := m.Value(MetricRateAdmit); got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}
}

func TestMetricsHistogramBucketCorrectness(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})

	observations := []time.Duration{
		5 * time.Microsecond,
		10 * time.Microsecond,
		25 * time.Microsecond,
		50 * time.Microsecond,
		100 * time.Microsecond,
		250 * time.Microsecond,
		500 * time.Microsecond,
		700 * time.Microsecond,
	}

	for _, d := range observations {
		m.Observe(MetricAdmitLatency, d)
	}

	snap := m.Snapshot()
	buckets := snap.Histograms[MetricAdmitLatency]
	if len(buckets) != 8 {
		t.Fatalf("expected 8 buckets, got %d", len(buckets))
	}

	for i, v := range buckets {
		if v != 1 {
			t.Fatalf("bucket %d expected 1, got %d", i, v)
		}
	}
}

func TestMetricsObserveDisabledWithoutLatencyFlag(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Observe(MetricAdmitLatency, time.Microsecond)

	snap := m.Snapshot()
	if len(snap.Histograms) != 0 {
		t.Fatalf("expected no histogram data, got %v", snap.Histograms)
	}
}

func TestMetricsSnapshotConsistency(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})
	m.Inc(MetricAuthAdmit)
	m.Inc(MetricAuthInvalidCredentials)
	m.Inc(MetricAuthInvalidCredentials)
	m.Observe(MetricAdmitLatency, 2*time.Microsecond)

	snap := m.Snapshot()

	if snap.Counters[MetricAuthAdmit] != 1 {
		t.Fatalf("expected 1 admit, got %d", snap.Counters[MetricAuthAdmit])
	}
	if snap.Counters[MetricAuthInvalidCredentials] != 2 {
		t.Fatalf("expected 2 invalid, got %d", snap.Counters[MetricAuthInvalidCredentials])
	}

	buckets := snap.Histograms[MetricAdmitLatency]
	if len(buckets) != 8 || buckets[0] != 1 {
		t.Fatalf("expected first bucket 1, got %v", buckets)
	}
}

func TestMetricsNilReceiverSafe(t *testing.T) {
	var m *Metrics
	m.Inc(MetricAuthAdmit)
	m.Observe(MetricAdmitLatency, time.Microsecond)

	if got := m.Value(MetricAuthAdmit); got != 0 {
		t.Fatalf("expected 0 from nil metrics, got %d", got)
	}
}

func TestBucketIndexBoundaries(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want int
	}{
		{time.Nanosecond, 0},
		{5 * time.Microsecond, 0},
		{6 * time.Microsecond, 1},
		{10 * time.Microsecond, 1},
		{25 * time.Microsecond, 2},
		{50 * time.Microsecond, 3},
		{100 * time.Microsecond, 4},
		{250 * time.Microsecond, 5},
		{500 * time.Microsecond, 6},
		{501 * time.Microsecond, 7},
		{time.Second, 7},
	}

	for _, tc := range cases {
		if got := bucketIndex(tc.d); got != tc.want {
			t.Fatalf("bucketIndex(%s) = %d, want %d", tc.d, got, tc.want)
		}
	}
}
