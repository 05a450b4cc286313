package metrics

import (
	"errors"
	"testing"
	"time"
)

type captureBackend struct {
	counters   map[string]float64
	lastLabels Labels
	observed   []float64
	flushed    bool
}

func newCaptureBackend() *captureBackend {
	return &captureBackend{counters: map[string]float64{}}
}

func (c *captureBackend) IncCounter(name string, delta float64, labels Labels) {
	c.counters[name] += delta
	c.lastLabels = labels
}

func (c *captureBackend) ObserveHistogram(_ string, value float64, _ Labels) {
	c.observed = append(c.observed, value)
}

func (c *captureBackend) Flush() error {
	c.flushed = true
	return nil
}

func TestRecordStep(t *testing.T) {
	c := newCaptureBackend()
	SetBackend(c)
	defer SetBackend(nopBackend{})

	RecordStep("restaurant_daily", "extract", nil, 250*time.Millisecond)

	if c.counters["pipeline_step_total"] != 1 {
		t.Fatalf("step counter = %v, want 1", c.counters["pipeline_step_total"])
	}
	if got := c.lastLabels["status"]; got != "success" {
		t.Fatalf("status = %q, want success", got)
	}
	if len(c.observed) != 1 || c.observed[0] != 0.25 {
		t.Fatalf("observed = %v, want [0.25]", c.observed)
	}

	RecordStep("restaurant_daily", "load", errors.New("boom"), time.Second)
	if got := c.lastLabels["status"]; got != "failure" {
		t.Fatalf("status = %q, want failure", got)
	}
}

func TestRecordRowsIgnoresNonPositive(t *testing.T) {
	c := newCaptureBackend()
	SetBackend(c)
	defer SetBackend(nopBackend{})

	RecordRows("restaurant_daily", "parsed", 0)
	RecordRows("restaurant_daily", "parsed", -3)
	if len(c.counters) != 0 {
		t.Fatalf("counters = %v, want none", c.counters)
	}

	RecordRows("restaurant_daily", "parsed", 42)
	if c.counters["pipeline_rows_total"] != 42 {
		t.Fatalf("rows counter = %v, want 42", c.counters["pipeline_rows_total"])
	}
}

func TestSetBackendNilKeepsExisting(t *testing.T) {
	c := newCaptureBackend()
	SetBackend(c)
	defer SetBackend(nopBackend{})

	SetBackend(nil)
	RecordKPI("restaurant_daily", "daily_revenue", nil)
	if c.counters["pipeline_kpi_total"] != 1 {
		t.Fatal("nil SetBackend replaced the installed backend")
	}

	if err := Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if !c.flushed {
		t.Fatal("Flush did not reach the backend")
	}
}
