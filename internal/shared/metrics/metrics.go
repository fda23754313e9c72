// Package metrics exposes lightweight process counters in Prometheus text format.
package metrics

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	uploadsTotal           atomic.Int64
	analysesStartedTotal   atomic.Int64
	analysesCompletedTotal atomic.Int64
	structuredParseTotal   atomic.Int64
	fallbackParseTotal     atomic.Int64
	mockResponsesTotal     atomic.Int64
	agentErrorsTotal       atomic.Int64

	durations = newHistogram([]float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000, 60000})
)

// IncUploads increments the recording upload counter.
func IncUploads() { uploadsTotal.Add(1) }

// IncAnalysesStarted increments the started-analysis counter.
func IncAnalysesStarted() { analysesStartedTotal.Add(1) }

// IncAnalysesCompleted increments the completed-analysis counter.
func IncAnalysesCompleted() { analysesCompletedTotal.Add(1) }

// IncStructuredParse counts replies that yielded JSON directly.
func IncStructuredParse() { structuredParseTotal.Add(1) }

// IncFallbackParse counts replies recovered by the line parser.
func IncFallbackParse() { fallbackParseTotal.Add(1) }

// IncMockResponses counts analyses served from the mock generator.
func IncMockResponses() { mockResponsesTotal.Add(1) }

// IncAgentErrors counts failed agent invocations.
func IncAgentErrors() { agentErrorsTotal.Add(1) }

// ObserveAnalysisDuration records one end-to-end analysis duration in milliseconds.
func ObserveAnalysisDuration(ms float64) { durations.observe(ms) }

// Handler serves the metrics snapshot.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		c.String(http.StatusOK, Render())
	}
}

// Render produces the Prometheus exposition text.
func Render() string {
	var b strings.Builder

	counter := func(name, help string, v int64) {
		fmt.Fprintf(&b, "# HELP %s %s\n", name, help)
		fmt.Fprintf(&b, "# TYPE %s counter\n", name)
		fmt.Fprintf(&b, "%s %d\n", name, v)
	}

	counter("uploads_total", "Total audio recordings uploaded.", uploadsTotal.Load())
	counter("analyses_started_total", "Total analyses started.", analysesStartedTotal.Load())
	counter("analyses_completed_total", "Total analyses completed.", analysesCompletedTotal.Load())
	counter("structured_parse_total", "Agent replies parsed as structured JSON.", structuredParseTotal.Load())
	counter("fallback_parse_total", "Agent replies recovered via line parsing.", fallbackParseTotal.Load())
	counter("mock_responses_total", "Analyses served from the mock generator.", mockResponsesTotal.Load())
	counter("agent_errors_total", "Failed agent invocations.", agentErrorsTotal.Load())

	b.WriteString(durations.render("analysis_duration_ms", "End-to-end analysis duration in milliseconds."))
	return b.String()
}

// Reset zeroes every metric. Test helper.
func Reset() {
	uploadsTotal.Store(0)
	analysesStartedTotal.Store(0)
	analysesCompletedTotal.Store(0)
	structuredParseTotal.Store(0)
	fallbackParseTotal.Store(0)
	mockResponsesTotal.Store(0)
	agentErrorsTotal.Store(0)
	durations.reset()
}

type histogram struct {
	mu      sync.Mutex
	bounds  []float64
	buckets []int64
	count   int64
	sum     float64
}

func newHistogram(bounds []float64) *histogram {
	sorted := append([]float64(nil), bounds...)
	sort.Float64s(sorted)
	return &histogram{
		bounds:  sorted,
		buckets: make([]int64, len(sorted)),
	}
}

func (h *histogram) observe(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += v
	for i, bound := range h.bounds {
		if v <= bound {
			h.buckets[i]++
		}
	}
}

func (h *histogram) reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count = 0
	h.sum = 0
	for i := range h.buckets {
		h.buckets[i] = 0
	}
}

func (h *histogram) render(name, help string) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "# HELP %s %s\n", name, help)
	fmt.Fprintf(&b, "# TYPE %s histogram\n", name)
	for i, bound := range h.bounds {
		fmt.Fprintf(&b, "%s_bucket{le=\"%g\"} %d\n", name, bound, h.buckets[i])
	}
	fmt.Fprintf(&b, "%s_bucket{le=\"+Inf\"} %d\n", name, h.count)
	fmt.Fprintf(&b, "%s_sum %g\n", name, h.sum)
	fmt.Fprintf(&b, "%s_count %d\n", name, h.count)
	return b.String()
}
