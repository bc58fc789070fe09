package searcher

import (
	"time"
)

type SearchMetric struct {
	Depth    int
	Mode     Mode
	Budget   time.Duration
	Duration time.Duration
	Nodes    int // Positions visited below the root, leaves included
	Leaves   int // Static evaluations
	Cutoffs  int
	Score    float64 // Score of the selected move
}

// OverBudget reports whether the search took longer than its informational time budget
func (m SearchMetric) OverBudget() bool {
	return m.Budget > 0 && m.Duration > m.Budget
}

type MetricsCollector interface {
	Start(depth int, mode Mode, budget time.Duration)
	AddNode()
	AddLeaf()
	AddCutoff()
	Complete(score float64) SearchMetric
}

// A collector belongs to a single search call, so it needs no synchronization
type metricsCollector struct {
	startTime time.Time
	metric    SearchMetric
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start(depth int, mode Mode, budget time.Duration) {
	m.startTime = time.Now()
	m.metric = SearchMetric{Depth: depth, Mode: mode, Budget: budget}
}

func (m *metricsCollector) AddNode() {
	m.metric.Nodes++
}

func (m *metricsCollector) AddLeaf() {
	m.metric.Leaves++
}

func (m *metricsCollector) AddCutoff() {
	m.metric.Cutoffs++
}

func (m *metricsCollector) Complete(score float64) SearchMetric {
	m.metric.Duration = time.Since(m.startTime)
	m.metric.Score = score
	return m.metric
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start(depth int, mode Mode, budget time.Duration) {}
func (m *noMetricsCollector) AddNode()                                         {}
func (m *noMetricsCollector) AddLeaf()                                         {}
func (m *noMetricsCollector) AddCutoff()                                       {}
func (m *noMetricsCollector) Complete(score float64) SearchMetric              { return SearchMetric{Score: score} }
