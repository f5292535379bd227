// Package metrics provides Prometheus metrics for the teammate service.
package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Formation outcomes used as the "outcome" label.
const (
	OutcomeOK      = "ok"
	OutcomeEmpty   = "empty"
	OutcomeTimeout = "timeout"
)

// Manager manages all Prometheus metrics for the teammate service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	registry         prometheus.Registerer
	gatherer         *prometheus.Registry

	// Formation metrics
	formationRuns     *prometheus.CounterVec
	formationDuration prometheus.Histogram
	formationTeams    prometheus.Gauge
	formationUnplaced prometheus.Gauge
	unplacedTotal     prometheus.Counter
	swapsTotal        prometheus.Counter

	// Roster metrics
	participantsTotal      prometheus.Gauge
	participantsRegistered *prometheus.CounterVec
	importLines            *prometheus.CounterVec
	importDuration         prometheus.Histogram
	validationIssues       prometheus.Gauge

	// Repository metrics
	repositoryLatency *prometheus.HistogramVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// global holds the manager behind the package-level recorders.
var global atomic.Pointer[Manager] //nolint:gochecknoglobals // process-wide metrics

func init() { //nolint:gochecknoinits // recorders must work before Configure
	Configure()
}

// Configure replaces the process-wide manager with one built from opts on a
// fresh custom registry, so default Go collectors are never exported. Call it
// once at startup, before handlers capture GetRegistry.
func Configure(opts ...Option) *Manager {
	reg := prometheus.NewRegistry()
	m := NewManager(append(opts, WithPrometheusRegistry(reg))...)
	m.gatherer = reg
	global.Store(m)
	return m
}

func current() *Manager { return global.Load() }

// RefreshInterval returns the gauge refresh interval of the configured manager.
func RefreshInterval() time.Duration { return current().refreshInterval }

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "teammate",
		subsystem:        "formation",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// RefreshInterval returns how often gauge updaters should run.
func (m *Manager) RefreshInterval() time.Duration {
	return m.refreshInterval
}

// Enabled reports whether recording is active.
func (m *Manager) Enabled() bool {
	return m.enabled
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.customLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric definition
	auto := promauto.With(m.registry)

	m.formationRuns = auto.NewCounterVec(
		m.counterOpts("runs_total", "Team formation runs by outcome"),
		[]string{"outcome"},
	)
	m.formationDuration = auto.NewHistogram(
		m.histogramOpts("duration_milliseconds", "Team formation wall time in milliseconds", m.histogramBuckets),
	)
	m.formationTeams = auto.NewGauge(m.gaugeOpts("last_teams", "Teams produced by the last formation"))
	m.formationUnplaced = auto.NewGauge(m.gaugeOpts("last_unplaced", "Participants left unplaced by the last formation"))
	m.unplacedTotal = auto.NewCounter(m.counterOpts("unplaced_total", "Participants left unplaced across all runs"))
	m.swapsTotal = auto.NewCounter(m.counterOpts("role_swaps_total", "Role-diversity swaps applied across all runs"))

	m.participantsTotal = auto.NewGauge(m.gaugeOpts("participants", "Participants currently registered"))
	m.participantsRegistered = auto.NewCounterVec(
		m.counterOpts("participants_registered_total", "Participants registered by source"),
		[]string{"source"},
	)
	m.importLines = auto.NewCounterVec(
		m.counterOpts("import_lines_total", "Roster lines processed by result"),
		[]string{"result"},
	)
	m.importDuration = auto.NewHistogram(
		m.histogramOpts("import_duration_milliseconds", "Roster import wall time in milliseconds", m.histogramBuckets),
	)
	m.validationIssues = auto.NewGauge(m.gaugeOpts("validation_issues", "Issues found by the last roster validation"))

	m.repositoryLatency = auto.NewHistogramVec(
		m.histogramOpts("repository_latency_milliseconds", "Participant store operation latency in milliseconds", m.histogramBuckets),
		[]string{"operation"},
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Total number of errors by type"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorLatency = auto.NewHistogramVec(
		m.histogramOpts("error_latency_milliseconds", "Latency of operations that resulted in errors", m.histogramBuckets),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
			[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}),
	)
}

// Formation metrics.

// RecordFormation records a completed formation run.
func RecordFormation(durationMs float64, teams, unplaced, swaps int) {
	m := current()
	if !m.enabled {
		return
	}
	m.formationRuns.WithLabelValues(OutcomeOK).Inc()
	m.formationDuration.Observe(durationMs)
	m.formationTeams.Set(float64(teams))
	m.formationUnplaced.Set(float64(unplaced))
	m.unplacedTotal.Add(float64(unplaced))
	m.swapsTotal.Add(float64(swaps))
}

// RecordFormationOutcome counts a run that did not produce teams.
func RecordFormationOutcome(outcome string) {
	m := current()
	if !m.enabled {
		return
	}
	m.formationRuns.WithLabelValues(outcome).Inc()
}

// Roster metrics.

// UpdateParticipantsTotal sets the registered participant count.
func UpdateParticipantsTotal(count int) {
	current().participantsTotal.Set(float64(count))
}

// RecordParticipantRegistered counts a participant added from source.
func RecordParticipantRegistered(source string) {
	m := current()
	if !m.enabled {
		return
	}
	m.participantsRegistered.WithLabelValues(source).Inc()
}

// RecordImportLines adds n roster lines with the given result label.
func RecordImportLines(result string, n int) {
	m := current()
	if !m.enabled || n <= 0 {
		return
	}
	m.importLines.WithLabelValues(result).Add(float64(n))
}

// RecordImportDuration records roster import wall time.
func RecordImportDuration(durationMs float64) {
	m := current()
	if !m.enabled {
		return
	}
	m.importDuration.Observe(durationMs)
}

// UpdateValidationIssues sets the issue count of the last validation.
func UpdateValidationIssues(count int) {
	current().validationIssues.Set(float64(count))
}

// RecordRepositoryLatency records a participant store operation.
func RecordRepositoryLatency(operation string, latencyMs float64) {
	m := current()
	if !m.enabled {
		return
	}
	m.repositoryLatency.WithLabelValues(operation).Observe(latencyMs)
}

// HTTP metrics.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	m := current()
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	m := current()
	if !m.enabled {
		return
	}
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error metrics.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	m := current()
	if !m.enabled {
		return
	}
	m.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	m := current()
	if !m.enabled {
		return
	}
	m.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	m := current()
	if !m.enabled {
		return
	}
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	m := current()
	if !m.enabled {
		return
	}
	m.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System metrics.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	current().systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	current().systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	m := current()
	if !m.enabled {
		return
	}
	m.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the registry of the configured manager.
func GetRegistry() *prometheus.Registry {
	return current().gatherer
}
