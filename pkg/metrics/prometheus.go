// Package metrics provides Prometheus metrics for the teamforge workspace service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Drag and collection metrics
	dragStarted         prometheus.Counter
	dragResolved        *prometheus.CounterVec
	invalidTransitions  *prometheus.CounterVec
	collectionMutations *prometheus.CounterVec
	teamSize            prometheus.Gauge
	poolSize            prometheus.Gauge
	gestureDuplicates   prometheus.Counter

	// Selector metrics
	selectorTransitions  *prometheus.CounterVec
	outsideSubscriptions prometheus.Gauge
	savedTeams           prometheus.Gauge

	// Scoring metrics
	scoringLatency       prometheus.Histogram
	scoringErrors        prometheus.Counter
	compatibilityUpdates prometheus.Counter
	staleScores          prometheus.Counter
	compatibilityScore   prometheus.Gauge

	// Queue metrics
	queueSize              prometheus.Gauge
	queueCapacity          prometheus.Gauge
	queueUtilization       prometheus.Gauge
	queueEnqueueRate       prometheus.Counter
	queueDequeueRate       prometheus.Counter
	queueEnqueueErrors     prometheus.Counter
	queueProcessingLatency prometheus.Histogram

	// Worker metrics
	workerActiveCount       prometheus.Gauge
	workerMessagesPerSecond prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrorRate         prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // exposed through GetRegistry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager. Collectors are registered on the
// configured registry; a disabled manager registers on a private one so
// recording stays safe but nothing is exported.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "teamforge",
		subsystem:        "workspace",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	if !m.enabled {
		m.registry = prometheus.NewRegistry()
	}
	m.initializeMetrics()
	return m
}

// RefreshInterval is how often gauge updaters should sample.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

// Enabled reports whether the manager exports its collectors.
func (m *Manager) Enabled() bool { return m.enabled }

func (m *Manager) name(n string) string { return m.metricPrefix + n }

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
		Buckets:     m.histogramBuckets,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.dragStarted = auto.NewCounter(m.counterOpts("drag_started_total", "Drag sessions opened"))
	m.dragResolved = auto.NewCounterVec(
		m.counterOpts("drag_resolved_total", "Drag sessions resolved by result and applied operation"),
		[]string{"result", "op"},
	)
	m.invalidTransitions = auto.NewCounterVec(
		m.counterOpts("invalid_transitions_total", "Drag events rejected by the state machine"),
		[]string{"action"},
	)
	m.collectionMutations = auto.NewCounterVec(
		m.counterOpts("collection_mutations_total", "Store mutations that changed state"),
		[]string{"op"},
	)
	m.teamSize = auto.NewGauge(m.gaugeOpts("team_size", "Candidates in the working team"))
	m.poolSize = auto.NewGauge(m.gaugeOpts("pool_size", "Candidates in the pool"))
	m.gestureDuplicates = auto.NewCounter(m.counterOpts("gesture_duplicates_total", "Gestures dropped because their event id was already applied"))

	m.selectorTransitions = auto.NewCounterVec(
		m.counterOpts("selector_transitions_total", "Selector actions"),
		[]string{"action"},
	)
	m.outsideSubscriptions = auto.NewGauge(m.gaugeOpts("outside_subscriptions", "Live outside-interaction subscriptions"))
	m.savedTeams = auto.NewGauge(m.gaugeOpts("saved_teams", "Saved teams available to the selector"))

	m.scoringLatency = auto.NewHistogram(m.histogramOpts("scoring_latency_milliseconds", "Compatibility scoring latency in milliseconds"))
	m.scoringErrors = auto.NewCounter(m.counterOpts("scoring_errors_total", "Failed compatibility scoring calls"))
	m.compatibilityUpdates = auto.NewCounter(m.counterOpts("compatibility_updates_total", "Scores accepted for the current team revision"))
	m.staleScores = auto.NewCounter(m.counterOpts("stale_scores_total", "Scores or requests dropped because the team changed"))
	m.compatibilityScore = auto.NewGauge(m.gaugeOpts("compatibility_score", "Latest accepted compatibility score"))

	m.queueSize = auto.NewGauge(m.gaugeOpts("queue_size", "Pending scoring requests"))
	m.queueCapacity = auto.NewGauge(m.gaugeOpts("queue_capacity", "Scoring queue capacity"))
	m.queueUtilization = auto.NewGauge(m.gaugeOpts("queue_utilization_percent", "Scoring queue utilization percentage"))
	m.queueEnqueueRate = auto.NewCounter(m.counterOpts("queue_enqueue_total", "Scoring requests enqueued"))
	m.queueDequeueRate = auto.NewCounter(m.counterOpts("queue_dequeue_total", "Scoring requests dequeued"))
	m.queueEnqueueErrors = auto.NewCounter(m.counterOpts("queue_enqueue_errors_total", "Scoring requests rejected by the queue"))
	m.queueProcessingLatency = auto.NewHistogram(m.histogramOpts("queue_processing_latency_milliseconds", "Enqueue latency in milliseconds"))

	m.workerActiveCount = auto.NewGauge(m.gaugeOpts("worker_active_count", "Running scoring workers"))
	m.workerMessagesPerSecond = auto.NewGauge(m.gaugeOpts("worker_messages_per_second", "Scoring requests handled per second"))
	m.workerProcessingLatency = auto.NewHistogram(m.histogramOpts("worker_processing_latency_milliseconds", "Time a worker spends on one request"))
	m.workerErrorRate = auto.NewCounter(m.counterOpts("worker_errors_total", "Worker processing errors"))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "HTTP requests by endpoint, method and status"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Errors by component and type"),
		[]string{"component", "error_type"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Errors by type and severity"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Errors by HTTP endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorLatency = auto.NewHistogramVec(
		m.histogramOpts("error_latency_milliseconds", "Latency of failed operations"),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_bytes", "Heap bytes in use"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutines", "Running goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts("system_gc_pause_milliseconds", "Most recent GC pause in milliseconds"))
}

// Drag and collection.

// RecordDragStarted counts an opened drag session.
func RecordDragStarted() { globalManager.dragStarted.Inc() }

// RecordDragResolved counts a committed or cancelled drag.
func RecordDragResolved(result, op string) {
	globalManager.dragResolved.WithLabelValues(result, op).Inc()
}

// RecordInvalidTransition counts a rejected drag event.
func RecordInvalidTransition(action string) {
	globalManager.invalidTransitions.WithLabelValues(action).Inc()
}

// RecordCollectionMutation counts a store mutation that changed state.
func RecordCollectionMutation(op string) {
	globalManager.collectionMutations.WithLabelValues(op).Inc()
}

// UpdateTeamSize sets the working team size.
func UpdateTeamSize(n int) { globalManager.teamSize.Set(float64(n)) }

// UpdatePoolSize sets the pool size.
func UpdatePoolSize(n int) { globalManager.poolSize.Set(float64(n)) }

// RecordGestureDuplicate counts a replayed gesture.
func RecordGestureDuplicate() { globalManager.gestureDuplicates.Inc() }

// Selector.

// RecordSelectorTransition counts a selector action.
func RecordSelectorTransition(action string) {
	globalManager.selectorTransitions.WithLabelValues(action).Inc()
}

// UpdateOutsideSubscriptions sets the number of live outside subscriptions.
func UpdateOutsideSubscriptions(n int) { globalManager.outsideSubscriptions.Set(float64(n)) }

// UpdateSavedTeams sets the number of saved teams.
func UpdateSavedTeams(n int) { globalManager.savedTeams.Set(float64(n)) }

// Scoring.

// RecordScoringLatency records scoring latency in milliseconds.
func RecordScoringLatency(latencyMs float64) { globalManager.scoringLatency.Observe(latencyMs) }

// RecordScoringError counts a failed scoring call.
func RecordScoringError() { globalManager.scoringErrors.Inc() }

// RecordCompatibilityUpdate counts an accepted score.
func RecordCompatibilityUpdate() { globalManager.compatibilityUpdates.Inc() }

// RecordStaleScore counts a request or result dropped for an old revision.
func RecordStaleScore() { globalManager.staleScores.Inc() }

// UpdateCompatibilityScore sets the latest accepted score.
func UpdateCompatibilityScore(score int) { globalManager.compatibilityScore.Set(float64(score)) }

// Queue.

// UpdateQueueSize sets the number of pending requests.
func UpdateQueueSize(size int) { globalManager.queueSize.Set(float64(size)) }

// UpdateQueueCapacity sets the queue capacity.
func UpdateQueueCapacity(capacity int) { globalManager.queueCapacity.Set(float64(capacity)) }

// UpdateQueueUtilization sets queue utilization as a percentage.
func UpdateQueueUtilization(utilization float64) { globalManager.queueUtilization.Set(utilization) }

// RecordQueueEnqueue counts an enqueued request.
func RecordQueueEnqueue() { globalManager.queueEnqueueRate.Inc() }

// RecordQueueDequeue counts a dequeued request.
func RecordQueueDequeue() { globalManager.queueDequeueRate.Inc() }

// RecordQueueEnqueueError counts a rejected request.
func RecordQueueEnqueueError() { globalManager.queueEnqueueErrors.Inc() }

// RecordQueueProcessingLatency records enqueue latency in milliseconds.
func RecordQueueProcessingLatency(latencyMs float64) {
	globalManager.queueProcessingLatency.Observe(latencyMs)
}

// Worker.

// UpdateWorkerActiveCount sets the number of running workers.
func UpdateWorkerActiveCount(count int) { globalManager.workerActiveCount.Set(float64(count)) }

// UpdateWorkerMessagesPerSecond sets the worker throughput.
func UpdateWorkerMessagesPerSecond(rate float64) { globalManager.workerMessagesPerSecond.Set(rate) }

// RecordWorkerProcessingLatency records per-request worker time in milliseconds.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError counts a worker error.
func RecordWorkerError() { globalManager.workerErrorRate.Inc() }

// HTTP.

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Errors.

// RecordErrorByComponent counts an error attributed to a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType counts an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint counts an error returned by an HTTP endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records how long a failing operation took.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System.

// UpdateSystemMemoryUsage sets heap usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) { globalManager.systemGoroutineCount.Set(float64(count)) }

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) { globalManager.systemGCPauseTime.Observe(pauseMs) }

// GetRegistry returns the registry the global collectors live on.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RefreshInterval is the sampling interval of the global manager.
func RefreshInterval() time.Duration { return globalManager.refreshInterval }
