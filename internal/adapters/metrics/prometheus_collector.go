package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "baron"
	// Subsystem for daemon metrics
	subsystem = "daemon"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalGameCollector is the singleton game metrics collector
	// Set by SetGlobalGameCollector() when metrics are enabled
	globalGameCollector GameMetricsRecorder
)

// GameMetricsRecorder defines the interface for recording game events
// This interface is used by application code to record metrics
type GameMetricsRecorder interface {
	RecordGameCreated(variant string)
	RecordAction(actionType string, err error)
	RecordTransactions(count int)
	RecordGameFinished(variant string)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalGameCollector sets the global game metrics collector
func SetGlobalGameCollector(collector GameMetricsRecorder) {
	globalGameCollector = collector
}

// RecordGameCreated records a new game globally
func RecordGameCreated(variant string) {
	if globalGameCollector != nil {
		globalGameCollector.RecordGameCreated(variant)
	}
}

// RecordAction records an accepted or rejected action globally
func RecordAction(actionType string, err error) {
	if globalGameCollector != nil {
		globalGameCollector.RecordAction(actionType, err)
	}
}

// RecordTransactions records journal transactions produced by an action globally
func RecordTransactions(count int) {
	if globalGameCollector != nil {
		globalGameCollector.RecordTransactions(count)
	}
}

// RecordGameFinished records a game reaching its end globally
func RecordGameFinished(variant string) {
	if globalGameCollector != nil {
		globalGameCollector.RecordGameFinished(variant)
	}
}
