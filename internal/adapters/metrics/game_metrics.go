package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/baron-go/internal/domain/shared"
)

// GameMetricsCollector handles game play metrics
type GameMetricsCollector struct {
	gamesCreated  *prometheus.CounterVec
	gamesFinished *prometheus.CounterVec
	actionsTotal  *prometheus.CounterVec
	transactions  prometheus.Counter
	loadedGames   prometheus.GaugeFunc
}

// NewGameMetricsCollector creates a new game metrics collector. loaded
// reports how many games are held in memory when scraped.
func NewGameMetricsCollector(loaded func() int) *GameMetricsCollector {
	if loaded == nil {
		loaded = func() int { return 0 }
	}
	return &GameMetricsCollector{
		gamesCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "games_created_total",
				Help:      "Total number of games created by rules variant",
			},
			[]string{"variant"},
		),
		gamesFinished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "games_finished_total",
				Help:      "Total number of games that ended with the bank broken",
			},
			[]string{"variant"},
		),
		actionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "actions_total",
				Help:      "Total number of submitted actions by type and outcome",
			},
			[]string{"type", "outcome"},
		),
		transactions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transactions_total",
				Help:      "Total number of ledger transactions recorded",
			},
		),
		loadedGames: prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "games_loaded",
				Help:      "Number of games currently held in memory",
			},
			func() float64 { return float64(loaded()) },
		),
	}
}

// Register registers all game metrics with the Prometheus registry
func (c *GameMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.gamesCreated,
		c.gamesFinished,
		c.actionsTotal,
		c.transactions,
		c.loadedGames,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

func (c *GameMetricsCollector) RecordGameCreated(variant string) {
	c.gamesCreated.WithLabelValues(variant).Inc()
}

func (c *GameMetricsCollector) RecordGameFinished(variant string) {
	c.gamesFinished.WithLabelValues(variant).Inc()
}

// RecordAction counts an action under "accepted", its violation class when
// the rules rejected it, or "error"
func (c *GameMetricsCollector) RecordAction(actionType string, err error) {
	c.actionsTotal.WithLabelValues(actionType, outcome(err)).Inc()
}

func (c *GameMetricsCollector) RecordTransactions(count int) {
	c.transactions.Add(float64(count))
}

func outcome(err error) string {
	if err == nil {
		return "accepted"
	}
	if violation, ok := shared.ViolationOf(err); ok {
		return string(violation)
	}
	return "error"
}
