package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/baron-go/internal/application/mediator"
	"github.com/andrescamacho/baron-go/internal/domain/shared"
)

type performCommand struct{}

type ledgerQuery struct{}

func withRegistry(t *testing.T) {
	t.Helper()
	InitRegistry()
	t.Cleanup(func() {
		Registry = nil
		SetGlobalGameCollector(nil)
	})
}

func TestGameMetricsCollector_RecordsOutcomes(t *testing.T) {
	withRegistry(t)
	collector := NewGameMetricsCollector(func() int { return 3 })
	require.NoError(t, collector.Register())
	SetGlobalGameCollector(collector)

	RecordGameCreated("1860")
	RecordAction("bid", nil)
	RecordAction("bid", shared.NewDomainError(shared.ViolationValue, "bad bid"))
	RecordAction("pass", errors.New("storage down"))
	RecordTransactions(4)

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.gamesCreated.WithLabelValues("1860")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.actionsTotal.WithLabelValues("bid", "accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.actionsTotal.WithLabelValues("bid", "value")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.actionsTotal.WithLabelValues("pass", "error")))
	assert.Equal(t, 4.0, testutil.ToFloat64(collector.transactions))
	assert.Equal(t, 3.0, testutil.ToFloat64(collector.loadedGames))
}

func TestGlobalRecorders_NoopWithoutCollector(t *testing.T) {
	SetGlobalGameCollector(nil)

	assert.NotPanics(t, func() {
		RecordGameCreated("1860")
		RecordAction("bid", nil)
		RecordTransactions(1)
		RecordGameFinished("1860")
	})
}

func TestPrometheusMiddleware_RecordsByRequestNameAndOutcome(t *testing.T) {
	withRegistry(t)
	collector := NewRequestMetricsCollector(nil)
	require.NoError(t, collector.Register())
	middleware := PrometheusMiddleware(collector)

	accept := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return nil, nil
	}
	reject := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return nil, shared.NewDomainError(shared.ViolationProtocol, "not your turn")
	}
	_, err := middleware(context.Background(), &performCommand{}, accept)
	require.NoError(t, err)
	_, err = middleware(context.Background(), &performCommand{}, reject)
	require.Error(t, err)
	_, err = middleware(context.Background(), &ledgerQuery{}, accept)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.total.WithLabelValues("performCommand", "command", "accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.total.WithLabelValues("performCommand", "command", "protocol")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.total.WithLabelValues("ledgerQuery", "query", "accepted")))
	assert.Equal(t, 2, testutil.CollectAndCount(collector.duration))
}

func TestPrometheusMiddleware_NilCollectorPassesThrough(t *testing.T) {
	middleware := PrometheusMiddleware(nil)
	resp, err := middleware(context.Background(), &performCommand{}, func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
}

func TestRegister_WithoutRegistryIsNoop(t *testing.T) {
	Registry = nil
	assert.NoError(t, NewGameMetricsCollector(nil).Register())
	assert.NoError(t, NewRequestMetricsCollector([]float64{0.1, 1}).Register())
}
