package metrics

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/KevinKickass/SunSpecBridge/internal/sunspec"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricNamespace = "sunspec_bridge"

	TransportSubsystem = "transport"
	SessionSubsystem   = "session"
	PollSubsystem      = "poll"
)

var (
	RegisterOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: TransportSubsystem,
			Name:      "operations_total",
			Help:      "Register reads and writes sent to the AXS Port, by result",
		},
		[]string{"op", "result"},
	)

	RegisterLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Subsystem: TransportSubsystem,
			Name:      "operation_duration_seconds",
			Help:      "Latency of single register transactions",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"op"},
	)

	RegistersRead = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: TransportSubsystem,
			Name:      "registers_read_total",
			Help:      "Number of 16-bit registers read",
		},
	)

	DiscoveryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Subsystem: SessionSubsystem,
			Name:      "discovery_duration_seconds",
			Help:      "Time from transport open to a classified deployment",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)

	DiscoveredDevices = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: SessionSubsystem,
			Name:      "devices",
			Help:      "Number of model blocks on the current chain",
		},
	)

	SessionUp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: SessionSubsystem,
			Name:      "up",
			Help:      "1 while a verified session is open",
		},
	)

	SessionFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: SessionSubsystem,
			Name:      "open_failures_total",
			Help:      "Failed session opens by reason",
		},
		[]string{"reason"},
	)

	PollCycles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: PollSubsystem,
			Name:      "cycles_total",
			Help:      "Completed poll cycles by result",
		},
		[]string{"result"},
	)
)

var (
	registry     = prometheus.NewRegistry()
	registerOnce sync.Once
)

// Register registers all metrics with the bridge registry.
func Register() {
	registerOnce.Do(func() {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			RegisterOperations,
			RegisterLatency,
			RegistersRead,
			DiscoveryDuration,
			DiscoveredDevices,
			SessionUp,
			SessionFailures,
			PollCycles,
		)
	})
}

func Registry() *prometheus.Registry {
	Register()
	return registry
}

// Handler serves the bridge registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry(), promhttp.HandlerOpts{})
}

// FailureReason maps a session open error onto a low-cardinality label.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, sunspec.ErrNotSunSpec):
		return "not_sunspec"
	case errors.Is(err, sunspec.ErrChainTooLong):
		return "chain_too_long"
	case errors.Is(err, sunspec.ErrTransport):
		return "transport"
	}
	return "other"
}

// ObserveDiscovery records a finished session open.
func ObserveDiscovery(started time.Time, devices int, err error) {
	if err != nil {
		SessionFailures.WithLabelValues(FailureReason(err)).Inc()
		SessionUp.Set(0)
		return
	}
	DiscoveryDuration.Observe(time.Since(started).Seconds())
	DiscoveredDevices.Set(float64(devices))
	SessionUp.Set(1)
}

// Instrument wraps conn so every register transaction is counted and timed.
func Instrument(conn sunspec.Conn) sunspec.Conn {
	return &instrumentedConn{Conn: conn}
}

type instrumentedConn struct {
	sunspec.Conn
}

func (c *instrumentedConn) ReadHoldingRegisters(ctx context.Context, address, quantity uint16) ([]uint16, error) {
	start := time.Now()
	words, err := c.Conn.ReadHoldingRegisters(ctx, address, quantity)
	observe("read", start, err)
	if err == nil {
		RegistersRead.Add(float64(len(words)))
	}
	return words, err
}

func (c *instrumentedConn) WriteSingleRegister(ctx context.Context, address, value uint16) error {
	start := time.Now()
	err := c.Conn.WriteSingleRegister(ctx, address, value)
	observe("write", start, err)
	return err
}

func observe(op string, start time.Time, err error) {
	RegisterLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	result := "ok"
	if err != nil {
		result = "error"
	}
	RegisterOperations.WithLabelValues(op, result).Inc()
}
