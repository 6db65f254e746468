package calculator

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK             = "ok"
	outcomeInvalidInput   = "invalid_input"
	outcomeDivisionByZero = "division_by_zero"
	outcomeTooLong        = "too_long"
	outcomeError          = "error"
)

// Metrics records evaluation outcomes in Prometheus. A nil *Metrics records
// nothing.
type Metrics struct {
	evaluations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics creates the calculator collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "calculator",
			Name:      "evaluations_total",
			Help:      "Number of evaluated expressions by notation and outcome.",
		}, []string{"notation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "calculator",
			Name:      "evaluation_duration_seconds",
			Help:      "Time spent evaluating expressions.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"notation"}),
	}

	for _, c := range []prometheus.Collector{m.evaluations, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "failed to register calculator metrics")
		}
	}

	return m, nil
}

func (m *Metrics) observe(n Notation, err error, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.evaluations.WithLabelValues(n.String(), outcome(err)).Inc()
	if elapsed > 0 {
		m.duration.WithLabelValues(n.String()).Observe(elapsed.Seconds())
	}
}

func outcome(err error) string {
	cause := errors.Cause(err)
	switch {
	case err == nil:
		return outcomeOK
	case IsInputError(cause):
		return outcomeInvalidInput
	case cause == ErrDivisionByZero:
		return outcomeDivisionByZero
	case cause == ErrExpressionTooLong:
		return outcomeTooLong
	default:
		return outcomeError
	}
}
