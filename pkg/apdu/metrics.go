package apdu

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts exchanges per instruction and outcome. A nil *Metrics records nothing.
type Metrics struct {
	Exchanges *prometheus.CounterVec
	Frames    *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg when it is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Exchanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger_ada",
			Name:      "apdu_exchanges_total",
			Help:      "APDU exchanges by instruction and status word.",
		}, []string{"instruction", "status"}),
		Frames: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ledger_ada",
			Name:      "apdu_transfer_frames",
			Help:      "Frames sent per chunked transfer.",
			Buckets:   []float64{1, 2, 4, 8, 16, 32},
		}, []string{"instruction"}),
	}

	if reg != nil {
		reg.MustRegister(m.Exchanges, m.Frames)
	}
	return m
}

func (m *Metrics) observeExchange(ins InsCode, c Classification) {
	if m == nil {
		return
	}
	status := "unknown"
	if c.HasStatus {
		status = c.Status.Hex()
	}
	m.Exchanges.WithLabelValues(ins.String(), status).Inc()
}

func (m *Metrics) observeTransfer(ins InsCode, frames int) {
	if m == nil {
		return
	}
	m.Frames.WithLabelValues(ins.String()).Observe(float64(frames))
}
