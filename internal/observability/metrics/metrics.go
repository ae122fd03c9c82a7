package metrics

import "github.com/prometheus/client_golang/prometheus"

// FlowMetrics exposes counters for the booking flow.
type FlowMetrics struct {
	bookingsStarted   prometheus.Counter
	bookingsConfirmed prometheus.Counter
	codesSent         *prometheus.CounterVec
	codesChecked      *prometheus.CounterVec
	paymentsTotal     *prometheus.CounterVec
}

func NewFlowMetrics(reg prometheus.Registerer) *FlowMetrics {
	m := &FlowMetrics{
		bookingsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nila",
			Subsystem: "booking",
			Name:      "sessions_started_total",
			Help:      "Total booking sessions created",
		}),
		bookingsConfirmed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nila",
			Subsystem: "booking",
			Name:      "sessions_confirmed_total",
			Help:      "Total bookings confirmed after payment",
		}),
		codesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nila",
			Subsystem: "verification",
			Name:      "codes_sent_total",
			Help:      "Total verification codes issued",
		}, []string{"reason"}),
		codesChecked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nila",
			Subsystem: "verification",
			Name:      "codes_checked_total",
			Help:      "Total verification code checks",
		}, []string{"outcome"}),
		paymentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nila",
			Subsystem: "payments",
			Name:      "orders_total",
			Help:      "Total payment orders by outcome",
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsStarted, m.bookingsConfirmed, m.codesSent, m.codesChecked, m.paymentsTotal)
	return m
}

func (m *FlowMetrics) ObserveBookingStarted() {
	if m == nil {
		return
	}
	m.bookingsStarted.Inc()
}

func (m *FlowMetrics) ObserveBookingConfirmed() {
	if m == nil {
		return
	}
	m.bookingsConfirmed.Inc()
}

// ObserveCodeSent counts issued codes; reason is "initial" or "resend".
func (m *FlowMetrics) ObserveCodeSent(reason string) {
	if m == nil {
		return
	}
	m.codesSent.WithLabelValues(reason).Inc()
}

// ObserveCodeChecked counts checks; outcome is "verified", "mismatch"
// or "incomplete".
func (m *FlowMetrics) ObserveCodeChecked(outcome string) {
	if m == nil {
		return
	}
	m.codesChecked.WithLabelValues(outcome).Inc()
}

// ObservePayment counts orders; outcome is "created", "completed" or
// "cancelled".
func (m *FlowMetrics) ObservePayment(outcome string) {
	if m == nil {
		return
	}
	m.paymentsTotal.WithLabelValues(outcome).Inc()
}
