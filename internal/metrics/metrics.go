// Package metrics holds Prometheus instruments that are used across the
// application.  All collectors are registered with the global registry,
// so importing this package in main.go is enough to expose them on
// /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	IntakeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summit_intake_total",
			Help: "Cumulative number of accepted public submissions.",
		}, []string{"kind"})

	IntakeFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summit_intake_failures_total",
			Help: "Cumulative number of rejected or failed submissions.",
		}, []string{"kind"})

	TransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summit_status_transitions_total",
			Help: "Cumulative number of admin status transitions.",
		}, []string{"kind"})

	DeletesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summit_deletes_total",
			Help: "Cumulative number of admin record deletions.",
		}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(
		IntakeTotal,
		IntakeFailuresTotal,
		TransitionsTotal,
		DeletesTotal,
	)
}
