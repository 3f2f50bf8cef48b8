package cct

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	readingsStored = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cct",
		Name:      "readings_stored_total",
		Help:      "Temperature readings persisted, by kind (probe or average).",
	}, []string{"kind"})

	notificationsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cct",
		Name:      "notifications_dispatched_total",
		Help:      "Notification channel sends, by channel and outcome.",
	}, []string{"channel", "outcome"})

	triggersFired = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cct",
		Name:      "triggers_fired_total",
		Help:      "Threshold and custom triggers that fired.",
	}, []string{"type"})

	livenessDisconnects = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cct",
		Name:      "liveness_disconnects_total",
		Help:      "Devices and probes marked disconnected by the liveness sweep.",
	}, []string{"kind"})

	credentialFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cct",
		Name:      "credential_failures_total",
		Help:      "Rejected device api keys and user sessions.",
	}, []string{"kind"})
)

func outcomeLabel(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
