// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts engine activity for operators.
type Metrics struct {
	processedCount         *prometheus.CounterVec
	certificatesIssueCount *prometheus.CounterVec
}

// NewMetrics creates and registers the engine metrics.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := Metrics{
		processedCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "validator_engine_processed_count",
				Help: "Number of entities processed, by entity type and outcome",
			},
			[]string{"entity_type", "outcome"},
		),
		certificatesIssueCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "validator_engine_certificates_issued_count",
				Help: "Number of certificates signed and dispatched, by entity type",
			},
			[]string{"entity_type"},
		),
	}

	registerer.MustRegister(m.processedCount)
	registerer.MustRegister(m.certificatesIssueCount)

	return &m
}

func (m *Metrics) observe(entityType string, outcome Outcome) {
	if m == nil {
		return
	}
	m.processedCount.WithLabelValues(entityType, outcome.String()).Inc()
	if outcome == OutcomeDispatched {
		m.certificatesIssueCount.WithLabelValues(entityType).Inc()
	}
}
