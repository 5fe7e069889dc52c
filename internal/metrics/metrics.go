package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SubmissionsTotal counts reading submissions by final outcome.
	SubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "meter_reading_submissions_total",
		Help: "Meter reading submissions by outcome.",
	}, []string{"outcome"})

	// SubmissionFee observes the fee computed for accepted submissions.
	SubmissionFee = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "meter_reading_fee_birr",
		Help:    "Fee computed for accepted meter readings.",
		Buckets: prometheus.ExponentialBuckets(10, 2, 12),
	})
)

const (
	OutcomeAccepted  = "accepted"
	OutcomeInput     = "input_error"
	OutcomeOwnership = "ownership_error"
	OutcomeNotFound  = "not_found"
	OutcomeUpstream  = "upstream_error"
)
