package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var messageProcessDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name: "chatmod_message_duration_sec",
	Help: "Total duration of chat message evaluation",
})

var messageProcessedCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "chatmod_messages_processed",
	Help: "Number of chat messages evaluated, by final outcome",
}, []string{"outcome"})

var detectorFiredCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "chatmod_detector_fired",
	Help: "Number of verdicts produced, by detector category",
}, []string{"category"})

var warningRecordCount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "chatmod_warnings_recorded",
	Help: "Number of warning marks persisted",
})
