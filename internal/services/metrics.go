package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	generations        *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	feedbackJobs       *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.SummaryVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		generations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interview_generations_total",
				Help: "Interview generation runs by flow and outcome",
			},
			[]string{"flow", "outcome"},
		),
		generationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "interview_generation_duration_seconds",
				Help:    "Wall time of a generation run",
				Buckets: []float64{1, 2.5, 5, 10, 20, 30, 60, 120},
			},
			[]string{"flow"},
		),
		feedbackJobs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "feedback_jobs_total",
				Help: "Transcript feedback jobs by final status",
			},
			[]string{"status"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpDuration: factory.NewSummaryVec(
			prometheus.SummaryOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request duration in seconds",
				Objectives: map[float64]float64{
					0.5:  0.05,
					0.9:  0.01,
					0.95: 0.005,
					0.99: 0.001,
				},
			},
			[]string{"method", "path", "status_code"},
		),
	}
}

// ObserveGeneration records one run; outcome is "success" or an ErrorKind.
func (m *Metrics) ObserveGeneration(flow, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(flow, outcome).Inc()
	m.generationDuration.WithLabelValues(flow).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveFeedbackJob(status string) {
	if m == nil {
		return
	}
	m.feedbackJobs.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveHTTP(method, path, statusCode string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, statusCode).Inc()
	m.httpDuration.WithLabelValues(method, path, statusCode).Observe(elapsed.Seconds())
}
