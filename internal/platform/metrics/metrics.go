package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	voteRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "enquetes_vote_requests_total",
		Help: "Total de tentativas de voto por resultado",
	}, []string{"status"})

	voteAdmissionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "enquetes_vote_admission_duration_seconds",
		Help:    "Tempo para validar e gravar um voto",
		Buckets: prometheus.DefBuckets,
	})

	pollOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "enquetes_poll_operations_total",
		Help: "Operacoes sobre enquetes por tipo e resultado",
	}, []string{"operation", "status"})

	loginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "enquetes_login_attempts_total",
		Help: "Tentativas de login por resultado",
	}, []string{"status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "enquetes_http_request_duration_seconds",
		Help:    "Duracao das requisicoes HTTP",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method", "code"})
)

func ObserveVoteRequest(status string) {
	voteRequestsTotal.WithLabelValues(status).Inc()
}

func ObserveAdmissionDuration(seconds float64) {
	voteAdmissionDuration.Observe(seconds)
}

func ObservePollOperation(operation, status string) {
	pollOperationsTotal.WithLabelValues(operation, status).Inc()
}

func ObserveLoginAttempt(status string) {
	loginAttemptsTotal.WithLabelValues(status).Inc()
}

func ObserveHTTPRequest(route, method string, code int, seconds float64) {
	httpRequestDuration.WithLabelValues(route, method, strconv.Itoa(code)).Observe(seconds)
}
