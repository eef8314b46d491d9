package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	ChatMessageTotal           = "chat_messages_total"
	ChatBroadcastDropTotal     = "chat_broadcast_drop_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"method", "status_code"}),
		ChatMessageTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: ChatMessageTotal,
			Help: "Count of all persisted chat messages",
		}, []string{"transport"}),
		ChatBroadcastDropTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: ChatBroadcastDropTotal,
			Help: "Count of subscribers dropped during a chat broadcast",
		}, []string{"reason"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"method", "status_code"}),
	}
)
