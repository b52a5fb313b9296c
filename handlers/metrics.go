package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leafblast_api_analyses_total",
		Help: "Total number of image analyses served, by predicted label.",
	}, []string{"predicted"})
	analysesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leafblast_api_analyses_failed_total",
		Help: "Total number of analysis requests that could not be completed.",
	})
	auditRowsLogged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leafblast_api_audit_rows_logged_total",
		Help: "Total number of rows appended to the prediction audit log.",
	})
)
