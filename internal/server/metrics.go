package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chatTurns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "policypilot_chat_turns_total",
		Help: "Chat turns by outcome.",
	}, []string{"outcome"})

	pdfExports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "policypilot_pdf_exports_total",
		Help: "PDF exports by source mode and outcome.",
	}, []string{"mode", "outcome"})
)
