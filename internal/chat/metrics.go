package chat

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var toolDispatches = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "policypilot_tool_dispatches_total",
	Help: "Tool calls dispatched by tool name and outcome.",
}, []string{"tool", "outcome"})
