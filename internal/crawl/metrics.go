package crawl

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var crawlOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "policypilot_crawl_jobs_total",
	Help: "Crawl jobs by terminal state.",
}, []string{"state"})
