package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkedscout_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	PagesFetched = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "linkedscout_pages_fetched_total",
			Help: "Total number of result pages fetched successfully.",
		},
	)
	FetchRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "linkedscout_fetch_retries_total",
			Help: "Total number of fetch attempts that were retries.",
		},
	)
	ParseAnomalies = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "linkedscout_parse_anomalies_total",
			Help: "Total number of listing containers skipped during parsing.",
		},
	)
	JobsScraped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "linkedscout_jobs_scraped_total",
			Help: "Total number of unique job listings produced by runs.",
		},
	)
	RunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "linkedscout_run_duration_seconds",
			Help:    "Duration of each search run in seconds.",
			Buckets: []float64{1, 5, 15, 60, 300, 900},
		},
	)
)

// StartMetricsServer registers the collectors and serves /metrics. Only the
// long-running watch mode calls this; one-shot commands skip it.
func StartMetricsServer(addr string) {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(PagesFetched)
	prometheus.MustRegister(FetchRetries)
	prometheus.MustRegister(ParseAnomalies)
	prometheus.MustRegister(JobsScraped)
	prometheus.MustRegister(RunDuration)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(addr, nil))
	}()
}
