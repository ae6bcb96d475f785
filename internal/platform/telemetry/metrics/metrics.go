package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mobilefrontend"

// Recorder holds the service collectors.
type Recorder struct {
	pagesRendered  *prometheus.CounterVec
	linksDropped   prometheus.Counter
	apiDuration    *prometheus.HistogramVec
	footerPrepared *prometheus.CounterVec
	searchParams   *prometheus.CounterVec
}

// New registers the service collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		pagesRendered: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "language_pages_total",
			Help:      "Language pages rendered, by outcome.",
		}, []string{"outcome"}),
		linksDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "language_links_dropped_total",
			Help:      "Cross-language links dropped because their code has no display name.",
		}),
		apiDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Duration of action API requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		footerPrepared: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "footers_total",
			Help:      "Footers assembled, by view.",
		}, []string{"view"}),
		searchParams: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_params_total",
			Help:      "Search parameter requests, by feature and outcome.",
		}, []string{"feature", "outcome"}),
	}
}

// PageRendered counts one language page response.
func (r *Recorder) PageRendered(outcome string) {
	if r == nil {
		return
	}
	r.pagesRendered.WithLabelValues(outcome).Inc()
}

// LinksDropped counts links discarded during normalization.
func (r *Recorder) LinksDropped(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.linksDropped.Add(float64(n))
}

// ObserveAPI records the duration of one action API request.
func (r *Recorder) ObserveAPI(outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.apiDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// FooterPrepared counts one assembled footer.
func (r *Recorder) FooterPrepared(view string) {
	if r == nil {
		return
	}
	r.footerPrepared.WithLabelValues(view).Inc()
}

// SearchParams counts one search parameter request.
func (r *Recorder) SearchParams(feature, outcome string) {
	if r == nil {
		return
	}
	r.searchParams.WithLabelValues(feature, outcome).Inc()
}

// Handler exposes the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
