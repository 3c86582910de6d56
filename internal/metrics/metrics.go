package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests"},
		[]string{"route", "method", "status"},
	)
	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request duration seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	InFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "http_in_flight_requests", Help: "In-flight HTTP requests"},
	)
	LikesToggled = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "likes_toggled_total", Help: "Like toggles by direction"},
		[]string{"direction"},
	)
	FuelRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fuel_update_runs_total", Help: "Fuel price update runs by result"},
		[]string{"result"},
	)
	FuelCitiesCollected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fuel_cities_collected_total", Help: "Cities collected per source"},
		[]string{"source"},
	)
)

func MustRegister() {
	prometheus.MustRegister(RequestsTotal, ReqDuration, InFlight,
		LikesToggled, FuelRuns, FuelCitiesCollected)
}
