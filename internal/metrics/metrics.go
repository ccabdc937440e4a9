// Package metrics содержит инструменты Prometheus бэкенда. Все коллекторы
// регистрируются в глобальном реестре и отдаются на /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequestDuration длительность обработки запросов по маршруту.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "admin_http_request_duration_seconds",
			Help:    "Duration of admin API requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"})

	// ImportRowsTotal число загруженных строк по типу загрузки.
	ImportRowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_import_rows_total",
			Help: "Fact rows written by spreadsheet imports.",
		}, []string{"import_type"})

	// ImportFailuresTotal число неудачных загрузок по типу.
	ImportFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_import_failures_total",
			Help: "Spreadsheet imports that were rejected or failed.",
		}, []string{"import_type"})

	// AccessUpdatesTotal число применённых изменений прав.
	AccessUpdatesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "admin_access_updates_total",
			Help: "Committed subscriber entitlement updates.",
		})

	// IssuesPublishedTotal число опубликованных PDF-выпусков по серии.
	IssuesPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_issues_published_total",
			Help: "PDF issues created per news series.",
		}, []string{"series"})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		ImportRowsTotal,
		ImportFailuresTotal,
		AccessUpdatesTotal,
		IssuesPublishedTotal,
	)
}
