package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Счётчики одного прогона анализа; видны на /metrics отчётного сервера.
var (
	RowsParsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartprice_rows_parsed_total",
		Help: "Строки входных файлов, прошедшие разбор.",
	}, []string{"input"})

	RowsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartprice_rows_dropped_total",
		Help: "Строки, молча выпавшие из агрегации (ПК без зоны, неизвестный тариф, кривая дата).",
	}, []string{"input", "reason"})

	Recommendations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartprice_recommendations_total",
		Help: "Выданные рекомендации по действиям.",
	}, []string{"action"})
)
