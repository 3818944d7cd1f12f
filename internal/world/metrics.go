package world

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// worldMetrics — метрики генерации и стриминга мира.
//
// * world_chunks_generated_total — counter
// * world_chunk_generation_seconds — histogram
// * world_chunks_loaded_from_store_total — counter
// * world_chunks_evicted_total — counter
// * world_settlements_placed_total{type} — counter
// * world_cached_chunks — gauge
type worldMetrics struct {
	chunksGenerated   prometheus.Counter
	generationSeconds prometheus.Histogram
	chunksLoaded      prometheus.Counter
	chunksEvicted     prometheus.Counter
	settlementsPlaced *prometheus.CounterVec
	cachedChunks      prometheus.Gauge
}

var (
	metricsInstance *worldMetrics
	metricsOnce     sync.Once
)

// getWorldMetrics возвращает общий экземпляр метрик.
// Регистрация в дефолтном регистре выполняется один раз.
func getWorldMetrics() *worldMetrics {
	metricsOnce.Do(func() {
		metricsInstance = &worldMetrics{
			chunksGenerated: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "world_chunks_generated_total",
				Help: "Общее число сгенерированных чанков.",
			}),
			generationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    "world_chunk_generation_seconds",
				Help:    "Длительность генерации чанка.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			}),
			chunksLoaded: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "world_chunks_loaded_from_store_total",
				Help: "Общее число чанков, загруженных из хранилища.",
			}),
			chunksEvicted: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "world_chunks_evicted_total",
				Help: "Общее число чанков, выгруженных стримингом.",
			}),
			settlementsPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "world_settlements_placed_total",
				Help: "Общее число размещённых поселений.",
			}, []string{"type"}),
			cachedChunks: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "world_cached_chunks",
				Help: "Текущее количество чанков в кеше.",
			}),
		}

		prometheus.MustRegister(
			metricsInstance.chunksGenerated,
			metricsInstance.generationSeconds,
			metricsInstance.chunksLoaded,
			metricsInstance.chunksEvicted,
			metricsInstance.settlementsPlaced,
			metricsInstance.cachedChunks,
		)
	})
	return metricsInstance
}
