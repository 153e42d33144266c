package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "voxbuild"

// Виды ошибок для encode_errors_total
const (
	KindOverflow = "overflow"
	KindIndex    = "index"
	KindASCII    = "ascii"
	KindEmpty    = "empty_shape"
	KindIO       = "io"
	KindOther    = "other"
)

// BuildMetrics собирает Prometheus-метрики сборки сцен.
// Метрики живут в собственном реестре, глобальный не трогается.
type BuildMetrics struct {
	registry *prometheus.Registry

	scenesWritten prometheus.Counter
	shapes        prometheus.Counter
	voxels        prometheus.Counter
	bytesWritten  prometheus.Counter
	encodeErrors  *prometheus.CounterVec
	encodeTime    prometheus.Histogram
}

// NewBuildMetrics создаёт и регистрирует метрики
func NewBuildMetrics() *BuildMetrics {
	m := &BuildMetrics{
		registry: prometheus.NewRegistry(),
		scenesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scenes_written_total",
			Help:      "Число записанных файлов сцен.",
		}),
		shapes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shapes_total",
			Help:      "Число фигур в записанных сценах.",
		}),
		voxels: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "voxels_total",
			Help:      "Число вокселей в записанных сценах.",
		}),
		bytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_written_total",
			Help:      "Байт записано на диск, включая сжатые копии.",
		}),
		encodeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "encode_errors_total",
			Help:      "Ошибки сборки и кодирования по видам.",
		}, []string{"kind"}),
		encodeTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "encode_duration_seconds",
			Help:      "Длительность кодирования сцены.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}

	m.registry.MustRegister(m.scenesWritten, m.shapes, m.voxels, m.bytesWritten, m.encodeErrors, m.encodeTime)
	return m
}

// Registry возвращает реестр метрик
func (m *BuildMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveEncode фиксирует длительность кодирования
func (m *BuildMetrics) ObserveEncode(d time.Duration) {
	m.encodeTime.Observe(d.Seconds())
}

// SceneWritten учитывает записанную сцену
func (m *BuildMetrics) SceneWritten(shapes, voxels, bytes int) {
	m.scenesWritten.Inc()
	m.shapes.Add(float64(shapes))
	m.voxels.Add(float64(voxels))
	m.bytesWritten.Add(float64(bytes))
}

// EncodeError учитывает ошибку заданного вида
func (m *BuildMetrics) EncodeError(kind string) {
	m.encodeErrors.WithLabelValues(kind).Inc()
}

// WriteTextfile выгружает метрики в файл для textfile-коллектора node_exporter
func (m *BuildMetrics) WriteTextfile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("не удалось создать директорию %s: %w", dir, err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("ошибка записи метрик %s: %w", path, err)
	}
	return nil
}
