// Package metrics records generation runs in Prometheus text format.
//
// trackseed is a batch job, so counters are not scraped from a server:
// they are written to a textfile that a node exporter textfile collector
// (or any other reader of the exposition format) picks up.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/adyam-logistics/trackseed/pkg/trackseed"
)

const namespace = "trackseed"

// Recorder holds the metrics of a single run.
type Recorder struct {
	registry    *prometheus.Registry
	rowsRead    prometheus.Counter
	rowsSkipped prometheus.Counter
	statements  prometheus.Counter
	lastSuccess prometheus.Gauge
	migration   *prometheus.GaugeVec
	now         func() time.Time
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		rowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_read_total",
			Help:      "Data rows read from the dataset.",
		}),
		rowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_skipped_total",
			Help:      "Data rows skipped because the tracking number was blank.",
		}),
		statements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "statements_written_total",
			Help:      "Upsert statements written to the migration.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful generation.",
		}),
		migration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "migration_info",
			Help:      "Identity and content checksum of the generated migration.",
		}, []string{"migration_id", "checksum"}),
		now: time.Now,
	}
	r.registry.MustRegister(r.rowsRead, r.rowsSkipped, r.statements, r.lastSuccess, r.migration)
	return r
}

// ObserveRun records a successful run.
func (r *Recorder) ObserveRun(res trackseed.Result) {
	r.rowsRead.Add(float64(res.RowsRead))
	r.rowsSkipped.Add(float64(res.RowsSkipped))
	r.statements.Add(float64(res.Statements()))
	r.lastSuccess.Set(float64(r.now().Unix()))
	r.migration.WithLabelValues(res.MigrationID, res.Checksum).Set(1)
}

// WriteTextfile writes all metrics to path, replacing it atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

var _ trackseed.RunRecorder = (*Recorder)(nil)
