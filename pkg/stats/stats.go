package stats

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const (
	BYTE = 1 << (10 * iota)
	KILOBYTE
	MEGABYTE
	GIGABYTE
)

const statsFile = "metrics.txt"

// EnableMemoryStatistics starts a go routine that periodically logs memory
// usage of the process. Once the context is done, the registered prometheus
// metrics are dumped into the given dir, if not empty.
func EnableMemoryStatistics(ctx context.Context, interval time.Duration, dir string) {
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				PrintMemoryStatistics()
				PrintNumOfRoutines()
			case <-ctx.Done():
				if len(dir) <= 0 {
					return
				}
				if err := DumpPrometheusDefaults(filepath.Join(dir, statsFile)); err != nil {
					log.WithError(err).Warn("an error occured while dumping metrics")
				}
				return
			}
		}
	}()
}

// toMegabytes returns given memory in bytes to megabytes.
func toMegabytes(bytes uint64) float64 {
	return float64(bytes) / MEGABYTE
}

// PrintMemoryStatistics prints memory statistics using go runtime library.
func PrintMemoryStatistics() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	log.Infof(
		"Total allocated: %.3fMB, Heap allocated: %.3fMB, "+
			"Allocated objects count: %v, Freed objects count: %v",
		toMegabytes(memStats.TotalAlloc),
		toMegabytes(memStats.HeapAlloc),
		memStats.Mallocs,
		memStats.Frees,
	)
}

// DumpPrometheusDefaults appends the metrics of the default prometheus
// gatherer to the given file.
func DumpPrometheusDefaults(path string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	metricFamily, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(file)
	for _, v := range metricFamily {
		if _, err := writer.WriteString(v.String() + "\n"); err != nil {
			return err
		}
	}
	return writer.Flush()
}

// PrintNumOfRoutines prints number of go routines currently running
func PrintNumOfRoutines() {
	log.Infof("Num of go routines: %v", runtime.NumGoroutine())
}
