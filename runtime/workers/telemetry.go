package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"

	"teamline/observability"
)

// TelemetryWorker periodically logs the core's gauges together with
// the process's own CPU and memory usage so operators can correlate
// fan-out load with resource consumption.
type TelemetryWorker struct {
	log      *slog.Logger
	monitor  *observability.Monitor
	interval time.Duration
}

func NewTelemetryWorker(log *slog.Logger, monitor *observability.Monitor, interval time.Duration) *TelemetryWorker {
	return &TelemetryWorker{log: log, monitor: monitor, interval: interval}
}

func (w *TelemetryWorker) Run(ctx context.Context) error {
	w.log.Info("Starting telemetry worker", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			rss, cpu, err := selfStats(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "err", err)
				continue
			}
			snap := w.monitor.Snapshot()
			w.log.Info("Realtime core stats",
				"active_sessions", snap.ActiveSessions,
				"events_broadcast", snap.EventsBroadcast,
				"messages_persisted", snap.MessagesPersisted,
				"events_dropped", snap.EventsDropped,
				"alloc_mem_mb", snap.AllocMemMb,
				"num_gc", snap.NumGC,
				"rss_bytes", rss,
				"cpu_percent", cpu)
		}
	}
}

// selfStats retrieves RSS and CPU usage of the current process.
func selfStats(p *process.Process) (uint64, float64, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, err
	}
	return memInfo.RSS, cpuPercent, nil
}
