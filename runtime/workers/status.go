package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"

	"chat-relay/contract"
)

// StatusWorker periodically samples the relay's own process metrics and the
// live connection counts and logs them as a structured status line. It is
// the only consumer of process metrics; nothing else depends on it.
type StatusWorker struct {
	log      *slog.Logger
	registry contract.IRegistry
	interval time.Duration
}

func NewStatusWorker(log *slog.Logger, registry contract.IRegistry, interval time.Duration) *StatusWorker {
	return &StatusWorker{log: log, registry: registry, interval: interval}
}

func (w *StatusWorker) Run(ctx context.Context) error {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping status reports")
			return nil
		case <-ticker.C:
			w.report(proc)
		}
	}
}

func (w *StatusWorker) report(proc *process.Process) {
	var total, authenticated, servers int
	w.registry.ForEach(func(connID, identityID string, role contract.Role, sink contract.EventSink) {
		total++
		if identityID != "" {
			authenticated++
		}
		if role == contract.RoleServer {
			servers++
		}
	})

	cpu, err := proc.CPUPercent()
	if err != nil {
		w.log.Error("Error while finding process cpu usage", "err", err)
		return
	}
	ram, err := proc.MemoryPercent()
	if err != nil {
		w.log.Error("Error while finding process ram usage", "err", err)
		return
	}

	w.log.Info("relay status",
		"connections", total,
		"authenticated", authenticated,
		"servers", servers,
		"cpu_percent", cpu,
		"ram_percent", ram,
	)
}
