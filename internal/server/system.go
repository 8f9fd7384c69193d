package server

import (
	"net/http"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"
)

type systemStatus struct {
	Status        string  `json:"status"`
	UptimeSeconds int64   `json:"uptimeSeconds"`
	Goroutines    int     `json:"goroutines"`
	Clients       int     `json:"clients"`
	AudioEnabled  bool    `json:"audioEnabled"`
	HeapAllocMB   uint64  `json:"heapAllocMb"`
	HostMemUsed   float64 `json:"hostMemUsedPercent,omitempty"`
	HostMemTotal  uint64  `json:"hostMemTotalMb,omitempty"`
}

func (s *Server) handleSystemStatus(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	resp := systemStatus{
		Status:        "running",
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
		Goroutines:    runtime.NumGoroutine(),
		Clients:       s.hub.ClientCount(),
		AudioEnabled:  s.notifier.AudioEnabled(),
		HeapAllocMB:   m.Alloc / 1024 / 1024,
	}

	if vm, err := mem.VirtualMemoryWithContext(r.Context()); err == nil {
		resp.HostMemUsed = vm.UsedPercent
		resp.HostMemTotal = vm.Total / 1024 / 1024
	} else {
		s.log.Debug("host memory unavailable", zap.Error(err))
	}

	s.writeJSON(w, http.StatusOK, resp)
}
