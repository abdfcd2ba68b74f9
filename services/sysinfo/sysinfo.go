// Package sysinfo feeds the hardware-info demo with real host metrics, the
// PC stand-in for the firmware's system status task.
package sysinfo

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"

	"eecsim-go/event"
	"eecsim-go/logx"
)

// Snapshot is the last collected host state, read by the sysinfo screen.
type Snapshot struct {
	RunID      string
	Hostname   string
	Platform   string
	UptimeSec  uint64
	CPUPercent float64
	MemPercent float64
	MemUsedMB  uint64
	MemTotalMB uint64
	DiskPct    float64
	At         time.Time
}

// Service collects host metrics every interval ticks and publishes a
// system-status event with a condensed summary. Collection errors are
// logged and the previous snapshot is kept. Snapshot is safe to call from
// other goroutines; everything else belongs to the frame loop.
type Service struct {
	bus      *event.Bus
	log      *logx.Logger
	interval int
	ticks    int

	mu   sync.Mutex
	snap Snapshot
}

// New creates the service. interval is in frame ticks; values below one
// collect every tick.
func New(b *event.Bus, log *logx.Logger, interval int) *Service {
	if interval < 1 {
		interval = 1
	}
	s := &Service{bus: b, log: log, interval: interval}
	s.snap.RunID = uuid.NewString()
	s.collect()
	return s
}

// Snapshot returns the last collected state.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

func (s *Service) Tick() {
	s.ticks++
	if s.ticks%s.interval != 0 {
		return
	}
	s.collect()
	snap := s.Snapshot()
	p := event.Payload{
		Num: int32(snap.CPUPercent),
		Str: fmt.Sprintf("cpu=%.0f%% mem=%.0f%% up=%ds",
			snap.CPUPercent, snap.MemPercent, snap.UptimeSec),
	}
	_ = s.bus.Publish(event.SystemStatus, &p)
}

// collect samples the host outside the lock and swaps the snapshot in
// whole, so readers never see a half-written one.
func (s *Service) collect() {
	snap := s.Snapshot()
	snap.At = time.Now()

	if hi, err := host.Info(); err == nil {
		snap.Hostname = hi.Hostname
		snap.Platform = hi.Platform
		snap.UptimeSec = hi.Uptime
	} else if s.log != nil {
		s.log.Debugf("sysinfo: host info: %v", err)
	}

	// Non-blocking sample; the first call returns 0 until a baseline exists.
	if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
		snap.CPUPercent = pct[0]
	} else if err != nil && s.log != nil {
		s.log.Debugf("sysinfo: cpu percent: %v", err)
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		snap.MemPercent = vm.UsedPercent
		snap.MemUsedMB = vm.Used / (1 << 20)
		snap.MemTotalMB = vm.Total / (1 << 20)
	} else if s.log != nil {
		s.log.Debugf("sysinfo: virtual memory: %v", err)
	}

	if du, err := disk.Usage("/"); err == nil {
		snap.DiskPct = du.UsedPercent
	} else if s.log != nil {
		s.log.Debugf("sysinfo: disk usage: %v", err)
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}
