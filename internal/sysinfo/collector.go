// Package sysinfo collects host health metrics from the Linux proc and sys
// filesystems plus lightweight network probes. Individual readings that fail
// degrade to their unavailable sentinel instead of failing the whole
// snapshot; only an unreadable /proc/stat is reported as an error.
package sysinfo

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tinytelemetry/inkstat/internal/model"
)

// Options configures a Collector. Zero values select the live system paths.
type Options struct {
	ProcPath      string // defaults to /proc
	SysPath       string // defaults to /sys
	DiskPath      string // filesystem to report, defaults to /
	WifiInterface string // defaults to wlan0

	// ProbeAddr is dialed over UDP to discover the outbound LAN address.
	// No packet is sent; the kernel just picks a source address.
	ProbeAddr string // defaults to 8.8.8.8:80

	// InternetAddr is dialed over TCP to check reachability.
	InternetAddr    string        // defaults to 8.8.8.8:53
	InternetTimeout time.Duration // defaults to 3s
}

func (o *Options) applyDefaults() {
	if o.ProcPath == "" {
		o.ProcPath = "/proc"
	}
	if o.SysPath == "" {
		o.SysPath = "/sys"
	}
	if o.DiskPath == "" {
		o.DiskPath = "/"
	}
	if o.WifiInterface == "" {
		o.WifiInterface = "wlan0"
	}
	if o.ProbeAddr == "" {
		o.ProbeAddr = "8.8.8.8:80"
	}
	if o.InternetAddr == "" {
		o.InternetAddr = "8.8.8.8:53"
	}
	if o.InternetTimeout <= 0 {
		o.InternetTimeout = 3 * time.Second
	}
}

// Collector reads host metrics on demand. It keeps the previous /proc/stat
// sample so CPU usage is computed as a delta between snapshots; the first
// snapshot primes the sample and reports CPU as unavailable.
type Collector struct {
	opts Options

	mu        sync.Mutex
	prevBusy  uint64
	prevTotal uint64
	primed    bool
	warned    map[string]bool
}

// NewCollector creates a Collector with the given options.
func NewCollector(opts Options) *Collector {
	opts.applyDefaults()
	return &Collector{
		opts:   opts,
		warned: make(map[string]bool),
	}
}

// Snapshot gathers current host metrics. It fails only when /proc/stat
// cannot be read; every other reading degrades to its unavailable sentinel.
func (c *Collector) Snapshot() (*model.Stats, error) {
	st := &model.Stats{
		Time:            time.Now(),
		CPUPercent:      -1,
		CPUTempC:        -1,
		MemUsedPercent:  -1,
		DiskUsedPercent: -1,
		UptimeSeconds:   -1,
	}

	data, err := os.ReadFile(filepath.Join(c.opts.ProcPath, "stat"))
	if err != nil {
		return nil, fmt.Errorf("sysinfo: read proc stat: %w", err)
	}
	busy, total, err := parseCPUStat(data)
	if err != nil {
		return nil, fmt.Errorf("sysinfo: parse proc stat: %w", err)
	}
	st.CPUPercent = c.cpuDelta(busy, total)

	if host, err := os.Hostname(); err == nil {
		st.Hostname = host
	} else {
		c.warnOnce("hostname", "hostname unavailable: %v", err)
	}

	if data, err := os.ReadFile(filepath.Join(c.opts.ProcPath, "meminfo")); err != nil {
		c.warnOnce("meminfo", "meminfo unavailable: %v", err)
	} else if total, avail, err := parseMemInfo(data); err != nil {
		c.warnOnce("meminfo-parse", "meminfo unparsable: %v", err)
	} else if total > 0 {
		st.MemTotalBytes = total
		st.MemUsedBytes = total - avail
		st.MemUsedPercent = float64(st.MemUsedBytes) / float64(total) * 100
	}

	if used, total, err := diskUsage(c.opts.DiskPath); err != nil {
		c.warnOnce("disk", "disk usage unavailable for %s: %v", c.opts.DiskPath, err)
	} else if total > 0 {
		st.DiskTotalBytes = total
		st.DiskUsedBytes = used
		st.DiskUsedPercent = float64(used) / float64(total) * 100
	}

	thermal := filepath.Join(c.opts.SysPath, "class", "thermal", "thermal_zone0", "temp")
	if data, err := os.ReadFile(thermal); err != nil {
		c.warnOnce("thermal", "cpu temperature unavailable: %v", err)
	} else if temp, err := parseThermal(data); err != nil {
		c.warnOnce("thermal-parse", "cpu temperature unparsable: %v", err)
	} else {
		st.CPUTempC = temp
	}

	if data, err := os.ReadFile(filepath.Join(c.opts.ProcPath, "uptime")); err != nil {
		c.warnOnce("uptime", "uptime unavailable: %v", err)
	} else if up, err := parseUptime(data); err != nil {
		c.warnOnce("uptime-parse", "uptime unparsable: %v", err)
	} else {
		st.UptimeSeconds = up
	}

	st.Network = c.networkInfo()

	return st, nil
}

// cpuDelta converts a busy/total tick sample into a usage percentage against
// the previous sample.
func (c *Collector) cpuDelta(busy, total uint64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	prevBusy, prevTotal, primed := c.prevBusy, c.prevTotal, c.primed
	c.prevBusy, c.prevTotal, c.primed = busy, total, true

	if !primed || total <= prevTotal {
		return -1
	}
	dBusy := float64(busy - prevBusy)
	dTotal := float64(total - prevTotal)
	pct := dBusy / dTotal * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}

// warnOnce logs a degraded reading once per distinct key so a permanently
// missing sensor does not flood the log at every update interval.
func (c *Collector) warnOnce(key, format string, args ...interface{}) {
	c.mu.Lock()
	seen := c.warned[key]
	c.warned[key] = true
	c.mu.Unlock()
	if !seen {
		log.Printf("sysinfo: "+format, args...)
	}
}
