package model

import (
	"fmt"
	"time"
)

// Stats is a point-in-time snapshot of the host health metrics shown on the
// panel. It is the canonical type between the collector, the renderer, and
// the preview API. Numeric fields use -1 when a reading is unavailable and
// format as "N/A".
type Stats struct {
	Hostname string
	Time     time.Time

	CPUPercent float64 // 0-100, -1 = unavailable
	CPUTempC   float64 // degrees Celsius, -1 = unavailable

	MemUsedPercent float64 // 0-100, -1 = unavailable
	MemUsedBytes   uint64
	MemTotalBytes  uint64

	DiskUsedPercent float64 // 0-100, -1 = unavailable
	DiskUsedBytes   uint64
	DiskTotalBytes  uint64

	UptimeSeconds float64 // -1 = unavailable

	Network NetworkInfo
}

// NetworkInfo describes the host's connectivity as shown on the panel.
type NetworkInfo struct {
	LANIP      string // empty = unavailable
	Internet   bool
	WifiSignal string // e.g. "-54 dBm", empty = unavailable
}

// CPUString formats CPU usage for display.
func (s *Stats) CPUString() string {
	return percentString(s.CPUPercent)
}

// TempString formats the CPU temperature for display.
func (s *Stats) TempString() string {
	if s.CPUTempC < 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1fC", s.CPUTempC)
}

// MemString formats memory usage for display.
func (s *Stats) MemString() string {
	return percentString(s.MemUsedPercent)
}

// DiskString formats disk usage for display.
func (s *Stats) DiskString() string {
	return percentString(s.DiskUsedPercent)
}

// UptimeString formats uptime as days and hours, e.g. "3d 7h".
func (s *Stats) UptimeString() string {
	if s.UptimeSeconds < 0 {
		return "N/A"
	}
	total := int64(s.UptimeSeconds)
	days := total / (24 * 3600)
	hours := (total % (24 * 3600)) / 3600
	return fmt.Sprintf("%dd %dh", days, hours)
}

// LANIPString formats the LAN address for display.
func (n NetworkInfo) LANIPString() string {
	if n.LANIP == "" {
		return "N/A"
	}
	return n.LANIP
}

// InternetString reports reachability as shown on the panel.
func (n NetworkInfo) InternetString() string {
	if n.Internet {
		return "Connected"
	}
	return "Disconnected"
}

// WifiString formats the Wi-Fi signal level for display.
func (n NetworkInfo) WifiString() string {
	if n.WifiSignal == "" {
		return "N/A"
	}
	return n.WifiSignal
}

func percentString(v float64) string {
	if v < 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", v)
}
