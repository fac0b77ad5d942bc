package sysinfo

import (
	"net"
	"os"
	"path/filepath"

	"github.com/tinytelemetry/inkstat/internal/model"
)

// networkInfo probes the host's connectivity: outbound LAN address, internet
// reachability, and Wi-Fi signal level.
func (c *Collector) networkInfo() model.NetworkInfo {
	info := model.NetworkInfo{}

	// Dialing UDP does not send anything; it only makes the kernel choose
	// the source address it would route through.
	if conn, err := net.Dial("udp", c.opts.ProbeAddr); err != nil {
		c.warnOnce("lan-ip", "LAN address unavailable: %v", err)
	} else {
		if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
			info.LANIP = addr.IP.String()
		}
		conn.Close()
	}

	if conn, err := net.DialTimeout("tcp", c.opts.InternetAddr, c.opts.InternetTimeout); err == nil {
		info.Internet = true
		conn.Close()
	}

	wireless := filepath.Join(c.opts.ProcPath, "net", "wireless")
	if data, err := os.ReadFile(wireless); err != nil {
		c.warnOnce("wireless", "wifi signal unavailable: %v", err)
	} else if signal, ok := parseWireless(data, c.opts.WifiInterface); ok {
		info.WifiSignal = signal
	}

	return info
}
