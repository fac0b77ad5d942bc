package sysinfo

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// parseCPUStat extracts busy and total tick counts from the aggregate "cpu"
// line of /proc/stat. Busy excludes idle and iowait.
func parseCPUStat(data []byte) (busy, total uint64, err error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 5 || fields[0] != "cpu" {
			continue
		}
		ticks := make([]uint64, 0, len(fields)-1)
		for _, f := range fields[1:] {
			v, err := strconv.ParseUint(f, 10, 64)
			if err != nil {
				return 0, 0, fmt.Errorf("cpu tick %q: %w", f, err)
			}
			ticks = append(ticks, v)
		}
		for _, v := range ticks {
			total += v
		}
		busy = total
		// Field order: user nice system idle iowait ...
		if len(ticks) > 3 {
			busy -= ticks[3]
		}
		if len(ticks) > 4 {
			busy -= ticks[4]
		}
		return busy, total, nil
	}
	return 0, 0, errors.New("no aggregate cpu line")
}

// parseMemInfo extracts MemTotal and MemAvailable from /proc/meminfo,
// converted from kB to bytes.
func parseMemInfo(data []byte) (total, available uint64, err error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		var dst *uint64
		switch fields[0] {
		case "MemTotal:":
			dst = &total
		case "MemAvailable:":
			dst = &available
		default:
			continue
		}
		v, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("meminfo value %q: %w", fields[1], err)
		}
		*dst = v * 1024
		if total > 0 && available > 0 {
			break
		}
	}
	if total == 0 {
		return 0, 0, errors.New("MemTotal not found")
	}
	return total, available, nil
}

// parseUptime extracts the uptime in seconds from /proc/uptime.
func parseUptime(data []byte) (float64, error) {
	fields := strings.Fields(string(data))
	if len(fields) < 1 {
		return 0, errors.New("empty uptime")
	}
	return strconv.ParseFloat(fields[0], 64)
}

// parseThermal converts a millidegree reading from
// /sys/class/thermal/thermal_zone0/temp to degrees Celsius.
func parseThermal(data []byte) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	if err != nil {
		return 0, err
	}
	return v / 1000.0, nil
}

// parseWireless extracts the signal level for iface from /proc/net/wireless.
// The level column is reported in dBm with a trailing dot, e.g. "-56.".
func parseWireless(data []byte, iface string) (string, bool) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) < 4 || !strings.HasPrefix(fields[0], iface+":") {
			continue
		}
		level := strings.TrimSuffix(fields[3], ".")
		if level == "" {
			return "", false
		}
		return level + " dBm", true
	}
	return "", false
}
