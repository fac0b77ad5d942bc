//go:build !linux

package sysinfo

import "errors"

// diskUsage is only implemented for Linux, the platform the panel hardware
// runs on. Other platforms report the reading as unavailable.
func diskUsage(string) (used, total uint64, err error) {
	return 0, 0, errors.New("disk usage not supported on this platform")
}
