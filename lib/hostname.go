package lib

import (
	"os"
	"strings"
)

// Hostname returns the local hostname with characters unsafe in a maildir
// filename replaced. Falls back to "localhost" when the hostname cannot be
// read.
func Hostname() string {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		return "localhost"
	}
	hostname = strings.ReplaceAll(hostname, "/", "_")
	hostname = strings.ReplaceAll(hostname, ":", "_")
	return hostname
}
