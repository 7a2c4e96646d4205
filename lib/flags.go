package lib

import "github.com/emersion/go-imap"

// StripRecentFlag removes the session-only \Recent flag from a list of IMAP
// flags reported by the proxy.
func StripRecentFlag(source []string) []string {
	output := make([]string, 0, len(source))
	for _, flag := range source {
		if flag == imap.RecentFlag {
			continue
		}
		output = append(output, flag)
	}
	return output
}
