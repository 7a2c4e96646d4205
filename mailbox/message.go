package mailbox

import (
	"path/filepath"
	"strings"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-maildir"
)

// Message is a handle on a single message inside a folder. Path is the
// location of the backing file for local folders, or the identifier assigned
// by the proxy for remote ones. Handles are value-like: one handle is built
// per physical file at enumeration time, and handles are never deduplicated
// across repeated enumerations.
type Message struct {
	Path   string
	Unread bool
}

// NewFromFile builds a handle on a file inside a maildir. The unread state
// comes from the maildir filename convention: a file under new/, or a
// filename carrying no S (seen) flag after the ":2," marker.
func NewFromFile(path string) Message {
	return Message{
		Path:   path,
		Unread: isUnreadFilename(path),
	}
}

// NewFromProxy builds a handle on a message listed by the IMAP proxy, using
// the standard IMAP flag names.
func NewFromProxy(id string, flags []string) Message {
	unread := true
	for _, flag := range flags {
		if flag == imap.SeenFlag {
			unread = false
			break
		}
	}
	return Message{
		Path:   id,
		Unread: unread,
	}
}

func isUnreadFilename(path string) bool {
	if filepath.Base(filepath.Dir(path)) == "new" {
		return true
	}
	_, flags, found := strings.Cut(filepath.Base(path), ":2,")
	if !found {
		return true
	}
	return !strings.ContainsRune(flags, rune(maildir.FlagSeen))
}
