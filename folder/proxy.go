package folder

import "github.com/creativeprojects/mailfolder/mailbox"

// ProxyClient is the channel to the external process speaking IMAP on our
// behalf. Remote folders delegate message enumeration and save to it; this
// package performs no IMAP traffic itself.
//
// Calls are synchronous and carry no timeout of their own: a caller needing
// responsiveness has to set a deadline on the underlying connection.
type ProxyClient interface {
	// SaveMessage asks the proxy to store the message file into the named
	// remote folder.
	SaveMessage(messagePath, folder string) error
	// ListMessages returns one handle per message in the named remote folder.
	ListMessages(folder string) ([]mailbox.Message, error)
}
