package mailbox

// Info identifies a folder: Name is the name shown to the user (and sent to
// the proxy for remote folders), Path is the local filesystem location,
// empty for remote folders.
type Info struct {
	Name string
	Path string
}

// IsLocal indicates the folder is backed by an on-disk maildir.
func (i Info) IsLocal() bool {
	return i.Path != ""
}
