package folder

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/creativeprojects/mailfolder/lib"
	"github.com/creativeprojects/mailfolder/limitio"
	"github.com/creativeprojects/mailfolder/mailbox"
)

// Backend distinguishes the storage behind a Folder: an on-disk maildir, or
// a remote IMAP folder reached through the proxy process.
type Backend int

const (
	Local Backend = iota
	Remote
)

// modTime value meaning the counts were never cached
const neverCached int64 = -1

// Folder is a single logical mail folder. For a local folder, path is the
// maildir location on disk; for a remote one it is the folder name known to
// the proxy.
//
// Message counts are cached against the last observed modification time of
// cur/ and new/, so counting is O(1) while the folder is quiescent and
// re-enumerates exactly once per observed change. The cache only lives as
// long as the Folder value.
type Folder struct {
	path    string
	backend Backend
	store   MessageStore
	proxy   ProxyClient
	log     lib.Logger

	rateLimit float64
	burst     int

	mutex    sync.Mutex
	modTime  int64
	messages uint32
	unseen   uint32
	lastName string
}

// New builds a folder from a bare path: a path starting with the separator
// is a local maildir, anything else is the name of a remote folder. The
// backend is decided once here, never re-inferred afterwards.
func New(path string, proxy ProxyClient) *Folder {
	if len(path) > 0 && path[0] == os.PathSeparator {
		return NewLocal(path)
	}
	return NewRemote(path, proxy)
}

// NewLocal builds a folder backed by the maildir at path.
func NewLocal(path string) *Folder {
	return NewLocalWithStore(path, DirStore{})
}

// NewLocalWithStore builds a local folder enumerating files through the
// given store.
func NewLocalWithStore(path string, store MessageStore) *Folder {
	return &Folder{
		path:    path,
		backend: Local,
		store:   store,
		log:     &lib.NoLog{},
		modTime: neverCached,
	}
}

// NewRemote builds a folder living on the IMAP server, reached through the
// proxy client.
func NewRemote(name string, proxy ProxyClient) *Folder {
	return &Folder{
		path:    name,
		backend: Remote,
		proxy:   proxy,
		log:     &lib.NoLog{},
		modTime: neverCached,
	}
}

// DebugLogger sets a logger to send debug information to
func (f *Folder) DebugLogger(logger lib.Logger) {
	f.log = logger
}

// SetRateLimit restricts the byte copy of a local save to bytesPerSec.
func (f *Folder) SetRateLimit(bytesPerSec float64, burst int) {
	f.rateLimit = bytesPerSec
	f.burst = burst
}

// Path returns the maildir location for a local folder, or the remote folder
// name. Use IsLocal or IsRemote to tell the difference.
func (f *Folder) Path() string {
	return f.path
}

// Name returns the folder name as displayed to the user.
func (f *Folder) Name() string {
	if f.backend == Remote {
		return f.path
	}
	return filepath.Base(f.path)
}

func (f *Folder) IsLocal() bool {
	return f.backend == Local
}

func (f *Folder) IsRemote() bool {
	return f.backend == Remote
}

// TotalMessages returns the number of messages in the folder. It never
// fails: a maildir subdirectory that cannot be read counts as empty.
func (f *Folder) TotalMessages() uint32 {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.refreshCache()
	return f.messages
}

// UnreadMessages returns the number of unread messages in the folder. Like
// TotalMessages it never fails.
func (f *Folder) UnreadMessages() uint32 {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.refreshCache()
	return f.unseen
}

// Status returns both counts in one snapshot.
func (f *Folder) Status() mailbox.Status {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.refreshCache()
	return mailbox.Status{
		Name:     f.Name(),
		Messages: f.messages,
		Unseen:   f.unseen,
	}
}

// LastModified returns the most recent modification time of cur/ and new/ in
// nanoseconds since epoch, an unstatable subdirectory counting as 0. For a
// remote folder it returns the opaque change counter driven by BumpModTime.
func (f *Folder) LastModified() int64 {
	if f.backend == Remote {
		f.mutex.Lock()
		defer f.mutex.Unlock()
		return f.modTime
	}
	return f.lastModified()
}

func (f *Folder) lastModified() int64 {
	last := int64(0)
	for _, dir := range []string{filepath.Join(f.path, "cur"), filepath.Join(f.path, "new")} {
		info, err := os.Stat(dir)
		if err != nil {
			// missing subdirectory contributes nothing
			continue
		}
		if mod := info.ModTime().UnixNano(); mod > last {
			last = mod
		}
	}
	return last
}

// refreshCache is called with the mutex held
func (f *Folder) refreshCache() {
	if f.backend == Remote {
		// remote counts are fed by SetStatus, there's nothing to observe here
		return
	}
	lastMod := f.lastModified()
	if lastMod == f.modTime {
		return
	}
	f.modTime = lastMod

	status := mailbox.Count(f.path, f.listLocal())
	f.messages = status.Messages
	f.unseen = status.Unseen
	f.log.Printf("refreshed folder %q: messages=%d unseen=%d", f.path, f.messages, f.unseen)
}

// Messages enumerates every message in the folder, ignoring any display
// limit a caller may apply. The order is whatever the filesystem (or the
// proxy) produced, callers needing a sort order have to apply their own.
func (f *Folder) Messages() ([]mailbox.Message, error) {
	if f.backend == Remote {
		if f.proxy == nil {
			return nil, lib.ErrNoProxy
		}
		return f.proxy.ListMessages(f.path)
	}
	return f.listLocal(), nil
}

func (f *Folder) listLocal() []mailbox.Message {
	result := make([]mailbox.Message, 0)
	for _, dir := range []string{filepath.Join(f.path, "cur"), filepath.Join(f.path, "new")} {
		for _, file := range f.store.Files(dir) {
			result = append(result, mailbox.NewFromFile(file))
		}
	}
	return result
}

// BumpModTime advances the change counter of a remote folder so the next
// count query is treated as stale. A remote folder has no filesystem
// timestamp to observe, so staleness is signalled by the caller instead.
// It has no effect on a local folder, where the filesystem is the only
// source of modification times.
func (f *Folder) BumpModTime() {
	if f.backend == Local {
		return
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.modTime++
}

// SetStatus stores the counts reported by the proxy for a remote folder.
// It has no effect on a local folder, where counts only come from disk.
func (f *Folder) SetStatus(status mailbox.Status) {
	if f.backend == Local {
		return
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.messages = status.Messages
	f.unseen = status.Unseen
}

// SaveMessage stores a copy of the message into this folder. A local save
// copies the backing file byte for byte under a fresh unique name in cur/
// (the copy is saved as already seen); a remote save hands the message over
// to the proxy.
func (f *Folder) SaveMessage(message mailbox.Message) error {
	if f.backend == Remote {
		if f.proxy == nil {
			return lib.ErrNoProxy
		}
		return f.proxy.SaveMessage(message.Path, f.path)
	}

	destination := f.GenerateUniqueFilename(false)
	if destination == "" {
		return fmt.Errorf("%w: %q", lib.ErrNotMaildir, f.path)
	}
	return f.copyFile(message.Path, destination)
}

func (f *Folder) copyFile(source, destination string) error {
	in, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("cannot open message %q: %w", source, err)
	}
	defer in.Close()

	var reader io.Reader = in
	if f.rateLimit > 0 {
		limited := limitio.NewReader(in)
		limited.SetRateLimit(f.rateLimit, f.burst)
		reader = limited
	}

	out, err := os.Create(destination)
	if err != nil {
		return fmt.Errorf("cannot create %q: %w", destination, err)
	}
	copied, err := io.Copy(out, reader)
	if closeErr := out.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(destination)
		return fmt.Errorf("cannot copy message to %q: %w", destination, err)
	}
	f.log.Printf("message saved: folder=%q file=%q size=%d", f.path, filepath.Base(destination), copied)
	return nil
}
