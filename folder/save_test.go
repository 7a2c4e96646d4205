package folder

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creativeprojects/mailfolder/lib"
	"github.com/creativeprojects/mailfolder/mailbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProxy struct {
	savedPath   string
	savedFolder string
	saveErr     error
	listed      []mailbox.Message
}

func (p *fakeProxy) SaveMessage(messagePath, folder string) error {
	p.savedPath = messagePath
	p.savedFolder = folder
	return p.saveErr
}

func (p *fakeProxy) ListMessages(folder string) ([]mailbox.Message, error) {
	return p.listed, nil
}

func TestSaveMessageLocal(t *testing.T) {
	root := newMaildir(t)
	source := filepath.Join(t.TempDir(), "message.eml")
	content := lib.GenerateEmail("from@example.org", "to@example.org", 11)
	require.NoError(t, os.WriteFile(source, content, 0600))

	mdir := NewLocal(root)
	err := mdir.SaveMessage(mailbox.Message{Path: source})
	require.NoError(t, err)

	// the copy is saved as already seen, under cur/
	files := DirStore{}.Files(filepath.Join(root, "cur"))
	require.Len(t, files, 1)
	assert.True(t, strings.HasSuffix(files[0], ",S"))

	saved, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Equal(t, content, saved)
}

func TestSaveMessageWithRateLimit(t *testing.T) {
	root := newMaildir(t)
	source := filepath.Join(t.TempDir(), "message.eml")
	content := lib.GenerateEmail("from@example.org", "to@example.org", 12)
	require.NoError(t, os.WriteFile(source, content, 0600))

	mdir := NewLocal(root)
	mdir.SetRateLimit(1024*1024, 64*1024)
	require.NoError(t, mdir.SaveMessage(mailbox.Message{Path: source}))

	files := DirStore{}.Files(filepath.Join(root, "cur"))
	require.Len(t, files, 1)
	saved, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Equal(t, content, saved)
}

func TestSaveMessageMissingSource(t *testing.T) {
	mdir := NewLocal(newMaildir(t))
	err := mdir.SaveMessage(mailbox.Message{Path: "/does/not/exist.eml"})
	require.Error(t, err)
}

func TestSaveMessageOutsideMaildir(t *testing.T) {
	source := filepath.Join(t.TempDir(), "message.eml")
	require.NoError(t, os.WriteFile(source, []byte("body"), 0600))

	mdir := NewLocal(t.TempDir())
	err := mdir.SaveMessage(mailbox.Message{Path: source})
	assert.ErrorIs(t, err, lib.ErrNotMaildir)
}

func TestSaveMessageDispatchesToProxy(t *testing.T) {
	proxy := &fakeProxy{}
	// no leading path separator: this is a remote folder name
	mdir := New("INBOX", proxy)

	err := mdir.SaveMessage(mailbox.Message{Path: "/tmp/message.eml"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/message.eml", proxy.savedPath)
	assert.Equal(t, "INBOX", proxy.savedFolder)
}

func TestSaveMessageSurfacesProxyError(t *testing.T) {
	proxy := &fakeProxy{saveErr: lib.ErrProxyResponse}
	mdir := NewRemote("INBOX", proxy)

	err := mdir.SaveMessage(mailbox.Message{Path: "/tmp/message.eml"})
	assert.ErrorIs(t, err, lib.ErrProxyResponse)
}

func TestRemoteMessagesComeFromProxy(t *testing.T) {
	proxy := &fakeProxy{listed: []mailbox.Message{
		{Path: "1", Unread: true},
		{Path: "2", Unread: false},
	}}
	mdir := NewRemote("INBOX", proxy)

	messages, err := mdir.Messages()
	require.NoError(t, err)
	require.Len(t, messages, 2)

	// the remote count cache is never fed by a listing: counts displayed
	// alongside one come from the listing itself
	status := mailbox.Count(mdir.Name(), messages)
	assert.Equal(t, uint32(2), status.Messages)
	assert.Equal(t, uint32(1), status.Unseen)
}
