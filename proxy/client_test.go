package proxy

import (
	"bufio"
	"net"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creativeprojects/mailfolder/lib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProxyServer accepts one connection on a unix socket and answers each
// command with a scripted response. An empty response means stay silent.
type fakeProxyServer struct {
	listener net.Listener
	respond  func(command string) string

	mutex    sync.Mutex
	received []string
}

func startFakeProxy(t *testing.T, respond func(command string) string) (*fakeProxyServer, string) {
	t.Helper()
	socket := filepath.Join(t.TempDir(), "proxy.sock")
	listener, err := net.Listen("unix", socket)
	require.NoError(t, err)

	server := &fakeProxyServer{
		listener: listener,
		respond:  respond,
	}
	go server.serve()
	t.Cleanup(func() {
		_ = listener.Close()
	})
	return server, socket
}

func (s *fakeProxyServer) serve() {
	conn, err := s.listener.Accept()
	if err != nil {
		return
	}
	defer conn.Close()

	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		s.mutex.Lock()
		s.received = append(s.received, line)
		s.mutex.Unlock()

		response := s.respond(strings.TrimRight(line, "\n"))
		if response == "" {
			continue
		}
		if _, err = conn.Write([]byte(response)); err != nil {
			return
		}
	}
}

func (s *fakeProxyServer) commands() []string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return append([]string(nil), s.received...)
}

func newTestClient(t *testing.T, socket string) *Client {
	t.Helper()
	client, err := NewClient(Config{
		Socket:      socket,
		DebugLogger: lib.NewTestLogger(t, "proxy"),
		Timeout:     5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func TestClientNeedsASocket(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)
}

func TestClientCannotConnect(t *testing.T) {
	_, err := NewClient(Config{Socket: filepath.Join(t.TempDir(), "missing.sock")})
	require.Error(t, err)
}

func TestSaveMessageCommandText(t *testing.T) {
	server, socket := startFakeProxy(t, func(command string) string {
		return "OK\n"
	})
	client := newTestClient(t, socket)

	err := client.SaveMessage("/tmp/message.eml", "INBOX")
	require.NoError(t, err)
	assert.Equal(t, []string{"save_message /tmp/message.eml INBOX\n"}, server.commands())
}

func TestSaveMessageErrorResponse(t *testing.T) {
	_, socket := startFakeProxy(t, func(command string) string {
		return "ERR no such folder\n"
	})
	client := newTestClient(t, socket)

	err := client.SaveMessage("/tmp/message.eml", "Nowhere")
	assert.ErrorIs(t, err, lib.ErrProxyResponse)
	assert.Contains(t, err.Error(), "no such folder")
}

func TestStatus(t *testing.T) {
	_, socket := startFakeProxy(t, func(command string) string {
		assert.Equal(t, "status INBOX", command)
		return "OK 10 4\n"
	})
	client := newTestClient(t, socket)

	status, err := client.Status("INBOX")
	require.NoError(t, err)
	assert.Equal(t, "INBOX", status.Name)
	assert.Equal(t, uint32(10), status.Messages)
	assert.Equal(t, uint32(4), status.Unseen)
}

func TestStatusUnexpectedResponse(t *testing.T) {
	_, socket := startFakeProxy(t, func(command string) string {
		return "OK ten four\n"
	})
	client := newTestClient(t, socket)

	_, err := client.Status("INBOX")
	assert.ErrorIs(t, err, lib.ErrProxyResponse)
}

func TestListMessages(t *testing.T) {
	_, socket := startFakeProxy(t, func(command string) string {
		assert.Equal(t, "list_messages INBOX", command)
		return "OK 2\n1201 \\Seen \\Recent\n1202\n"
	})
	client := newTestClient(t, socket)

	messages, err := client.ListMessages("INBOX")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "1201", messages[0].Path)
	assert.False(t, messages[0].Unread)
	assert.Equal(t, "1202", messages[1].Path)
	assert.True(t, messages[1].Unread)
}

func TestExchangeTimesOutOnSilentProxy(t *testing.T) {
	_, socket := startFakeProxy(t, func(command string) string {
		// never answer
		return ""
	})
	client, err := NewClient(Config{
		Socket:  socket,
		Timeout: 100 * time.Millisecond,
	})
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Exchange("status INBOX\n")
	require.Error(t, err)
}
