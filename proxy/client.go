package proxy

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/creativeprojects/mailfolder/folder"
	"github.com/creativeprojects/mailfolder/lib"
	"github.com/creativeprojects/mailfolder/mailbox"
)

type Config struct {
	// Socket is the path of the unix socket the proxy process listens on.
	Socket      string
	DebugLogger lib.Logger
	// Timeout applied to each request/response exchange. Zero means the
	// exchange blocks for as long as the proxy takes to answer.
	Timeout time.Duration
}

// Client talks to the external IMAP proxy process: one command per line on
// the socket, one `OK ...` or `ERR ...` status line back. The proxy owns all
// network traffic, this client only does the socket plumbing.
type Client struct {
	conn    net.Conn
	reader  *bufio.Reader
	log     lib.Logger
	timeout time.Duration
}

// verify interface
var _ folder.ProxyClient = &Client{}

func NewClient(cfg Config) (*Client, error) {
	log := cfg.DebugLogger
	if log == nil {
		log = &lib.NoLog{}
	}
	if cfg.Socket == "" {
		return nil, errors.New("missing socket path from Config object")
	}
	conn, err := net.Dial("unix", cfg.Socket)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to proxy on %q: %w", cfg.Socket, err)
	}
	log.Printf("Connected to proxy on %s", cfg.Socket)

	return &Client{
		conn:    conn,
		reader:  bufio.NewReader(conn),
		log:     log,
		timeout: cfg.Timeout,
	}, nil
}

func (c *Client) Close() error {
	c.log.Print("Closing proxy connection")
	return c.conn.Close()
}

// SaveMessage asks the proxy to store the message file into the named remote
// folder. The historical client reported success whatever the proxy
// answered; an ERR response now comes back as an error.
func (c *Client) SaveMessage(messagePath, folderName string) error {
	response, err := c.Exchange(fmt.Sprintf("save_message %s %s\n", messagePath, folderName))
	if err != nil {
		return err
	}
	return checkResponse(response)
}

// Status returns the message counts the proxy reports for a remote folder,
// from a response of the form "OK <messages> <unseen>".
func (c *Client) Status(folderName string) (mailbox.Status, error) {
	response, err := c.Exchange(fmt.Sprintf("status %s\n", folderName))
	if err != nil {
		return mailbox.Status{}, err
	}
	if err = checkResponse(response); err != nil {
		return mailbox.Status{}, err
	}
	fields := strings.Fields(response)
	if len(fields) < 3 {
		return mailbox.Status{}, fmt.Errorf("%w: unexpected status response %q", lib.ErrProxyResponse, response)
	}
	messages, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return mailbox.Status{}, fmt.Errorf("%w: unexpected status response %q", lib.ErrProxyResponse, response)
	}
	unseen, err := strconv.ParseUint(fields[2], 10, 32)
	if err != nil {
		return mailbox.Status{}, fmt.Errorf("%w: unexpected status response %q", lib.ErrProxyResponse, response)
	}
	return mailbox.Status{
		Name:     folderName,
		Messages: uint32(messages),
		Unseen:   uint32(unseen),
	}, nil
}

// ListMessages returns one handle per message in the remote folder. The
// proxy answers "OK <count>" followed by count lines of "<id> [flags...]",
// flags using the standard IMAP names.
func (c *Client) ListMessages(folderName string) ([]mailbox.Message, error) {
	response, err := c.Exchange(fmt.Sprintf("list_messages %s\n", folderName))
	if err != nil {
		return nil, err
	}
	if err = checkResponse(response); err != nil {
		return nil, err
	}
	fields := strings.Fields(response)
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: unexpected list response %q", lib.ErrProxyResponse, response)
	}
	count, err := strconv.Atoi(fields[1])
	if err != nil || count < 0 {
		return nil, fmt.Errorf("%w: unexpected list response %q", lib.ErrProxyResponse, response)
	}

	messages := make([]mailbox.Message, 0, count)
	for i := 0; i < count; i++ {
		line, err := c.readLine()
		if err != nil {
			return messages, err
		}
		fields = strings.Fields(line)
		if len(fields) == 0 {
			return messages, fmt.Errorf("%w: empty message line", lib.ErrProxyResponse)
		}
		messages = append(messages, mailbox.NewFromProxy(fields[0], lib.StripRecentFlag(fields[1:])))
	}
	return messages, nil
}

// Exchange sends one command line to the proxy and reads the status line
// back. The command has to carry its own trailing newline.
func (c *Client) Exchange(command string) (string, error) {
	if c.timeout > 0 {
		_ = c.conn.SetDeadline(time.Now().Add(c.timeout))
	}
	c.log.Printf("proxy > %q", command)
	if _, err := io.WriteString(c.conn, command); err != nil {
		return "", fmt.Errorf("cannot write to proxy: %w", err)
	}
	return c.readLine()
}

func (c *Client) readLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("cannot read from proxy: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	c.log.Printf("proxy < %q", line)
	return line, nil
}

func checkResponse(response string) error {
	if strings.HasPrefix(response, "ERR") {
		return fmt.Errorf("%w: %s", lib.ErrProxyResponse, strings.TrimSpace(strings.TrimPrefix(response, "ERR")))
	}
	return nil
}
