package ipc

import (
	"bufio"
	"fmt"
	"net"
	"strings"
)

// Client dials the control socket for a one-shot request or a long-lived
// event subscription, used by cmd/mywmctl.
type Client struct {
	conn   net.Conn
	reader *bufio.Reader
}

// Dial connects to the control socket at path.
func Dial(path string) (*Client, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", path, err)
	}
	return &Client{conn: conn, reader: bufio.NewReader(conn)}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error { return c.conn.Close() }

// Send writes one request line and returns the next line that is not an
// asynchronous event push (an "OK"/"ERR ..." reply), per spec.md §4.6: a
// connection's own stream interleaves its command replies with broadcast
// event lines, distinguishable because every event line is a JSON object.
func (c *Client) Send(line string) (string, error) {
	if _, err := fmt.Fprintf(c.conn, "%s\n", line); err != nil {
		return "", fmt.Errorf("write request: %w", err)
	}
	for {
		resp, err := c.reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("read reply: %w", err)
		}
		resp = strings.TrimRight(resp, "\n")
		if strings.HasPrefix(resp, "{") {
			continue // an event line raced ahead of our reply; keep reading
		}
		return resp, nil
	}
}

// Subscribe reads lines forever, invoking onEvent for each JSON event line
// it sees and ignoring stray command replies (there are none, once the
// caller stops issuing Send). Blocks until the connection closes or ctx-like
// cancellation is achieved by the caller closing the client.
func (c *Client) Subscribe(onEvent func(line string)) error {
	for {
		line, err := c.reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimRight(line, "\n")
		if line == "" || !strings.HasPrefix(line, "{") {
			continue
		}
		onEvent(line)
	}
}
