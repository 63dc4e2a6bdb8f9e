package testutil

import (
	"bytes"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"
)

// TelnetClient plays a player over a telnet connection in tests.
type TelnetClient struct {
	t    *testing.T
	conn net.Conn
	// text is everything received so far with telnet commands removed.
	text strings.Builder
	// seen is how much of text ReadUntil has already matched past.
	seen int
}

// NewTelnetClient dials addr.
//
// Postcondition: the connection is closed when the test ends.
func NewTelnetClient(t *testing.T, addr string) *TelnetClient {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		t.Fatalf("dialing %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return &TelnetClient{t: t, conn: conn}
}

// ReadUntil waits for substr to arrive after the previous match and returns
// the text received up to and including it.
func (c *TelnetClient) ReadUntil(substr string, timeout time.Duration) string {
	c.t.Helper()
	deadline := time.Now().Add(timeout)
	buf := make([]byte, 1024)
	for {
		if i := strings.Index(c.text.String()[c.seen:], substr); i >= 0 {
			end := c.seen + i + len(substr)
			out := c.text.String()[c.seen:end]
			c.seen = end
			return out
		}
		_ = c.conn.SetReadDeadline(deadline)
		n, err := c.conn.Read(buf)
		c.text.Write(StripTelnet(buf[:n]))
		if err != nil {
			c.t.Fatalf("waiting for %q: got %q: %v", substr, c.text.String()[c.seen:], err)
		}
	}
}

// Send writes text and CRLF.
func (c *TelnetClient) Send(text string) {
	c.t.Helper()
	_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if _, err := fmt.Fprintf(c.conn, "%s\r\n", text); err != nil {
		c.t.Fatalf("sending %q: %v", text, err)
	}
}

// Close hangs up.
func (c *TelnetClient) Close() {
	_ = c.conn.Close()
}

// StripTelnet drops telnet commands from a chunk. A command split across
// chunks is not reassembled; the servers under test only negotiate at the
// start of a connection.
func StripTelnet(p []byte) []byte {
	const (
		iac = 255
		sb  = 250
		se  = 240
	)
	var out bytes.Buffer
	for i := 0; i < len(p); i++ {
		if p[i] != iac || i+1 >= len(p) {
			out.WriteByte(p[i])
			continue
		}
		switch cmd := p[i+1]; {
		case cmd == iac:
			out.WriteByte(iac)
			i++
		case cmd >= 251:
			i += 2
		case cmd == sb:
			j := bytes.Index(p[i:], []byte{iac, se})
			if j < 0 {
				return out.Bytes()
			}
			i += j + 1
		default:
			i++
		}
	}
	return out.Bytes()
}
