// Package telnet serves the console game over raw TCP telnet connections.
package telnet

import (
	"bufio"
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/cory-johannsen/underbrush/internal/frontend/console"
)

// Telnet command bytes (RFC 854).
const (
	IAC  byte = 255
	DONT byte = 254
	DO   byte = 253
	WONT byte = 252
	WILL byte = 251
	SB   byte = 250
	GA   byte = 249
	EL   byte = 248
	EC   byte = 247
	NOP  byte = 241
	SE   byte = 240

	OptEcho            byte = 1
	OptSuppressGoAhead byte = 3
	OptLinemode        byte = 34
)

// Line editing bytes a client in character mode may send.
const (
	ctrlD     byte = 4
	backspace byte = 8
	del       byte = 127
)

// maxLine caps one input line; longer input is cut off.
const maxLine = 1024

// Conn is one telnet client seen as a line terminal.
type Conn struct {
	raw    net.Conn
	reader *bufio.Reader
	// afterCR is set once a CR ended a line; a LF or NUL right after it is
	// part of that terminator.
	afterCR bool

	mu           sync.Mutex
	readTimeout  time.Duration
	writeTimeout time.Duration
}

var _ console.Terminal = (*Conn)(nil)

// NewConn wraps raw.
//
// Precondition: raw is open.
func NewConn(raw net.Conn, readTimeout, writeTimeout time.Duration) *Conn {
	return &Conn{
		raw:          raw,
		reader:       bufio.NewReaderSize(raw, 4096),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// Negotiate offers to suppress go-ahead and leaves echo with the client.
func (c *Conn) Negotiate() error {
	return c.send([]byte{IAC, WILL, OptSuppressGoAhead, IAC, WONT, OptEcho})
}

// ReadLine returns the next line without its terminator. Telnet commands are
// dropped and erase commands edit the pending line.
//
// Postcondition: a final unterminated line is returned without error; io.EOF
// follows it. Ctrl-D on an empty line is io.EOF.
func (c *Conn) ReadLine() (string, error) {
	if c.readTimeout > 0 {
		_ = c.raw.SetReadDeadline(time.Now().Add(c.readTimeout))
	}
	var line []byte
	for {
		b, err := c.reader.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && len(line) > 0 {
				return string(line), nil
			}
			return "", err
		}
		if c.afterCR {
			c.afterCR = false
			if b == '\n' || b == 0 {
				continue
			}
		}
		switch {
		case b == IAC:
			cmd, err := c.command()
			if err != nil {
				return "", err
			}
			switch cmd {
			case IAC:
				line = appendCapped(line, IAC)
			case EC:
				line = erase(line)
			case EL:
				line = line[:0]
			}
		case b == '\n':
			return string(line), nil
		case b == '\r':
			c.afterCR = true
			return string(line), nil
		case b == backspace || b == del:
			line = erase(line)
		case b == ctrlD && len(line) == 0:
			return "", io.EOF
		case b < ' ' && b != '\t':
		default:
			line = appendCapped(line, b)
		}
	}
}

// command consumes the rest of a command after IAC and returns its verb.
// Option negotiation is ignored; the server offers nothing it must track.
func (c *Conn) command() (byte, error) {
	cmd, err := c.reader.ReadByte()
	if err != nil {
		return 0, err
	}
	switch cmd {
	case WILL, WONT, DO, DONT:
		_, err = c.reader.ReadByte()
	case SB:
		err = c.skipSubnegotiation()
	}
	return cmd, err
}

func (c *Conn) skipSubnegotiation() error {
	prev := byte(0)
	for {
		b, err := c.reader.ReadByte()
		if err != nil {
			return err
		}
		if prev == IAC && b == SE {
			return nil
		}
		if prev == IAC && b == IAC {
			b = 0
		}
		prev = b
	}
}

func appendCapped(line []byte, b byte) []byte {
	if len(line) >= maxLine {
		return line
	}
	return append(line, b)
}

// erase drops the last UTF-8 character of line.
func erase(line []byte) []byte {
	i := len(line) - 1
	for i > 0 && line[i]&0xC0 == 0x80 {
		i--
	}
	if i < 0 {
		return line
	}
	return line[:i]
}

// WriteLine sends text and CRLF. Bare newlines in text become CRLF and
// literal 0xFF bytes are escaped.
func (c *Conn) WriteLine(text string) error {
	return c.send(encode(text + "\n"))
}

// WritePrompt sends text without a line end.
func (c *Conn) WritePrompt(text string) error {
	return c.send(encode(text))
}

func encode(text string) []byte {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	out := make([]byte, 0, len(text)+8)
	for i := 0; i < len(text); i++ {
		switch b := text[i]; b {
		case '\n':
			out = append(out, '\r', '\n')
		case IAC:
			out = append(out, IAC, IAC)
		default:
			out = append(out, b)
		}
	}
	return out
}

func (c *Conn) send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeTimeout > 0 {
		_ = c.raw.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	_, err := c.raw.Write(data)
	return err
}

// Close closes the connection; a blocked ReadLine returns an error.
func (c *Conn) Close() error {
	return c.raw.Close()
}

// RemoteAddr is the client's address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.raw.RemoteAddr()
}
