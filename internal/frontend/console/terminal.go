// Package console plays the game over a line-oriented text terminal: standard
// input and output, or a telnet connection.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Terminal is a line-oriented text device.
type Terminal interface {
	// ReadLine returns the next input line without its terminator.
	ReadLine() (string, error)
	WriteLine(text string) error
	// WritePrompt writes text without a line break.
	WritePrompt(prompt string) error
}

// Stdio is a Terminal over a reader and writer, usually os.Stdin and os.Stdout.
type Stdio struct {
	mu sync.Mutex
	r  *bufio.Reader
	w  io.Writer
}

// NewStdio creates a Stdio terminal.
//
// Precondition: r and w must be non-nil.
func NewStdio(r io.Reader, w io.Writer) *Stdio {
	return &Stdio{r: bufio.NewReader(r), w: w}
}

// ReadLine reads up to the next newline. A final line without a newline is
// returned together with io.EOF only when it is empty.
func (s *Stdio) ReadLine() (string, error) {
	line, err := s.r.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err == io.EOF && line != "" {
		return line, nil
	}
	return line, err
}

// WriteLine writes text and a newline.
func (s *Stdio) WriteLine(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintln(s.w, text)
	return err
}

// WritePrompt writes text without a newline.
func (s *Stdio) WritePrompt(prompt string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprint(s.w, prompt)
	return err
}
