package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"
)

const (
	ChatHeader      = "--- Chat Started ---"
	TimestampLayout = "2006-01-02 15:04:05"
)

// ChatLog is the shared append-only chat file. Every append and read is one
// open/close cycle on the file; the mutex keeps lines from interleaving.
type ChatLog struct {
	path   string
	log    *slog.Logger
	now    func() time.Time
	notify func(line string)
	mu     sync.Mutex
}

type ChatLogOption func(*ChatLog)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) ChatLogOption {
	return func(c *ChatLog) { c.now = now }
}

// WithAppendHook registers fn to receive every appended line. It runs while
// the log is locked, so it sees lines in file order and must not block.
func WithAppendHook(fn func(line string)) ChatLogOption {
	return func(c *ChatLog) { c.notify = fn }
}

// OpenChatLog creates the file with its header line if it does not exist yet.
func OpenChatLog(path string, log *slog.Logger, opts ...ChatLogOption) (*ChatLog, error) {
	c := &ChatLog{path: path, log: log, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	switch {
	case errors.Is(err, fs.ErrExist):
		return c, nil
	case err != nil:
		return nil, fmt.Errorf("create chat file %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.WriteString(f, ChatHeader+"\n"); err != nil {
		return nil, fmt.Errorf("write chat header: %w", err)
	}
	log.Debug("created new chat file", slog.String("path", path))
	return c, nil
}

func (c *ChatLog) Path() string { return c.path }

// Format renders text as a timestamped log line, newline included.
func (c *ChatLog) Format(text string) string {
	return fmt.Sprintf("[%s] %s\n", c.now().Format(TimestampLayout), text)
}

// Append writes one timestamped line and returns it as written.
func (c *ChatLog) Append(text string) (string, error) {
	line := c.Format(text)

	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.OpenFile(c.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open chat file: %w", err)
	}
	if _, err := io.WriteString(f, line); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("append chat line: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close chat file: %w", err)
	}
	if c.notify != nil {
		c.notify(line)
	}
	return line, nil
}

// Lines returns every line of the file in order, each with its trailing
// newline. A final line without one is returned as is.
func (c *ChatLog) Lines() ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("open chat file: %w", err)
	}
	defer f.Close()

	lines := []string{}
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read chat file: %w", err)
		}
	}
}

func JoinNotice(username string) string  { return username + " joined the chat." }
func LeaveNotice(username string) string { return username + " left the chat." }
func ChatMessage(username, message string) string {
	return username + ": " + message
}
