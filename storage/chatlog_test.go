package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)
}

func newTestChatLog(t *testing.T) *ChatLog {
	t.Helper()
	chatLog, err := OpenChatLog(filepath.Join(t.TempDir(), "chat.txt"), slog.Default(), WithClock(fixedClock))
	require.NoError(t, err)
	return chatLog
}

func Test_Open_Writes_Header_Once(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "chat.txt")

	_, err := OpenChatLog(path, slog.Default())
	req.NoError(err)
	_, err = OpenChatLog(path, slog.Default())
	req.NoError(err)

	content, err := os.ReadFile(path)
	req.NoError(err)
	req.Equal(ChatHeader+"\n", string(content))
}

func Test_Open_Keeps_Existing_File(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "chat.txt")
	req.NoError(os.WriteFile(path, []byte("[2020-01-01 00:00:00] old line\n"), 0o644))

	chatLog, err := OpenChatLog(path, slog.Default())
	req.NoError(err)

	lines, err := chatLog.Lines()
	req.NoError(err)
	req.Equal([]string{"[2020-01-01 00:00:00] old line\n"}, lines)
}

func Test_Open_Fails_On_Missing_Directory(t *testing.T) {
	_, err := OpenChatLog(filepath.Join(t.TempDir(), "missing", "chat.txt"), slog.Default())
	require.Error(t, err)
}

func Test_Append_Formats_Line(t *testing.T) {
	req := require.New(t)
	chatLog := newTestChatLog(t)

	line, err := chatLog.Append(ChatMessage("alice", "hi"))
	req.NoError(err)
	req.Equal("[2024-03-09 14:05:07] alice: hi\n", line)

	lines, err := chatLog.Lines()
	req.NoError(err)
	req.Equal([]string{ChatHeader + "\n", line}, lines)
}

func Test_Lines_Counts_Header_Plus_Appends(t *testing.T) {
	req := require.New(t)
	chatLog := newTestChatLog(t)

	for i := 0; i < 5; i++ {
		_, err := chatLog.Append(fmt.Sprintf("line %d", i))
		req.NoError(err)
	}

	lines, err := chatLog.Lines()
	req.NoError(err)
	req.Len(lines, 6)
	for i, line := range lines[1:] {
		req.True(strings.HasSuffix(line, fmt.Sprintf("line %d\n", i)))
	}
}

func Test_Lines_Returns_Unterminated_Tail(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "chat.txt")
	req.NoError(os.WriteFile(path, []byte("a\nb"), 0o644))

	chatLog, err := OpenChatLog(path, slog.Default())
	req.NoError(err)

	lines, err := chatLog.Lines()
	req.NoError(err)
	req.Equal([]string{"a\n", "b"}, lines)
}

func Test_Lines_Fails_When_File_Removed(t *testing.T) {
	req := require.New(t)
	chatLog := newTestChatLog(t)
	req.NoError(os.Remove(chatLog.Path()))

	_, err := chatLog.Lines()
	req.Error(err)
}

func Test_Concurrent_Appends_Do_Not_Interleave(t *testing.T) {
	req := require.New(t)
	chatLog := newTestChatLog(t)
	payload := strings.Repeat("x", 4096)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := chatLog.Append(fmt.Sprintf("user%d: %s", i, payload))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	lines, err := chatLog.Lines()
	req.NoError(err)
	req.Len(lines, 51)
	for _, line := range lines[1:] {
		req.True(strings.HasSuffix(line, ": "+payload+"\n"))
	}
}

func Test_Notices(t *testing.T) {
	req := require.New(t)
	req.Equal("bob joined the chat.", JoinNotice("bob"))
	req.Equal("bob left the chat.", LeaveNotice("bob"))
	req.Equal("bob: hello there", ChatMessage("bob", "hello there"))
}

func Test_Append_Hook_Sees_File_Order(t *testing.T) {
	req := require.New(t)
	var mu sync.Mutex
	var seen []string
	hook := func(line string) {
		mu.Lock()
		seen = append(seen, line)
		mu.Unlock()
	}
	chatLog, err := OpenChatLog(filepath.Join(t.TempDir(), "chat.txt"), slog.Default(), WithAppendHook(hook))
	req.NoError(err)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := chatLog.Append(fmt.Sprintf("user%d: hello", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	lines, err := chatLog.Lines()
	req.NoError(err)
	req.Equal(lines[1:], seen)
}

func Test_Append_Hook_Skipped_On_Failure(t *testing.T) {
	req := require.New(t)
	calls := 0
	dir := t.TempDir()
	chatLog, err := OpenChatLog(filepath.Join(dir, "chat.txt"), slog.Default(), WithAppendHook(func(string) { calls++ }))
	req.NoError(err)
	req.NoError(os.Remove(chatLog.Path()))
	req.NoError(os.Mkdir(chatLog.Path(), 0o755))

	_, err = chatLog.Append("alice: hi")
	req.Error(err)
	req.Zero(calls)
}
