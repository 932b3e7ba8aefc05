package auditlog

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var lineFormat = regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] .+$`)

// syncBuffer serializes reads against the sink's own writes
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSink_LineFormat(t *testing.T) {
	t.Parallel()

	var buf syncBuffer
	sink := NewWithWriter(&buf)

	sink.Printf("Client %d requested current auction list", 3)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1)
	require.Regexp(t, lineFormat, lines[0])
	require.Contains(t, lines[0], "Client 3 requested current auction list")
}

func TestSink_ConcurrentWritesNotInterleaved(t *testing.T) {
	t.Parallel()

	var buf syncBuffer
	sink := NewWithWriter(&buf)

	var wg sync.WaitGroup
	writers := 20
	linesPerWriter := 25

	for i := 0; i < writers; i++ {
		wg.Add(1)
		i := i
		go func() {
			defer wg.Done()
			for j := 0; j < linesPerWriter; j++ {
				sink.Printf("writer %d line %d", i, j)
			}
		}()
	}

	wg.Wait()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, writers*linesPerWriter)
	for _, line := range lines {
		require.Regexp(t, lineFormat, line)
	}
}

func TestOpen_AppendsToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "server_log.txt")

	sink, err := Open(path)
	require.NoError(t, err)
	sink.Printf("Server started")
	require.NoError(t, sink.Close())

	// reopening must append, not truncate
	sink, err = Open(path)
	require.NoError(t, err)
	sink.Printf("Server started again")
	require.NoError(t, sink.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "Server started")
	require.Contains(t, lines[1], "Server started again")
}

func TestOpen_BadPath(t *testing.T) {
	t.Parallel()

	_, err := Open(filepath.Join(t.TempDir(), "missing", "nested", "log.txt"))
	require.Error(t, err)
}

func TestNilSinkIsSafe(t *testing.T) {
	t.Parallel()

	var sink *Sink
	sink.Printf("no-op")
	require.NoError(t, sink.Close())
}
