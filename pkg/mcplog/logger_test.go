package mcplog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func readEntries(t *testing.T, path string) []Entry {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("line %d is not an entry: %v", len(entries)+1, err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestRedactArgs(t *testing.T) {
	source := strings.Repeat("x", 300)

	tests := []struct {
		name string
		in   map[string]any
		want map[string]any
	}{
		{"nil", nil, map[string]any{}},
		{"short name kept", map[string]any{"name": "bell.tsx"}, map[string]any{"name": "bell.tsx"}},
		{"source replaced", map[string]any{"name": "bell.tsx", "source": source},
			map[string]any{"name": "bell.tsx", "source_len": 300}},
		{"non-strings kept", map[string]any{"strict": true, "workers": 4.0},
			map[string]any{"strict": true, "workers": 4.0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := RedactArgs(tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for k, v := range tc.want {
				if got[k] != v {
					t.Errorf("%s = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func TestContentBytes(t *testing.T) {
	if got := ContentBytes(nil); got != 0 {
		t.Errorf("nil result: got %d, want 0", got)
	}
	if got := ContentBytes(mcp.NewToolResultText("export { BellIcon };")); got == 0 {
		t.Errorf("text result: got 0 bytes")
	}
}

func TestRecordAndReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calls.jsonl")

	logger, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	in := []Entry{
		{Tool: "convert_icon", Icon: "bell.tsx", Args: map[string]any{"source_len": 900}, DurationMs: 12, Bytes: 2400},
		{Tool: "list_icons", Args: map[string]any{}, DurationMs: 1, Bytes: 80},
		{Tool: "convert_icon", Icon: "broken.tsx", Failed: true, Error: "no svg root"},
	}
	for _, e := range in {
		if err := logger.Record(e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got := readEntries(t, path)
	if len(got) != len(in) {
		t.Fatalf("got %d entries, want %d", len(got), len(in))
	}
	for i := range in {
		if got[i].Tool != in[i].Tool || got[i].Icon != in[i].Icon || got[i].Failed != in[i].Failed {
			t.Errorf("entry %d: got %+v, want %+v", i, got[i], in[i])
		}
	}
}

func TestRecordConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concurrent.jsonl")

	logger, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	const goroutines = 32
	const each = 10

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < each; j++ {
				_ = logger.Record(Entry{Tool: "convert_icon", Icon: "bell.tsx"})
			}
		}()
	}
	wg.Wait()

	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := len(readEntries(t, path)); got != goroutines*each {
		t.Errorf("got %d entries, want %d", got, goroutines*each)
	}
}

func TestOpen(t *testing.T) {
	logger, err := Open("")
	if err != nil || logger != nil {
		t.Fatalf("empty path: got %v, %v; want nil, nil", logger, err)
	}

	path := filepath.Join(t.TempDir(), "nested", "logs", "mcp.jsonl")
	logger, err = Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}
