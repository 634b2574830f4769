package events

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Export writes a token's event stream (or the whole log for token id 0) to
// w as zstd-compressed JSON lines, one event per line.
func Export(ctx context.Context, log Log, tokenID uint64, w io.Writer) (int, error) {
	evs, err := log.Read(ctx, tokenID, 0)
	if err != nil {
		return 0, err
	}

	zw, err := zstd.NewWriter(w)
	if err != nil {
		return 0, fmt.Errorf("events: export: %w", err)
	}

	enc := json.NewEncoder(zw)
	for _, e := range evs {
		if err := enc.Encode(e); err != nil {
			zw.Close()
			return 0, fmt.Errorf("events: export event %d: %w", e.Seq, err)
		}
	}
	return len(evs), zw.Close()
}

// Import reads a zstd-compressed JSON-lines stream produced by Export.
func Import(r io.Reader) ([]*Event, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("events: import: %w", err)
	}
	defer zr.Close()

	var out []*Event
	scanner := bufio.NewScanner(zr)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Event
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("events: import: %w", err)
		}
		out = append(out, &e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("events: import: %w", err)
	}
	return out, nil
}
