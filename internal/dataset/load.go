package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"overlap/internal/logging"
)

// LoadFile reads a JSON array of records from path.
func LoadFile(ctx context.Context, path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	records, err := Load(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logging.New("dataset").Info("loaded dataset", "path", path, "records", logging.Count(len(records)))
	return records, nil
}

// Load decodes a JSON array of records one element at a time so large
// exports are not buffered twice.
func Load(ctx context.Context, r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, fmt.Errorf("dataset must be a JSON array, got %v", tok)
	}

	var records []Record
	for dec.More() {
		if len(records)%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode record %d: %w", len(records), err)
		}
		records = append(records, rec)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read dataset end: %w", err)
	}
	return records, nil
}
