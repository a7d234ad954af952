// Package metadata reads the execution metrics file written by the job runner.
package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// ExecutionDetails holds the metrics a run reports at completion. All fields
// are optional; absent fields are nil.
type ExecutionDetails struct {
	CostUSD       *float64 `json:"cost_usd,omitempty"`
	DurationMS    *int64   `json:"duration_ms,omitempty"`
	DurationAPIMS *int64   `json:"duration_api_ms,omitempty"`
}

// Load reads and parses the metrics file at the given path.
func Load(path string) (*ExecutionDetails, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading execution output: %w", err)
	}
	return Parse(data)
}

// Parse decodes execution details from the runner output. The file is either
// a bare JSON object carrying the metric fields, or a JSON array of log
// entries whose last element carries them.
func Parse(data []byte) (*ExecutionDetails, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty execution output")
	}

	if data[0] == '[' {
		var entries []ExecutionDetails
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("parsing execution output: %w", err)
		}
		if len(entries) == 0 {
			return nil, fmt.Errorf("execution output log is empty")
		}
		return &entries[len(entries)-1], nil
	}

	var details ExecutionDetails
	if err := json.Unmarshal(data, &details); err != nil {
		return nil, fmt.Errorf("parsing execution output: %w", err)
	}
	return &details, nil
}
