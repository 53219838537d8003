package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// StatusEntry is one row of the legacy card-status side table that preceded
// per-card counters.
type StatusEntry struct {
	TimesShown   int `json:"timesShown"`
	TimesCorrect int `json:"timesCorrect"`
}

// DecodeStatusMap decodes the legacy card-status side table.
// Keys that are not card ids are skipped.
func DecodeStatusMap(data []byte) (map[uuid.UUID]StatusEntry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrNoData
	}

	var raw map[string]StatusEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: card status: %w", ErrUndecodable, err)
	}

	out := make(map[uuid.UUID]StatusEntry, len(raw))
	for k, v := range raw {
		id, err := uuid.Parse(k)
		if err != nil {
			continue
		}
		out[id] = v
	}
	return out, nil
}
