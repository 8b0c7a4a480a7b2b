package driver

import (
	"encoding/json"
	"fmt"
	"os"
)

// Merge reads every translation unit's analyzer output file and
// concatenates their record arrays into one JSON array, the "independent
// outputs merged at the end by set union" step of spec.md §5. A record
// whose JSON text is byte-identical to one already kept (for instance a
// shared header's definition reported by more than one translation unit)
// is dropped, so ingest.Ingest's uniqueness filter does not count it as
// a second definition.
func Merge(outputPaths []string) ([]byte, error) {
	var all []json.RawMessage
	seen := make(map[string]struct{})
	for _, path := range outputPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("merge: %s: %w", path, err)
		}
		var records []json.RawMessage
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("merge: %s: %w", path, err)
		}
		for _, rec := range records {
			if _, dup := seen[string(rec)]; dup {
				continue
			}
			seen[string(rec)] = struct{}{}
			all = append(all, rec)
		}
	}
	return json.Marshal(all)
}
