package jobs

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrInvalidPayload is returned when a provider payload fails boundary validation.
var ErrInvalidPayload = errInvalidPayload{}

type errInvalidPayload struct{}

func (errInvalidPayload) Error() string { return "invalid job payload" }

// ParseList validates a raw provider payload at the boundary. Records must at
// least carry an id; order is display order and is preserved verbatim.
func ParseList(raw json.RawMessage) ([]Recommendation, error) {
	var list []Recommendation
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	for i, job := range list {
		if strings.TrimSpace(job.ID) == "" {
			return nil, fmt.Errorf("%w: record %d has no id", ErrInvalidPayload, i)
		}
	}
	return list, nil
}
