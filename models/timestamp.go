package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Timestamp wraps time.Time to cope with the backend's timestamp strings,
// which may arrive without a timezone marker. A zone-less value is treated
// as UTC.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}

	// "2006-01-02 15:04:05" from the backend carries no zone marker
	if !strings.Contains(s, "Z") && !strings.Contains(s, "+") {
		s = strings.Replace(s, " ", "T", 1) + "Z"
	}

	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}
