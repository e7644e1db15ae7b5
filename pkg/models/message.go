package models

import (
	"strconv"
	"strings"
	"time"
)

// Message is a single admitted chat message. It is immutable once it enters
// the analysis window; every derived record references it without mutating it.
type Message struct {
	ID       string `json:"id"`
	Author   string `json:"author"`
	Body     string `json:"body"`
	TS       string `json:"ts"`
	Channel  string `json:"channel"`
	ThreadTS string `json:"thread_ts,omitempty"`
}

// Time parses the decimal epoch timestamp. The second return value is false
// when the timestamp is missing or unparseable; callers decide the fallback
// (time-bucketed views substitute "now", classification ignores it).
func (m Message) Time() (time.Time, bool) {
	ts := strings.TrimSpace(m.TS)
	if ts == "" {
		return time.Time{}, false
	}
	secs, err := strconv.ParseFloat(ts, 64)
	if err != nil {
		return time.Time{}, false
	}
	sec := int64(secs)
	nsec := int64((secs - float64(sec)) * 1e9)
	return time.Unix(sec, nsec), true
}

// Key returns the identity used for deduplication: explicit ID when present,
// otherwise ts_author.
func (m Message) Key() string {
	if m.ID != "" {
		return m.ID
	}
	return m.TS + "_" + m.Author
}
