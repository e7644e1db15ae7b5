package models

import "time"

// ChatEvent is the broker envelope carrying one admitted message between the
// ingest and insights services.
type ChatEvent struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
	Message   Message   `json:"message"`
	Metadata  Metadata  `json:"metadata"`
}

type Metadata struct {
	TraceID   string                 `json:"trace_id,omitempty"`
	Admission *AdmissionInfo         `json:"admission,omitempty"`
	Extra     map[string]interface{} `json:"extra,omitempty"`
}

type AdmissionInfo struct {
	AdmittedAt time.Time `json:"admitted_at"`
}
