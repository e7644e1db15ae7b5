package ingest

// EventPayload is the Slack-style event webhook envelope. Only the fields we
// act on are declared; everything else passes through unparsed.
type EventPayload struct {
	Type      string        `json:"type"`
	Challenge string        `json:"challenge,omitempty"`
	Event     *MessageEvent `json:"event,omitempty"`
}

type MessageEvent struct {
	Type     string `json:"type"`
	User     string `json:"user"`
	Text     string `json:"text"`
	TS       string `json:"ts"`
	Channel  string `json:"channel"`
	ThreadTS string `json:"thread_ts,omitempty"`
	BotID    string `json:"bot_id,omitempty"`
}

const (
	payloadTypeURLVerification = "url_verification"
	eventTypeMessage           = "message"
)
