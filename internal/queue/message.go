package queue

import "encoding/json"

// Event kinds published by the API for asynchronous ingestion.
const (
	KindResumeGenerated   = "resume.generated"
	KindJobApplied        = "job.applied"
	KindDemoBooked        = "demo.booked"
	KindDownloadRequested = "download.requested"
	KindContactReceived   = "contact.received"
)

// Event is the payload sent to downstream queue consumers.
type Event struct {
	Kind       string `json:"kind"`
	Subject    string `json:"subject"`
	TargetID   string `json:"targetId,omitempty"`
	Company    string `json:"company,omitempty"`
	RequestID  string `json:"requestId,omitempty"`
	OccurredAt string `json:"occurredAt"`
	Version    int    `json:"version"`
}

// EncodeEvent returns the JSON representation of an event.
func EncodeEvent(evt Event) ([]byte, error) {
	return json.Marshal(evt)
}

// DecodeEvent parses a JSON payload into an Event.
func DecodeEvent(payload []byte) (Event, error) {
	var evt Event
	if err := json.Unmarshal(payload, &evt); err != nil {
		return Event{}, err
	}
	return evt, nil
}
