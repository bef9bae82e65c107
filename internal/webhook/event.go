package webhook

import "encoding/json"

// AnonymousUserID stands in when the platform omits the sender identity.
const AnonymousUserID = "anonymous"

// Payload is the inbound webhook body. Only the fields the handler
// consumes are decoded; everything else in the delivery is ignored.
type Payload struct {
	Events []Event `json:"events"`
}

// Event is one messaging-platform event.
type Event struct {
	Type       string  `json:"type"`
	ReplyToken string  `json:"replyToken"`
	Source     Source  `json:"source"`
	Message    Message `json:"message"`
}

// Source identifies the sender of an event.
type Source struct {
	UserID string `json:"userId"`
}

// Message is the message attached to a message-type event.
type Message struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// UserID returns the sender identity, or AnonymousUserID when absent.
func (e Event) UserID() string {
	if e.Source.UserID == "" {
		return AnonymousUserID
	}
	return e.Source.UserID
}

// decodePayload parses the raw webhook body. A body that is not valid JSON
// yields an empty payload rather than an error; a signed but undecodable
// delivery is treated as having nothing to act on.
func decodePayload(body []byte) Payload {
	var payload Payload
	_ = json.Unmarshal(body, &payload)
	return payload
}
