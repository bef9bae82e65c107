// Package lineutil provides utility functions for building LINE messages and actions.
package lineutil

import (
	"net/http"
	"time"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// Action is an alias for the LINE SDK action interface for convenience.
type Action = messaging_api.ActionInterface

// NewReplyClient creates a messaging API client whose HTTP calls are
// bounded by timeout. The SDK default client has none, which would let a
// stalled reply call hang the webhook request.
func NewReplyClient(channelToken string, timeout time.Duration) (*messaging_api.MessagingApiAPI, error) {
	return messaging_api.NewMessagingApiAPI(
		channelToken,
		messaging_api.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
}

// NewTextMessage creates a simple text message without sender information.
// The text parameter is the message content.
// LINE API limits: max 5000 characters per text message
func NewTextMessage(text string) *messaging_api.TextMessage {
	// Validate and truncate if necessary (LINE API limit: 5000 chars)
	if len(text) > 5000 {
		text = TruncateRunes(text, 5000)
	}

	return &messaging_api.TextMessage{
		Text: text,
	}
}

// NewURIAction creates a URI action that opens a URL when clicked.
// The label is displayed on the button, and uri is the URL to open.
func NewURIAction(label, uri string) Action {
	return &messaging_api.UriAction{
		Label: label,
		Uri:   uri,
	}
}

// NewFlexMessage creates a flex message with the given alt text and flex container.
// The altText is displayed in push notifications and chat lists (max 400 chars).
func NewFlexMessage(altText string, contents messaging_api.FlexContainerInterface) *messaging_api.FlexMessage {
	if len(altText) > 400 {
		altText = TruncateRunes(altText, 400)
	}

	return &messaging_api.FlexMessage{
		AltText:  altText,
		Contents: contents,
	}
}
