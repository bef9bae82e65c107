package webhook

import (
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/swatchbot/swatchbot/internal/lineutil"
)

// carouselAltText shows in push notifications when the reply carries cards
// but no usable text for the alt line.
const carouselAltText = "Swatch results"

// AssembleMessages composes the outbound reply in fixed order: the text
// unit always leads, the carousel follows only when cards were rendered.
func AssembleMessages(replyText string, carousel *messaging_api.FlexCarousel) []messaging_api.MessageInterface {
	messages := []messaging_api.MessageInterface{lineutil.NewTextMessage(replyText)}

	if carousel != nil {
		altText := replyText
		if altText == "" {
			altText = carouselAltText
		}
		messages = append(messages, lineutil.NewFlexMessage(altText, carousel))
	}

	return messages
}
