package lineutil

import (
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// Standard palette shared by all flex layouts.
const (
	ColorPrimary = "#06C755" // LINE green
	ColorText    = "#333333"
	ColorLabel   = "#8C8C8C"
)

// MaxBubblesPerCarousel is the LINE API limit for Flex Carousel
const MaxBubblesPerCarousel = 10

// FlexBubble wrapper
type FlexBubble struct {
	*messaging_api.FlexBubble
}

// NewFlexBubble creates a new Flex Bubble container
// Note: header, body, footer must be FlexBox or nil
func NewFlexBubble(header *FlexBox, hero messaging_api.FlexComponentInterface, body *FlexBox, footer *FlexBox) *FlexBubble {
	bubble := &messaging_api.FlexBubble{}
	if header != nil {
		bubble.Header = header.FlexBox
	}
	if hero != nil {
		bubble.Hero = hero
	}
	if body != nil {
		bubble.Body = body.FlexBox
	}
	if footer != nil {
		bubble.Footer = footer.FlexBox
	}
	return &FlexBubble{bubble}
}

// NewFlexCarousel creates a Flex Carousel from a slice of bubbles.
// LINE API limits carousels to 10 bubbles maximum; longer slices are truncated.
func NewFlexCarousel(bubbles []messaging_api.FlexBubble) *messaging_api.FlexCarousel {
	if len(bubbles) > MaxBubblesPerCarousel {
		bubbles = bubbles[:MaxBubblesPerCarousel]
	}
	return &messaging_api.FlexCarousel{
		Contents: bubbles,
	}
}

// NewHeroImage creates a full-width hero image component for a bubble.
// LINE requires HTTPS image URLs; callers are responsible for the scheme.
func NewHeroImage(url string) *messaging_api.FlexImage {
	return &messaging_api.FlexImage{
		Url:         url,
		Size:        "full",
		AspectRatio: "20:13",
		AspectMode:  messaging_api.FlexImageASPECT_MODE("cover"),
	}
}

// FlexBox wrapper for messaging_api.FlexBox with fluent API.
type FlexBox struct {
	*messaging_api.FlexBox
}

// NewFlexBox creates a new FlexBox with the specified layout and contents.
func NewFlexBox(layout string, contents ...messaging_api.FlexComponentInterface) *FlexBox {
	return &FlexBox{&messaging_api.FlexBox{
		Layout:   messaging_api.FlexBoxLAYOUT(layout),
		Contents: contents,
	}}
}

// WithSpacing sets the spacing between components.
func (b *FlexBox) WithSpacing(spacing string) *FlexBox {
	b.Spacing = spacing
	return b
}

// WithMargin sets the margin of the box.
func (b *FlexBox) WithMargin(margin string) *FlexBox {
	b.Margin = margin
	return b
}

// WithPaddingAll sets the padding for all sides of the box.
func (b *FlexBox) WithPaddingAll(padding string) *FlexBox {
	b.PaddingAll = padding
	return b
}

// WithBackgroundColor sets the background color of the box.
func (b *FlexBox) WithBackgroundColor(color string) *FlexBox {
	b.BackgroundColor = color
	return b
}

// FlexText wrapper for messaging_api.FlexText with fluent API.
type FlexText struct {
	*messaging_api.FlexText
}

// NewFlexText creates a new FlexText with the specified text.
func NewFlexText(text string) *FlexText {
	return &FlexText{&messaging_api.FlexText{
		Text: text,
	}}
}

// WithWeight sets the font weight (regular/bold).
func (t *FlexText) WithWeight(weight string) *FlexText {
	t.Weight = messaging_api.FlexTextWEIGHT(weight)
	return t
}

// WithSize sets the font size.
func (t *FlexText) WithSize(size string) *FlexText {
	t.Size = size
	return t
}

// WithColor sets the text color.
func (t *FlexText) WithColor(color string) *FlexText {
	t.Color = color
	return t
}

// WithWrap enables or disables text wrapping.
func (t *FlexText) WithWrap(wrap bool) *FlexText {
	t.Wrap = wrap
	return t
}

// WithFlex sets the flex factor for the text component.
func (t *FlexText) WithFlex(flex int32) *FlexText {
	if flex < 0 {
		flex = 0
	}
	t.Flex = flex
	return t
}

// WithMargin sets the margin of the text component.
func (t *FlexText) WithMargin(margin string) *FlexText {
	t.Margin = margin
	return t
}

// FlexButton wrapper for messaging_api.FlexButton with fluent API.
type FlexButton struct {
	*messaging_api.FlexButton
}

// NewFlexButton creates a new FlexButton with the specified action.
func NewFlexButton(action messaging_api.ActionInterface) *FlexButton {
	return &FlexButton{&messaging_api.FlexButton{
		Action: action,
	}}
}

// WithStyle sets the button style (link/primary/secondary).
func (b *FlexButton) WithStyle(style string) *FlexButton {
	b.Style = messaging_api.FlexButtonSTYLE(style)
	return b
}

// WithColor sets the button color.
func (b *FlexButton) WithColor(color string) *FlexButton {
	b.Color = color
	return b
}

// WithHeight sets the button height (sm/md).
func (b *FlexButton) WithHeight(height string) *FlexButton {
	b.Height = messaging_api.FlexButtonHEIGHT(height)
	return b
}

// FlexSeparator wrapper for messaging_api.FlexSeparator with fluent API.
type FlexSeparator struct {
	*messaging_api.FlexSeparator
}

// NewFlexSeparator creates a new FlexSeparator.
func NewFlexSeparator() *FlexSeparator {
	return &FlexSeparator{&messaging_api.FlexSeparator{}}
}

// WithMargin sets the margin of the separator.
func (s *FlexSeparator) WithMargin(margin string) *FlexSeparator {
	s.Margin = margin
	return s
}

// InfoRowStyle defines the visual style for an info row
type InfoRowStyle struct {
	ValueSize   string // Value text size: "xs", "sm", "md" (default: "sm")
	ValueWeight string // Value text weight: "regular", "bold" (default: "regular")
	ValueColor  string // Value text color (default: "#333333")
	Wrap        bool   // Whether to wrap long text (default: true)
}

// DefaultInfoRowStyle returns the standard info row style
func DefaultInfoRowStyle() InfoRowStyle {
	return InfoRowStyle{
		ValueSize:   "sm",
		ValueWeight: "regular",
		ValueColor:  ColorText,
		Wrap:        true,
	}
}

// NewInfoRow creates a two-column info row with a gray label and a value.
//
// Layout:
//
//	┌─────────────────────────────┐
//	│ [label]   [value]           │
//	└─────────────────────────────┘
func NewInfoRow(label, value string, style InfoRowStyle) *FlexBox {
	valueText := NewFlexText(value).WithColor(style.ValueColor).WithSize(style.ValueSize).WithFlex(3)
	if style.ValueWeight == "bold" {
		valueText = valueText.WithWeight("bold")
	}
	if style.Wrap {
		valueText = valueText.WithWrap(true)
	}

	return NewFlexBox("baseline",
		NewFlexText(label).WithColor(ColorLabel).WithSize("xs").WithFlex(1).FlexText,
		valueText.FlexText,
	).WithSpacing("sm")
}

// BodyContentBuilder helps build Flex Message body contents with automatic separators
type BodyContentBuilder struct {
	contents []messaging_api.FlexComponentInterface
}

// NewBodyContentBuilder creates a new body content builder
func NewBodyContentBuilder() *BodyContentBuilder {
	return &BodyContentBuilder{
		contents: make([]messaging_api.FlexComponentInterface, 0),
	}
}

// AddInfoRow adds an info row with automatic separator (except for first item)
func (b *BodyContentBuilder) AddInfoRow(label, value string, style InfoRowStyle) *BodyContentBuilder {
	if len(b.contents) > 0 {
		b.contents = append(b.contents, NewFlexSeparator().WithMargin("sm").FlexSeparator)
	}
	b.contents = append(b.contents, NewInfoRow(label, value, style).WithMargin("sm").FlexBox)
	return b
}

// AddInfoRowIf adds an info row only if value is not empty
func (b *BodyContentBuilder) AddInfoRowIf(label, value string, style InfoRowStyle) *BodyContentBuilder {
	if value != "" {
		return b.AddInfoRow(label, value, style)
	}
	return b
}

// AddComponent adds a raw component without a separator
func (b *BodyContentBuilder) AddComponent(component messaging_api.FlexComponentInterface) *BodyContentBuilder {
	b.contents = append(b.contents, component)
	return b
}

// Build returns the FlexBox with all contents
func (b *BodyContentBuilder) Build() *FlexBox {
	return NewFlexBox("vertical", b.contents...).WithSpacing("sm")
}

// Contents returns the raw contents slice (for manual FlexBox creation)
func (b *BodyContentBuilder) Contents() []messaging_api.FlexComponentInterface {
	return b.contents
}

// TruncateRunes truncates text by rune count (not byte count) to properly handle UTF-8.
// Returns truncated string with "..." if exceeds maxRunes.
func TruncateRunes(text string, maxRunes int) string {
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}
