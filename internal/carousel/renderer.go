// Package carousel renders swatch result records as a LINE Flex carousel.
// Rendering is pure and total: no record shape can fail it, the worst case
// is a card with empty fields.
package carousel

import (
	"strconv"
	"strings"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/swatchbot/swatchbot/internal/answer"
	"github.com/swatchbot/swatchbot/internal/config"
	"github.com/swatchbot/swatchbot/internal/lineutil"
)

const defaultCardTitle = "Fabric swatch"

// Renderer builds Flex carousels from result records.
type Renderer struct {
	cfg config.CarouselConfig
}

// NewRenderer creates a renderer with the given carousel configuration.
func NewRenderer(cfg config.CarouselConfig) *Renderer {
	return &Renderer{cfg: cfg}
}

// Render maps the first MaxCards records onto carousel bubbles, in the
// given order, without sorting or deduplication. Returns nil when there is
// nothing to render.
func (r *Renderer) Render(records []answer.ResultRecord) *messaging_api.FlexCarousel {
	if len(records) == 0 {
		return nil
	}

	if len(records) > r.cfg.MaxCards {
		records = records[:r.cfg.MaxCards]
	}

	bubbles := make([]messaging_api.FlexBubble, 0, len(records))
	for _, record := range records {
		bubbles = append(bubbles, *r.buildCard(record).FlexBubble)
	}

	return lineutil.NewFlexCarousel(bubbles)
}

// buildCard creates one Flex bubble for a swatch record.
//
// Layout:
//
//	┌──────────────────────────┐
//	│      [swatch photo]      │  <- hero, only when an image URL exists
//	├──────────────────────────┤
//	│ SW-10                    │  <- code (bold)
//	│ Color     indigo         │
//	│ Material  cotton, linen  │
//	│ Price     THB 120        │
//	│ Stock     42 m           │
//	├──────────────────────────┤
//	│      [View details]      │  <- footer button
//	└──────────────────────────┘
func (r *Renderer) buildCard(record answer.ResultRecord) *lineutil.FlexBubble {
	title := record.Code
	if title == "" {
		title = defaultCardTitle
	}

	body := lineutil.NewBodyContentBuilder().
		AddComponent(lineutil.NewFlexText(lineutil.TruncateRunes(title, 40)).
			WithWeight("bold").WithSize("md").WithWrap(true).FlexText).
		AddInfoRowIf("Color", record.Color, lineutil.DefaultInfoRowStyle()).
		AddInfoRowIf("Material", strings.Join(record.Material, ", "), lineutil.DefaultInfoRowStyle()).
		AddInfoRowIf("Price", r.formatPrice(record), lineutil.DefaultInfoRowStyle()).
		AddInfoRowIf("Stock", r.formatStock(record), lineutil.DefaultInfoRowStyle()).
		Build().
		WithPaddingAll("lg")

	var hero messaging_api.FlexComponentInterface
	if record.Image != "" {
		hero = lineutil.NewHeroImage(record.Image)
	}

	button := lineutil.NewFlexButton(lineutil.NewURIAction("View details", r.actionURL(record))).
		WithStyle("primary").WithColor(lineutil.ColorPrimary).WithHeight("sm")
	footer := lineutil.NewFlexBox("vertical", button.FlexButton).WithSpacing("sm")

	return lineutil.NewFlexBubble(nil, hero, body, footer)
}

// formatPrice renders "<currency> <price>" or empty when no numeric price.
func (r *Renderer) formatPrice(record answer.ResultRecord) string {
	if record.Price == nil {
		return ""
	}
	return r.cfg.Currency + " " + formatNumber(*record.Price)
}

// formatStock renders "<quantity> <unit>" or empty when no numeric quantity.
func (r *Renderer) formatStock(record answer.ResultRecord) string {
	if record.Stock == nil {
		return ""
	}
	return formatNumber(*record.Stock) + " " + r.cfg.StockUnit
}

// actionURL resolves the card's button target. Priority: explicit detail
// URL, then a catalog lookup composed from the identifier with separator
// characters removed, then the configured fallback. The result is always
// non-empty since the Flex button requires a URI.
func (r *Renderer) actionURL(record answer.ResultRecord) string {
	if record.URL != "" {
		return record.URL
	}
	if id := stripSeparators(record.PageID); id != "" {
		return r.cfg.CatalogBaseURL + id
	}
	return r.cfg.CatalogFallbackURL
}

// stripSeparators removes the dash and underscore separators catalog page
// identifiers carry, yielding the compact form used in lookup URLs.
func stripSeparators(id string) string {
	return strings.Map(func(c rune) rune {
		if c == '-' || c == '_' {
			return -1
		}
		return c
	}, id)
}

// formatNumber renders a float without trailing zeros (42 not 42.000000).
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
