package carousel

import (
	"testing"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swatchbot/swatchbot/internal/answer"
	"github.com/swatchbot/swatchbot/internal/config"
)

func testCarouselConfig() config.CarouselConfig {
	return config.CarouselConfig{
		MaxCards:           10,
		Currency:           "THB",
		StockUnit:          "m",
		CatalogBaseURL:     "https://www.notion.so/",
		CatalogFallbackURL: "https://www.notion.so",
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

// cardButton digs out the footer button of a bubble.
func cardButton(t *testing.T, bubble messaging_api.FlexBubble) *messaging_api.FlexButton {
	t.Helper()
	require.NotNil(t, bubble.Footer)
	require.NotEmpty(t, bubble.Footer.Contents)
	button, ok := bubble.Footer.Contents[0].(*messaging_api.FlexButton)
	require.True(t, ok, "footer should lead with a button")
	return button
}

func buttonURI(t *testing.T, bubble messaging_api.FlexBubble) string {
	t.Helper()
	action, ok := cardButton(t, bubble).Action.(*messaging_api.UriAction)
	require.True(t, ok, "button action should be a URI action")
	return action.Uri
}

func TestRenderEmpty(t *testing.T) {
	r := NewRenderer(testCarouselConfig())

	assert.Nil(t, r.Render(nil))
	assert.Nil(t, r.Render([]answer.ResultRecord{}))
}

func TestRenderCardCount(t *testing.T) {
	r := NewRenderer(testCarouselConfig())

	records := make([]answer.ResultRecord, 13)
	for i := range records {
		records[i] = answer.ResultRecord{Code: "SW"}
	}

	carousel := r.Render(records[:4])
	require.NotNil(t, carousel)
	assert.Len(t, carousel.Contents, 4)

	carousel = r.Render(records)
	require.NotNil(t, carousel)
	assert.Len(t, carousel.Contents, 10, "cards above the cap are dropped")
}

func TestRenderRespectsConfiguredCap(t *testing.T) {
	cfg := testCarouselConfig()
	cfg.MaxCards = 3
	r := NewRenderer(cfg)

	records := make([]answer.ResultRecord, 5)
	carousel := r.Render(records)
	require.NotNil(t, carousel)
	assert.Len(t, carousel.Contents, 3)
}

func TestRenderPreservesOrder(t *testing.T) {
	r := NewRenderer(testCarouselConfig())

	carousel := r.Render([]answer.ResultRecord{
		{URL: "https://example.com/first"},
		{URL: "https://example.com/second"},
	})
	require.NotNil(t, carousel)
	require.Len(t, carousel.Contents, 2)

	assert.Equal(t, "https://example.com/first", buttonURI(t, carousel.Contents[0]))
	assert.Equal(t, "https://example.com/second", buttonURI(t, carousel.Contents[1]))
}

func TestActionURLFallbackChain(t *testing.T) {
	r := NewRenderer(testCarouselConfig())

	tests := []struct {
		name   string
		record answer.ResultRecord
		want   string
	}{
		{
			name:   "explicit url wins",
			record: answer.ResultRecord{URL: "https://example.com/sw-1", PageID: "abc-123"},
			want:   "https://example.com/sw-1",
		},
		{
			name:   "page id composes catalog url with separators stripped",
			record: answer.ResultRecord{PageID: "abc-123_def"},
			want:   "https://www.notion.so/abc123def",
		},
		{
			name:   "nothing usable falls back to catalog root",
			record: answer.ResultRecord{},
			want:   "https://www.notion.so",
		},
		{
			name:   "page id of only separators falls back",
			record: answer.ResultRecord{PageID: "-_-"},
			want:   "https://www.notion.so",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.actionURL(tt.record))
		})
	}
}

func TestRenderHeroImage(t *testing.T) {
	r := NewRenderer(testCarouselConfig())

	carousel := r.Render([]answer.ResultRecord{
		{Code: "SW-1", Image: "https://img.example.com/sw1.jpg"},
		{Code: "SW-2"},
	})
	require.NotNil(t, carousel)
	require.Len(t, carousel.Contents, 2)

	hero, ok := carousel.Contents[0].Hero.(*messaging_api.FlexImage)
	require.True(t, ok, "first card should carry a hero image")
	assert.Equal(t, "https://img.example.com/sw1.jpg", hero.Url)

	assert.Nil(t, carousel.Contents[1].Hero, "card without image has no hero")
}

func TestFormatPrice(t *testing.T) {
	r := NewRenderer(testCarouselConfig())

	assert.Equal(t, "", r.formatPrice(answer.ResultRecord{}))
	assert.Equal(t, "THB 120", r.formatPrice(answer.ResultRecord{Price: floatPtr(120)}))
	assert.Equal(t, "THB 99.5", r.formatPrice(answer.ResultRecord{Price: floatPtr(99.5)}))
}

func TestFormatStock(t *testing.T) {
	r := NewRenderer(testCarouselConfig())

	assert.Equal(t, "", r.formatStock(answer.ResultRecord{}))
	assert.Equal(t, "42 m", r.formatStock(answer.ResultRecord{Stock: floatPtr(42)}))
	assert.Equal(t, "3.25 m", r.formatStock(answer.ResultRecord{Stock: floatPtr(3.25)}))
}

func TestRenderSparseRecordNeverFails(t *testing.T) {
	r := NewRenderer(testCarouselConfig())

	carousel := r.Render([]answer.ResultRecord{{}})
	require.NotNil(t, carousel)
	require.Len(t, carousel.Contents, 1)

	bubble := carousel.Contents[0]
	assert.Nil(t, bubble.Hero)
	require.NotNil(t, bubble.Body)

	title, ok := bubble.Body.Contents[0].(*messaging_api.FlexText)
	require.True(t, ok)
	assert.Equal(t, defaultCardTitle, title.Text)

	assert.Len(t, bubble.Body.Contents, 1, "no info rows for an all-empty record")
	assert.Equal(t, "https://www.notion.so", buttonURI(t, bubble))
}

func TestRenderFullRecord(t *testing.T) {
	r := NewRenderer(testCarouselConfig())

	carousel := r.Render([]answer.ResultRecord{{
		PageID:   "p-1",
		Code:     "SW-10",
		Color:    "indigo",
		Material: []string{"cotton", "linen"},
		Price:    floatPtr(120),
		Stock:    floatPtr(42),
		Image:    "https://img.example.com/sw10.jpg",
	}})
	require.NotNil(t, carousel)
	require.Len(t, carousel.Contents, 1)

	bubble := carousel.Contents[0]
	require.NotNil(t, bubble.Body)

	var values []string
	for _, component := range bubble.Body.Contents {
		row, ok := component.(*messaging_api.FlexBox)
		if !ok {
			continue
		}
		require.Len(t, row.Contents, 2)
		value, ok := row.Contents[1].(*messaging_api.FlexText)
		require.True(t, ok)
		values = append(values, value.Text)
	}

	assert.Equal(t, []string{"indigo", "cotton, linen", "THB 120", "42 m"}, values)
}
