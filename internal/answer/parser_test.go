package answer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSingleObjectWithReply(t *testing.T) {
	t.Parallel()

	got := Parser{}.ParseText(`{"reply":"here are two swatches"}`)

	assert.Equal(t, "here are two swatches", got.ReplyText)
	assert.Empty(t, got.Results)
}

func TestParseConcatenatedObjects(t *testing.T) {
	t.Parallel()

	// Results and reply may arrive in either order inside one string.
	tests := []struct {
		name string
		text string
	}{
		{"results first", `{"results":[{"code":"X1"}]}{"reply":"hi"}`},
		{"reply first", `{"reply":"hi"}{"results":[{"code":"X1"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Parser{}.ParseText(tt.text)

			assert.Equal(t, "hi", got.ReplyText)
			require.Len(t, got.Results, 1)
			assert.Equal(t, "X1", got.Results[0].Code)
		})
	}
}

func TestParseLastQualifyingBlockWins(t *testing.T) {
	t.Parallel()

	got := Parser{}.ParseText(`{"reply":"first"}{"reply":"second"}{"results":[{"code":"A"}]}{"results":[{"code":"B"}]}`)

	assert.Equal(t, "second", got.ReplyText)
	require.Len(t, got.Results, 1)
	assert.Equal(t, "B", got.Results[0].Code)
}

func TestParsePlainString(t *testing.T) {
	t.Parallel()

	got := Parser{}.ParseText("sorry, nothing matched your query")

	assert.Equal(t, "sorry, nothing matched your query", got.ReplyText)
	assert.Empty(t, got.Results)
}

func TestParseQuestionFallback(t *testing.T) {
	t.Parallel()

	got := Parser{}.ParseText(`{"intent":"search","question":"which color do you prefer?"}`)

	assert.Equal(t, "which color do you prefer?", got.ReplyText)
}

func TestParseReplyBeatsQuestion(t *testing.T) {
	t.Parallel()

	got := Parser{}.ParseText(`{"reply":"linen it is","question":"ignored"}`)

	assert.Equal(t, "linen it is", got.ReplyText)
}

func TestParseMalformedBlockSkipped(t *testing.T) {
	t.Parallel()

	got := Parser{}.ParseText(`{"reply":"ok"}{broken}`)

	assert.Equal(t, "ok", got.ReplyText)
}

func TestParseSingleUnrecognizedBlockBecomesMeta(t *testing.T) {
	t.Parallel()

	// No recognized meta key and no results, but the lone block still
	// serves as the meta candidate (yielding an empty reply here).
	got := Parser{}.ParseText(`{"note":"unstructured"}`)

	assert.Equal(t, "", got.ReplyText)
	assert.Empty(t, got.Results)
}

func TestParseBracesInStringLiterals(t *testing.T) {
	t.Parallel()

	got := Parser{}.ParseText(`{"reply":"use {code} style","results":[{"code":"K-9"}]}`)

	assert.Equal(t, "use {code} style", got.ReplyText)
	require.Len(t, got.Results, 1)
}

func TestParseNestedObjects(t *testing.T) {
	t.Parallel()

	got := Parser{}.ParseText(`{"reply":"ok","extra":{"nested":{"deep":1}}}`)

	assert.Equal(t, "ok", got.ReplyText)
}

func TestParseRawShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		raw       string
		wantReply string
		wantCodes []string
	}{
		{
			name:      "json string with embedded objects",
			raw:       `"{\"reply\":\"hi\"}{\"results\":[{\"code\":\"X1\"}]}"`,
			wantReply: "hi",
			wantCodes: []string{"X1"},
		},
		{
			name:      "structured object answer",
			raw:       `{"reply":"direct","results":[{"code":"D1"},{"code":"D2"}]}`,
			wantReply: "direct",
			wantCodes: []string{"D1", "D2"},
		},
		{
			name:      "plain json string",
			raw:       `"no records today"`,
			wantReply: "no records today",
		},
		{
			name: "absent answer",
			raw:  ``,
		},
		{
			name: "null answer",
			raw:  `null`,
		},
		{
			name: "unrenderable scalar",
			raw:  `42`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Parse(json.RawMessage(tt.raw))

			assert.Equal(t, tt.wantReply, got.ReplyText)
			require.Len(t, got.Results, len(tt.wantCodes))
			for i, code := range tt.wantCodes {
				assert.Equal(t, code, got.Results[i].Code)
			}
		})
	}
}

func TestParseRecordCoercion(t *testing.T) {
	t.Parallel()

	got := Parser{}.ParseText(`{"results":[{
		"page_id":"abc-123-def",
		"url":"https://example.com/abc",
		"code":"SW-10",
		"price":120.5,
		"material":["cotton","linen"],
		"color":"indigo",
		"stock":42,
		"image":"https://example.com/sw.jpg"
	}]}{"reply":"found one"}`)

	require.Len(t, got.Results, 1)
	r := got.Results[0]
	assert.Equal(t, "abc-123-def", r.PageID)
	assert.Equal(t, "https://example.com/abc", r.URL)
	assert.Equal(t, "SW-10", r.Code)
	require.NotNil(t, r.Price)
	assert.InDelta(t, 120.5, *r.Price, 0.001)
	assert.Equal(t, []string{"cotton", "linen"}, r.Material)
	assert.Equal(t, "indigo", r.Color)
	require.NotNil(t, r.Stock)
	assert.InDelta(t, 42, *r.Stock, 0.001)
	assert.Equal(t, "https://example.com/sw.jpg", r.Image)
}

func TestParseRecordWrongTypes(t *testing.T) {
	t.Parallel()

	got := Parser{}.ParseText(`{"reply":"x","results":[{
		"code":7,
		"price":"expensive",
		"material":{"not":"a list"},
		"color":null,
		"stock":false
	}]}`)

	require.Len(t, got.Results, 1)
	r := got.Results[0]
	assert.Equal(t, "", r.Code)
	assert.Nil(t, r.Price)
	assert.Empty(t, r.Material)
	assert.Equal(t, "", r.Color)
	assert.Nil(t, r.Stock)
}

func TestParseMaterialSingleString(t *testing.T) {
	t.Parallel()

	got := Parser{}.ParseText(`{"reply":"x","results":[{"material":"wool"}]}`)

	require.Len(t, got.Results, 1)
	assert.Equal(t, []string{"wool"}, got.Results[0].Material)
}

func TestParseRecorderCounts(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{counts: map[string]int{}}
	p := Parser{Metrics: rec}

	p.ParseText("plain only")
	p.ParseText(`{"reply":"ok"}{oops}`)

	assert.Equal(t, 1, rec.counts[FallbackPlainText])
	assert.Equal(t, 1, rec.counts[FallbackMalformedBlock])
}

type fakeRecorder struct {
	counts map[string]int
}

func (f *fakeRecorder) RecordParserFallback(kind string) {
	f.counts[kind]++
}

func TestSplitJSONBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"no braces", "hello", nil},
		{"one block", `a {"x":1} b`, []string{`{"x":1}`}},
		{"two blocks no separator", `{"a":1}{"b":2}`, []string{`{"a":1}`, `{"b":2}`}},
		{"nested object", `{"a":{"b":{"c":3}}}`, []string{`{"a":{"b":{"c":3}}}`}},
		{"brace in string", `{"a":"}"}`, []string{`{"a":"}"}`}},
		{"escaped quote in string", `{"a":"\"}"}`, []string{`{"a":"\"}"}`}},
		{"unbalanced open", `{"a":1`, nil},
		{"stray close ignored", `} {"a":1}`, []string{`{"a":1}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, splitJSONBlocks(tt.in))
		})
	}
}
