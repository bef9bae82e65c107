package answer

import (
	"encoding/json"
	"strings"
)

// Recorder counts parse degradations. Implemented by metrics.Metrics;
// a nil Recorder disables counting.
type Recorder interface {
	RecordParserFallback(kind string)
}

// Fallback kinds reported to the Recorder.
const (
	FallbackMalformedBlock  = "malformed_block"
	FallbackPlainText       = "plain_text"
	FallbackSingleBlockMeta = "single_block_meta"
	FallbackEmptyReply      = "empty_reply"
)

// Parser turns raw backend answers into ParsedAnswers.
// The zero value is usable; Metrics is optional.
type Parser struct {
	Metrics Recorder
}

func (p Parser) record(kind string) {
	if p.Metrics != nil {
		p.Metrics.RecordParserFallback(kind)
	}
}

// Meta keys that mark a JSON block as the conversational block rather than
// an itemized results block.
var metaKeys = []string{"intent", "reply", "question"}

// Parse normalizes a raw answer value. The raw bytes may hold a JSON
// string (possibly with embedded JSON objects), a JSON object, or nothing
// at all. Parse never returns an error; every malformed shape degrades to
// a best-effort ParsedAnswer.
func Parse(raw json.RawMessage) ParsedAnswer {
	return Parser{}.Parse(raw)
}

// Parse normalizes a raw answer value, reporting degradations to the
// configured Recorder.
func (p Parser) Parse(raw json.RawMessage) ParsedAnswer {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ParsedAnswer{}
	}

	// An already-structured object is taken directly as the meta block.
	if trimmed[0] == '{' {
		var obj map[string]any
		if err := json.Unmarshal([]byte(trimmed), &obj); err == nil {
			return p.fromMeta(obj, nil)
		}
		p.record(FallbackMalformedBlock)
		return ParsedAnswer{}
	}

	var s string
	if err := json.Unmarshal([]byte(trimmed), &s); err != nil {
		// Not a string and not an object (number, array, bool). Nothing
		// renderable; degrade to empty rather than failing the request.
		p.record(FallbackMalformedBlock)
		return ParsedAnswer{}
	}

	return p.ParseText(s)
}

// ParseText normalizes a textual answer that may embed zero or more JSON
// objects among free text.
func (p Parser) ParseText(s string) ParsedAnswer {
	blocks := splitJSONBlocks(s)
	if len(blocks) == 0 {
		// No delimitable JSON at all: the whole string is the reply.
		p.record(FallbackPlainText)
		return ParsedAnswer{ReplyText: s}
	}

	var (
		meta    map[string]any
		results []ResultRecord
		parsed  []map[string]any
	)

	for _, block := range blocks {
		var obj map[string]any
		if err := json.Unmarshal([]byte(block), &obj); err != nil {
			// One bad block never aborts the whole parse.
			p.record(FallbackMalformedBlock)
			continue
		}
		parsed = append(parsed, obj)

		// Last qualifying block wins, independently per category.
		if list, ok := obj["results"].([]any); ok {
			results = coerceResults(list)
		}
		if hasAnyKey(obj, metaKeys) {
			meta = obj
		}
	}

	// A lone block of unrecognized shape is still the best meta candidate.
	if meta == nil && len(parsed) == 1 {
		meta = parsed[0]
		p.record(FallbackSingleBlockMeta)
	}

	out := p.fromMeta(meta, results)
	if out.ReplyText == "" {
		p.record(FallbackEmptyReply)
	}
	return out
}

// fromMeta resolves the final reply text from a meta block. When results is
// nil the meta block's own results field (if any) is used instead.
func (p Parser) fromMeta(meta map[string]any, results []ResultRecord) ParsedAnswer {
	out := ParsedAnswer{Results: results}
	if meta == nil {
		return out
	}

	if out.Results == nil {
		if list, ok := meta["results"].([]any); ok {
			out.Results = coerceResults(list)
		}
	}

	if reply := getString(meta, "reply"); reply != "" {
		out.ReplyText = reply
	} else if question := getString(meta, "question"); question != "" {
		out.ReplyText = question
	}
	return out
}

func coerceResults(list []any) []ResultRecord {
	records := make([]ResultRecord, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			records = append(records, recordFromMap(m))
		}
	}
	return records
}

func hasAnyKey(m map[string]any, keys []string) bool {
	for _, key := range keys {
		if _, ok := m[key]; ok {
			return true
		}
	}
	return false
}

// splitJSONBlocks delimits top-level JSON objects embedded in a string by
// tracking brace nesting depth. Braces inside JSON string literals are
// ignored so nested objects and quoted text split correctly. Whether a
// delimited block actually parses is the caller's problem.
func splitJSONBlocks(s string) []string {
	var (
		blocks   []string
		depth    int
		start    int
		inString bool
		escaped  bool
	)

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					blocks = append(blocks, s[start:i+1])
				}
			}
		}
	}

	return blocks
}
