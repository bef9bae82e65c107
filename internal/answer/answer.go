// Package answer normalizes chat backend responses into a reply string and
// structured swatch records. The backend's output format is not contractually
// fixed: the answer may be a bare string, one JSON object, or several JSON
// objects concatenated inside one string. Parsing is maximally permissive and
// never fails a request; malformed pieces degrade to empty values.
package answer

// ResultRecord is one catalog entry extracted from a backend answer.
// Every display field is optional; absent or wrong-typed values coerce to
// the zero value so rendering stays total.
type ResultRecord struct {
	PageID   string   // opaque catalog page identifier
	URL      string   // direct detail link, when the backend provides one
	Code     string   // short swatch code
	Price    *float64 // price per unit, nil when absent or non-numeric
	Material []string // material tags in backend order
	Color    string
	Stock    *float64 // remaining quantity, nil when absent or non-numeric
	Image    string   // swatch photo URL
}

// ParsedAnswer is the normalized form of a backend answer.
// ReplyText is never produced as an error; absence of extractable text
// degrades to the empty string.
type ParsedAnswer struct {
	ReplyText string
	Results   []ResultRecord
}

// recordFromMap coerces one loosely-typed results entry into a ResultRecord.
func recordFromMap(m map[string]any) ResultRecord {
	return ResultRecord{
		PageID:   getString(m, "page_id"),
		URL:      getString(m, "url"),
		Code:     getString(m, "code"),
		Price:    getNumber(m, "price"),
		Material: getStringSlice(m, "material"),
		Color:    getString(m, "color"),
		Stock:    getNumber(m, "stock"),
		Image:    getString(m, "image"),
	}
}

func getString(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func getNumber(m map[string]any, key string) *float64 {
	if v, ok := m[key].(float64); ok {
		return &v
	}
	return nil
}

func getStringSlice(m map[string]any, key string) []string {
	switch v := m[key].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}
