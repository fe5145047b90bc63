package invoice

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// requiredFields are the keys every extraction result carries. Fields the
// model omitted are defaulted to "" rather than failing the whole call.
var requiredFields = []string{"title", "amount", "date", "vendor", "category"}

var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*\\n(.*?)\\n```")

// ParseReply decodes the model's reply text into a field map using an
// ordered fallback chain, each stage tried only after the previous fails:
//
//  1. parse the entire reply as JSON
//  2. parse the contents of a fenced ```json code block
//  3. trim whitespace and parse if the text is brace-delimited
func ParseReply(raw string) (map[string]any, error) {
	var fields map[string]any

	if err := json.Unmarshal([]byte(raw), &fields); err == nil {
		return fields, nil
	}

	if m := fencedBlock.FindStringSubmatch(raw); m != nil {
		if err := json.Unmarshal([]byte(m[1]), &fields); err == nil {
			return fields, nil
		}
	}

	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		if err := json.Unmarshal([]byte(trimmed), &fields); err == nil {
			return fields, nil
		}
	}

	return nil, fmt.Errorf("no JSON object found in model reply")
}

// normalizeFields guarantees all five required keys exist, defaulting
// missing ones to the empty string. The pipeline result is always total.
func normalizeFields(fields map[string]any) map[string]any {
	if fields == nil {
		fields = map[string]any{}
	}
	for _, key := range requiredFields {
		if _, ok := fields[key]; !ok {
			fields[key] = ""
		}
	}
	return fields
}
