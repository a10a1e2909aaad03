package gamespec

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RequirementsClearSentinel is the marker the model emits when it has enough
// information, followed by a JSON requirements summary.
const RequirementsClearSentinel = "REQUIREMENTS_CLEAR"

// StripFences removes a surrounding markdown code fence from a model reply,
// if present. Models sometimes wrap JSON output in ```json fences despite
// instructions not to.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ExtractJSON returns the first top-level JSON object embedded in s. It scans
// from the first '{' to the last '}', which tolerates prose before and after
// the object but not multiple objects.
func ExtractJSON(s string) (string, error) {
	s = StripFences(s)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}

// ParseRequirements extracts and decodes a requirements summary from a model
// reply that may contain surrounding prose or code fences.
func ParseRequirements(s string) (*Requirements, error) {
	raw, err := ExtractJSON(s)
	if err != nil {
		return nil, err
	}
	var req Requirements
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return nil, fmt.Errorf("failed to parse requirements: %w", err)
	}
	return &req, nil
}

// ParseClearResponse checks a clarification reply for the REQUIREMENTS_CLEAR
// sentinel. When present, the JSON summary following it is decoded. The
// second return value reports whether the sentinel was found; a sentinel with
// an unparseable summary returns (nil, true, err) and the caller keeps asking.
func ParseClearResponse(s string) (*Requirements, bool, error) {
	idx := strings.Index(s, RequirementsClearSentinel)
	if idx < 0 {
		return nil, false, nil
	}
	req, err := ParseRequirements(s[idx+len(RequirementsClearSentinel):])
	if err != nil {
		return nil, true, err
	}
	return req, true, nil
}

// ParsePlan extracts and decodes a technical plan from a planning reply.
func ParsePlan(s string) (*Plan, error) {
	raw, err := ExtractJSON(s)
	if err != nil {
		return nil, err
	}
	var p Plan
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}
	return &p, nil
}
