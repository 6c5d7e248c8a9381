package llm

import (
	"encoding/json"
	"strings"

	"github.com/deckaudit/deckaudit/internal/model"
)

// StripFences removes markdown code fences that models wrap around JSON
// output despite being told not to.
func StripFences(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		// Drop the opening fence line (```json or bare ```)
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "```json")
			s = strings.TrimPrefix(s, "```")
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// DecodeJSON parses a completion response into v after stripping fences.
// A failure is reported as *model.MalformedResponseError tagged with op so
// the owning component can apply its fallback policy.
func DecodeJSON(op, text string, v interface{}) error {
	cleaned := StripFences(text)
	if cleaned == "" {
		return &model.MalformedResponseError{Op: op, Reason: "empty response"}
	}
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return &model.MalformedResponseError{Op: op, Reason: err.Error()}
	}
	return nil
}
