package llm

import (
	"errors"
	"testing"

	"github.com/deckaudit/deckaudit/internal/model"
)

func TestStripFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```\n  ", `{"a":1}`},
		{"array", "```json\n[1,2]\n```", "[1,2]"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripFences(tc.in); got != tc.want {
				t.Errorf("StripFences(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestDecodeJSON_Success(t *testing.T) {
	var v struct {
		Facts []struct {
			MetricCategory string `json:"metric_category"`
		} `json:"facts"`
	}

	text := "```json\n{\"facts\": [{\"metric_category\": \"total_savings_usd\"}]}\n```"
	if err := DecodeJSON("extraction", text, &v); err != nil {
		t.Fatalf("DecodeJSON failed: %v", err)
	}
	if len(v.Facts) != 1 || v.Facts[0].MetricCategory != "total_savings_usd" {
		t.Errorf("unexpected decode result: %+v", v)
	}
}

func TestDecodeJSON_Malformed(t *testing.T) {
	var v map[string]interface{}

	for _, text := range []string{"", "   ", "not json at all", "```json\n{broken\n```"} {
		err := DecodeJSON("extraction", text, &v)
		if err == nil {
			t.Errorf("expected error for %q", text)
			continue
		}
		var malformed *model.MalformedResponseError
		if !errors.As(err, &malformed) {
			t.Errorf("expected MalformedResponseError for %q, got %T", text, err)
		}
		if malformed != nil && malformed.Op != "extraction" {
			t.Errorf("expected op extraction, got %s", malformed.Op)
		}
	}
}
