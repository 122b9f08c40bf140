package news

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// The webhook has shipped at least four different response layouts over
// time. Rather than guessing with nested conditionals, decoding walks an
// ordered table of matchers; the first one that recognizes the payload
// wins. The final matcher always succeeds, so a batch decode never fails
// outright — availability over strict validation.

// ShapeMatcher recognizes and decodes one known payload layout.
type ShapeMatcher struct {
	Name   string
	Decode func(payload []byte, now time.Time) ([]*Article, bool)
}

// ShapeFallback is the name of the last-resort matcher. Callers can log a
// diagnostic when decoding lands on it.
const ShapeFallback = "whole-payload"

// BatchShapes returns the matcher table for list responses, in priority
// order.
func BatchShapes() []ShapeMatcher {
	return []ShapeMatcher{
		{Name: "data-array", Decode: decodeDataArray},
		{Name: "bare-array", Decode: decodeBareArray},
		{Name: "data-object", Decode: decodeDataObject},
		{Name: ShapeFallback, Decode: decodeWholePayload},
	}
}

// DecodeArticles normalizes a webhook list response into articles. The
// returned shape name identifies which matcher handled the payload.
func DecodeArticles(payload []byte, now time.Time) ([]*Article, string) {
	for _, m := range BatchShapes() {
		if articles, ok := m.Decode(payload, now); ok {
			return articles, m.Name
		}
	}
	// Unreachable: the fallback matcher always succeeds.
	return nil, ""
}

// DecodeArticle normalizes a single-item response. It accepts either an
// enveloped or a bare object and applies the same id/content rules as the
// data-object batch shape.
func DecodeArticle(payload []byte, now time.Time) (*Article, string) {
	if env, ok := parseEnvelope(payload); ok && firstByte(env.Data) == '{' {
		if a := decodeSingle(env.Data, now); a != nil {
			return a, "data-object"
		}
	}
	if firstByte(payload) == '{' {
		if a := decodeSingle(payload, now); a != nil {
			return a, "bare-object"
		}
	}
	articles, _ := decodeWholePayload(payload, now)
	return articles[0], ShapeFallback
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

func parseEnvelope(payload []byte) (envelope, bool) {
	if firstByte(payload) != '{' {
		return envelope{}, false
	}
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil || env.Data == nil {
		return envelope{}, false
	}
	return env, true
}

// decodeDataArray handles `{"data": [...]}`. Items missing an id get a
// synthesized `<index>-<fetchMillis>` one, and content is always set from
// description for consumers that predate the content field.
func decodeDataArray(payload []byte, now time.Time) ([]*Article, bool) {
	env, ok := parseEnvelope(payload)
	if !ok || firstByte(env.Data) != '[' {
		return nil, false
	}
	var articles []*Article
	if err := json.Unmarshal(env.Data, &articles); err != nil {
		return nil, false
	}
	for i, a := range articles {
		if a == nil {
			articles[i] = &Article{}
			a = articles[i]
		}
		if a.ID == "" {
			a.ID = fmt.Sprintf("%d-%d", i, now.UnixMilli())
		}
		a.Content = a.Description
	}
	return articles, true
}

// decodeBareArray handles a top-level array. The items pass through
// untransformed; no id synthesis, no content rewrite.
func decodeBareArray(payload []byte, _ time.Time) ([]*Article, bool) {
	if firstByte(payload) != '[' {
		return nil, false
	}
	var articles []*Article
	if err := json.Unmarshal(payload, &articles); err != nil {
		return nil, false
	}
	return articles, true
}

// decodeDataObject handles `{"data": {...}}`: a single article wrapped in
// the envelope.
func decodeDataObject(payload []byte, now time.Time) ([]*Article, bool) {
	env, ok := parseEnvelope(payload)
	if !ok || firstByte(env.Data) != '{' {
		return nil, false
	}
	a := decodeSingle(env.Data, now)
	if a == nil {
		return nil, false
	}
	return []*Article{a}, true
}

func decodeSingle(raw []byte, now time.Time) *Article {
	var a Article
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil
	}
	if a.ID == "" {
		a.ID = fmt.Sprintf("single-%d", now.UnixMilli())
	}
	a.Content = a.Description
	return &a
}

// decodeWholePayload is the last resort: treat whatever arrived as one
// article. Non-object payloads end up as description text so the caller
// still has something to show.
func decodeWholePayload(payload []byte, now time.Time) ([]*Article, bool) {
	var a Article
	if err := json.Unmarshal(payload, &a); err != nil {
		a = Article{Description: strings.TrimSpace(string(payload))}
	}
	if a.ID == "" {
		a.ID = fmt.Sprintf("single-%d", now.UnixMilli())
	}
	return []*Article{&a}, true
}

func firstByte(payload []byte) byte {
	trimmed := bytes.TrimLeft(payload, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
