package models

import "time"

// Source and endpoint identifiers written into every envelope and clean record.
const (
	SourceSteam      = "steam"
	EndpointFeatured = "featuredcategories"
)

// Timestamp layouts.
const (
	// FileTimestampLayout is the local-time suffix of every stage file name.
	FileTimestampLayout = "20060102_150405"
	// DocumentTimestampLayout is the ISO-8601 form used inside documents.
	DocumentTimestampLayout = "2006-01-02T15:04:05.000000-07:00"
)

// Envelope wraps a captured response with its capture metadata.
type Envelope struct {
	Source     string         `json:"source"`
	Endpoint   string         `json:"endpoint"`
	CapturedAt string         `json:"captured_at"`
	Data       map[string]any `json:"data"`
}

// NewEnvelope wraps data captured at the given instant.
func NewEnvelope(data map[string]any, capturedAt time.Time) *Envelope {
	return &Envelope{
		Source:     SourceSteam,
		Endpoint:   EndpointFeatured,
		CapturedAt: FormatDocumentTime(capturedAt),
		Data:       data,
	}
}

// UnwrapEnvelope reports whether doc is an envelope and returns it if so.
// A verbatim storefront response has no "data" map and is returned as ok=false.
func UnwrapEnvelope(doc map[string]any) (*Envelope, bool) {
	data, ok := doc["data"].(map[string]any)
	if !ok {
		return nil, false
	}

	env := &Envelope{Data: data}
	env.Source, _ = doc["source"].(string)
	env.Endpoint, _ = doc["endpoint"].(string)
	env.CapturedAt, _ = doc["captured_at"].(string)

	return env, true
}

// FormatDocumentTime renders t in UTC using DocumentTimestampLayout.
func FormatDocumentTime(t time.Time) string {
	return t.UTC().Format(DocumentTimestampLayout)
}
