package domain

import (
	"encoding/json"
	"time"
)

// TimeLayout is the stored form of created_at and updated_at: UTC with
// millisecond precision, e.g. 2024-05-01T10:00:00.000Z.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTime renders t in TimeLayout, or "" for the zero time.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimeLayout)
}

// ParseTime reads any RFC 3339 timestamp. Empty or malformed values yield the
// zero time so one bad record never hides the rest of the store.
func ParseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

type redirectAlias Redirect

// MarshalJSON writes timestamps in TimeLayout and omits them when zero.
func (r Redirect) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		redirectAlias
		CreatedAt string `json:"created_at,omitempty"`
		UpdatedAt string `json:"updated_at,omitempty"`
	}{
		redirectAlias: redirectAlias(r),
		CreatedAt:     FormatTime(r.CreatedAt),
		UpdatedAt:     FormatTime(r.UpdatedAt),
	})
}

// UnmarshalJSON accepts any timestamp value; anything that is not a parseable
// string decodes to the zero time instead of failing the document.
func (r *Redirect) UnmarshalJSON(data []byte) error {
	aux := struct {
		*redirectAlias
		CreatedAt any `json:"created_at"`
		UpdatedAt any `json:"updated_at"`
	}{redirectAlias: (*redirectAlias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.CreatedAt = timeValue(aux.CreatedAt)
	r.UpdatedAt = timeValue(aux.UpdatedAt)
	return nil
}

func timeValue(v any) time.Time {
	s, ok := v.(string)
	if !ok {
		return time.Time{}
	}
	return ParseTime(s)
}

// MarshalJSON keeps the slug next to the record fields; the embedded
// Redirect's marshaler would otherwise drop it.
func (e Entry) MarshalJSON() ([]byte, error) {
	body, err := e.Redirect.MarshalJSON()
	if err != nil {
		return nil, err
	}
	slug, err := json.Marshal(e.Slug)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(body)+len(slug)+10)
	out = append(out, `{"slug":`...)
	out = append(out, slug...)
	if len(body) > 2 {
		out = append(out, ',')
	}
	return append(out, body[1:]...), nil
}

// UnmarshalJSON reads the slug alongside the record fields.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var slug struct {
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal(data, &slug); err != nil {
		return err
	}
	if err := e.Redirect.UnmarshalJSON(data); err != nil {
		return err
	}
	e.Slug = slug.Slug
	return nil
}
