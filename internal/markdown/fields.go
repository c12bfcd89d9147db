package markdown

import (
	"fmt"
	"time"
)

// Date layouts accepted in frontmatter, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// liftWellKnownFields copies the frontmatter keys the content model cares
// about into typed Document fields. Unknown keys stay available through
// Fields.
func liftWellKnownFields(doc *Document, fields map[string]any) {
	if v, ok := fields["title"]; ok {
		doc.Title = stringValue(v)
	}
	if v, ok := fields["description"]; ok {
		doc.Description = stringValue(v)
	}
	if v, ok := fields["date"]; ok {
		if t, ok := timeValue(v); ok {
			doc.Date = t
		}
	}
	if v, ok := fields["lastmod"]; ok {
		if t, ok := timeValue(v); ok {
			doc.LastModified = t
		}
	}
	if doc.LastModified.IsZero() {
		doc.LastModified = doc.Date
	}
	if v, ok := fields["tags"]; ok {
		doc.Tags = stringSliceValue(v)
	}
}

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// timeValue accepts the shapes yaml.v3 produces for dates: native
// timestamps and plain strings.
func timeValue(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

func stringSliceValue(v any) []string {
	switch vs := v.(type) {
	case []any:
		out := make([]string, 0, len(vs))
		for _, e := range vs {
			out = append(out, stringValue(e))
		}
		return out
	case []string:
		return vs
	case string:
		return []string{vs}
	}
	return nil
}
