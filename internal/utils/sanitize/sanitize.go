package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict is a cached bluemonday policy that removes all HTML tags and attributes.
// It's safe for concurrent use as bluemonday.Policy is read-only after build.
// WARNING: Never call mutating helpers (e.g. AddAttr, AllowElements) on this policy
// after initialization as it would create a data race.
var strict = func() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true) // Prevents word concatenation
	return p
}()

// Clean strips all HTML from arbitrary user input and normalizes whitespace.
//
// Content text and contact-form messages must pass through Clean before
// hitting the DB. Repositories assume already-sanitized input.
//
// Examples:
//   - "<script>alert('xss')</script>Hello" -> "Hello"
//   - "<p>Hello <b>world</b></p>" -> "Hello world"
//   - "**markdown** text" -> "**markdown** text" (preserved)
func Clean(s string) string {
	sanitized := strict.Sanitize(s)
	sanitized = strings.TrimSpace(sanitized)

	// Unescape HTML entities first to handle &#13; etc. as single chars
	sanitized = html.UnescapeString(sanitized)

	// Replace non-breaking spaces with regular spaces for better search/indexing
	sanitized = strings.ReplaceAll(sanitized, " ", " ")

	// Collapse multiple spaces while preserving newlines
	lines := strings.Split(sanitized, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	sanitized = strings.Join(lines, "\n")

	return sanitized
}

// CleanDocument walks a schema-less document and applies Clean to every
// string value, including strings nested in maps and slices. Non-string
// values pass through untouched. The input map is modified in place and
// returned for convenience.
//
// Base64 data URIs (uploaded CVs, certificate images) contain no "<" so
// the strict policy leaves them intact.
func CleanDocument(doc map[string]any) map[string]any {
	for k, v := range doc {
		doc[k] = cleanValue(v)
	}
	return doc
}

func cleanValue(v any) any {
	switch val := v.(type) {
	case string:
		return Clean(val)
	case map[string]any:
		return CleanDocument(val)
	case []any:
		for i, item := range val {
			val[i] = cleanValue(item)
		}
		return val
	default:
		return v
	}
}
