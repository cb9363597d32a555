// Package sanitize wraps the bluemonday HTML sanitizer with the two policies
// the application needs: a strip-everything policy for plain-text fields and
// a small inline-formatting allow-list for task descriptions. Sanitization is
// idempotent: applying a policy to its own output yields the same output.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// stripPolicy removes all markup and keeps only text content.
	stripPolicy = bluemonday.StrictPolicy()

	// descriptionPolicy retains basic inline formatting tags with no
	// attributes; everything else is stripped.
	descriptionPolicy = newDescriptionPolicy()
)

// DescriptionTags is the allow-list of formatting tags retained in task
// descriptions. Attributes are never retained.
var DescriptionTags = []string{"b", "i", "u", "p", "br", "ul", "ol", "li"}

func newDescriptionPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(DescriptionTags...)
	return p
}

// Strip removes all markup from the input, keeping text content only, and
// trims surrounding whitespace. Used for titles, usernames, and emails.
// Remaining special characters stay entity-escaped; fields whose character
// set excludes them reject at validation instead.
func Strip(s string) string {
	return strings.TrimSpace(stripPolicy.Sanitize(s))
}

// Description sanitizes a task description, stripping all markup except the
// inline formatting allow-list and dropping all attributes from retained tags.
func Description(s string) string {
	return strings.TrimSpace(descriptionPolicy.Sanitize(s))
}
