package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text unchanged", "Buy milk", "Buy milk"},
		{"surrounding whitespace trimmed", "  Buy milk  ", "Buy milk"},
		{"tags removed", "<b>Buy</b> milk", "Buy milk"},
		{"script element dropped with content", "<script>alert(1)</script>Buy milk", "Buy milk"},
		{"img tag removed", `<img src="x" onerror="alert(1)">note`, "note"},
		{"nested markup flattened", "<div><p>hello <i>there</i></p></div>", "hello there"},
		{"empty input", "", ""},
		{"only markup yields empty", "<br><hr>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Strip(tt.input))
		})
	}
}

func TestDescription(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"allowed inline tags kept", "<b>bold</b> and <i>italic</i>", "<b>bold</b> and <i>italic</i>"},
		{"list structure kept", "<ul><li>one</li><li>two</li></ul>", "<ul><li>one</li><li>two</li></ul>"},
		{"script dropped", "before<script>alert(1)</script>after", "beforeafter"},
		{"disallowed tag stripped but content kept", "<div>content</div>", "content"},
		{"attributes dropped from allowed tags", `<b class="x">bold</b>`, "<b>bold</b>"},
		{"anchor stripped", `<a href="https://example.com">link</a>`, "link"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Description(tt.input))
		})
	}
}

func TestSanitizationIsIdempotent(t *testing.T) {
	inputs := []string{
		"Buy milk",
		"<b>Buy</b> milk",
		"<script>alert(1)</script>",
		"a < b && b > c",
		"&lt;script&gt;alert(1)&lt;/script&gt;",
		"<ul><li>one</li></ul>",
		`<img src="x">`,
	}

	for _, input := range inputs {
		once := Strip(input)
		assert.Equal(t, once, Strip(once), "Strip not idempotent for %q", input)

		onceDesc := Description(input)
		assert.Equal(t, onceDesc, Description(onceDesc), "Description not idempotent for %q", input)
	}
}
