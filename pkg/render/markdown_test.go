package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
		absent   string
	}{
		{"bold", "**Dear hiring manager**", "<strong>Dear hiring manager</strong>", ""},
		{"list", "- one\n- two\n", "<li>one</li>", "<br"},
		{"fenced code", "```\nfmt.Println()\n```\n", "<code>", ""},
		{"raw html dropped", "hello <script>alert(1)</script>", "hello", "<script>"},
		{"unsafe link", "[x](javascript:alert(1))", "", `href="javascript:`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToHTML(tt.input)
			if tt.contains != "" {
				assert.Contains(t, got, tt.contains)
			}
			if tt.absent != "" {
				assert.NotContains(t, got, tt.absent)
			}
		})
	}
}

func TestPreformatted(t *testing.T) {
	assert.Equal(t, "<pre>{&#34;type&#34;:&#34;audio&#34;}</pre>", Preformatted(`{"type":"audio"}`))
}
