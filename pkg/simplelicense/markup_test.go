package simplelicense_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tendant/simple-license/pkg/simplelicense"
)

func TestTemplateText(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{"plain text", "License for {filename}", "License for {filename}"},
		{"paragraphs", "<p>One</p><p>Two</p>", "One\nTwo\n"},
		{"inline markup dropped", "<p>By <strong>{authorsList}</strong></p>", "By {authorsList}\n"},
		{"line breaks", "a<br>b<br/>c", "a\nb\nc"},
		{"entities decoded", "<p>Tom &amp; Jerry &lt;3</p>", "Tom & Jerry <3\n"},
		{"attributes dropped", `<p class="x"><a href="https://example.com">{website}</a></p>`, "{website}\n"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, simplelicense.TemplateText(tt.markup))
		})
	}
}
