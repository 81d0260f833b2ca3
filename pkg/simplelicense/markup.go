package simplelicense

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// TemplateText converts the lightweight HTML persisted by a rich-text editor
// into plain text. Each closing paragraph and each <br> becomes a newline,
// every other tag is dropped and entities are decoded. Plain text input
// passes through unchanged.
func TemplateText(markup string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				b.Write(z.Raw())
			}
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if string(name) == "br" {
				b.WriteByte('\n')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == "p" {
				b.WriteByte('\n')
			}
		}
	}
}
