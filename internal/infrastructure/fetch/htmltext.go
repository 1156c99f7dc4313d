package fetch

import (
	"strings"

	"golang.org/x/net/html"
)

// HTMLToText strips a page down to whitespace-normalized plain text. Script
// and style bodies are dropped entirely; every other tag is replaced by a
// separator so adjacent text runs do not fuse together.
func HTMLToText(input string) string {
	z := html.NewTokenizer(strings.NewReader(input))
	var b strings.Builder

	skip := ""
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			name, _ := z.TagName()
			tag := strings.ToLower(string(name))
			if tag == "script" || tag == "style" || tag == "noscript" {
				skip = tag
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if skip != "" && strings.ToLower(string(name)) == skip {
				skip = ""
			}
		case html.TextToken:
			if skip != "" {
				continue
			}
			b.Write(z.Text())
			b.WriteByte(' ')
		}
	}
}
