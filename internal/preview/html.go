// ABOUTME: Readable-text extraction from HTML for previews using x/net/html
// ABOUTME: Drops scripts and styles; block elements become line breaks, list items get bullets

package preview

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

func htmlText(raw string) string {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return raw
	}
	var b bytes.Buffer
	extractReadable(doc, &b, false)
	return collapseBlankLines(b.String())
}

func extractReadable(n *html.Node, b *bytes.Buffer, inPre bool) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript", "iframe", "template", "head":
			return
		case "h1", "h2", "h3", "h4", "h5", "h6":
			b.WriteString("\n\n" + strings.Repeat("#", int(n.Data[1]-'0')) + " ")
		case "p", "div", "section", "article", "table", "blockquote":
			b.WriteString("\n\n")
		case "br", "tr":
			b.WriteString("\n")
		case "li":
			b.WriteString("\n• ")
		case "td", "th":
			b.WriteString("\t")
		case "pre":
			b.WriteString("\n\n")
			inPre = true
		case "img":
			if alt := attr(n, "alt"); alt != "" {
				b.WriteString("[" + alt + "]")
			}
		}
	}

	if n.Type == html.TextNode {
		if inPre {
			b.WriteString(n.Data)
		} else {
			writeCollapsed(b, n.Data)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractReadable(c, b, inPre)
	}

	if n.Type == html.ElementNode {
		switch n.Data {
		case "a":
			if href := attr(n, "href"); href != "" && !strings.HasPrefix(href, "#") {
				b.WriteString(" <" + href + ">")
			}
		case "pre", "ul", "ol", "h1", "h2", "h3", "h4", "h5", "h6":
			b.WriteString("\n")
		}
	}
}

// writeCollapsed writes text with runs of whitespace folded to one space.
// Edge whitespace survives as a single space unless the output is at the
// start of a line.
func writeCollapsed(b *bytes.Buffer, text string) {
	words := strings.Fields(text)
	lead := text != "" && isSpace(text[0])
	trail := text != "" && isSpace(text[len(text)-1])
	if lead {
		space(b)
	}
	if len(words) == 0 {
		return
	}
	b.WriteString(strings.Join(words, " "))
	if trail {
		space(b)
	}
}

func space(b *bytes.Buffer) {
	if b.Len() == 0 {
		return
	}
	switch b.Bytes()[b.Len()-1] {
	case '\n', ' ', '\t':
		return
	}
	b.WriteByte(' ')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t' || c == '\r' || c == '\f'
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// collapseBlankLines trims trailing spaces and keeps at most one blank line
// between paragraphs.
func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := true
	for _, l := range lines {
		l = strings.TrimRight(l, " ")
		if l == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, l)
	}
	return strings.TrimRight(strings.Join(out, "\n"), "\n")
}
