package convert

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// blockElements delimit paragraph boundaries during HTML text extraction.
var blockElements = map[string]bool{
	"p": true, "div": true, "li": true, "tr": true, "blockquote": true,
	"section": true, "article": true, "table": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// HTML extracts paragraph-delimited text from an HTML document. Block
// elements delimit paragraphs; anchor hrefs are preserved inline after the
// anchor text so URL-bearing citations survive conversion.
func HTML(r io.Reader) (string, error) {
	root, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	var out strings.Builder
	var para strings.Builder

	flush := func() {
		text := strings.TrimSpace(para.String())
		if text != "" {
			out.WriteString(text)
			out.WriteString("\n\n")
		}
		para.Reset()
	}

	var walk func(node *html.Node)
	walk = func(node *html.Node) {
		switch node.Type {
		case html.TextNode:
			para.WriteString(node.Data)
			return
		case html.ElementNode:
			switch node.Data {
			case "script", "style", "head":
				return
			case "br":
				para.WriteString(" ")
			case "a":
				href := attrValue(node, "href")
				before := para.Len()
				for child := node.FirstChild; child != nil; child = child.NextSibling {
					walk(child)
				}
				anchorText := para.String()[before:]
				if strings.HasPrefix(href, "http") && !strings.Contains(anchorText, href) {
					para.WriteString(" " + href)
				}
				return
			}
		}

		block := node.Type == html.ElementNode && blockElements[node.Data]
		if block {
			flush()
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
		if block {
			flush()
		}
	}

	walk(root)
	flush()
	return out.String(), nil
}

func attrValue(node *html.Node, name string) string {
	for _, attr := range node.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}
	return ""
}
