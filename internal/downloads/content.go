package downloads

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
	"golang.org/x/text/encoding/htmlindex"

	"ietfmeet/internal/model"
)

// stylesheet is injected into every materialized page so drafts and RFC
// texts render consistently.
const stylesheet = `body { font-family: ui-monospace, monospace; margin: 1em; }
pre { white-space: pre-wrap; }`

const (
	pagePre  = "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<style>\n" + stylesheet + "\n</style>\n</head>\n<body>\n"
	pagePost = "\n</body>\n</html>\n"
)

// Materialize loads a download's file, decodes it per the record's declared
// encoding (falling back to utf-8) and wraps it into display-ready HTML
// according to its mime type. Failures come back as errors with descriptive
// text; callers show them inline in place of the content.
func (m *Manager) Materialize(dl *model.Download) (string, error) {
	data, err := os.ReadFile(m.Path(dl))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", dl.Filename, err)
	}

	text, err := decodeCharset(data, dl.Encoding)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", dl.Filename, err)
	}

	switch dl.MimeType {
	case "text/markdown":
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(text), &buf); err != nil {
			return "", fmt.Errorf("render markdown %s: %w", dl.Filename, err)
		}
		return pagePre + buf.String() + pagePost, nil
	case "text/html":
		return injectStylesheet(text)
	default:
		// Plain text and anything unrecognized: fixed pre/post template.
		return pagePre + "<pre>" + escapeText(text) + "</pre>" + pagePost, nil
	}
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

func decodeCharset(data []byte, name string) (string, error) {
	if name == "" {
		name = "utf-8"
	}
	enc, err := htmlindex.Get(strings.ToLower(name))
	if err != nil {
		return "", fmt.Errorf("unknown encoding %q", name)
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// injectStylesheet adds the app stylesheet to an HTML document's head unless
// the document already carries its own styling.
func injectStylesheet(src string) (string, error) {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var head *html.Node
	styled := false
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "head":
				head = n
			case "style":
				styled = true
			case "link":
				for _, attr := range n.Attr {
					if attr.Key == "rel" && attr.Val == "stylesheet" {
						styled = true
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if head != nil && !styled {
		style := &html.Node{Type: html.ElementNode, Data: "style"}
		style.AppendChild(&html.Node{Type: html.TextNode, Data: stylesheet})
		head.AppendChild(style)
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}
