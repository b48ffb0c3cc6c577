package epub

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// entityNameToNumeric maps common HTML named entities to XML numeric
// character references. encoding/xml does not recognise HTML named
// entities, so chapter bodies are converted before the well-formedness
// scan. The set covers the typographic entities content sources emit most.
var entityNameToNumeric = map[string]string{
	"nbsp":   "&#160;",
	"mdash":  "&#8212;",
	"ndash":  "&#8211;",
	"hellip": "&#8230;",
	"lsquo":  "&#8216;",
	"rsquo":  "&#8217;",
	"ldquo":  "&#8220;",
	"rdquo":  "&#8221;",
	"copy":   "&#169;",
	"reg":    "&#174;",
	"trade":  "&#8482;",
	"bull":   "&#8226;",
	"middot": "&#183;",
	"laquo":  "&#171;",
	"raquo":  "&#187;",
	"deg":    "&#176;",
	"times":  "&#215;",
	"sect":   "&#167;",
}

// htmlEntityPattern matches the named entities above, case-insensitively.
var htmlEntityPattern = regexp.MustCompile(
	`(?i)&(nbsp|mdash|ndash|hellip|lsquo|rsquo|ldquo|rdquo|copy|reg|trade|bull|middot|laquo|raquo|deg|times|sect);`)

// preprocessHTMLEntities replaces the named entities with numeric
// character references so a strict XML parser accepts the markup.
func preprocessHTMLEntities(s string) string {
	return htmlEntityPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.ToLower(match[1 : len(match)-1])
		if replacement, ok := entityNameToNumeric[name]; ok {
			return replacement
		}
		return match
	})
}

// checkWellFormed verifies that an XHTML fragment can be embedded as
// well-formed XML. The fragment is wrapped in a synthetic root element and
// scanned with a strict XML tokenizer; the first error is returned. This
// is a structural check only — nothing is repaired.
func checkWellFormed(fragment string) error {
	wrapped := "<body>" + preprocessHTMLEntities(fragment) + "</body>"
	dec := xml.NewDecoder(strings.NewReader(wrapped))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// rewriteChapterBody parses a chapter body fragment and materialises its
// image references. With embedding enabled, each schemeless <img src>
// must resolve through refs (body reference → document-relative href) and
// is rewritten to the allocated path; an unresolved reference is an error.
// With embedding disabled, schemeless <img> elements are removed, since no
// image bytes will exist in the archive. References carrying a URI scheme
// (http:, https:, data:) are left untouched in both modes.
//
// The returned markup is re-rendered from the parsed tree, so entities are
// normalised and void elements are emitted in XML-compatible form.
func rewriteChapterBody(fragment string, embedImages bool, refs map[string]string) (string, error) {
	ctxNode := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctxNode)
	if err != nil {
		return "", err
	}

	root := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	for _, n := range nodes {
		root.AppendChild(n)
	}

	if err := rewriteImageNodes(root, embedImages, refs); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// rewriteImageNodes walks the subtree rooted at n, rewriting or removing
// <img> elements according to the embed policy.
func rewriteImageNodes(n *html.Node, embedImages bool, refs map[string]string) error {
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling

		if c.Type == html.ElementNode && c.DataAtom == atom.Img {
			src := attrValue(c, "src")
			if src == "" || hasURIScheme(src) {
				continue
			}
			if !embedImages {
				n.RemoveChild(c)
				continue
			}
			href, ok := refs[src]
			if !ok {
				return fmt.Errorf("unresolved image reference %q", src)
			}
			setAttrValue(c, "src", href)
			continue
		}

		if err := rewriteImageNodes(c, embedImages, refs); err != nil {
			return err
		}
	}
	return nil
}

// attrValue returns the value of the named un-namespaced attribute, or "".
func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// setAttrValue replaces the value of the named attribute, adding it if absent.
func setAttrValue(n *html.Node, key, val string) {
	for i, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// hasURIScheme reports whether s starts with a URI scheme like "https:"
// or "data:".
func hasURIScheme(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	// RFC 3986: a scheme must start with a letter.
	if !((s[0] >= 'A' && s[0] <= 'Z') || (s[0] >= 'a' && s[0] <= 'z')) {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ':' {
			return i > 1
		}
		if !(c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')) {
			return false
		}
	}
	return false
}
