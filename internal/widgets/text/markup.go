package text

import (
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"golang.org/x/net/html"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// NewMarkdown returns the GFM renderer shared by the previewer and page
// chrome. Raw HTML in the source is not passed through.
func NewMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
}

// MarkdownPreviewer returns the markdown-previewer widget. The rendered
// fragment goes to Result.HTML and the HTML source to Result.Output.
func MarkdownPreviewer(md goldmark.Markdown) types.Widget {
	if md == nil {
		md = NewMarkdown()
	}
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		src := in.Raw("markdown")
		if strings.TrimSpace(src) == "" {
			return types.Result{}, types.InputError("markdown is required")
		}
		var buf bytes.Buffer
		if err := md.Convert([]byte(src), &buf); err != nil {
			return types.Result{}, types.ParseError("could not render markdown", err)
		}
		return types.Result{Output: buf.String(), HTML: buf.String()}, nil
	})
}

// Link is an anchor found in an HTML document.
type Link struct {
	Text string
	Href string
}

// blockTags end a line of extracted text.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true, "section": true,
	"article": true, "header": true, "footer": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "pre": true, "blockquote": true,
	"table": true, "ul": true, "ol": true, "hr": true,
}

// HTMLToText extracts the visible text and links of an HTML document.
// Scripts, styles and the head are dropped; block elements become line
// breaks and whitespace is normalised.
func HTMLToText(doc string) (string, []Link, error) {
	d, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return "", nil, types.ParseError("could not parse HTML", err)
	}
	d.Find("script, style, noscript, head, template").Remove()

	var links []Link
	d.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		links = append(links, Link{Text: strings.Join(strings.Fields(s.Text()), " "), Href: strings.TrimSpace(href)})
	})

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			if blockTags[n.Data] {
				b.WriteByte('\n')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockTags[n.Data] {
			b.WriteByte('\n')
		}
	}
	for _, n := range d.Nodes {
		walk(n)
	}

	text := CleanWhitespace(b.String(), WhitespaceOptions{TrimLines: true, Collapse: true, DropBlank: true})
	return text, links, nil
}

// HTMLToTextTool returns the html-to-text widget.
func HTMLToTextTool() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		src := in.Raw("html")
		if strings.TrimSpace(src) == "" {
			return types.Result{}, types.InputError("html is required")
		}
		text, links, err := HTMLToText(src)
		if err != nil {
			return types.Result{}, err
		}
		res := types.Result{Output: text}
		res.Add("Links", strconv.Itoa(len(links)))
		for _, l := range links {
			label := l.Text
			if label == "" {
				label = l.Href
			}
			res.Add(label, l.Href)
		}
		return res, nil
	})
}
