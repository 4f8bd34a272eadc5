package fetcher

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockSelector lists the elements treated as one text unit each. The
// extracted text keeps one line per block so that downstream cleaning can
// reason about repeated units.
const blockSelector = "h1, h2, h3, h4, h5, h6, p, li, td, th, dt, dd, blockquote, pre, figcaption"

// Parse extracts title, readable text and outbound links from
// content.HTML, filling the corresponding fields.
func Parse(content *PageContent) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content.HTML))
	if err != nil {
		return err
	}

	// Extract title
	content.Title = strings.TrimSpace(doc.Find("title").First().Text())
	if content.Title == "" {
		content.Title = "No Title"
	}

	// Remove non-content elements before extracting text
	doc.Find("script, style, noscript, iframe, svg").Remove()

	var textParts []string
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		// Skip blocks that contain other blocks so nested content is
		// not extracted twice (e.g. li inside li, p inside blockquote).
		if s.Find(blockSelector).Length() > 0 {
			return
		}
		if text := collapseWhitespace(s.Text()); text != "" {
			textParts = append(textParts, text)
		}
	})

	// Pages without block elements still get their body text.
	if len(textParts) == 0 {
		if text := collapseWhitespace(doc.Find("body").Text()); text != "" {
			textParts = append(textParts, text)
		}
	}
	content.Text = strings.Join(textParts, "\n")

	content.Links = extractLinks(doc, content.URL)

	return nil
}

// extractLinks collects absolute http(s) links from anchor elements,
// resolving relative references against the page URL. Fragment-only and
// non-web schemes are discarded; duplicates collapse to one.
func extractLinks(doc *goquery.Document, pageURL string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	var links []string
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}

		// Skip fragments and javascript links
		if strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return
		}

		linkURL, err := url.Parse(href)
		if err != nil {
			return
		}

		// Make absolute if relative
		if !linkURL.IsAbs() {
			if base == nil {
				return
			}
			linkURL = base.ResolveReference(linkURL)
		}

		if linkURL.Scheme != "http" && linkURL.Scheme != "https" {
			return
		}

		linkURL.Fragment = ""
		fullURL := linkURL.String()

		if seen[fullURL] {
			return
		}
		seen[fullURL] = true

		links = append(links, fullURL)
	})

	return links
}

// collapseWhitespace reduces runs of whitespace to single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
