package pagemeta

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	fetchTimeout   = 3 * time.Second
	maxBodyBytes   = 2 << 20
	maxDescription = 200
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Meta holds the title and description scraped from a portfolio page.
type Meta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Fetcher retrieves page metadata for portfolio URLs.
type Fetcher struct {
	client *http.Client
}

// NewFetcher builds a fetcher with a short timeout so slow portfolio hosts
// never stall analysis. Certificate errors are tolerated; many personal
// sites run with misconfigured TLS.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: fetchTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}
}

// Fetch downloads the page at rawURL and extracts its metadata.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Meta, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return Meta{}, fmt.Errorf("invalid url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Meta{}, fmt.Errorf("url must be http or https")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Meta{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return Meta{}, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Meta{}, fmt.Errorf("fetch page: status %d", resp.StatusCode)
	}

	return Parse(io.LimitReader(resp.Body, maxBodyBytes))
}

// Parse extracts title and description from an HTML document.
func Parse(r io.Reader) (Meta, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Meta{}, fmt.Errorf("parse html: %w", err)
	}

	var title, ogTitle, description, ogDescription string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if title == "" && n.FirstChild != nil {
					title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "meta":
				var property, name, content string
				for _, attr := range n.Attr {
					switch strings.ToLower(attr.Key) {
					case "property":
						property = strings.ToLower(attr.Val)
					case "name":
						name = strings.ToLower(attr.Val)
					case "content":
						content = attr.Val
					}
				}
				if property == "og:title" && ogTitle == "" {
					ogTitle = strings.TrimSpace(content)
				}
				if name == "description" && description == "" {
					description = strings.TrimSpace(content)
				}
				if property == "og:description" && ogDescription == "" {
					ogDescription = strings.TrimSpace(content)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	meta := Meta{Title: title, Description: description}
	if meta.Title == "" {
		meta.Title = ogTitle
	}
	if meta.Description == "" {
		meta.Description = ogDescription
	}
	meta.Description = truncate(meta.Description, maxDescription)
	return meta, nil
}

// truncate limits s to limit characters, cutting on a rune boundary so
// multi-byte text stays valid UTF-8.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
