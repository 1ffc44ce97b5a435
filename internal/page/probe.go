// Package page fetches and inspects a live page the way the extension's
// content script does: title extraction plus video/article detection from
// the DOM. Used for manual ingestion of pages the extension never saw.
package page

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Info is what a probe learns about a page.
type Info struct {
	URL       string
	Title     string
	IsVideo   bool
	IsArticle bool
}

// videoEmbedSelectors match embedded players from known video platforms.
var videoEmbedSelectors = []string{
	`iframe[src*="youtube.com/embed"]`,
	`iframe[src*="player.vimeo.com"]`,
	`iframe[src*="dailymotion.com/embed"]`,
	`iframe[src*="twitch.tv"]`,
	`iframe[src*="facebook.com/plugins/video"]`,
}

// articleSelectors match common article containers.
var articleSelectors = []string{
	"article",
	`[role="article"]`,
	".article",
	".post",
	".blog-post",
}

// Prober fetches pages over HTTP and classifies them from their DOM.
type Prober struct {
	client *http.Client
}

// NewProber wires an HTTP client; a nil client gets a 20s-timeout default.
func NewProber(client *http.Client) *Prober {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Prober{client: client}
}

// Probe fetches rawURL and inspects the document.
func (p *Prober) Probe(ctx context.Context, rawURL string) (*Info, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("fetch %s: status %s", rawURL, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rawURL, err)
	}

	return inspect(rawURL, doc), nil
}

// inspect classifies a parsed document.
func inspect(rawURL string, doc *goquery.Document) *Info {
	info := &Info{
		URL:   rawURL,
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	if doc.Find("video").Length() > 0 {
		info.IsVideo = true
	}
	if doc.Find(`meta[property="og:video"]`).Length() > 0 {
		info.IsVideo = true
	}
	if !info.IsVideo {
		for _, sel := range videoEmbedSelectors {
			if doc.Find(sel).Length() > 0 {
				info.IsVideo = true
				break
			}
		}
	}

	for _, sel := range articleSelectors {
		if doc.Find(sel).Length() > 0 {
			info.IsArticle = true
			break
		}
	}

	return info
}
