package webSearch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/customHttpClient"
	"github.com/akolanti/SDKAssistant/internal/metrics"
	"golang.org/x/net/html"
)

const maxPageBytes = 5 << 20

// Fetcher returns the visible text of a page. Failures come back as text, never as errors.
type Fetcher interface {
	FetchText(ctx context.Context, url string) string
}

type pageFetcher struct {
	client *http.Client
}

// NewFetcher gives up on a page after config.WebSearchScrapingTimeout.
func NewFetcher() Fetcher {
	return newFetcher(config.WebSearchScrapingTimeout)
}

func newFetcher(timeout time.Duration) *pageFetcher {
	return &pageFetcher{client: customHttpClient.WithTimeout(timeout)}
}

func (f *pageFetcher) FetchText(ctx context.Context, url string) string {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("web_fetch", time.Since(start)) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return failedRetrieval(err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return failedRetrieval(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("Failed to retrieve the webpage: Status code %d", resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return failedRetrieval(err)
	}
	return VisibleText(doc)
}

func failedRetrieval(err error) string {
	return "Failed to retrieve the webpage: " + err.Error()
}

var invisibleElements = map[string]bool{
	"script":   true,
	"style":    true,
	"template": true,
	"noscript": true,
}

// VisibleText joins the trimmed text nodes of the document with single spaces, skipping
// scripts, styles and comments.
func VisibleText(doc *html.Node) string {
	var parts []string
	var traverse func(*html.Node)
	traverse = func(node *html.Node) {
		if node.Type == html.ElementNode && invisibleElements[node.Data] {
			return
		}
		if node.Type == html.TextNode {
			if text := strings.TrimSpace(node.Data); text != "" {
				parts = append(parts, text)
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)
	return strings.Join(parts, " ")
}
