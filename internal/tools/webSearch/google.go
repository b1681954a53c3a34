package webSearch

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// Searcher returns the links of the top results for a query, best first.
type Searcher interface {
	TopURLs(ctx context.Context, query string, n int) ([]string, error)
}

type googleSearcher struct {
	service *customsearch.Service
	cx      string
}

// NewGoogleSearcher uses the Programmable Search Engine identified by cx.
func NewGoogleSearcher(ctx context.Context, apiKey string, cx string) (Searcher, error) {
	if apiKey == "" || cx == "" {
		return nil, errors.New("google search needs an API key and a search engine id")
	}
	service, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating custom search service: %w", err)
	}
	return &googleSearcher{service: service, cx: cx}, nil
}

func (g *googleSearcher) TopURLs(ctx context.Context, query string, n int) ([]string, error) {
	res, err := g.service.Cse.List().Cx(g.cx).Q(query).Num(int64(n)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("google search: %w", err)
	}

	urls := make([]string, 0, n)
	for _, item := range res.Items {
		if len(urls) == n {
			break
		}
		urls = append(urls, item.Link)
	}
	return urls, nil
}
