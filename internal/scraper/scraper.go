package scraper

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/domain/commonModels"
	"github.com/akolanti/SDKAssistant/pkg/logger_i"
	"github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

/*
Scraper collects the SDK documentation pages and examples from the GitHub contents API.
Documentation pages are the .rst files of the docs source directory, examples are every .py
file under the examples directory. Each one is paired with its page on the published site.
*/
type Scraper struct {
	client  *github.Client
	limiter *rate.Limiter
	owner   string
	repo    string
	logger  *logger_i.Logger
}

// New talks to github.com. Without a token requests are anonymous and rate limited harder.
func New(ctx context.Context, token string) *Scraper {
	httpClient := &http.Client{}
	if token != "" {
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	}
	httpClient.Timeout = config.ScraperRequestTimeout
	return NewWithClient(github.NewClient(httpClient))
}

func NewWithClient(client *github.Client) *Scraper {
	return &Scraper{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(config.ScraperRequestsPerSecond), 1),
		owner:   config.DocumentationRepoOwner,
		repo:    config.DocumentationRepoName,
		logger:  logger_i.NewLogger("scraper"),
	}
}

// ScrapeAll returns the documentation pages followed by the examples.
func (s *Scraper) ScrapeAll(ctx context.Context) ([]commonModels.Document, error) {
	docs, err := s.ScrapeDocumentation(ctx)
	if err != nil {
		return nil, err
	}
	examples, err := s.ScrapeExamples(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Scraping finished", "documentation", len(docs), "examples", len(examples))
	return append(docs, examples...), nil
}

func (s *Scraper) ScrapeDocumentation(ctx context.Context) ([]commonModels.Document, error) {
	entries, err := s.listDirectory(ctx, config.DocumentationSourceDir)
	if err != nil {
		return nil, err
	}

	var docs []commonModels.Document
	for _, entry := range entries {
		name := entry.GetName()
		if entry.GetType() != "file" || !strings.HasSuffix(name, ".rst") || name == "404.rst" {
			continue
		}
		doc, err := s.document(ctx, entry, DocumentationURL(name), commonModels.Documentation)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *Scraper) ScrapeExamples(ctx context.Context) ([]commonModels.Document, error) {
	return s.scrapeExamplesDir(ctx, config.DocumentationExamplesDir)
}

func (s *Scraper) scrapeExamplesDir(ctx context.Context, dir string) ([]commonModels.Document, error) {
	entries, err := s.listDirectory(ctx, dir)
	if err != nil {
		return nil, err
	}

	var docs []commonModels.Document
	for _, entry := range entries {
		switch entry.GetType() {
		case "dir":
			nested, err := s.scrapeExamplesDir(ctx, entry.GetPath())
			if err != nil {
				return nil, err
			}
			docs = append(docs, nested...)
		case "file":
			name := entry.GetName()
			if !strings.HasSuffix(name, ".py") || name == "__init__.py" {
				continue
			}
			doc, err := s.document(ctx, entry, ExampleURL(entry.GetPath()), commonModels.Example)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (s *Scraper) document(ctx context.Context, entry *github.RepositoryContent, documentationURL string, docType commonModels.DocType) (commonModels.Document, error) {
	content, err := s.fileContent(ctx, entry.GetPath())
	if err != nil {
		return commonModels.Document{}, err
	}
	s.logger.Info("Found page", "url", documentationURL)
	return commonModels.Document{
		SourcePath:       entry.GetPath(),
		SourceURL:        entry.GetDownloadURL(),
		DocumentationURL: documentationURL,
		Content:          content,
		Type:             docType,
	}, nil
}

func (s *Scraper) listDirectory(ctx context.Context, dir string) ([]*github.RepositoryContent, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	_, entries, _, err := s.client.Repositories.GetContents(ctx, s.owner, s.repo, dir, nil)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	return entries, nil
}

func (s *Scraper) fileContent(ctx context.Context, filePath string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}
	file, _, _, err := s.client.Repositories.GetContents(ctx, s.owner, s.repo, filePath, nil)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", filePath, err)
	}
	if file == nil {
		return "", fmt.Errorf("%s is a directory", filePath)
	}
	content, err := file.GetContent()
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", filePath, err)
	}
	return content, nil
}

// DocumentationURL maps a docs source file name (index.rst) to its published page.
func DocumentationURL(fileName string) string {
	base := path.Base(fileName)
	return config.DocumentationBaseURL + strings.TrimSuffix(base, path.Ext(base)) + ".html"
}

// ExampleURL maps an example path (examples/text/chat.py) to its published page.
func ExampleURL(filePath string) string {
	module := strings.ReplaceAll(strings.TrimSuffix(filePath, ".py"), "/", ".")
	return config.DocumentationBaseURL + "rst_source/" + module + ".html"
}
