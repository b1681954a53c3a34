package scraper

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/akolanti/SDKAssistant/internal/domain/commonModels"
	"github.com/akolanti/SDKAssistant/internal/extract"
)

var localExtensions = map[string]bool{
	".rst": true, ".md": true, ".txt": true, ".py": true,
	".odt": true, ".docx": true, ".rtf": true,
}

// LoadDirectory builds documents from a local checkout of the documentation repository.
// Python files become examples, everything else documentation pages.
func LoadDirectory(root string) ([]commonModels.Document, error) {
	var docs []commonModels.Document
	err := filepath.WalkDir(root, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && filePath != root {
				return filepath.SkipDir
			}
			return nil
		}
		name := d.Name()
		if !localExtensions[strings.ToLower(filepath.Ext(name))] || name == "__init__.py" || name == "404.rst" {
			return nil
		}

		content, err := extract.FileText(filePath)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, filePath)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		doc := commonModels.Document{
			SourcePath:       rel,
			SourceURL:        "file://" + filepath.ToSlash(filePath),
			DocumentationURL: DocumentationURL(name),
			Content:          content,
			Type:             commonModels.Documentation,
		}
		if strings.HasSuffix(name, ".py") {
			doc.DocumentationURL = ExampleURL(rel)
			doc.Type = commonModels.Example
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", root, err)
	}
	return docs, nil
}
