package cli

import (
	"fmt"

	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/domain/commonModels"
	"github.com/akolanti/SDKAssistant/internal/rag/ingest"
	"github.com/akolanti/SDKAssistant/internal/rag/splitter"
	"github.com/akolanti/SDKAssistant/internal/scraper"
	"github.com/spf13/cobra"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Collect the documentation pages and examples",
	Long: `Downloads the .rst documentation pages and the .py examples of the SDK repository
through the GitHub API (GITHUB_API_TOKEN raises the rate limit), or reads them from a local
checkout with --local, and writes them as a JSON array of documents.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		output, _ := cmd.Flags().GetString("output")
		local, _ := cmd.Flags().GetString("local")

		var docs []commonModels.Document
		var err error
		if local != "" {
			docs, err = scraper.LoadDirectory(local)
		} else {
			docs, err = scraper.New(cmd.Context(), config.Load().GithubAPIToken).ScrapeAll(cmd.Context())
		}
		if err != nil {
			return err
		}
		if err = ingest.SaveJSON(output, docs); err != nil {
			return err
		}
		cmd.Printf("Saved %d documents to %s\n", len(docs), output)
		return nil
	},
}

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split long documents into sections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")

		docs, err := ingest.LoadDocuments(input)
		if err != nil {
			return fmt.Errorf("loading %s: %w", input, err)
		}
		splits := splitter.New().SplitAll(docs)
		if err = ingest.SaveJSON(output, splits); err != nil {
			return err
		}
		cmd.Printf("Split %d documents into %d sections, saved to %s\n", len(docs), len(splits), output)
		return nil
	},
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the documentation index",
	Long: `Chunks the sections, embeds every chunk and replaces the documentation collection
in qdrant. The old collection is dropped first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		input, _ := cmd.Flags().GetString("input")

		splits, err := ingest.LoadSplits(input)
		if err != nil {
			return fmt.Errorf("loading %s: %w", input, err)
		}
		ragService, err := newContainer(cmd).RagService()
		if err != nil {
			return err
		}
		count, err := ragService.IndexSplits(cmd.Context(), splits)
		if err != nil {
			return err
		}
		cmd.Printf("Indexed %d chunks from %d sections into %s\n", count, len(splits), config.DocumentationCollection)
		return nil
	},
}

func init() {
	scrapeCmd.Flags().StringP("output", "o", "documents.json", "documents file to write")
	scrapeCmd.Flags().String("local", "", "read a local checkout instead of calling GitHub")

	splitCmd.Flags().StringP("input", "i", "documents.json", "documents file to read")
	splitCmd.Flags().StringP("output", "o", "splits.json", "splits file to write")

	indexCmd.Flags().StringP("input", "i", "splits.json", "splits file to read")

	rootCmd.AddCommand(scrapeCmd, splitCmd, indexCmd)
}
