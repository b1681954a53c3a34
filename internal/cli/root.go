package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/akolanti/SDKAssistant/internal/bootstrap"
	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/pkg/logger_i"
	"github.com/spf13/cobra"
)

var version = "dev"

var logFile string

// quietCommands own the terminal or stdout, logs go to the log file only.
var quietCommands = map[string]bool{
	"chat": true,
	"mcp":  true,
}

var rootCmd = &cobra.Command{
	Use:   "assistant",
	Short: "Generative AI Python SDK assistant",
	Long: `Answers questions about the Generative AI Python SDK with documentation search,
web search and a sandboxed code interpreter.

Building the documentation index:
  assistant scrape --output documents.json
  assistant split --input documents.json --output splits.json
  assistant index --input splits.json

Front ends:
  assistant serve   HTTP API and web chat sessions
  assistant chat    terminal chat
  assistant mcp     the agent tools over the Model Context Protocol (stdio)`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		path := logFile
		if path == "" {
			path = config.Load().LogFilePath
		}
		logger_i.InitWithOptions(logger_i.Options{FilePath: path, Quiet: quietCommands[cmd.Name()]})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this rotating file (LOG_FILE_PATH)")
	rootCmd.Version = version
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// newContainer wires clients lazily for the command; they are closed with the command context.
func newContainer(cmd *cobra.Command) *bootstrap.Container {
	return bootstrap.New(cmd.Context(), config.Load())
}
