package cli

import (
	"context"

	"github.com/akolanti/SDKAssistant/internal/bootstrap"
	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves POST /chat, the web chat sessions under /sessions, document ingestion
and job status, /metrics and the Swagger UI. Stops on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		listenAddr, _ := cmd.Flags().GetString("listen-addr")
		settings := config.Load()

		// the server owns its shutdown, services outlive the command context until it is done
		serviceContext, closeExternalServices := context.WithCancel(context.WithoutCancel(cmd.Context()))
		defer closeExternalServices()

		return server.Run(server.RunParams{
			Container:     bootstrap.New(serviceContext, settings),
			ListenAddr:    server.ListenAddr(listenAddr, settings),
			CloseServices: closeExternalServices,
		})
	},
}

func init() {
	serveCmd.Flags().String("listen-addr", "", "server listen address (LISTEN_ADDR, default "+config.ServerListenAddr+")")
	rootCmd.AddCommand(serveCmd)
}
