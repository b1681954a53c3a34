// @title           Generative AI Python SDK Assistant API
// @version         1.0
// @description     Answers questions about the SDK with documentation search, web search and a code interpreter.

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"

	"github.com/akolanti/SDKAssistant/internal/bootstrap"
	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/server"
	"github.com/akolanti/SDKAssistant/pkg/logger_i"
)

var listenAddr string

func main() {
	logger_i.Init()

	//config
	flag.StringVar(&listenAddr, "listen-addr", "", "server listen address")
	flag.Parse()
	settings := config.Load()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	err := server.Run(server.RunParams{
		Container:     bootstrap.New(serviceContext, settings),
		ListenAddr:    server.ListenAddr(listenAddr, settings),
		CloseServices: closeExternalServices,
	})
	if err != nil {
		closeExternalServices()
		os.Exit(1)
	}
}
