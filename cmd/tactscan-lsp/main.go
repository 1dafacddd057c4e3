// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"tactscan/internal/config"
	"tactscan/internal/lsp"
)

const lsName = "tactscan"

var (
	version = "0.1.0"
	handler protocol.Handler
)

func main() {
	configPath := flag.String("config", "", "Analyzer configuration file (YAML)")
	logPath := flag.String("log", "", "Log file (default: stderr)")
	verbosity := flag.Int("verbosity", 1, "Log verbosity (-4 to 2)")
	flag.Parse()

	if *logPath != "" {
		commonlog.Configure(*verbosity, logPath)
	} else {
		commonlog.Configure(*verbosity, nil)
	}
	log := commonlog.GetLogger("tactscan.lsp")

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Errorf("%s", err)
			os.Exit(2)
		}
	}

	tactHandler := lsp.NewTactHandler(cfg)

	handler = protocol.Handler{
		Initialize:                     tactHandler.Initialize,
		Initialized:                    tactHandler.Initialized,
		Shutdown:                       tactHandler.Shutdown,
		SetTrace:                       tactHandler.SetTrace,
		TextDocumentDidOpen:            tactHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           tactHandler.TextDocumentDidClose,
		TextDocumentDidChange:          tactHandler.TextDocumentDidChange,
		TextDocumentDidSave:            tactHandler.TextDocumentDidSave,
		TextDocumentSemanticTokensFull: tactHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Infof("starting %s language server %s", lsName, version)

	// Editors talk to the server over stdin/stdout
	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err)
		os.Exit(1)
	}
}
