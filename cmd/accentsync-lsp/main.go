package main

import (
	"os"

	"github.com/jsvensson/accentsync/internal/lsp"
	"github.com/jsvensson/accentsync/internal/store"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var version = "dev"

func main() {
	configDir := os.Getenv("ACCENTSYNC_CONFIG_DIR")
	if configDir == "" {
		configDir = store.DefaultConfigDir()
	}

	commonlog.Configure(1, nil)
	s := lsp.NewServer(version, configDir)
	if err := s.Run(); err != nil {
		os.Exit(1)
	}
}
