package main

import (
	"os"

	"wikigen/internal/wikilog"
)

func main() {
	logger := wikilog.NewLogger(wikilog.Config{
		Format: wikilog.HumanFormat,
		Level:  wikilog.InfoLevel,
	})

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}
