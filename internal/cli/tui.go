package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/bssshyamsundhar/float-chat/internal/config"
	"github.com/bssshyamsundhar/float-chat/internal/tui"
	"github.com/bssshyamsundhar/float-chat/internal/utils"
)

func runTUI(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	server := fs.String("server", "", "query service base URL")
	timeout := fs.Duration("timeout", 0, "request timeout")
	logFile := fs.String("log", "", "append client logs to this file")
	transcriptFile := fs.String("transcript", "", "append finished turns to this JSONL file")
	exportDir := fs.String("export-dir", "", "directory for CSV exports")
	pageSize := fs.Int("page-size", 0, "rows per results page")
	verbose := fs.Bool("verbose", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	if *server != "" {
		cfg.ServerURL = *server
	}
	if *timeout > 0 {
		cfg.Timeout = *timeout
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}
	if *transcriptFile != "" {
		cfg.TranscriptFile = *transcriptFile
	}
	if *exportDir != "" {
		cfg.ExportDir = *exportDir
	}
	if *pageSize > 0 {
		cfg.PageSize = *pageSize
	}
	level := "info"
	if *verbose {
		level = "debug"
	}

	logger, err := utils.NewLogger(level, cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	defer logger.Close()

	if err := tui.Run(cfg, logger); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}
