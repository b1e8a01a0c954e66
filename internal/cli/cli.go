package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bssshyamsundhar/float-chat/internal/config"
	"github.com/bssshyamsundhar/float-chat/internal/export"
	"github.com/bssshyamsundhar/float-chat/internal/queryapi"
	"github.com/bssshyamsundhar/float-chat/internal/settings"
)

func Run() int {
	if len(os.Args) < 2 {
		return runTUI(os.Args[1:])
	}

	cmd := os.Args[1]
	if strings.HasPrefix(cmd, "-") {
		return runTUI(os.Args[1:])
	}
	switch cmd {
	case "ask":
		return runAsk(os.Args[2:])
	case "health":
		return runHealth(os.Args[2:])
	case "conversations":
		return runConversations(os.Args[2:])
	case "tui":
		return runTUI(os.Args[2:])
	default:
		usage()
		return 1
	}
}

func usage() {
	fmt.Println("floatchat <command> [options]")
	fmt.Println("Commands: tui, ask, health, conversations")
}

func runAsk(args []string) int {
	fs := flag.NewFlagSet("ask", flag.ContinueOnError)
	format := fs.String("format", "pretty", "output format: json|pretty")
	server := fs.String("server", "", "query service base URL")
	timeout := fs.Duration("timeout", 0, "request timeout")
	conversation := fs.String("conversation", "", "continue an existing conversation")
	continueLast := fs.Bool("continue", false, "continue the conversation from the previous run")
	csvPath := fs.String("csv", "", "write returned rows as CSV to this path (- for stdout)")
	runAnyway := fs.Bool("run-anyway", false, "skip the clarification gate")
	sqlQuery := fs.String("sql", "", "with -run-anyway, execute this query instead of generating one")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() < 1 {
		fmt.Println("usage: floatchat ask \"question\"")
		return 1
	}
	question := strings.Join(fs.Args(), " ")

	cfg, err := loadConfig(*server, *timeout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	client := queryapi.New(cfg.ServerURL, cfg.Timeout)
	store, err := settings.Open(cfg.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	convID := *conversation
	if convID == "" && *continueLast {
		convID = store.LastConversation()
		if convID == "" {
			fmt.Fprintln(os.Stderr, "no previous conversation to continue")
			return 1
		}
	}

	ctx, cancel := contextWithSignals()
	defer cancel()

	resp, err := client.Query(ctx, queryapi.QueryRequest{
		Question:       question,
		ConversationID: convID,
		Override:       *runAnyway,
		SQLQuery:       *sqlQuery,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	if err := store.UpdateLastConversation(resp.ConversationID); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	exit := 0
	if resp.MessageType == "error" {
		exit = 1
	}

	if *format == "json" {
		printJSON(askPayload{
			Response:            resp.Response,
			SQLQuery:            resp.SQLQuery,
			ConversationID:      resp.ConversationID,
			ClarificationNeeded: resp.ClarificationNeeded,
			Columns:             resp.Data.Columns,
			Rows:                resp.Data.Records,
		})
		return exit
	}

	fmt.Println(resp.Response)
	if resp.ClarificationNeeded {
		fmt.Println()
		if resp.SQLQuery != "" {
			fmt.Printf("proposed sql: %s\n", resp.SQLQuery)
		}
		fmt.Printf("Re-run with -conversation %s -run-anyway to execute it anyway.\n", resp.ConversationID)
	}
	if len(resp.Data.Records) > 0 {
		if *csvPath != "" {
			if err := writeCSV(*csvPath, resp.Data.Columns, resp.Data.Records); err != nil {
				fmt.Fprintln(os.Stderr, err.Error())
				return 1
			}
			if *csvPath != "-" {
				fmt.Printf("Wrote %d rows to %s\n", len(resp.Data.Records), *csvPath)
			}
		} else {
			fmt.Println()
			if err := export.WriteTSV(os.Stdout, resp.Data.Columns, resp.Data.Records); err != nil {
				fmt.Fprintln(os.Stderr, err.Error())
				return 1
			}
		}
	}
	fmt.Printf("conversation: %s\n", resp.ConversationID)
	return exit
}

type askPayload struct {
	Response            string           `json:"response"`
	SQLQuery            string           `json:"sql_query,omitempty"`
	ConversationID      string           `json:"conversation_id"`
	ClarificationNeeded bool             `json:"clarification_needed"`
	Columns             []string         `json:"columns,omitempty"`
	Rows                []map[string]any `json:"rows,omitempty"`
}

func runHealth(args []string) int {
	fs := flag.NewFlagSet("health", flag.ContinueOnError)
	format := fs.String("format", "pretty", "output format: json|pretty")
	server := fs.String("server", "", "query service base URL")
	timeout := fs.Duration("timeout", 0, "request timeout")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	client, err := newClient(*server, *timeout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	ctx, cancel := contextWithSignals()
	defer cancel()

	health, err := client.Health(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}

	if *format == "json" {
		printJSON(health)
	} else {
		fmt.Printf("service:    %s\n", health.Status)
		fmt.Printf("database:   %s\n", health.Database)
		fmt.Printf("qdrant:     %s\n", health.Qdrant)
		fmt.Printf("embeddings: %s\n", health.EmbeddingModel)
	}
	if !health.Healthy() {
		return 1
	}
	return 0
}

func runConversations(args []string) int {
	fs := flag.NewFlagSet("conversations", flag.ContinueOnError)
	format := fs.String("format", "pretty", "output format: json|pretty")
	server := fs.String("server", "", "query service base URL")
	timeout := fs.Duration("timeout", 0, "request timeout")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	client, err := newClient(*server, *timeout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	ctx, cancel := contextWithSignals()
	defer cancel()

	ids, err := client.Conversations(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}

	if *format == "json" {
		printJSON(map[string]any{"conversations": ids})
		return 0
	}
	if len(ids) == 0 {
		fmt.Println("no stored conversations")
		return 0
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	return 0
}

func loadConfig(server string, timeout time.Duration) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if server != "" {
		cfg.ServerURL = server
	}
	if timeout > 0 {
		cfg.Timeout = timeout
	}
	return cfg, nil
}

func newClient(server string, timeout time.Duration) (*queryapi.Client, error) {
	cfg, err := loadConfig(server, timeout)
	if err != nil {
		return nil, err
	}
	return queryapi.New(cfg.ServerURL, cfg.Timeout), nil
}

func contextWithSignals() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx, cancel
}

func writeCSV(path string, columns []string, rows []map[string]any) error {
	if path == "-" {
		return export.Write(os.Stdout, columns, rows)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	if err := export.Write(f, columns, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printJSON(v any) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(data))
}
