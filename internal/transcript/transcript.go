// Package transcript appends conversation turns to a JSONL file, one
// JSON object per line, for later replay or analysis.
package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/bssshyamsundhar/float-chat/internal/chat"
)

// Entry is one logged turn.
type Entry struct {
	Timestamp      string `json:"timestamp"`
	ConversationID string `json:"conversation_id,omitempty"`
	Role           string `json:"role"`
	Message        string `json:"message"`
	SQLQuery       string `json:"sql_query,omitempty"`
	RowsReturned   int    `json:"rows_returned,omitempty"`
}

// Writer appends entries to a single file. A nil Writer is valid and
// drops everything, so callers never branch on whether logging is on.
type Writer struct {
	mu sync.Mutex
	f  *os.File
}

// Open creates or opens the transcript at path for appending. An empty
// path returns a nil Writer, which is the disabled state.
func Open(path string) (*Writer, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	return &Writer{f: f}, nil
}

// Append records one message under its conversation.
func (w *Writer) Append(conversationID string, msg chat.Message) error {
	if w == nil {
		return nil
	}
	entry := Entry{
		Timestamp:      msg.CreatedAt.UTC().Format(time.RFC3339),
		ConversationID: conversationID,
		Role:           string(msg.Role),
		Message:        msg.Body,
		SQLQuery:       msg.SQL,
		RowsReturned:   len(msg.Rows),
	}
	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal transcript entry: %w", err)
	}
	line = append(line, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.f.Write(line); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}

// Close releases the underlying file.
func (w *Writer) Close() error {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.f.Close()
}
