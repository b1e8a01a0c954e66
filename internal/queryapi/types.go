package queryapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/bssshyamsundhar/float-chat/internal/chat"
)

// QueryRequest is the body of POST /query.
type QueryRequest struct {
	Question       string `json:"question"`
	ConversationID string `json:"conversation_id,omitempty"`
	// Override skips the clarification gate server-side; SQLQuery, when
	// set alongside it, is executed verbatim instead of being regenerated.
	Override bool   `json:"override,omitempty"`
	SQLQuery string `json:"sql_query,omitempty"`
}

// QueryResponse is the body of a /query reply.
type QueryResponse struct {
	Response            string `json:"response"`
	SQLQuery            string `json:"sql_query"`
	Data                RowSet `json:"data"`
	ClarificationNeeded bool   `json:"clarification_needed"`
	ConversationID      string `json:"conversation_id"`
	MessageType         string `json:"message_type"`
}

// Message converts the reply into a conversation entry.
func (r *QueryResponse) Message() chat.Message {
	msg := chat.NewMessage(chat.RoleFromWire(r.MessageType), r.Response)
	msg.SQL = r.SQLQuery
	msg.Columns = r.Data.Columns
	msg.Rows = r.Data.Records
	msg.NeedsClarification = r.ClarificationNeeded
	return msg
}

// RowSet is a decoded result set. Go maps forget JSON key order, so the
// decoder captures the first record's field order separately; that order
// is how the service lays out SELECT columns.
type RowSet struct {
	Columns []string
	Records []map[string]any
}

// UnmarshalJSON accepts null, an empty array, or an array of objects.
func (rs *RowSet) UnmarshalJSON(data []byte) error {
	rs.Columns = nil
	rs.Records = nil
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return fmt.Errorf("decode result rows: %w", err)
	}
	if len(raws) == 0 {
		return nil
	}
	cols, err := objectKeys(raws[0])
	if err != nil {
		return fmt.Errorf("decode result columns: %w", err)
	}
	rs.Columns = cols
	rs.Records = make([]map[string]any, 0, len(raws))
	for _, raw := range raws {
		var rec map[string]any
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("decode result row: %w", err)
		}
		rs.Records = append(rs.Records, rec)
	}
	return nil
}

// objectKeys walks one JSON object with the streaming decoder and
// returns its keys in wire order.
func objectKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("row is not an object")
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("row key is not a string")
		}
		keys = append(keys, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// HealthResponse is the body of GET /health. Every field is a short
// human-readable state word.
type HealthResponse struct {
	Status         string `json:"status"`
	Database       string `json:"database"`
	Qdrant         string `json:"qdrant"`
	EmbeddingModel string `json:"embedding_model"`
}

// Healthy reports whether the service called itself healthy.
func (h *HealthResponse) Healthy() bool {
	return h.Status == "healthy"
}

type conversationList struct {
	Conversations []string `json:"conversations"`
}

type conversationHistory struct {
	ConversationID string        `json:"conversation_id"`
	Messages       []WireMessage `json:"messages"`
}

// WireMessage is one stored turn as the service archives it. Timestamps
// travel as epoch-second strings.
type WireMessage struct {
	Message     string `json:"message"`
	MessageType string `json:"message_type"`
	Timestamp   string `json:"timestamp"`
	SQLQuery    string `json:"sql_query"`
	Data        RowSet `json:"data"`
}

// ChatMessage rebuilds the conversation entry this turn was created
// from. Stored turns do not carry the clarification flag, but a system
// turn with an attached query can only have been a clarification prompt,
// so the follow-up actions are restored for it.
func (w WireMessage) ChatMessage() chat.Message {
	msg := chat.NewMessage(chat.RoleFromWire(w.MessageType), w.Message)
	if secs, err := strconv.ParseInt(w.Timestamp, 10, 64); err == nil {
		msg.CreatedAt = time.Unix(secs, 0).UTC()
	}
	msg.SQL = w.SQLQuery
	msg.Columns = w.Data.Columns
	msg.Rows = w.Data.Records
	msg.NeedsClarification = w.MessageType == "system" && w.SQLQuery != ""
	return msg
}
