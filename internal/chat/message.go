package chat

import (
	"time"

	"github.com/google/uuid"
)

// Role tags a message with its speaker. Fixed at creation.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleError     Role = "error"
)

// RoleFromWire maps the query service's message_type values onto client
// roles. The wire calls the assistant "bot"; anything unrecognized is
// rendered as assistant output.
func RoleFromWire(messageType string) Role {
	switch messageType {
	case "user":
		return RoleUser
	case "bot":
		return RoleAssistant
	case "system":
		return RoleSystem
	case "error":
		return RoleError
	default:
		return RoleAssistant
	}
}

// Record is one result row: column name to untyped value, exactly as
// decoded from the service response. It is an alias so row slices flow
// between packages without element-wise copies.
type Record = map[string]any

// Message is one immutable turn in the conversation log.
type Message struct {
	ID        string
	Role      Role
	Body      string
	CreatedAt time.Time

	// SQL is set on assistant messages that executed (or proposed) a query.
	SQL string

	// Columns preserves the column order of the first record as it appeared
	// on the wire; Go maps do not keep key order, so it travels alongside
	// Rows.
	Columns []string
	Rows    []Record

	// NeedsClarification marks a message that offers the run-anyway and
	// refine follow-up actions.
	NeedsClarification bool
}

// NewMessage builds a message with a fresh ID and creation time.
func NewMessage(role Role, body string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
}

// HasRows reports whether the message carries a non-empty result set.
func (m Message) HasRows() bool {
	return len(m.Rows) > 0
}
