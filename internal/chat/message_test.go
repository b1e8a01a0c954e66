package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleFromWire(t *testing.T) {
	cases := map[string]Role{
		"user":    RoleUser,
		"bot":     RoleAssistant,
		"system":  RoleSystem,
		"error":   RoleError,
		"":        RoleAssistant,
		"unknown": RoleAssistant,
	}
	for wire, want := range cases {
		assert.Equal(t, want, RoleFromWire(wire), "message_type %q", wire)
	}
}

func TestNewMessageAssignsIDAndTime(t *testing.T) {
	a := NewMessage(RoleUser, "one")
	b := NewMessage(RoleUser, "two")

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestHasRows(t *testing.T) {
	msg := NewMessage(RoleAssistant, "results")
	assert.False(t, msg.HasRows())

	msg.Rows = []Record{}
	assert.False(t, msg.HasRows(), "empty set renders no table")

	msg.Rows = []Record{{"temp": 12.5}}
	assert.True(t, msg.HasRows())
}
