package queryapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bssshyamsundhar/float-chat/internal/chat"
)

func TestQuerySendsRequestAndDecodesReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/query", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "show me salinity near the equator", req["question"])
		require.Equal(t, "conv-1", req["conversation_id"])
		_, hasOverride := req["override"]
		require.False(t, hasOverride)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"response":"✅ **Query executed successfully!**\nFound 2 records","sql_query":"SELECT psal FROM measurements LIMIT 500;","data":[{"psal":35.1,"pres":5.0},{"psal":35.4,"pres":10.0}],"clarification_needed":false,"conversation_id":"conv-1","message_type":"bot"}`)
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	resp, err := client.Query(context.Background(), QueryRequest{
		Question:       "show me salinity near the equator",
		ConversationID: "conv-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "conv-1", resp.ConversationID)
	assert.Equal(t, "bot", resp.MessageType)
	assert.Equal(t, []string{"psal", "pres"}, resp.Data.Columns)
	assert.Len(t, resp.Data.Records, 2)
}

func TestQuerySendsOverrideAndSQL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, true, req["override"])
		require.Equal(t, "SELECT 1;", req["sql_query"])
		fmt.Fprint(w, `{"response":"ok","clarification_needed":false,"conversation_id":"c","message_type":"bot"}`)
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	_, err := client.Query(context.Background(), QueryRequest{
		Question: "find whales",
		Override: true,
		SQLQuery: "SELECT 1;",
	})
	require.NoError(t, err)
}

func TestQuerySurfacesServiceDetailOnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"detail":"database unavailable"}`)
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	_, err := client.Query(context.Background(), QueryRequest{Question: "q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "database unavailable")
}

func TestQueryTruncatesOpaqueErrorBodies(t *testing.T) {
	long := make([]byte, 400)
	for i := range long {
		long[i] = 'x'
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write(long)
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	_, err := client.Query(context.Background(), QueryRequest{Question: "q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "...")
	assert.Less(t, len(err.Error()), 300)
}

func TestQueryRespectsContextCancel(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := New(server.URL, time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Query(ctx, QueryRequest{Question: "q"})
	require.Error(t, err)
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/health", r.URL.Path)
		fmt.Fprint(w, `{"status":"healthy","database":"connected","qdrant":"connected","embedding_model":"loaded"}`)
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	h, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.True(t, h.Healthy())
	assert.Equal(t, "connected", h.Database)
	assert.Equal(t, "loaded", h.EmbeddingModel)
}

func TestConversations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/conversations", r.URL.Path)
		fmt.Fprint(w, `{"conversations":["conv-1","conv-2"]}`)
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	ids, err := client.Conversations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"conv-1", "conv-2"}, ids)
}

func TestConversationRestoresTurns(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/conversations/conv-1", r.URL.Path)
		fmt.Fprint(w, `{"conversation_id":"conv-1","messages":[
			{"message":"show floats","message_type":"user","timestamp":"1757845800"},
			{"message":"✅ done","message_type":"bot","timestamp":"1757845805","sql_query":"SELECT 1;","data":[{"n":1}]}
		]}`)
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	msgs, err := client.Conversation(context.Background(), "conv-1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	assert.Equal(t, chat.RoleUser, msgs[0].Role)
	assert.Equal(t, "show floats", msgs[0].Body)
	assert.Equal(t, chat.RoleAssistant, msgs[1].Role)
	assert.Equal(t, "SELECT 1;", msgs[1].SQL)
	assert.Equal(t, []string{"n"}, msgs[1].Columns)
	assert.True(t, msgs[1].CreatedAt.After(msgs[0].CreatedAt))
}

func TestConversationNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"detail":"Conversation not found"}`)
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	_, err := client.Conversation(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Conversation not found")
}

func TestNewNormalizesBaseURL(t *testing.T) {
	client := New("http://localhost:8000/", time.Second)
	assert.Equal(t, "http://localhost:8000", client.BaseURL())
}
