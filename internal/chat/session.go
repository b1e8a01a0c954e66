package chat

// Session is one client-side conversation: an append-only message log, the
// server-assigned conversation ID once known, and the single pending-request
// flag that gates submission.
//
// All mutation happens on the UI event loop; Session carries no lock. Views
// receive copies via Messages and report intent back through the controller,
// never by mutating the session directly.
type Session struct {
	conversationID string
	log            []Message
	pending        bool
}

// New creates a session whose log holds a single system welcome message.
func New(welcome string) *Session {
	return &Session{log: []Message{NewMessage(RoleSystem, welcome)}}
}

// Restore rebuilds a session from server-side conversation history. The
// restored session adopts the given conversation ID so follow-up questions
// continue the same thread.
func Restore(conversationID string, msgs []Message) *Session {
	s := &Session{conversationID: conversationID}
	s.log = append(s.log, msgs...)
	return s
}

// Append adds one message to the log. Messages are immutable once appended.
func (s *Session) Append(msg Message) {
	s.log = append(s.log, msg)
}

// Messages returns a snapshot copy of the log in append order.
func (s *Session) Messages() []Message {
	out := make([]Message, len(s.log))
	copy(out, s.log)
	return out
}

// Len returns the number of messages in the log.
func (s *Session) Len() int {
	return len(s.log)
}

// Last returns the most recent message, if any.
func (s *Session) Last() (Message, bool) {
	if len(s.log) == 0 {
		return Message{}, false
	}
	return s.log[len(s.log)-1], true
}

// LastUserBody returns the body of the most recent user message, searching
// from the end of the log. It feeds both the refine action and the question
// re-issued by run-anyway.
func (s *Session) LastUserBody() (string, bool) {
	for i := len(s.log) - 1; i >= 0; i-- {
		if s.log[i].Role == RoleUser {
			return s.log[i].Body, true
		}
	}
	return "", false
}

// LastClarification returns the most recent message still offering the
// clarification follow-up actions.
func (s *Session) LastClarification() (Message, bool) {
	for i := len(s.log) - 1; i >= 0; i-- {
		if s.log[i].NeedsClarification {
			return s.log[i], true
		}
	}
	return Message{}, false
}

// ConversationID returns the server-assigned conversation ID, or "" while
// none has been adopted.
func (s *Session) ConversationID() string {
	return s.conversationID
}

// AdoptConversationID stores the conversation ID from the first successful
// response. Later calls with a different ID are ignored; the session keeps
// the thread it started on.
func (s *Session) AdoptConversationID(id string) {
	if s.conversationID == "" && id != "" {
		s.conversationID = id
	}
}

// BeginRequest acquires the single in-flight request slot. It returns false
// if a request is already pending, in which case the caller must not issue
// another one.
func (s *Session) BeginRequest() bool {
	if s.pending {
		return false
	}
	s.pending = true
	return true
}

// EndRequest releases the in-flight slot. Callers run it on every completion
// path, transport errors included.
func (s *Session) EndRequest() {
	s.pending = false
}

// Pending reports whether a request is in flight.
func (s *Session) Pending() bool {
	return s.pending
}

// Clear resets the session to a fresh single-message log and discards the
// conversation ID. Purely local; the server is not contacted.
func (s *Session) Clear(welcome string) {
	s.conversationID = ""
	s.log = []Message{NewMessage(RoleSystem, welcome)}
}
