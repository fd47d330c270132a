package assistant

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Role distinguishes who produced a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

const greetingMessage = "👋 Hi! I'm your Data Assistant. Ask me anything about your campaign performance data!\n\n" +
	"For example:\n- 'Compare platforms'\n- 'Top 5 campaigns by conversions'\n- 'Daily trend last week'"

const clearedMessage = "👋 Chat cleared! Ask me anything about your campaign data."

// Turn is a single message in a conversation. Assistant turns may carry
// the raw result table so the surface can show it next to the prose.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Table     *Table    `json:"table,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is the append-only turn log for one interactive session.
// It lives in memory only: history does not survive a process restart.
type Conversation struct {
	ID string

	mu    sync.Mutex
	turns []Turn
}

// NewConversation creates a conversation seeded with the assistant greeting.
func NewConversation() *Conversation {
	c := &Conversation{ID: uuid.NewString()}
	c.append(Turn{Role: RoleAssistant, Content: greetingMessage, Timestamp: time.Now()})
	return c
}

// Append adds a turn to the history.
func (c *Conversation) Append(t Turn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.append(t)
}

func (c *Conversation) append(t Turn) {
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now()
	}
	c.turns = append(c.turns, t)
}

// Turns returns a copy of the history in order.
func (c *Conversation) Turns() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len returns the number of turns.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.turns)
}

// Reset discards the history and re-seeds it with the cleared greeting.
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = c.turns[:0]
	c.append(Turn{Role: RoleAssistant, Content: clearedMessage, Timestamp: time.Now()})
}

// Store keeps the live conversations for the HTTP surface, keyed by
// session id.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Conversation
}

// NewStore creates an empty conversation store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Conversation)}
}

// Get returns the conversation for the session id, if any.
func (s *Store) Get(id string) (*Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.sessions[id]
	return c, ok
}

// Create starts a new conversation and registers it.
func (s *Store) Create() *Conversation {
	c := NewConversation()
	s.mu.Lock()
	s.sessions[c.ID] = c
	s.mu.Unlock()
	return c
}

// GetOrCreate returns the conversation for id, creating a fresh one when
// the id is unknown or empty.
func (s *Store) GetOrCreate(id string) *Conversation {
	if id != "" {
		if c, ok := s.Get(id); ok {
			return c
		}
	}
	return s.Create()
}
