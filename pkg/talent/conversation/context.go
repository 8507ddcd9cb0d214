package conversation

import (
	"sync"
	"time"

	"talent-search-be/internal/entity"
)

// Message is immutable once appended to a context.
type Message struct {
	Role      string
	Content   string
	Timestamp time.Time
	Metadata  map[string]string
}

// Context is the per-session dialogue state. The focused candidate and the
// focused candidate set are independent: setting one does not clear the
// other. All mutations go through the Manager, which holds the context
// lock for the duration of a turn.
type Context struct {
	SessionId         string
	Messages          []Message
	FocusedCandidate  *entity.Candidate
	FocusedCandidates []*entity.Candidate
	LastIntent        string
	LastQuery         string
	LastTraits        []string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	mu sync.Mutex
}

// Lock serializes turns within one session. Different sessions are
// independent.
func (c *Context) Lock() {
	c.mu.Lock()
}

func (c *Context) Unlock() {
	c.mu.Unlock()
}

// History returns the last limit messages in chronological order.
// limit <= 0 returns everything.
func (c *Context) History(limit int) []Message {
	if limit <= 0 || limit >= len(c.Messages) {
		out := make([]Message, len(c.Messages))
		copy(out, c.Messages)
		return out
	}
	out := make([]Message, limit)
	copy(out, c.Messages[len(c.Messages)-limit:])
	return out
}
