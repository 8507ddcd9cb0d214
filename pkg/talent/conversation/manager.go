package conversation

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"talent-search-be/internal/entity"
)

// Store abstracts the session persistence backend. The in-memory
// implementation applies a TTL; the Manager never destroys contexts on
// its own.
type Store interface {
	Save(ctx *Context)
	Get(sessionId string) (*Context, bool)
	Delete(sessionId string)
}

// Manager owns conversation contexts. Contexts are created lazily on
// first use and every mutating call bumps UpdatedAt.
type Manager struct {
	store Store

	mu sync.Mutex // guards lazy creation per session id
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

func (m *Manager) GetOrCreate(sessionId string) *Context {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ctx, found := m.store.Get(sessionId); found {
		return ctx
	}

	now := time.Now()
	ctx := &Context{
		SessionId: sessionId,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.store.Save(ctx)
	return ctx
}

func (m *Manager) AddMessage(ctx *Context, role, content string, metadata map[string]string) {
	ctx.Messages = append(ctx.Messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
		Metadata:  metadata,
	})
	m.touch(ctx)
}

func (m *Manager) SetFocusedCandidate(ctx *Context, candidate *entity.Candidate) {
	ctx.FocusedCandidate = candidate
	m.touch(ctx)
}

func (m *Manager) SetFocusedCandidates(ctx *Context, candidates []*entity.Candidate) {
	ctx.FocusedCandidates = candidates
	m.touch(ctx)
}

func (m *Manager) SetLastIntent(ctx *Context, intent string) {
	ctx.LastIntent = intent
	m.touch(ctx)
}

func (m *Manager) SetLastQuery(ctx *Context, query string, traits []string) {
	ctx.LastQuery = query
	ctx.LastTraits = traits
	m.touch(ctx)
}

// Clear resets a context to its empty state while keeping the session id
// alive. Calling it twice yields the same result as once.
func (m *Manager) Clear(ctx *Context) {
	ctx.Messages = nil
	ctx.FocusedCandidate = nil
	ctx.FocusedCandidates = nil
	ctx.LastIntent = ""
	ctx.LastQuery = ""
	ctx.LastTraits = nil
	m.touch(ctx)
}

func (m *Manager) Delete(sessionId string) {
	m.store.Delete(sessionId)
}

func (m *Manager) touch(ctx *Context) {
	ctx.UpdatedAt = time.Now()
	m.store.Save(ctx)
}

// Summarize produces a short state digest used to ground the parser and
// classifier prompts.
func (m *Manager) Summarize(ctx *Context) string {
	var sb strings.Builder

	if ctx.FocusedCandidate != nil {
		fmt.Fprintf(&sb, "Currently discussing candidate %q.\n", ctx.FocusedCandidate.Name)
	}
	if n := len(ctx.FocusedCandidates); n > 0 {
		names := make([]string, 0, n)
		for _, c := range ctx.FocusedCandidates {
			names = append(names, c.Name)
		}
		fmt.Fprintf(&sb, "Last result set (%d): %s.\n", n, strings.Join(names, ", "))
	}
	if ctx.LastIntent != "" {
		fmt.Fprintf(&sb, "Previous intent: %s.\n", ctx.LastIntent)
	}
	if ctx.LastQuery != "" {
		fmt.Fprintf(&sb, "Previous query: %q.\n", ctx.LastQuery)
	}
	if len(ctx.LastTraits) > 0 {
		fmt.Fprintf(&sb, "Previous criteria traits: %s.\n", strings.Join(ctx.LastTraits, ", "))
	}

	if sb.Len() == 0 {
		return "No prior conversation state."
	}
	return sb.String()
}
