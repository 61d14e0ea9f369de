package notify

import (
	"context"
	"sync"

	"github.com/runoshun/g2g/internal/domain"
)

// Multi fans notices out to several notifiers. Each child keeps its own
// permission: a denied child is skipped, the others still deliver.
type Multi struct {
	children []domain.Notifier
	granted  []bool
	mu       sync.Mutex
}

// Ensure Multi implements domain.Notifier.
var _ domain.Notifier = (*Multi)(nil)

// NewMulti creates a Multi. Children are treated as granted until asked.
func NewMulti(children ...domain.Notifier) *Multi {
	granted := make([]bool, len(children))
	for i := range granted {
		granted[i] = true
	}
	return &Multi{children: children, granted: granted}
}

// RequestPermission asks every child and grants if any child does.
func (m *Multi) RequestPermission(ctx context.Context) bool {
	ok := false
	granted := make([]bool, len(m.children))
	for i, c := range m.children {
		granted[i] = c.RequestPermission(ctx)
		ok = ok || granted[i]
	}
	m.mu.Lock()
	m.granted = granted
	m.mu.Unlock()
	return ok
}

// Notify delivers to every granted child.
func (m *Multi) Notify(ctx context.Context, notice domain.Notice) {
	m.mu.Lock()
	granted := append([]bool(nil), m.granted...)
	m.mu.Unlock()
	for i, c := range m.children {
		if granted[i] {
			c.Notify(ctx, notice)
		}
	}
}

// Nop discards notices. It is used when notifications are disabled.
type Nop struct{}

// Ensure Nop implements domain.Notifier.
var _ domain.Notifier = Nop{}

// RequestPermission grants, so disabling notifications is not reported as a denial.
func (Nop) RequestPermission(_ context.Context) bool { return true }

// Notify does nothing.
func (Nop) Notify(_ context.Context, _ domain.Notice) {}
