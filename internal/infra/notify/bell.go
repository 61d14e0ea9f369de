package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/runoshun/g2g/internal/domain"
)

// Bell rings the terminal bell and writes one line per notice.
type Bell struct {
	w  io.Writer
	mu sync.Mutex
}

// Ensure Bell implements domain.Notifier.
var _ domain.Notifier = (*Bell)(nil)

// NewBell creates a Bell writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// RequestPermission always grants.
func (b *Bell) RequestPermission(_ context.Context) bool {
	return true
}

// Notify writes "\a<title> <body>".
func (b *Bell) Notify(_ context.Context, notice domain.Notice) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = fmt.Fprintf(b.w, "\a%s %s\n", notice.Title(), notice.Body())
}
