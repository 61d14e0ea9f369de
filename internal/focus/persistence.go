package focus

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/runoshun/g2g/internal/domain"
)

const logCategory = "focus"

// Persistence stores the focus state in one slot of a key-value store.
type Persistence struct {
	store  domain.KeyValueStore
	logger domain.Logger
}

// Ensure Persistence implements domain.FocusStateStore.
var _ domain.FocusStateStore = (*Persistence)(nil)

// NewPersistence creates a Persistence over store.
func NewPersistence(store domain.KeyValueStore, logger domain.Logger) *Persistence {
	return &Persistence{store: store, logger: logger}
}

// Save writes the full state while a plan is active and clears the slot otherwise.
func (p *Persistence) Save(state domain.FocusState) error {
	if !state.IsActive() {
		if err := p.store.Delete(domain.FocusStateKey); err != nil {
			return fmt.Errorf("clear focus state: %w", err)
		}
		return nil
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode focus state: %w", err)
	}
	if err := p.store.Set(domain.FocusStateKey, data); err != nil {
		return fmt.Errorf("write focus state: %w", err)
	}
	return nil
}

// Load returns the persisted state. A restored plan is always paused so that
// no time elapses while the program is not running. Missing, unreadable or
// inconsistent records yield the Idle state.
func (p *Persistence) Load(now time.Time) domain.FocusState {
	state := p.Peek()
	if !state.IsActive() {
		return state
	}
	state.Running = false
	state.PausedAt = now
	return state
}

// Peek returns the persisted state as written, including the running flag.
// It is used by observers of a plan driven by another process.
func (p *Persistence) Peek() domain.FocusState {
	data, err := p.store.Get(domain.FocusStateKey)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return domain.FocusState{}
	}
	if err != nil {
		p.logger.Warn(0, logCategory, fmt.Sprintf("read focus state: %v", err))
		return domain.FocusState{}
	}

	var state domain.FocusState
	if err := json.Unmarshal(data, &state); err != nil {
		p.logger.Warn(0, logCategory, fmt.Sprintf("discarding unreadable focus state: %v", err))
		return domain.FocusState{}
	}
	if !state.IsActive() {
		return domain.FocusState{}
	}
	if err := state.Validate(); err != nil {
		p.logger.Warn(state.ActiveTask.ID, logCategory, fmt.Sprintf("discarding focus state: %v", err))
		return domain.FocusState{}
	}

	if state.CompletedIndices == nil {
		state.CompletedIndices = []int{}
	}
	return state
}
