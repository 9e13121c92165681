package automation

import (
	"sync"
	"sync/atomic"

	"github.com/mj1618/axbridge/internal/model"
)

// ModeDelegate is an ActionDelegate with a switchable full-focus mode that
// queues forwarded actions until they are taken.
type ModeDelegate struct {
	fullFocus atomic.Bool
	mu        sync.Mutex
	actions   []model.ActionData
}

// NewModeDelegate returns a delegate starting in the given mode.
func NewModeDelegate(fullFocus bool) *ModeDelegate {
	d := &ModeDelegate{}
	d.fullFocus.Store(fullFocus)
	return d
}

func (d *ModeDelegate) UseFullFocusMode() bool { return d.fullFocus.Load() }

// SetFullFocusMode switches the mode for subsequent events.
func (d *ModeDelegate) SetFullFocusMode(on bool) { d.fullFocus.Store(on) }

func (d *ModeDelegate) OnAction(data model.ActionData) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.actions = append(d.actions, data)
}

// TakeActions returns and clears the queued actions.
func (d *ModeDelegate) TakeActions() []model.ActionData {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := d.actions
	d.actions = nil
	return out
}
