// Package bridge converts Android accessibility snapshots into an
// incrementally serialized host accessibility tree. One Bridge serves one
// Android task window and processes events one at a time.
package bridge

import (
	"time"

	"github.com/mj1618/axbridge/internal/automation"
	"github.com/mj1618/axbridge/internal/metrics"
	"github.com/mj1618/axbridge/internal/model"
	"github.com/mj1618/axbridge/internal/serialize"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Bridge) { b.logger = logger }
}

// WithMetrics attaches prometheus instrumentation.
func WithMetrics(m *metrics.Bridge) Option {
	return func(b *Bridge) { b.metrics = m }
}

// WithTreeID fixes the stable tree id instead of minting a ULID.
func WithTreeID(id string) Option {
	return func(b *Bridge) { b.treeID = id }
}

// Bridge owns the persistent focus, live region and hook state of one tree
// and rebuilds everything else from each incoming event. It is not safe for
// concurrent use.
type Bridge struct {
	delegate automation.ActionDelegate
	router   automation.Router
	logger   *zap.Logger
	metrics  *metrics.Bridge
	treeID   string

	serializer *serialize.Serializer
	focus      focusResolver
	live       liveRegionDiffer
	hooks      hookRegistry

	notificationKey *string
	inputMethod     bool

	// Valid only while an event is processed.
	tree *Tree
	sc   serializeContext
}

// New returns a bridge forwarding actions to delegate and dispatching to
// router.
func New(delegate automation.ActionDelegate, router automation.Router, opts ...Option) *Bridge {
	b := &Bridge{
		delegate: delegate,
		router:   router,
		logger:   zap.NewNop(),
		focus:    newFocusResolver(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.treeID == "" {
		b.treeID = ulid.Make().String()
	}
	b.logger = b.logger.Named("bridge").With(zap.String("tree", b.treeID))
	b.hooks = newHookRegistry(b.logger)
	b.serializer = serialize.New(b)
	return b
}

// TreeID returns the stable id of the tree this bridge serves.
func (b *Bridge) TreeID() string { return b.treeID }

// FocusState returns a copy of the persistent focus state.
func (b *Bridge) FocusState() FocusState { return b.focus.state.Clone() }

// IsNotification reports whether the last event came from a notification.
func (b *Bridge) IsNotification() bool { return b.notificationKey != nil }

// NotificationKey returns the key of the last notification event.
func (b *Bridge) NotificationKey() (string, bool) {
	if b.notificationKey == nil {
		return "", false
	}
	return *b.notificationKey, true
}

// IsInputMethodWindow reports whether the last event came from the IME.
func (b *Bridge) IsInputMethodWindow() bool { return b.inputMethod }

// NotifyAccessibilityEvent processes one event and dispatches the resulting
// updates and events to the router. Malformed snapshots are handled
// best-effort; nothing is returned to the caller.
func (b *Bridge) NotifyAccessibilityEvent(ev *model.Event) {
	start := time.Now()
	defer func() { b.metrics.ObserveDuration(time.Since(start)) }()
	b.metrics.ObserveEvent(string(ev.Type))

	b.focus.noteWindow(ev.WindowID)
	if ev.NotificationKey != nil {
		key := *ev.NotificationKey
		b.notificationKey = &key
	} else {
		b.notificationKey = nil
	}
	b.inputMethod = ev.IsInputMethodWindow

	if len(ev.Windows) == 0 {
		b.logger.Warn("event without windows; no root", zap.String("type", string(ev.Type)))
		b.metrics.ObserveDrop("no_root")
		return
	}

	b.tree = BuildTree(ev.Windows, ev.Nodes, b.logger)
	defer func() {
		b.tree = nil
		b.sc = serializeContext{}
	}()
	stats := b.tree.Stats()
	b.metrics.ObserveMalformed("dangling", stats.Dangling)
	b.metrics.ObserveMalformed("duplicate", stats.Duplicates)
	b.metrics.ObserveMalformed("cycle", stats.Cycles)

	b.sc = serializeContext{
		fullFocus:    b.delegate.UseFullFocusMode(),
		notification: b.notificationKey != nil,
	}

	switch b.focus.update(b.tree, ev, b.sc.fullFocus) {
	case focusRejected:
		b.logger.Debug("ignoring event without a resolvable selection",
			zap.String("type", string(ev.Type)), zap.Int32("source", ev.SourceID))
		b.metrics.ObserveDrop("unresolved_selection")
		return
	case focusFellBack:
		b.metrics.ObserveFocusFallback()
	}

	dirty := b.hooks.process(b.tree, ev)

	focusedID, hasFocus := b.focus.focused()
	hasFocus = hasFocus && b.tree.Has(focusedID)
	event := model.AXEvent{Type: toAXEvent(b.tree, ev, hasFocus), ID: ev.SourceID}
	if ev.HasIntProp(model.EventPropAction) {
		event.EventFrom = model.EventFromAction
	}
	events := []model.AXEvent{event}

	liveEvents, liveStatus := b.live.update(b.tree)
	events = append(events, liveEvents...)
	b.sc.liveStatus = liveStatus

	// WINDOW_STATE_CHANGED refreshes the whole tree so window locations stay
	// correct.
	clearID := ev.SourceID
	if ev.Type == model.EventWindowStateChanged {
		clearID, _ = b.tree.RootID()
	}
	dirty = append(dirty, clearID)

	updates := make([]model.TreeUpdate, 0, len(dirty))
	for _, id := range dirty {
		b.serializer.InvalidateSubtree(id)
		update, err := b.serializer.SerializeChanges(id)
		if err != nil {
			// Still carry tree data so focus changes reach the consumer.
			b.logger.Debug("nothing to serialize", zap.Int32("id", id), zap.Error(err))
			update.RootID, _ = b.tree.RootID()
			data := b.TreeData()
			update.TreeData = &data
		}
		update.NodeIDToClear = id
		updates = append(updates, update)
	}

	b.metrics.ObserveDispatch(len(updates), len(liveEvents))
	b.metrics.ObserveClientNodes(b.serializer.ClientSize())
	b.router.DispatchAccessibilityEvents(model.EventBatch{
		TreeID:  b.treeID,
		Updates: updates,
		Events:  events,
	})
}

// PerformAction forwards an automation action to the delegate.
func (b *Bridge) PerformAction(data model.ActionData) {
	b.delegate.OnAction(data)
}

// NotifyActionResult forwards the outcome of an action to the router.
func (b *Bridge) NotifyActionResult(data model.ActionData, result bool) {
	b.router.DispatchActionResult(data, result)
}

// NotifyGetTextLocationDataResult forwards a text location to the router.
func (b *Bridge) NotifyGetTextLocationDataResult(data model.ActionData, rect *model.Rect) {
	b.router.DispatchGetTextLocationDataResult(data, rect)
}

// Reset clears all persistent state and reports the tree destroyed.
func (b *Bridge) Reset() {
	b.tree = nil
	b.sc = serializeContext{}
	b.serializer.Reset()
	b.focus.reset()
	b.live.reset()
	b.hooks.reset()
	b.notificationKey = nil
	b.inputMethod = false
	b.router.DispatchTreeDestroyed(b.treeID)
}

// The methods below expose the in-flight snapshot to the serializer.

func (b *Bridge) RootID() (int32, bool) {
	if b.tree == nil {
		return 0, false
	}
	return b.tree.RootID()
}

func (b *Bridge) Has(id int32) bool {
	return b.tree != nil && b.tree.Has(id)
}

func (b *Bridge) ParentID(id int32) (int32, bool) {
	if b.tree == nil {
		return 0, false
	}
	return b.tree.ParentID(id)
}

func (b *Bridge) ChildIDs(id int32) []int32 {
	if b.tree == nil {
		return nil
	}
	return b.tree.OrderedChildren(id)
}

func (b *Bridge) SerializeNode(id int32) model.Element {
	el := serializeRecord(b.tree, id, b.sc)
	if h, ok := b.hooks.get(id); ok {
		h.PostSerializeNode(&el)
	}
	return el
}

func (b *Bridge) TreeData() model.TreeData {
	data := model.TreeData{TreeID: b.treeID}
	if id, ok := b.focus.focused(); ok {
		data.FocusID = &id
	}
	return data
}
