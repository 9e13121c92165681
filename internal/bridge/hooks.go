package bridge

import (
	"slices"

	"github.com/mj1618/axbridge/internal/model"
	"go.uber.org/zap"
)

// Hook adjusts the handling of one node for a known widget idiom.
type Hook interface {
	// PreDispatchEvent runs before an event is dispatched and reports whether
	// the hooked node must be serialized again.
	PreDispatchEvent(t *Tree, ev *model.Event) bool
	// PostSerializeNode annotates the node's serialized form.
	PostSerializeNode(el *model.Element)
}

// hookKind enumerates the widget idioms hooks exist for.
type hookKind uint8

const (
	hookDrawerLayout hookKind = iota
	hookAutoComplete
)

func (k hookKind) String() string {
	switch k {
	case hookDrawerLayout:
		return "drawer_layout"
	case hookAutoComplete:
		return "auto_complete"
	}
	return "unknown"
}

// hookCandidate is a hook a classifier proposes for a node.
type hookCandidate struct {
	id   int32
	kind hookKind
	hook Hook
}

// classifyHooks proposes new hooks for an event. Drawer layouts are
// considered before autocomplete fields.
func classifyHooks(t *Tree, ev *model.Event) []hookCandidate {
	var out []hookCandidate
	if c, ok := drawerLayoutCandidate(t, ev); ok {
		out = append(out, c)
	}
	return append(out, autoCompleteCandidates(t)...)
}

// hookRegistry owns the hooks attached to node ids.
type hookRegistry struct {
	hooks  map[int32]Hook
	kinds  map[int32]hookKind
	logger *zap.Logger
}

func newHookRegistry(logger *zap.Logger) hookRegistry {
	return hookRegistry{
		hooks:  make(map[int32]Hook),
		kinds:  make(map[int32]hookKind),
		logger: logger,
	}
}

func (r *hookRegistry) reset() {
	clear(r.hooks)
	clear(r.kinds)
}

func (r *hookRegistry) get(id int32) (Hook, bool) {
	h, ok := r.hooks[id]
	return h, ok
}

// process prunes hooks whose node is gone, runs every remaining hook in id
// order, and registers new hooks. It returns the ids that need serializing.
func (r *hookRegistry) process(t *Tree, ev *model.Event) []int32 {
	for id := range r.hooks {
		if !t.Has(id) {
			delete(r.hooks, id)
			delete(r.kinds, id)
		}
	}

	ids := make([]int32, 0, len(r.hooks))
	for id := range r.hooks {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var dirty []int32
	for _, id := range ids {
		if r.hooks[id].PreDispatchEvent(t, ev) {
			dirty = append(dirty, id)
		}
	}

	for _, c := range classifyHooks(t, ev) {
		if existing, ok := r.kinds[c.id]; ok {
			if existing != c.kind {
				r.logger.Debug("hook already registered",
					zap.Int32("id", c.id), zap.Stringer("kept", existing), zap.Stringer("discarded", c.kind))
			}
			continue
		}
		r.hooks[c.id] = c.hook
		r.kinds[c.id] = c.kind
	}
	return dirty
}
