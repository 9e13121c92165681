package automation

import (
	"sync"

	"github.com/mj1618/axbridge/internal/model"
	"go.uber.org/zap"
)

// Recorder is a Router that keeps everything dispatched to it and mirrors
// the dispatched updates into a client tree.
type Recorder struct {
	mu            sync.Mutex
	batches       []model.EventBatch
	actionResults []ActionResult
	textLocations []TextLocationResult
	destroyed     []string
	tree          *model.ClientTree
	logger        *zap.Logger
}

// NewRecorder returns an empty recorder. A nil logger discards output.
func NewRecorder(logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{tree: model.NewClientTree(), logger: logger.Named("recorder")}
}

func (r *Recorder) DispatchAccessibilityEvents(batch model.EventBatch) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, batch)
	if err := r.tree.ApplyBatch(batch); err != nil {
		r.logger.Warn("client tree rejected batch", zap.Error(err), zap.Int("batch", len(r.batches)-1))
	}
}

func (r *Recorder) DispatchActionResult(data model.ActionData, result bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actionResults = append(r.actionResults, ActionResult{Data: data, Result: result})
}

func (r *Recorder) DispatchGetTextLocationDataResult(data model.ActionData, rect *model.Rect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.textLocations = append(r.textLocations, TextLocationResult{Data: data, Rect: rect})
}

func (r *Recorder) DispatchTreeDestroyed(treeID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.destroyed = append(r.destroyed, treeID)
	r.tree.Reset()
}

// Batches returns a copy of every batch received.
func (r *Recorder) Batches() []model.EventBatch {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.EventBatch(nil), r.batches...)
}

// TakeBatches returns and clears the batches received so far. The mirrored
// client tree is kept.
func (r *Recorder) TakeBatches() []model.EventBatch {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.batches
	r.batches = nil
	return out
}

// TakeActionResults returns and clears the action results received so far.
func (r *Recorder) TakeActionResults() []ActionResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.actionResults
	r.actionResults = nil
	return out
}

// TreeID returns the tree id of the mirrored client tree.
func (r *Recorder) TreeID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tree.TreeID()
}

// Refs returns stable path refs for the mirrored client tree.
func (r *Recorder) Refs() map[int32]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tree.Refs()
}

// ActionResults returns every action result received.
func (r *Recorder) ActionResults() []ActionResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ActionResult(nil), r.actionResults...)
}

// TakeTextLocations returns and clears the text location results received
// so far.
func (r *Recorder) TakeTextLocations() []TextLocationResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.textLocations
	r.textLocations = nil
	return out
}

// Destroyed returns the tree ids reported destroyed.
func (r *Recorder) Destroyed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.destroyed...)
}

// Flatten returns the mirrored client tree as a flat list.
func (r *Recorder) Flatten() []model.FlatElement {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tree.Flatten()
}

// Element returns one element of the mirrored client tree.
func (r *Recorder) Element(id int32) (model.Element, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tree.Get(id)
}

// Elements returns every element of the mirrored client tree reachable from
// the root, in pre-order, with its child ids.
func (r *Recorder) Elements() []model.Element {
	r.mu.Lock()
	defer r.mu.Unlock()
	flat := r.tree.Flatten()
	out := make([]model.Element, 0, len(flat))
	for _, f := range flat {
		if el, ok := r.tree.Get(f.ID); ok {
			out = append(out, el)
		}
	}
	return out
}

// FocusID returns the focused id of the mirrored client tree.
func (r *Recorder) FocusID() (int32, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tree.FocusID()
}
