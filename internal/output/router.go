package output

import (
	"io"
	"sync"

	"github.com/mj1618/axbridge/internal/automation"
	"github.com/mj1618/axbridge/internal/model"
)

var _ automation.Router = (*Router)(nil)

// DispatchRecord is one printed dispatch. Exactly one payload field is set
// per kind.
type DispatchRecord struct {
	Seq    int               `yaml:"seq"               json:"seq"`
	Kind   string            `yaml:"kind"              json:"kind"`
	Batch  *model.EventBatch `yaml:"batch,omitempty"   json:"batch,omitempty"`
	Action *model.ActionData `yaml:"action,omitempty"  json:"action,omitempty"`
	Result *bool             `yaml:"result,omitempty"  json:"result,omitempty"`
	Rect   *model.Rect       `yaml:"rect,omitempty"    json:"rect,omitempty"`
	TreeID string            `yaml:"tree_id,omitempty" json:"tree_id,omitempty"`
}

// Router prints every dispatch it receives as one document. The first write
// error is kept and later dispatches are skipped.
type Router struct {
	mu     sync.Mutex
	w      io.Writer
	format Format
	seq    int
	err    error
}

// NewRouter returns a router printing to w in format.
func NewRouter(w io.Writer, format Format) *Router {
	return &Router{w: w, format: format}
}

// Err returns the first write error.
func (r *Router) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Router) print(rec DispatchRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return
	}
	rec.Seq = r.seq
	r.seq++
	r.err = Fprint(r.w, r.format, rec)
}

func (r *Router) DispatchAccessibilityEvents(batch model.EventBatch) {
	r.print(DispatchRecord{Kind: "events", Batch: &batch})
}

func (r *Router) DispatchActionResult(data model.ActionData, result bool) {
	r.print(DispatchRecord{Kind: "action_result", Action: &data, Result: &result})
}

func (r *Router) DispatchGetTextLocationDataResult(data model.ActionData, rect *model.Rect) {
	r.print(DispatchRecord{Kind: "text_location", Action: &data, Rect: rect})
}

func (r *Router) DispatchTreeDestroyed(treeID string) {
	r.print(DispatchRecord{Kind: "tree_destroyed", TreeID: treeID})
}
